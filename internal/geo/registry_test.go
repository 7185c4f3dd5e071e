package geo

import "testing"

func TestRegistryInternIsIdempotent(t *testing.T) {
	r := NewRegistry()
	item := &GeoItem{Type: Region, Primary: NewName("A"), Secondary: NewName("Б")}

	rec1, err := r.Intern(1, item)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec2, err := r.Intern(1, &GeoItem{Type: Region, Primary: NewName("A"), Secondary: NewName("Б")})
	if err != nil {
		t.Fatalf("unexpected error on equal re-intern: %v", err)
	}
	if rec1 != rec2 {
		t.Fatal("expected re-interning an equal item to return the same Record")
	}
}

func TestRegistryCollision(t *testing.T) {
	r := NewRegistry()
	_, err := r.Intern(1, &GeoItem{Type: Region, Primary: NewName("A")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = r.Intern(1, &GeoItem{Type: Region, Primary: NewName("B")})
	if err == nil {
		t.Fatal("expected RegistryCollisionError")
	}
	if _, ok := err.(*RegistryCollisionError); !ok {
		t.Fatalf("expected *RegistryCollisionError, got %T", err)
	}
}

func TestRegistryAllPreservesInsertionOrder(t *testing.T) {
	r := NewRegistry()
	r.Intern(5, &GeoItem{Type: Region, Primary: NewName("E")})
	r.Intern(2, &GeoItem{Type: Region, Primary: NewName("B")})
	r.Intern(9, &GeoItem{Type: Region, Primary: NewName("I")})

	all := r.All()
	ids := []int64{all[0].ID, all[1].ID, all[2].ID}
	want := []int64{5, 2, 9}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected insertion order %v, got %v", want, ids)
		}
	}
}

func TestRegistryMaxID(t *testing.T) {
	r := NewRegistry()
	r.Intern(3, &GeoItem{Type: Region, Primary: NewName("C")})
	r.Intern(-1, &GeoItem{Type: Region, Primary: NewName("D")})
	r.Intern(17, &GeoItem{Type: Region, Primary: NewName("E")})
	if got := r.MaxID(); got != 17 {
		t.Fatalf("expected max id 17, got %d", got)
	}
}
