package geo

import "testing"

func TestParseRegion(t *testing.T) {
	item, err := Parse(Region, "Kyiv Region", "Київська область")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Type != Region {
		t.Fatalf("expected Region, got %v", item.Type)
	}
	if item.Primary.Name != "Kyiv Region" {
		t.Fatalf("unexpected primary name: %q", item.Primary.Name)
	}
	if !item.Parent.IsNil() {
		t.Fatalf("expected region to have no parent")
	}
}

func TestParseCityWithOneAncestor(t *testing.T) {
	item, err := Parse(City, "Oblast A, Town B", "Область А, Місто Б")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Type != City {
		t.Fatalf("expected City, got %v", item.Type)
	}
	parent := item.Parent.Item()
	if parent == nil || parent.Type != Region {
		t.Fatalf("expected city's parent to be a region, got %v", parent)
	}
}

func TestParseCityWithTwoAncestors(t *testing.T) {
	item, err := Parse(City, "Region R, Raion X, City Y", "Область Р, Район Х, Місто Y")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parent := item.Parent.Item()
	if parent == nil || parent.Type != Raion {
		t.Fatalf("expected city's parent to be a raion, got %v", parent)
	}
	grandparent := parent.Parent.Item()
	if grandparent == nil || grandparent.Type != Region {
		t.Fatalf("expected raion's parent to be a region, got %v", grandparent)
	}
}

func TestParseFormerName(t *testing.T) {
	item, err := Parse(Region, "Kyiv Region (Kiev Oblast)", "Київська область")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !item.Primary.HasOld || item.Primary.OldName != "Kiev Oblast" {
		t.Fatalf("expected old name to be parsed, got %+v", item.Primary)
	}
	if item.Primary.String() != "Kyiv Region (Kiev Oblast)" {
		t.Fatalf("unexpected render: %s", item.Primary.String())
	}
}

func TestParseStreetTwoPrecedingLevelsGivesCity(t *testing.T) {
	item, err := Parse(Street, "Region R, City C, Main Street", "Область Р, Місто C, Головна вулиця")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parent := item.Parent.Item()
	if parent == nil || parent.Type != City {
		t.Fatalf("expected street's parent to be city, got %v", parent)
	}
}

func TestParseStreetThreePrecedingLevelsWithRaionKeywordGivesCity(t *testing.T) {
	item, err := Parse(
		Street,
		"Region R, Something район, City C, Main Street",
		"Область Р, Щось район, Місто C, Головна вулиця",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parent := item.Parent.Item()
	if parent == nil || parent.Type != City {
		t.Fatalf("expected street's parent to be city via raion-keyword rule, got %v", parent)
	}
	grandparent := parent.Parent.Item()
	if grandparent == nil || grandparent.Type != Raion {
		t.Fatalf("expected city's parent to be raion, got %v", grandparent)
	}
}

func TestParseStreetThreePrecedingLevelsWithoutRaionKeywordGivesDistrict(t *testing.T) {
	item, err := Parse(
		Street,
		"Region R, City C, District D, Main Street",
		"Область Р, Місто C, Район D, Головна вулиця",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parent := item.Parent.Item()
	if parent == nil || parent.Type != District {
		t.Fatalf("expected street's parent to be district, got %v", parent)
	}
}

func TestParseAddressInheritsStreetShape(t *testing.T) {
	item, err := Parse(
		Address,
		"Region R, City C, Main Street, 12",
		"Область Р, Місто C, Головна вулиця, 12",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Type != Address {
		t.Fatalf("expected Address, got %v", item.Type)
	}
	street := item.Parent.Item()
	if street == nil || street.Type != Street {
		t.Fatalf("expected address's parent to be street, got %v", street)
	}
}

func TestParseLanguageSegmentMismatch(t *testing.T) {
	_, err := Parse(City, "Region R, City C", "Тільки одне")
	if err == nil {
		t.Fatal("expected error on language segment count mismatch")
	}
}

func TestParseWrongLevelCount(t *testing.T) {
	_, err := Parse(City, "Only One", "Тільки одне")
	if err == nil {
		t.Fatal("expected error on wrong level count for city")
	}
}

func TestParseTypeUnknown(t *testing.T) {
	_, err := ParseType("planet")
	if err == nil {
		t.Fatal("expected error for unknown geo_type")
	}
}

func TestSplitTopLevelIgnoresCommaInParens(t *testing.T) {
	segs := splitTopLevel("Region R, City C (Old, Name)")
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d: %v", len(segs), segs)
	}
	if segs[1] != "City C (Old, Name)" {
		t.Fatalf("unexpected second segment: %q", segs[1])
	}
}

func TestGeoItemEqual(t *testing.T) {
	a, _ := Parse(City, "Oblast A, Town B", "Область А, Місто Б")
	b, _ := Parse(City, "Oblast A, Town B", "Область А, Місто Б")
	if !a.Equal(b) {
		t.Fatal("expected structurally identical items to be equal")
	}

	c, _ := Parse(City, "Oblast A, Town C", "Область А, Місто В")
	if a.Equal(c) {
		t.Fatal("expected items with different names to be unequal")
	}
}
