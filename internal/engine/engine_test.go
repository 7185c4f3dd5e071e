package engine

import (
	"testing"

	"github.com/freeeve/geoindex/internal/geo"
)

func mustParse(t *testing.T, finalType geo.Type, primary, secondary string) *geo.GeoItem {
	t.Helper()
	item, err := geo.Parse(finalType, primary, secondary)
	if err != nil {
		t.Fatalf("parse(%q, %q) failed: %v", primary, secondary, err)
	}
	return item
}

func TestAddRecordSingleRegion(t *testing.T) {
	e := New()
	item := mustParse(t, geo.Region, "Kyiv Region", "Київська область")
	rec, err := e.AddRecord(1, item)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != 1 {
		t.Fatalf("expected id 1, got %d", rec.ID)
	}

	res := e.Search("Kyiv", 10)
	if res.Matched != 1 || res.Hits[0].ID != 1 {
		t.Fatalf("expected single hit id 1, got %+v", res)
	}
}

func TestSearchSuffixHit(t *testing.T) {
	e := New()
	item := mustParse(t, geo.Region, "Kyivska Region", "Київська область")
	if _, err := e.AddRecord(1, item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := e.Search("yivska", 10)
	if res.Matched != 1 {
		t.Fatalf("expected suffix match, got %+v", res)
	}
}

func TestSearchTwoWordIntersection(t *testing.T) {
	e := New()
	a := mustParse(t, geo.Region, "Kyiv Oblast", "Київська область")
	b := mustParse(t, geo.Region, "Lviv Oblast", "Львівська область")
	if _, err := e.AddRecord(1, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := e.AddRecord(2, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := e.Search("Kyiv Oblast", 10)
	if res.Matched != 1 || res.Hits[0].ID != 1 {
		t.Fatalf("expected only id 1 to match both words, got %+v", res)
	}
}

func TestAddRecordReconcilesExistingParent(t *testing.T) {
	e := New()
	region := mustParse(t, geo.Region, "Kyiv Region", "Київська область")
	if _, err := e.AddRecord(1, region); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	city := mustParse(t, geo.City, "Kyiv Region, Irpin", "Київська область, Ірпінь")
	rec, err := e.AddRecord(2, city)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rec.Item.Parent.IsResolved() {
		t.Fatal("expected city's parent to be resolved")
	}
	if rec.Item.Parent.Record().ID != 1 {
		t.Fatalf("expected city's parent to reconcile to region id 1, got %d",
			rec.Item.Parent.Record().ID)
	}
}

func TestAddRecordSynthesizesMissingParent(t *testing.T) {
	e := New()
	city := mustParse(t, geo.City, "Kyiv Region, Irpin", "Київська область, Ірпінь")
	rec, err := e.AddRecord(2, city)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parentRec := rec.Item.Parent.Record()
	if parentRec == nil {
		t.Fatal("expected a synthesized parent record")
	}
	if parentRec.ID >= 0 {
		t.Fatalf("expected negative synthetic id, got %d", parentRec.ID)
	}
	if parentRec.Item.Type != geo.Region {
		t.Fatalf("expected synthesized parent to be a region, got %v", parentRec.Item.Type)
	}

	res := e.Search("Kyiv Region", 10)
	if res.Matched != 1 || res.Hits[0].ID != parentRec.ID {
		t.Fatalf("expected synthesized region to be searchable, got %+v", res)
	}
}

func TestAddRecordAmbiguousDuplicateParent(t *testing.T) {
	e := New()
	regionA := mustParse(t, geo.Region, "Kyiv Region", "Київська область")
	regionB := mustParse(t, geo.Region, "Kyiv Region", "Київська область")
	if _, err := e.AddRecord(1, regionA); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := e.AddRecord(2, regionB); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	city := mustParse(t, geo.City, "Kyiv Region, Irpin", "Київська область, Ірпінь")
	_, err := e.AddRecord(3, city)
	if err == nil {
		t.Fatal("expected an ambiguous duplicate error")
	}
	if _, ok := err.(*geo.AmbiguousDuplicateError); !ok {
		t.Fatalf("expected *geo.AmbiguousDuplicateError, got %T: %v", err, err)
	}
}

func TestRegistryCollisionAbortsAddRecord(t *testing.T) {
	e := New()
	a := mustParse(t, geo.Region, "Kyiv Region", "Київська область")
	b := mustParse(t, geo.Region, "Lviv Region", "Львівська область")
	if _, err := e.AddRecord(1, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := e.AddRecord(1, b)
	if err == nil {
		t.Fatal("expected a registry collision error")
	}
	if _, ok := err.(*geo.RegistryCollisionError); !ok {
		t.Fatalf("expected *geo.RegistryCollisionError, got %T", err)
	}
}

func TestIngestBumpsGeneration(t *testing.T) {
	e := New()
	if e.Generation() != 0 {
		t.Fatalf("expected generation 0 before any ingest, got %d", e.Generation())
	}

	rows := []Row{
		{ID: 1, Item: mustParse(t, geo.Region, "Kyiv Region", "Київська область")},
		{ID: 2, Item: mustParse(t, geo.Region, "Lviv Region", "Львівська область")},
	}
	report, err := e.Ingest(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Ingested != 2 {
		t.Fatalf("expected 2 rows ingested, got %d", report.Ingested)
	}
	if e.Generation() != 1 {
		t.Fatalf("expected generation 1 after one successful ingest, got %d", e.Generation())
	}
}

func TestIngestAbortsBatchOnError(t *testing.T) {
	e := New()
	rows := []Row{
		{ID: 1, Item: mustParse(t, geo.Region, "Kyiv Region", "Київська область")},
		{ID: 1, Item: mustParse(t, geo.Region, "Lviv Region", "Львівська область")},
	}
	_, err := e.Ingest(rows)
	if err == nil {
		t.Fatal("expected ingest to fail on colliding id")
	}
	if e.Generation() != 0 {
		t.Fatalf("expected generation to stay 0 on aborted ingest, got %d", e.Generation())
	}
}

func TestSearchKeyboardLayoutFallback(t *testing.T) {
	e := New()
	item := mustParse(t, geo.Region, "Kyiv Region", "Київ")
	if _, err := e.AddRecord(1, item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// "rb]d" typed on a US layout while the Ukrainian layout was active
	// produces "київ" (to be translated back via KeymapUkrainian).
	res := e.Search("rb]d", 10)
	if res.Matched != 1 {
		t.Fatalf("expected keyboard-layout fallback to find the record, got %+v", res)
	}
	if res.Query != "київ" {
		t.Fatalf("expected envelope query to carry the translated string, got %q", res.Query)
	}
}

func TestSearchHiddenCountBeyondLimit(t *testing.T) {
	e := New()
	for i := int64(1); i <= 5; i++ {
		item := mustParse(t, geo.Region, "Oblast Shared", "Спільна область")
		if _, err := e.AddRecord(i, item); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	res := e.Search("Oblast", 3)
	if res.Matched != 5 {
		t.Fatalf("expected 5 total matches, got %d", res.Matched)
	}
	if len(res.Hits) != 3 {
		t.Fatalf("expected 3 hits returned, got %d", len(res.Hits))
	}
	if res.Hidden != 2 {
		t.Fatalf("expected 2 hidden, got %d", res.Hidden)
	}
}
