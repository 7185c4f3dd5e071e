package importexport

import (
	"bytes"
	"strings"
	"testing"

	"github.com/freeeve/geoindex/internal/engine"
	"github.com/freeeve/geoindex/internal/geo"
)

func TestExportDenormalizedRenumbersNegativeIDs(t *testing.T) {
	eng := engine.New()
	city := mustParse(t, geo.City, "Kyiv Region, Irpin", "Київська область, Ірпінь")
	if _, err := eng.AddRecord(5, city); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records := eng.Registry().All()
	var buf bytes.Buffer
	if err := WriteDenormalized(&buf, records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "geo_id,geo_type,name,name_uk") {
		t.Fatalf("expected header row, got %q", out)
	}
	if strings.Contains(out, "-1") {
		t.Fatalf("expected no negative ids in export, got %q", out)
	}
	if !strings.Contains(out, "100") {
		t.Fatalf("expected the synthesized region to renumber to 100, got %q", out)
	}
}

func TestExportTreeRoundTripsThroughImport(t *testing.T) {
	eng := engine.New()
	region := mustParse(t, geo.Region, "Kyiv Region", "Київська область")
	if _, err := eng.AddRecord(1, region); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	city := mustParse(t, geo.City, "Kyiv Region, Irpin", "Київська область, Ірпінь")
	if _, err := eng.AddRecord(2, city); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteTree(&buf, eng.Registry().All()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reimported := engine.New()
	report, flavor, err := Import(&buf, reimported)
	if err != nil {
		t.Fatalf("unexpected error reimporting: %v", err)
	}
	if flavor != Tree {
		t.Fatalf("expected Tree flavor, got %v", flavor)
	}
	if report.Ingested != 2 {
		t.Fatalf("expected 2 rows reimported, got %d", report.Ingested)
	}
}

func mustParse(t *testing.T, finalType geo.Type, primary, secondary string) *geo.GeoItem {
	t.Helper()
	item, err := geo.Parse(finalType, primary, secondary)
	if err != nil {
		t.Fatalf("parse(%q, %q) failed: %v", primary, secondary, err)
	}
	return item
}
