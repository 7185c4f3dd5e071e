// Package importexport reads and writes the two CSV flavors engine
// ingest understands: "denormalized" (each row repeats every ancestor
// name) and "tree" (each row carries an explicit geo_parent_id). Flavor
// is detected from the header, never declared by the caller.
package importexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/freeeve/geoindex/internal/engine"
	"github.com/freeeve/geoindex/internal/geo"
)

const (
	headerDenorm = "geo_id,geo_type,name,name_uk"
	headerTree   = "geo_id,geo_parent_id,geo_type,name,name_uk"
)

// Flavor names the two CSV shapes.
type Flavor int

const (
	Denormalized Flavor = iota
	Tree
)

// Import detects the flavor from the header row and ingests every
// subsequent row into eng. Denormalized rows parse hierarchical name
// strings with geo.Parse and are batched through a single Engine.Ingest
// call, leaving parent reconciliation to §4.3. Tree rows carry an
// explicit geo_parent_id resolved against eng's own registry, so they
// are added one at a time in file order and a tree file must list
// parents before children.
func Import(r io.Reader, eng *engine.Engine) (engine.Report, Flavor, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return engine.Report{}, 0, fmt.Errorf("importexport: read header: %w", err)
	}

	switch joinHeader(header) {
	case headerTree:
		report, err := importTree(cr, eng)
		return report, Tree, err
	case headerDenorm:
		report, err := importDenormalized(cr, eng)
		return report, Denormalized, err
	default:
		return engine.Report{}, 0, fmt.Errorf("importexport: unrecognized header %q", joinHeader(header))
	}
}

func joinHeader(fields []string) string {
	out := fields[0]
	for _, f := range fields[1:] {
		out += "," + f
	}
	return out
}

// importDenormalized parses every row, skipping and logging the ones
// that fail to parse (§7: a ParseError on a streamed row is skipped, not
// fatal), then batches the rows that did parse through a single
// Engine.Ingest call. A structural error from Ingest (RegistryCollision,
// AmbiguousDuplicate) aborts the remainder of the batch and is returned
// alongside whatever was already skipped.
func importDenormalized(cr *csv.Reader, eng *engine.Engine) (engine.Report, error) {
	var (
		report engine.Report
		rows   []engine.Row
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return report, fmt.Errorf("importexport: read denormalized row: %w", err)
		}

		row, perr := parseDenormalizedRow(rec)
		if perr != nil {
			report.Skipped++
			report.Errors = append(report.Errors, perr.Error())
			continue
		}
		rows = append(rows, row)
	}

	ingested, err := eng.Ingest(rows)
	report.Ingested = ingested.Ingested
	if err != nil {
		return report, err
	}
	return report, nil
}

func parseDenormalizedRow(rec []string) (engine.Row, *geo.ParseError) {
	if len(rec) != 4 {
		return engine.Row{}, &geo.ParseError{Reason: fmt.Sprintf("expected 4 fields, got %d", len(rec))}
	}

	id, err := strconv.ParseInt(rec[0], 10, 64)
	if err != nil {
		return engine.Row{}, &geo.ParseError{Reason: fmt.Sprintf("bad geo_id %q", rec[0])}
	}
	geoType, err := geo.ParseType(rec[1])
	if err != nil {
		pe, _ := err.(*geo.ParseError)
		return engine.Row{}, pe
	}
	item, err := geo.Parse(geoType, rec[2], rec[3])
	if err != nil {
		pe, ok := err.(*geo.ParseError)
		if !ok {
			pe = &geo.ParseError{Reason: err.Error()}
		}
		return engine.Row{}, pe
	}
	return engine.Row{ID: id, Item: item}, nil
}

// importTree resolves each row's geo_parent_id against already-ingested
// rows, since a tree file must list parents before children. A row that
// fails to parse, or whose parent hasn't been defined yet, is skipped
// and logged like any other ParseError; only a structural failure from
// AddRecord (RegistryCollision, AmbiguousDuplicate) aborts the import.
func importTree(cr *csv.Reader, eng *engine.Engine) (engine.Report, error) {
	var report engine.Report
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return report, fmt.Errorf("importexport: read tree row: %w", err)
		}

		id, item, perr := parseTreeRow(rec, eng)
		if perr != nil {
			report.Skipped++
			report.Errors = append(report.Errors, perr.Error())
			continue
		}

		if _, err := eng.AddRecord(id, item); err != nil {
			return report, fmt.Errorf("importexport: row id=%d: %w", id, err)
		}
		report.Ingested++
	}
	eng.BumpGeneration()
	return report, nil
}

func parseTreeRow(rec []string, eng *engine.Engine) (int64, *geo.GeoItem, *geo.ParseError) {
	if len(rec) != 5 {
		return 0, nil, &geo.ParseError{Reason: fmt.Sprintf("expected 5 fields, got %d", len(rec))}
	}

	id, err := strconv.ParseInt(rec[0], 10, 64)
	if err != nil {
		return 0, nil, &geo.ParseError{Reason: fmt.Sprintf("bad geo_id %q", rec[0])}
	}
	geoType, err := geo.ParseType(rec[2])
	if err != nil {
		pe, _ := err.(*geo.ParseError)
		return 0, nil, pe
	}

	item := &geo.GeoItem{
		Type:      geoType,
		Primary:   geo.ParseName(rec[3]),
		Secondary: geo.ParseName(rec[4]),
	}
	if rec[1] != "" {
		parentID, err := strconv.ParseInt(rec[1], 10, 64)
		if err != nil {
			return 0, nil, &geo.ParseError{Reason: fmt.Sprintf("bad geo_parent_id %q", rec[1])}
		}
		parent, ok := eng.Registry().Get(parentID)
		if !ok {
			return 0, nil, &geo.ParseError{Reason: fmt.Sprintf(
				"row id=%d references parent id=%d before it was defined", id, parentID)}
		}
		item.Parent = geo.ResolvedParent(parent)
	}
	return id, item, nil
}
