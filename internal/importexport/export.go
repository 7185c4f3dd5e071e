package importexport

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/freeeve/geoindex/internal/geo"
)

// renumber maps every negative (synthesized) id in records to a fresh
// positive id above ceil(max_id/100)*100, so human-assigned ids are
// never touched and exported files stay free of negative ids. Positive
// ids map to themselves.
func renumber(records []*geo.Record) map[int64]int64 {
	var maxID int64
	for _, rec := range records {
		if rec.ID > maxID {
			maxID = rec.ID
		}
	}
	next := int64(math.Ceil(float64(maxID)/100)) * 100
	if next <= maxID {
		next += 100
	}

	out := make(map[int64]int64, len(records))
	for _, rec := range records {
		if rec.ID < 0 {
			out[rec.ID] = next
			next++
		} else {
			out[rec.ID] = rec.ID
		}
	}
	return out
}

func quoteAll(w *csv.Writer, fields []string) error {
	// encoding/csv already quotes any field containing a comma, quote, or
	// newline; geo_id fields here are always emitted unquoted, matching
	// a numeric-vs-string quoting rule without a custom QUOTE_NONNUMERIC
	// mode (the standard library's csv.Writer has none).
	return w.Write(fields)
}

// WriteDenormalized emits one row per record with the id remapping from
// renumber applied, each row repeating every ancestor name joined by
// ", " per language.
func WriteDenormalized(w io.Writer, records []*geo.Record) error {
	cw := csv.NewWriter(w)
	ids := renumber(records)

	if err := quoteAll(cw, []string{"geo_id", "geo_type", "name", "name_uk"}); err != nil {
		return err
	}
	for _, rec := range records {
		primary, secondary := renderHierarchy(rec.Item)
		row := []string{
			strconv.FormatInt(ids[rec.ID], 10),
			rec.Item.Type.String(),
			primary,
			secondary,
		}
		if err := quoteAll(cw, row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTree emits one row per record in registry order with the id
// remapping from renumber applied to both geo_id and geo_parent_id.
func WriteTree(w io.Writer, records []*geo.Record) error {
	cw := csv.NewWriter(w)
	ids := renumber(records)

	if err := quoteAll(cw, []string{"geo_id", "geo_parent_id", "geo_type", "name", "name_uk"}); err != nil {
		return err
	}
	for _, rec := range records {
		parentID := ""
		if parent := rec.Item.Parent.Record(); parent != nil {
			parentID = strconv.FormatInt(ids[parent.ID], 10)
		}
		row := []string{
			strconv.FormatInt(ids[rec.ID], 10),
			parentID,
			rec.Item.Type.String(),
			rec.Item.Primary.String(),
			rec.Item.Secondary.String(),
		}
		if err := quoteAll(cw, row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// renderHierarchy walks item's parent chain, outermost first, rendering
// each level's bilingual names joined by ", " — the inverse of geo.Parse.
func renderHierarchy(item *geo.GeoItem) (primary, secondary string) {
	var chain []*geo.GeoItem
	for cur := item; cur != nil; cur = cur.Parent.Item() {
		chain = append(chain, cur)
	}

	for i := len(chain) - 1; i >= 0; i-- {
		if primary != "" {
			primary += levelSep
			secondary += levelSep
		}
		primary += chain[i].Primary.String()
		secondary += chain[i].Secondary.String()
	}
	return primary, secondary
}

// levelSep mirrors geo's own unexported separator; duplicated here since
// the two packages render hierarchy strings independently (geo.Parse
// consumes them, export produces them).
const levelSep = ", "
