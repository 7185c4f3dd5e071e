package engine

import (
	"fmt"
	"strings"

	"github.com/freeeve/geoindex/internal/geo"
)

// AddRecord interns (id, item) into the registry, indexes its own names
// into the trie, and walks item's parent chain upward resolving each
// unresolved ancestor to an existing or newly-synthesized Record (§4.3).
// It takes the Engine's write lock: callers must not call AddRecord or
// Search concurrently with it.
func (e *Engine) AddRecord(id int64, item *geo.GeoItem) (*geo.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.addRecordLocked(id, item)
}

func (e *Engine) addRecordLocked(id int64, item *geo.GeoItem) (*geo.Record, error) {
	rec, err := e.registry.Intern(id, item)
	if err != nil {
		return nil, err
	}
	e.indexRecord(rec)
	if err := e.resolveParents(item); err != nil {
		return nil, err
	}
	return rec, nil
}

// Ingest adds a batch of (id, item) rows, incrementing Generation exactly
// once when the whole batch completes successfully. A ParseError on an
// individual row (callers construct items via geo.Parse before calling
// Ingest) is the caller's concern; AddRecord only ever returns
// RegistryCollisionError or AmbiguousDuplicateError, both of which abort
// the batch immediately per §7 ("structural errors abort ingest").
func (e *Engine) Ingest(rows []Row) (Report, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var report Report
	for _, row := range rows {
		if _, err := e.addRecordLocked(row.ID, row.Item); err != nil {
			return report, fmt.Errorf("ingest row id=%d: %w", row.ID, err)
		}
		report.Ingested++
	}
	e.generation++
	return report, nil
}

// Row is one already-parsed record awaiting ingest.
type Row struct {
	ID   int64
	Item *geo.GeoItem
}

// Report summarizes one Ingest call. Errors holds one message per
// skipped row, in the order rows were skipped; it is empty when nothing
// was skipped.
type Report struct {
	Ingested int
	Skipped  int
	Errors   []string
}

// indexRecord adds every non-empty word (and its suffixes) of rec's own
// bilingual names — current and former — under rec.ID. Ancestor names are
// indexed separately, under their own record ids, as resolveParents
// resolves or synthesizes them.
func (e *Engine) indexRecord(rec *geo.Record) {
	item := rec.Item
	e.trie.AddText(rec.ID, item.Primary.Name)
	if item.Primary.HasOld {
		e.trie.AddText(rec.ID, item.Primary.OldName)
	}
	e.trie.AddText(rec.ID, item.Secondary.Name)
	if item.Secondary.HasOld {
		e.trie.AddText(rec.ID, item.Secondary.OldName)
	}
}

// resolveParents walks item's parent chain upward, rewriting each
// unresolved link to a resolved Record in place, per §4.3.
func (e *Engine) resolveParents(item *geo.GeoItem) error {
	parent := item.Parent
	for !parent.IsNil() {
		if parent.IsResolved() {
			rec := parent.Record()
			item = rec.Item
			parent = item.Parent
			continue
		}

		p := parent.Item()
		q := p.FullName()
		ids := e.trie.Lookup(q, true)

		rec, err := e.resolveOneParent(q, p, ids)
		if err != nil {
			return err
		}

		item.Parent = geo.ResolvedParent(rec)
		item = rec.Item
		parent = item.Parent
	}
	return nil
}

func (e *Engine) resolveOneParent(q string, p *geo.GeoItem, ids map[int64]struct{}) (*geo.Record, error) {
	switch len(ids) {
	case 0:
		return e.synthesize(p), nil

	case 1:
		var id int64
		for k := range ids {
			id = k
		}
		candidate := e.registry.MustGet(id)
		if sameParents(candidate.Item, p) {
			return candidate, nil
		}
		return e.synthesize(p), nil

	default:
		var survivors []*geo.Record
		for id := range ids {
			candidate := e.registry.MustGet(id)
			if candidate.Item.FullName() != q {
				continue
			}
			if sameParents(candidate.Item, p) {
				survivors = append(survivors, candidate)
			}
		}
		switch len(survivors) {
		case 0:
			return e.synthesize(p), nil
		case 1:
			return survivors[0], nil
		default:
			cands := make([]int64, len(survivors))
			for i, s := range survivors {
				cands[i] = s.ID
			}
			return nil, &geo.AmbiguousDuplicateError{Query: q, Candidates: cands}
		}
	}
}

// synthesize assigns the next negative id, interns item under it, and
// indexes it into the trie. Negative ids start at -1 and decrement.
func (e *Engine) synthesize(item *geo.GeoItem) *geo.Record {
	id := e.nextNegID
	e.nextNegID--
	rec, err := e.registry.Intern(id, item)
	if err != nil {
		// Unreachable: id was never used before, so Intern cannot collide.
		panic(fmt.Sprintf("engine: unexpected collision synthesizing parent: %v", err))
	}
	e.indexRecord(rec)
	return rec
}

// sameParents is the §4.3 parent-compatibility predicate: true iff a and
// b are the same type, have recursively-equal parents, and either render
// byte-identical full names or a's (old-name-less) rendered name embeds
// b's old name as a prefix or suffix.
func sameParents(a, b *geo.GeoItem) bool {
	if a.Type != b.Type {
		return false
	}
	if !a.Parent.Item().Equal(b.Parent.Item()) {
		return false
	}

	aFull, bFull := a.FullName(), b.FullName()
	if aFull == bFull {
		return true
	}
	if !a.Primary.HasOld && b.Primary.HasOld {
		old := b.Primary.OldName
		if strings.HasPrefix(aFull, old) || strings.HasSuffix(aFull, old) {
			return true
		}
	}
	return false
}
