package engine

import (
	"sort"
	"strings"

	"github.com/freeeve/geoindex/internal/geo"
	"github.com/freeeve/geoindex/internal/trie"
)

// NamePair is one (self, ancestor) rendering in a Hit's Names list: self
// is the record's own rendered bilingual name in one language, ancestor
// is the immediate parent's rendered name in the same language, or empty
// at the region level.
type NamePair struct {
	Self     string `json:"self"`
	Ancestor string `json:"ancestor,omitempty"`
}

// Hit is one materialized search result.
type Hit struct {
	ID    int64      `json:"id"`
	Type  geo.Type   `json:"type"`
	Names []NamePair `json:"names"`
}

// Result is the §4.4 result envelope: up to limit hits (DefaultResultLimit
// when the caller passes none), plus a count of how many matches were
// hidden beyond that limit.
type Result struct {
	Query   string `json:"query"`
	Hits    []Hit  `json:"hits"`
	Hidden  int    `json:"hidden"`
	Matched int    `json:"matched"`
}

// Search runs query through preprocessing and, on an empty direct hit,
// retries it translated through each keyboard layout in turn (§4.4). It
// takes the read lock, so it is safe to call concurrently with other
// Search calls but never with AddRecord/Ingest.
func (e *Engine) Search(query string, limit int) Result {
	if limit <= 0 {
		limit = DefaultResultLimit
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	ids := e.trie.Lookup(query, false)
	effective := query
	if len(ids) == 0 {
		for _, layout := range trie.Keymaps {
			translated := layout.Translate(query)
			if translated == query {
				continue
			}
			if retried := e.trie.Lookup(translated, false); len(retried) > 0 {
				ids = retried
				effective = translated
				break
			}
		}
	}

	return e.buildResult(effective, ids, limit)
}

func (e *Engine) buildResult(query string, ids map[int64]struct{}, limit int) Result {
	ordered := make([]*geo.Record, 0, len(ids))
	for id := range ids {
		if rec, ok := e.registry.Get(id); ok {
			ordered = append(ordered, rec)
		}
	}

	folded := strings.ToLower(query)
	sort.Slice(ordered, func(i, j int) bool {
		iMatch := strings.Contains(strings.ToLower(ordered[i].Item.FullName()), folded)
		jMatch := strings.Contains(strings.ToLower(ordered[j].Item.FullName()), folded)
		if iMatch != jMatch {
			return iMatch
		}
		return ordered[i].ID < ordered[j].ID
	})

	res := Result{Query: query, Matched: len(ordered)}
	n := len(ordered)
	if n > limit {
		res.Hidden = n - limit
		n = limit
	}
	res.Hits = make([]Hit, 0, n)
	for _, rec := range ordered[:n] {
		res.Hits = append(res.Hits, renderHit(rec))
	}
	return res
}

func renderHit(rec *geo.Record) Hit {
	hit := Hit{ID: rec.ID, Type: rec.Item.Type}
	self := rec.Item
	var ancestor *geo.GeoItem
	if resolved := self.Parent.Record(); resolved != nil {
		ancestor = resolved.Item
	}

	primaryAncestor, secondaryAncestor := "", ""
	if ancestor != nil {
		primaryAncestor = ancestor.Primary.String()
		secondaryAncestor = ancestor.Secondary.String()
	}
	hit.Names = []NamePair{
		{Self: self.Primary.String(), Ancestor: primaryAncestor},
		{Self: self.Secondary.String(), Ancestor: secondaryAncestor},
	}
	return hit
}
