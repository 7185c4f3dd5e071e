package geo

// Record wraps an id with the GeoItem it identifies. Ids are unique
// within a run: positive ids arrive from CSV, negative ids are assigned
// by the engine to synthetic parents it had to materialize.
type Record struct {
	ID   int64
	Item *GeoItem
}

// Registry interns Records by id. It is engine-scoped (never a process
// global, per the "Registry / global state" design note) and append-only
// for the lifetime of one ingest run: constructing a Record with an id
// already present returns the prior instance unless the items differ, in
// which case that is a RegistryCollisionError.
type Registry struct {
	byID map[int64]*Record
	// order preserves insertion order for deterministic export and
	// introspection, independent of Go's randomized map iteration.
	order []int64
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[int64]*Record)}
}

// Intern returns the Record for id, creating it from item if absent. A
// second Intern call with the same id and an equal item is a no-op that
// returns the original Record; an id reused with a different item is a
// RegistryCollisionError.
func (r *Registry) Intern(id int64, item *GeoItem) (*Record, error) {
	if existing, ok := r.byID[id]; ok {
		if !existing.Item.Equal(item) {
			return nil, &RegistryCollisionError{ID: id}
		}
		return existing, nil
	}
	rec := &Record{ID: id, Item: item}
	r.byID[id] = rec
	r.order = append(r.order, id)
	return rec, nil
}

// Get looks up a Record by id.
func (r *Registry) Get(id int64) (*Record, bool) {
	rec, ok := r.byID[id]
	return rec, ok
}

// MustGet looks up a Record by id, panicking if absent. Only safe to
// call with ids that the caller knows came from this registry (e.g. ids
// returned by a trie lookup against the same engine).
func (r *Registry) MustGet(id int64) *Record {
	rec, ok := r.byID[id]
	if !ok {
		panic("geo: registry has no record for id")
	}
	return rec
}

// Len reports the number of interned records.
func (r *Registry) Len() int {
	return len(r.byID)
}

// All returns every Record in insertion order.
func (r *Registry) All() []*Record {
	out := make([]*Record, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// MaxID returns the largest id currently in the registry, or 0 if the
// registry holds no positive id.
func (r *Registry) MaxID() int64 {
	var max int64
	for _, id := range r.order {
		if id > max {
			max = id
		}
	}
	return max
}
