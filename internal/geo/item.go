package geo

// Parent is the sum type for a GeoItem's parent link: either an
// unresolved, freshly-parsed GeoItem, or a Record already interned in
// the registry. The reconciliation walk (engine package) rewrites an
// unresolved Parent to a resolved one in place and then continues upward
// from the resolved Record's own parent.
type Parent struct {
	unresolved *GeoItem
	resolved   *Record
}

// NoParent is the zero Parent, valid only on a root (Region) GeoItem.
var NoParent = Parent{}

// UnresolvedParent wraps a freshly-parsed ancestor that has not yet been
// matched against the registry.
func UnresolvedParent(item *GeoItem) Parent {
	return Parent{unresolved: item}
}

// ResolvedParent wraps an already-interned Record.
func ResolvedParent(r *Record) Parent {
	return Parent{resolved: r}
}

// IsNil reports whether this Parent carries no link at all.
func (p Parent) IsNil() bool {
	return p.unresolved == nil && p.resolved == nil
}

// IsResolved reports whether this Parent has already been matched to a
// Record.
func (p Parent) IsResolved() bool {
	return p.resolved != nil
}

// Item returns the underlying GeoItem regardless of resolution state,
// or nil if IsNil.
func (p Parent) Item() *GeoItem {
	if p.resolved != nil {
		return p.resolved.Item
	}
	return p.unresolved
}

// Record returns the resolved Record, or nil if still unresolved.
func (p Parent) Record() *Record {
	return p.resolved
}

// GeoItem is the polymorphic hierarchical unit: a typed, bilingually
// named node with a parent link. The root type (Region) has a nil
// Parent; every other type has a non-nil one once parsing completes.
type GeoItem struct {
	Type      Type
	Primary   Name
	Secondary Name
	Parent    Parent
}

// Equal compares two GeoItems structurally: same type, same bilingual
// names, and recursively equal parents (a resolved and an unresolved
// parent compare equal if their underlying items are equal).
func (g *GeoItem) Equal(o *GeoItem) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.Type != o.Type {
		return false
	}
	if !g.Primary.Equal(o.Primary) || !g.Secondary.Equal(o.Secondary) {
		return false
	}
	return g.Parent.Item().Equal(o.Parent.Item())
}

// FullName is the rendered primary name used for parent-reconciliation
// lookups and same-parents comparisons ("full rendered primary name" in
// the reconciliation spec).
func (g *GeoItem) FullName() string {
	if g == nil {
		return ""
	}
	return g.Primary.String()
}
