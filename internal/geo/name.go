// Package geo defines the typed administrative entity model (Region
// through Address), the bilingual Name value object, and the
// process-wide-per-engine Record registry used to dedupe hierarchy
// parents discovered during ingest.
package geo

import "fmt"

// Name is a bilingual-safe name value: a current name and an optional
// former name. Equality is structural and Name is immutable once
// constructed.
type Name struct {
	Name    string
	OldName string
	HasOld  bool
}

// NewName constructs a Name with no former name.
func NewName(name string) Name {
	return Name{Name: name}
}

// NewNameWithOld constructs a Name carrying a former name.
func NewNameWithOld(name, oldName string) Name {
	return Name{Name: name, OldName: oldName, HasOld: true}
}

// String renders "name (old_name)" when a former name is present, else
// just "name".
func (n Name) String() string {
	if n.HasOld {
		return fmt.Sprintf("%s (%s)", n.Name, n.OldName)
	}
	return n.Name
}

// Equal reports whether two Names are structurally identical.
func (n Name) Equal(o Name) bool {
	if n.Name != o.Name || n.HasOld != o.HasOld {
		return false
	}
	return !n.HasOld || n.OldName == o.OldName
}
