package geo

import "fmt"

// Type is the closed enumeration of administrative levels, largest area
// first. Parent-type rules are a fixed switch over Type in levelTypes
// (parse.go) rather than per-type dispatch; there is no separate rule
// table value.
type Type int

const (
	Region Type = iota
	Raion
	City
	District
	MicroDistrict
	Street
	Address
)

var typeNames = map[Type]string{
	Region:        "region",
	Raion:         "raion",
	City:          "city",
	District:      "district",
	MicroDistrict: "microdistrict",
	Street:        "street",
	Address:       "address",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// MarshalJSON renders a Type as its CSV/API name rather than its
// underlying int, so handler responses read "type":"city" not "type":2.
func (t Type) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

// ParseType resolves a geo_type CSV field into a Type, or a ParseError
// for anything not in the fixed enumeration.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, &ParseError{Reason: fmt.Sprintf("unknown geo_type %q", s)}
}

// RaionKeyword is the canonical word that marks a raion-level name,
// used by the street parent-type disambiguation rule (§4.2).
const RaionKeyword = "район"
