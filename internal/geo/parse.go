package geo

import (
	"fmt"
	"strings"
)

// levelSep is the separator joining ancestor names within one language's
// hierarchical string.
const levelSep = ", "

// collapseDoubleSpaces repeatedly folds "  " into " " until none remain.
func collapseDoubleSpaces(s string) string {
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return s
}

// splitTopLevel splits s on ", " at paren-depth 0, leaving parenthesized
// former-name tails inside a segment untouched even if they happen to
// contain a comma.
func splitTopLevel(s string) []string {
	var segments []string
	depth := 0
	start := 0
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 && i+1 < len(runes) && runes[i+1] == ' ' {
				segments = append(segments, string(runes[start:i]))
				start = i + 2
				i++
			}
		}
	}
	segments = append(segments, string(runes[start:]))
	return segments
}

// parseSegmentName splits one hierarchical segment into its current and
// optional former name, e.g. "Kyiv (Kiev)" -> Name{Name:"Kyiv",
// OldName:"Kiev"}.
func parseSegmentName(segment string) Name {
	s := strings.TrimSpace(segment)
	if strings.HasSuffix(s, ")") {
		if idx := strings.LastIndex(s, "("); idx > 0 {
			name := strings.TrimSpace(s[:idx])
			old := strings.TrimSpace(s[idx+1 : len(s)-1])
			if name != "" {
				return NewNameWithOld(name, old)
			}
		}
	}
	return NewName(s)
}

// ParseName parses one flat "(former_name)"-tagged segment into a Name,
// without the hierarchical splitting Parse does. Used by tree-format
// import, where each row already names exactly one level.
func ParseName(segment string) Name {
	return parseSegmentName(segment)
}

func endsWithRaionKeyword(segment string) bool {
	return strings.HasSuffix(strings.TrimSpace(parseSegmentName(segment).Name), RaionKeyword)
}

// levelTypes returns the ordered Type chain (region-first) for a
// hierarchical string with n segments ending in finalType, using the
// count-based and raion-keyword disambiguation rules of §4.2.
func levelTypes(finalType Type, n int, primarySegments []string) ([]Type, error) {
	switch finalType {
	case Region:
		if n != 1 {
			return nil, &ParseError{Reason: fmt.Sprintf("region expects 1 level, got %d", n)}
		}
		return []Type{Region}, nil

	case Raion:
		if n != 2 {
			return nil, &ParseError{Reason: fmt.Sprintf("raion expects 2 levels, got %d", n)}
		}
		return []Type{Region, Raion}, nil

	case City:
		switch n {
		case 2:
			return []Type{Region, City}, nil
		case 3:
			return []Type{Region, Raion, City}, nil
		default:
			return nil, &ParseError{Reason: fmt.Sprintf("city expects 2 or 3 levels, got %d", n)}
		}

	case District, MicroDistrict:
		switch n {
		case 3:
			return []Type{Region, City, finalType}, nil
		case 4:
			return []Type{Region, Raion, City, finalType}, nil
		default:
			return nil, &ParseError{Reason: fmt.Sprintf("%s expects 3 or 4 levels, got %d", finalType, n)}
		}

	case Street:
		switch n {
		case 3:
			return []Type{Region, City, Street}, nil
		case 4:
			if endsWithRaionKeyword(primarySegments[n-3]) {
				return []Type{Region, Raion, City, Street}, nil
			}
			return []Type{Region, City, District, Street}, nil
		default:
			return nil, &ParseError{Reason: fmt.Sprintf("street expects 3 or 4 levels, got %d", n)}
		}

	case Address:
		if n < 4 {
			return nil, &ParseError{Reason: fmt.Sprintf("address expects at least 4 levels, got %d", n)}
		}
		streetTypes, err := levelTypes(Street, n-1, primarySegments[:n-1])
		if err != nil {
			return nil, err
		}
		return append(streetTypes, Address), nil

	default:
		return nil, &ParseError{Reason: fmt.Sprintf("unknown final type %d", int(finalType))}
	}
}

// Parse builds the innermost GeoItem for finalType from its two
// hierarchical strings (outermost first, "; "-free, segments joined by
// ", "), with parent links set all the way up to region. Languages are
// parsed in lockstep: the Nth comma-separated segment of each string
// becomes the Nth level's bilingual Name.
func Parse(finalType Type, primary, secondary string) (*GeoItem, error) {
	primary = collapseDoubleSpaces(strings.TrimSpace(primary))
	secondary = collapseDoubleSpaces(strings.TrimSpace(secondary))

	primarySegments := splitTopLevel(primary)
	secondarySegments := splitTopLevel(secondary)

	if len(primarySegments) != len(secondarySegments) {
		return nil, &ParseError{Reason: fmt.Sprintf(
			"language segment count mismatch: %d vs %d", len(primarySegments), len(secondarySegments))}
	}

	types, err := levelTypes(finalType, len(primarySegments), primarySegments)
	if err != nil {
		return nil, err
	}

	var current *GeoItem
	for i, t := range types {
		item := &GeoItem{
			Type:      t,
			Primary:   parseSegmentName(primarySegments[i]),
			Secondary: parseSegmentName(secondarySegments[i]),
		}
		if current != nil {
			item.Parent = UnresolvedParent(current)
		}
		current = item
	}
	return current, nil
}
