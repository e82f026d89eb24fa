package energy

import "strings"

// Region is one of the fixed geographic partitions of the dataset.
type Region string

const (
	World        Region = "World"
	NorthAmerica Region = "North America"
	Europe       Region = "Europe"
	AsiaPacific  Region = "Asia Pacific"
)

// declared order; never reorder, callers index into it.
var regions = [...]Region{World, NorthAmerica, Europe, AsiaPacific}

// Regions returns the four regions in declared order. The returned slice is
// a fresh copy, callers may modify it.
func Regions() []Region {
	out := make([]Region, len(regions))
	copy(out, regions[:])
	return out
}

// Valid reports whether r is one of the enumerated regions.
func (r Region) Valid() bool {
	for _, known := range regions {
		if r == known {
			return true
		}
	}
	return false
}

// Slug returns a lowercase, dash-separated form suitable for flags and
// file names, e.g. "north-america".
func (r Region) Slug() string {
	return strings.ReplaceAll(strings.ToLower(string(r)), " ", "-")
}

func (r Region) String() string {
	return string(r)
}

// ParseRegion resolves a display name (case-insensitive) or a slug to a
// Region. The second return value is false for unknown input.
func ParseRegion(s string) (Region, bool) {
	s = strings.TrimSpace(s)
	for _, r := range regions {
		if strings.EqualFold(s, string(r)) || strings.EqualFold(s, r.Slug()) {
			return r, true
		}
	}
	return "", false
}
