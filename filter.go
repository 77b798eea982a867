package editor

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FilterType is a named color preset that can be stacked on an image.
type FilterType int

const (
	FilterNone FilterType = iota
	FilterGrayscale
	FilterSepia
	FilterVintage
	FilterWarm
	FilterCool
	FilterHighContrast
)

var filterNames = [...]string{
	FilterNone:         "none",
	FilterGrayscale:    "grayscale",
	FilterSepia:        "sepia",
	FilterVintage:      "vintage",
	FilterWarm:         "warm",
	FilterCool:         "cool",
	FilterHighContrast: "high_contrast",
}

// Filters lists every filter type in declaration order.
func Filters() []FilterType {
	return []FilterType{
		FilterNone, FilterGrayscale, FilterSepia, FilterVintage,
		FilterWarm, FilterCool, FilterHighContrast,
	}
}

func (f FilterType) String() string {
	if f < 0 || int(f) >= len(filterNames) {
		return "unknown"
	}
	return filterNames[f]
}

// DisplayName returns a human readable name such as "High Contrast".
func DisplayName(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

// DisplayName returns the filter's label for menus.
func (f FilterType) DisplayName() string {
	return DisplayName(f.String())
}

// ParseFilter converts a name produced by String back to a FilterType.
// Matching is case-insensitive and accepts spaces or dashes for underscores.
func ParseFilter(name string) (FilterType, bool) {
	name = normalizeName(name)
	for i, n := range filterNames {
		if n == name {
			return FilterType(i), true
		}
	}
	return FilterNone, false
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(name)
}

// Matrix returns the preset's fixed color matrix. Unknown values map to
// the identity.
func (f FilterType) Matrix() ColorMatrix {
	switch f {
	case FilterGrayscale:
		return SaturationMatrix(0)

	case FilterSepia:
		return ColorMatrix{
			0.393, 0.769, 0.189, 0, 0,
			0.349, 0.686, 0.168, 0, 0,
			0.272, 0.534, 0.131, 0, 0,
			0, 0, 0, 1, 0,
		}

	case FilterVintage:
		return ColorMatrix{
			0.6, 0.3, 0.1, 0, 30,
			0.2, 0.7, 0.1, 0, 30,
			0.2, 0.1, 0.6, 0, 30,
			0, 0, 0, 1, 0,
		}

	case FilterWarm:
		return ColorMatrix{
			1.2, 0, 0, 0, 20,
			0, 1.1, 0, 0, 10,
			0, 0, 0.9, 0, 0,
			0, 0, 0, 1, 0,
		}

	case FilterCool:
		return ColorMatrix{
			0.9, 0, 0, 0, 0,
			0, 1.0, 0, 0, 0,
			0, 0, 1.2, 0, 20,
			0, 0, 0, 1, 0,
		}

	case FilterHighContrast:
		return ColorMatrix{
			1.5, 0, 0, 0, -50,
			0, 1.5, 0, 0, -50,
			0, 0, 1.5, 0, -50,
			0, 0, 0, 1, 0,
		}

	default:
		return IdentityMatrix()
	}
}
