// Package palette maps the color tags stored on family members and
// calendar events to concrete RGB values for display.
package palette

// DefaultHex is used for empty or unknown tags.
const DefaultHex = "#9CA3AF"

var tagToHex = map[string]string{
	"red":    "#EF4444",
	"orange": "#F97316",
	"yellow": "#EAB308",
	"green":  "#22C55E",
	"teal":   "#14B8A6",
	"blue":   "#3B82F6",
	"indigo": "#6366F1",
	"purple": "#A855F7",
	"pink":   "#EC4899",
	"brown":  "#92400E",
	"gray":   "#6B7280",
}

// Hex resolves a color tag to its RGB hex value, falling back to
// DefaultHex for tags with no mapping.
func Hex(tag string) string {
	if hex, ok := tagToHex[tag]; ok {
		return hex
	}
	return DefaultHex
}
