package ringcode

import (
	"image/color"
	"sort"
)

// Style is a purely cosmetic color pair; it has no effect on decodability.
type Style struct {
	Name       string
	Background color.RGBA
	Foreground color.RGBA
}

// styles is the build-time style table. Adding a style means adding an entry.
var styles = map[string]Style{
	"classic":  {"Classic", rgb(0xFFFFFF), rgb(0x111111)},
	"inverted": {"Inverted", rgb(0x111111), rgb(0xFFFFFF)},
	"midnight": {"Midnight", rgb(0x0B1026), rgb(0x7FB4FF)},
	"ocean":    {"Ocean", rgb(0xE8F6F8), rgb(0x04557C)},
	"forest":   {"Forest", rgb(0xF0F5EC), rgb(0x1E4620)},
	"sunset":   {"Sunset", rgb(0xFFF3E0), rgb(0xB23A1A)},
	"mono":     {"Mono", rgb(0xF5F5F5), rgb(0x333333)},
	"amber":    {"Amber", rgb(0xFFF8E1), rgb(0x8A5A00)},
	"crimson":  {"Crimson", rgb(0xFDEDEE), rgb(0x7C1020)},
	"slate":    {"Slate", rgb(0xECEFF1), rgb(0x2F3B45)},
	"violet":   {"Violet", rgb(0xF4EDFB), rgb(0x46166B)},
	"mint":     {"Mint", rgb(0xEAFBF2), rgb(0x0A5C3E)},
}

// DefaultStyle is used when a style id is unknown.
const DefaultStyle = "classic"

// StyleByID looks up a style; unknown ids fall back to DefaultStyle.
func StyleByID(id string) Style {
	if s, ok := styles[id]; ok {
		return s
	}
	return styles[DefaultStyle]
}

// StyleIDs returns the recognized style ids, sorted.
func StyleIDs() []string {
	ids := make([]string, 0, len(styles))
	for id := range styles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func rgb(hex uint32) color.RGBA {
	return color.RGBA{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
		A: 0xFF,
	}
}
