// color.go provides hex color string parsing for icon backgrounds and glyphs.

package icon

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Transparent is the keyword accepted by [ParseHexColor] for a fully
// transparent color.
const Transparent = "transparent"

// ParseHexColor parses "#RRGGBB", "#RRGGBBAA", or "transparent" into a
// color.NRGBA. The leading "#" is optional.
func ParseHexColor(s string) (color.NRGBA, error) {
	if strings.EqualFold(strings.TrimSpace(s), Transparent) {
		return color.NRGBA{}, nil
	}
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: must be 6 or 8 hex digits", s)
	}

	var ch [4]uint8
	ch[3] = 255
	for i := 0; i < len(hex)/2; i++ {
		v, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		ch[i] = uint8(v)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
