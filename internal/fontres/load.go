package fontres

import (
	"bytes"
	"fmt"
	"strings"

	woff "github.com/tdewolff/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// builtinFonts maps builtin: names to bundled TrueType data.
var builtinFonts = map[string][]byte{
	"gobold":    gobold.TTF,
	"goregular": goregular.TTF,
}

// BuiltinNames returns the accepted builtin: candidate names.
func BuiltinNames() []string {
	return []string{"gobold", "goregular"}
}

// parseFont parses SFNT data, converting WOFF/WOFF2 first. For a collection
// (.ttc/.otc) the first face is used.
func parseFont(name string, data []byte) (*opentype.Font, error) {
	data, err := toSFNT(name, data)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err == nil {
		return f, nil
	}
	coll, cerr := opentype.ParseCollection(data)
	if cerr != nil {
		return nil, fmt.Errorf("parse font %s: %w", name, err)
	}
	if coll.NumFonts() == 0 {
		return nil, fmt.Errorf("parse font %s: empty collection", name)
	}
	f, err = coll.Font(0)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: collection face 0: %w", name, err)
	}
	return f, nil
}

// toSFNT converts web font data to SFNT. Other data is returned unchanged.
func toSFNT(name string, data []byte) ([]byte, error) {
	if !isWebFont(name, data) {
		return data, nil
	}
	sfnt, err := woff.ToSFNT(data)
	if err != nil {
		return nil, fmt.Errorf("convert %s to sfnt: %w", name, err)
	}
	return sfnt, nil
}

// isWebFont checks whether data is WOFF or WOFF2 by extension or magic bytes.
func isWebFont(name string, data []byte) bool {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".woff2") || strings.HasSuffix(lower, ".woff") {
		return true
	}
	return bytes.HasPrefix(data, []byte("wOF2")) || bytes.HasPrefix(data, []byte("wOFF"))
}
