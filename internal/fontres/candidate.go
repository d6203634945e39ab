// Package fontres resolves the font used to draw the brand glyph.
//
// A [Resolver] walks an ordered list of candidates and returns the first one
// that loads. Resolution never fails: the built-in 7x13 bitmap face is always
// the last resort.
package fontres

import (
	"fmt"
	"strings"
)

// Kind identifies how a candidate is loaded.
type Kind int

const (
	// KindName is a bare file name searched in the font directories.
	KindName Kind = iota
	// KindPath is a file path read directly.
	KindPath
	// KindGoogle is a Google Fonts family and weight.
	KindGoogle
	// KindBuiltin is a font bundled with the binary.
	KindBuiltin
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindName:
		return "name"
	case KindPath:
		return "path"
	case KindGoogle:
		return "google"
	case KindBuiltin:
		return "builtin"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Candidate prefixes.
const (
	GooglePrefix  = "google:"
	BuiltinPrefix = "builtin:"
)

// Candidate is one parsed entry of the fallback list.
type Candidate struct {
	// Raw is the entry as written in the config.
	Raw  string
	Kind Kind
	// Name is the file name, path, or builtin name depending on Kind.
	Name string
	// Family and Weight are set for KindGoogle.
	Family string
	Weight string
}

// ParseCandidate classifies a fallback list entry. Anything containing a
// slash or backslash is a path; anything else without a known prefix is a
// bare file name.
func ParseCandidate(s string) (Candidate, error) {
	raw := s
	s = strings.TrimSpace(s)
	if s == "" {
		return Candidate{}, fmt.Errorf("empty font candidate")
	}

	switch {
	case strings.HasPrefix(s, GooglePrefix):
		family, weight, ok := ParseGoogleFontSpec(s)
		if !ok {
			return Candidate{}, fmt.Errorf("invalid google font spec %q: expected google:FAMILY:WEIGHT", raw)
		}
		return Candidate{Raw: raw, Kind: KindGoogle, Name: s, Family: family, Weight: weight}, nil

	case strings.HasPrefix(s, BuiltinPrefix):
		name := strings.TrimPrefix(s, BuiltinPrefix)
		if _, ok := builtinFonts[name]; !ok {
			return Candidate{}, fmt.Errorf("unknown builtin font %q: want one of %s", name, strings.Join(BuiltinNames(), ", "))
		}
		return Candidate{Raw: raw, Kind: KindBuiltin, Name: name}, nil

	case strings.ContainsAny(s, `/\`):
		return Candidate{Raw: raw, Kind: KindPath, Name: s}, nil

	default:
		return Candidate{Raw: raw, Kind: KindName, Name: s}, nil
	}
}

// ParseGoogleFontSpec parses a "google:Family:Weight" spec into its parts.
// Returns family, weight, and whether the spec is valid.
func ParseGoogleFontSpec(spec string) (family, weight string, ok bool) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) != 3 || parts[0] != "google" || parts[1] == "" || parts[2] == "" {
		return "", "", false
	}
	return parts[1], parts[2], true
}
