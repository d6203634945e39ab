// Package config provides configuration loading and defaults for brandgen.
//
// Configuration is read from a TOML file (brandgen.toml by default). Every
// field is optional: the file is decoded on top of [DefaultConfig], so an
// empty or missing file reproduces the stock atCollege asset manifest.
package config

//go:generate go run ../../cmd/genconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"tools.atcollege/dev/brandgen/internal/icon"
	"tools.atcollege/dev/brandgen/internal/paths"
)

// CurrentVersion is the config schema version written by this binary.
const CurrentVersion = 1

// Brand colors of the atCollege app.
const (
	// BrandOrange is Tailwind orange-500, the app's accent color.
	BrandOrange = "#F97316"
	// BrandWhite is the default icon background.
	BrandWhite = "#FFFFFF"
)

// Error policies for [OutputConfig.OnError].
const (
	OnErrorAbort    = "abort"
	OnErrorContinue = "continue"
)

// Icon styles for [IconConfig.Style], as named by [icon.Style.String].
const (
	StyleSolid   = "solid"
	StyleRounded = "rounded"
)

// Link relations for [IconConfig.Rel].
const (
	RelIcon       = "icon"
	RelAppleTouch = "apple-touch-icon"
)

// ///////////////////////////////////////////////
// Configuration Types
// ///////////////////////////////////////////////

// Config represents the top-level brandgen configuration.
type Config struct {
	// Version is the config schema version.
	Version int `toml:"version"`
	// Brand holds the glyph and its colors.
	Brand BrandConfig `toml:"brand"`
	// Output holds output directory and error policy settings.
	Output OutputConfig `toml:"output"`
	// Fonts holds the font fallback chain.
	Fonts FontsConfig `toml:"fonts"`
	// Favicon describes the multi-resolution favicon.ico.
	Favicon FaviconConfig `toml:"favicon"`
	// Log holds logging settings.
	Log LogConfig `toml:"log"`
	// Icons is the ordered manifest of PNG outputs.
	Icons []IconConfig `toml:"icons"`
}

// BrandConfig holds the glyph drawn on every icon and its colors.
type BrandConfig struct {
	// Glyph is the text drawn at the center of each canvas.
	Glyph string `toml:"glyph"`
	// GlyphColor is the "#RRGGBB" color of the glyph.
	GlyphColor string `toml:"glyph_color"`
	// Background is the "#RRGGBB" background color, or "transparent".
	Background string `toml:"background"`
}

// OutputConfig holds output settings.
type OutputConfig struct {
	// Dir is the directory assets are written to. Created if absent.
	Dir string `toml:"dir"`
	// OnError is "abort" (stop at the first failed asset) or "continue"
	// (attempt every asset and report all failures at the end).
	OnError string `toml:"on_error"`
	// HrefPrefix is prepended to file names in the printed HTML snippet.
	HrefPrefix string `toml:"href_prefix"`
}

// FontsConfig holds the ordered font candidate list.
type FontsConfig struct {
	// Candidates are tried in order; the first that loads wins. Entries are a
	// bare file name (searched in the font directories), an absolute path,
	// "google:FAMILY:WEIGHT", or "builtin:gobold" / "builtin:goregular".
	// The built-in 7x13 bitmap font is always tried last.
	Candidates []string `toml:"candidates"`
	// SearchDirs are extra directories searched for bare file names, before
	// the platform font directories.
	SearchDirs []string `toml:"search_dirs,omitempty"`
	// CacheDir stores fonts downloaded from Google Fonts. Empty uses the
	// user cache directory.
	CacheDir string `toml:"cache_dir,omitempty"`
}

// FaviconConfig describes the multi-resolution icon container.
type FaviconConfig struct {
	// File is the output file name.
	File string `toml:"file"`
	// Sizes are the embedded bitmap edge lengths in pixels (1-256).
	Sizes []int `toml:"sizes"`
	// FontRatio is the glyph point size as a fraction of each bitmap size.
	FontRatio float64 `toml:"font_ratio"`
	// After places the favicon right after the named icon in the run order.
	// Empty means after every icon.
	After string `toml:"after,omitempty"`
}

// IconConfig is one PNG in the manifest.
type IconConfig struct {
	// File is the output file name.
	File string `toml:"file"`
	// Size is the square image edge length in pixels.
	Size int `toml:"size"`
	// Style is "solid" or "rounded".
	Style string `toml:"style"`
	// FontRatio is the glyph point size as a fraction of Size.
	FontRatio float64 `toml:"font_ratio"`
	// CornerRadius is the rounded background radius; 0 means Size/8.
	CornerRadius int `toml:"corner_radius,omitempty"`
	// Rel adds the icon to the HTML snippet with this link relation.
	Rel string `toml:"rel,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string `toml:"level"`
	// File is an optional log file path, rotated at MaxSizeMB.
	File string `toml:"file,omitempty"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation.
	MaxSizeMB int `toml:"max_size_mb"`
}

// ///////////////////////////////////////////////
// Default Configuration
// ///////////////////////////////////////////////

// DefaultFontCandidates is the stock fallback chain: bold Arial by name,
// regular Arial by name, then bold Arial at its usual absolute location on
// each platform, then the bundled Go Bold face.
func DefaultFontCandidates() []string {
	return []string{
		"arialbd.ttf",
		"arial.ttf",
		"C:/Windows/Fonts/arialbd.ttf",
		"/Library/Fonts/Arial Bold.ttf",
		"/System/Library/Fonts/Supplemental/Arial Bold.ttf",
		"/usr/share/fonts/truetype/msttcorefonts/Arial_Bold.ttf",
		"builtin:gobold",
	}
}

// DefaultIcons returns the stock PNG manifest.
func DefaultIcons() []IconConfig {
	return []IconConfig{
		{File: paths.Logo512, Size: 512, Style: StyleSolid, FontRatio: 0.7},
		{File: paths.Logo192, Size: 192, Style: StyleSolid, FontRatio: 0.7},
		{File: paths.AppleTouchIcon, Size: 180, Style: StyleSolid, FontRatio: 0.7, Rel: RelAppleTouch},
		{File: paths.Favicon32, Size: 32, Style: StyleSolid, FontRatio: 0.8, Rel: RelIcon},
		{File: paths.Favicon16, Size: 16, Style: StyleSolid, FontRatio: 0.85, Rel: RelIcon},
		{File: paths.Rounded512, Size: 512, Style: StyleRounded, FontRatio: 0.65},
		{File: paths.Rounded192, Size: 192, Style: StyleRounded, FontRatio: 0.65},
	}
}

// DefaultConfig returns a Config populated with the stock atCollege assets.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Brand: BrandConfig{
			Glyph:      "@",
			GlyphColor: BrandOrange,
			Background: BrandWhite,
		},
		Output: OutputConfig{
			Dir:        paths.DefaultOutDir,
			OnError:    OnErrorAbort,
			HrefPrefix: "/",
		},
		Fonts: FontsConfig{
			Candidates: DefaultFontCandidates(),
		},
		Favicon: FaviconConfig{
			File:      paths.FaviconICO,
			Sizes:     []int{16, 32, 48},
			FontRatio: 0.75,
			After:     paths.Favicon16,
		},
		Log: LogConfig{
			Level:     "info",
			MaxSizeMB: 10,
		},
		Icons: DefaultIcons(),
	}
}

// ExampleConfig returns a Config suitable for generating config.default.toml.
func ExampleConfig() *Config {
	return DefaultConfig()
}

// ///////////////////////////////////////////////
// Loading and Saving
// ///////////////////////////////////////////////

// PeekVersion reads just the version field from raw TOML bytes.
// Returns 1 if the version field is missing or zero.
func PeekVersion(data []byte) int {
	var v struct {
		Version int `toml:"version"`
	}
	if err := toml.Unmarshal(data, &v); err != nil {
		return 1
	}
	if v.Version == 0 {
		return 1
	}
	return v.Version
}

// Load reads and parses the configuration file at path.
// If the file doesn't exist, returns DefaultConfig.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes raw TOML on top of [DefaultConfig] and validates the result.
// Arrays replace their defaults wholesale: a file that lists [[icons]]
// defines the complete manifest.
func Parse(data []byte) (*Config, error) {
	if v := PeekVersion(data); v > CurrentVersion {
		return nil, fmt.Errorf("config version %d is newer than supported version %d", v, CurrentVersion)
	}

	cfg := DefaultConfig()
	// Decoding into a non-empty slice merges element-wise; clear the arrays
	// the file sets so they replace the defaults instead.
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if _, ok := raw["icons"]; ok {
		cfg.Icons = nil
		if !hasKey(raw, "favicon", "after") {
			cfg.Favicon.After = ""
		}
	}
	if hasKey(raw, "fonts", "candidates") {
		cfg.Fonts.Candidates = nil
	}
	if hasKey(raw, "favicon", "sizes") {
		cfg.Favicon.Sizes = nil
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Version = CurrentVersion

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// ///////////////////////////////////////////////
// Validation
// ///////////////////////////////////////////////

// validLogLevels is the set of accepted log level strings.
var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

// maxFaviconSize is the largest bitmap an ICO directory entry can describe.
const maxFaviconSize = 256

// Validate checks that all configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	if c.Brand.Glyph == "" {
		return fmt.Errorf("brand.glyph must not be empty")
	}
	if c.Brand.GlyphColor == "" {
		return fmt.Errorf("brand.glyph_color must not be empty")
	}
	if c.Brand.Background == "" {
		return fmt.Errorf("brand.background must not be empty")
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir must not be empty")
	}
	switch c.Output.OnError {
	case OnErrorAbort, OnErrorContinue:
	default:
		return fmt.Errorf("invalid output.on_error %q: must be abort or continue", c.Output.OnError)
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log.level %q: must be trace, debug, info, warn, or error", c.Log.Level)
	}
	if c.Log.File != "" && c.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be > 0 when log.file is set, got %d", c.Log.MaxSizeMB)
	}

	seen := map[string]string{}
	claim := func(file, owner string) error {
		if file == "" {
			return fmt.Errorf("%s: file must not be empty", owner)
		}
		key := strings.ToLower(file)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%s: file %q already produced by %s", owner, file, prev)
		}
		seen[key] = owner
		return nil
	}

	if len(c.Favicon.Sizes) > 0 {
		if err := claim(c.Favicon.File, "favicon"); err != nil {
			return err
		}
		if err := checkRatio("favicon.font_ratio", c.Favicon.FontRatio); err != nil {
			return err
		}
		for _, s := range c.Favicon.Sizes {
			if s <= 0 || s > maxFaviconSize {
				return fmt.Errorf("favicon.sizes: %d out of range 1-%d", s, maxFaviconSize)
			}
		}
	}

	for i, ic := range c.Icons {
		owner := fmt.Sprintf("icons[%d]", i)
		if err := claim(ic.File, owner); err != nil {
			return err
		}
		if ic.Size <= 0 {
			return fmt.Errorf("%s (%s): size must be > 0, got %d", owner, ic.File, ic.Size)
		}
		if _, err := icon.ParseStyle(ic.Style); err != nil {
			return fmt.Errorf("%s (%s): %w", owner, ic.File, err)
		}
		if err := checkRatio(owner+".font_ratio", ic.FontRatio); err != nil {
			return err
		}
		if ic.CornerRadius < 0 || ic.CornerRadius > ic.Size/2 {
			return fmt.Errorf("%s (%s): corner_radius must be between 0 and %d, got %d", owner, ic.File, ic.Size/2, ic.CornerRadius)
		}
		switch ic.Rel {
		case "", RelIcon, RelAppleTouch:
		default:
			return fmt.Errorf("%s (%s): invalid rel %q: must be icon, apple-touch-icon, or empty", owner, ic.File, ic.Rel)
		}
	}

	if c.Favicon.After != "" {
		if owner, ok := seen[strings.ToLower(c.Favicon.After)]; !ok || owner == "favicon" {
			return fmt.Errorf("favicon.after %q does not name an icon in the manifest", c.Favicon.After)
		}
	}

	if len(c.Icons) == 0 && len(c.Favicon.Sizes) == 0 {
		return fmt.Errorf("nothing to generate: no icons and no favicon sizes")
	}
	return nil
}

// hasKey reports whether raw has table.key.
func hasKey(raw map[string]any, table, key string) bool {
	t, ok := raw[table].(map[string]any)
	if !ok {
		return false
	}
	_, ok = t[key]
	return ok
}

// checkRatio reports an error unless r is in (0, 1].
func checkRatio(field string, r float64) error {
	if r <= 0 || r > 1 {
		return fmt.Errorf("%s must be in (0, 1], got %g", field, r)
	}
	return nil
}

// ///////////////////////////////////////////////
// Helpers
// ///////////////////////////////////////////////

// Radius returns the effective corner radius of a rounded icon.
func (ic IconConfig) Radius() int {
	if ic.CornerRadius > 0 {
		return ic.CornerRadius
	}
	return ic.Size / 8
}

// Href returns the snippet URL of a generated file name.
func (c *Config) Href(file string) string {
	return c.Output.HrefPrefix + file
}
