package config

// ///////////////////////////////////////////////
// Documentation Types
// ///////////////////////////////////////////////

// FieldDoc holds documentation and alternative examples for a single config field.
// The genconfig tool uses [FieldDoc] values to annotate the generated config.default.toml.
type FieldDoc struct {
	// Comment is shown as a header comment above the field in the example config.
	Comment string

	// Alternatives are shown as commented-out lines below the active value.
	Alternatives []string
}

// ///////////////////////////////////////////////
// Field Documentation Map
// ///////////////////////////////////////////////

// ConfigDocs maps TOML field paths (dot-separated, e.g. "brand.glyph_color")
// to their [FieldDoc] entries. Fields of the [[icons]] array tables are keyed
// as "icons.<field>". The genconfig tool uses this map to annotate the
// generated config.default.toml with inline comments and alternative examples.
var ConfigDocs = map[string]FieldDoc{
	// ── Root ──────────────────────────────────────────────────────
	"version": {
		Comment: "Config schema version. Do not edit.",
	},

	// ── Brand ─────────────────────────────────────────────────────
	"brand": {
		Comment: "The glyph drawn at the center of every icon.",
	},
	"brand.glyph": {
		Comment: "Text rendered on each canvas, centered by its measured ink box.",
	},
	"brand.glyph_color": {
		Comment: "Glyph color as \"#RRGGBB\" or \"#RRGGBBAA\". Default is Tailwind orange-500.",
	},
	"brand.background": {
		Comment: "Background fill. \"transparent\" leaves the canvas empty.",
		Alternatives: []string{
			`background = "#111827"`,
			`background = "transparent"`,
		},
	},

	// ── Output ────────────────────────────────────────────────────
	"output": {
		Comment: "Where assets are written and how failures are handled.",
	},
	"output.dir": {
		Comment: "Output directory, created if missing. The -out flag overrides it.",
	},
	"output.on_error": {
		Comment: "\"abort\" stops at the first failed asset.\n\"continue\" renders every asset and reports all failures at the end.",
		Alternatives: []string{
			`on_error = "continue"`,
		},
	},
	"output.href_prefix": {
		Comment: "Prefix for file names in the printed HTML <head> snippet.",
		Alternatives: []string{
			`href_prefix = "/static/"`,
		},
	},

	// ── Fonts ─────────────────────────────────────────────────────
	"fonts": {
		Comment: "Font fallback chain. The first candidate that loads wins.\nThe built-in 7x13 bitmap font is always tried last.",
	},
	"fonts.candidates": {
		Comment: "Entries are a bare file name (searched in the font directories),\nan absolute path, \"google:FAMILY:WEIGHT\" (downloaded and cached),\nor \"builtin:gobold\" / \"builtin:goregular\".",
		Alternatives: []string{
			`candidates = ["google:Inter:700", "builtin:gobold"]`,
		},
	},
	"fonts.search_dirs": {
		Comment: "Extra directories searched for bare file names before the platform font directories.",
		Alternatives: []string{
			`# search_dirs = ["./assets/fonts"]`,
		},
	},
	"fonts.cache_dir": {
		Comment: "Cache for Google Fonts downloads. Empty uses the user cache directory.",
		Alternatives: []string{
			`# cache_dir = "/tmp/brandgen-fonts"`,
		},
	},

	// ── Favicon ───────────────────────────────────────────────────
	"favicon": {
		Comment: "Multi-resolution favicon.ico. Set sizes = [] to skip it.",
	},
	"favicon.file": {},
	"favicon.sizes": {
		Comment: "Embedded bitmap sizes in pixels (1-256).",
		Alternatives: []string{
			`sizes = [16, 24, 32, 48, 64]`,
		},
	},
	"favicon.font_ratio": {
		Comment: "Glyph point size as a fraction of each bitmap size.",
	},
	"favicon.after": {
		Comment: "Write the favicon right after this icon. Empty means after every icon.",
	},

	// ── Log ───────────────────────────────────────────────────────
	"log": {
		Comment: "Logging configuration",
	},
	"log.level": {
		Comment: "Minimum log level. Options: \"trace\", \"debug\", \"info\", \"warn\", \"error\"",
		Alternatives: []string{
			`level = "debug"`,
			`level = "warn"`,
		},
	},
	"log.file": {
		Comment: "Optional log file, written in addition to stderr.",
		Alternatives: []string{
			`# file = "brandgen.log"`,
		},
	},
	"log.max_size_mb": {
		Comment: "Maximum log file size in megabytes before rotation.",
	},

	// ── Icons ─────────────────────────────────────────────────────
	"icons": {
		Comment: "PNG manifest, rendered in order. Listing any [[icons]] replaces the whole default list.",
	},
	"icons.file": {},
	"icons.size": {
		Comment: "Edge length in pixels.",
	},
	"icons.style": {
		Comment: "\"solid\" fills the square; \"rounded\" fills a rounded rectangle with transparent corners.",
	},
	"icons.font_ratio": {
		Comment: "Glyph point size as a fraction of size.",
	},
	"icons.corner_radius": {
		Comment: "Rounded style only. 0 means size/8.",
		Alternatives: []string{
			`# corner_radius = 96`,
		},
	},
	"icons.rel": {
		Comment: "Link relation in the HTML snippet: \"icon\", \"apple-touch-icon\", or unset.",
		Alternatives: []string{
			`# rel = "icon"`,
		},
	},
}
