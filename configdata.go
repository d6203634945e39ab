// Package brandgen provides embedded assets for the brandgen CLI.
//
// The root package exists solely to embed [config.default.toml] via
// [DefaultConfigTOML]. The -init flag writes it out as a starting
// brandgen.toml.
package brandgen

import _ "embed"

// DefaultConfigTOML holds the raw bytes of config.default.toml, embedded at
// build time.
//
//go:embed config.default.toml
var DefaultConfigTOML []byte
