// Package paths centralizes the file and directory names brandgen reads and
// writes. Output file names are defined here as the single source of truth;
// the default manifest in internal/config refers to these constants.
package paths

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
)

// ///////////////////////////////////////////////
// Constants
// ///////////////////////////////////////////////

// Output file names produced by the default manifest.
const (
	Logo512        = "logo-512.png"
	Logo192        = "logo-192.png"
	AppleTouchIcon = "apple-touch-icon.png"
	Favicon32      = "favicon-32x32.png"
	Favicon16      = "favicon-16x16.png"
	FaviconICO     = "favicon.ico"
	Rounded512     = "logo-rounded-512.png"
	Rounded192     = "logo-rounded-192.png"
)

// Tool file names.
const (
	ConfigFile    = "brandgen.toml"
	DefaultOutDir = "public"
	AppDirName    = "brandgen"
	FontCacheDir  = "fonts"
	LockPrefix    = "brandgen-"
	LockExt       = ".lock"
)

// ///////////////////////////////////////////////
// OutputDir
// ///////////////////////////////////////////////

// OutputDir provides path construction rooted at the asset output directory.
type OutputDir struct {
	Root string
}

// File returns the full path of name inside the output directory.
func (d OutputDir) File(name string) string { return filepath.Join(d.Root, name) }

// Ensure creates the output directory and any missing parents. It is a no-op
// when the directory already exists.
func (d OutputDir) Ensure() error { return os.MkdirAll(d.Root, 0o755) }

// LockFile returns the path of the advisory run lock for this output
// directory. The lock lives in the OS temp directory so the output directory
// only ever contains generated assets. The name is derived from the absolute
// output path, so two spellings of the same directory share one lock.
func (d OutputDir) LockFile() string {
	abs, err := filepath.Abs(d.Root)
	if err != nil {
		abs = d.Root
	}
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	return filepath.Join(os.TempDir(), LockPrefix+hex.EncodeToString(sum[:6])+LockExt)
}

// ///////////////////////////////////////////////
// Cache
// ///////////////////////////////////////////////

// DefaultFontCacheDir returns the platform cache directory for downloaded
// fonts, typically ~/.cache/brandgen/fonts. Falls back to a directory under
// the OS temp dir when no user cache directory is available.
func DefaultFontCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, AppDirName, FontCacheDir)
}
