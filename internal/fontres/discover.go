package fontres

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PlatformFontDirs returns the usual font directories of the running OS.
// Directories that do not exist are kept; lookups skip them.
func PlatformFontDirs() []string {
	home, _ := os.UserHomeDir()
	return platformFontDirs(runtime.GOOS, home, os.Getenv)
}

func platformFontDirs(goos, home string, getenv func(string) string) []string {
	var dirs []string
	switch goos {
	case "windows":
		windir := getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		dirs = append(dirs, filepath.Join(windir, "Fonts"))
		if local := getenv("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, filepath.Join(local, "Microsoft", "Windows", "Fonts"))
		}
	case "darwin":
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
		dirs = append(dirs, "/Library/Fonts", "/System/Library/Fonts")
	default:
		if xdg := getenv("XDG_DATA_HOME"); xdg != "" {
			dirs = append(dirs, filepath.Join(xdg, "fonts"))
		}
		if home != "" {
			dirs = append(dirs,
				filepath.Join(home, ".local", "share", "fonts"),
				filepath.Join(home, ".fonts"),
			)
		}
		dirs = append(dirs, "/usr/local/share/fonts", "/usr/share/fonts")
	}
	return dirs
}

// FindByName searches dirs in order for a file called name at any depth,
// ignoring case. Within one directory the lexically first match wins.
func FindByName(name string, dirs []string) (string, bool) {
	pattern := "**/" + escapeMeta(name)
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		matches, err := doublestar.Glob(os.DirFS(dir), pattern,
			doublestar.WithCaseInsensitive(), doublestar.WithFilesOnly())
		if err != nil || len(matches) == 0 {
			continue
		}
		sort.Strings(matches)
		return filepath.Join(dir, filepath.FromSlash(matches[0])), true
	}
	return "", false
}

// escapeMeta backslash-escapes glob metacharacters so name matches literally.
func escapeMeta(name string) string {
	var b strings.Builder
	for _, r := range name {
		if strings.ContainsRune(`*?[]{}\`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
