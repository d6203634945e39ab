package fontres

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"tools.atcollege/dev/brandgen/internal/paths"
)

// FallbackSource names the built-in bitmap face used when no candidate loads.
const FallbackSource = "basicfont"

// ///////////////////////////////////////////////
// Handle
// ///////////////////////////////////////////////

// Handle is a resolved font face at one point size.
type Handle struct {
	Face font.Face
	// Source is the candidate that produced the face, or [FallbackSource].
	Source string
	// Scalable is false for the bitmap fallback, which ignores the size.
	Scalable bool
}

// Close releases the face.
func (h *Handle) Close() error {
	if h == nil || h.Face == nil {
		return nil
	}
	return h.Face.Close()
}

// ///////////////////////////////////////////////
// Resolver
// ///////////////////////////////////////////////

// Options configures a [Resolver].
type Options struct {
	// Candidates are tried in order.
	Candidates []string
	// SearchDirs are searched for bare names before SystemDirs.
	SearchDirs []string
	// SystemDirs are the platform font directories. Nil means
	// [PlatformFontDirs]; an empty non-nil slice disables them.
	SystemDirs []string
	// Google fetches google: candidates. Nil builds one from CacheDir on
	// first use.
	Google *GoogleFetcher
	// CacheDir is the Google Fonts cache when Google is nil.
	CacheDir string
	Logger   *slog.Logger
}

// Resolver picks the first loadable font from an ordered candidate list.
// The winning font is parsed once and reused; faces are created per call.
type Resolver struct {
	opts   Options
	logger *slog.Logger

	mu       sync.Mutex
	resolved bool
	font     *opentype.Font
	source   string
}

// New returns a Resolver. Nothing is loaded until the first [Resolver.Resolve].
func New(opts Options) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.SystemDirs == nil {
		opts.SystemDirs = PlatformFontDirs()
	}
	return &Resolver{opts: opts, logger: logger.With("component", "fontres")}
}

// Resolve returns a face for points. It never fails: when no candidate loads,
// the built-in 7x13 bitmap face is returned.
func (r *Resolver) Resolve(ctx context.Context, points float64) *Handle {
	f, source := r.load(ctx)
	if f == nil {
		return fallbackHandle()
	}

	if points < 1 {
		points = 1
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		r.logger.Warn("create font face failed, using bitmap fallback", "source", source, "points", points, "error", err)
		return fallbackHandle()
	}
	return &Handle{Face: face, Source: source, Scalable: true}
}

// load walks the candidate list once and caches the outcome.
func (r *Resolver) load(ctx context.Context) (*opentype.Font, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.resolved {
		return r.font, r.source
	}

	for _, raw := range r.opts.Candidates {
		c, err := ParseCandidate(raw)
		if err != nil {
			r.logger.Debug("skipping font candidate", "candidate", raw, "error", err)
			continue
		}
		f, where, err := r.loadCandidate(ctx, c)
		if err != nil {
			r.logger.Debug("font candidate unavailable", "candidate", raw, "kind", c.Kind, "error", err)
			continue
		}
		r.logger.Info("font resolved", "candidate", raw, "from", where)
		r.resolved, r.font, r.source = true, f, c.Raw
		return f, c.Raw
	}

	r.logger.Warn("no font candidate loaded, using bitmap fallback", "candidates", len(r.opts.Candidates))
	r.resolved = true
	return nil, ""
}

// loadCandidate loads one candidate, returning the parsed font and where it
// came from.
func (r *Resolver) loadCandidate(ctx context.Context, c Candidate) (*opentype.Font, string, error) {
	switch c.Kind {
	case KindBuiltin:
		f, err := parseFont(c.Name, builtinFonts[c.Name])
		return f, BuiltinPrefix + c.Name, err

	case KindPath:
		return r.loadFile(c.Name)

	case KindName:
		dirs := append(append([]string{}, r.opts.SearchDirs...), r.opts.SystemDirs...)
		path, ok := FindByName(c.Name, dirs)
		if !ok {
			return nil, "", fmt.Errorf("%s not found in %d font directories", c.Name, len(dirs))
		}
		return r.loadFile(path)

	case KindGoogle:
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}
		g := r.google()
		data, err := g.Fetch(ctx, c.Family, c.Weight)
		if err != nil {
			return nil, "", err
		}
		path := g.CachePath(c.Family, c.Weight)
		f, err := parseFont(path, data)
		return f, path, err
	}
	return nil, "", fmt.Errorf("unsupported candidate kind %v", c.Kind)
}

func (r *Resolver) loadFile(path string) (*opentype.Font, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	f, err := parseFont(path, data)
	return f, path, err
}

func (r *Resolver) google() *GoogleFetcher {
	if r.opts.Google == nil {
		dir := r.opts.CacheDir
		if dir == "" {
			dir = paths.DefaultFontCacheDir()
		}
		r.opts.Google = NewGoogleFetcher(dir, r.logger)
	}
	return r.opts.Google
}

func fallbackHandle() *Handle {
	return &Handle{Face: basicfont.Face7x13, Source: FallbackSource}
}
