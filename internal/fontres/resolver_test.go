// resolver_test.go tests the [Resolver] fallback chain: builtin fonts, bare
// names found in search directories, absolute paths, Google Fonts, skipping
// broken candidates, and the bitmap fallback.

package fontres

import (
	"context"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
)

func TestResolver(t *testing.T) {
	fontDir := t.TempDir()
	writeFile(t, filepath.Join(fontDir, "brand", "ArialBD.ttf"), string(gobold.TTF))
	writeFile(t, filepath.Join(fontDir, "broken.ttf"), "not a font")
	absPath := filepath.Join(fontDir, "brand", "ArialBD.ttf")

	tests := []struct {
		name         string
		candidates   []string
		wantSource   string
		wantScalable bool
	}{
		{
			name:         "bare name in search dir",
			candidates:   []string{"arialbd.ttf", "builtin:goregular"},
			wantSource:   "arialbd.ttf",
			wantScalable: true,
		},
		{
			name:         "absolute path",
			candidates:   []string{absPath},
			wantSource:   absPath,
			wantScalable: true,
		},
		{
			name:         "missing names fall through to builtin",
			candidates:   []string{"helvetica.ttf", "/no/such/font.ttf", "builtin:gobold"},
			wantSource:   "builtin:gobold",
			wantScalable: true,
		},
		{
			name:         "unparseable font skipped",
			candidates:   []string{"broken.ttf", "builtin:goregular"},
			wantSource:   "builtin:goregular",
			wantScalable: true,
		},
		{
			name:         "invalid candidate skipped",
			candidates:   []string{"google:bad", "builtin:gobold"},
			wantSource:   "builtin:gobold",
			wantScalable: true,
		},
		{
			name:       "nothing loads",
			candidates: []string{"helvetica.ttf", "/no/such/font.ttf"},
			wantSource: FallbackSource,
		},
		{
			name:       "empty list",
			wantSource: FallbackSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(Options{
				Candidates: tt.candidates,
				SearchDirs: []string{fontDir},
				SystemDirs: []string{},
			})
			h := r.Resolve(context.Background(), 48)
			defer h.Close()

			if h.Face == nil {
				t.Fatal("Resolve returned nil face")
			}
			if h.Source != tt.wantSource {
				t.Errorf("Source = %q, want %q", h.Source, tt.wantSource)
			}
			if h.Scalable != tt.wantScalable {
				t.Errorf("Scalable = %v, want %v", h.Scalable, tt.wantScalable)
			}
		})
	}
}

func TestResolverFallbackIsBasicFont(t *testing.T) {
	r := New(Options{SystemDirs: []string{}})
	h := r.Resolve(context.Background(), 300)
	if h.Face != basicfont.Face7x13 {
		t.Error("fallback face is not basicfont.Face7x13")
	}
	if err := h.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestResolverScalesWithPoints(t *testing.T) {
	r := New(Options{Candidates: []string{"builtin:gobold"}, SystemDirs: []string{}})

	small := r.Resolve(context.Background(), 12)
	defer small.Close()
	large := r.Resolve(context.Background(), 120)
	defer large.Close()

	if s, l := small.Face.Metrics().Height, large.Face.Metrics().Height; l <= s {
		t.Errorf("height at 120pt (%v) not greater than at 12pt (%v)", l, s)
	}
}

func TestResolverClampsPoints(t *testing.T) {
	r := New(Options{Candidates: []string{"builtin:gobold"}, SystemDirs: []string{}})
	h := r.Resolve(context.Background(), 0)
	defer h.Close()
	if !h.Scalable {
		t.Error("zero points fell back to the bitmap face")
	}
}

func TestResolverGoogle(t *testing.T) {
	fake := newFakeGoogleFonts(t)
	g := fake.fetcher(t)

	r := New(Options{
		Candidates: []string{"google:Inter:700", "builtin:gobold"},
		SystemDirs: []string{},
		Google:     g,
	})
	for i := 0; i < 3; i++ {
		h := r.Resolve(context.Background(), 32)
		if h.Source != "google:Inter:700" {
			t.Errorf("Source = %q, want google:Inter:700", h.Source)
		}
		h.Close()
	}
	if got := fake.fontHits.Load(); got != 1 {
		t.Errorf("font downloaded %d times, want 1", got)
	}
}

func TestResolverGoogleUnavailable(t *testing.T) {
	fake := newFakeGoogleFonts(t)
	fake.cssStatus = 404
	g := fake.fetcher(t)

	r := New(Options{
		Candidates: []string{"google:Inter:700", "builtin:goregular"},
		SystemDirs: []string{},
		Google:     g,
	})
	h := r.Resolve(context.Background(), 32)
	defer h.Close()
	if h.Source != "builtin:goregular" {
		t.Errorf("Source = %q, want builtin:goregular", h.Source)
	}
}

func TestResolverCanceledContextSkipsGoogle(t *testing.T) {
	fake := newFakeGoogleFonts(t)
	r := New(Options{
		Candidates: []string{"google:Inter:700", "builtin:gobold"},
		SystemDirs: []string{},
		Google:     fake.fetcher(t),
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := r.Resolve(ctx, 32)
	defer h.Close()
	if h.Source != "builtin:gobold" {
		t.Errorf("Source = %q, want builtin:gobold", h.Source)
	}
	if got := fake.cssHits.Load(); got != 0 {
		t.Errorf("CSS requested %d times with canceled context", got)
	}
}
