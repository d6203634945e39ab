package fontres

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"tools.atcollege/dev/brandgen/internal/atomicfile"
)

// DefaultCSSBase is the Google Fonts CSS2 API endpoint.
const DefaultCSSBase = "https://fonts.googleapis.com/css2"

// fontURLRe extracts the font file URL from the CSS response.
// Matches: url(https://fonts.gstatic.com/s/inter/v18/xxx.woff2)
var fontURLRe = regexp.MustCompile(`url\((https?://[^)\s]+)\)`)

// GoogleFetcher downloads fonts from the Google Fonts CSS API and caches the
// converted SFNT bytes on disk.
type GoogleFetcher struct {
	Client   *retryablehttp.Client
	CSSBase  string
	CacheDir string
	// UserAgent selects the served format. A modern browser UA gets WOFF2.
	UserAgent string
	logger    *slog.Logger
}

// NewGoogleFetcher returns a fetcher with a retrying client and the public
// CSS endpoint. cacheDir is created on first write.
func NewGoogleFetcher(cacheDir string, logger *slog.Logger) *GoogleFetcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.RetryWaitMin = 250 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = 15 * time.Second
	client.Logger = logger
	return &GoogleFetcher{
		Client:    client,
		CSSBase:   DefaultCSSBase,
		CacheDir:  cacheDir,
		UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36",
		logger:    logger,
	}
}

// CachePath returns the cache file of a family and weight.
func (g *GoogleFetcher) CachePath(family, weight string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', ':':
			return '_'
		}
		return r
	}, family)
	return filepath.Join(g.CacheDir, fmt.Sprintf("%s-%s.ttf", safe, weight))
}

// Fetch returns SFNT bytes for family at weight, from the cache when present.
func (g *GoogleFetcher) Fetch(ctx context.Context, family, weight string) ([]byte, error) {
	cacheFile := g.CachePath(family, weight)
	if data, err := os.ReadFile(cacheFile); err == nil {
		_, perr := parseFont(cacheFile, data)
		if perr == nil {
			g.logger.Debug("google font cache hit", "family", family, "weight", weight, "path", cacheFile)
			return data, nil
		}
		g.logger.Warn("discarding unreadable cached font", "path", cacheFile, "error", perr)
		if rerr := os.Remove(cacheFile); rerr != nil {
			g.logger.Warn("failed to remove cached font", "path", cacheFile, "error", rerr)
		}
	}

	cssURL := fmt.Sprintf("%s?family=%s:wght@%s", g.CSSBase, url.QueryEscape(family), url.QueryEscape(weight))
	cssBody, err := g.get(ctx, cssURL, 1<<20)
	if err != nil {
		return nil, fmt.Errorf("fetching CSS for %s wght@%s: %w", family, weight, err)
	}

	matches := fontURLRe.FindSubmatch(cssBody)
	if matches == nil {
		return nil, fmt.Errorf("no font URL found in Google Fonts CSS response for %s wght@%s", family, weight)
	}
	fontURL := string(matches[1])

	fontData, err := g.get(ctx, fontURL, 10<<20)
	if err != nil {
		return nil, fmt.Errorf("downloading font file: %w", err)
	}

	fontData, err = toSFNT(fontURL, fontData)
	if err != nil {
		return nil, err
	}
	if _, err := parseFont(fontURL, fontData); err != nil {
		return nil, fmt.Errorf("downloaded font: %w", err)
	}

	if err := os.MkdirAll(g.CacheDir, 0o755); err != nil {
		g.logger.Warn("failed to create font cache dir", "dir", g.CacheDir, "error", err)
		return fontData, nil
	}
	if err := atomicfile.Write(cacheFile, fontData, 0o644); err != nil {
		g.logger.Warn("failed to cache font", "path", cacheFile, "error", err)
	}
	return fontData, nil
}

// get performs a GET and returns at most limit bytes of a 200 response.
func (g *GoogleFetcher) get(ctx context.Context, rawURL string, limit int64) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if g.UserAgent != "" {
		req.Header.Set("User-Agent", g.UserAgent)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d", rawURL, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}
