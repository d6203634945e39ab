// Package generator renders the brand asset manifest: square and rounded PNG
// icons plus the multi-resolution favicon, written atomically to the output
// directory.
package generator

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"strings"

	"tools.atcollege/dev/brandgen/internal/atomicfile"
	"tools.atcollege/dev/brandgen/internal/config"
	"tools.atcollege/dev/brandgen/internal/fontres"
	"tools.atcollege/dev/brandgen/internal/icon"
	"tools.atcollege/dev/brandgen/internal/logger"
	"tools.atcollege/dev/brandgen/internal/paths"
)

// FontResolver returns a face for a point size. Implementations must not
// fail; [fontres.Resolver] is the production implementation.
type FontResolver interface {
	Resolve(ctx context.Context, points float64) *fontres.Handle
}

// Options configures a [Generator].
type Options struct {
	// Stdout receives the Created lines, banner, and HTML snippet.
	Stdout io.Writer
	Logger *slog.Logger
	// Fonts overrides the resolver built from the config's font settings.
	Fonts FontResolver
}

// Generator renders assets for one configuration.
type Generator struct {
	cfg        *config.Config
	out        paths.OutputDir
	glyphColor color.NRGBA
	background color.NRGBA
	fonts      FontResolver
	stdout     io.Writer
	logger     *slog.Logger
}

// AssetError reports a failure producing one output file.
type AssetError struct {
	File string
	Err  error
}

func (e *AssetError) Error() string { return fmt.Sprintf("generate %s: %v", e.File, e.Err) }
func (e *AssetError) Unwrap() error { return e.Err }

// New validates the brand colors of cfg and returns a Generator.
func New(cfg *config.Config, opts Options) (*Generator, error) {
	glyphColor, err := icon.ParseHexColor(cfg.Brand.GlyphColor)
	if err != nil {
		return nil, fmt.Errorf("brand.glyph_color: %w", err)
	}
	background, err := icon.ParseHexColor(cfg.Brand.Background)
	if err != nil {
		return nil, fmt.Errorf("brand.background: %w", err)
	}

	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	fonts := opts.Fonts
	if fonts == nil {
		fonts = fontres.New(fontres.Options{
			Candidates: cfg.Fonts.Candidates,
			SearchDirs: cfg.Fonts.SearchDirs,
			CacheDir:   cfg.Fonts.CacheDir,
			Logger:     log,
		})
	}

	return &Generator{
		cfg:        cfg,
		out:        paths.OutputDir{Root: cfg.Output.Dir},
		glyphColor: glyphColor,
		background: background,
		fonts:      fonts,
		stdout:     stdout,
		logger:     log.With("component", "generator"),
	}, nil
}

// ///////////////////////////////////////////////
// Render Operations
// ///////////////////////////////////////////////

// RenderSquareIcon renders the glyph on a solid size×size canvas at
// round(size*fontSizeRatio) points and writes it as PNG. Returns the path.
func (g *Generator) RenderSquareIcon(ctx context.Context, size int, filename string, fontSizeRatio float64) (string, error) {
	return g.renderPNG(ctx, g.spec(size, icon.Solid, 0), filename, fontSizeRatio)
}

// RenderRoundedIcon renders the glyph on a rounded rectangle with transparent
// corners. cornerRadius <= 0 means size/8.
func (g *Generator) RenderRoundedIcon(ctx context.Context, size int, filename string, fontSizeRatio float64, cornerRadius int) (string, error) {
	return g.renderPNG(ctx, g.spec(size, icon.Rounded, cornerRadius), filename, fontSizeRatio)
}

// RenderFavicon renders one solid canvas per configured favicon size and
// writes them as a single ICO container. Returns the path.
func (g *Generator) RenderFavicon(ctx context.Context) (string, error) {
	fav := g.cfg.Favicon
	if len(fav.Sizes) == 0 {
		return "", fmt.Errorf("no favicon sizes configured")
	}

	frames := make([]image.Image, 0, len(fav.Sizes))
	for _, size := range fav.Sizes {
		img, err := g.render(ctx, g.spec(size, icon.Solid, 0), fav.FontRatio)
		if err != nil {
			return "", fmt.Errorf("favicon %dx%d: %w", size, size, err)
		}
		frames = append(frames, img)
	}

	path := g.out.File(fav.File)
	err := atomicfile.WriteFunc(path, 0o644, func(w io.Writer) error {
		return icon.EncodeICO(w, frames)
	})
	if err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	g.logger.Debug("favicon written", "path", path, "sizes", fmt.Sprint(fav.Sizes))
	return path, nil
}

func (g *Generator) spec(size int, style icon.Style, radius int) icon.Spec {
	return icon.Spec{
		Size:         size,
		Glyph:        g.cfg.Brand.Glyph,
		GlyphColor:   g.glyphColor,
		Background:   g.background,
		Style:        style,
		CornerRadius: radius,
	}
}

func (g *Generator) renderPNG(ctx context.Context, spec icon.Spec, filename string, ratio float64) (string, error) {
	img, err := g.render(ctx, spec, ratio)
	if err != nil {
		return "", err
	}
	path := g.out.File(filename)
	err = atomicfile.WriteFunc(path, 0o644, func(w io.Writer) error {
		return icon.EncodePNG(w, img)
	})
	if err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// render resolves a face for spec and draws one canvas. The face is released
// before returning.
func (g *Generator) render(ctx context.Context, spec icon.Spec, ratio float64) (*image.NRGBA, error) {
	if spec.Size <= 0 {
		return nil, fmt.Errorf("invalid size %d", spec.Size)
	}
	if ratio <= 0 || ratio > 1 {
		return nil, fmt.Errorf("font size ratio %g outside (0, 1]", ratio)
	}

	points := icon.FontPoints(spec.Size, ratio)
	h := g.fonts.Resolve(ctx, points)
	defer h.Close()

	img, p, err := icon.Render(spec, h.Face)
	if err != nil {
		return nil, err
	}
	logger.Trace(g.logger, "rendered canvas",
		"size", spec.Size, "style", spec.Style, "points", points, "font", h.Source, "box", p.Box.String())
	return img, nil
}

// ///////////////////////////////////////////////
// Manifest Driver
// ///////////////////////////////////////////////

// Step is one entry of the run order.
type Step struct {
	File    string
	Favicon bool
	Icon    config.IconConfig
}

// Plan returns the run order: icons in manifest order with the favicon
// placed after favicon.after, or last when that is empty.
func (g *Generator) Plan() []Step {
	steps := make([]Step, 0, len(g.cfg.Icons)+1)
	fav := Step{File: g.cfg.Favicon.File, Favicon: true}
	hasFav := len(g.cfg.Favicon.Sizes) > 0
	placed := false

	for _, ic := range g.cfg.Icons {
		steps = append(steps, Step{File: ic.File, Icon: ic})
		if hasFav && !placed && g.cfg.Favicon.After != "" && strings.EqualFold(ic.File, g.cfg.Favicon.After) {
			steps = append(steps, fav)
			placed = true
		}
	}
	if hasFav && !placed {
		steps = append(steps, fav)
	}
	return steps
}

// Run ensures the output directory exists, renders every step of [Plan], and
// prints the banner and HTML snippet. With output.on_error = "abort" the
// first failure stops the run; with "continue" every step is attempted and
// all failures are returned joined.
func (g *Generator) Run(ctx context.Context) error {
	fmt.Fprintln(g.stdout, "Generating logos and favicons...")
	fmt.Fprintf(g.stdout, "Output directory: %s\n", g.out.Root)
	fmt.Fprintln(g.stdout)

	if err := g.out.Ensure(); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	steps := g.Plan()
	var errs []error
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		path, err := g.runStep(ctx, step)
		if err != nil {
			aerr := &AssetError{File: step.File, Err: err}
			g.logger.Error("asset failed", "file", step.File, "error", err)
			if g.cfg.Output.OnError != config.OnErrorContinue {
				return aerr
			}
			errs = append(errs, aerr)
			continue
		}
		fmt.Fprintf(g.stdout, "Created: %s\n", path)
	}

	if len(errs) > 0 {
		g.logger.Warn("run finished with failures", "failed", len(errs), "total", len(steps))
		return errors.Join(errs...)
	}

	fmt.Fprintln(g.stdout)
	fmt.Fprintln(g.stdout, "All logos generated successfully!")
	if snippet := g.Snippet(); snippet != "" {
		fmt.Fprintln(g.stdout)
		fmt.Fprintln(g.stdout, "Update your index.html with:")
		fmt.Fprint(g.stdout, snippet)
	}
	return nil
}

func (g *Generator) runStep(ctx context.Context, step Step) (string, error) {
	if step.Favicon {
		return g.RenderFavicon(ctx)
	}
	ic := step.Icon
	style, err := icon.ParseStyle(ic.Style)
	if err != nil {
		return "", err
	}
	if style == icon.Rounded {
		return g.RenderRoundedIcon(ctx, ic.Size, ic.File, ic.FontRatio, ic.Radius())
	}
	return g.RenderSquareIcon(ctx, ic.Size, ic.File, ic.FontRatio)
}
