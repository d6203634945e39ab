package generator

import (
	"fmt"
	"html"
	"strings"

	"tools.atcollege/dev/brandgen/internal/config"
)

// Snippet returns the <link> tags for the generated favicon files, one per
// line with two-space indentation: favicon.ico first, then rel="icon" PNGs in
// manifest order, then apple-touch icons. Returns "" when nothing is linked.
func (g *Generator) Snippet() string {
	var b strings.Builder
	if len(g.cfg.Favicon.Sizes) > 0 {
		fmt.Fprintf(&b, `  <link rel="icon" type="image/x-icon" href="%s">`+"\n", g.href(g.cfg.Favicon.File))
	}
	for _, ic := range g.cfg.Icons {
		if ic.Rel == config.RelIcon {
			fmt.Fprintf(&b, `  <link rel="icon" type="image/png" sizes="%dx%d" href="%s">`+"\n", ic.Size, ic.Size, g.href(ic.File))
		}
	}
	for _, ic := range g.cfg.Icons {
		if ic.Rel == config.RelAppleTouch {
			fmt.Fprintf(&b, `  <link rel="apple-touch-icon" sizes="%dx%d" href="%s">`+"\n", ic.Size, ic.Size, g.href(ic.File))
		}
	}
	return b.String()
}

// href returns the escaped snippet URL of file.
func (g *Generator) href(file string) string {
	return html.EscapeString(g.cfg.Href(file))
}
