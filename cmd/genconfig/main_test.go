package main

import (
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"tools.atcollege/dev/brandgen/internal/config"
)

// ///////////////////////////////////////////////
// parseSectionPath Tests
// ///////////////////////////////////////////////

func TestParseSectionPath(t *testing.T) {
	tests := []struct {
		name    string
		section string
		want    []string
	}{
		{"single segment", "brand", []string{"brand"}},
		{"two segments", "fonts.google", []string{"fonts", "google"}},
		{"three segments", "a.b.c", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseSectionPath(tt.section)
			if len(got) != len(tt.want) {
				t.Fatalf("parseSectionPath(%q) returned %d segments, want %d", tt.section, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseSectionPath(%q)[%d] = %q, want %q", tt.section, i, got[i], tt.want[i])
				}
			}
		})
	}
}

// ///////////////////////////////////////////////
// sectionName Tests
// ///////////////////////////////////////////////

func TestSectionName(t *testing.T) {
	tests := []struct {
		name    string
		section string
		want    string
	}{
		{"single segment", "output", "Output"},
		{"last of two", "fonts.google", "Google"},
		{"already capitalized", "Icons", "Icons"},
		{"single char", "a", "A"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sectionName(tt.section)
			if got != tt.want {
				t.Errorf("sectionName(%q) = %q, want %q", tt.section, got, tt.want)
			}
		})
	}
}

// ///////////////////////////////////////////////
// injectOmitted Tests
// ///////////////////////////////////////////////

func TestInjectOmittedNoSection(t *testing.T) {
	var out []string
	injectOmitted(&out, nil, map[string]bool{}, config.ConfigDocs)
	if len(out) != 0 {
		t.Errorf("injectOmitted with nil sectionStack produced %d lines, want 0", len(out))
	}
}

func TestInjectOmittedSkipsEmitted(t *testing.T) {
	docs := map[string]config.FieldDoc{
		"log.level": {Comment: "level"},
		"log.file":  {Comment: "file", Alternatives: []string{`# file = "x.log"`}},
	}
	emitted := map[string]bool{"log.level": true}
	var out []string
	injectOmitted(&out, []string{"log"}, emitted, docs)

	got := strings.Join(out, "\n")
	if strings.Contains(got, "# level") {
		t.Error("emitted key was injected again")
	}
	if !strings.Contains(got, `# # file = "x.log"`) {
		t.Errorf("omitted key alternative missing:\n%s", got)
	}
	if !emitted["log.file"] {
		t.Error("injected key not marked emitted")
	}
}

// ///////////////////////////////////////////////
// annotate Tests
// ///////////////////////////////////////////////

func TestAnnotateExampleConfig(t *testing.T) {
	var raw strings.Builder
	if err := toml.NewEncoder(&raw).Encode(config.ExampleConfig()); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got := annotate(raw.String(), config.ConfigDocs)

	t.Run("header", func(t *testing.T) {
		if !strings.HasPrefix(got, "# ///////////////////////////////////////////////\n# brandgen Configuration") {
			t.Errorf("missing header:\n%s", got[:80])
		}
	})

	t.Run("icons separator once", func(t *testing.T) {
		if n := strings.Count(got, "# ///// Icons /////"); n != 1 {
			t.Errorf("Icons separator appears %d times, want 1", n)
		}
		headers := 0
		for _, line := range strings.Split(got, "\n") {
			if line == "[[icons]]" {
				headers++
			}
		}
		if headers != len(config.DefaultIcons()) {
			t.Errorf("[[icons]] header appears %d times, want %d", headers, len(config.DefaultIcons()))
		}
	})

	t.Run("array field documented once", func(t *testing.T) {
		if n := strings.Count(got, "# Edge length in pixels."); n != 1 {
			t.Errorf("icons.size doc appears %d times, want 1", n)
		}
	})

	t.Run("omitted field injected", func(t *testing.T) {
		if !strings.Contains(got, `# # file = "brandgen.log"`) {
			t.Error("log.file alternative not injected")
		}
	})

	t.Run("omitted icon rel has an example", func(t *testing.T) {
		doc := "# Link relation in the HTML snippet"
		i := strings.Index(got, doc)
		if i < 0 {
			t.Fatal("icons.rel doc missing")
		}
		rest := got[i:]
		lines := strings.SplitN(rest, "\n", 3)
		if len(lines) < 2 || lines[1] != `# # rel = "icon"` {
			t.Errorf("icons.rel doc not followed by its example, got %q", lines)
		}
	})

	t.Run("no indentation", func(t *testing.T) {
		for _, line := range strings.Split(got, "\n") {
			if strings.HasPrefix(line, " ") {
				t.Errorf("indented line: %q", line)
			}
		}
	})

	t.Run("parses back to the example config", func(t *testing.T) {
		cfg, err := config.Parse([]byte(got))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if len(cfg.Icons) != len(config.DefaultIcons()) {
			t.Errorf("len(Icons) = %d, want %d", len(cfg.Icons), len(config.DefaultIcons()))
		}
	})
}
