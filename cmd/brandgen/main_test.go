package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"tools.atcollege/dev/brandgen"
	"tools.atcollege/dev/brandgen/internal/config"
	"tools.atcollege/dev/brandgen/internal/logger"
	"tools.atcollege/dev/brandgen/internal/paths"
	"tools.atcollege/dev/brandgen/internal/watch"
)

// ///////////////////////////////////////////////
// resolveVersion Tests
// ///////////////////////////////////////////////

func TestResolveVersionWithLdflags(t *testing.T) {
	original := version
	defer func() { version = original }()

	version = "1.2.3"
	if got := resolveVersion(); got != "1.2.3" {
		t.Errorf("resolveVersion() = %q, want %q", got, "1.2.3")
	}
}

func TestResolveVersionDev(t *testing.T) {
	original := version
	defer func() { version = original }()

	// Test binaries may or may not carry VCS info.
	version = "dev"
	got := resolveVersion()
	if !strings.HasPrefix(got, "dev") {
		t.Errorf("resolveVersion() = %q, expected to start with 'dev'", got)
	}
}

// ///////////////////////////////////////////////
// parseFlags Tests
// ///////////////////////////////////////////////

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    options
		wantErr bool
	}{
		{
			name: "no flags",
			args: nil,
			want: options{configPath: paths.ConfigFile},
		},
		{
			name: "all flags",
			args: []string{"-config", "brand/site.toml", "-out", "dist", "-watch", "-version", "-init"},
			want: options{configPath: "brand/site.toml", outDir: "dist", init: true, watch: true, showVersion: true},
		},
		{
			name: "double dash form",
			args: []string{"--out=build/icons"},
			want: options{configPath: paths.ConfigFile, outDir: "build/icons"},
		},
		{
			name:    "unknown flag",
			args:    []string{"-size", "64"},
			wantErr: true,
		},
		{
			name:    "positional argument",
			args:    []string{"public"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFlags(tt.args, io.Discard)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseFlags() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseFlags() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseFlags_Help(t *testing.T) {
	var stderr bytes.Buffer
	_, err := parseFlags([]string{"-h"}, &stderr)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("parseFlags(-h) error = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(stderr.String(), "-watch") {
		t.Errorf("usage output missing -watch:\n%s", stderr.String())
	}
}

// ///////////////////////////////////////////////
// writeInitConfig Tests
// ///////////////////////////////////////////////

func TestWriteInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brandgen.toml")
	if err := writeInitConfig(path); err != nil {
		t.Fatalf("writeInitConfig() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, brandgen.DefaultConfigTOML) {
		t.Error("written config differs from the embedded default")
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(cfg, config.DefaultConfig()) {
		t.Error("written config does not load as the default config")
	}
}

func TestWriteInitConfig_KeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brandgen.toml")
	original := []byte("version = 1\n[brand]\nglyph = \"#\"\n")
	if err := os.WriteFile(path, original, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := writeInitConfig(path); err == nil {
		t.Fatal("expected error for existing file, got nil")
	}
	data, _ := os.ReadFile(path)
	if !bytes.Equal(data, original) {
		t.Error("existing config was modified")
	}
}

// ///////////////////////////////////////////////
// loadConfig Tests
// ///////////////////////////////////////////////

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string // empty means no file
		outDir  string
		wantDir string
		wantErr bool
	}{
		{
			name:    "missing file uses defaults",
			wantDir: paths.DefaultOutDir,
		},
		{
			name:    "out flag overrides default",
			outDir:  "dist",
			wantDir: "dist",
		},
		{
			name:    "file sets output dir",
			content: "version = 1\n[output]\ndir = \"static\"\n",
			wantDir: "static",
		},
		{
			name:    "out flag overrides file",
			content: "version = 1\n[output]\ndir = \"static\"\n",
			outDir:  "dist",
			wantDir: "dist",
		},
		{
			name:    "invalid file",
			content: "version = 1\n[output]\non_error = \"retry\"\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "brandgen.toml")
			if tt.content != "" {
				if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			cfg, err := loadConfig(options{configPath: path, outDir: tt.outDir})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("loadConfig() error: %v", err)
			}
			if cfg.Output.Dir != tt.wantDir {
				t.Errorf("Output.Dir = %q, want %q", cfg.Output.Dir, tt.wantDir)
			}
		})
	}
}

// ///////////////////////////////////////////////
// Run Lock Tests
// ///////////////////////////////////////////////

func TestAcquireLock_Exclusive(t *testing.T) {
	out := paths.OutputDir{Root: t.TempDir()}

	first, err := acquireLock(out)
	if err != nil {
		t.Fatalf("first acquireLock() error: %v", err)
	}

	if second, err := acquireLock(out); err == nil {
		releaseLock(second)
		releaseLock(first)
		t.Fatal("second acquireLock() succeeded while the lock was held")
	}

	releaseLock(first)
	third, err := acquireLock(out)
	if err != nil {
		t.Fatalf("acquireLock() after release error: %v", err)
	}
	releaseLock(third)
}

func TestAcquireLock_DistinctDirs(t *testing.T) {
	a, err := acquireLock(paths.OutputDir{Root: t.TempDir()})
	if err != nil {
		t.Fatalf("acquireLock(a) error: %v", err)
	}
	defer releaseLock(a)

	b, err := acquireLock(paths.OutputDir{Root: t.TempDir()})
	if err != nil {
		t.Fatalf("acquireLock(b) error: %v", err)
	}
	releaseLock(b)
}

func TestReleaseLock_Nil(t *testing.T) {
	releaseLock(nil)
}

// ///////////////////////////////////////////////
// Generation Tests
// ///////////////////////////////////////////////

// testConfig returns TOML that renders with the bundled Go Bold face into dir.
func testConfig(dir, glyph string) string {
	return "version = 1\n" +
		"[brand]\nglyph = '" + glyph + "'\n" +
		"[output]\ndir = '" + filepath.ToSlash(dir) + "'\n" +
		"[fonts]\ncandidates = ['builtin:gobold']\n"
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "brandgen.toml")
	outDir := filepath.Join(dir, "public")
	if err := os.WriteFile(cfgPath, []byte(testConfig(outDir, "@")), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(options{configPath: cfgPath})
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	var stdout bytes.Buffer
	if err := generate(context.Background(), cfg, &stdout, logger.Discard()); err != nil {
		t.Fatalf("generate() error: %v", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 8 {
		t.Errorf("output has %d files, want 8", len(entries))
	}
	if got := strings.Count(stdout.String(), "Created: "); got != 8 {
		t.Errorf("stdout has %d Created lines, want 8", got)
	}
}

func TestGenerate_BadColor(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.Dir = t.TempDir()
	cfg.Brand.GlyphColor = "orange"

	if err := generate(context.Background(), cfg, io.Discard, logger.Discard()); err == nil {
		t.Fatal("expected error, got nil")
	}
}

// ///////////////////////////////////////////////
// Watch Loop Tests
// ///////////////////////////////////////////////

func TestWatchLoop_RegeneratesOnChange(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping slow watcher test in short mode")
	}

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "brandgen.toml")
	outDir := filepath.Join(dir, "public")
	if err := os.WriteFile(cfgPath, []byte(testConfig(outDir, "@")), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := watch.New(cfgPath, nil)
	if err != nil {
		t.Fatalf("watch.New() error: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stdout bytes.Buffer
	done := make(chan struct{})
	go func() {
		defer close(done)
		watchLoop(ctx, w, options{configPath: cfgPath}, outDir, &stdout, logger.Discard())
	}()

	time.Sleep(100 * time.Millisecond)

	// A broken edit is logged and skipped; the next good one renders.
	if err := os.WriteFile(cfgPath, []byte("version = 1\n[output\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)
	if err := os.WriteFile(cfgPath, []byte(testConfig(outDir, "#")), 0o644); err != nil {
		t.Fatal(err)
	}

	target := filepath.Join(outDir, paths.FaviconICO)
	deadline := time.Now().Add(10 * time.Second)
	for {
		if _, err := os.Stat(target); err == nil {
			break
		}
		if time.Now().After(deadline) {
			cancel()
			<-done
			t.Fatalf("%s not generated after config change", target)
		}
		time.Sleep(50 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("watchLoop did not return after cancel")
	}
}

func TestWatchLoop_StopsOnCancel(t *testing.T) {
	w, err := watch.New(filepath.Join(t.TempDir(), "brandgen.toml"), nil)
	if err != nil {
		t.Fatalf("watch.New() error: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		watchLoop(ctx, w, options{}, "public", io.Discard, logger.Discard())
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watchLoop did not return for a canceled context")
	}
}
