// Package main implements the brandgen CLI, which renders the "@" brand logos
// and the multi-resolution favicon into a static output directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"tools.atcollege/dev/brandgen"
	"tools.atcollege/dev/brandgen/internal/atomicfile"
	"tools.atcollege/dev/brandgen/internal/config"
	"tools.atcollege/dev/brandgen/internal/generator"
	"tools.atcollege/dev/brandgen/internal/logger"
	"tools.atcollege/dev/brandgen/internal/paths"
	"tools.atcollege/dev/brandgen/internal/watch"
)

// ///////////////////////////////////////////////
// Version
// ///////////////////////////////////////////////

// version is set at build time via ldflags (-X main.version=0.1.0).
//
// When ldflags are not set (bare go build), resolveVersion reads the VCS info
// that Go embeds automatically.
var version = "dev"

// resolveVersion returns the build version string. If [version] was set via
// ldflags at build time it is returned as-is; otherwise VCS revision and dirty
// state embedded by the Go toolchain are used to construct a "dev+<hash>" tag.
func resolveVersion() string {
	if version != "dev" {
		return version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version
	}
	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return version
	}
	hash := revision[:min(7, len(revision))]
	if dirty {
		return "dev+" + hash + ".dirty"
	}
	return "dev+" + hash
}

// ///////////////////////////////////////////////
// Flags
// ///////////////////////////////////////////////

// options holds the parsed command line.
type options struct {
	configPath  string
	outDir      string
	init        bool
	watch       bool
	showVersion bool
}

// parseFlags parses args (without the program name). Usage and parse errors
// are written to stderr.
func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("brandgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", paths.ConfigFile, "Config file; built-in defaults are used when it does not exist")
	fs.StringVar(&opts.outDir, "out", "", "Output directory, overrides output.dir")
	fs.BoolVar(&opts.init, "init", false, "Write the default config to -config and exit")
	fs.BoolVar(&opts.watch, "watch", false, "Regenerate whenever the config file changes")
	fs.BoolVar(&opts.showVersion, "version", false, "Print the version and exit")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

// ///////////////////////////////////////////////
// Config
// ///////////////////////////////////////////////

// writeInitConfig writes the embedded default config to path. An existing
// file is never overwritten.
func writeInitConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := atomicfile.Write(path, brandgen.DefaultConfigTOML, 0o644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}

// loadConfig loads the config file and applies the -out override.
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.outDir != "" {
		cfg.Output.Dir = opts.outDir
	}
	return cfg, nil
}

// ///////////////////////////////////////////////
// Run Lock
// ///////////////////////////////////////////////

// acquireLock takes the advisory run lock for out. The returned file must be
// kept open for the duration of the run and passed to [releaseLock].
func acquireLock(out paths.OutputDir) (*os.File, error) {
	path := out.LockFile()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	if err := lockFile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("another brandgen run is writing to %s: %w", out.Root, err)
	}
	return f, nil
}

// releaseLock unlocks and closes f. The lock file itself is left in place so
// a concurrent opener never locks an unlinked inode.
func releaseLock(f *os.File) {
	if f == nil {
		return
	}
	_ = unlockFile(f)
	f.Close()
}

// ///////////////////////////////////////////////
// Generation
// ///////////////////////////////////////////////

// generate renders the full manifest for cfg once.
func generate(ctx context.Context, cfg *config.Config, stdout io.Writer, log *slog.Logger) error {
	gen, err := generator.New(cfg, generator.Options{Stdout: stdout, Logger: log})
	if err != nil {
		return err
	}
	return gen.Run(ctx)
}

// watchLoop regenerates every time the config file changes until ctx is
// canceled. Reload and render failures are logged and the loop keeps
// waiting. The output directory is fixed for the life of the loop because
// the run lock is keyed on it.
func watchLoop(ctx context.Context, w *watch.Watcher, opts options, outDir string, stdout io.Writer, log *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.Events():
		}

		cfg, err := loadConfig(opts)
		if err != nil {
			log.Error("reload config failed", "path", opts.configPath, "error", err)
			continue
		}
		if cfg.Output.Dir != outDir {
			log.Warn("output.dir changed, restart to switch directories", "current", outDir, "configured", cfg.Output.Dir)
			cfg.Output.Dir = outDir
		}

		log.Info("config changed, regenerating", "path", opts.configPath)
		if err := generate(ctx, cfg, stdout, log); err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Fail(log, "regenerate failed", "error", err)
		}
	}
}

// ///////////////////////////////////////////////
// Main
// ///////////////////////////////////////////////

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	if opts.showVersion {
		fmt.Println("brandgen", resolveVersion())
		return
	}

	if opts.init {
		if err := writeInitConfig(opts.configPath); err != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", opts.configPath)
		return
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: load config: %v\n", err)
		os.Exit(1)
	}

	log, logCloser, err := logger.NewLogger(os.Stderr, logger.ParseLevel(cfg.Log.Level), cfg.Log.File, cfg.Log.MaxSizeMB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: init logger: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	log.Debug("brandgen starting", "version", resolveVersion(), "config", opts.configPath, "output", cfg.Output.Dir)

	out := paths.OutputDir{Root: cfg.Output.Dir}
	lock, err := acquireLock(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
	defer releaseLock(lock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := signalChannel()
	go func() {
		select {
		case sig := <-sigCh:
			log.Info("received signal, stopping", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	runErr := generate(ctx, cfg, os.Stdout, log)
	if !opts.watch {
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", runErr)
			// Deferred calls do not run past os.Exit.
			releaseLock(lock)
			logCloser.Close()
			os.Exit(1)
		}
		return
	}
	if runErr != nil {
		logger.Fail(log, "initial generation failed", "error", runErr)
	}

	w, err := watch.New(opts.configPath, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: watch config: %v\n", err)
		releaseLock(lock)
		logCloser.Close()
		os.Exit(1)
	}
	defer w.Close()
	if w.Polling() {
		log.Info("using polling mode for file watching")
	}

	log.Info("watching for config changes", "path", w.Path())
	watchLoop(ctx, w, opts, out.Root, os.Stdout, log)
}
