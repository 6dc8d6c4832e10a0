// Command resample resizes image files.
//
// Usage:
//
//	resample -w 640 -filter antialias -o thumbs a.png b.jpg c.tiff
//
// A zero -w or -h keeps the aspect ratio of each input. Files are processed
// concurrently by -workers goroutines; each output keeps its input's base
// name and is written to -o.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gogpu/resample"
	intImage "github.com/gogpu/resample/internal/image"
	"github.com/gogpu/resample/internal/parallel"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

type config struct {
	width, height int
	filter        resample.Filter
	outDir        string
	workers       int
	quality       int
	verbose       bool
	files         []string
}

var errUsage = errors.New("usage error")

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var (
		cfg        config
		filterName string
	)

	fs := flag.NewFlagSet("resample", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.width, "w", 0, "output width (0 keeps aspect ratio)")
	fs.IntVar(&cfg.height, "h", 0, "output height (0 keeps aspect ratio)")
	fs.StringVar(&filterName, "filter", "antialias", "nearest, bilinear, bicubic, antialias or lanczos")
	fs.StringVar(&cfg.outDir, "o", "out", "output directory")
	fs.IntVar(&cfg.workers, "workers", 0, "concurrent files (0 = GOMAXPROCS)")
	fs.IntVar(&cfg.quality, "quality", 90, "JPEG quality (1-100)")
	fs.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	f, err := resample.ParseFilter(filterName)
	if err != nil {
		return cfg, fmt.Errorf("%w: %w", errUsage, err)
	}
	cfg.filter = f
	cfg.files = fs.Args()

	switch {
	case cfg.width < 0 || cfg.height < 0:
		return cfg, fmt.Errorf("%w: negative size %dx%d", errUsage, cfg.width, cfg.height)
	case cfg.width == 0 && cfg.height == 0:
		return cfg, fmt.Errorf("%w: -w or -h is required", errUsage)
	case len(cfg.files) == 0:
		return cfg, fmt.Errorf("%w: no input files", errUsage)
	}
	return cfg, nil
}

func run(args []string, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, "resample:", err)
		}
		return 2
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	resample.SetLogger(log)
	defer resample.SetLogger(nil)

	if err := os.MkdirAll(cfg.outDir, 0o750); err != nil {
		log.Error("create output directory", "dir", cfg.outDir, "error", err)
		return 1
	}

	pool := parallel.NewWorkerPool(cfg.workers)
	defer pool.Close()

	b := &batch{cfg: cfg, log: log, rasters: resample.NewPool(pool.Workers())}
	jobs := make([]parallel.Job, len(cfg.files))
	for i, path := range cfg.files {
		jobs[i] = b.job(path)
	}

	failed := 0
	for _, err := range pool.Run(context.Background(), jobs) {
		if err != nil {
			log.Error("resize failed", "error", err)
			failed++
		}
	}

	hits, misses := b.rasters.Stats()
	log.Info("batch done",
		"resized", b.count(),
		"failed", failed,
		"workers", pool.Workers(),
		"pool_hits", hits,
		"pool_misses", misses)
	if failed > 0 {
		return 1
	}
	return 0
}

// batch holds state shared by the jobs of one run. mu is the host lock
// handed to Resize; it also guards resized.
type batch struct {
	cfg     config
	log     *slog.Logger
	rasters *resample.Pool

	mu      sync.Mutex
	resized int
}

func (b *batch) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.resized
}

func (b *batch) job(path string) parallel.Job {
	return func(context.Context) error {
		dstPath, err := outputPath(b.cfg.outDir, path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		src, err := intImage.LoadImage(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		// Straight alpha would bleed transparent colour into the edges.
		src.Premultiply()
		w, h := targetSize(b.cfg.width, b.cfg.height, src.Width(), src.Height())

		b.mu.Lock()
		out, err := resample.Resize(src, w, h, b.cfg.filter,
			resample.WithLock(&b.mu), resample.WithPool(b.rasters))
		b.mu.Unlock()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		if err := out.SaveImage(dstPath, b.cfg.quality); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		b.mu.Lock()
		b.resized++
		b.mu.Unlock()

		b.log.Info("resized",
			"src", path,
			"dst", dstPath,
			"from", fmt.Sprintf("%dx%d", src.Width(), src.Height()),
			"to", fmt.Sprintf("%dx%d", w, h),
			"filter", b.cfg.filter.String())
		return nil
	}
}

// targetSize fills in a zero width or height from the source aspect ratio,
// rounding to nearest and never going below 1.
func targetSize(w, h, srcW, srcH int) (int, int) {
	switch {
	case w == 0:
		w = max((h*srcW+srcH/2)/srcH, 1)
	case h == 0:
		h = max((w*srcH+srcW/2)/srcW, 1)
	}
	return w, h
}

// outputPath maps an input file to dir/<base name>. Writing over the input
// itself is refused.
func outputPath(dir, in string) (string, error) {
	out := filepath.Join(dir, filepath.Base(in))
	absIn, err := filepath.Abs(in)
	if err != nil {
		return "", err
	}
	absOut, err := filepath.Abs(out)
	if err != nil {
		return "", err
	}
	if absIn == absOut {
		return "", fmt.Errorf("output %s would overwrite its input", out)
	}
	return out, nil
}
