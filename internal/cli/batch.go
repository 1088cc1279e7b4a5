package cli

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/imagepalette/internal/colour"
	"github.com/jmylchreest/imagepalette/internal/image"
	"github.com/jmylchreest/imagepalette/internal/layout"
)

type batchOptions struct {
	*globalOptions
	extraction extractionFlags
	layout     layoutFlags
	palette    bool
	json       bool
	jobs       int
}

func newBatchCmd(global *globalOptions) *cobra.Command {
	opts := &batchOptions{globalOptions: global}

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Attach palettes to every image in a directory",
		Long: `Extract a palette from every image directly inside a directory and save
each image with its palette attached.

Unless --position is given, landscape images get the palette on the right
and portrait images get it at the bottom, with bars stretched along the
strip. Images are processed concurrently; the first failure stops
scheduling further images.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args[0], opts)
		},
	}

	fs := cmd.Flags()
	addExtractionFlags(fs, &opts.extraction)
	addLayoutFlags(fs, &opts.layout)
	fs.BoolVar(&opts.palette, "palette", false, "also save an image of each palette")
	fs.BoolVar(&opts.json, "json", false, "also save each palette as JSON")
	fs.IntVarP(&opts.jobs, "jobs", "j", runtime.NumCPU(), "number of images processed concurrently")

	// Batch works on downscaled copies unless told otherwise.
	opts.extraction.resize = true
	fs.Lookup("resize").DefValue = "true"

	return cmd
}

// autoLayout attaches the palette along the long side of the image.
func autoLayout(base layout.Config, width, height int) layout.Config {
	cfg := base
	if width > height {
		cfg.Orientation = layout.Right
		cfg.BarWidthScale, cfg.BarHeightScale = 0.5, 0.75
	} else {
		cfg.Orientation = layout.Bottom
		cfg.BarWidthScale, cfg.BarHeightScale = 0.75, 0.5
	}
	return cfg
}

func runBatch(cmd *cobra.Command, dir string, opts *batchOptions) error {
	if opts.jobs < 1 {
		return fmt.Errorf("%w: --jobs must be at least 1, got %d", colour.ErrConfiguration, opts.jobs)
	}
	extractorCfg, seedCfg, err := opts.extraction.resolve(cmd.Flags().Changed("seed"))
	if err != nil {
		return err
	}
	layoutCfg, err := opts.layout.config()
	if err != nil {
		return err
	}
	paths, err := image.ScanDirectoryForImages(dir)
	if err != nil {
		return err
	}

	logger, closeLog, err := opts.openLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	layoutFor := func(int, int) layout.Config { return layoutCfg }
	if !cmd.Flags().Changed("position") {
		layoutFor = func(w, h int) layout.Config { return autoLayout(layoutCfg, w, h) }
	}

	p := &pipeline{
		loader:    image.NewFileLoader(),
		logger:    logger,
		folder:    opts.output,
		resize:    opts.extraction.resize,
		extractor: extractorCfg,
		seed:      seedCfg,
		threshold: opts.extraction.threshold,
		maxIter:   opts.extraction.maxIterations,
		outputs:   outputs{incorporated: true, palette: opts.palette, json: opts.json},
		layoutFor: layoutFor,
	}

	logger.Info("starting batch", "dir", dir, "images", len(paths), "jobs", opts.jobs)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Starting extraction of %d images\n", len(paths))

	var (
		mu   sync.Mutex
		done int
	)
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(opts.jobs)
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := p.run(ctx, path); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			mu.Lock()
			done++
			fmt.Fprintf(out, "%s done. %d/%d.\n", path, done, len(paths))
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("batch failed", "error", err)
		return err
	}
	logger.Info("batch completed", "images", len(paths))
	return nil
}
