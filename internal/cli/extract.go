package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/imagepalette/internal/colour"
	"github.com/jmylchreest/imagepalette/internal/image"
	"github.com/jmylchreest/imagepalette/internal/layout"
)

type extractOptions struct {
	*globalOptions
	extraction extractionFlags
	layout     layoutFlags
	outputs    outputs
	insecure   bool
}

func newExtractCmd(global *globalOptions) *cobra.Command {
	opts := &extractOptions{globalOptions: global}

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract a colour palette from an image",
		Long: `Extract a colour palette from an image file or HTTPS URL.

At least one output must be selected. Files are written to the output
folder as <name>-palette.png, <name>-json-palette.json and
<name>-incorporated-palette.png.

Supported image formats: JPEG, PNG, GIF, WebP, BMP, TIFF

Examples:
  # Print a 5 colour palette in the terminal
  imagepalette extract --print photo.jpg

  # Save the palette strip and JSON with a fixed seed
  imagepalette extract --palette --json --seed 42 photo.jpg

  # Attach 8 colours below the image on a white background
  imagepalette extract --incorporated -c 8 --position b --color 255,255,255 photo.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0], opts)
		},
	}

	fs := cmd.Flags()
	addExtractionFlags(fs, &opts.extraction)
	addLayoutFlags(fs, &opts.layout)
	fs.BoolVar(&opts.outputs.palette, "palette", false, "save an image of the palette")
	fs.BoolVar(&opts.outputs.print, "print", false, "print the palette in the terminal")
	fs.BoolVar(&opts.outputs.json, "json", false, "save the palette as JSON")
	fs.BoolVar(&opts.outputs.incorporated, "incorporated", false, "save the image with the palette attached")
	fs.BoolVar(&opts.insecure, "allow-insecure", false, "allow plain HTTP and private hosts for image URLs")

	return cmd
}

func runExtract(cmd *cobra.Command, source string, opts *extractOptions) error {
	// Reject every invalid value before doing any work.
	if !opts.outputs.any() {
		return fmt.Errorf("%w: select at least one output (--palette, --print, --json, --incorporated)", colour.ErrConfiguration)
	}
	extractorCfg, seedCfg, err := opts.extraction.resolve(cmd.Flags().Changed("seed"))
	if err != nil {
		return err
	}
	layoutCfg, err := opts.layout.config()
	if err != nil {
		return err
	}
	if err := image.ValidateImagePath(source); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	colour.DisableColourOutput = opts.noColour || !isTerminal(cmd.OutOrStdout())

	logger, closeLog, err := opts.openLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	loader := image.NewSmartLoader()
	loader.AllowInsecure = opts.insecure

	p := &pipeline{
		loader:    loader,
		logger:    logger,
		stdout:    cmd.OutOrStdout(),
		folder:    opts.output,
		resize:    opts.extraction.resize,
		extractor: extractorCfg,
		seed:      seedCfg,
		threshold: opts.extraction.threshold,
		maxIter:   opts.extraction.maxIterations,
		outputs:   opts.outputs,
		layoutFor: func(int, int) layout.Config { return layoutCfg },
	}

	if _, err := p.run(cmd.Context(), source); err != nil {
		logger.Error("extraction failed", "error", err)
		return err
	}
	return nil
}
