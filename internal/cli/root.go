// Package cli provides the command-line interface for imagepalette.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/imagepalette/internal/version"
)

// defaultLogName is created in the output folder unless --console or
// --log-file is given.
const defaultLogName = "imagepalette.log"

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	output   string
	verbose  bool
	quiet    bool
	console  bool
	logFile  string
	noColour bool
}

// NewRootCmd builds the imagepalette command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "imagepalette",
		Short: "Extract colour palettes from images",
		Long: `imagepalette clusters the pixels of an image into a small palette of
representative colours, then prints it, saves it as a strip or JSON, or
attaches it to one side of the original image.`,
		Version:      version.Version,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.output, "output", "o", "output/", "output folder")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "only log errors")
	flags.BoolVar(&opts.console, "console", false, "log to stderr instead of a log file")
	flags.StringVar(&opts.logFile, "log-file", "", "log file path (default: imagepalette.log in the output folder)")
	flags.BoolVar(&opts.noColour, "no-colour", false, "disable ANSI colour output")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newExtractCmd(opts))
	rootCmd.AddCommand(newBatchCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// level maps --verbose and --quiet onto a log level. --quiet wins.
func (o *globalOptions) level() hclog.Level {
	switch {
	case o.quiet:
		return hclog.Error
	case o.verbose:
		return hclog.Debug
	default:
		return hclog.Info
	}
}

// openLogger creates the root logger. The returned func releases the log
// file, if any.
func (o *globalOptions) openLogger(stderr io.Writer) (hclog.Logger, func() error, error) {
	if o.console {
		colorOpt := hclog.AutoColor
		if o.noColour {
			colorOpt = hclog.ColorOff
		}
		return hclog.New(&hclog.LoggerOptions{
			Name:   "imagepalette",
			Output: stderr,
			Level:  o.level(),
			Color:  colorOpt,
		}), func() error { return nil }, nil
	}

	path := o.logFile
	if path == "" {
		path = filepath.Join(o.output, defaultLogName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { // #nosec G301 -- output folder is user-visible
		return nil, nil, fmt.Errorf("failed to create log folder: %w", err)
	}
	f, err := os.Create(path) // #nosec G304 -- user-selected log path
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	if !o.quiet {
		fmt.Fprintf(stderr, "Logging to %s. Use --console to log here instead.\n", path)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "imagepalette",
		Output: f,
		Level:  o.level(),
		Color:  hclog.ColorOff,
	}), f.Close, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
