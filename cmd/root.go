package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"imgcrop/internal/processor"
	"imgcrop/internal/tui"
	"imgcrop/pkg/imgutil"
)

type cropConfig struct {
	InputDir    string
	OutputDir   string
	Size        string
	Instances   int
	JPEGQuality int
	AutoOrient  bool
	Progress    bool
}

var (
	crop    = cropConfig{Instances: processor.DefaultWorkers, JPEGQuality: imgutil.DefaultJPEGQuality}
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "imgcrop -i <input-dir> -o <output-dir> -s <WxH>",
	Short: "imgcrop - resize and center-crop a tree of images to one size",
	Long: "imgcrop scans a directory tree for JPEG, PNG, GIF and WebP files, scales each one to cover\n" +
		"the target size without distortion, crops the centre and writes the result to a flat output directory.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if crop.Instances < processor.MinWorkers || crop.Instances > processor.MaxWorkers {
			return fmt.Errorf("invalid value %d for --instances: must be between %d and %d",
				crop.Instances, processor.MinWorkers, processor.MaxWorkers)
		}
		if crop.JPEGQuality < 1 || crop.JPEGQuality > 100 {
			return fmt.Errorf("invalid value %d for --quality: must be between 1 and 100", crop.JPEGQuality)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(verbose)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		_, err = runCrop(crop, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
		return err
	},
}

// Execute runs the root command and exits non-zero on a fatal error.
// Individual files failing to convert is not fatal.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	flags := rootCmd.Flags()
	flags.StringVarP(&crop.InputDir, "input-dir", "i", "", "directory to scan for images (required)")
	flags.StringVarP(&crop.OutputDir, "output-dir", "o", "", "directory for cropped images, created if missing (required)")
	flags.StringVarP(&crop.Size, "size", "s", "", "target size in WxH format, e.g. 400x300 (required)")
	flags.IntVarP(&crop.Instances, "instances", "c", processor.DefaultWorkers, "number of images processed in parallel (1-64)")
	flags.IntVar(&crop.JPEGQuality, "quality", imgutil.DefaultJPEGQuality, "JPEG output quality (1-100)")
	flags.BoolVar(&crop.AutoOrient, "auto-orient", false, "rotate JPEGs upright using their EXIF orientation")
	flags.BoolVar(&crop.Progress, "progress", false, "show a live progress bar")
	_ = rootCmd.MarkFlagRequired("input-dir")
	_ = rootCmd.MarkFlagRequired("output-dir")
	_ = rootCmd.MarkFlagRequired("size")

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log per-file timings to stderr")
}

func runCrop(cfg cropConfig, stdout, stderr io.Writer, logger *zap.Logger) (processor.Summary, error) {
	start := time.Now()

	size, err := processor.ParseSize(cfg.Size)
	if err != nil {
		return processor.Summary{}, err
	}

	if _, err := os.Stat(cfg.InputDir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return processor.Summary{}, fmt.Errorf("input directory not found: %q", cfg.InputDir)
		}
		return processor.Summary{}, err
	}

	created, err := ensureDir(cfg.OutputDir)
	if err != nil {
		return processor.Summary{}, err
	}
	if created {
		fmt.Fprintf(stdout, "Created output directory: %q\n", cfg.OutputDir)
	}

	fmt.Fprintln(stdout, tui.RenderSummary([]tui.SummaryRow{
		{Label: "Processing images from", Value: cfg.InputDir},
		{Label: "Cropping to size", Value: size.String()},
		{Label: "Parallel instances", Value: fmt.Sprintf("%d", cfg.Instances)},
		{Label: "Saving to", Value: cfg.OutputDir},
	}))

	items, err := processor.Discover(cfg.InputDir, cfg.OutputDir, logger)
	if err != nil {
		return processor.Summary{}, err
	}
	logger.Debug("discovered images", zap.Int("count", len(items)))
	for _, line := range tui.CollisionLines(processor.Collisions(items)) {
		fmt.Fprintln(stderr, line)
	}

	codec := imgutil.Codec{AutoOrient: cfg.AutoOrient, JPEGQuality: cfg.JPEGQuality}
	updates := make(chan processor.ProgressUpdate, 64)

	uiDone := make(chan struct{})
	if cfg.Progress {
		program := tea.NewProgram(tui.NewModel(updates), tea.WithOutput(stdout), tea.WithInput(nil))
		go func() {
			defer close(uiDone)
			if _, err := program.Run(); err != nil {
				logger.Debug("progress display unavailable", zap.Error(err))
				// report whatever the program did not get to
				tui.Printer{Out: stdout, Err: stderr}.Consume(updates)
			}
		}()
	} else {
		go func() {
			tui.Printer{Out: stdout, Err: stderr}.Consume(updates)
			close(uiDone)
		}()
	}

	summary, err := processor.Run(items, processor.Options{
		Size:    size,
		Workers: cfg.Instances,
		Decoder: codec,
		Encoder: codec,
		Logger:  logger,
	}, updates)
	close(updates)
	<-uiDone
	if err != nil {
		return summary, err
	}

	fmt.Fprintln(stdout, tui.SummaryLines(time.Since(start), summary))
	return summary, nil
}

// ensureDir creates dir if it does not exist and reports whether it did.
func ensureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("output path %q is not a directory", dir)
		}
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}
	return true, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}
