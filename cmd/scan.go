package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"imgcrop/internal/processor"
	"imgcrop/internal/tui"
	"imgcrop/pkg/imgutil"
)

var scanOutputDir string

var scanCmd = &cobra.Command{
	Use:   "scan <path>",
	Short: "List the images a crop run would pick up without writing anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(verbose)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		_, err = runScan(args[0], scanOutputDir, cmd.OutOrStdout(), logger)
		return err
	},
}

func runScan(root, outputDir string, w io.Writer, logger *zap.Logger) ([]processor.WorkItem, error) {
	items, err := processor.Discover(root, outputDir, logger)
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Source < items[j].Source })

	for i, item := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\n", scanFileStyle.Render(item.Source))

		info, err := imgutil.Inspect(item.Source)
		if err != nil {
			fmt.Fprintf(w, "  %s %s\n", scanBulletStyle.Render("-"), scanErrorStyle.Render("error: "+err.Error()))
		} else {
			printScanValue(w, "kind", info.Kind.String())
			printScanValue(w, "size", fmt.Sprintf("%dx%d", info.Width, info.Height))
			if info.Orientation != imgutil.OrientationNormal {
				printScanValue(w, "orientation", fmt.Sprintf("%d", info.Orientation))
			}
		}
		format, _ := imgutil.FormatFromPath(item.Destination)
		printScanValue(w, "output", fmt.Sprintf("%s (%s)", item.Destination, format))
	}

	collisions := tui.CollisionLines(processor.Collisions(items))
	if len(collisions) > 0 {
		fmt.Fprintln(w)
		for _, line := range collisions {
			fmt.Fprintln(w, line)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, scanDimStyle.Render(fmt.Sprintf("%d images found.", len(items))))
	return items, nil
}

func printScanValue(w io.Writer, key, value string) {
	fmt.Fprintf(w, "  %s %s %s\n",
		scanBulletStyle.Render("-"),
		scanCategoryStyle.Render(key+":"),
		scanValueStyle.Render(value),
	)
}

var (
	scanFileStyle     = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	scanCategoryStyle = lipgloss.NewStyle().Foreground(tui.ColorAccentAlt)
	scanValueStyle    = lipgloss.NewStyle().Foreground(tui.ColorInk)
	scanDimStyle      = lipgloss.NewStyle().Foreground(tui.ColorDim)
	scanBulletStyle   = lipgloss.NewStyle().Foreground(tui.ColorDim)
	scanErrorStyle    = lipgloss.NewStyle().Foreground(tui.ColorError)
)

func init() {
	scanCmd.Flags().StringVarP(&scanOutputDir, "output-dir", "o", "", "output directory used to preview destinations")

	rootCmd.AddCommand(scanCmd)
}
