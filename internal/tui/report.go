package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"imgcrop/internal/processor"
)

// ResultLine renders the console line for one finished item.
func ResultLine(res processor.Result) string {
	if res.Err != nil {
		return failStyle.Render(fmt.Sprintf("Error cropping %q: %v", res.Item.Source, res.Err))
	}
	return okStyle.Render(fmt.Sprintf("Cropped: %q -> %q", res.Item.Source, res.Item.Destination))
}

// SummaryLines renders the two closing lines of a run.
func SummaryLines(elapsed time.Duration, summary processor.Summary) string {
	return strings.Join([]string{
		fmt.Sprintf("Image cropping complete in %s.", roundElapsed(elapsed)),
		fmt.Sprintf("Processed %d images, failed to process %d images.", summary.Processed, summary.Failed),
	}, "\n")
}

// roundElapsed keeps two decimals in the largest unit of d.
func roundElapsed(d time.Duration) time.Duration {
	switch {
	case d >= time.Second:
		return d.Round(10 * time.Millisecond)
	case d >= time.Millisecond:
		return d.Round(10 * time.Microsecond)
	case d >= time.Microsecond:
		return d.Round(10 * time.Nanosecond)
	default:
		return d
	}
}

// CollisionLines renders a warning per shared destination.
func CollisionLines(collisions []processor.Collision) []string {
	lines := make([]string, 0, len(collisions))
	for _, c := range collisions {
		quoted := make([]string, len(c.Sources))
		for i, s := range c.Sources {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		lines = append(lines, warnStyle.Render(fmt.Sprintf(
			"Warning: %d files share output %q and will overwrite each other: %s",
			len(c.Sources), c.Destination, strings.Join(quoted, ", "),
		)))
	}
	return lines
}

// Printer writes per-item lines as updates arrive: successes to Out,
// failures to Err.
type Printer struct {
	Out io.Writer
	Err io.Writer
}

// Consume prints until updates is closed.
func (p Printer) Consume(updates <-chan processor.ProgressUpdate) {
	for u := range updates {
		if u.Result == nil {
			continue
		}
		w := p.Out
		if u.Result.Err != nil {
			w = p.Err
		}
		fmt.Fprintln(w, ResultLine(*u.Result))
	}
}
