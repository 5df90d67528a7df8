package tui

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgcrop/internal/processor"
)

func TestResultLine(t *testing.T) {
	item := processor.WorkItem{Source: "in/a.png", Destination: "out/a.png"}

	assert.Contains(t, ResultLine(processor.Result{Item: item}), `Cropped: "in/a.png" -> "out/a.png"`)
	assert.Contains(t, ResultLine(processor.Result{Item: item, Err: errors.New("boom")}), `Error cropping "in/a.png": boom`)
}

func TestSummaryLines(t *testing.T) {
	got := SummaryLines(1234567*time.Microsecond, processor.Summary{Total: 3, Processed: 2, Failed: 1})
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Image cropping complete in 1.23s.", lines[0])
	assert.Equal(t, "Processed 2 images, failed to process 1 images.", lines[1])
}

func TestRoundElapsed(t *testing.T) {
	assert.Equal(t, 1230*time.Millisecond, roundElapsed(1234567*time.Microsecond))
	assert.Equal(t, 45670*time.Microsecond, roundElapsed(45671234*time.Nanosecond))
	assert.Equal(t, 500*time.Nanosecond, roundElapsed(500*time.Nanosecond))
}

func TestCollisionLines(t *testing.T) {
	lines := CollisionLines([]processor.Collision{
		{Destination: "out/x.png", Sources: []string{"a/x.png", "b/x.png"}},
	})
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `Warning: 2 files share output "out/x.png"`)
	assert.Contains(t, lines[0], `"a/x.png", "b/x.png"`)
	assert.Empty(t, CollisionLines(nil))
}

func TestPrinterSplitsStreams(t *testing.T) {
	var out, errOut bytes.Buffer
	updates := make(chan processor.ProgressUpdate, 4)
	updates <- processor.ProgressUpdate{TotalDelta: 2}
	updates <- processor.ProgressUpdate{ProcessedDelta: 1, Result: &processor.Result{
		Item: processor.WorkItem{Source: "in/ok.jpg", Destination: "out/ok.jpg"},
	}}
	updates <- processor.ProgressUpdate{FailedDelta: 1, Result: &processor.Result{
		Item: processor.WorkItem{Source: "in/bad.png", Destination: "out/bad.png"},
		Err:  errors.New("unrecognized image format"),
	}}
	close(updates)

	Printer{Out: &out, Err: &errOut}.Consume(updates)

	assert.Contains(t, out.String(), `"in/ok.jpg" -> "out/ok.jpg"`)
	assert.NotContains(t, out.String(), "bad.png")
	assert.Contains(t, errOut.String(), `Error cropping "in/bad.png": unrecognized image format`)
}

func TestModelUpdate(t *testing.T) {
	updates := make(chan processor.ProgressUpdate)
	var m tea.Model = NewModel(updates)

	m, _ = m.Update(updateMsg{TotalDelta: 3})
	m, cmd := m.Update(updateMsg{ProcessedDelta: 1, Result: &processor.Result{
		Item: processor.WorkItem{Source: "a.png", Destination: "out/a.png"},
	}})
	assert.NotNil(t, cmd)
	m, _ = m.Update(updateMsg{FailedDelta: 1, Result: &processor.Result{
		Item: processor.WorkItem{Source: "b.png"}, Err: errors.New("x"),
	}})

	view := m.View()
	assert.Contains(t, view, "Files: 2/3")
	assert.Contains(t, view, "failed:1")

	m, cmd = m.Update(doneMsg{})
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestProgramPrintsEveryResultBeforeQuitting(t *testing.T) {
	const n = 50
	updates := make(chan processor.ProgressUpdate, n+1)
	updates <- processor.ProgressUpdate{TotalDelta: n}
	for i := 0; i < n; i++ {
		updates <- processor.ProgressUpdate{ProcessedDelta: 1, Result: &processor.Result{
			Item: processor.WorkItem{Source: fmt.Sprintf("in/%02d.png", i), Destination: fmt.Sprintf("out/%02d.png", i)},
		}}
	}
	close(updates)

	var out bytes.Buffer
	program := tea.NewProgram(NewModel(updates), tea.WithOutput(&out), tea.WithInput(nil))
	_, err := program.Run()
	require.NoError(t, err)

	text := out.String()
	assert.Equal(t, n, strings.Count(text, "Cropped: "))
	assert.Contains(t, text, `"in/49.png" -> "out/49.png"`)
}

func TestRenderBar(t *testing.T) {
	assert.Equal(t, "[     ]", renderBar(5, 0))
	assert.Equal(t, "[===  ]", renderBar(5, 0.5))
	assert.Equal(t, "[=====]", renderBar(5, 2))
}

func TestRenderSummary(t *testing.T) {
	out := RenderSummary([]SummaryRow{
		{Label: "Input", Value: "photos"},
		{Label: "Size", Value: "400x300"},
	})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Repeat("-", len("Input")+len("400x300")+3), lines[0])
	assert.Contains(t, lines[1], "Input")
	assert.Contains(t, lines[2], "400x300")
}
