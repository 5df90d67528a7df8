package processor

import (
	"image"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const (
	MinWorkers     = 1
	MaxWorkers     = 64
	DefaultWorkers = 4
)

// Size is a parsed "WxH" target. Both dimensions are positive.
type Size struct {
	Width  int
	Height int
}

// WorkItem pairs a discovered source image with the file it is written to.
type WorkItem struct {
	Source      string
	Destination string
}

// Decoder loads a source file into an in-memory image.
type Decoder interface {
	Decode(path string) (image.Image, error)
}

// Encoder writes an image to path, choosing the format from its extension.
type Encoder interface {
	Encode(img image.Image, path string) error
}

type Options struct {
	Size    Size
	Workers int
	Decoder Decoder
	Encoder Encoder
	Logger  *zap.Logger
}

type Result struct {
	Item    WorkItem
	Err     error
	Elapsed time.Duration
}

type Summary struct {
	Total     int
	Processed int
	Failed    int
}

// ProgressUpdate is sent once with TotalDelta before dispatch and once per
// completed item with Result set.
type ProgressUpdate struct {
	TotalDelta     int
	ProcessedDelta int
	FailedDelta    int
	Result         *Result
}

// Counters are shared by every worker of a run.
type Counters struct {
	processed atomic.Int64
	failed    atomic.Int64
}

func (c *Counters) Processed() int { return int(c.processed.Load()) }

func (c *Counters) Failed() int { return int(c.failed.Load()) }
