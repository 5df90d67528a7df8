package processor

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Run crops every item using at most opts.Workers concurrent workers. A
// failing item is counted and reported but never stops the run. When
// updates is non-nil it receives one ProgressUpdate announcing the total and
// one per finished item; it is not closed by Run.
func Run(items []WorkItem, opts Options, updates chan<- ProgressUpdate) (Summary, error) {
	summary := Summary{Total: len(items)}

	if opts.Workers < MinWorkers || opts.Workers > MaxWorkers {
		return summary, fmt.Errorf("workers must be between %d and %d, got %d", MinWorkers, MaxWorkers, opts.Workers)
	}
	if opts.Decoder == nil || opts.Encoder == nil {
		return summary, errors.New("decoder and encoder are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if updates != nil {
		updates <- ProgressUpdate{TotalDelta: len(items)}
	}

	jobs := make(chan WorkItem)
	results := make(chan Result)
	var counters Counters

	var wg sync.WaitGroup
	wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go func(id int) {
			defer wg.Done()
			worker(jobs, results, opts, &counters, logger.With(zap.Int("worker", id)))
		}(i)
	}

	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for res := range results {
			if updates == nil {
				continue
			}
			update := ProgressUpdate{Result: &res}
			if res.Err != nil {
				update.FailedDelta = 1
			} else {
				update.ProcessedDelta = 1
			}
			updates <- update
		}
	}()

	go func() {
		defer close(jobs)
		for _, item := range items {
			jobs <- item
		}
	}()

	wg.Wait()
	close(results)
	<-collectorDone

	summary.Processed = counters.Processed()
	summary.Failed = counters.Failed()
	return summary, nil
}

func worker(jobs <-chan WorkItem, results chan<- Result, opts Options, counters *Counters, logger *zap.Logger) {
	for item := range jobs {
		start := time.Now()
		err := cropFile(item, opts, logger)
		if err != nil {
			counters.failed.Add(1)
		} else {
			counters.processed.Add(1)
		}
		results <- Result{Item: item, Err: err, Elapsed: time.Since(start)}
	}
}

func cropFile(item WorkItem, opts Options, logger *zap.Logger) error {
	start := time.Now()
	img, err := opts.Decoder.Decode(item.Source)
	if err != nil {
		return err
	}
	b := img.Bounds()
	logger.Debug("decoded",
		zap.String("src", item.Source),
		zap.Int("width", b.Dx()),
		zap.Int("height", b.Dy()),
		zap.Duration("took", time.Since(start)),
	)

	start = time.Now()
	out, err := Transform(img, opts.Size)
	if err != nil {
		return err
	}
	logger.Debug("transformed", zap.String("src", item.Source), zap.Duration("took", time.Since(start)))

	start = time.Now()
	if err := opts.Encoder.Encode(out, item.Destination); err != nil {
		return err
	}
	logger.Debug("encoded", zap.String("dst", item.Destination), zap.Duration("took", time.Since(start)))

	return nil
}
