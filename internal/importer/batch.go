package importer

import (
	"context"
	"time"

	"guestlist/internal/logger"
	. "guestlist/internal/models"
)

// BatchCommitter commits one batch of records atomically. A failed call must
// leave the store as if the call never happened.
type BatchCommitter interface {
	CommitBatch(ctx context.Context, guests []*Guest) error
}

// ProgressFunc receives the cumulative imported count after each committed
// batch. It is the only observable side effect besides the final result.
type ProgressFunc func(imported int)

type Options struct {
	BatchSize  int
	MaxRetries int // extra attempts per batch beyond the first
	BatchDelay time.Duration
	RetryDelay time.Duration
}

func DefaultOptions() Options {
	return Options{
		BatchSize:  10,
		MaxRetries: 2,
		BatchDelay: 500 * time.Millisecond,
		RetryDelay: 1000 * time.Millisecond,
	}
}

type BatchImporter struct {
	committer BatchCommitter
	opts      Options
	log       logger.Logger
}

func NewBatchImporter(committer BatchCommitter, opts Options) *BatchImporter {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultOptions().BatchSize
	}
	return &BatchImporter{
		committer: committer,
		opts:      opts,
		log:       logger.New("BatchImporter"),
	}
}

// Run commits records in ordered fixed-size batches, strictly sequentially.
// Callers pass only error-free rows; filtering happens upstream. Each batch
// gets MaxRetries extra attempts with a fixed delay, and a later batch is
// never attempted before the previous one reached a terminal state. Context
// cancellation is honored between batches and between retries; batches
// already committed stay committed and the returned count is exact.
func (b *BatchImporter) Run(ctx context.Context, records []ParsedGuest, onProgress ProgressFunc) (int, error) {
	log := b.log.Function("Run")

	if len(records) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	batches := b.partition(records)
	imported := 0

	log.Info("import started", "records", len(records), "batches", len(batches), "batchSize", b.opts.BatchSize)

	for i, batch := range batches {
		if i > 0 {
			if err := wait(ctx, b.opts.BatchDelay); err != nil {
				return imported, &CanceledError{Imported: imported, Cause: err}
			}
		} else if err := ctx.Err(); err != nil {
			return imported, &CanceledError{Imported: imported, Cause: err}
		}

		guests := make([]*Guest, len(batch))
		for j := range batch {
			guests[j] = batch[j].ToGuest(now)
		}

		var commitErr error
		for attempt := 0; attempt <= b.opts.MaxRetries; attempt++ {
			if attempt > 0 {
				if err := wait(ctx, b.opts.RetryDelay); err != nil {
					return imported, &CanceledError{Imported: imported, Cause: err}
				}
				log.Warn("retrying batch", "batch", i+1, "attempt", attempt+1)
			}

			commitErr = b.committer.CommitBatch(ctx, guests)
			if commitErr == nil {
				break
			}
			log.Warn("batch commit failed", "batch", i+1, "attempt", attempt+1, "error", commitErr)
		}

		if commitErr != nil {
			if imported == 0 {
				return 0, &TotalImportError{Cause: commitErr}
			}
			return imported, &PartialImportError{
				Imported:    imported,
				FailedBatch: i + 1,
				Cause:       commitErr,
			}
		}

		imported += len(batch)
		if onProgress != nil {
			onProgress(imported)
		}
	}

	log.Info("import completed", "imported", imported)
	return imported, nil
}

func (b *BatchImporter) partition(records []ParsedGuest) [][]ParsedGuest {
	size := b.opts.BatchSize
	batches := make([][]ParsedGuest, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		batches = append(batches, records[start:end])
	}
	return batches
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
