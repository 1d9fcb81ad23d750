package importer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	. "guestlist/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedCommitter pops one scripted result per CommitBatch call and records
// every call it receives. Calls past the end of the script succeed.
type scriptedCommitter struct {
	mu      sync.Mutex
	script  []error
	calls   [][]*Guest
	nextIdx int
}

func (c *scriptedCommitter) CommitBatch(_ context.Context, guests []*Guest) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls = append(c.calls, guests)
	if c.nextIdx < len(c.script) {
		err := c.script[c.nextIdx]
		c.nextIdx++
		return err
	}
	return nil
}

func fastOptions() Options {
	return Options{
		BatchSize:  10,
		MaxRetries: 2,
		BatchDelay: 0,
		RetryDelay: 0,
	}
}

func makeRecords(n int) []ParsedGuest {
	records := make([]ParsedGuest, n)
	for i := range records {
		records[i] = ParsedGuest{FullName: fmt.Sprintf("Guest %02d", i+1)}
	}
	return records
}

func TestBatchImporter_AllBatchesSucceed(t *testing.T) {
	committer := &scriptedCommitter{}
	importer := NewBatchImporter(committer, fastOptions())

	var progress []int
	imported, err := importer.Run(context.Background(), makeRecords(20), func(n int) {
		progress = append(progress, n)
	})

	require.NoError(t, err)
	assert.Equal(t, 20, imported)
	assert.Equal(t, []int{10, 20}, progress)

	require.Len(t, committer.calls, 2)
	assert.Len(t, committer.calls[0], 10)
	assert.Len(t, committer.calls[1], 10)
	assert.Equal(t, "Guest 01", committer.calls[0][0].FullName)
	assert.Equal(t, "Guest 11", committer.calls[1][0].FullName)
}

func TestBatchImporter_PartialFinalBatch(t *testing.T) {
	committer := &scriptedCommitter{}
	importer := NewBatchImporter(committer, fastOptions())

	imported, err := importer.Run(context.Background(), makeRecords(23), nil)

	require.NoError(t, err)
	assert.Equal(t, 23, imported)
	require.Len(t, committer.calls, 3)
	assert.Len(t, committer.calls[2], 3)
}

func TestBatchImporter_EmptyInput(t *testing.T) {
	committer := &scriptedCommitter{}
	importer := NewBatchImporter(committer, fastOptions())

	imported, err := importer.Run(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Zero(t, imported)
	assert.Empty(t, committer.calls)
}

func TestBatchImporter_RetrySucceeds(t *testing.T) {
	boom := errors.New("insert failed")
	committer := &scriptedCommitter{script: []error{
		nil,        // batch 1
		nil,        // batch 2
		boom, boom, // batch 3, attempts 1 and 2
		nil, // batch 3, attempt 3
	}}
	importer := NewBatchImporter(committer, fastOptions())

	var progress []int
	imported, err := importer.Run(context.Background(), makeRecords(50), func(n int) {
		progress = append(progress, n)
	})

	require.NoError(t, err)
	assert.Equal(t, 50, imported)
	assert.Equal(t, []int{10, 20, 30, 40, 50}, progress)
	// 5 batches, batch 3 committed on its third attempt
	assert.Len(t, committer.calls, 7)
}

func TestBatchImporter_RetriesExhausted(t *testing.T) {
	boom := errors.New("insert failed")
	committer := &scriptedCommitter{script: []error{
		nil,              // batch 1
		boom, boom, boom, // batch 2 exhausts all three attempts
	}}
	importer := NewBatchImporter(committer, fastOptions())

	var progress []int
	imported, err := importer.Run(context.Background(), makeRecords(40), func(n int) {
		progress = append(progress, n)
	})

	assert.Equal(t, 10, imported)

	var partial *PartialImportError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, 10, partial.Imported)
	assert.Equal(t, 2, partial.FailedBatch)
	assert.ErrorIs(t, err, boom)

	// batches 3 and 4 are never attempted
	assert.Len(t, committer.calls, 4)
	assert.Equal(t, []int{10}, progress)
}

func TestBatchImporter_FirstBatchFails(t *testing.T) {
	boom := errors.New("insert failed")
	committer := &scriptedCommitter{script: []error{boom, boom, boom}}
	importer := NewBatchImporter(committer, fastOptions())

	imported, err := importer.Run(context.Background(), makeRecords(25), nil)

	assert.Zero(t, imported)

	var total *TotalImportError
	require.ErrorAs(t, err, &total)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, committer.calls, 3)
}

func TestBatchImporter_NoRetriesConfigured(t *testing.T) {
	boom := errors.New("insert failed")
	committer := &scriptedCommitter{script: []error{boom}}

	opts := fastOptions()
	opts.MaxRetries = 0
	importer := NewBatchImporter(committer, opts)

	imported, err := importer.Run(context.Background(), makeRecords(5), nil)

	assert.Zero(t, imported)
	var total *TotalImportError
	require.ErrorAs(t, err, &total)
	assert.Len(t, committer.calls, 1)
}

func TestBatchImporter_CanceledBeforeStart(t *testing.T) {
	committer := &scriptedCommitter{}
	importer := NewBatchImporter(committer, fastOptions())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	imported, err := importer.Run(ctx, makeRecords(20), nil)

	assert.Zero(t, imported)

	var canceled *CanceledError
	require.ErrorAs(t, err, &canceled)
	assert.Zero(t, canceled.Imported)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, committer.calls)
}

func TestBatchImporter_CanceledBetweenBatches(t *testing.T) {
	committer := &scriptedCommitter{}
	opts := fastOptions()
	opts.BatchDelay = 5 * time.Millisecond
	importer := NewBatchImporter(committer, opts)

	ctx, cancel := context.WithCancel(context.Background())
	imported, err := importer.Run(ctx, makeRecords(30), func(n int) {
		if n == 10 {
			cancel()
		}
	})

	assert.Equal(t, 10, imported)

	var canceled *CanceledError
	require.ErrorAs(t, err, &canceled)
	assert.Equal(t, 10, canceled.Imported)
	assert.Len(t, committer.calls, 1)
}

func TestBatchImporter_SharedTimestamp(t *testing.T) {
	committer := &scriptedCommitter{}
	importer := NewBatchImporter(committer, fastOptions())

	_, err := importer.Run(context.Background(), makeRecords(15), nil)
	require.NoError(t, err)

	var stamp time.Time
	for _, batch := range committer.calls {
		for _, guest := range batch {
			if stamp.IsZero() {
				stamp = guest.LastUpdated
			}
			assert.Equal(t, stamp, guest.LastUpdated)
		}
	}
}

func TestBatchImporter_DefaultsBatchSize(t *testing.T) {
	committer := &scriptedCommitter{}
	importer := NewBatchImporter(committer, Options{BatchSize: -1})

	imported, err := importer.Run(context.Background(), makeRecords(12), nil)

	require.NoError(t, err)
	assert.Equal(t, 12, imported)
	require.Len(t, committer.calls, 2)
	assert.Len(t, committer.calls[0], 10)
}
