package forwardindex

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/irtools/forward-index-builder/pkg/errors"
)

// Dispatcher drives the tokenize phase of the build (spec §4.2): it reads
// the record source on the calling goroutine, groups records into batches,
// and hands each batch to a worker under a bounded semaphore. The merge
// phase is run afterwards by Builder.Build, not by the Dispatcher.
type Dispatcher struct {
	Source       Source
	Content      ContentFunc
	Term         TermFunc
	OutputPrefix string
	BatchSize    int64
	Threads      int

	OnBatchSubmitted func(batch Batch)
	OnBatchCompleted func(batch Batch)
}

// DispatchResult reports the counters the merge and concat phases need:
// how many batches were submitted and how many documents were consumed in
// total, in source order.
type DispatchResult struct {
	BatchCount    int64
	DocumentCount int64
}

// Run executes the dispatcher algorithm: read the source, submit batches
// under backpressure, and wait for all workers to finish. It does not run
// the merge phase; Builder.Build sequences that separately so the merge
// can be tested in isolation from the dispatcher.
func (d *Dispatcher) Run(ctx context.Context) (DispatchResult, error) {
	if d.Threads < 2 {
		return DispatchResult{}, errors.Configf("threads must be >= 2, got %d", d.Threads)
	}
	if d.BatchSize < 1 {
		return DispatchResult{}, errors.Configf("batch size must be >= 1, got %d", d.BatchSize)
	}

	maxInFlight := int64(2 * (d.Threads - 1))
	sem := semaphore.NewWeighted(maxInFlight)
	group, groupCtx := errgroup.WithContext(ctx)

	var (
		batchNumber   int64
		firstDocument int64
		documentCount int64
		pending       []Record
	)

	submit := func(records []Record, isFirstBatch bool) error {
		if len(records) == 0 && !isFirstBatch {
			return nil
		}
		if err := sem.Acquire(groupCtx, 1); err != nil {
			return err
		}
		batch := Batch{
			Number:        batchNumber,
			Records:       records,
			FirstDocument: firstDocument,
			OutputPrefix:  d.OutputPrefix,
		}
		if d.OnBatchSubmitted != nil {
			d.OnBatchSubmitted(batch)
		}
		group.Go(func() error {
			defer sem.Release(1)
			if err := runBatch(batch, d.Content, d.Term); err != nil {
				return err
			}
			if d.OnBatchCompleted != nil {
				d.OnBatchCompleted(batch)
			}
			return nil
		})
		batchNumber++
		firstDocument += int64(len(records))
		return nil
	}

	for {
		rec, ok, err := d.Source.Next()
		if err != nil {
			_ = group.Wait()
			return DispatchResult{}, errors.Wrap(errors.PhaseTokenize, err)
		}
		if !ok {
			break
		}
		pending = append(pending, rec)
		documentCount++
		if int64(len(pending)) == d.BatchSize {
			if err := submit(pending, batchNumber == 0); err != nil {
				_ = group.Wait()
				return DispatchResult{}, err
			}
			pending = nil
		}
	}

	if err := submit(pending, batchNumber == 0); err != nil {
		_ = group.Wait()
		return DispatchResult{}, err
	}

	if err := group.Wait(); err != nil {
		return DispatchResult{}, err
	}

	return DispatchResult{BatchCount: batchNumber, DocumentCount: documentCount}, nil
}
