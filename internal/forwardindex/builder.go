package forwardindex

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/irtools/forward-index-builder/pkg/errors"
)

// BuildOptions configures a single Builder.Build invocation, mirroring
// spec §6's enumerated configuration: output prefix, batch size, thread
// budget, and the three pluggable callbacks.
type BuildOptions struct {
	Source       Source
	Content      ContentFunc
	Term         TermFunc
	OutputPrefix string
	BatchSize    int64
	Threads      int
}

// BuildStats summarizes a completed build for logging and for callers
// that want the final counters without re-reading the output files.
type BuildStats struct {
	BuildID       string
	BatchCount    int64
	DocumentCount int64
	TermCount     int
	Elapsed       time.Duration
}

// Recorder receives progress callbacks during a build, letting callers
// (the CLI, tests) observe batch submission/completion without coupling
// the builder to a concrete metrics backend.
type Recorder interface {
	BatchSubmitted()
	BatchCompleted()
	PhaseDuration(phase string, d time.Duration)
	PhaseError(phase string)
	Finalize(documentCount int64, termCount int)
}

// Builder orchestrates the full pipeline: dispatch, term collection,
// remap, concatenation, and cleanup, generalizing the teacher's Engine
// lifecycle (config in, logger scoped, Run/Build the one entrypoint) to
// this package's batch pipeline.
type Builder struct {
	Recorder Recorder
}

// Build runs the complete forward-index build described by opts. It
// generates a fresh build id, logs each phase's start/finish with that id
// attached, and returns once the final output and sidecar files exist (or
// the first error is hit, per spec §7's "build either succeeds entirely or
// fails with the first error encountered").
func (b *Builder) Build(ctx context.Context, opts BuildOptions) (BuildStats, error) {
	buildID := uuid.NewString()
	log := slog.Default().With("build_id", buildID, "component", "builder")
	start := time.Now()

	if opts.Threads < 2 {
		return BuildStats{}, errors.Configf("threads must be >= 2, got %d", opts.Threads)
	}
	if opts.BatchSize < 1 {
		return BuildStats{}, errors.Configf("batch size must be >= 1, got %d", opts.BatchSize)
	}

	log.Info("build starting", "output_prefix", opts.OutputPrefix, "batch_size", opts.BatchSize, "threads", opts.Threads)

	dispatchResult, err := runPhase(b.Recorder, log, errors.PhaseTokenize, func() (DispatchResult, error) {
		d := &Dispatcher{
			Source:       opts.Source,
			Content:      opts.Content,
			Term:         opts.Term,
			OutputPrefix: opts.OutputPrefix,
			BatchSize:    opts.BatchSize,
			Threads:      opts.Threads,
			OnBatchSubmitted: func(Batch) {
				if b.Recorder != nil {
					b.Recorder.BatchSubmitted()
				}
			},
			OnBatchCompleted: func(Batch) {
				if b.Recorder != nil {
					b.Recorder.BatchCompleted()
				}
			},
		}
		return d.Run(ctx)
	})
	if err != nil {
		b.recordError(errors.PhaseTokenize)
		log.Error("build failed", "phase", errors.PhaseTokenize, "error", err)
		return BuildStats{}, err
	}

	globalTerms, err := runPhase(b.Recorder, log, errors.PhaseMerge, func() ([]string, error) {
		return collectTerms(opts.OutputPrefix, dispatchResult.BatchCount)
	})
	if err != nil {
		b.recordError(errors.PhaseMerge)
		log.Error("build failed", "phase", errors.PhaseMerge, "error", err)
		return BuildStats{}, err
	}

	_, err = runPhase(b.Recorder, log, errors.PhaseRemap, func() (struct{}, error) {
		mapping := buildMapping(globalTerms)
		for n := int64(0); n < dispatchResult.BatchCount; n++ {
			if err := remapBatch(opts.OutputPrefix, n, mapping); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		b.recordError(errors.PhaseRemap)
		log.Error("build failed", "phase", errors.PhaseRemap, "error", err)
		return BuildStats{}, err
	}

	_, err = runPhase(b.Recorder, log, errors.PhaseConcat, func() (struct{}, error) {
		return struct{}{}, concatenate(opts.OutputPrefix, dispatchResult.BatchCount, dispatchResult.DocumentCount, globalTerms)
	})
	if err != nil {
		b.recordError(errors.PhaseConcat)
		log.Error("build failed", "phase", errors.PhaseConcat, "error", err)
		return BuildStats{}, err
	}

	_, err = runPhase(b.Recorder, log, errors.PhaseCleanup, func() (struct{}, error) {
		return struct{}{}, cleanup(opts.OutputPrefix, dispatchResult.BatchCount)
	})
	if err != nil {
		b.recordError(errors.PhaseCleanup)
		log.Error("build failed", "phase", errors.PhaseCleanup, "error", err)
		return BuildStats{}, err
	}

	if b.Recorder != nil {
		b.Recorder.Finalize(dispatchResult.DocumentCount, len(globalTerms))
	}

	elapsed := time.Since(start)
	log.Info("build complete",
		"batch_count", dispatchResult.BatchCount,
		"document_count", dispatchResult.DocumentCount,
		"term_count", len(globalTerms),
		"elapsed", elapsed)

	return BuildStats{
		BuildID:       buildID,
		BatchCount:    dispatchResult.BatchCount,
		DocumentCount: dispatchResult.DocumentCount,
		TermCount:     len(globalTerms),
		Elapsed:       elapsed,
	}, nil
}

// runPhase times fn, logs its start/finish, and records its duration with
// rec if one is set. It is a package-level function rather than a method
// because Go methods cannot carry their own type parameters.
func runPhase[T any](rec Recorder, log *slog.Logger, phase string, fn func() (T, error)) (T, error) {
	log.Info("phase starting", "phase", phase)
	start := time.Now()
	result, err := fn()
	d := time.Since(start)
	if rec != nil {
		rec.PhaseDuration(phase, d)
	}
	if err != nil {
		var zero T
		return zero, err
	}
	log.Info("phase finished", "phase", phase, "elapsed", d)
	return result, nil
}

func (b *Builder) recordError(phase string) {
	if b.Recorder != nil {
		b.Recorder.PhaseError(phase)
	}
}
