package optimizer

import (
	"context"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/on-the-ground/memoexpr/expr"
	"github.com/on-the-ground/memoexpr/internal/dispatch"
	"github.com/on-the-ground/memoexpr/memo"
)

// forceAll forces records one by one in discovery order and stops at the
// first failure, leaving the rest pending.
func forceAll[TIn comparable, N expr.Number](records []*memo.Record[TIn, N], logger *zap.Logger) error {
	for _, rec := range records {
		if err := force(rec, logger); err != nil {
			return err
		}
	}
	return nil
}

// forceConcurrently forces every record on cfg.NumWorkers workers. Failures
// do not stop other records; they are combined in discovery order.
func forceConcurrently[TIn comparable, N expr.Number](records []*memo.Record[TIn, N], cfg Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errs := make([]error, len(records))
	wg := sync.WaitGroup{}

	d := dispatch.New(
		ctx,
		dispatch.NewConfig(cfg.BufferSize, cfg.NumWorkers),
		func(_ context.Context, rec *memo.Record[TIn, N]) {
			defer wg.Done()
			errs[rec.ID()] = force(rec, cfg.Logger)
		},
	)

	for _, rec := range records {
		wg.Add(1)
		if err := dispatch.Send(ctx, d, rec); err != nil {
			wg.Done()
			errs[rec.ID()] = err
		}
	}
	wg.Wait()

	return multierr.Combine(errs...)
}

func force[TIn comparable, N expr.Number](rec *memo.Record[TIn, N], logger *zap.Logger) error {
	start := time.Now()
	res, err := rec.Force()
	if err != nil {
		logger.Error("record failed",
			zap.Int("record", rec.ID()),
			zap.Duration("took", time.Since(start)),
			zap.Error(err),
		)
		return err
	}
	logger.Debug("record forced",
		zap.Int("record", rec.ID()),
		zap.Any("result", res),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}
