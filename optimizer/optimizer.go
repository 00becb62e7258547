// Package optimizer evaluates expression trees so that the expensive
// function is called once per distinct value-set rather than once per call
// site.
//
// A pass has three phases that never overlap:
//
//  1. rewrite: every Invocation is resolved against the input, deduplicated
//     by value and replaced in place with a Reference to a memo record;
//  2. force: the records are forced according to Config.Strategy;
//  3. evaluate: the rewritten tree is evaluated bottom-up.
//
// All state lives in the pass. Independent passes may run concurrently.
package optimizer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/on-the-ground/memoexpr/expr"
	"github.com/on-the-ground/memoexpr/memo"
)

type Optimizer[TIn comparable, N expr.Number] struct {
	cfg Config
}

func New[TIn comparable, N expr.Number](cfg Config) *Optimizer[TIn, N] {
	return &Optimizer[TIn, N]{
		cfg: NewConfig(cfg.Strategy, cfg.BufferSize, cfg.NumWorkers, cfg.Logger),
	}
}

// OptimizeAndEvaluate evaluates tree against input and f with the default
// configuration. The result equals expr.Eval over the same arguments, but f
// runs at most once per distinct value-set. tree is rewritten in place.
func OptimizeAndEvaluate[TIn comparable, N expr.Number](
	tree expr.Node[N],
	input []TIn,
	f expr.Func[TIn, N],
) (expr.Value[N], error) {
	res, _, err := New[TIn, N](DefaultConfig()).Evaluate(tree, input, f)
	return res, err
}

// Rewrite runs the first phase only. It returns the rewritten root and the
// table of pending records in discovery order.
func (o *Optimizer[TIn, N]) Rewrite(
	tree expr.Node[N],
	input []TIn,
	f expr.Func[TIn, N],
) (expr.Node[N], *memo.Table[TIn, N], error) {
	root, table, _, err := o.rewrite(tree, input, f, o.cfg.Logger)
	return root, table, err
}

func (o *Optimizer[TIn, N]) rewrite(
	tree expr.Node[N],
	input []TIn,
	f expr.Func[TIn, N],
	logger *zap.Logger,
) (expr.Node[N], *memo.Table[TIn, N], int, error) {
	rw := &rewriter[TIn, N]{
		input:    input,
		table:    memo.NewTable(f),
		onDemand: o.cfg.Strategy == Lazy,
		logger:   logger,
	}
	root, err := rw.rewrite(tree)
	if err != nil {
		return nil, rw.table, rw.invocations, fmt.Errorf("rewrite: %w", err)
	}
	return root, rw.table, rw.invocations, nil
}

// Evaluate runs a full pass over tree. tree is rewritten in place and must
// not be evaluated again; clone it first with expr.Clone if it is needed
// later. Stats are filled in as far as the pass got, also on failure.
func (o *Optimizer[TIn, N]) Evaluate(
	tree expr.Node[N],
	input []TIn,
	f expr.Func[TIn, N],
) (expr.Value[N], Stats, error) {
	stats := Stats{PassID: uuid.NewString()}
	logger := o.cfg.Logger.With(zap.String("pass", stats.PassID))
	logger.Debug("pass started",
		zap.Stringer("strategy", o.cfg.Strategy),
		zap.Stringer("tree", tree),
		zap.Int("input", len(input)),
	)

	root, table, invocations, err := o.rewrite(tree, input, f, logger)
	stats.Invocations = invocations
	stats.Records = table.Len()
	if err != nil {
		logger.Error("pass failed", zap.Error(err))
		return expr.Value[N]{}, stats, err
	}

	start := time.Now()
	switch o.cfg.Strategy {
	case Concurrent:
		err = forceConcurrently(table.Records(), o.cfg)
	case Lazy:
	default:
		err = forceAll(table.Records(), logger)
	}
	stats.Forcing = spanSince(start)
	if err != nil {
		stats.Forced = table.Forced()
		logger.Error("pass failed", zap.Error(err))
		return expr.Value[N]{}, stats, fmt.Errorf("force: %w", err)
	}

	start = time.Now()
	res, err := expr.EvalResolved[N](root)
	stats.Evaluation = spanSince(start)
	stats.Forced = table.Forced()
	if err != nil {
		logger.Error("pass failed", zap.Error(err))
		return expr.Value[N]{}, stats, fmt.Errorf("evaluate: %w", err)
	}

	logger.Debug("pass finished",
		zap.Stringer("result", res),
		zap.Int("invocations", stats.Invocations),
		zap.Int("records", stats.Records),
		zap.Int("forced", stats.Forced),
		zap.Duration("forcing", stats.Forcing.Duration()),
		zap.Duration("evaluation", stats.Evaluation.Duration()),
	)
	return res, stats, nil
}
