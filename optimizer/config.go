package optimizer

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var ErrUnknownStrategy = errors.New("unknown forcing strategy")

// Strategy decides when memo records are forced.
type Strategy uint8

const (
	// Eager forces every record once, in discovery order, before the final
	// evaluation. The first failing call aborts the pass.
	Eager Strategy = iota
	// Lazy forces a record the first time the final evaluation reads it.
	// Records only reachable through untaken branches are never forced.
	Lazy
	// Concurrent forces every record before the final evaluation on a pool
	// of workers. Calls are unordered; every record is forced even if
	// another one fails, and all failures are reported together.
	Concurrent
)

func (s Strategy) String() string {
	switch s {
	case Eager:
		return "eager"
	case Lazy:
		return "lazy"
	case Concurrent:
		return "concurrent"
	default:
		return fmt.Sprintf("strategy(%d)", uint8(s))
	}
}

func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(s) {
	case "eager", "":
		return Eager, nil
	case "lazy":
		return Lazy, nil
	case "concurrent":
		return Concurrent, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

type Config struct {
	Strategy   Strategy
	BufferSize int         // default: 1, Concurrent only
	NumWorkers int         // default: 1, Concurrent only
	Logger     *zap.Logger // default: no-op
}

func NewConfig(strategy Strategy, bufferSize int, numWorkers int, logger *zap.Logger) Config {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return Config{
		Strategy:   strategy,
		BufferSize: bufferSize,
		NumWorkers: numWorkers,
		Logger:     logger,
	}
}

// DefaultConfig forces eagerly and sequentially and logs nothing.
func DefaultConfig() Config {
	return NewConfig(Eager, 1, 1, nil)
}
