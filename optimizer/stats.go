package optimizer

import (
	"time"

	"github.com/rickb777/date/v2/timespan"
)

type TimeSpan = timespan.TimeSpan

// Stats describes one optimization pass.
type Stats struct {
	PassID      string
	Invocations int // Invocation nodes rewritten
	Records     int // distinct value-sets
	Forced      int // calls made to the expensive function
	Forcing     TimeSpan
	Evaluation  TimeSpan
}

// Saved is the number of calls memoization avoided relative to calling once
// per Invocation node.
func (s Stats) Saved() int {
	return s.Invocations - s.Forced
}

func spanSince(start time.Time) TimeSpan {
	return NewTimeSpan(start, time.Now())
}

func NewTimeSpan(from, to time.Time) TimeSpan {
	return timespan.BetweenTimes(from, to)
}
