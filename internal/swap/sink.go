package swap

import "fmt"

// Sink receives the textual log and the progress of a run. Calls arrive on
// the run's goroutine; a UI must hand them to its own event loop.
type Sink interface {
	Log(line string)
	Progress(percent int)
}

// SinkFuncs adapts plain functions to Sink. Nil fields are ignored.
type SinkFuncs struct {
	LogFunc      func(line string)
	ProgressFunc func(percent int)
}

// Log forwards line to LogFunc.
func (s SinkFuncs) Log(line string) {
	if s.LogFunc != nil {
		s.LogFunc(line)
	}
}

// Progress forwards percent to ProgressFunc.
func (s SinkFuncs) Progress(percent int) {
	if s.ProgressFunc != nil {
		s.ProgressFunc(percent)
	}
}

// Options carries the collaborators of a run.
type Options struct {
	System  System
	Profile Profile
	Sink    Sink
}

// reporter wraps a Sink and keeps progress within [0,100] and non-decreasing.
type reporter struct {
	sink Sink
	last int
}

func newReporter(sink Sink) *reporter {
	if sink == nil {
		sink = SinkFuncs{}
	}
	r := &reporter{sink: sink}
	r.sink.Progress(0)
	return r
}

func (r *reporter) logf(format string, args ...any) {
	r.sink.Log(fmt.Sprintf(format, args...))
}

func (r *reporter) progress(percent int) {
	if percent > 100 {
		percent = 100
	}
	if percent < r.last {
		percent = r.last
	}
	r.last = percent
	r.sink.Progress(percent)
}

// span reports progress i of n linearly between from and to.
func (r *reporter) span(from int, to int, i int, n int) {
	if n <= 0 {
		r.progress(to)
		return
	}
	r.progress(from + (to-from)*i/n)
}
