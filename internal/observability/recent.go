package observability

import (
	"context"
	"sync"
	"time"
)

// Report is one entry kept by Recent.
type Report struct {
	Operation string        `json:"operation"`
	Kind      string        `json:"kind"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Slow      bool          `json:"slow"`
	At        time.Time     `json:"at"`

	err error
}

// Err returns the original error of an error report.
func (r Report) Err() error { return r.err }

// Recent keeps the last reports in memory for the admin API.
type Recent struct {
	mu      sync.Mutex
	reports []Report
	size    int
	next    int
	full    bool
}

// NewRecent keeps up to size reports. Older entries are overwritten.
func NewRecent(size int) *Recent {
	if size <= 0 {
		size = DefaultRecentSize
	}
	return &Recent{reports: make([]Report, size), size: size}
}

func (r *Recent) ReportError(_ context.Context, err error, operation string) {
	if err == nil {
		return
	}
	r.add(Report{Operation: operation, Kind: Classify(err), Error: err.Error(), At: time.Now(), err: err})
}

func (r *Recent) ReportSlowOperation(_ context.Context, label string, duration time.Duration) {
	r.add(Report{Operation: label, Duration: duration, Slow: true, At: time.Now()})
}

func (r *Recent) add(rep Report) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports[r.next] = rep
	r.next = (r.next + 1) % r.size
	if r.next == 0 {
		r.full = true
	}
}

// Snapshot returns the kept reports, oldest first.
func (r *Recent) Snapshot() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.full {
		return append([]Report(nil), r.reports[:r.next]...)
	}
	out := make([]Report, 0, r.size)
	out = append(out, r.reports[r.next:]...)
	return append(out, r.reports[:r.next]...)
}

// Errors returns only the error reports, oldest first.
func (r *Recent) Errors() []Report {
	var out []Report
	for _, rep := range r.Snapshot() {
		if !rep.Slow {
			out = append(out, rep)
		}
	}
	return out
}

// Multi fans every report out to all reporters in order.
type Multi []Reporter

func (m Multi) ReportError(ctx context.Context, err error, operation string) {
	for _, r := range m {
		r.ReportError(ctx, err, operation)
	}
}

func (m Multi) ReportSlowOperation(ctx context.Context, label string, duration time.Duration) {
	for _, r := range m {
		r.ReportSlowOperation(ctx, label, duration)
	}
}
