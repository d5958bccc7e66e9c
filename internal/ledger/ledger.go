package ledger

import "sync"

// Billable services tracked over one pipeline run.
const (
	TranslateChars    = "translate_chars"
	ComprehendCalls   = "comprehend_calls"
	TranscribeSeconds = "transcribe_seconds"
)

// Ledger accumulates billable units per service. One instance is owned by the
// pipeline driver and handed to the stages that perform billable calls; each
// successful external call increments its counter exactly once.
type Ledger struct {
	mu     sync.Mutex
	counts map[string]float64
}

func New() *Ledger {
	return &Ledger{counts: map[string]float64{
		TranslateChars:    0,
		ComprehendCalls:   0,
		TranscribeSeconds: 0,
	}}
}

// Add increments the counter for a service.
func (l *Ledger) Add(service string, amount float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[service] += amount
}

// Snapshot returns a copy of all counters.
func (l *Ledger) Snapshot() map[string]float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]float64, len(l.counts))
	for k, v := range l.counts {
		out[k] = v
	}
	return out
}
