package feed

import (
	"sync"
	"time"
)

// DefaultSearchSettle is how long search input must go quiet before the term
// is committed to the filter state.
const DefaultSearchSettle = 300 * time.Millisecond

// Debouncer commits the last submitted search term after a settle delay, so
// the feed is not recomposed on every keystroke. Safe for concurrent Submit.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultSearchSettle
	}
	return &Debouncer{delay: delay}
}

// Submit schedules commit(term); a newer Submit before the delay elapses
// supersedes it.
func (d *Debouncer) Submit(term string, commit func(string)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		commit(term)
	})
}

// Stop cancels any pending commit.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
