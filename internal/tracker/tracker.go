// Package tracker accumulates session behavior reported by the front-end:
// scroll depth, per-section dwell time, and click interactions. Each
// concern is failure-isolated — a panic in one handler is logged and must
// not stop the others or the periodic flush.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/kalambet/persona/internal/profile"
)

const defaultFlushInterval = 30 * time.Second

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Tracker feeds behavior events into the profile store and flushes the
// session into a visit record on a timer and on shutdown.
type Tracker struct {
	store *profile.Store
	clock Clock
	flush time.Duration

	mu            sync.Mutex
	sectionStarts map[string]time.Time
}

// New creates a Tracker flushing at the given interval.
// If flushInterval <= 0, it defaults to 30 seconds.
func New(store *profile.Store, flushInterval time.Duration) *Tracker {
	return NewWithClock(store, flushInterval, realClock{})
}

// NewWithClock is New with an injected clock (for testing).
func NewWithClock(store *profile.Store, flushInterval time.Duration, clock Clock) *Tracker {
	if flushInterval <= 0 {
		flushInterval = defaultFlushInterval
	}
	return &Tracker{
		store:         store,
		clock:         clock,
		flush:         flushInterval,
		sectionStarts: make(map[string]time.Time),
	}
}

// Run flushes periodically until ctx is cancelled, then performs a final
// flush (the unload save).
func (t *Tracker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.flush)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.Flush()
			return
		case <-ticker.C:
			t.Flush()
		}
	}
}

// Scroll records a scroll position. Depth is scrollY relative to the
// scrollable height; positions beyond document bounds clamp to [0, 100].
func (t *Tracker) Scroll(scrollY, documentHeight, viewportHeight float64) {
	t.guard("scroll", func() {
		scrollable := documentHeight - viewportHeight
		if scrollable <= 0 {
			// Nothing to scroll: any position means the whole page is visible.
			t.store.RecordScroll(100)
			return
		}
		t.store.RecordScroll(scrollY / scrollable * 100)
	})
}

// Click records an interaction with an element. The stored entry is the
// element identifier plus the time, matching the visit-record format.
func (t *Tracker) Click(element string) {
	t.guard("click", func() {
		if element == "" {
			element = "unknown"
		}
		t.store.RecordClick(fmt.Sprintf("%s-%d", element, t.clock.Now().UnixMilli()))
	})
}

// SectionEnter marks a section as visible (the client asserts the 50%
// visibility threshold). Re-entering restarts the interval.
func (t *Tracker) SectionEnter(section string) {
	t.guard("section", func() {
		if section == "" {
			return
		}
		t.mu.Lock()
		t.sectionStarts[section] = t.clock.Now()
		t.mu.Unlock()
	})
}

// SectionLeave closes a visibility interval and adds it to the section's
// accumulated time. Leaving a section that never entered is ignored.
func (t *Tracker) SectionLeave(section string) {
	t.guard("section", func() {
		t.mu.Lock()
		start, ok := t.sectionStarts[section]
		if ok {
			delete(t.sectionStarts, section)
		}
		t.mu.Unlock()
		if !ok {
			return
		}
		t.store.AddSectionTime(section, t.clock.Now().Sub(start))
	})
}

// Flush folds open section intervals into the accumulated times (restarting
// them so still-visible sections keep counting) and saves the profile.
func (t *Tracker) Flush() {
	t.guard("flush", func() {
		now := t.clock.Now()

		t.mu.Lock()
		for section, start := range t.sectionStarts {
			t.store.AddSectionTime(section, now.Sub(start))
			t.sectionStarts[section] = now
		}
		t.mu.Unlock()

		t.store.Save()
	})
}

// guard isolates a tracking concern: a panic is logged, never propagated.
func (t *Tracker) guard(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("tracker handler panicked", "handler", name, "panic", r)
		}
	}()
	fn()
}
