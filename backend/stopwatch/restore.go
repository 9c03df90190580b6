package stopwatch

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// Restore reconstructs an Engine from the last snapshot in store.
//
// A missing, unreadable or malformed snapshot yields a fresh engine at zero.
// A snapshot saved while running resumes as if the stopwatch had kept
// running while the process was gone: the time between the snapshot and now
// is added to the saved elapsed time and ticking restarts.
// A stopped snapshot restores its elapsed time exactly.
//
// Restore emits nothing; call Attach once the presentation is wired.
func Restore(clock Clock, store Store, opts Options) *Engine {
	e := NewEngine(clock, store, opts)

	kv, err := store.Load()
	if err != nil {
		log.Printf("failed to load saved stopwatch state: %s", err.Error())
		return e
	}
	snap, ok, err := DecodeSnapshot(kv)
	if err != nil {
		log.Printf("discarding malformed stopwatch state: %s", err.Error())
		return e
	}
	if !ok {
		return e
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.restore(snap); err != nil {
		log.Printf("discarding malformed stopwatch state: %s", err.Error())
	}
	return e
}

// resumedElapsed returns the elapsed time of snap at nowMs and the part of
// it that passed while the process was gone.
func resumedElapsed(snap Snapshot, nowMs int64) (elapsed, gap time.Duration, err error) {
	elapsed = time.Duration(snap.ElapsedMs) * time.Millisecond
	// a clock that moved backwards while we were gone counts as no gap
	if !snap.Running || snap.ReferenceMs >= nowMs {
		return elapsed, 0, nil
	}
	gapMs := nowMs - snap.ReferenceMs
	if gapMs < 0 || gapMs > maxElapsedMs-snap.ElapsedMs {
		return 0, 0, fmt.Errorf("%s: %w", KeyStartReference, errElapsedRange)
	}
	gap = time.Duration(gapMs) * time.Millisecond
	return elapsed + gap, gap, nil
}

// restore leaves the engine untouched if the snapshot cannot be resumed.
func (e *Engine) restore(snap Snapshot) error {
	now := e.clock.Now()
	elapsed, gap, err := resumedElapsed(snap, now.UnixMilli())
	if err != nil {
		return err
	}

	e.laps.Restore(snap.Laps)
	e.theme = snap.Theme
	if snap.SessionID != uuid.Nil {
		e.session = snap.SessionID
	}

	e.sw.Set(elapsed, now)
	if !snap.Running {
		log.Printf("restored stopped stopwatch at %s with %d laps",
			FieldsFromDuration(elapsed), e.laps.Len())
		return nil
	}

	e.start()
	log.Printf("restored running stopwatch at %s (%s while closed) with %d laps",
		FieldsFromDuration(elapsed), gap, e.laps.Len())
	return nil
}
