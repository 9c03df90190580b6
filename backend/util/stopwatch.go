package util

import "time"

// Stopwatch holds the running/elapsed/reference state of a stopwatch.
// It reads no clock of its own: every operation is given the current time,
// so callers decide which clock drives it.
//
// While running, elapsed time is always derived as now - reference, never
// accumulated from deltas, so scheduling jitter cannot cause drift.
type Stopwatch struct {
	running   bool
	reference time.Time
	elapsed   time.Duration
}

// Start resumes accumulation at now, keeping any prior elapsed time.
// Returns false if already running.
func (s *Stopwatch) Start(now time.Time) bool {
	if s.running {
		return false
	}
	s.reference = now.Add(-s.elapsed)
	s.running = true
	return true
}

// Stop freezes elapsed time at now. Returns false if not running.
func (s *Stopwatch) Stop(now time.Time) bool {
	if !s.running {
		return false
	}
	s.elapsed = s.Elapsed(now)
	s.running = false
	return true
}

// Elapsed returns the elapsed time as of now.
// It never reports less than the last value frozen or observed.
func (s *Stopwatch) Elapsed(now time.Time) time.Duration {
	if !s.running {
		return s.elapsed
	}
	e := now.Sub(s.reference)
	if e < s.elapsed {
		// clock stepped backwards
		return s.elapsed
	}
	return e
}

// Observe records the elapsed time as of now while running and returns it.
func (s *Stopwatch) Observe(now time.Time) time.Duration {
	e := s.Elapsed(now)
	s.elapsed = e
	return e
}

// Running reports whether time is accumulating.
func (s *Stopwatch) Running() bool {
	return s.running
}

// Reference returns the instant from which elapsed time is derived.
// Meaningless while not running.
func (s *Stopwatch) Reference() time.Time {
	return s.reference
}

// Set replaces the elapsed time; when running the reference is
// recomputed so that elapsed continues from d at now.
func (s *Stopwatch) Set(d time.Duration, now time.Time) {
	if d < 0 {
		d = 0
	}
	s.elapsed = d
	if s.running {
		s.reference = now.Add(-d)
	}
}

func (s *Stopwatch) Reset() {
	s.running = false
	s.elapsed = time.Duration(0)
	s.reference = time.Time{}
}
