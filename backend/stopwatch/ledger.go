package stopwatch

import "github.com/dweymouth/lapwatch/sharedutil"

// LapEntry is one recorded split. Index is 1-based and gapless.
type LapEntry struct {
	Index int
	Label string
}

// LapLedger is the append-only list of recorded laps.
// Not safe for concurrent use; the Engine serializes access.
type LapLedger struct {
	entries []LapEntry
}

// Record appends a lap with the next index and returns it.
func (l *LapLedger) Record(label string) LapEntry {
	e := LapEntry{Index: len(l.entries) + 1, Label: label}
	l.entries = append(l.entries, e)
	return e
}

// Clear removes all laps; the next recorded lap is numbered 1.
func (l *LapLedger) Clear() {
	l.entries = nil
}

// Restore replaces the ledger with the given labels, numbered 1..n.
func (l *LapLedger) Restore(labels []string) {
	l.entries = make([]LapEntry, 0, len(labels))
	for _, label := range labels {
		l.Record(label)
	}
}

func (l *LapLedger) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the recorded laps in order.
func (l *LapLedger) Entries() []LapEntry {
	return append([]LapEntry(nil), l.entries...)
}

// Labels returns the lap labels in order.
func (l *LapLedger) Labels() []string {
	return sharedutil.MapSlice(l.entries, func(e LapEntry) string {
		return e.Label
	})
}
