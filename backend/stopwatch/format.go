package stopwatch

import (
	"fmt"
	"time"
)

// TimeFields is elapsed time split into display fields.
type TimeFields struct {
	Hours   int
	Minutes int // 0..59
	Seconds int // 0..59
	Millis  int // 0..999
}

// FieldsFromDuration truncates d to whole milliseconds and splits it.
// Negative durations render as zero.
func FieldsFromDuration(d time.Duration) TimeFields {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	totalSeconds := ms / 1000
	return TimeFields{
		Hours:   int(totalSeconds / 3600),
		Minutes: int((totalSeconds % 3600) / 60),
		Seconds: int(totalSeconds % 60),
		Millis:  int(ms % 1000),
	}
}

// String renders HH:MM:SS.mmm.
func (f TimeFields) String() string {
	return fmt.Sprintf("%02d:%02d:%02d.%03d", f.Hours, f.Minutes, f.Seconds, f.Millis)
}
