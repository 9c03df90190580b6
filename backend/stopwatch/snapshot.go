package stopwatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Keys of the persisted key/value layout.
const (
	KeyElapsedMs      = "elapsedMs"
	KeyIsRunning      = "isRunning"
	KeyStartReference = "startReference"
	KeyLaps           = "laps"
	KeyTheme          = "theme"
	KeySession        = "session"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) IsDark() bool {
	return t == ThemeDark
}

func ThemeFromDark(dark bool) Theme {
	if dark {
		return ThemeDark
	}
	return ThemeLight
}

// Snapshot is the complete persisted state of an Engine.
type Snapshot struct {
	ElapsedMs int64
	Running   bool
	// ReferenceMs is the Unix millisecond instant at which ElapsedMs was
	// sampled. A restore at T reconstructs ElapsedMs + (T - ReferenceMs).
	ReferenceMs int64
	Laps        []string
	Theme       Theme
	SessionID   uuid.UUID
}

// largest elapsed time a time.Duration can hold
const maxElapsedMs = math.MaxInt64 / int64(time.Millisecond)

var (
	errNegativeElapsed = errors.New("negative elapsed time")
	errElapsedRange    = errors.New("elapsed time out of range")
)

// EncodeSnapshot converts s to the persisted key/value layout.
func EncodeSnapshot(s Snapshot) map[string]string {
	laps := s.Laps
	if laps == nil {
		laps = []string{}
	}
	// marshaling a []string cannot fail
	lapsJSON, _ := json.Marshal(laps)
	theme := s.Theme
	if theme == "" {
		theme = ThemeLight
	}
	kv := map[string]string{
		KeyElapsedMs:      strconv.FormatInt(s.ElapsedMs, 10),
		KeyIsRunning:      strconv.FormatBool(s.Running),
		KeyStartReference: strconv.FormatInt(s.ReferenceMs, 10),
		KeyLaps:           string(lapsJSON),
		KeyTheme:          string(theme),
	}
	if s.SessionID != uuid.Nil {
		kv[KeySession] = s.SessionID.String()
	}
	return kv
}

// DecodeSnapshot validates a persisted record as a whole.
// Returns ok=false with a nil error when the record is absent (empty),
// and a non-nil error when any value is malformed; in both cases the
// caller must fall back to the cold-start state.
func DecodeSnapshot(kv map[string]string) (s Snapshot, ok bool, err error) {
	if len(kv) == 0 {
		return Snapshot{}, false, nil
	}

	elapsedStr, have := kv[KeyElapsedMs]
	if !have {
		return Snapshot{}, false, fmt.Errorf("missing %s", KeyElapsedMs)
	}
	if s.ElapsedMs, err = strconv.ParseInt(elapsedStr, 10, 64); err != nil {
		return Snapshot{}, false, fmt.Errorf("%s: %w", KeyElapsedMs, err)
	}
	if s.ElapsedMs < 0 {
		return Snapshot{}, false, fmt.Errorf("%s: %w", KeyElapsedMs, errNegativeElapsed)
	}
	if s.ElapsedMs > maxElapsedMs {
		return Snapshot{}, false, fmt.Errorf("%s: %w", KeyElapsedMs, errElapsedRange)
	}

	runningStr, have := kv[KeyIsRunning]
	if !have {
		return Snapshot{}, false, fmt.Errorf("missing %s", KeyIsRunning)
	}
	if s.Running, err = parseStrictBool(runningStr); err != nil {
		return Snapshot{}, false, fmt.Errorf("%s: %w", KeyIsRunning, err)
	}

	if refStr, have := kv[KeyStartReference]; have {
		if s.ReferenceMs, err = strconv.ParseInt(refStr, 10, 64); err != nil {
			return Snapshot{}, false, fmt.Errorf("%s: %w", KeyStartReference, err)
		}
	} else if s.Running {
		return Snapshot{}, false, fmt.Errorf("missing %s for running stopwatch", KeyStartReference)
	}

	if lapsStr, have := kv[KeyLaps]; have && lapsStr != "" {
		if err := json.Unmarshal([]byte(lapsStr), &s.Laps); err != nil {
			return Snapshot{}, false, fmt.Errorf("%s: %w", KeyLaps, err)
		}
	}

	s.Theme = ThemeLight
	if themeStr, have := kv[KeyTheme]; have {
		switch Theme(themeStr) {
		case ThemeLight, ThemeDark:
			s.Theme = Theme(themeStr)
		default:
			return Snapshot{}, false, fmt.Errorf("%s: unknown theme %q", KeyTheme, themeStr)
		}
	}

	if sessStr, have := kv[KeySession]; have {
		if s.SessionID, err = uuid.Parse(sessStr); err != nil {
			return Snapshot{}, false, fmt.Errorf("%s: %w", KeySession, err)
		}
	}

	return s, true, nil
}

// only the exact strings written by EncodeSnapshot are accepted
func parseStrictBool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}
