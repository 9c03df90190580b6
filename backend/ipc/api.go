package ipc

import "fmt"

const (
	PingPath   = "/ping"
	TogglePath = "/stopwatch/toggle"
	StartPath  = "/stopwatch/start"
	StopPath   = "/stopwatch/stop"
	ResetPath  = "/stopwatch/reset"
	LapPath    = "/stopwatch/lap"
	ThemePath  = "/stopwatch/theme" // ?dark=<bool>
	StatePath  = "/stopwatch/state"
	ShowPath   = "/window/show"
	QuitPath   = "/window/quit"
)

type Response struct {
	Error string `json:"error"`
}

type Lap struct {
	Index int    `json:"index"`
	Label string `json:"label"`
}

// State is the response body of StatePath.
type State struct {
	Running   bool   `json:"running"`
	ElapsedMs int64  `json:"elapsedMs"`
	Display   string `json:"display"`
	Laps      []Lap  `json:"laps"`
	Theme     string `json:"theme"`
	Session   string `json:"session"`
}

func SetThemePath(dark bool) string {
	return fmt.Sprintf("%s?dark=%t", ThemePath, dark)
}
