package backend

import (
	"os"
	"sync"
	"time"

	"github.com/dweymouth/lapwatch/backend/stopwatch"
	"github.com/dweymouth/lapwatch/backend/util"
	"github.com/pelletier/go-toml/v2"
)

const (
	StateBackendFile   = "file"
	StateBackendSQLite = "sqlite"
)

type AppConfig struct {
	WindowWidth         int
	WindowHeight        int
	LastCheckedVersion  string
	LastLaunchedVersion string
	EnableSystemTray    bool
	CloseToSystemTray   bool
	CheckForUpdates     bool
}

type StopwatchConfig struct {
	// Display refresh period while running, in milliseconds (1-1000).
	TickIntervalMs int
	// Minimum milliseconds between saves triggered by ticks; 0 saves every tick.
	SaveIntervalMs      int
	AllowLapWhilePaused bool
	// "file" or "sqlite"
	StateBackend string
}

type MPRISConfig struct {
	Enabled bool
}

type Config struct {
	Application AppConfig
	Stopwatch   StopwatchConfig
	MPRIS       MPRISConfig
}

func DefaultConfig(appVersionTag string) *Config {
	return &Config{
		Application: AppConfig{
			WindowWidth:         420,
			WindowHeight:        560,
			LastCheckedVersion:  appVersionTag,
			LastLaunchedVersion: "",
			EnableSystemTray:    true,
			CloseToSystemTray:   false,
			CheckForUpdates:     true,
		},
		Stopwatch: StopwatchConfig{
			TickIntervalMs:      int(stopwatch.DefaultTickInterval / time.Millisecond),
			SaveIntervalMs:      0,
			AllowLapWhilePaused: false,
			StateBackend:        StateBackendFile,
		},
		MPRIS: MPRISConfig{
			Enabled: true,
		},
	}
}

func ReadConfigFile(filepath, appVersionTag string) (*Config, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := DefaultConfig(appVersionTag)
	if err := toml.NewDecoder(f).Decode(c); err != nil {
		return nil, err
	}

	c.Stopwatch.TickIntervalMs = clamp(c.Stopwatch.TickIntervalMs, 1, 1000)
	c.Stopwatch.SaveIntervalMs = max(c.Stopwatch.SaveIntervalMs, 0)
	if c.Stopwatch.StateBackend != StateBackendSQLite {
		c.Stopwatch.StateBackend = StateBackendFile
	}

	return c, nil
}

// EngineOptions converts the stopwatch settings for the engine.
func (c *StopwatchConfig) EngineOptions() stopwatch.Options {
	return stopwatch.Options{
		TickInterval:        time.Duration(c.TickIntervalMs) * time.Millisecond,
		SaveInterval:        time.Duration(c.SaveIntervalMs) * time.Millisecond,
		AllowLapWhilePaused: c.AllowLapWhilePaused,
	}
}

var writeLock sync.Mutex

func (c *Config) WriteConfigFile(filepath string) error {
	if !writeLock.TryLock() {
		return nil // another write in progress
	}
	defer writeLock.Unlock()

	b, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return util.WriteFileAtomic(filepath, b, 0644)
}
