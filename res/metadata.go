package res

const (
	AppName          = "lapwatch"
	DisplayName      = "Lapwatch"
	AppVersion       = "0.3.0"
	AppVersionTag    = "v" + AppVersion
	ConfigFile       = "config.toml"
	GithubURL        = "https://github.com/dweymouth/lapwatch"
	LatestReleaseURL = GithubURL + "/releases/latest"
	Copyright        = "Copyright © 2025–2026 Drew Weymouth and contributors"
)

var (
	WhatsAdded = `
## Added
* Laps can optionally be recorded while paused
* SQLite state backend (set StateBackend = "sqlite" in config.toml)
* -state command line flag prints the stopwatch state as JSON`

	WhatsFixed = `
## Fixed
* Elapsed time drifting after the system clock was stepped back
* Tray menu Lap item enabled while paused`
)
