package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"time"

	"github.com/dweymouth/lapwatch/backend/ipc"
	"github.com/dweymouth/lapwatch/backend/stopwatch"
	"github.com/dweymouth/lapwatch/backend/util"

	"github.com/20after4/configdir"
)

const (
	configFile     = "config.toml"
	portableDir    = "lapwatch_portable"
	savedStateFile = "saved_state.json"
	stateDBFile    = "state.db"
)

var ErrAnotherInstance = errors.New("another instance is running")

var _ ipc.WindowHandler = (*App)(nil)

type App struct {
	Config        *Config
	Engine        *stopwatch.Engine
	Commands      *StopwatchCommands
	UpdateChecker UpdateChecker
	MPRISHandler  *MPRISHandler

	// UI callbacks to be set in main
	OnReactivate func()
	OnExit       func()

	appName       string
	appVersionTag string
	configDir     string
	portableMode  bool
	headless      bool

	isFirstLaunch bool // set by config file reader
	bgrndCtx      context.Context
	cancel        context.CancelFunc

	sqliteStore *stopwatch.SQLiteStore
	ipcServer   *http.Server

	lastWrittenCfg Config
}

func (a *App) VersionTag() string {
	return a.appVersionTag
}

// StartupApp loads config and state and runs the command line commands.
// A headless app only serves one-shot queries: it does not check for
// updates, listen for IPC or claim an MPRIS name.
func StartupApp(appName, displayAppName, appVersionTag, latestReleaseURL string, headless bool) (*App, error) {
	var confDir string
	portableMode := false
	if p := checkPortablePath(); p != "" {
		confDir = path.Join(p, "config")
		portableMode = true
	} else {
		confDir = configdir.LocalConfig(appName)
	}
	// ensure config dir exists
	configdir.MakePath(confDir)

	if cli, err := ipc.Connect(); err == nil {
		if err := forwardToRunningInstance(cli); err != nil {
			log.Printf("error sending commands to running instance: %s", err.Error())
		}
		return nil, ErrAnotherInstance
	}

	log.Printf("Starting %s...", appName)
	log.Printf("Using config dir: %s", confDir)

	a := &App{
		appName:       appName,
		appVersionTag: appVersionTag,
		configDir:     confDir,
		portableMode:  portableMode,
		headless:      headless,
	}
	a.bgrndCtx, a.cancel = context.WithCancel(context.Background())
	a.readConfig()
	a.startConfigWriter(a.bgrndCtx)

	a.Engine = stopwatch.Restore(stopwatch.SystemClock, a.openStateStore(), a.Config.Stopwatch.EngineOptions())
	a.Commands = NewStopwatchCommands(a.Engine)
	if err := RunCommandLineCommands(a.Commands); err != nil {
		log.Printf("command line: %s", err.Error())
	}

	a.UpdateChecker = NewUpdateChecker(appVersionTag, latestReleaseURL, &a.Config.Application.LastCheckedVersion)
	a.startServices(displayAppName)

	return a, nil
}

func (a *App) startServices(displayAppName string) {
	if a.headless {
		return
	}

	if a.Config.Application.CheckForUpdates {
		a.UpdateChecker.Start(a.bgrndCtx, 24*time.Hour)
	}

	if listener, err := ipc.Listen(); err != nil {
		log.Printf("failed to start IPC listener: %s", err.Error())
	} else {
		a.ipcServer = ipc.NewServer(a.Commands, a)
		go a.ipcServer.Serve(listener)
	}

	if a.Config.MPRIS.Enabled {
		a.setupMPRIS(displayAppName)
	}
}

// forwardToRunningInstance sends the command line to the instance
// listening on the IPC socket, or asks it to show its window.
func forwardToRunningInstance(cli *ipc.Client) error {
	if !HaveCommandLineOptions() {
		log.Println("Another instance is running. Reactivating it...")
		return cli.Show()
	}
	err := RunCommandLineCommands(cli)
	if *FlagState {
		s, stateErr := cli.State()
		if stateErr != nil {
			return errors.Join(err, stateErr)
		}
		if printErr := PrintState(*s); printErr != nil {
			return errors.Join(err, printErr)
		}
	}
	return err
}

// PrintState writes the state to stdout as indented JSON.
func PrintState(s ipc.State) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Println(string(b))
	return err
}

func (a *App) IsFirstLaunch() bool {
	return a.isFirstLaunch
}

func (a *App) ConfigDir() string {
	return a.configDir
}

func (a *App) IsPortableMode() bool {
	return a.portableMode
}

func checkPortablePath() string {
	if p, err := os.Executable(); err == nil {
		pdirPath := path.Join(filepath.Dir(p), portableDir)
		if s, err := os.Stat(pdirPath); err == nil && s.IsDir() {
			return pdirPath
		}
	}
	return ""
}

func (a *App) readConfig() {
	cfgPath := a.configFilePath()
	var cfgExists bool
	if _, err := os.Stat(cfgPath); err == nil {
		cfgExists = true
	}
	a.isFirstLaunch = !cfgExists
	cfg, err := ReadConfigFile(cfgPath, a.appVersionTag)
	if err != nil {
		if cfgExists {
			log.Printf("Error reading app config file: %v", err)
			backupCfgName := fmt.Sprintf("%s.bak", configFile)
			log.Printf("Config file may be malformed: copying to %s", backupCfgName)
			_ = util.CopyFile(cfgPath, path.Join(a.configDir, backupCfgName))
		}
		cfg = DefaultConfig(a.appVersionTag)
	}
	a.Config = cfg
}

// openStateStore opens the configured state backend,
// falling back to an in-memory store if it cannot be opened.
func (a *App) openStateStore() stopwatch.Store {
	switch a.Config.Stopwatch.StateBackend {
	case StateBackendSQLite:
		s, err := stopwatch.OpenSQLiteStore(path.Join(a.configDir, stateDBFile))
		if err != nil {
			log.Printf("failed to open state database, state will not persist: %s", err.Error())
			return stopwatch.NewMemoryStore(nil)
		}
		a.sqliteStore = s
		return s
	default:
		return stopwatch.NewFileStore(path.Join(a.configDir, savedStateFile))
	}
}

// periodically save config file so abnormal exit won't lose settings
func (a *App) startConfigWriter(ctx context.Context) {
	tick := time.NewTicker(2 * time.Minute)
	go func() {
		for {
			select {
			case <-ctx.Done():
				tick.Stop()
				return
			case <-tick.C:
				if !reflect.DeepEqual(&a.lastWrittenCfg, a.Config) {
					a.Config.WriteConfigFile(a.configFilePath())
					a.lastWrittenCfg = *a.Config
				}
			}
		}
	}()
}

func (a *App) callOnReactivate() {
	if a.OnReactivate != nil {
		a.OnReactivate()
	}
}

// Show implements ipc.WindowHandler.
func (a *App) Show() {
	a.callOnReactivate()
}

// Quit implements ipc.WindowHandler.
func (a *App) Quit() {
	if a.OnExit != nil {
		a.OnExit()
	}
}

func (a *App) setupMPRIS(mprisAppName string) {
	a.MPRISHandler = NewMPRISHandler(mprisAppName, a.Engine)
	a.MPRISHandler.OnRaise = func() error { a.callOnReactivate(); return nil }
	a.MPRISHandler.OnQuit = func() error {
		if a.OnExit == nil {
			return errors.New("no quit handler registered")
		}
		go func() {
			time.Sleep(10 * time.Millisecond)
			a.OnExit()
		}()
		return nil
	}
	a.MPRISHandler.Start()
}

func (a *App) Shutdown() {
	if a.MPRISHandler != nil {
		a.MPRISHandler.Shutdown()
	}
	if a.ipcServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		a.ipcServer.Shutdown(ctx)
		cancel()
		ipc.DestroyConn()
	}
	a.Engine.Close()
	if a.sqliteStore != nil {
		if err := a.sqliteStore.Close(); err != nil {
			log.Printf("error closing state database: %s", err.Error())
		}
	}
	a.cancel()
	a.Config.WriteConfigFile(a.configFilePath())
}

func (a *App) SaveConfigFile() {
	a.Config.WriteConfigFile(a.configFilePath())
	a.lastWrittenCfg = *a.Config
}

func (a *App) configFilePath() string {
	return path.Join(a.configDir, configFile)
}

func clamp(i, min, max int) int {
	if i < min {
		i = min
	} else if i > max {
		i = max
	}
	return i
}
