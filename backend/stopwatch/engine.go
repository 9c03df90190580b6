package stopwatch

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/dweymouth/lapwatch/backend/util"
	"github.com/google/uuid"
)

const (
	DefaultTickInterval = 10 * time.Millisecond

	minTickInterval = time.Millisecond
	maxTickInterval = time.Second
)

type Options struct {
	// How often the display is refreshed while running.
	TickInterval time.Duration

	// Minimum time between saves triggered by ticks.
	// Commands always save. Zero saves on every tick.
	SaveInterval time.Duration

	// Whether RecordLap is accepted while the stopwatch is paused.
	AllowLapWhilePaused bool
}

func (o Options) normalized() Options {
	if o.TickInterval <= 0 {
		o.TickInterval = DefaultTickInterval
	}
	o.TickInterval = min(max(o.TickInterval, minTickInterval), maxTickInterval)
	if o.SaveInterval < 0 {
		o.SaveInterval = 0
	}
	return o
}

// Engine owns the stopwatch state, the lap ledger and the theme,
// ticks while running and persists a Snapshot on every change.
//
// All methods are safe for concurrent use; mutations are serialized.
// Registered callbacks are invoked with the engine lock held and must
// not call back into the Engine synchronously.
type Engine struct {
	mu    sync.Mutex
	clock Clock
	store Store
	opts  Options

	sw      util.Stopwatch
	laps    LapLedger
	theme   Theme
	session uuid.UUID

	// incremented whenever ticking starts or stops;
	// a tick from an older generation is discarded
	tickGen    uint64
	cancelTick context.CancelFunc

	lastSave    time.Time
	saveFailing bool
	closed      bool

	// registered callbacks
	onTimeUpdate      []func(TimeFields)
	onLapAdded        []func(index int, label string)
	onLapsCleared     []func()
	onRunStateChanged []func(running bool)
	onThemeChanged    []func(Theme)
}

// NewEngine returns an idle engine at zero with an empty ledger.
// Use Restore to start from a previously saved session.
func NewEngine(clock Clock, store Store, opts Options) *Engine {
	if clock == nil {
		clock = SystemClock
	}
	if store == nil {
		store = NewMemoryStore(nil)
	}
	return &Engine{
		clock:   clock,
		store:   store,
		opts:    opts.normalized(),
		theme:   ThemeLight,
		session: uuid.New(),
	}
}

// Registers a callback that is notified whenever the displayed time changes.
func (e *Engine) OnTimeUpdate(cb func(TimeFields)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onTimeUpdate = append(e.onTimeUpdate, cb)
}

// Registers a callback that is notified whenever a lap is recorded.
func (e *Engine) OnLapAdded(cb func(index int, label string)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onLapAdded = append(e.onLapAdded, cb)
}

// Registers a callback that is notified whenever the ledger is emptied.
func (e *Engine) OnLapsCleared(cb func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onLapsCleared = append(e.onLapsCleared, cb)
}

// Registers a callback that is notified whenever the stopwatch starts or stops.
func (e *Engine) OnRunStateChanged(cb func(running bool)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onRunStateChanged = append(e.onRunStateChanged, cb)
}

// Registers a callback that is notified whenever the theme changes.
func (e *Engine) OnThemeChanged(cb func(Theme)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onThemeChanged = append(e.onThemeChanged, cb)
}

// Attach replays the current state to the registered callbacks:
// theme, laps, time and run state, in that order.
// Called once the presentation has registered its callbacks.
func (e *Engine) Attach() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.emitTheme()
	e.emitLapsCleared()
	for _, lap := range e.laps.Entries() {
		e.emitLapAdded(lap)
	}
	e.emitTime(e.sw.Elapsed(e.clock.Now()))
	e.emitRunState()
}

// Start resumes the stopwatch from its current elapsed time.
// No-op if already running.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.start()
}

func (e *Engine) start() {
	if e.closed || !e.sw.Start(e.clock.Now()) {
		return
	}
	e.startTicking()
	e.save()
	e.emitRunState()
}

// Stop freezes the elapsed time. No-op if not running.
// No tick is processed after Stop returns.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stop()
}

func (e *Engine) stop() {
	now := e.clock.Now()
	if e.closed || !e.sw.Stop(now) {
		return
	}
	e.stopTicking()
	e.saveAt(now)
	e.emitTime(e.sw.Elapsed(now))
	e.emitRunState()
}

// Toggle stops the stopwatch if running, else starts it.
func (e *Engine) Toggle() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sw.Running() {
		e.stop()
	} else {
		e.start()
	}
}

// Reset stops the stopwatch, zeroes it, clears all laps
// and begins a new session.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	wasRunning := e.sw.Running()
	e.stopTicking()
	e.sw.Reset()
	e.laps.Clear()
	e.session = uuid.New()
	e.save()

	e.emitLapsCleared()
	e.emitTime(0)
	if wasRunning {
		e.emitRunState()
	}
}

// RecordLap appends a lap labeled with the current elapsed time.
// Returns false, recording nothing, if the stopwatch is paused
// and paused laps are not allowed.
func (e *Engine) RecordLap() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || (!e.sw.Running() && !e.opts.AllowLapWhilePaused) {
		return false
	}

	elapsed := e.sw.Observe(e.clock.Now())
	lap := e.laps.Record(FieldsFromDuration(elapsed).String())
	e.save()

	// keep the display in step with the label just recorded
	e.emitTime(elapsed)
	e.emitLapAdded(lap)
	return true
}

// SetTheme switches between the dark and light themes.
func (e *Engine) SetTheme(dark bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t := ThemeFromDark(dark)
	if e.closed || t == e.theme {
		return
	}
	e.theme = t
	e.save()
	e.emitTheme()
}

// Close stops ticking and writes a final snapshot. The stopwatch is not
// stopped: a running session keeps running across the restart.
// All commands are no-ops afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.stopTicking()
	e.save()
	e.closed = true
}

func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sw.Running()
}

func (e *Engine) Elapsed() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sw.Elapsed(e.clock.Now())
}

func (e *Engine) Fields() TimeFields {
	return FieldsFromDuration(e.Elapsed())
}

func (e *Engine) Laps() []LapEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.laps.Entries()
}

func (e *Engine) Theme() Theme {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.theme
}

func (e *Engine) SessionID() uuid.UUID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// CanRecordLap reports whether RecordLap would currently be accepted.
func (e *Engine) CanRecordLap() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.closed && (e.sw.Running() || e.opts.AllowLapWhilePaused)
}

// Snapshot returns the state as it would be persisted now.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot(e.clock.Now())
}

func (e *Engine) snapshot(now time.Time) Snapshot {
	return Snapshot{
		ElapsedMs:   e.sw.Elapsed(now).Milliseconds(),
		Running:     e.sw.Running(),
		ReferenceMs: now.UnixMilli(),
		Laps:        e.laps.Labels(),
		Theme:       e.theme,
		SessionID:   e.session,
	}
}

func (e *Engine) startTicking() {
	e.tickGen++
	gen := e.tickGen
	ctx, cancel := context.WithCancel(context.Background())
	e.cancelTick = cancel
	ticker := e.clock.NewTicker(e.opts.TickInterval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C():
				e.tick(gen)
			}
		}
	}()
}

func (e *Engine) stopTicking() {
	if e.cancelTick != nil {
		e.cancelTick()
		e.cancelTick = nil
	}
	e.tickGen++
}

func (e *Engine) tick(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.tickGen || !e.sw.Running() {
		return // stray tick from a stopped schedule
	}

	now := e.clock.Now()
	elapsed := e.sw.Observe(now)
	if e.opts.SaveInterval == 0 || now.Sub(e.lastSave) >= e.opts.SaveInterval {
		e.saveAt(now)
	}
	e.emitTime(elapsed)
}

func (e *Engine) save() {
	e.saveAt(e.clock.Now())
}

// saves are best effort: a failure is logged once
// and healed by the next successful save
func (e *Engine) saveAt(now time.Time) {
	e.lastSave = now
	err := e.store.Save(EncodeSnapshot(e.snapshot(now)))
	if err != nil && !e.saveFailing {
		log.Printf("failed to save stopwatch state: %s", err.Error())
		e.saveFailing = true
	} else if err == nil && e.saveFailing {
		log.Println("stopwatch state saved after earlier failure")
		e.saveFailing = false
	}
}

func (e *Engine) emitTime(elapsed time.Duration) {
	f := FieldsFromDuration(elapsed)
	for _, cb := range e.onTimeUpdate {
		cb(f)
	}
}

func (e *Engine) emitLapAdded(lap LapEntry) {
	for _, cb := range e.onLapAdded {
		cb(lap.Index, lap.Label)
	}
}

func (e *Engine) emitLapsCleared() {
	for _, cb := range e.onLapsCleared {
		cb()
	}
}

func (e *Engine) emitRunState() {
	running := e.sw.Running()
	for _, cb := range e.onRunStateChanged {
		cb(running)
	}
}

func (e *Engine) emitTheme() {
	for _, cb := range e.onThemeChanged {
		cb(e.theme)
	}
}
