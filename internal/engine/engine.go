// Package engine runs the background processes of the simulation: the
// world clock, hunger decay, random world events, and autonomous NPC
// activity. Every process mutates the shared world model exclusively
// through its locked operations and observes the game-over flag at each
// tick boundary.
package engine

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wardenworks/prisonsim/internal/domain/world"
	"github.com/wardenworks/prisonsim/internal/feed"
	"github.com/wardenworks/prisonsim/internal/platform/logger"
)

// Config tunes the pacing of the background processes. The defaults
// match the classic real-time pacing; tests compress them.
type Config struct {
	ClockTick   time.Duration // one simulated minute per tick
	HungerTick  time.Duration // hunger decay interval
	HungerDecay int           // hunger lost per decay tick

	EventTick   time.Duration // world event roll interval
	EventChance int           // percent chance of an event per roll

	NPCTickMinSeconds int // lower bound of the NPC round interval
	NPCTickJitter     int // random extra seconds added to the bound
	ActivityMinMillis int // lower bound of an NPC activity duration
	ActivityJitter    int // random extra milliseconds added to the bound

	Seed int64 // drives the engine's own probability rolls
}

// DefaultConfig returns the standard pacing.
func DefaultConfig() Config {
	return Config{
		ClockTick:         1 * time.Second,
		HungerTick:        60 * time.Second,
		HungerDecay:       10,
		EventTick:         30 * time.Second,
		EventChance:       10,
		NPCTickMinSeconds: 5,
		NPCTickJitter:     10,
		ActivityMinMillis: 2000,
		ActivityJitter:    5000,
		Seed:              time.Now().UnixNano(),
	}
}

// Notifier receives human-readable announcements from the background
// processes. The engine does not own the sink; the caller decides
// whether that is a console, a log, or a spectator hub.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string)

// Notify satisfies Notifier.
func (f NotifierFunc) Notify(message string) { f(message) }

// Engine owns the four background processes and joins them on shutdown.
type Engine struct {
	cfg      Config
	world    *world.World
	feed     *feed.Log
	logger   *logger.Logger
	notifier Notifier

	wg       sync.WaitGroup
	seedSalt atomic.Int64

	timerMu sync.Mutex
	timers  map[int]*time.Timer // pending NPC activity timers, by NPC index
}

// New wires the engine to the shared world model and the activity feed.
func New(w *world.World, f *feed.Log, log *logger.Logger, notifier Notifier, cfg Config) *Engine {
	return &Engine{
		cfg:      cfg,
		world:    w,
		feed:     f,
		logger:   log,
		notifier: notifier,
		timers:   make(map[int]*time.Timer),
	}
}

// Start spawns the clock, hunger-decay, event, and NPC-activity
// processes. Each one stops when the context is canceled or the world
// reports game over.
func (e *Engine) Start(ctx context.Context) {
	e.logger.Info("Starting background processes...")

	e.spawn(func(*rand.Rand) { e.runClock(ctx) })
	e.spawn(func(*rand.Rand) { e.runHungerDecay(ctx) })
	e.spawn(func(rng *rand.Rand) { e.runEvents(ctx, rng) })
	e.spawn(func(rng *rand.Rand) { e.runNPCActivity(ctx, rng) })
}

// spawn starts one background process with its own random source, so
// none of them contend over a shared generator.
func (e *Engine) spawn(run func(rng *rand.Rand)) {
	rng := rand.New(rand.NewSource(e.cfg.Seed + e.seedSalt.Add(1)))
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		run(rng)
	}()
}

// Wait blocks until every background process has exited, then cancels
// any still-pending NPC activity timers.
func (e *Engine) Wait() {
	e.wg.Wait()
	e.timerMu.Lock()
	for _, t := range e.timers {
		t.Stop()
	}
	e.timers = make(map[int]*time.Timer)
	e.timerMu.Unlock()
	e.logger.Info("All background processes stopped.")
}

// announce records an entry in the activity feed and forwards it to the
// notification sink.
func (e *Engine) announce(category feed.Category, message string, severity int) {
	day := e.world.ClockNow().Day
	e.feed.Record(category, message, severity, day)
	if e.notifier != nil {
		e.notifier.Notify(message)
	}
}

func (e *Engine) trackTimer(idx int, t *time.Timer) {
	e.timerMu.Lock()
	e.timers[idx] = t
	e.timerMu.Unlock()
}

func (e *Engine) untrackTimer(idx int) {
	e.timerMu.Lock()
	delete(e.timers, idx)
	e.timerMu.Unlock()
}
