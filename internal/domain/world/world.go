package world

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

// World owns every piece of mutable simulation state for the session
// lifetime. One exclusive mutex guards the whole model: every background
// process and the command processor goes through a World method, so no
// read-modify-write can interleave with another.
type World struct {
	mu sync.Mutex

	rooms  []Room
	npcs   []NPC
	player Player
	clock  Clock
	event  GameEvent

	rng      *rand.Rand
	gameOver bool
	outcome  Outcome
}

// New assembles a world from initial room and NPC tables. The tables are
// copied; callers keep no aliases into the model. The seed drives every
// probabilistic outcome inside world operations.
func New(rooms []Room, npcs []NPC, playerName string, seed int64) *World {
	w := &World{
		rooms: make([]Room, len(rooms)),
		npcs:  make([]NPC, len(npcs)),
		rng:   rand.New(rand.NewSource(seed)),
	}
	copy(w.rooms, rooms)
	copy(w.npcs, npcs)
	for i := range w.rooms {
		items := w.rooms[i].Items
		w.rooms[i].Items = make([]Item, len(items))
		copy(w.rooms[i].Items, items)
	}

	w.player = Player{
		Name:       playerName,
		Health:     MaxStat,
		Hunger:     MaxStat,
		Reputation: 50,
		Money:      0,
		Sentence:   MaxDays,
		Role:       RolePrisoner,
		Room:       0,
		Inventory:  make([]Item, 0, MaxInventory),
		Documents:  make([]Document, 0, MaxDocuments),
	}
	w.clock = Clock{Day: 1, Hour: 8, Minute: 0}
	return w
}

// --- game over -------------------------------------------------------

// EndGame marks the session finished. The flag is the sole cancellation
// signal; background processes observe it at each tick boundary.
func (w *World) EndGame(outcome Outcome) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.gameOver {
		w.gameOver = true
		w.outcome = outcome
	}
}

// IsGameOver reports whether the session has ended.
func (w *World) IsGameOver() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gameOver
}

// Outcome returns how the game ended, or OutcomeNone while running.
func (w *World) Outcome() Outcome {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.outcome
}

// EvaluateEndings clamps hunger, then applies the two terminal checks:
// health exhausted (loss) and sentence served (release). It is called
// after every command.
func (w *World) EvaluateEndings() (Outcome, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.player.Hunger = clampStat(w.player.Hunger)

	if w.gameOver {
		return w.outcome, true
	}
	if w.player.Health <= 0 {
		w.gameOver = true
		w.outcome = OutcomeDied
	} else if w.clock.Day >= w.player.Sentence {
		w.gameOver = true
		w.outcome = OutcomeReleased
	}
	return w.outcome, w.gameOver
}

// --- clock -----------------------------------------------------------

// AdvanceClock moves the world time forward one simulated minute,
// rolling minutes into hours and hours into days. It reports the current
// day and whether that day just changed.
func (w *World) AdvanceClock() (day int, rolled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.clock.Minute++
	if w.clock.Minute == 60 {
		w.clock.Minute = 0
		w.clock.Hour++
	}
	if w.clock.Hour == 24 {
		w.clock.Hour = 0
		w.clock.Day++
		rolled = true
	}
	return w.clock.Day, rolled
}

// ClockNow returns the current simulated time.
func (w *World) ClockNow() Clock {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.clock
}

// --- event slot ------------------------------------------------------

// PublishEvent overwrites the shared incident slot. There is no queue
// and no expiry timer; the newest event always wins.
func (w *World) PublishEvent(ev GameEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()
	ev.Active = true
	w.event = ev
}

// CurrentEvent returns the incident slot and whether it holds an active
// event.
func (w *World) CurrentEvent() (GameEvent, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.event, w.event.Active
}

// --- lookups ---------------------------------------------------------

// findRoom matches a name fragment against room descriptions,
// case-insensitively. The first matching entry wins, ties broken by
// table order. Callers hold w.mu.
func (w *World) findRoom(fragment string) (int, bool) {
	needle := strings.ToLower(fragment)
	for i := range w.rooms {
		if strings.Contains(strings.ToLower(w.rooms[i].Description), needle) {
			return i, true
		}
	}
	return 0, false
}

// findNPC matches an NPC by name, case-insensitively. Callers hold w.mu.
func (w *World) findNPC(name string) (int, bool) {
	for i := range w.npcs {
		if strings.EqualFold(w.npcs[i].Name, name) {
			return i, true
		}
	}
	return 0, false
}

// RoomCount returns the size of the room table.
func (w *World) RoomCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.rooms)
}

// NPCCount returns the size of the NPC table.
func (w *World) NPCCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.npcs)
}

// RoomDescriptions lists every room description in table order.
func (w *World) RoomDescriptions() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.rooms))
	for i := range w.rooms {
		out[i] = w.rooms[i].Description
	}
	return out
}

// RoomLockStates returns the lock flag of every room in table order.
func (w *World) RoomLockStates() []bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]bool, len(w.rooms))
	for i := range w.rooms {
		out[i] = w.rooms[i].Locked
	}
	return out
}

// --- door control ----------------------------------------------------

// LockRoom locks the first room whose description matches the fragment
// and returns its description.
func (w *World) LockRoom(fragment string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	i, ok := w.findRoom(fragment)
	if !ok {
		return "", fmt.Errorf("room %q: %w", fragment, ErrNotFound)
	}
	w.rooms[i].Locked = true
	return w.rooms[i].Description, nil
}

// UnlockRoom unlocks the first room whose description matches the
// fragment and returns its description.
func (w *World) UnlockRoom(fragment string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	i, ok := w.findRoom(fragment)
	if !ok {
		return "", fmt.Errorf("room %q: %w", fragment, ErrNotFound)
	}
	w.rooms[i].Locked = false
	return w.rooms[i].Description, nil
}
