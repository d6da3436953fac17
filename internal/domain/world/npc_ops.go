package world

import "fmt"

// NPCObservation is an atomic snapshot of one NPC's position, taken
// together with the lock state of the room they stand in.
type NPCObservation struct {
	Name       string
	Role       NPCRole
	Room       int
	RoomLocked bool
	Busy       bool
	Alive      bool
}

// ObserveNPCs snapshots every NPC under a single lock acquisition, so a
// reader never sees a position and a lock flag from different moments.
func (w *World) ObserveNPCs() []NPCObservation {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]NPCObservation, len(w.npcs))
	for i := range w.npcs {
		out[i] = NPCObservation{
			Name:       w.npcs[i].Name,
			Role:       w.npcs[i].Role,
			Room:       w.npcs[i].Room,
			RoomLocked: w.rooms[w.npcs[i].Room].Locked,
			Busy:       w.npcs[i].Busy,
			Alive:      w.npcs[i].Alive,
		}
	}
	return out
}

// TryRelocateNPC moves one NPC to a uniformly random room, honoring the
// house rules: busy or dead NPCs stay put, inmates never enter the
// office, and a locked door on either end blocks the move.
func (w *World) TryRelocateNPC(idx int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if idx < 0 || idx >= len(w.npcs) {
		return false
	}
	npc := &w.npcs[idx]
	if !npc.Alive || npc.Busy {
		return false
	}

	target := w.rng.Intn(len(w.rooms))
	if npc.Role == NPCInmate && w.rooms[target].Type == RoomOffice {
		return false
	}
	if w.rooms[npc.Room].Locked || w.rooms[target].Locked {
		return false
	}
	npc.Room = target
	return true
}

// MaybeStartNPCActivity rolls the 20% activity chance for an NPC that
// just moved. On success the NPC is marked busy and a role-specific
// description of what they are doing is returned; the caller is
// responsible for scheduling FinishNPCActivity once the activity runs
// its course.
func (w *World) MaybeStartNPCActivity(idx int) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if idx < 0 || idx >= len(w.npcs) {
		return "", false
	}
	npc := &w.npcs[idx]
	if !npc.Alive || npc.Busy {
		return "", false
	}
	if w.rng.Intn(100) >= 20 {
		return "", false
	}
	npc.Busy = true
	acts := activityLines[npc.Role]
	return fmt.Sprintf("%s is %s.", npc.Name, acts[w.rng.Intn(len(acts))]), true
}

// FinishNPCActivity clears the busy flag set by MaybeStartNPCActivity.
func (w *World) FinishNPCActivity(idx int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if idx < 0 || idx >= len(w.npcs) {
		return
	}
	w.npcs[idx].Busy = false
}

// activityLines holds the two stock activities per NPC role.
var activityLines = map[NPCRole][2]string{
	NPCInmate: {"working in the workshop", "reading in the library"},
	NPCGuard:  {"patrolling the cell block", "checking the security cameras"},
	NPCDoctor: {"treating patients", "updating medical records"},
	NPCWorker: {"working in the kitchen", "cleaning common areas"},
}
