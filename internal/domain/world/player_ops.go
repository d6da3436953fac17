package world

import (
	"fmt"
	"strings"
)

// RoomView is what the player sees when entering or examining a room:
// the description, the non-hidden items, and everyone present.
type RoomView struct {
	Description string
	Items       []string
	Occupants   []string
}

// Status is a point-in-time snapshot of the player's condition.
type Status struct {
	Name       string
	Day        int
	Time       string
	Health     int
	Hunger     int
	Reputation int
	Money      int
	Role       PlayerRole
	Inventory  []string
}

// PrisonerInfo is one row of the guardian's prisoner roster.
type PrisonerInfo struct {
	Name       string
	Health     int
	Reputation int
	Busy       bool
}

// roomView builds the view for a room index. Callers hold w.mu.
func (w *World) roomView(idx int) RoomView {
	room := &w.rooms[idx]
	view := RoomView{Description: room.Description}
	for _, it := range room.Items {
		if !it.Hidden {
			view.Items = append(view.Items, it.Name)
		}
	}
	for i := range w.npcs {
		if w.npcs[i].Room == idx && w.npcs[i].Alive {
			view.Occupants = append(view.Occupants, w.npcs[i].Name)
		}
	}
	return view
}

// LookAround describes the player's current room. Repeated calls never
// mutate item or NPC state.
func (w *World) LookAround() RoomView {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.roomView(w.player.Room)
}

// WhereAmI returns the description of the player's current room.
func (w *World) WhereAmI() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rooms[w.player.Room].Description
}

// CheckDoor reports the lock state and security level of the current
// room. Repeated calls never mutate lock state.
func (w *World) CheckDoor() (locked bool, security int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	room := &w.rooms[w.player.Room]
	return room.Locked, room.Security
}

// MovePlayer relocates the player to the first room matching the
// fragment. A locked target refuses the move and leaves the player
// where they are.
func (w *World) MovePlayer(fragment string) (RoomView, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	i, ok := w.findRoom(fragment)
	if !ok {
		return RoomView{}, fmt.Errorf("room %q: %w", fragment, ErrNotFound)
	}
	if w.rooms[i].Locked {
		return RoomView{}, fmt.Errorf("the door to %s is locked", w.rooms[i].Description)
	}
	w.player.Room = i
	return w.roomView(i), nil
}

// PlayerStatus snapshots the player's condition for display.
func (w *World) PlayerStatus() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	st := Status{
		Name:       w.player.Name,
		Day:        w.clock.Day,
		Time:       fmt.Sprintf("%02d:%02d", w.clock.Hour, w.clock.Minute),
		Health:     w.player.Health,
		Hunger:     w.player.Hunger,
		Reputation: w.player.Reputation,
		Money:      w.player.Money,
		Role:       w.player.Role,
	}
	for _, it := range w.player.Inventory {
		st.Inventory = append(st.Inventory, it.Name)
	}
	return st
}

// SetPlayerRole changes the player's clearance level.
func (w *World) SetPlayerRole(role PlayerRole) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.player.Role = role
}

// PlayerRole returns the player's current clearance level.
func (w *World) PlayerRole() PlayerRole {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.player.Role
}

// --- survival actions ------------------------------------------------

// EatMeal restores hunger to the maximum. Eating at full hunger is a
// no-op and reported as such.
func (w *World) EatMeal() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.player.Hunger >= MaxStat {
		return "You're not hungry."
	}
	w.player.Hunger = MaxStat
	return "You eat some food. Your hunger decreases."
}

// Work earns the player money at the cost of hunger.
func (w *World) Work() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.player.Money += 5
	w.player.Hunger = clampStat(w.player.Hunger - 10)
	return "You do some work and earn money."
}

// DecayHunger reduces hunger by the given amount, clamped at zero. Used
// by the periodic vital-decay process.
func (w *World) DecayHunger(amount int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.player.Hunger = clampStat(w.player.Hunger - amount)
}

// PlayerHealth returns the player's current health.
func (w *World) PlayerHealth() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.player.Health
}

// Fight challenges the first alive, non-busy inmate. The outcome is an
// even coin flip: a win raises reputation and sours the loser's
// relationship, a loss costs health and reputation.
func (w *World) Fight() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.npcs {
		npc := &w.npcs[i]
		if npc.Role != NPCInmate || !npc.Alive || npc.Busy {
			continue
		}
		if w.rng.Intn(100) < 50 {
			w.player.Reputation = clampStat(w.player.Reputation + 5)
			npc.Relationship -= 20
			return fmt.Sprintf("You challenge %s to a fight!\nYou win the fight! Your reputation increases.", npc.Name)
		}
		w.player.Health = clampStat(w.player.Health - 20)
		w.player.Reputation = clampStat(w.player.Reputation - 5)
		return fmt.Sprintf("You challenge %s to a fight!\nYou lose the fight! Your health decreases.", npc.Name)
	}
	return "No one wants to fight right now."
}

// SearchBed rummages through the bed in the player's cell. Roughly a
// third of searches turn up a hidden note.
func (w *World) SearchBed() (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.rooms[w.player.Room].Type != RoomCell {
		return "", fmt.Errorf("there's no bed to search here")
	}
	if w.rng.Intn(100) >= 30 {
		return "You search your bed...\nYou found nothing.", nil
	}
	if len(w.player.Inventory) >= MaxInventory {
		return "", fmt.Errorf("you found a hidden item, but your inventory is full: %w", ErrCapacityExceeded)
	}
	w.player.Inventory = append(w.player.Inventory, Item{
		Name:     "Hidden Note",
		Category: ItemDocument,
		Value:    1,
	})
	return "You search your bed...\nYou found a hidden item!", nil
}

// --- inventory -------------------------------------------------------

// InventoryNames lists the names of carried items.
func (w *World) InventoryNames() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.player.Inventory))
	for _, it := range w.player.Inventory {
		out = append(out, it.Name)
	}
	return out
}

// AddInventoryItem places an item into the player's inventory, rejecting
// the write when the fixed capacity is reached.
func (w *World) AddInventoryItem(it Item) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.addInventoryItem(it)
}

// addInventoryItem requires w.mu.
func (w *World) addInventoryItem(it Item) error {
	if len(w.player.Inventory) >= MaxInventory {
		return fmt.Errorf("inventory is full: %w", ErrCapacityExceeded)
	}
	w.player.Inventory = append(w.player.Inventory, it)
	return nil
}

// PickUpItem moves a visible item from the current room into the
// player's inventory.
func (w *World) PickUpItem(name string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	room := &w.rooms[w.player.Room]
	for i, it := range room.Items {
		if it.Hidden || !strings.EqualFold(it.Name, name) {
			continue
		}
		if err := w.addInventoryItem(it); err != nil {
			return "", err
		}
		room.Items = append(room.Items[:i], room.Items[i+1:]...)
		return fmt.Sprintf("You pick up the %s.", it.Name), nil
	}
	return "", fmt.Errorf("item %q: %w", name, ErrNotFound)
}

// DropItem moves an item from the inventory onto the current room's
// floor, subject to the room's item capacity.
func (w *World) DropItem(name string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	room := &w.rooms[w.player.Room]
	for i, it := range w.player.Inventory {
		if !strings.EqualFold(it.Name, name) {
			continue
		}
		if len(room.Items) >= MaxRoomItems {
			return "", fmt.Errorf("no space left in this room: %w", ErrCapacityExceeded)
		}
		room.Items = append(room.Items, it)
		w.player.Inventory = append(w.player.Inventory[:i], w.player.Inventory[i+1:]...)
		return fmt.Sprintf("You drop the %s.", it.Name), nil
	}
	return "", fmt.Errorf("item %q: %w", name, ErrNotFound)
}

// UseItem applies a carried item. A key unlocks the current room's door;
// anything else has no use yet.
func (w *World) UseItem(name string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, it := range w.player.Inventory {
		if !strings.EqualFold(it.Name, name) {
			continue
		}
		if it.Category == ItemKey && w.rooms[w.player.Room].Locked {
			w.rooms[w.player.Room].Locked = false
			return "You use the key to unlock the door.", nil
		}
		return "You can't use that item here.", nil
	}
	return "", fmt.Errorf("item %q: %w", name, ErrNotFound)
}

// --- documents -------------------------------------------------------

// DocumentNames lists the player's authored documents.
func (w *World) DocumentNames() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.player.Documents))
	for _, d := range w.player.Documents {
		out = append(out, d.Name)
	}
	return out
}

// WriteDocument authors a new document, rejecting the write when the
// fixed document capacity is reached.
func (w *World) WriteDocument(name, content string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.player.Documents) >= MaxDocuments {
		return fmt.Errorf("document collection is full: %w", ErrCapacityExceeded)
	}
	w.player.Documents = append(w.player.Documents, Document{Name: name, Content: content})
	return nil
}

// ReadDocument returns the content of a document. Secret documents
// refuse to be read.
func (w *World) ReadDocument(name string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, d := range w.player.Documents {
		if strings.EqualFold(d.Name, name) {
			if d.Secret {
				return "", fmt.Errorf("the document is secret and cannot be read")
			}
			return d.Content, nil
		}
	}
	return "", fmt.Errorf("document %q: %w", name, ErrNotFound)
}

// --- NPCs on the command surface -------------------------------------

// TalkTo strikes up a conversation with a named NPC. It only works when
// the NPC is alive and in the same room.
func (w *World) TalkTo(name string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	i, ok := w.findNPC(name)
	if !ok {
		return "", fmt.Errorf("NPC %q: %w", name, ErrNotFound)
	}
	npc := &w.npcs[i]
	if !npc.Alive {
		return fmt.Sprintf("%s is not available.", npc.Name), nil
	}
	if npc.Room != w.player.Room {
		return fmt.Sprintf("You are alone in %s", w.rooms[w.player.Room].Description), nil
	}
	lines := talkLines[npc.Role]
	return fmt.Sprintf("You talk to %s...\n%s says: %q", npc.Name, npc.Name, lines[w.rng.Intn(len(lines))]), nil
}

// talkLines holds the two stock phrases per NPC role.
var talkLines = map[NPCRole][2]string{
	NPCInmate: {"Hey, got any cigarettes?", "Keep your head down, new fish."},
	NPCGuard:  {"Back to your cell, inmate!", "What do you want?"},
	NPCDoctor: {"Are you feeling alright?", "I'm busy right now."},
	NPCWorker: {"Need something from the workshop?", "I'm working here."},
}

// GuardBrushOff is what a guard says when the player talks at nobody in
// particular.
const GuardBrushOff = "Mind your own business. You don't want to mess with us."

// ListPrisoners returns the roster of alive inmates.
func (w *World) ListPrisoners() []PrisonerInfo {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []PrisonerInfo
	for i := range w.npcs {
		if w.npcs[i].Role == NPCInmate && w.npcs[i].Alive {
			out = append(out, PrisonerInfo{
				Name:       w.npcs[i].Name,
				Health:     w.npcs[i].Health,
				Reputation: w.npcs[i].Reputation,
				Busy:       w.npcs[i].Busy,
			})
		}
	}
	return out
}

// SoundAlarm recalls every inmate: their ongoing activities are cut
// short so they can return to their cells.
func (w *World) SoundAlarm() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.npcs {
		if w.npcs[i].Role == NPCInmate {
			w.npcs[i].Busy = false
		}
	}
}
