// Package world defines the shared world model for the prison simulation:
// rooms, items, NPCs, the player, the clock and the current event slot.
// This package is PURE and must NOT import any infrastructure packages.
package world

import (
	"fmt"
	"strings"
)

// Capacity limits for the fixed-size collections of the world model.
const (
	MaxStat      = 100
	MaxDays      = 365
	MaxInventory = 5
	MaxDocuments = 10
	MaxRoomItems = 10
)

// RoomType identifies the kind of room.
type RoomType string

const (
	RoomCell      RoomType = "CELL"
	RoomCorridor  RoomType = "CORRIDOR"
	RoomCafeteria RoomType = "CAFETERIA"
	RoomYard      RoomType = "YARD"
	RoomInfirmary RoomType = "INFIRMARY"
	RoomShower    RoomType = "SHOWER"
	RoomLibrary   RoomType = "LIBRARY"
	RoomWorkshop  RoomType = "WORKSHOP"
	RoomOffice    RoomType = "OFFICE"
)

// ItemCategory identifies the kind of item.
type ItemCategory string

const (
	ItemKey      ItemCategory = "KEY"
	ItemTool     ItemCategory = "TOOL"
	ItemWeapon   ItemCategory = "WEAPON"
	ItemMedicine ItemCategory = "MEDICINE"
	ItemFood     ItemCategory = "FOOD"
	ItemDocument ItemCategory = "DOCUMENT"
)

// NPCRole identifies the occupation of a non-player character.
type NPCRole string

const (
	NPCInmate NPCRole = "INMATE"
	NPCGuard  NPCRole = "GUARD"
	NPCDoctor NPCRole = "DOCTOR"
	NPCWorker NPCRole = "WORKER"
)

// EventCategory identifies the kind of world incident.
type EventCategory string

const (
	EventFight            EventCategory = "FIGHT"
	EventSearch           EventCategory = "SEARCH"
	EventRiot             EventCategory = "RIOT"
	EventMedicalEmergency EventCategory = "MEDICAL_EMERGENCY"
	EventEscapeAttempt    EventCategory = "ESCAPE_ATTEMPT"
)

// EventCategories lists every incident kind, in roll order.
var EventCategories = []EventCategory{
	EventFight,
	EventSearch,
	EventRiot,
	EventMedicalEmergency,
	EventEscapeAttempt,
}

// EventDescriptions maps each incident kind to its announcement text.
var EventDescriptions = map[EventCategory]string{
	EventFight:            "A fight has broken out in the yard!",
	EventSearch:           "Guards are conducting a cell search!",
	EventRiot:             "A riot has started in the cafeteria!",
	EventMedicalEmergency: "Medical emergency in the infirmary!",
	EventEscapeAttempt:    "An escape attempt has been detected!",
}

// PlayerRole is the player's clearance level. Higher values include the
// permissions of lower ones.
type PlayerRole int

const (
	RolePrisoner PlayerRole = iota
	RoleGuardian
	RoleManager
)

func (r PlayerRole) String() string {
	switch r {
	case RoleGuardian:
		return "guardian"
	case RoleManager:
		return "manager"
	default:
		return "prisoner"
	}
}

// ParseRole converts a role name to a PlayerRole.
func ParseRole(s string) (PlayerRole, error) {
	switch strings.ToLower(s) {
	case "prisoner":
		return RolePrisoner, nil
	case "guardian":
		return RoleGuardian, nil
	case "manager":
		return RoleManager, nil
	}
	return RolePrisoner, fmt.Errorf("unknown role %q: %w", s, ErrInvalidArgument)
}

// Item is a thing that can sit in a room or in the player's inventory.
type Item struct {
	Name     string       `yaml:"name" json:"name"`
	Category ItemCategory `yaml:"category" json:"category"`
	Value    int          `yaml:"value" json:"value"`
	Hidden   bool         `yaml:"hidden" json:"hidden"` // excluded from room listings
}

// Room is a location in the prison. Identity is the index in the room
// table; rooms are never created or destroyed after world initialization.
type Room struct {
	Type        RoomType `yaml:"type" json:"type"`
	Description string   `yaml:"description" json:"description"`
	Items       []Item   `yaml:"items" json:"items"`
	Locked      bool     `yaml:"locked" json:"locked"`
	Security    int      `yaml:"security" json:"security"` // 0-10
}

// NPC is an autonomous character. Room is a non-owning index into the
// room table, never a pointer.
type NPC struct {
	Name         string  `yaml:"name" json:"name"`
	Role         NPCRole `yaml:"role" json:"role"`
	Health       int     `yaml:"health" json:"health"`
	Reputation   int     `yaml:"reputation" json:"reputation"`
	Relationship int     `yaml:"relationship" json:"relationship"`
	Alive        bool    `yaml:"alive" json:"alive"`
	Busy         bool    `yaml:"-" json:"busy"`
	Room         int     `yaml:"room" json:"room"`
}

// Document is a piece of writing carried by the player.
type Document struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Secret  bool   `json:"secret"`
}

// Player holds the protagonist's state.
type Player struct {
	Name       string
	Health     int // 0-100
	Hunger     int // 0-100
	Reputation int // 0-100
	Money      int
	Sentence   int // days
	Role       PlayerRole
	Room       int
	Inventory  []Item     // capacity MaxInventory
	Documents  []Document // capacity MaxDocuments
}

// GameEvent is the single shared incident slot. At most one event is
// active at a time; a new roll overwrites the previous one. Duration is
// descriptive metadata, not an operational deadline.
type GameEvent struct {
	Category    EventCategory `json:"category"`
	Description string        `json:"description"`
	Severity    int           `json:"severity"` // 1-10
	Duration    int           `json:"duration"` // seconds
	Active      bool          `json:"active"`
}

// Clock is the simulated world time.
type Clock struct {
	Day    int // 1-365
	Hour   int // 0-23
	Minute int // 0-59
}

// Outcome is how a finished game ended.
type Outcome string

const (
	OutcomeNone     Outcome = ""
	OutcomeDied     Outcome = "DIED"
	OutcomeReleased Outcome = "RELEASED"
	OutcomeEscaped  Outcome = "ESCAPED"
)

func clampStat(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxStat {
		return MaxStat
	}
	return v
}
