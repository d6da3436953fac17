// Package content defines the static world tables the simulation starts
// from. The compiled-in defaults reproduce the standard prison layout;
// an alternative world can be loaded from a YAML file.
package content

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"gopkg.in/yaml.v3"

	"github.com/wardenworks/prisonsim/internal/domain/world"
)

// Definition is the loadable world content: the room table and the NPC
// roster. Room identity is positional, so order matters.
type Definition struct {
	Rooms []world.Room `yaml:"rooms"`
	NPCs  []world.NPC  `yaml:"npcs"`
}

// Load reads a world definition from a YAML file and validates it.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading world file: %w", err)
	}
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing world file: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid world file %s: %w", path, err)
	}
	return &def, nil
}

// Validate checks the structural rules a world definition must satisfy
// before the simulation will accept it.
func (d *Definition) Validate() error {
	el := errors.NewErrorList()

	if len(d.Rooms) == 0 {
		el.Add(fmt.Errorf("at least one room is required"))
	}
	hasCell := false
	for i, r := range d.Rooms {
		if r.Description == "" {
			el.Add(fmt.Errorf("room %d: description is required", i))
		}
		if !validRoomType(r.Type) {
			el.Add(fmt.Errorf("room %d: unknown type %q", i, r.Type))
		}
		if r.Security < 0 || r.Security > 10 {
			el.Add(fmt.Errorf("room %d: security level %d out of range 0-10", i, r.Security))
		}
		if len(r.Items) > world.MaxRoomItems {
			el.Add(fmt.Errorf("room %d: %d items exceeds capacity %d", i, len(r.Items), world.MaxRoomItems))
		}
		if r.Type == world.RoomCell {
			hasCell = true
		}
	}
	if len(d.Rooms) > 0 && d.Rooms[0].Type != world.RoomCell {
		el.Add(fmt.Errorf("room 0 must be the player's cell"))
	}
	if !hasCell {
		el.Add(fmt.Errorf("a cell room is required"))
	}

	for i, n := range d.NPCs {
		if n.Name == "" {
			el.Add(fmt.Errorf("npc %d: name is required", i))
		}
		if !validNPCRole(n.Role) {
			el.Add(fmt.Errorf("npc %q: unknown role %q", n.Name, n.Role))
		}
		if n.Room < 0 || n.Room >= len(d.Rooms) {
			el.Add(fmt.Errorf("npc %q: room index %d out of range", n.Name, n.Room))
		}
	}

	return el.Err()
}

func validRoomType(t world.RoomType) bool {
	switch t {
	case world.RoomCell, world.RoomCorridor, world.RoomCafeteria, world.RoomYard,
		world.RoomInfirmary, world.RoomShower, world.RoomLibrary, world.RoomWorkshop,
		world.RoomOffice:
		return true
	}
	return false
}

func validNPCRole(r world.NPCRole) bool {
	switch r {
	case world.NPCInmate, world.NPCGuard, world.NPCDoctor, world.NPCWorker:
		return true
	}
	return false
}

// Default returns the standard prison: nine rooms, a handful of stashed
// items, and six residents.
func Default() *Definition {
	return &Definition{
		Rooms: []world.Room{
			{
				Type:        world.RoomCell,
				Description: "Your cell. A small, cramped space with a bed and a desk.",
				Locked:      true,
				Security:    3,
				Items: []world.Item{
					{Name: "Cell Key", Category: world.ItemKey, Value: 1, Hidden: true},
				},
			},
			{
				Type:        world.RoomCorridor,
				Description: "A long corridor with security cameras and guards patrolling.",
				Security:    5,
			},
			{
				Type:        world.RoomCafeteria,
				Description: "The prison cafeteria. Other inmates are eating and talking.",
				Security:    4,
				Items: []world.Item{
					{Name: "Bread", Category: world.ItemFood, Value: 1},
				},
			},
			{
				Type:        world.RoomYard,
				Description: "The prison yard. A place to socialize and exercise.",
				Security:    4,
			},
			{
				Type:        world.RoomInfirmary,
				Description: "The prison infirmary. Medical staff and equipment.",
				Security:    6,
				Items: []world.Item{
					{Name: "Painkillers", Category: world.ItemMedicine, Value: 1},
				},
			},
			{
				Type:        world.RoomShower,
				Description: "The prison showers. A place to clean up.",
				Security:    3,
			},
			{
				Type:        world.RoomLibrary,
				Description: "The prison library. Books and educational materials.",
				Security:    4,
			},
			{
				Type:        world.RoomWorkshop,
				Description: "The prison workshop. Tools and materials for work.",
				Security:    5,
				Items: []world.Item{
					{Name: "Metal File", Category: world.ItemTool, Value: 1, Hidden: true},
				},
			},
			{
				Type:        world.RoomOffice,
				Description: "The manager office. A place assigned to the manager.",
				Security:    5,
			},
		},
		NPCs: []world.NPC{
			{Name: "Mike", Role: world.NPCInmate, Health: 100, Reputation: 80, Relationship: 0, Alive: true, Room: 0},
			{Name: "Carlos", Role: world.NPCInmate, Health: 100, Reputation: 60, Relationship: -10, Alive: true, Room: 0},
			{Name: "Officer Johnson", Role: world.NPCGuard, Health: 100, Reputation: 70, Relationship: -20, Alive: true, Room: 1},
			{Name: "Sergeant Williams", Role: world.NPCGuard, Health: 100, Reputation: 90, Relationship: -30, Alive: true, Room: 1},
			{Name: "Dr. Smith", Role: world.NPCDoctor, Health: 100, Reputation: 80, Relationship: 10, Alive: true, Room: 4},
			{Name: "Mr. Brown", Role: world.NPCWorker, Health: 100, Reputation: 60, Relationship: 0, Alive: true, Room: 0},
		},
	}
}
