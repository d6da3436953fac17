package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/wardenworks/prisonsim/internal/domain/world"
)

func TestDefaultValidates(t *testing.T) {
	def := Default()
	if err := def.Validate(); err != nil {
		t.Fatalf("Default world failed validation: %v", err)
	}

	testutil.AssertEqual(t, "room count", len(def.Rooms), 9)
	testutil.AssertEqual(t, "npc count", len(def.NPCs), 6)
	testutil.AssertEqual(t, "room 0 type", def.Rooms[0].Type, world.RoomCell)
	testutil.AssertEqual(t, "cell locked", def.Rooms[0].Locked, true)
}

func TestDefaultHidesTheCellKey(t *testing.T) {
	def := Default()

	var found bool
	for _, it := range def.Rooms[0].Items {
		if it.Name == "Cell Key" {
			found = true
			testutil.AssertEqual(t, "cell key category", it.Category, world.ItemKey)
			testutil.AssertEqual(t, "cell key hidden", it.Hidden, true)
		}
	}
	if !found {
		t.Errorf("Expected the cell key stashed in the cell")
	}
}

func TestValidateRejectsMissingCell(t *testing.T) {
	def := &Definition{
		Rooms: []world.Room{
			{Type: world.RoomYard, Description: "The yard.", Security: 4},
		},
	}
	err := def.Validate()
	testutil.AssertErrorContains(t, err, "room 0 must be the player's cell")
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	def := &Definition{
		Rooms: []world.Room{
			{Type: "DUNGEON", Description: "", Security: 42},
		},
		NPCs: []world.NPC{
			{Name: "", Role: "JESTER", Room: 7},
		},
	}
	err := def.Validate()
	if err == nil {
		t.Fatalf("Expected validation to fail")
	}
	testutil.AssertErrorContains(t, err, "description is required")
	testutil.AssertErrorContains(t, err, `unknown type "DUNGEON"`)
	testutil.AssertErrorContains(t, err, "security level 42 out of range")
	testutil.AssertErrorContains(t, err, "name is required")
	testutil.AssertErrorContains(t, err, `unknown role "JESTER"`)
	testutil.AssertErrorContains(t, err, "room index 7 out of range")
}

func TestValidateRejectsOverfilledRoom(t *testing.T) {
	room := world.Room{Type: world.RoomCell, Description: "A cell.", Security: 3}
	for i := 0; i <= world.MaxRoomItems; i++ {
		room.Items = append(room.Items, world.Item{Name: "Junk", Category: world.ItemTool})
	}
	def := &Definition{Rooms: []world.Room{room}}

	err := def.Validate()
	testutil.AssertErrorContains(t, err, "exceeds capacity")
}

func TestLoadFromYAML(t *testing.T) {
	src := `rooms:
  - type: CELL
    description: "A test cell."
    locked: true
    security: 3
    items:
      - name: "Shiv"
        category: WEAPON
        value: 2
        hidden: true
  - type: YARD
    description: "A test yard."
    security: 4
npcs:
  - name: "Lefty"
    role: INMATE
    health: 100
    reputation: 40
    relationship: 0
    alive: true
    room: 0
`
	path := filepath.Join(t.TempDir(), "world.yaml")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	def, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	testutil.AssertEqual(t, "room count", len(def.Rooms), 2)
	testutil.AssertEqual(t, "cell item", def.Rooms[0].Items[0].Name, "Shiv")
	testutil.AssertEqual(t, "npc name", def.NPCs[0].Name, "Lefty")
	testutil.AssertEqual(t, "npc room", def.NPCs[0].Room, 0)
}

func TestLoadRejectsInvalidWorld(t *testing.T) {
	src := `rooms:
  - type: YARD
    description: "No cell anywhere."
    security: 4
`
	path := filepath.Join(t.TempDir(), "world.yaml")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := Load(path)
	testutil.AssertErrorContains(t, err, "cell")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	testutil.AssertErrorContains(t, err, "reading world file")
}
