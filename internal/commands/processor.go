// Package commands implements the foreground command loop: it reads one
// line at a time, validates role permissions, executes the action
// against the world model, and prints the outcome.
package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/wardenworks/prisonsim/internal/domain/world"
	"github.com/wardenworks/prisonsim/internal/feed"
	"github.com/wardenworks/prisonsim/internal/platform/logger"
	"github.com/wardenworks/prisonsim/internal/security"
)

// Processor is the single-threaded request/response loop. Input and
// output are injected so tests can drive it with buffers.
type Processor struct {
	world  *world.World
	feed   *feed.Log
	logger *logger.Logger
	in     *bufio.Scanner
	out    io.Writer
}

// NewProcessor wires a command processor to the world model and the
// activity feed.
func NewProcessor(w *world.World, f *feed.Log, log *logger.Logger, in io.Reader, out io.Writer) *Processor {
	return &Processor{
		world:  w,
		feed:   f,
		logger: log,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run loops until the game is over or input is exhausted. After every
// command it clamps hunger and applies the two terminal checks. It is
// the only consumer of user input.
func (p *Processor) Run() world.Outcome {
	for {
		fmt.Fprint(p.out, "\nEnter command (type 'help' for available commands): ")
		if !p.in.Scan() {
			p.world.EndGame(world.OutcomeNone)
			break
		}
		p.Execute(p.in.Text())

		outcome, over := p.world.EvaluateEndings()
		if over {
			p.printEnding(outcome)
			break
		}
	}
	return p.world.Outcome()
}

func (p *Processor) printEnding(outcome world.Outcome) {
	switch outcome {
	case world.OutcomeDied:
		fmt.Fprintln(p.out, "\nGame Over! You died.")
	case world.OutcomeReleased:
		fmt.Fprintln(p.out, "\nCongratulations! You have served your sentence.")
	case world.OutcomeEscaped:
		fmt.Fprintln(p.out, "\nYou have successfully exited the prison.")
	}
}

// Execute parses and runs a single command line. Input is case-folded
// and split on whitespace; the first token selects the action.
func (p *Processor) Execute(line string) {
	tokens := strings.Fields(strings.ToLower(line))
	if len(tokens) == 0 {
		return
	}
	verb, args := tokens[0], tokens[1:]

	switch verb {
	case "help":
		p.printHelp()
	case "lookaround":
		p.printRoomView(p.world.LookAround())
	case "checkdoor":
		p.checkDoor()
	case "searchbed":
		p.searchBed()
	case "inventory":
		p.printInventory()
	case "eat":
		fmt.Fprintln(p.out, p.world.EatMeal())
	case "work":
		fmt.Fprintln(p.out, p.world.Work())
	case "fight":
		fmt.Fprintln(p.out, "You look for someone to fight...")
		fmt.Fprintln(p.out, p.world.Fight())
	case "list_rooms":
		p.listRooms()
	case "goto":
		p.gotoRoom(args)
	case "status":
		p.printStatus()
	case "whereami":
		fmt.Fprintf(p.out, "\nCurrent location: %s\n", p.world.WhereAmI())
	case "talk":
		p.talk(args)
	case "list_documents":
		p.listDocuments()
	case "read":
		p.readDocument(args)
	case "use":
		p.useItem(args)
	case "pickup":
		p.pickUp(args)
	case "drop":
		p.drop(args)
	case "list_prisoners":
		if p.requireRole(world.RoleGuardian, "view prisoner list") {
			p.listPrisoners()
		}
	case "lock_door":
		if p.requireRole(world.RoleGuardian, "lock doors") {
			p.lockDoor(args)
		}
	case "open_door":
		if p.requireRole(world.RoleGuardian, "unlock doors") {
			p.openDoor(args)
		}
	case "view_logs":
		if p.requireRole(world.RoleGuardian, "view logs") {
			p.viewLogs()
		}
	case "set_alarm":
		if p.requireRole(world.RoleGuardian, "control the alarm") {
			p.setAlarm(args)
		}
	case "write":
		if p.requireRole(world.RoleManager, "write documents") {
			p.writeDocument(args)
		}
	case "exit_prison":
		if p.requireRole(world.RoleManager, "exit the prison") {
			p.exitPrison()
		}
	default:
		fmt.Fprintln(p.out, "Unknown command. Type 'help' for available commands.")
	}
}

// requireRole enforces role gating. On failure it reports a permission
// error and the command performs no mutation.
func (p *Processor) requireRole(min world.PlayerRole, action string) bool {
	if p.world.PlayerRole() < min {
		fmt.Fprintf(p.out, "You don't have permission to %s.\n", action)
		return false
	}
	return true
}

func (p *Processor) printHelp() {
	fmt.Fprint(p.out, `
Available commands:
help           - Show this help message
lookaround     - Look around the current room
checkdoor      - Check if the door is locked
searchbed      - Search your bed for items
inventory      - Show your inventory
eat            - Eat some food
work           - Do some work for money
fight          - Fight another inmate
list_rooms     - List all rooms
status         - Show status of player
goto <room>    - Move to a room
whereami       - Show your current location
talk [npc]     - Talk to an NPC (no argument: address the guards)
list_documents - List your documents
read <doc>     - Read a document
use <item>     - Use an item
pickup <item>  - Pick up an item from the room
drop <item>    - Drop an item from your inventory
`)
	role := p.world.PlayerRole()
	if role >= world.RoleGuardian {
		fmt.Fprint(p.out, `
Guardian commands:
list_prisoners     - Show list of prisoners
lock_door <room>   - Lock a specific room
open_door <room>   - Unlock a specific room
view_logs          - Show prison activity logs
set_alarm <on/off> - Activate/deactivate alarm
`)
	}
	if role >= world.RoleManager {
		fmt.Fprint(p.out, `
Manager commands:
write <doc> <text> - Write an official document
exit_prison        - Exit the prison (requires manager clearance)
`)
	}
}

func (p *Processor) printRoomView(view world.RoomView) {
	fmt.Fprintf(p.out, "\n%s\n", view.Description)
	fmt.Fprintln(p.out, "Items in the room:")
	for _, name := range view.Items {
		fmt.Fprintf(p.out, "- %s\n", name)
	}
	fmt.Fprintln(p.out, "People in the room:")
	for _, name := range view.Occupants {
		fmt.Fprintf(p.out, "- %s\n", name)
	}
}

func (p *Processor) checkDoor() {
	locked, security := p.world.CheckDoor()
	if locked {
		fmt.Fprintf(p.out, "The door is locked. Security level: %d\n", security)
	} else {
		fmt.Fprintln(p.out, "The door is unlocked.")
	}
}

func (p *Processor) searchBed() {
	msg, err := p.world.SearchBed()
	if err != nil {
		fmt.Fprintf(p.out, "%s\n", capitalize(err.Error()))
		return
	}
	fmt.Fprintln(p.out, msg)
}

func (p *Processor) printInventory() {
	names := p.world.InventoryNames()
	fmt.Fprintln(p.out, "\nYour inventory:")
	if len(names) == 0 {
		fmt.Fprintln(p.out, "(Empty)")
		return
	}
	for _, name := range names {
		fmt.Fprintf(p.out, "- %s\n", name)
	}
}

func (p *Processor) listRooms() {
	fmt.Fprintln(p.out, "\nAvailable rooms:")
	for _, desc := range p.world.RoomDescriptions() {
		fmt.Fprintf(p.out, "- %s\n", desc)
	}
}

func (p *Processor) gotoRoom(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(p.out, "Usage: goto <room>")
		return
	}
	view, err := p.world.MovePlayer(strings.Join(args, " "))
	if err != nil {
		p.printWorldError(err)
		return
	}
	fmt.Fprintf(p.out, "You move to %s\n", view.Description)
	p.printRoomView(view)
}

func (p *Processor) printStatus() {
	st := p.world.PlayerStatus()
	fmt.Fprintln(p.out, "\n=== Prison Status ===")
	fmt.Fprintf(p.out, "Day: %d\n", st.Day)
	fmt.Fprintf(p.out, "Health: %d/100\n", st.Health)
	fmt.Fprintf(p.out, "Hunger: %d/100\n", st.Hunger)
	fmt.Fprintf(p.out, "Reputation: %d/100\n", st.Reputation)
	fmt.Fprintf(p.out, "Money: $%d\n", st.Money)
	fmt.Fprintf(p.out, "Time: %s\n", st.Time)
	fmt.Fprintln(p.out, "\nInventory:")
	if len(st.Inventory) == 0 {
		fmt.Fprintln(p.out, "(Empty)")
	} else {
		for _, name := range st.Inventory {
			fmt.Fprintf(p.out, "- %s\n", name)
		}
	}
	fmt.Fprintln(p.out, "===================")
}

func (p *Processor) talk(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(p.out, world.GuardBrushOff)
		return
	}
	msg, err := p.world.TalkTo(strings.Join(args, " "))
	if err != nil {
		fmt.Fprintln(p.out, "NPC not found.")
		return
	}
	fmt.Fprintln(p.out, msg)
}

func (p *Processor) listDocuments() {
	fmt.Fprintln(p.out, "\nAvailable documents:")
	for _, name := range p.world.DocumentNames() {
		fmt.Fprintf(p.out, "- %s\n", name)
	}
}

func (p *Processor) readDocument(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(p.out, "Usage: read <document>")
		return
	}
	name := strings.Join(args, " ")
	content, err := p.world.ReadDocument(name)
	if err != nil {
		p.printWorldError(err)
		return
	}
	fmt.Fprintf(p.out, "\nReading %s...\n", name)
	fmt.Fprintf(p.out, "The document contains: %s\n", content)
}

func (p *Processor) useItem(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(p.out, "Usage: use <item>")
		return
	}
	msg, err := p.world.UseItem(strings.Join(args, " "))
	if err != nil {
		fmt.Fprintln(p.out, "You don't have that item.")
		return
	}
	fmt.Fprintln(p.out, msg)
}

func (p *Processor) pickUp(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(p.out, "Usage: pickup <item>")
		return
	}
	msg, err := p.world.PickUpItem(strings.Join(args, " "))
	if err != nil {
		p.printWorldError(err)
		return
	}
	fmt.Fprintln(p.out, msg)
}

func (p *Processor) drop(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(p.out, "Usage: drop <item>")
		return
	}
	msg, err := p.world.DropItem(strings.Join(args, " "))
	if err != nil {
		p.printWorldError(err)
		return
	}
	fmt.Fprintln(p.out, msg)
}

func (p *Processor) listPrisoners() {
	fmt.Fprintln(p.out, "\nList of prisoners:")
	for _, info := range p.world.ListPrisoners() {
		fmt.Fprintf(p.out, "- %s (Health: %d, Reputation: %d)\n", info.Name, info.Health, info.Reputation)
	}
}

func (p *Processor) lockDoor(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(p.out, "Usage: lock_door <room>")
		return
	}
	desc, err := p.world.LockRoom(strings.Join(args, " "))
	if err != nil {
		p.printWorldError(err)
		return
	}
	p.recordSecurity(fmt.Sprintf("Door locked: %s", desc))
	fmt.Fprintf(p.out, "Door to %s is now locked.\n", desc)
}

func (p *Processor) openDoor(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(p.out, "Usage: open_door <room>")
		return
	}
	desc, err := p.world.UnlockRoom(strings.Join(args, " "))
	if err != nil {
		p.printWorldError(err)
		return
	}
	p.recordSecurity(fmt.Sprintf("Door unlocked: %s", desc))
	fmt.Fprintf(p.out, "Door to %s is now unlocked.\n", desc)
}

func (p *Processor) viewLogs() {
	fmt.Fprintln(p.out, "\n=== Prison Activity Log ===")
	fmt.Fprintln(p.out, "Recent events:")
	if ev, active := p.world.CurrentEvent(); active {
		fmt.Fprintf(p.out, "- %s (Severity: %d/10)\n", ev.Description, ev.Severity)
	}
	for _, entry := range p.feed.Recent(10) {
		fmt.Fprintf(p.out, "- [Day %d] %s\n", entry.GameDay, entry.Message)
	}
	fmt.Fprintln(p.out, "\nCurrent status:")
	for _, info := range p.world.ListPrisoners() {
		status := "In cell"
		if info.Busy {
			status = "Active"
		}
		fmt.Fprintf(p.out, "- %s: %s\n", info.Name, status)
	}
	fmt.Fprintln(p.out, "==========================")
}

func (p *Processor) setAlarm(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(p.out, "Usage: set_alarm <on/off>")
		return
	}
	switch args[0] {
	case "on":
		p.world.SoundAlarm()
		p.recordSecurity("Alarm activated")
		fmt.Fprintln(p.out, "Alarm activated! All prisoners must return to their cells!")
	case "off":
		p.recordSecurity("Alarm deactivated")
		fmt.Fprintln(p.out, "Alarm deactivated. Normal operations resumed.")
	default:
		fmt.Fprintln(p.out, "Invalid alarm status. Use 'on' or 'off'.")
	}
}

func (p *Processor) writeDocument(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(p.out, "Invalid format. Use: write <document_name> <text>")
		return
	}
	name := args[0]
	content := strings.Join(args[1:], " ")
	if err := p.world.WriteDocument(name, content); err != nil {
		fmt.Fprintln(p.out, "You've reached the maximum number of documents.")
		return
	}
	fmt.Fprintf(p.out, "Document '%s' written successfully.\n", name)
}

// exitPrison runs the password-gated escape. An invalid password is an
// authentication failure: it is reported and the game continues.
func (p *Processor) exitPrison() {
	fmt.Fprintln(p.out, "\n=== Prison Exit Protocol ===")
	fmt.Fprint(p.out, "Enter password: ")
	if !p.in.Scan() {
		fmt.Fprintln(p.out, "Wrong password.")
		return
	}
	password := strings.TrimSpace(p.in.Text())
	if !security.ValidKey(password) {
		p.logger.Warn("Exit protocol rejected an invalid clearance key.")
		fmt.Fprintln(p.out, "Wrong password.")
		return
	}
	p.feed.Record(feed.CategoryPlayer, "Exit protocol completed with valid clearance.", 0, p.world.ClockNow().Day)
	p.world.EndGame(world.OutcomeEscaped)
}

func (p *Processor) recordSecurity(message string) {
	p.feed.Record(feed.CategorySecurity, message, 0, p.world.ClockNow().Day)
}

func (p *Processor) printWorldError(err error) {
	fmt.Fprintf(p.out, "%s\n", capitalize(err.Error()))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
