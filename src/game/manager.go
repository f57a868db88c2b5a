package game

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"lifeterm/src/field"
)

//the rules of the life
const (
	BornLife            = 3 //live cells around the dead one to born the life
	DeathLoneliness     = 2 //minimum live cells around the live one to continue the life
	DeathOverpopulation = 3 //maximum live cells around the live one to continue the life
)

//Command is the handler of the command entered in the command mode
//it writes the human readable status to out and changes the game via the public methods only
type Command func(args []string, m *Manager, out io.Writer)

//Manager is the game state machine: the current field, one step of undo, the steps counter and the cursor
//the manager is not safe for concurrent use, all calls must come from the one goroutine
type Manager struct {
	width    int
	height   int
	current  *field.Field
	previous *field.Field
	hasUndo  bool
	steps    int
	cursorX  int
	cursorY  int
	commands map[string]Command
	options  Options
	view     View
}

//NewManager creates the manager with the empty field
func NewManager(width int, height int, v View, o Options) *Manager {
	return NewManagerFromField(field.New(width, height), v, o)
}

//NewManagerFromField creates the manager with the copy of the prepared field
func NewManagerFromField(f *field.Field, v View, o Options) *Manager {
	m := Manager{
		width:    f.Width(),
		height:   f.Height(),
		current:  f.Clone(),
		previous: field.New(0, 0),
		commands: map[string]Command{},
		options:  o,
		view:     v,
	}
	registerDefaultCommands(&m)
	return &m
}

//Step does the new one state calculation for the entire field
func (m *Manager) Step() {
	m.snapshot()
	d := m.current.BeginEdit()
	m.previous.Each(func(x int, y int, live bool) {
		n := m.previous.CountNeighbours(x, y)
		if live && (n < DeathLoneliness || n > DeathOverpopulation) {
			d.Set(x, y, false)
		} else if !live && n == BornLife {
			d.Set(x, y, true)
		}
	})
	d.Commit()
	m.steps++
	m.update()
}

//ToggleCellAt inverses the cell state at x, y considering the loop
//returns true if the life was born
func (m *Manager) ToggleCellAt(x int, y int) bool {
	m.snapshot()
	d := m.current.BeginEdit()
	live := d.Toggle(x, y)
	d.Commit()
	m.update()
	return live
}

//PlaceTemplate settles the template's cells relative to x, y
func (m *Manager) PlaceTemplate(name string, x int, y int) error {
	tmpl, ok := m.Template(name)
	if !ok {
		return fmt.Errorf("unknown pattern %q", name)
	}
	m.snapshot()
	d := m.current.BeginEdit()
	for _, c := range tmpl.Coordinates {
		if len(c) < 2 {
			continue
		}
		d.Set(x+c[0], y+c[1], true)
	}
	d.Commit()
	m.update()
	return nil
}

//Template returns the template by its name
func (m *Manager) Template(name string) (Template, bool) {
	for _, t := range m.options.Templates {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

//Reset clears the field, resets the steps counter and creates the field with the new dimension
func (m *Manager) Reset(width int, height int) {
	m.ResetTo(field.New(width, height))
}

//ResetTo sets the copy of the field and resets the steps counter
func (m *Manager) ResetTo(f *field.Field) {
	m.current = f.Clone()
	m.width = f.Width()
	m.height = f.Height()
	m.previous = field.New(0, 0)
	m.hasUndo = false
	m.steps = 0
	m.cursorX, m.cursorY = 0, 0
	m.update()
	m.view.UpdateCursor(m.cursorX, m.cursorY)
}

//StepBack cancels the last change, only one change can be cancelled
//returns true if the change was cancelled
func (m *Manager) StepBack() bool {
	if !m.hasUndo {
		return false
	}
	m.current = m.previous
	m.previous = field.New(0, 0)
	m.hasUndo = false
	if m.steps > 0 {
		m.steps--
	}
	m.update()
	return true
}

//CanAccommodate checks whether the view can display the field with the given dimension
func (m *Manager) CanAccommodate(width int, height int) bool {
	return m.view.CanAccommodate(width, height)
}

//RegisterCommand registers the command handler, the old handler with the same name is replaced
func (m *Manager) RegisterCommand(name string, cmd Command) {
	m.commands[name] = cmd
}

//Commands returns the sorted names of the registered commands
func (m *Manager) Commands() []string {
	names := make([]string, 0, len(m.commands))
	for k := range m.commands {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//Dispatch executes the command by its name
//returns false if there is no such command
func (m *Manager) Dispatch(name string, args []string, out io.Writer) bool {
	cmd, ok := m.commands[name]
	if !ok {
		return false
	}
	cmd(args, m, out)
	return true
}

//Execute splits the command line and dispatches it
//returns the output of the command
func (m *Manager) Execute(line string) string {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return ""
	}
	var out strings.Builder
	if !m.Dispatch(parts[0], parts[1:], &out) {
		fmt.Fprintf(&out, "Command not found: %s\n", parts[0])
	}
	return out.String()
}

//Field returns the copy of the current field
func (m *Manager) Field() *field.Field {
	return m.current.Clone()
}

func (m *Manager) Width() int {
	return m.width
}

func (m *Manager) Height() int {
	return m.height
}

func (m *Manager) Steps() int {
	return m.steps
}

//CanUndo reports whether StepBack will succeed
func (m *Manager) CanUndo() bool {
	return m.hasUndo
}

func (m *Manager) Cursor() (x int, y int) {
	return m.cursorX, m.cursorY
}

func (m *Manager) Options() Options {
	return m.options
}

//snapshot stores the current field for the undo
func (m *Manager) snapshot() {
	m.previous = m.current.Clone()
	m.hasUndo = true
}

//update calls the view with the current state
func (m *Manager) update() {
	m.view.UpdateField(m.current.Clone(), m.steps)
}
