package game

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"lifeterm/src/field"
)

const infiniteSteps = "-"

var errNoStorage = errors.New("no storage configured")

func registerDefaultCommands(m *Manager) {
	m.RegisterCommand("reset", commandReset)
	m.RegisterCommand("set", commandSet)
	m.RegisterCommand("step", commandStep)
	m.RegisterCommand("back", commandBack)
	m.RegisterCommand("save", commandSave)
	m.RegisterCommand("load", commandLoad)
	m.RegisterCommand("pattern", commandPattern)
	m.RegisterCommand("help", commandHelp)
}

//commandReset: reset [<width> <height>]
func commandReset(args []string, m *Manager, out io.Writer) {
	if len(args) != 2 {
		m.Reset(m.Width(), m.Height())
		fmt.Fprintf(out, "Field reset to %dx%d.\n", m.Width(), m.Height())
		return
	}
	w, errW := parseSize(args[0])
	h, errH := parseSize(args[1])
	if errW != nil || errH != nil {
		fmt.Fprintln(out, "Need args: [<width> <height>]")
		return
	}
	if !m.CanAccommodate(w, h) {
		fmt.Fprintf(out, "Cannot place field %dx%d on this terminal.\n", w, h)
		return
	}
	m.Reset(w, h)
	fmt.Fprintf(out, "Field reset to %dx%d.\n", w, h)
}

//commandSet: set <pos X> <pos Y>
func commandSet(args []string, m *Manager, out io.Writer) {
	if len(args) != 2 {
		fmt.Fprintln(out, "Need args: <pos X> <pos Y>")
		return
	}
	x, errX := strconv.Atoi(args[0])
	y, errY := strconv.Atoi(args[1])
	if errX != nil || errY != nil {
		fmt.Fprintln(out, "Need args: <pos X> <pos Y>")
		return
	}
	if m.ToggleCellAt(x, y) {
		fmt.Fprintln(out, "Cell spawned.")
	} else {
		fmt.Fprintln(out, "Cell killed.")
	}
}

//commandStep: step [<count> | -]
func commandStep(args []string, m *Manager, out io.Writer) {
	count := 1
	switch {
	case len(args) == 0:
	case len(args) == 1 && args[0] == infiniteSteps:
		done := m.StepUntilStopped()
		fmt.Fprintf(out, "Steps done: %d.\n", done)
		return
	case len(args) == 1:
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fmt.Fprintln(out, "Need args: [<count> | -]")
			return
		}
		count = n
	default:
		fmt.Fprintln(out, "Need args: [<count> | -]")
		return
	}
	for i := 0; i < count; i++ {
		m.Step()
	}
	fmt.Fprintf(out, "Steps done: %d.\n", count)
}

//commandBack: back
func commandBack(_ []string, m *Manager, out io.Writer) {
	if m.StepBack() {
		fmt.Fprintln(out, "Step cancelled.")
	} else {
		fmt.Fprintln(out, "Impossible to cancel the step.")
	}
}

//commandSave: save [<file name>]
func commandSave(args []string, m *Manager, out io.Writer) {
	name := fileName(args, m)
	err := errNoStorage
	if s := m.Options().Storage; s != nil {
		err = s.WriteFile(name, []byte(m.Field().String()))
	}
	if err != nil {
		fmt.Fprintf(out, "Cannot save file %q.\n", name)
		return
	}
	fmt.Fprintf(out, "Game field saved to %q.\n", name)
}

//commandLoad: load [<file name>]
func commandLoad(args []string, m *Manager, out io.Writer) {
	name := fileName(args, m)
	var data []byte
	err := errNoStorage
	if s := m.Options().Storage; s != nil {
		data, err = s.ReadFile(name)
	}
	if err != nil {
		fmt.Fprintf(out, "Cannot load file %q.\n", name)
		return
	}
	f, err := field.Parse(string(data))
	if err != nil {
		fmt.Fprintf(out, "Bad field in %q: %v.\n", name, err)
		return
	}
	if !m.CanAccommodate(f.Width(), f.Height()) {
		fmt.Fprintf(out, "Cannot place field %dx%d on this terminal.\n", f.Width(), f.Height())
		return
	}
	m.ResetTo(f)
	fmt.Fprintf(out, "Game %q loaded successfully.\n", name)
}

//commandPattern: pattern <name> [<pos X> <pos Y>]
func commandPattern(args []string, m *Manager, out io.Writer) {
	if len(args) != 1 && len(args) != 3 {
		fmt.Fprintln(out, "Need args: <name> [<pos X> <pos Y>]")
		return
	}
	x, y := m.Cursor()
	if len(args) == 3 {
		var errX, errY error
		x, errX = strconv.Atoi(args[1])
		y, errY = strconv.Atoi(args[2])
		if errX != nil || errY != nil {
			fmt.Fprintln(out, "Need args: <name> [<pos X> <pos Y>]")
			return
		}
	}
	if err := m.PlaceTemplate(args[0], x, y); err != nil {
		names := make([]string, 0, len(m.Options().Templates))
		for _, t := range m.Options().Templates {
			names = append(names, t.Name)
		}
		fmt.Fprintf(out, "Unknown pattern %q, available: %s.\n", args[0], strings.Join(names, ", "))
		return
	}
	fmt.Fprintf(out, "Pattern %q placed at (%d, %d).\n", args[0], x, y)
}

//commandHelp: help
func commandHelp(_ []string, m *Manager, out io.Writer) {
	fmt.Fprintf(out, "Commands: %s.\n", strings.Join(m.Commands(), ", "))
}

func fileName(args []string, m *Manager) string {
	if len(args) > 0 {
		return args[0]
	}
	if m.Options().DefaultFile != "" {
		return m.Options().DefaultFile
	}
	return DefFileName
}

func parseSize(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative size %d", n)
	}
	return n, nil
}
