package game

import (
	"errors"
	"os"

	"lifeterm/src/field"
)

//mockView records the updates and replays the prepared input
type mockView struct {
	field      *field.Field
	steps      int
	updates    int
	cursorX    int
	cursorY    int
	cmdOutput  string
	cmdLines   []string
	inputs     []Input
	timeouts   []uint8
	maxW, maxH int
}

func newMockView() *mockView {
	return &mockView{maxW: 100, maxH: 100}
}

func (v *mockView) UpdateField(f *field.Field, steps int) {
	v.field = f
	v.steps = steps
	v.updates++
}

func (v *mockView) UpdateCursor(x int, y int) {
	v.cursorX, v.cursorY = x, y
}

func (v *mockView) UpdateCommandLine(text string) {
	v.cmdOutput = text
}

func (v *mockView) ReadCommandLine() string {
	if len(v.cmdLines) == 0 {
		return ""
	}
	l := v.cmdLines[0]
	v.cmdLines = v.cmdLines[1:]
	return l
}

//WaitForInput returns the prepared input, the quit key when nothing is left
func (v *mockView) WaitForInput(timeout uint8) Input {
	v.timeouts = append(v.timeouts, timeout)
	if len(v.inputs) == 0 {
		return KeyInput(DefaultKeymap.Quit)
	}
	in := v.inputs[0]
	v.inputs = v.inputs[1:]
	return in
}

func (v *mockView) CanAccommodate(width int, height int) bool {
	return width > 0 && height > 0 && width <= v.maxW && height <= v.maxH
}

//memStorage keeps the files in memory
type memStorage map[string][]byte

func (s memStorage) ReadFile(name string) ([]byte, error) {
	data, ok := s[name]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
	}
	return data, nil
}

func (s memStorage) WriteFile(name string, data []byte) error {
	if name == "readonly.fld" {
		return errors.New("permission denied")
	}
	s[name] = append([]byte(nil), data...)
	return nil
}

func mustParse(text string) *field.Field {
	f, err := field.Parse(text)
	if err != nil {
		panic(err)
	}
	return f
}

//placeOnField places the smaller field to the top left corner of the bigger one
func placeOnField(to *field.Field, from *field.Field) {
	d := to.BeginEdit()
	from.Each(func(x int, y int, live bool) {
		d.Set(x, y, live)
	})
	d.Commit()
}

func liveSet(f *field.Field) map[[2]int]bool {
	s := map[[2]int]bool{}
	f.Each(func(x int, y int, live bool) {
		if live {
			s[[2]int{x, y}] = true
		}
	})
	return s
}
