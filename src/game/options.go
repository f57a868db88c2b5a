package game

import "lifeterm/src/field"

//default options
const (
	DefWidth     = 10
	DefHeight    = 10
	DefFileName  = "game_of_life.fld"
	DefStepDelay = 1 //tenths of a second between the steps of the infinite stepping
)

//Options represents the game's configurable options
type Options struct {
	Keys        Keymap
	DefaultFile string
	StepDelay   uint8
	Templates   []Template
	Storage     Storage //used by the save and load commands
}

//Template represents the pattern which can be placed to the field with the "pattern" command
type Template struct {
	Name        string  //template name
	Descr       string  //template descr
	Coordinates [][]int //array of [x,y] coordinates relative to the placing point
}

//TemplateFromField creates the template from the live cells of the field
func TemplateFromField(name string, descr string, f *field.Field) Template {
	t := Template{Name: name, Descr: descr}
	f.Each(func(x int, y int, live bool) {
		if live {
			t.Coordinates = append(t.Coordinates, []int{x, y})
		}
	})
	return t
}

var BuiltinTemplates = []Template{
	{"blinker", "period 2 oscillator", [][]int{{0, 0}, {0, 1}, {0, 2}}},
	{"block", "still life", [][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}},
	{"glider", "moves one cell by diagonal every 4 steps", [][]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}},
	{"beacon", "period 2 oscillator", [][]int{{0, 0}, {0, 1}, {1, 0}, {2, 3}, {3, 2}, {3, 3}}},
	{"toad", "period 2 oscillator", [][]int{{1, 0}, {2, 0}, {3, 0}, {0, 1}, {1, 1}, {2, 1}}},
}

//DefaultOptions returns the options with the default keymap and the builtin templates
func DefaultOptions() Options {
	return Options{
		Keys:        DefaultKeymap,
		DefaultFile: DefFileName,
		StepDelay:   DefStepDelay,
		Templates:   append([]Template(nil), BuiltinTemplates...),
	}
}
