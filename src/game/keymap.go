package game

import (
	"fmt"
	"strings"
	"unicode"
)

//Key is the key code: printable keys are runes, special keys are negative
type Key rune

const (
	KeyUp Key = -(iota + 1)
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyCtrlC
)

//Action is what the key does in the interactive mode
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionNext
	ActionBack
	ActionReset
	ActionCommand
	ActionStop
)

var actionDescr = map[Action]string{
	ActionQuit:    "Exit",
	ActionNext:    "Next turn",
	ActionBack:    "Step Back",
	ActionReset:   "Reset",
	ActionCommand: "Command mode",
	ActionStop:    "Stop",
}

//Keymap binds the hotkeys to the actions
//letters are bound case insensitive
type Keymap struct {
	Quit    Key
	Next    Key
	Back    Key
	Reset   Key
	Command Key
	Stop    Key //interrupts the infinite stepping
}

var DefaultKeymap = Keymap{
	Quit:    'q',
	Next:    'n',
	Back:    'b',
	Reset:   'r',
	Command: 'c',
	Stop:    's',
}

func (k Keymap) bindings() []struct {
	key    Key
	action Action
} {
	return []struct {
		key    Key
		action Action
	}{
		{k.Quit, ActionQuit},
		{k.Next, ActionNext},
		{k.Back, ActionBack},
		{k.Reset, ActionReset},
		{k.Command, ActionCommand},
		{k.Stop, ActionStop},
	}
}

//Action returns the action bound to the key
//Ctrl+C always quits
func (k Keymap) Action(key Key) Action {
	if key == KeyCtrlC {
		return ActionQuit
	}
	for _, b := range k.bindings() {
		if b.key != 0 && fold(b.key) == fold(key) {
			return b.action
		}
	}
	return ActionNone
}

//Keys returns the bound keys in the prompt order
func (k Keymap) Keys() []Key {
	b := k.bindings()
	keys := make([]Key, 0, len(b))
	for _, kb := range b {
		keys = append(keys, kb.key)
	}
	return keys
}

//Prompts returns the hotkey hints, the first symbol is the key: "Q Exit"
func (k Keymap) Prompts() []string {
	b := k.bindings()
	prompts := make([]string, 0, len(b))
	for _, kb := range b {
		prompts = append(prompts, fmt.Sprintf("%c %s", unicode.ToUpper(rune(kb.key)), actionDescr[kb.action]))
	}
	return prompts
}

//Validate checks that all keys are printable and unique
func (k Keymap) Validate() error {
	seen := map[Key]Action{}
	for _, b := range k.bindings() {
		if b.key <= 0 || !unicode.IsPrint(rune(b.key)) || unicode.IsSpace(rune(b.key)) {
			return fmt.Errorf("key for %q must be a printable symbol", strings.ToLower(actionDescr[b.action]))
		}
		if a, ok := seen[fold(b.key)]; ok {
			return fmt.Errorf("key %q is bound to both %q and %q", rune(b.key), actionDescr[a], actionDescr[b.action])
		}
		seen[fold(b.key)] = b.action
	}
	return nil
}

func fold(k Key) Key {
	if k > 0 {
		return Key(unicode.ToLower(rune(k)))
	}
	return k
}
