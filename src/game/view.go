package game

import "lifeterm/src/field"

//InputKind is the kind of the event returned by View.WaitForInput
type InputKind int

const (
	InputTimeout InputKind = iota
	InputKey
	InputMouse
)

//Input is the key press, the mouse click or the timeout expiration
type Input struct {
	Kind InputKind
	Key  Key //for InputKey
	X, Y int //field position for InputMouse
}

func TimeoutInput() Input {
	return Input{Kind: InputTimeout}
}

func KeyInput(k Key) Input {
	return Input{Kind: InputKey, Key: k}
}

func MouseInput(x int, y int) Input {
	return Input{Kind: InputMouse, X: x, Y: y}
}

//View is the interface to any view - the object who displays the game and reads the user input
type View interface {
	//UpdateField draws the field and the steps counter
	UpdateField(f *field.Field, steps int)
	//UpdateCursor draws the keyboard cursor on the field
	UpdateCursor(x int, y int)
	//UpdateCommandLine draws the output of the commands
	UpdateCommandLine(text string)
	//ReadCommandLine blocks until the user enters one command line
	ReadCommandLine() string
	//WaitForInput waits for the key press, the mouse click or the timeout expiration
	//timeout is in tenths of a second, 0 waits forever
	WaitForInput(timeout uint8) Input
	//CanAccommodate checks whether the field with the given dimension can be displayed
	CanAccommodate(width int, height int) bool
}

//Storage reads and writes the saved fields
type Storage interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
}
