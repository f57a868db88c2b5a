package game

//Run is the interactive main cycle
//waits for the input and executes it until the quit key is pressed
func (m *Manager) Run() {
	m.update()
	m.view.UpdateCursor(m.cursorX, m.cursorY)
	for {
		in := m.view.WaitForInput(0)
		switch in.Kind {
		case InputMouse:
			m.onMousePressed(in.X, in.Y)
		case InputKey:
			if m.options.Keys.Action(in.Key) == ActionQuit {
				return
			}
			m.onKeyPressed(in.Key)
		}
	}
}

//StepUntilStopped does the steps until the stop or the quit key is pressed
//the view is polled once per step with the StepDelay timeout, the zero delay means DefStepDelay
//returns the number of the steps done
func (m *Manager) StepUntilStopped() int {
	delay := m.options.StepDelay
	if delay == 0 {
		delay = DefStepDelay
	}
	done := 0
	for {
		m.Step()
		done++
		in := m.view.WaitForInput(delay)
		if in.Kind != InputKey {
			continue
		}
		switch m.options.Keys.Action(in.Key) {
		case ActionStop, ActionQuit:
			return done
		}
	}
}

//MoveCursor moves the keyboard cursor, the cursor stops at the field edges
func (m *Manager) MoveCursor(dx int, dy int) {
	m.SetCursor(m.cursorX+dx, m.cursorY+dy)
}

//SetCursor places the keyboard cursor, the position is clamped to the field
func (m *Manager) SetCursor(x int, y int) {
	m.cursorX = clamp(x, m.width)
	m.cursorY = clamp(y, m.height)
	m.view.UpdateCursor(m.cursorX, m.cursorY)
}

//ExecuteCommandMode reads one command line from the view and shows its output
func (m *Manager) ExecuteCommandMode() {
	line := m.view.ReadCommandLine()
	m.view.UpdateCommandLine(m.Execute(line))
}

func (m *Manager) onMousePressed(x int, y int) {
	m.SetCursor(x, y)
	m.ToggleCellAt(m.cursorX, m.cursorY)
	m.view.UpdateCursor(m.cursorX, m.cursorY)
}

func (m *Manager) onKeyPressed(key Key) {
	switch m.options.Keys.Action(key) {
	case ActionNext:
		m.Step()
	case ActionBack:
		m.StepBack()
	case ActionReset:
		m.Reset(m.width, m.height)
	case ActionCommand:
		m.ExecuteCommandMode()
	default:
		m.onKeyboardCursor(key)
	}
}

//onKeyboardCursor manages the cursor with the arrows, the enter key sets the cell under the cursor
func (m *Manager) onKeyboardCursor(key Key) {
	switch key {
	case KeyUp:
		m.MoveCursor(0, -1)
	case KeyDown:
		m.MoveCursor(0, 1)
	case KeyLeft:
		m.MoveCursor(-1, 0)
	case KeyRight:
		m.MoveCursor(1, 0)
	case KeyEnter:
		m.ToggleCellAt(m.cursorX, m.cursorY)
		m.view.UpdateCursor(m.cursorX, m.cursorY)
	}
}

func clamp(pos int, size int) int {
	if pos >= size {
		pos = size - 1
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}
