package view

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"lifeterm/src/field"
	"lifeterm/src/game"
)

//the views
const (
	headerView  = "header"
	fieldView   = "field"
	statusView  = "status"
	commandView = "command"
	inputView   = "input"
)

//the layout sizes in terminal cells
const (
	statusWidth   = 30
	headerHeight  = 1
	commandHeight = 3
	graphHeight   = 4
	historyLimit  = statusWidth - 10
)

type keyBinding struct {
	key      interface{}
	handler  func(v *gocui.View) error
	viewName string
}

//Terminal is the interactive view over gocui
//gocui runs its main loop in the caller's goroutine (Start), the game manager calls the View methods from its own goroutine
//the methods only change the state under the lock and ask gocui to redraw
type Terminal struct {
	g    *gocui.Gui
	keys game.Keymap

	inputCh chan game.Input
	lineCh  chan string
	done    chan struct{}
	once    sync.Once

	mu          sync.Mutex
	maxX, maxY  int
	field       *field.Field
	steps       int
	history     population
	cursorX     int
	cursorY     int
	commandLine string
	commandMode bool

	liveFiller   string
	deadFiller   string
	cursorLive   string
	cursorDead   string
	prompts      []string
	promptHeight int
}

//NewTerminal initializes the terminal, it panics if the terminal can't be used
func NewTerminal(keys game.Keymap) *Terminal {
	var err error
	t := Terminal{
		keys:       keys,
		inputCh:    make(chan game.Input, 16),
		lineCh:     make(chan string, 1),
		done:       make(chan struct{}),
		field:      field.New(0, 0),
		liveFiller: aurora.Green("█").String(),
		deadFiller: "░",
		cursorLive: aurora.Yellow("█").String(),
		cursorDead: aurora.Yellow("▒").String(),
		prompts:    keys.Prompts(),
	}
	//prompts, the blank line, three properties, the blank line, the graph with its caption, the frame
	t.promptHeight = len(t.prompts) + 5 + graphHeight + 2 + 2

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}
	t.g.Mouse = true
	t.maxX, t.maxY = t.g.Size()
	t.g.SetManagerFunc(t.layout)
	t.initKeyBindings(t.keyBindings())
	return &t
}

func (t *Terminal) keyBindings() []keyBinding {
	k := []keyBinding{
		{gocui.KeyCtrlC, t.sendKey(game.KeyCtrlC), ""},
		{gocui.KeyArrowUp, t.sendKey(game.KeyUp), fieldView},
		{gocui.KeyArrowDown, t.sendKey(game.KeyDown), fieldView},
		{gocui.KeyArrowLeft, t.sendKey(game.KeyLeft), fieldView},
		{gocui.KeyArrowRight, t.sendKey(game.KeyRight), fieldView},
		{gocui.KeyEnter, t.sendKey(game.KeyEnter), fieldView},
		{gocui.MouseLeft, t.cmdMouseClick, fieldView},
		{gocui.KeyEnter, t.cmdSubmitLine, inputView},
		{gocui.KeyEsc, t.cmdCancelLine, inputView},
	}
	//letters are bound in both cases
	for _, key := range t.keys.Keys() {
		r := rune(key)
		k = append(k, keyBinding{r, t.sendKey(key), fieldView})
		if u := []rune(strings.ToUpper(string(r))); len(u) == 1 && u[0] != r {
			k = append(k, keyBinding{u[0], t.sendKey(key), fieldView})
		}
	}
	return k
}

func (t *Terminal) initKeyBindings(k []keyBinding) {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			log.Panicln(err)
		}
	}
}

//Start runs the gocui main loop until Quit is called
func (t *Terminal) Start() {
	defer t.stop()
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		t.g.Close()
		log.Panicln(err)
	}
	t.g.Close()
}

//Quit stops the main loop, it is safe to call from any goroutine
func (t *Terminal) Quit() {
	t.g.Update(func(g *gocui.Gui) error {
		return gocui.ErrQuit
	})
}

func (t *Terminal) stop() {
	t.once.Do(func() { close(t.done) })
}

func (t *Terminal) UpdateField(f *field.Field, steps int) {
	t.mu.Lock()
	t.field = f
	t.steps = steps
	t.history.record(steps, f.Alive(), historyLimit)
	if t.cursorX >= f.Width() || t.cursorY >= f.Height() {
		t.cursorX, t.cursorY = 0, 0
	}
	t.mu.Unlock()
	t.redraw()
}

func (t *Terminal) UpdateCursor(x int, y int) {
	t.mu.Lock()
	t.cursorX, t.cursorY = x, y
	t.mu.Unlock()
	t.redraw()
}

func (t *Terminal) UpdateCommandLine(text string) {
	t.mu.Lock()
	t.commandLine = strings.TrimRight(text, "\n")
	t.mu.Unlock()
	t.redraw()
}

//ReadCommandLine shows the input line and waits until the user submits it
func (t *Terminal) ReadCommandLine() string {
	t.mu.Lock()
	t.commandMode = true
	t.mu.Unlock()
	t.redraw()
	select {
	case l := <-t.lineCh:
		return l
	case <-t.done:
		return ""
	}
}

func (t *Terminal) WaitForInput(timeout uint8) game.Input {
	var expired <-chan time.Time
	if timeout != 0 {
		expired = time.After(time.Duration(timeout) * 100 * time.Millisecond)
	}
	select {
	case in := <-t.inputCh:
		return in
	case <-expired:
		return game.TimeoutInput()
	case <-t.done:
		return game.KeyInput(game.KeyCtrlC)
	}
}

func (t *Terminal) CanAccommodate(width int, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	w, h := t.requiredSize(width, height)
	return t.maxX >= w && t.maxY >= h
}

//requiredSize calculates the terminal size to display the field with the frame, the status and the command line
func (t *Terminal) requiredSize(width int, height int) (int, int) {
	h := height + 2
	if h < t.promptHeight {
		h = t.promptHeight
	}
	return width + 2 + statusWidth, headerHeight + h + commandHeight
}

func (t *Terminal) redraw() {
	t.g.Update(func(g *gocui.Gui) error { return nil })
}

func (t *Terminal) sendKey(k game.Key) func(v *gocui.View) error {
	return func(_ *gocui.View) error {
		t.send(game.KeyInput(k))
		return nil
	}
}

//send drops the input if the game doesn't read it
func (t *Terminal) send(in game.Input) {
	select {
	case t.inputCh <- in:
	default:
	}
}

func (t *Terminal) sendLine(l string) {
	select {
	case t.lineCh <- l:
	default:
	}
}

func (t *Terminal) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	ox, oy := v.Origin()
	x, y := cx+ox, cy+oy
	t.mu.Lock()
	inside := x < t.field.Width() && y < t.field.Height()
	t.mu.Unlock()
	if inside {
		t.send(game.MouseInput(x, y))
	}
	return nil
}

func (t *Terminal) cmdSubmitLine(v *gocui.View) error {
	line := strings.TrimSpace(v.Buffer())
	t.closeCommandMode()
	t.sendLine(line)
	return nil
}

func (t *Terminal) cmdCancelLine(_ *gocui.View) error {
	t.closeCommandMode()
	t.sendLine("")
	return nil
}

func (t *Terminal) closeCommandMode() {
	t.mu.Lock()
	t.commandMode = false
	t.mu.Unlock()
	t.g.Cursor = false
	_ = t.g.DeleteView(inputView)
	_, _ = t.g.SetCurrentView(fieldView)
}

func (t *Terminal) layout(g *gocui.Gui) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	maxX, maxY := g.Size()
	t.maxX, t.maxY = maxX, maxY
	fw, fh := t.field.Width(), t.field.Height()
	needX, needY := t.requiredSize(fw, fh)

	if maxX < needX || maxY < needY {
		if err := t.headerLayout(g, maxY, fmt.Sprintf("Terminal is too small: %dx%d, need %dx%d", maxX, maxY, needX, needY)); err != nil {
			return err
		}
		for _, name := range []string{fieldView, statusView, commandView, inputView} {
			_ = g.DeleteView(name)
		}
		return nil
	}
	if err := t.headerLayout(g, headerHeight, "\"The Life\" on the torus"); err != nil {
		return err
	}

	top := headerHeight
	bottom := maxY - commandHeight
	if v, err := g.SetView(fieldView, 0, top, fw+1, top+fh+1); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Field"
		v.Frame = true
		if _, err := g.SetCurrentView(fieldView); err != nil {
			return err
		}
	}
	if v, err := g.View(fieldView); err == nil {
		t.renderField(v)
	}

	if v, err := g.SetView(statusView, fw+2, top, fw+2+statusWidth-1, bottom-1); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
	}
	if v, err := g.View(statusView); err == nil {
		t.renderStatus(v)
	}

	if v, err := g.SetView(commandView, 0, bottom, maxX-1, maxY-1); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Command"
		v.Frame = true
	}
	if v, err := g.View(commandView); err == nil {
		v.Clear()
		_, _ = fmt.Fprint(v, colorizeOutput(t.commandLine))
	}

	if t.commandMode {
		if v, err := g.SetView(inputView, 0, bottom, maxX-1, maxY-1); err != nil {
			if err != gocui.ErrUnknownView || v == nil {
				return err
			}
			v.Title = ">> "
			v.Frame = true
			v.Editable = true
			g.Cursor = true
			if _, err := g.SetCurrentView(inputView); err != nil {
				return err
			}
			if _, err := g.SetViewOnTop(inputView); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *Terminal) renderField(v *gocui.View) {
	v.Clear()
	var b bytes.Buffer
	for y := 0; y < t.field.Height(); y++ {
		if y != 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < t.field.Width(); x++ {
			live := t.field.Get(x, y)
			cursor := x == t.cursorX && y == t.cursorY
			switch {
			case cursor && live:
				b.WriteString(t.cursorLive)
			case cursor:
				b.WriteString(t.cursorDead)
			case live:
				b.WriteString(t.liveFiller)
			default:
				b.WriteString(t.deadFiller)
			}
		}
	}
	_, _ = fmt.Fprint(v, b.String())
}

func (t *Terminal) renderStatus(v *gocui.View) {
	v.Clear()
	for _, p := range t.prompts {
		_, _ = fmt.Fprintln(v, renderPrompt(p))
	}
	_, _ = fmt.Fprintln(v)
	_, _ = fmt.Fprintln(v, renderProp("Step", "%v", t.steps))
	_, _ = fmt.Fprintln(v, renderProp("Live cells", "%v", t.field.Alive()))
	_, _ = fmt.Fprintln(v, renderProp("Dimension", "%v x %v", t.field.Width(), t.field.Height()))
	_, _ = fmt.Fprintln(v)
	_, _ = fmt.Fprint(v, populationGraph(t.history.counts, historyLimit, graphHeight))
}

func (t *Terminal) headerLayout(g *gocui.Gui, height int, text string) error {
	maxX, _ := g.Size()
	v, err := g.SetView(headerView, -1, -1, maxX, height)
	if err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorCyan
		v.FgColor = gocui.ColorBlack
	}
	v.Clear()
	pad := 0
	if maxX > len(text) {
		pad = (maxX - len(text)) / 2
	}
	_, _ = fmt.Fprint(v, strings.Repeat("\n", height/2)+strings.Repeat(" ", pad)+text)
	return nil
}

//renderPrompt highlights the hotkey, the first symbol of the prompt
func renderPrompt(p string) string {
	r := []rune(p)
	if len(r) == 0 {
		return ""
	}
	return " " + aurora.Reverse(" "+string(r[0])+" ").String() + string(r[1:])
}

func renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

//colorizeOutput marks the failed command output
func colorizeOutput(text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if isFailure(l) {
			lines[i] = aurora.Red(l).String()
		}
	}
	return strings.Join(lines, "\n")
}

func isFailure(line string) bool {
	for _, prefix := range []string{"Cannot", "Bad field", "Impossible", "Need args", "Unknown", "Command not found"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

//population is the live cells history, the last count belongs to the step last
type population struct {
	counts []float64
	last   int
}

//record stores the live cells count of the step
//the new game starts the new history, the undone steps are dropped, only the last limit counts are kept
func (p *population) record(steps int, alive int, limit int) {
	a := float64(alive)
	switch {
	case steps <= 0 || len(p.counts) == 0:
		p.counts = []float64{a}
	case steps > p.last:
		p.counts = append(p.counts, a)
	case steps == p.last:
		p.counts[len(p.counts)-1] = a
	default:
		back := p.last - steps
		if back >= len(p.counts) {
			p.counts = []float64{a}
		} else {
			p.counts = p.counts[:len(p.counts)-back]
			p.counts[len(p.counts)-1] = a
		}
	}
	p.last = steps
	if limit > 0 && len(p.counts) > limit {
		p.counts = p.counts[len(p.counts)-limit:]
	}
}

//populationGraph plots the live cells history
func populationGraph(history []float64, width int, height int) string {
	if len(history) < 2 {
		return " " + aurora.Cyan("no steps yet").String()
	}
	return asciigraph.Plot(history, asciigraph.Height(height), asciigraph.Width(width), asciigraph.Caption("live cells"))
}
