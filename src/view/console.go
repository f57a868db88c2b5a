package view

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"lifeterm/src/field"
	"lifeterm/src/game"
)

//DefMaxConsoleSize is the largest field side accepted by the console
const DefMaxConsoleSize = 4096

//Console is the view for the batch mode
//it prints the progress to out and reads the command lines from in
type Console struct {
	out       io.Writer
	in        *bufio.Scanner
	every     int //print the progress every N steps, 0 disables it
	maxSize   int
	startTime time.Time
	field     *field.Field
	steps     int
}

//NewConsole creates the console view, in may be nil
func NewConsole(out io.Writer, in io.Reader, every int) *Console {
	c := &Console{out: out, every: every, maxSize: DefMaxConsoleSize, field: field.New(0, 0), startTime: time.Now()}
	if in != nil {
		c.in = bufio.NewScanner(in)
	}
	return c
}

func (c *Console) UpdateField(f *field.Field, steps int) {
	c.field = f
	if c.every > 0 && steps > c.steps && steps%c.every == 0 {
		fmt.Fprintf(c.out, "  Steps done: %v\n", steps)
	}
	c.steps = steps
}

func (c *Console) UpdateCursor(x int, y int) {}

func (c *Console) UpdateCommandLine(text string) {
	if text != "" {
		fmt.Fprint(c.out, text)
	}
}

//ReadCommandLine returns the next line of the input, "" at the end
func (c *Console) ReadCommandLine() string {
	if c.in == nil || !c.in.Scan() {
		return ""
	}
	return c.in.Text()
}

//WaitForInput never blocks: there are no keys in the batch mode
//the waiting is answered with Ctrl+C, so the infinite stepping stops after one step
func (c *Console) WaitForInput(timeout uint8) game.Input {
	return game.KeyInput(game.KeyCtrlC)
}

func (c *Console) CanAccommodate(width int, height int) bool {
	return width > 0 && height > 0 && width <= c.maxSize && height <= c.maxSize
}

//Configuration prints the running configuration
func (c *Console) Configuration(width int, height int, o game.Options) {
	fmt.Fprintln(c.out, "Running configuration:")
	fmt.Fprintf(c.out, "  Dimension: %v x %v\n", width, height)
	c.printHashData(map[string]interface{}{
		"Default file": o.DefaultFile,
		"Step delay":   time.Duration(o.StepDelay) * 100 * time.Millisecond,
		"Patterns":     len(o.Templates),
	})
}

//Finish prints the summary and the final field
func (c *Console) Finish(printField bool) {
	totalTime := time.Since(c.startTime).Round(time.Millisecond)
	fmt.Fprintln(c.out, "\nFinished:")
	c.printHashData(map[string]interface{}{
		"Last iteration": c.steps,
		"Total time":     totalTime,
		"Live cells":     c.field.Alive(),
	})
	if printField {
		fmt.Fprintln(c.out, c.field.String())
	}
}

//Run executes the command lines from the input until its end
func (c *Console) Run(m *game.Manager) {
	for {
		if c.in == nil || !c.in.Scan() {
			return
		}
		line := strings.TrimSpace(c.in.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c.UpdateCommandLine(m.Execute(line))
	}
}

func (c *Console) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.out, "  %s: %v\n", propName, d[propName])
	}
}
