package main

import (
	"fmt"
	"log"
	"os"

	"github.com/integrii/flaggy"

	"lifeterm/src/config"
	"lifeterm/src/field"
	"lifeterm/src/game"
	"lifeterm/src/storage"
	"lifeterm/src/view"
)

type EnvOptions struct {
	interactive bool
	configFile  string
	loadFile    string
	outputFile  string
	dir         string
	steps       int
	progress    int
	printField  bool
	dumpConfig  bool
}

func main() {
	eo, c := initOptions()

	if eo.dumpConfig {
		if err := config.Encode(os.Stdout, c); err != nil {
			log.Fatalln(err)
		}
		return
	}

	dir := storage.NewDir(eo.dir)
	c.Options.Storage = dir

	initial := field.New(c.Width, c.Height)
	if eo.loadFile != "" {
		data, err := dir.ReadFile(eo.loadFile)
		if err != nil {
			log.Fatalln(err)
		}
		if initial, err = field.Parse(string(data)); err != nil {
			log.Fatalf("bad field in %s: %v\n", eo.loadFile, err)
		}
	}

	if eo.interactive {
		t := view.NewTerminal(c.Options.Keys)
		if !t.CanAccommodate(initial.Width(), initial.Height()) {
			log.Fatalf("the field %dx%d doesn't fit the terminal\n", initial.Width(), initial.Height())
		}
		m := game.NewManagerFromField(initial, t, c.Options)
		go func() {
			m.Run()
			t.Quit()
		}()
		t.Start()
		return
	}

	fmt.Printf("\"The Life\" game simulation started...\n")
	con := view.NewConsole(os.Stdout, os.Stdin, eo.progress)
	if !con.CanAccommodate(initial.Width(), initial.Height()) {
		log.Fatalf("the field %dx%d is not supported\n", initial.Width(), initial.Height())
	}
	m := game.NewManagerFromField(initial, con, c.Options)
	con.Configuration(m.Width(), m.Height(), c.Options)
	con.UpdateField(m.Field(), m.Steps())

	if eo.steps > 0 {
		con.UpdateCommandLine(m.Execute(fmt.Sprintf("step %d", eo.steps)))
	}
	con.Run(m)
	if eo.outputFile != "" {
		con.UpdateCommandLine(m.Execute("save " + eo.outputFile))
	}
	con.Finish(eo.printField)
}

func initOptions() (eo *EnvOptions, c config.Config) {
	eo = &EnvOptions{interactive: true, progress: 10}
	c = config.Default()
	width, height := 0, 0

	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&width, "x", "width", "Width of a game field")
	flaggy.Int(&height, "y", "height", "Height of a game field")
	flaggy.String(&eo.configFile, "c", "config", "YAML configuration file")
	flaggy.String(&eo.loadFile, "l", "load", "Field file to start with")
	flaggy.String(&eo.dir, "d", "dir", "Directory of the saved fields")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode, use --interactive=false for the batch mode")
	flaggy.Int(&eo.steps, "s", "steps", "Steps to do in the batch mode before reading the commands from stdin")
	flaggy.Int(&eo.progress, "p", "progress", "Print the progress every N steps in the batch mode, 0 disables it")
	flaggy.String(&eo.outputFile, "o", "output", "Save the field to the file when the batch mode is finished")
	flaggy.Bool(&eo.printField, "f", "print", "Print the final field in the batch mode")
	flaggy.Bool(&eo.dumpConfig, "", "defaults", "Print the configuration as YAML and exit")

	flaggy.Parse()

	if eo.configFile != "" {
		var err error
		if c, err = config.Load(eo.configFile); err != nil {
			flaggy.ShowHelpAndExit(err.Error())
		}
	}
	if width < 0 || height < 0 {
		flaggy.ShowHelpAndExit("the field size must not be negative")
	}
	if width > 0 {
		c.Width = width
	}
	if height > 0 {
		c.Height = height
	}
	if eo.steps < 0 {
		flaggy.ShowHelpAndExit("the steps count must not be negative")
	}
	return
}
