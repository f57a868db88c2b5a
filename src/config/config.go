package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"lifeterm/src/field"
	"lifeterm/src/game"
)

//KeySymbol is one hotkey written as the one symbol string
type KeySymbol game.Key

func (k *KeySymbol) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return fmt.Errorf("line %d: key %q must be one symbol", node.Line, s)
	}
	*k = KeySymbol(r)
	return nil
}

func (k KeySymbol) MarshalYAML() (interface{}, error) {
	return string(rune(k)), nil
}

//Keys is the keymap section of the file, the missing keys keep the defaults
type Keys struct {
	Quit    KeySymbol `yaml:"quit,omitempty"`
	Next    KeySymbol `yaml:"next,omitempty"`
	Back    KeySymbol `yaml:"back,omitempty"`
	Reset   KeySymbol `yaml:"reset,omitempty"`
	Command KeySymbol `yaml:"command,omitempty"`
	Stop    KeySymbol `yaml:"stop,omitempty"`
}

//Pattern is the user template written in the field text format
type Pattern struct {
	Name  string `yaml:"name"`
	Descr string `yaml:"descr,omitempty"`
	Field string `yaml:"field"`
}

//File represents the configuration file
type File struct {
	Width       int       `yaml:"width,omitempty"`
	Height      int       `yaml:"height,omitempty"`
	DefaultFile string    `yaml:"default_file,omitempty"`
	StepDelay   *uint8    `yaml:"step_delay,omitempty"`
	Keys        Keys      `yaml:"keys,omitempty"`
	Patterns    []Pattern `yaml:"patterns,omitempty"`
}

//Config is the loaded process-wide configuration
type Config struct {
	Width   int
	Height  int
	Options game.Options
}

//Default returns the configuration with the default values
func Default() Config {
	return Config{
		Width:   game.DefWidth,
		Height:  game.DefHeight,
		Options: game.DefaultOptions(),
	}
}

//Load reads the configuration file
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	c, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

//Decode parses the YAML configuration over the defaults
//unknown fields are the error
func Decode(r io.Reader) (Config, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return file.Apply(Default())
}

//Apply overrides the configuration with the values set in the file
func (file File) Apply(c Config) (Config, error) {
	if file.Width < 0 || file.Height < 0 {
		return Config{}, fmt.Errorf("field size %dx%d must not be negative", file.Width, file.Height)
	}
	if file.Width > 0 {
		c.Width = file.Width
	}
	if file.Height > 0 {
		c.Height = file.Height
	}
	if file.DefaultFile != "" {
		c.Options.DefaultFile = file.DefaultFile
	}
	if file.StepDelay != nil {
		if *file.StepDelay == 0 {
			return Config{}, errors.New("step delay must be at least 1")
		}
		c.Options.StepDelay = *file.StepDelay
	}

	k := &c.Options.Keys
	override(&k.Quit, file.Keys.Quit)
	override(&k.Next, file.Keys.Next)
	override(&k.Back, file.Keys.Back)
	override(&k.Reset, file.Keys.Reset)
	override(&k.Command, file.Keys.Command)
	override(&k.Stop, file.Keys.Stop)
	if err := k.Validate(); err != nil {
		return Config{}, err
	}

	for _, p := range file.Patterns {
		if p.Name == "" {
			return Config{}, errors.New("pattern without name")
		}
		f, err := field.Parse(p.Field)
		if err != nil {
			return Config{}, fmt.Errorf("pattern %q: %w", p.Name, err)
		}
		c.Options.Templates = setTemplate(c.Options.Templates, game.TemplateFromField(p.Name, p.Descr, f))
	}
	return c, nil
}

//Encode writes the configuration as YAML, it is used to dump the defaults
func Encode(w io.Writer, c Config) error {
	delay := c.Options.StepDelay
	k := c.Options.Keys
	file := File{
		Width:       c.Width,
		Height:      c.Height,
		DefaultFile: c.Options.DefaultFile,
		StepDelay:   &delay,
		Keys: Keys{
			Quit:    KeySymbol(k.Quit),
			Next:    KeySymbol(k.Next),
			Back:    KeySymbol(k.Back),
			Reset:   KeySymbol(k.Reset),
			Command: KeySymbol(k.Command),
			Stop:    KeySymbol(k.Stop),
		},
	}
	var b bytes.Buffer
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := w.Write(b.Bytes())
	return err
}

func override(dst *game.Key, k KeySymbol) {
	if k != 0 {
		*dst = game.Key(k)
	}
}

//setTemplate replaces the template with the same name or appends the new one
func setTemplate(templates []game.Template, t game.Template) []game.Template {
	for i := range templates {
		if templates[i].Name == t.Name {
			templates[i] = t
			return templates
		}
	}
	return append(templates, t)
}
