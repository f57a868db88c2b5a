package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//Extension is added to the file names without one
const Extension = ".fld"

var ErrBadName = errors.New("bad file name")

//Dir keeps the saved fields in one directory
type Dir struct {
	root string
}

//NewDir creates the storage over the directory, "" means the working directory
func NewDir(root string) *Dir {
	if root == "" {
		root = "."
	}
	return &Dir{root: root}
}

func (d *Dir) Root() string {
	return d.root
}

//ReadFile reads the saved field text
func (d *Dir) ReadFile(name string) ([]byte, error) {
	p, err := d.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read field %q: %w", name, err)
	}
	return data, nil
}

//WriteFile writes the field text, the existing file is replaced
//the text goes to a temporary file which is then renamed over the old one
func (d *Dir) WriteFile(name string, data []byte) error {
	p, err := d.path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("write field %q: %w", name, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), ".field-*")
	if err != nil {
		return fmt.Errorf("write field %q: %w", name, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write field %q: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write field %q: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("write field %q: %w", name, err)
	}
	return nil
}

//path resolves the name inside the root, absolute names are used as is
func (d *Dir) path(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty", ErrBadName)
	}
	if filepath.Ext(name) == "" {
		name += Extension
	}
	if filepath.IsAbs(name) {
		return filepath.Clean(name), nil
	}
	return filepath.Join(d.root, name), nil
}
