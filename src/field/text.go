package field

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBadSymbol = errors.New("unexpected symbol")
	ErrRowLength = errors.New("row length mismatch")
)

//ParseError describes the malformed field text
//Line and Column are zero based, Line is the row (x) index
type ParseError struct {
	Line   int
	Column int
	Reason string
	Kind   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d, column %d: %s", e.Line, e.Column, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

//Parse creates the field from its text representation
//'#' is the live cell, '.' is the dead cell, '\n' separates rows, ' ' and '\r' are ignored
//each row is one x position, each symbol in the row is one y position
func Parse(text string) (*Field, error) {
	if text == "" {
		return New(0, 0), nil
	}
	lines := strings.Split(text, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	rows := make([][]bool, 0, len(lines))
	height := -1
	for i, line := range lines {
		row := make([]bool, 0, len(line))
		for j, r := range []rune(line) {
			switch r {
			case LiveSymbol:
				row = append(row, true)
			case DeadSymbol:
				row = append(row, false)
			case ' ', '\r':
			default:
				return nil, &ParseError{
					Line:   i,
					Column: j,
					Reason: fmt.Sprintf("unexpected symbol %q", r),
					Kind:   ErrBadSymbol,
				}
			}
			if height >= 0 && len(row) > height {
				return nil, rowLengthError(i, j, height)
			}
		}
		if height < 0 {
			height = len(row)
		} else if len(row) != height {
			return nil, rowLengthError(i, len([]rune(line)), height)
		}
		rows = append(rows, row)
	}
	if height == 0 {
		//no cells at all, the same as the empty text
		return New(0, 0), nil
	}

	f := New(len(rows), height)
	d := f.BeginEdit()
	for x, row := range rows {
		for y, live := range row {
			d.Set(x, y, live)
		}
	}
	d.Commit()
	return f, nil
}

func rowLengthError(line int, column int, expected int) *ParseError {
	return &ParseError{
		Line:   line,
		Column: column,
		Reason: fmt.Sprintf("expected %d cells in the row", expected),
		Kind:   ErrRowLength,
	}
}

//String outputs the field as text, the exact inverse of Parse
//width rows of height symbols, no line feed after the last row
func (f *Field) String() string {
	var b strings.Builder
	b.Grow(f.width * (f.height + 1))
	for x := range f.cells {
		if x != 0 {
			b.WriteByte('\n')
		}
		for _, live := range f.cells[x] {
			if live {
				b.WriteByte(LiveSymbol)
			} else {
				b.WriteByte(DeadSymbol)
			}
		}
	}
	return b.String()
}

//MarshalText implements encoding.TextMarshaler
func (f *Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

//UnmarshalText implements encoding.TextUnmarshaler
//the field is replaced only if the text is valid
func (f *Field) UnmarshalText(text []byte) error {
	p, err := Parse(string(text))
	if err != nil {
		return err
	}
	*f = *p
	return nil
}
