package game

import (
	"reflect"
	"testing"

	"lifeterm/src/field"
)

func newTestManager(width int, height int) (*Manager, *mockView) {
	v := newMockView()
	return NewManager(width, height, v, DefaultOptions()), v
}

func TestNextStep(t *testing.T) {
	tests := []struct {
		from, to string
	}{
		{".#..\n.#..\n.#..", "....\n###.\n...."},
		{"#", "."},
		{"....\n.###\n.###\n.###", "..#..\n.#.#.\n#...#\n.#.#.\n..#.."},
	}
	for _, tt := range tests {
		from := field.New(10, 10)
		placeOnField(from, mustParse(tt.from))
		want := field.New(10, 10)
		placeOnField(want, mustParse(tt.to))

		v := newMockView()
		m := NewManagerFromField(from, v, DefaultOptions())
		m.Step()
		if !v.field.Equal(want) {
			t.Errorf("step of\n%s\ngot\n%s", tt.from, v.field)
		}
		if v.steps != 1 {
			t.Errorf("steps = %d, want 1", v.steps)
		}
	}
}

func TestBlinkerPeriod(t *testing.T) {
	m, _ := newTestManager(10, 10)
	vertical := map[[2]int]bool{{1, 0}: true, {1, 1}: true, {1, 2}: true}
	for p := range vertical {
		m.ToggleCellAt(p[0], p[1])
	}

	m.Step()
	horizontal := map[[2]int]bool{{0, 1}: true, {1, 1}: true, {2, 1}: true}
	if got := liveSet(m.Field()); !reflect.DeepEqual(got, horizontal) {
		t.Fatalf("after first step live cells = %v, want %v", got, horizontal)
	}

	m.Step()
	if got := liveSet(m.Field()); !reflect.DeepEqual(got, vertical) {
		t.Fatalf("after second step live cells = %v, want %v", got, vertical)
	}
	if m.Steps() != 2 {
		t.Fatalf("steps = %d, want 2", m.Steps())
	}
}

func TestBlinkerAcrossEdge(t *testing.T) {
	m, _ := newTestManager(5, 5)
	m.ToggleCellAt(0, 4)
	m.ToggleCellAt(0, 0)
	m.ToggleCellAt(0, 1)
	m.Step()
	want := map[[2]int]bool{{4, 0}: true, {0, 0}: true, {1, 0}: true}
	if got := liveSet(m.Field()); !reflect.DeepEqual(got, want) {
		t.Fatalf("live cells = %v, want %v", got, want)
	}
}

func TestSingleCellDies(t *testing.T) {
	for _, p := range [][2]int{{0, 0}, {4, 7}, {9, 9}} {
		m, _ := newTestManager(10, 10)
		m.ToggleCellAt(p[0], p[1])
		m.Step()
		if n := m.Field().Alive(); n != 0 {
			t.Fatalf("cell at %v: %d live cells after the step, want 0", p, n)
		}
	}
}

func TestToggleCellAt(t *testing.T) {
	m, v := newTestManager(10, 10)
	if !m.ToggleCellAt(5, 5) {
		t.Fatal("first toggle must spawn the cell")
	}
	if !v.field.Get(5, 5) {
		t.Fatal("view must be notified with the new field")
	}
	if m.ToggleCellAt(5, 5) {
		t.Fatal("second toggle must kill the cell")
	}
	if m.Field().Alive() != 0 {
		t.Fatal("double toggle must restore the cell")
	}
	if !m.ToggleCellAt(10, 10) || !m.Field().Get(0, 0) {
		t.Fatal("cell coordinates must wrap")
	}
	if !m.ToggleCellAt(-1, -1) || !m.Field().Get(9, 9) {
		t.Fatal("negative cell coordinates must wrap")
	}
}

func TestStepBack(t *testing.T) {
	m, v := newTestManager(10, 10)
	sample := m.Field()
	if m.StepBack() {
		t.Fatal("nothing to cancel on the new game")
	}

	m.ToggleCellAt(5, 5)
	if !m.CanUndo() {
		t.Fatal("toggle must be cancellable")
	}
	if !m.StepBack() {
		t.Fatal("toggle must be cancelled")
	}
	if !v.field.Equal(sample) {
		t.Fatal("view must be notified with the restored field")
	}
	if m.StepBack() {
		t.Fatal("only one change can be cancelled")
	}

	for i := 0; i < 10; i++ {
		m.ToggleCellAt(i, i)
	}
	for i := 0; i < 10; i++ {
		m.ToggleCellAt(i, i)
	}
	m.ToggleCellAt(0, 0)
	m.StepBack()
	if !m.Field().Equal(sample) {
		t.Fatal("step back must restore the field before the last toggle")
	}
}

func TestStepBackAfterStep(t *testing.T) {
	m, _ := newTestManager(10, 10)
	m.ToggleCellAt(1, 0)
	m.ToggleCellAt(1, 1)
	m.ToggleCellAt(1, 2)
	m.Step()
	afterFirst := m.Field()
	m.Step()
	m.StepBack()
	if m.Steps() != 1 {
		t.Fatalf("steps = %d, want 1", m.Steps())
	}
	if !m.Field().Equal(afterFirst) {
		t.Fatal("step back must restore the field after the first step")
	}
	if m.StepBack() {
		t.Fatal("second step back must fail")
	}
	if m.Steps() != 1 {
		t.Fatalf("failed step back changed steps to %d", m.Steps())
	}
}

func TestReset(t *testing.T) {
	m, v := newTestManager(10, 10)
	sample := m.Field()
	for i := 0; i < 10; i++ {
		m.ToggleCellAt(i, i)
	}
	m.Step()
	m.SetCursor(3, 4)

	m.Reset(m.Width(), m.Height())
	if !v.field.Equal(sample) {
		t.Fatal("reset must clear the field")
	}
	if m.Steps() != 0 || v.steps != 0 {
		t.Fatal("reset must clear the steps counter")
	}
	if x, y := m.Cursor(); x != 0 || y != 0 || v.cursorX != 0 || v.cursorY != 0 {
		t.Fatal("reset must move the cursor to the origin")
	}
	if m.StepBack() {
		t.Fatal("reset must clear the undo")
	}

	m.Reset(2, 6)
	if m.Width() != 2 || m.Height() != 6 || !m.Field().Equal(field.New(2, 6)) {
		t.Fatal("reset must create the field with the new dimension")
	}
}

func TestResetToField(t *testing.T) {
	m, _ := newTestManager(10, 10)
	f := mustParse("#..\n.#.")
	m.ResetTo(f)
	f.Set(2, 2, true)
	if m.Width() != 2 || m.Height() != 3 {
		t.Fatalf("dimension = %dx%d, want 2x3", m.Width(), m.Height())
	}
	if m.Field().Alive() != 2 {
		t.Fatal("manager must own its copy of the field")
	}
}

func TestFieldIsCopy(t *testing.T) {
	m, v := newTestManager(3, 3)
	m.Field().Set(1, 1, true)
	v.field = nil
	m.ToggleCellAt(0, 0)
	v.field.Set(2, 2, true)
	if m.Field().Get(1, 1) || m.Field().Get(2, 2) {
		t.Fatal("readers must not change the manager's field")
	}
}

func TestPlaceTemplate(t *testing.T) {
	m, _ := newTestManager(10, 10)
	if err := m.PlaceTemplate("blinker", 9, 9); err != nil {
		t.Fatal(err)
	}
	want := map[[2]int]bool{{9, 9}: true, {9, 0}: true, {9, 1}: true}
	if got := liveSet(m.Field()); !reflect.DeepEqual(got, want) {
		t.Fatalf("live cells = %v, want %v", got, want)
	}
	if !m.StepBack() || m.Field().Alive() != 0 {
		t.Fatal("placing the template must be cancellable")
	}
	if err := m.PlaceTemplate("unknown", 0, 0); err == nil {
		t.Fatal("unknown template must fail")
	}
	if m.CanUndo() {
		t.Fatal("failed placing must not change the undo")
	}
}

func TestTemplateFromField(t *testing.T) {
	tmpl := TemplateFromField("diag", "", mustParse("#.\n.#"))
	want := [][]int{{0, 0}, {1, 1}}
	if !reflect.DeepEqual(tmpl.Coordinates, want) {
		t.Fatalf("coordinates = %v, want %v", tmpl.Coordinates, want)
	}
}

func TestDegenerateManager(t *testing.T) {
	m, _ := newTestManager(0, 0)
	m.Step()
	m.ToggleCellAt(3, 3)
	m.MoveCursor(1, 1)
	if x, y := m.Cursor(); x != 0 || y != 0 {
		t.Fatalf("cursor = (%d,%d) on the empty field", x, y)
	}
	if m.Field().Alive() != 0 {
		t.Fatal("empty field has no cells")
	}
}
