package field

//Draft is the edit session over the field
//it holds the private copy of the cells, the original field is changed only by Commit
type Draft struct {
	original *Field
	cells    [][]bool
}

//BeginEdit creates the draft with the copy of the current cells
func (f *Field) BeginEdit() *Draft {
	d := &Draft{original: f, cells: createCells(f.width, f.height)}
	copyCells(d.cells, f.cells)
	return d
}

//Get returns the cell state of the draft at x, y considering the loop
func (d *Draft) Get(x int, y int) bool {
	if d.cells == nil || d.original.empty() {
		return false
	}
	return d.cells[Wrap(x, d.original.width)][Wrap(y, d.original.height)]
}

//Set changes the cell state of the draft
//writes after Commit are ignored
func (d *Draft) Set(x int, y int, live bool) {
	if d.cells == nil || d.original.empty() {
		return
	}
	d.cells[Wrap(x, d.original.width)][Wrap(y, d.original.height)] = live
}

//Toggle inverses the cell state of the draft and returns the new state
func (d *Draft) Toggle(x int, y int) bool {
	live := !d.Get(x, y)
	d.Set(x, y, live)
	return live
}

//Commit replaces the cells of the original field with the draft cells
//the draft is detached after the first call, next calls do nothing
func (d *Draft) Commit() {
	if d.cells == nil {
		return
	}
	d.original.cells = d.cells
	d.cells = nil
}

//Committed reports whether the draft was applied
func (d *Draft) Committed() bool {
	return d.cells == nil
}
