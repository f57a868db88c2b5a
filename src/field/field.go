package field

//Cell states in the text representation
const (
	LiveSymbol = '#'
	DeadSymbol = '.'
)

//Field is the toroidal game field
//x is in [0, Width), y is in [0, Height), every coordinate is wrapped before use
//the field is not changed by reads, changes are staged in a Draft and committed at once
type Field struct {
	width  int
	height int
	cells  [][]bool //cells[x][y]
}

//New creates the empty (all dead) field
func New(width int, height int) *Field {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Field{width: width, height: height, cells: createCells(width, height)}
}

//Clone returns the independent copy of the field
func (f *Field) Clone() *Field {
	c := &Field{width: f.width, height: f.height, cells: createCells(f.width, f.height)}
	copyCells(c.cells, f.cells)
	return c
}

func (f *Field) Width() int {
	return f.width
}

func (f *Field) Height() int {
	return f.height
}

//Get returns the cell state at x, y considering the loop
func (f *Field) Get(x int, y int) bool {
	if f.empty() {
		return false
	}
	return f.cells[Wrap(x, f.width)][Wrap(y, f.height)]
}

//Set changes one cell through a draft, it is a shortcut for BeginEdit/Set/Commit
func (f *Field) Set(x int, y int, live bool) {
	d := f.BeginEdit()
	d.Set(x, y, live)
	d.Commit()
}

//Equal reports whether both fields have the same dimension and the same cells
func (f *Field) Equal(other *Field) bool {
	if other == nil || f.width != other.width || f.height != other.height {
		return false
	}
	for x := range f.cells {
		for y := range f.cells[x] {
			if f.cells[x][y] != other.cells[x][y] {
				return false
			}
		}
	}
	return true
}

//Alive calculates the count of live cells
func (f *Field) Alive() int {
	alive := 0
	f.Each(func(x int, y int, live bool) {
		if live {
			alive++
		}
	})
	return alive
}

//CountNeighbours returns the number of live cells around x, y
//neighbours on the opposite edges are counted too
func (f *Field) CountNeighbours(x int, y int) int {
	n := 0
	for i := -1; i < 2; i++ {
		for j := -1; j < 2; j++ {
			if i == 0 && j == 0 {
				continue
			}
			if f.Get(x+i, y+j) {
				n++
			}
		}
	}
	return n
}

//Each walks the entire field and calls the cb function for each cell
func (f *Field) Each(cb func(x int, y int, live bool)) {
	for x := range f.cells {
		for y := range f.cells[x] {
			cb(x, y, f.cells[x][y])
		}
	}
}

func (f *Field) empty() bool {
	return f.width == 0 || f.height == 0
}

//Wrap makes the position cyclic: -1 becomes modulus-1, modulus becomes 0
//the zero modulus has no positions, 0 is returned
func Wrap(pos int, modulus int) int {
	if modulus <= 0 {
		return 0
	}
	r := pos % modulus
	if r < 0 {
		r += modulus
	}
	return r
}

//createCells allocates the cells with one backing slice
func createCells(width int, height int) [][]bool {
	cells := make([][]bool, width)
	b := make([]bool, width*height)
	for i := range cells {
		start := height * i
		cells[i] = b[start : start+height : start+height]
	}
	return cells
}

func copyCells(dst [][]bool, src [][]bool) {
	for x := range src {
		copy(dst[x], src[x])
	}
}
