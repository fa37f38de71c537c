package universe

import (
	"fmt"
	"strings"
)

type Cell bool

const (
	Dead  Cell = false
	Alive Cell = true
)

//glyphs used by the text form of the grid
const (
	AliveGlyph = '■'
	DeadGlyph  = '□'
)

/*
	Grid is the toroidal Life field
	cells are stored in row-major order: (row, col) is cells[row*width+col]
	the next generation is calculated to the second buffer and then the buffers are swapped,
	so the rules never read the cells which are already updated
	Grid is not safe for concurrent use, the owner has to serialize the access
*/
type Grid struct {
	width     int
	height    int
	cells     []Cell
	next      []Cell
	liveCells int
	changed   bool
}

//NewGrid creates the empty grid
func NewGrid(width int, height int) (*Grid, error) {
	return Generate(width, height, nil)
}

//Generate creates the grid and seeds it with the seeder
//nil seeder leaves all the cells dead
func Generate(width int, height int, s Seeder) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %vx%v", ErrInvalidDimensions, width, height)
	}
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
		next:   make([]Cell, width*height),
	}
	g.Reseed(s)
	return g, nil
}

func (g *Grid) Width() int {
	return g.width
}

func (g *Grid) Height() int {
	return g.height
}

//LiveCells returns the count of live cells in the current generation
func (g *Grid) LiveCells() int {
	return g.liveCells
}

//Changed reports whether the last Tick changed any cell
func (g *Grid) Changed() bool {
	return g.changed
}

//IsAlive tests the cell at row, col
func (g *Grid) IsAlive(row int, col int) (bool, error) {
	i, err := g.index(row, col)
	if err != nil {
		return false, err
	}
	return bool(g.cells[i]), nil
}

//Set places the Cell at row, col
func (g *Grid) Set(row int, col int, c Cell) error {
	i, err := g.index(row, col)
	if err != nil {
		return err
	}
	g.put(i, c)
	return nil
}

//Toggle inverses the cell state at row, col
func (g *Grid) Toggle(row int, col int) error {
	i, err := g.index(row, col)
	if err != nil {
		return err
	}
	g.put(i, !g.cells[i])
	return nil
}

//Clear kills all the cells
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Dead
	}
	g.liveCells = 0
	g.changed = false
}

//Reseed clears the grid and populates it with the seeder
func (g *Grid) Reseed(s Seeder) {
	g.Clear()
	if s != nil {
		s.Seed(g.cells, g.width, g.height)
	}
	g.liveCells = g.count()
}

//Clone returns the independent copy of the grid
func (g *Grid) Clone() *Grid {
	c := *g
	c.cells = make([]Cell, len(g.cells))
	c.next = make([]Cell, len(g.next))
	copy(c.cells, g.cells)
	return &c
}

//Walk walks the entire grid in row-major order and calls the cb function for each cell
func (g *Grid) Walk(cb func(row int, col int, c Cell)) {
	for i, c := range g.cells {
		cb(i/g.width, i%g.width, c)
	}
}

//Tick calculates the next generation for the entire grid
func (g *Grid) Tick() {
	g.checkInvariant()
	liveCells := 0
	changed := false
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			i := row*g.width + col
			nextState := cellNextState(g.cells[i], g.liveNeighbours(row, col))
			if nextState {
				liveCells++
			}
			changed = changed || nextState != g.cells[i]
			g.next[i] = nextState
		}
	}
	g.cells, g.next = g.next, g.cells
	g.liveCells = liveCells
	g.changed = changed
}

//Text returns the grid as one line per row, rows are separated by '\n'
func (g *Grid) Text() string {
	var b strings.Builder
	b.Grow(g.height * (g.width*3 + 1))
	for i, c := range g.cells {
		if i != 0 && i%g.width == 0 {
			b.WriteByte('\n')
		}
		if c {
			b.WriteRune(AliveGlyph)
		} else {
			b.WriteRune(DeadGlyph)
		}
	}
	return b.String()
}

func (g *Grid) String() string {
	return g.Text()
}

//ParseText builds the grid from the form produced by Text
func ParseText(s string) (*Grid, error) {
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	width := len([]rune(lines[0]))
	g, err := NewGrid(width, len(lines))
	if err != nil {
		return nil, err
	}
	for row, l := range lines {
		runes := []rune(l)
		if len(runes) != width {
			return nil, fmt.Errorf("%w: row %v has %v cells, expected %v", ErrMalformedText, row, len(runes), width)
		}
		for col, r := range runes {
			switch r {
			case AliveGlyph:
				g.cells[row*width+col] = Alive
			case DeadGlyph:
			default:
				return nil, fmt.Errorf("%w: unexpected glyph %q at (%v, %v)", ErrMalformedText, r, row, col)
			}
		}
	}
	g.liveCells = g.count()
	return g, nil
}

//liveNeighbours counts the live cells around row, col
//the offsets are wrapped, so the cells on the edges have 8 neighbours too
func (g *Grid) liveNeighbours(row int, col int) int {
	n := 0
	for dr := -1; dr < 2; dr++ {
		r := (row + dr + g.height) % g.height
		for dc := -1; dc < 2; dc++ {
			//skip my position
			if dr == 0 && dc == 0 {
				continue
			}
			c := (col + dc + g.width) % g.width
			if g.cells[r*g.width+c] {
				n++
			}
		}
	}
	return n
}

//cellNextState applies the B3/S23 rules
func cellNextState(c Cell, liveNeighbours int) Cell {
	switch {
	case liveNeighbours < 2:
		return Dead
	case liveNeighbours > 3:
		return Dead
	case liveNeighbours == 3:
		return Alive
	}
	return c
}

func (g *Grid) index(row int, col int) (int, error) {
	if row < 0 || col < 0 || row >= g.height || col >= g.width {
		return 0, fmt.Errorf("%w: (%v, %v) outside %vx%v", ErrIndexOutOfRange, row, col, g.width, g.height)
	}
	return row*g.width + col, nil
}

func (g *Grid) put(i int, c Cell) {
	if g.cells[i] == c {
		return
	}
	g.cells[i] = c
	if c {
		g.liveCells++
	} else {
		g.liveCells--
	}
}

func (g *Grid) count() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

func (g *Grid) checkInvariant() {
	if len(g.cells) != g.width*g.height || len(g.next) != len(g.cells) {
		panic(fmt.Sprintf("universe: grid %vx%v holds %v/%v cells", g.width, g.height, len(g.cells), len(g.next)))
	}
}
