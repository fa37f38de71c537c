package universe

import (
	"errors"
	"strings"
	"testing"
)

func mustGrid(t *testing.T, width int, height int, alive ...[2]int) *Grid {
	t.Helper()
	g, err := NewGrid(width, height)
	if err != nil {
		t.Fatalf("NewGrid(%v, %v): %v", width, height, err)
	}
	for _, p := range alive {
		if err := g.Set(p[0], p[1], Alive); err != nil {
			t.Fatalf("Set(%v, %v): %v", p[0], p[1], err)
		}
	}
	return g
}

//expectAlive checks that exactly the listed cells are alive
func expectAlive(t *testing.T, g *Grid, alive ...[2]int) {
	t.Helper()
	want := make(map[[2]int]bool, len(alive))
	for _, p := range alive {
		want[p] = true
	}
	g.Walk(func(row int, col int, c Cell) {
		if bool(c) != want[[2]int{row, col}] {
			t.Errorf("cell (%v, %v) alive=%v, expected %v", row, col, c, want[[2]int{row, col}])
		}
	})
	if g.LiveCells() != len(alive) {
		t.Errorf("LiveCells() = %v, expected %v", g.LiveCells(), len(alive))
	}
}

func TestGenerateInvalidDimensions(t *testing.T) {
	for _, d := range [][2]int{{0, 5}, {5, 0}, {0, 0}, {-1, 3}, {3, -2}} {
		g, err := Generate(d[0], d[1], EveryNthSeeder{3})
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("Generate(%v, %v) error = %v, expected ErrInvalidDimensions", d[0], d[1], err)
		}
		if g != nil {
			t.Errorf("Generate(%v, %v) returned the grid", d[0], d[1])
		}
	}
}

func TestCellCountInvariant(t *testing.T) {
	g, err := Generate(7, 4, NewRandomSeeder(42, 0.5))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		if len(g.cells) != g.Width()*g.Height() || len(g.next) != len(g.cells) {
			t.Fatalf("tick %v: %v cells for %vx%v", i, len(g.cells), g.Width(), g.Height())
		}
		g.Tick()
	}
}

func TestLoneCellDies(t *testing.T) {
	g := mustGrid(t, 3, 3, [2]int{1, 1})
	g.Tick()
	expectAlive(t, g)
	if !g.Changed() {
		t.Error("Changed() = false after the cell died")
	}
}

func TestDeadGridStaysDead(t *testing.T) {
	g := mustGrid(t, 6, 5)
	for i := 0; i < 10; i++ {
		g.Tick()
		expectAlive(t, g)
		if g.Changed() {
			t.Fatalf("tick %v changed the dead grid", i)
		}
	}
}

func TestBlinker(t *testing.T) {
	horizontal := [][2]int{{2, 1}, {2, 2}, {2, 3}}
	vertical := [][2]int{{1, 2}, {2, 2}, {3, 2}}
	g := mustGrid(t, 5, 5, horizontal...)

	g.Tick()
	expectAlive(t, g, vertical...)
	g.Tick()
	expectAlive(t, g, horizontal...)
}

func TestBlockIsStillLife(t *testing.T) {
	block := [][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}}
	g := mustGrid(t, 4, 4, block...)
	g.Tick()
	expectAlive(t, g, block...)
	if g.Changed() {
		t.Error("Changed() = true for the still life")
	}
}

func TestCornerNeighboursWrap(t *testing.T) {
	const n = 5
	g := mustGrid(t, n, n, [2]int{n - 1, n - 1}, [2]int{n - 1, 0}, [2]int{0, n - 1})
	if got := g.liveNeighbours(0, 0); got != 3 {
		t.Fatalf("liveNeighbours(0, 0) = %v, expected 3", got)
	}
	g.Tick()
	alive, err := g.IsAlive(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !alive {
		t.Error("corner cell is not born from the wrapped neighbours")
	}
}

func TestCornerSurvivesOnWrappedNeighbours(t *testing.T) {
	const n = 6
	g := mustGrid(t, n, n, [2]int{0, 0}, [2]int{n - 1, n - 1}, [2]int{0, n - 1})
	g.Tick()
	alive, _ := g.IsAlive(0, 0)
	if !alive {
		t.Error("corner cell with 2 wrapped neighbours died")
	}
}

func TestLiveNeighboursRange(t *testing.T) {
	g, _ := Generate(3, 3, EveryNthSeeder{1})
	g.Walk(func(row int, col int, _ Cell) {
		if n := g.liveNeighbours(row, col); n != 8 {
			t.Errorf("liveNeighbours(%v, %v) = %v on the full 3x3 torus, expected 8", row, col, n)
		}
	})
	g.Tick()
	expectAlive(t, g)
}

func TestTickIsSimultaneous(t *testing.T) {
	//the glider moves one cell down-right in 4 generations only if every cell is updated from the same snapshot
	glider := [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
	g := mustGrid(t, 8, 8, glider...)
	for i := 0; i < 4; i++ {
		g.Tick()
	}
	moved := make([][2]int, 0, len(glider))
	for _, p := range glider {
		moved = append(moved, [2]int{p[0] + 1, p[1] + 1})
	}
	expectAlive(t, g, moved...)
}

func TestGliderWrapsAround(t *testing.T) {
	glider := [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
	g := mustGrid(t, 6, 6, glider...)
	before := g.Text()
	//on a 6x6 torus the glider comes back after 4*6 generations
	for i := 0; i < 24; i++ {
		g.Tick()
	}
	if after := g.Text(); after != before {
		t.Errorf("glider did not return:\n%v\nexpected:\n%v", after, before)
	}
}

func TestIsAliveOutOfRange(t *testing.T) {
	g := mustGrid(t, 4, 3)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 4}, {3, 4}} {
		if _, err := g.IsAlive(p[0], p[1]); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("IsAlive(%v, %v) error = %v, expected ErrIndexOutOfRange", p[0], p[1], err)
		}
		if err := g.Set(p[0], p[1], Alive); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Set(%v, %v) error = %v, expected ErrIndexOutOfRange", p[0], p[1], err)
		}
		if err := g.Toggle(p[0], p[1]); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Toggle(%v, %v) error = %v, expected ErrIndexOutOfRange", p[0], p[1], err)
		}
	}
	if _, err := g.IsAlive(2, 3); err != nil {
		t.Errorf("IsAlive(2, 3): %v", err)
	}
}

func TestToggleAndClear(t *testing.T) {
	g := mustGrid(t, 3, 2)
	_ = g.Toggle(1, 2)
	_ = g.Toggle(0, 0)
	_ = g.Toggle(0, 0)
	expectAlive(t, g, [2]int{1, 2})
	g.Clear()
	expectAlive(t, g)
}

func TestCloneIsIndependent(t *testing.T) {
	g := mustGrid(t, 5, 5, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
	c := g.Clone()
	g.Tick()
	expectAlive(t, c, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
	c.Tick()
	if c.Text() != g.Text() {
		t.Error("clone diverged from the original after the same tick")
	}
}

func TestText(t *testing.T) {
	g := mustGrid(t, 3, 2, [2]int{0, 0}, [2]int{1, 2})
	want := "■□□\n□□■"
	if got := g.Text(); got != want {
		t.Errorf("Text() = %q, expected %q", got, want)
	}
	if g.String() != g.Text() {
		t.Error("String() differs from Text()")
	}
	if strings.HasSuffix(g.Text(), "\n") {
		t.Error("Text() ends with the separator")
	}
}

func TestTextIsIdempotent(t *testing.T) {
	g, _ := Generate(9, 6, NewRandomSeeder(7, 0.4))
	if g.Text() != g.Text() {
		t.Error("Text() differs between two calls")
	}
}

func TestParseTextRoundTrip(t *testing.T) {
	g, _ := Generate(11, 5, NewRandomSeeder(3, 0.5))
	p, err := ParseText(g.Text())
	if err != nil {
		t.Fatal(err)
	}
	if p.Width() != 11 || p.Height() != 5 {
		t.Fatalf("parsed %vx%v, expected 11x5", p.Width(), p.Height())
	}
	if p.Text() != g.Text() || p.LiveCells() != g.LiveCells() {
		t.Errorf("round trip mismatch:\n%v\nexpected:\n%v", p, g)
	}
	if _, err := ParseText(g.Text() + "\n"); err != nil {
		t.Errorf("trailing newline: %v", err)
	}
}

func TestParseTextErrors(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"", ErrInvalidDimensions},
		{"■□\n■", ErrMalformedText},
		{"■x□", ErrMalformedText},
		{"■□\n\n■□", ErrMalformedText},
		{"□□\n□□\n\n", ErrMalformedText},
	}
	for _, c := range cases {
		if _, err := ParseText(c.in); !errors.Is(err, c.want) {
			t.Errorf("ParseText(%q) error = %v, expected %v", c.in, err, c.want)
		}
	}
}
