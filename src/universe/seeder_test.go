package universe

import "testing"

func TestRandomSeederIsReproducible(t *testing.T) {
	a, _ := Generate(30, 20, NewRandomSeeder(2024, 0.5))
	b, _ := Generate(30, 20, NewRandomSeeder(2024, 0.5))
	if a.Text() != b.Text() {
		t.Error("the same seed produced different grids")
	}
	c, _ := Generate(30, 20, NewRandomSeeder(2025, 0.5))
	if a.Text() == c.Text() {
		t.Error("different seeds produced the same grid")
	}
}

func TestRandomSeederDensity(t *testing.T) {
	g, _ := Generate(100, 100, NewRandomSeeder(1, 0.3))
	if n := g.LiveCells(); n < 2500 || n > 3500 {
		t.Errorf("LiveCells() = %v for density 0.3 on 10000 cells", n)
	}
	s := NewRandomSeeder(1, 0).(*RandomSeeder)
	if s.Density != DefDensity {
		t.Errorf("density 0 became %v, expected the default %v", s.Density, DefDensity)
	}
}

func TestEveryNthSeeder(t *testing.T) {
	g, _ := Generate(4, 3, EveryNthSeeder{3})
	want := "■□□■\n□□■□\n□■□□"
	if g.Text() != want {
		t.Errorf("grid:\n%v\nexpected:\n%v", g, want)
	}
	if g.LiveCells() != 4 {
		t.Errorf("LiveCells() = %v, expected 4", g.LiveCells())
	}
}

func TestTemplateSeederSkipsOutside(t *testing.T) {
	s := TemplateSeeder{Name: "t", Coordinates: [][]int{{0, 1}, {2, 2}, {5, 0}, {0, 9}, {-1, 0}, {1}}}
	g, _ := Generate(3, 3, s)
	expectAlive(t, g, [2]int{0, 1}, [2]int{2, 2})
}

func TestSeederFuncAndReseed(t *testing.T) {
	diagonal := SeederFunc(func(cells []Cell, width int, height int) {
		for i := 0; i < width && i < height; i++ {
			cells[i*width+i] = Alive
		}
	})
	g, _ := Generate(3, 3, EveryNthSeeder{1})
	g.Reseed(diagonal)
	expectAlive(t, g, [2]int{0, 0}, [2]int{1, 1}, [2]int{2, 2})
	g.Reseed(nil)
	expectAlive(t, g)
}
