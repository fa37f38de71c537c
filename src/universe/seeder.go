package universe

import "math/rand"

//Seeder populates the freshly cleared cells of a grid
//cells are in row-major order, len(cells) == width*height
type Seeder interface {
	Seed(cells []Cell, width int, height int)
}

//SeederFunc adapts the ordinary function to the Seeder interface
type SeederFunc func(cells []Cell, width int, height int)

func (f SeederFunc) Seed(cells []Cell, width int, height int) {
	f(cells, width, height)
}

//RandomSeeder makes each cell alive with the probability Density
//the same RandSeed always produces the same grid
type RandomSeeder struct {
	RandSeed int64
	Density  float64
}

func NewRandomSeeder(seed int64, density float64) Seeder {
	if density <= 0 || density > 1 {
		density = DefDensity
	}
	return &RandomSeeder{RandSeed: seed, Density: density}
}

func (s *RandomSeeder) Seed(cells []Cell, _ int, _ int) {
	r := rand.New(rand.NewSource(s.RandSeed))
	for i := range cells {
		cells[i] = Cell(r.Float64() < s.Density)
	}
}

//EveryNthSeeder makes every N-th cell alive starting from the first one
type EveryNthSeeder struct {
	N int
}

func (s EveryNthSeeder) Seed(cells []Cell, _ int, _ int) {
	n := s.N
	if n <= 0 {
		n = 1
	}
	for i := 0; i < len(cells); i += n {
		cells[i] = Alive
	}
}

//TemplateSeeder makes alive the cells at the template coordinates
//the coordinates outside the grid are skipped
type TemplateSeeder Template

func (s TemplateSeeder) Seed(cells []Cell, width int, height int) {
	for _, v := range s.Coordinates {
		if len(v) < 2 || v[0] < 0 || v[1] < 0 || v[0] >= height || v[1] >= width {
			continue
		}
		cells[v[0]*width+v[1]] = Alive
	}
}
