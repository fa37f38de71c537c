package main

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/integrii/flaggy"
	"torlife/src/universe"
	"torlife/src/view"
)

var (
	templates = []universe.Template{
		{
			Name:  "sample",
			Descr: "the test sample with 3 stable patterns",
			Coordinates: [][]int{
				{1, 1}, {2, 1},
				{1, 2}, {2, 2},
				{3, 3},
				{2, 4},
				{3, 4},
				{3, 5},
			},
		},
		{
			Name:        "blinker",
			Descr:       "period 2 oscillator",
			Coordinates: [][]int{{2, 1}, {2, 2}, {2, 3}},
		},
		{
			Name:        "glider",
			Descr:       "moves one cell down-right every 4 generations",
			Coordinates: [][]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}},
		},
	}

	seeders = map[string]func(eo *EnvOptions, uo *universe.Options) universe.Seeder{
		"empty": func(*EnvOptions, *universe.Options) universe.Seeder {
			return nil
		},
		"random": func(_ *EnvOptions, uo *universe.Options) universe.Seeder {
			return universe.NewRandomSeeder(uo.Seed, uo.Density)
		},
		"thirds": func(*EnvOptions, *universe.Options) universe.Seeder {
			return universe.EveryNthSeeder{N: 3}
		},
	}
)

type EnvOptions struct {
	interactive bool
	gui         bool
	randomData  bool
	dump        bool
	pattern     string
	template    string
	scale       int
}

func main() {
	eo, uo := initOptions()

	var stateCh chan universe.Status
	if !eo.interactive && !eo.gui {
		stateCh = make(chan universe.Status, 10) //the buffered channel to getting the universe status
	}

	uo.Seeder = seeders[eo.pattern](eo, uo)
	u, err := universe.NewBaseUniverse(uo, stateCh)
	if err != nil {
		log.Fatalln(err)
	}
	for _, tmpl := range templates {
		u.AddTemplate(tmpl)
	}
	if eo.template != "" {
		if err := u.SettleTemplate(eo.template); err != nil {
			log.Fatalln(err)
		}
	}
	if eo.randomData {
		u.SettleWithRandomData()
	}

	switch {
	case eo.gui:
		v := view.NewPixelView(eo.scale)
		u.RegisterViewer(v)
		v.Start()
	case eo.interactive:
		v := view.NewConsoleUI()
		u.RegisterViewer(v)
		v.Start()
	default:
		runBatch(u, stateCh, eo.dump)
	}
	u.Close()
}

//runBatch runs the simulation until it's finished, the progress is printed by ConsoleOut
func runBatch(u universe.Universe, stateCh chan universe.Status, dump bool) {
	v := view.NewConsoleOut(dump)
	u.RegisterViewer(v)
	v.Start()

	startTime := time.Now()
	u.Run()
	for st := range stateCh {
		if st.RunningMode == universe.RunningStateFinished {
			log.Printf("finished on generation %v in %v", st.IterationNum, time.Since(startTime).Round(time.Millisecond))
			return
		}
	}
}

func initOptions() (eo *EnvOptions, uo *universe.Options) {
	o := universe.DefaultUniverseOptions
	o.Seed = time.Now().UnixNano()
	uo = &o
	eo = &EnvOptions{pattern: "empty", template: "sample", scale: 8}

	flaggy.SetName("torlife")
	flaggy.SetDescription("\"The Life\" game on a toroidal field")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&uo.Width, "x", "width", "Width of a simulation field")
	flaggy.Int(&uo.Height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&uo.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 means no limit")
	flaggy.Int64(&uo.Seed, "", "seed", "Seed for the random data")
	flaggy.Float64(&uo.Density, "", "density", "Probability of the live cell for the random data")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.gui, "g", "gui", "Open the pixel window (requires the ebiten build tag)")
	flaggy.Bool(&eo.randomData, "r", "random", "Settle with random data")
	flaggy.Bool(&eo.dump, "d", "dump", "Print the final board")
	flaggy.Int(&eo.scale, "", "scale", "Pixels per cell in the pixel window")
	flaggy.String(&eo.pattern, "p", "pattern", "Initial seeding ["+strings.Join(seederNames(), "|")+"]")
	flaggy.String(&eo.template, "t", "template", "Template to settle, empty for none ["+strings.Join(templateNames(), "|")+"]")

	flaggy.Parse()

	if err := validateOptions(eo, uo); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	return
}

func validateOptions(eo *EnvOptions, uo *universe.Options) error {
	if _, ok := seeders[eo.pattern]; !ok {
		return fmt.Errorf("unknown pattern %q", eo.pattern)
	}
	if eo.template != "" && !contains(templateNames(), eo.template) {
		return fmt.Errorf("unknown template %q", eo.template)
	}
	if uo.Width <= 0 || uo.Height <= 0 {
		return fmt.Errorf("%w: %vx%v", universe.ErrInvalidDimensions, uo.Width, uo.Height)
	}
	if eo.interactive && eo.gui {
		return fmt.Errorf("interactive and gui modes are exclusive")
	}
	return nil
}

func seederNames() []string {
	names := make([]string, 0, len(seeders))
	for k := range seeders {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func templateNames() []string {
	names := make([]string, 0, len(templates))
	for _, t := range templates {
		names = append(names, t.Name)
	}
	return names
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
