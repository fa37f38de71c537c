package view

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"
	"torlife/src/universe"
)

//ConsoleOut prints the simulation progress for the non-interactive mode
type ConsoleOut struct {
	u         universe.Universe
	w         io.Writer
	au        aurora.Aurora
	startTime time.Time
	dumpBoard bool
	every     int
}

//NewConsoleOut creates the printer writing to stdout
//dumpBoard - print the final board in the text form when the simulation is finished
func NewConsoleOut(dumpBoard bool) *ConsoleOut {
	return newConsoleOut(os.Stdout, true, dumpBoard)
}

func newConsoleOut(w io.Writer, colors bool, dumpBoard bool) *ConsoleOut {
	return &ConsoleOut{w: w, au: aurora.NewAurora(colors), dumpBoard: dumpBoard, every: 10}
}

func (c *ConsoleOut) Refresh() {
	st := c.u.Status()
	switch st.RunningMode {
	case universe.RunningStateFinished:
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last generation": st.IterationNum,
			"Total time":      totalTime,
			"Live cells":      st.LiveCells,
		}
		fmt.Fprintln(c.w, c.au.Red("\nFinished:"))
		c.printHashData(resultData)
		if c.dumpBoard {
			fmt.Fprintln(c.w, c.u.Snapshot().Text())
		}
	case universe.RunningStateRun:
		if st.IterationNum > 0 && st.IterationNum%c.every == 0 {
			fmt.Fprintf(c.w, "  Generations done: %v, live cells: %v\n", c.au.Cyan(st.IterationNum), st.LiveCells)
		}
	}
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := c.u.Options()
	fmt.Fprintln(c.w, c.au.Green("Running configuration:"))
	fmt.Fprintf(c.w, "  Dimension: %v x %v\n", o.Width, o.Height)
	fmt.Fprintf(c.w, "  Interval: %v\n", o.Interval)
	fmt.Fprintf(c.w, "  Max generations: %v\n", o.MaxSteps)
	c.printHashData(o.Advanced)
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	fmt.Fprintln(c.w, c.au.Green("\nSimulation started..."))
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
