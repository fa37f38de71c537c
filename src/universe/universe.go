package universe

import (
	"errors"
	"time"
)

var (
	ErrInvalidDimensions = errors.New("invalid dimensions")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrMalformedText     = errors.New("malformed text")
	ErrUnknownTemplate   = errors.New("unknown template")
)

//Universe is the runtime around one Grid
//all the mutating calls are executed by the universe's main loop, so the callers don't need to synchronize
type Universe interface {
	Status() Status
	Options() Options
	Snapshot() *Grid
	StateCh() chan Status
	AddTemplate(tmpl Template)
	SettleTemplate(name string) error
	SettleWithRandomData()
	Settle(vc [][]int) error
	InverseCell(row int, col int) error
	RegisterViewer(v Viewer)
	Run()
	Stop()
	Step()
	Clear()
	Close()
}

//Options represents the Universe's configurable options
type Options struct {
	Width           int
	Height          int
	Interval        time.Duration
	MaxSteps        int
	MaxSkippedTicks int
	Seed            int64                  //seed for the random settling
	Density         float64                //probability of the live cell for the random settling
	Seeder          Seeder                 //initial seeding strategy, nil means the empty grid
	Advanced        map[string]interface{} //advanced options (front end specific)
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
	Details       map[string]interface{}
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the universe
type Viewer interface {
	Refresh()
	Register(u Universe)
	Start()
}

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string  //template name
	Descr       string  //template descr
	Coordinates [][]int //array of [row, col] coordinates
}

//The universe running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefWidth              = 40
	DefHeight             = 15
	DefMaxSkippedTicks    = 5
	DefDensity            = 0.5
)

const (
	RunningStateManual RunningState = iota
	RunningStateStep
	RunningStateRun
	RunningStateFinished
)

var DefaultUniverseOptions = Options{
	Width:           DefWidth,
	Height:          DefHeight,
	Interval:        DefSimulationInterval,
	MaxSteps:        DefMaxSteps,
	MaxSkippedTicks: DefMaxSkippedTicks,
	Density:         DefDensity,
}

func (s RunningState) String() string {
	switch s {
	case RunningStateManual:
		return "manual"
	case RunningStateStep:
		return "step"
	case RunningStateRun:
		return "run"
	case RunningStateFinished:
		return "finished"
	}
	return "unknown"
}
