package universe

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

//BaseUniverse is the universe's runtime
//implements Universe interface
//the grid is owned by the main loop goroutine, all the commands are queued to it through controlCh
type BaseUniverse struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	grid struct {
		*Grid
		sync.Mutex
	}
	rnd       *rand.Rand
	stateCh   chan Status
	views     struct {
		list []Viewer
		sync.Mutex
	}
	runStop   chan struct{} //closed when the current run loop has to quit, owned by the main loop
	templates map[string]Template
	controlCh chan func()
	closeCh   chan struct{}
	closeOnce sync.Once
}

//NewBaseUniverse creates the BaseUniverse instance and starts its main loop
func NewBaseUniverse(o *Options, stateCh chan Status) (*BaseUniverse, error) {
	if o == nil {
		o = &DefaultUniverseOptions
	}
	g, err := Generate(o.Width, o.Height, o.Seeder)
	if err != nil {
		return nil, fmt.Errorf("create universe: %w", err)
	}

	u := BaseUniverse{
		options:   *o,
		rnd:       rand.New(rand.NewSource(o.Seed)),
		controlCh: make(chan func(), 1),
		closeCh:   make(chan struct{}),
		stateCh:   stateCh,
		templates: map[string]Template{},
	}
	if u.options.Density <= 0 || u.options.Density > 1 {
		u.options.Density = DefDensity
	}
	u.options.Advanced = make(map[string]interface{})
	for k, v := range o.Advanced {
		u.options.Advanced[k] = v
	}
	u.options.Advanced["Topology"] = "torus"
	u.options.Advanced["Density"] = u.options.Density
	u.state.Details = make(map[string]interface{})

	u.grid.Grid = g
	u.state.LiveCells = g.LiveCells()
	go u.mainLoop()
	return &u, nil
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (u *BaseUniverse) AddTemplate(tmpl Template) {
	u.grid.Lock()
	u.templates[tmpl.Name] = tmpl
	u.grid.Unlock()
}

//Settle settles the universe with data
//vc - array of row, col coordinates
//the coordinates outside the grid are skipped and reported with ErrIndexOutOfRange
func (u *BaseUniverse) Settle(vc [][]int) error {
	u.grid.Lock()
	err := u.settle(vc)
	u.grid.Unlock()
	u.refreshView()
	return err
}

//SettleTemplate populates the universe with the seeding template
func (u *BaseUniverse) SettleTemplate(name string) error {
	u.grid.Lock()
	tmpl, ok := u.templates[name]
	var err error
	if ok {
		err = u.settle(tmpl.Coordinates)
	}
	u.grid.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	u.refreshView()
	if err != nil {
		return fmt.Errorf("template %q: %w", name, err)
	}
	return nil
}

//SettleWithRandomData populates the universe with random data, returns immediately
//ignored while the simulation is running
func (u *BaseUniverse) SettleWithRandomData() {
	u.command(func() {
		mode := u.mode()
		if mode != RunningStateManual && mode != RunningStateFinished {
			return
		}
		u.grid.Lock()
		u.grid.Reseed(NewRandomSeeder(u.rnd.Int63(), u.options.Density))
		live := u.grid.LiveCells()
		u.grid.Unlock()
		u.resetState(live)
		u.switchRunningState(RunningStateManual)
	})
}

//InverseCell inverses the cell state at row, col
func (u *BaseUniverse) InverseCell(row int, col int) error {
	u.grid.Lock()
	err := u.grid.Toggle(row, col)
	live := u.grid.LiveCells()
	u.grid.Unlock()
	if err != nil {
		return err
	}
	u.state.Lock()
	u.state.LiveCells = live
	u.state.Unlock()
	u.refreshView()
	return nil
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (u *BaseUniverse) RegisterViewer(v Viewer) {
	u.views.Lock()
	u.views.list = append(u.views.list, v)
	u.views.Unlock()
	v.Register(u)
}

//StateCh returns the channel with the universe's status updates
func (u *BaseUniverse) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *BaseUniverse) Status() Status {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.Status
}

//Options returns current universe configuration represented by Options struct
func (u *BaseUniverse) Options() Options {
	return u.options
}

//Snapshot returns the copy of the current generation
func (u *BaseUniverse) Snapshot() *Grid {
	u.grid.Lock()
	defer u.grid.Unlock()
	return u.grid.Clone()
}

//Run starts the universe simulation, returns immediately
func (u *BaseUniverse) Run() {
	u.command(u.run)
}

//Stop stops the universe simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (u *BaseUniverse) Stop() {
	u.command(u.stop)
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (u *BaseUniverse) Step() {
	u.command(u.step)
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (u *BaseUniverse) Clear() {
	u.command(u.clear)
}

//Close stops the main loop, returns immediately
//the commands sent after Close are dropped
func (u *BaseUniverse) Close() {
	u.closeOnce.Do(func() {
		close(u.closeCh)
	})
}

//command queues the cmd for the main loop
func (u *BaseUniverse) command(cmd func()) bool {
	select {
	case <-u.closeCh:
		return false
	default:
	}
	select {
	case u.controlCh <- cmd:
		return true
	case <-u.closeCh:
		return false
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (u *BaseUniverse) mainLoop() {
	for {
		select {
		case cmd := <-u.controlCh:
			cmd()
		case <-u.closeCh:
			return
		}
	}
}

//settle places the live Cells at row, col
func (u *BaseUniverse) settle(vc [][]int) error {
	var skipped [][]int
	for _, v := range vc {
		if len(v) < 2 || v[0] < 0 || v[1] < 0 || v[0] >= u.grid.Height() || v[1] >= u.grid.Width() {
			skipped = append(skipped, v)
			continue
		}
		_ = u.grid.Set(v[0], v[1], Alive) //in range
	}
	live := u.grid.LiveCells()
	u.state.Lock()
	u.state.LiveCells = live
	u.state.Unlock()
	if len(skipped) > 0 {
		return fmt.Errorf("%w: %v coordinates skipped %v", ErrIndexOutOfRange, len(skipped), skipped)
	}
	return nil
}

func (u *BaseUniverse) mode() RunningState {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.RunningMode
}

//switchRunningState switch the state of the universe to RunningState
//refreshes the views, then writes the new state to the stateCh to signal upper control software
func (u *BaseUniverse) switchRunningState(to RunningState) {
	u.state.Lock()
	u.state.RunningMode = to
	st := u.state.Status
	u.state.Unlock()
	u.refreshView()
	if u.stateCh != nil {
		select {
		case u.stateCh <- st:
		case <-u.closeCh:
		}
	}
}

//run starts the universe simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
//every run gets its own stop channel, so the loop of a stopped run never steps again
func (u *BaseUniverse) run() {
	if u.mode() == RunningStateRun {
		return
	}
	u.endRun()
	stopCh := make(chan struct{})
	u.runStop = stopCh
	u.switchRunningState(RunningStateRun)
	go u.runLoop(stopCh)
}

//runLoop issues one step per interval until stopCh is closed
func (u *BaseUniverse) runLoop(stopCh chan struct{}) {
	skipped := 0
	done := make(chan struct{}, 1)
	busy := false
	for {
		if busy {
			select {
			case <-done:
				busy = false
			default:
			}
		}
		select {
		case <-stopCh:
			return
		default:
		}
		if skipped > u.options.MaxSkippedTicks {
			u.command(func() {
				if u.runStop == stopCh {
					u.finish()
				}
			})
			return
		}
		//skip the tick if the universe is still in the calculation mode
		if !busy {
			skipped = 0
			busy = true
			ok := u.command(func() {
				if u.runStop == stopCh {
					u.step()
				}
				done <- struct{}{}
			})
			if !ok {
				return
			}
			if u.options.Interval <= 0 {
				select {
				case <-done:
					busy = false
				case <-u.closeCh:
					return
				}
			}
		} else {
			skipped++
		}
		if u.options.Interval > 0 {
			select {
			case <-time.After(u.options.Interval):
			case <-stopCh:
				return
			case <-u.closeCh:
				return
			}
		}
	}
}

//endRun makes the current run loop quit
func (u *BaseUniverse) endRun() {
	if u.runStop != nil {
		close(u.runStop)
		u.runStop = nil
	}
}

//stop stops the universe running cycle
func (u *BaseUniverse) stop() {
	if u.mode() == RunningStateRun {
		u.endRun()
		u.switchRunningState(RunningStateManual)
	}
}

//finish is used by the run loop when the simulation can't keep up with the interval
func (u *BaseUniverse) finish() {
	if u.mode() == RunningStateRun {
		u.endRun()
		u.switchRunningState(RunningStateFinished)
	}
}

//step does the new one state calculation for entire universe
func (u *BaseUniverse) step() {
	finished := false
	rm := u.mode()
	if rm == RunningStateFinished {
		rm = RunningStateManual
	}
	defer func() {
		if finished {
			u.endRun()
			u.switchRunningState(RunningStateFinished)
		} else {
			u.switchRunningState(rm)
		}
	}()

	maxIter := u.options.MaxSteps
	if maxIter != 0 && u.Status().IterationNum >= maxIter {
		finished = true
		return
	}
	u.switchRunningState(RunningStateStep)

	u.grid.Lock()
	start := time.Now()
	u.grid.Tick()
	elapsed := time.Since(start)
	live, changed := u.grid.LiveCells(), u.grid.Changed()
	u.grid.Unlock()

	u.state.Lock()
	u.state.IterationNum++
	u.state.LiveCells = live
	u.state.IterationTime = elapsed
	u.state.Unlock()
	if live == 0 || !changed {
		finished = true
	}
}

//clear clears the universe data, reset all counters
func (u *BaseUniverse) clear() {
	u.endRun()
	u.grid.Lock()
	u.grid.Clear()
	u.grid.Unlock()

	u.resetState(0)
	u.switchRunningState(RunningStateManual)
}

//resetState resets all the counters
func (u *BaseUniverse) resetState(liveCells int) {
	u.state.Lock()
	u.state.IterationNum = 0
	u.state.LiveCells = liveCells
	u.state.IterationTime = 0
	u.state.Unlock()
}

//refreshView calls Refresh event for all registered views
func (u *BaseUniverse) refreshView() {
	u.views.Lock()
	views := u.views.list
	u.views.Unlock()
	for _, v := range views {
		v.Refresh()
	}
}
