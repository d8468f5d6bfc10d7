package counts

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrUnderflow is returned by Reduce* when the requested amount exceeds
// the current in-flight count. The Context is left unchanged.
var ErrUnderflow = errors.New("in-flight count underflow")

// ErrCycleRegression is returned when a call supplies a cycle smaller
// than the last observed cycle. Callers must feed a non-decreasing cycle
// stream; a violation leaves the Context unchanged.
var ErrCycleRegression = errors.New("cycle regression")

// Counts holds one counter per concrete operation class.
type Counts struct {
	Loads    uint64 `json:"loads"`
	Stores   uint64 `json:"stores"`
	Computes uint64 `json:"computes"`
}

// Context owns all per-run instrumentation state: in-flight and lifetime
// counters, per-class busy/idle status, idle and busy duration
// histograms, the current run stage, and the event log. Create one per
// simulation run with NewContext; it is not safe for concurrent use.
type Context struct {
	current  Counts
	lifetime Counts

	status   StatusSet
	idleHist HistogramSet
	busyHist HistogramSet

	stage     Stage
	lastCycle uint64
	events    []Event
}

// NewContext returns an empty Context: all counters zero, every class
// idle since cycle 0, stage A.
func NewContext() *Context {
	logrus.Debug("counts: new context")
	return &Context{
		idleHist: newHistogramSet(),
		busyHist: newHistogramSet(),
		stage:    StageA,
	}
}

// checkCycle validates the monotonic-cycle precondition without mutating
// anything; callers commit lastCycle only after all checks pass.
func (c *Context) checkCycle(cycle uint64) error {
	if cycle < c.lastCycle {
		logrus.Errorf("counts: cycle %d precedes last observed cycle %d", cycle, c.lastCycle)
		return fmt.Errorf("cycle %d after cycle %d: %w", cycle, c.lastCycle, ErrCycleRegression)
	}
	return nil
}

// ObserveCycle advances the last-observed cycle. The simulator calls it
// once per simulated cycle so that idle intervals keep a reference point
// even when no operation is issued.
func (c *Context) ObserveCycle(cycle uint64) error {
	if err := c.checkCycle(cycle); err != nil {
		return err
	}
	c.lastCycle = cycle
	return nil
}

// memStart flips class to busy at cycle, recording the finished idle
// interval if it had non-zero length. Zero-length idle intervals carry
// no information and are dropped. A Load or Store start propagates to
// the combined class, which only reacts if it was itself idle.
func (c *Context) memStart(class OpClass, cycle uint64) {
	st := c.status.of(class)
	if st.Busy {
		return
	}
	if d := cycle - st.Since; d > 0 {
		c.idleHist.of(class).Record(d)
	}
	*st = busySince(cycle)
	c.append(cycle, EventMemStart, class)
	if class == Load || class == Store {
		c.memStart(LoadOrStore, cycle)
	}
}

// memEnd flips class to idle at cycle, recording the busy interval.
// Zero-length busy intervals are recorded: an operation issued and
// completed in the same cycle is still an observation. The combined
// class ends only when the other of Load/Store is idle too.
func (c *Context) memEnd(class OpClass, cycle uint64) {
	st := c.status.of(class)
	if !st.Busy {
		return
	}
	c.busyHist.of(class).Record(cycle - st.Since)
	*st = idleSince(cycle)
	c.append(cycle, EventMemEnd, class)
	if (class == Load && !c.status.Stores.Busy) || (class == Store && !c.status.Loads.Busy) {
		c.memEnd(LoadOrStore, cycle)
	}
}

func (c *Context) append(cycle uint64, kind EventKind, class OpClass) {
	c.events = append(c.events, Event{Cycle: cycle, Stage: c.stage, Kind: kind, Class: class})
}

// AddLoads records n load operations issued at cycle. The busy edge
// fires only when the in-flight count was zero before the call.
func (c *Context) AddLoads(n, cycle uint64) error {
	if err := c.checkCycle(cycle); err != nil {
		return err
	}
	c.lastCycle = cycle
	if n == 0 {
		return nil
	}
	prev := c.current.Loads
	c.current.Loads += n
	c.lifetime.Loads += n
	if prev == 0 {
		c.memStart(Load, cycle)
	}
	return nil
}

// AddStores records n store operations issued at cycle.
func (c *Context) AddStores(n, cycle uint64) error {
	if err := c.checkCycle(cycle); err != nil {
		return err
	}
	c.lastCycle = cycle
	if n == 0 {
		return nil
	}
	prev := c.current.Stores
	c.current.Stores += n
	c.lifetime.Stores += n
	if prev == 0 {
		c.memStart(Store, cycle)
	}
	return nil
}

// AddComputes records n compute operations issued. Computes are counted
// but excluded from busy/idle tracking, so no cycle is needed.
func (c *Context) AddComputes(n uint64) {
	c.current.Computes += n
	c.lifetime.Computes += n
}

// ReduceLoads records the completion of n load operations at cycle. It
// fails with ErrUnderflow, leaving the Context untouched, if n exceeds
// the in-flight count. The idle edge fires when the count reaches zero.
func (c *Context) ReduceLoads(n, cycle uint64) error {
	if err := c.checkCycle(cycle); err != nil {
		return err
	}
	if n > c.current.Loads {
		logrus.Errorf("counts: reducing loads by %d with only %d in flight", n, c.current.Loads)
		return fmt.Errorf("reduce loads by %d with %d in flight: %w", n, c.current.Loads, ErrUnderflow)
	}
	c.lastCycle = cycle
	prev := c.current.Loads
	c.current.Loads -= n
	if prev > 0 && c.current.Loads == 0 {
		c.memEnd(Load, cycle)
	}
	return nil
}

// ReduceStores records the completion of n store operations at cycle.
func (c *Context) ReduceStores(n, cycle uint64) error {
	if err := c.checkCycle(cycle); err != nil {
		return err
	}
	if n > c.current.Stores {
		logrus.Errorf("counts: reducing stores by %d with only %d in flight", n, c.current.Stores)
		return fmt.Errorf("reduce stores by %d with %d in flight: %w", n, c.current.Stores, ErrUnderflow)
	}
	c.lastCycle = cycle
	prev := c.current.Stores
	c.current.Stores -= n
	if prev > 0 && c.current.Stores == 0 {
		c.memEnd(Store, cycle)
	}
	return nil
}

// ReduceComputes records the completion of n compute operations.
func (c *Context) ReduceComputes(n uint64) error {
	if n > c.current.Computes {
		logrus.Errorf("counts: reducing computes by %d with only %d in flight", n, c.current.Computes)
		return fmt.Errorf("reduce computes by %d with %d in flight: %w", n, c.current.Computes, ErrUnderflow)
	}
	c.current.Computes -= n
	return nil
}

// Loads returns the in-flight load count.
func (c *Context) Loads() uint64 { return c.current.Loads }

// Stores returns the in-flight store count.
func (c *Context) Stores() uint64 { return c.current.Stores }

// Computes returns the in-flight compute count.
func (c *Context) Computes() uint64 { return c.current.Computes }

// Total returns the in-flight count summed over all classes.
func (c *Context) Total() uint64 {
	return c.current.Loads + c.current.Stores + c.current.Computes
}

// Stage returns the current run stage.
func (c *Context) Stage() Stage { return c.stage }

// SetStage makes stage current and logs a StageStart event tagged with
// the new stage.
func (c *Context) SetStage(stage Stage, cycle uint64) error {
	if err := c.checkCycle(cycle); err != nil {
		return err
	}
	c.lastCycle = cycle
	c.stage = stage
	c.append(cycle, EventStageStart, "")
	logrus.Infof("counts: stage %s started at cycle %d", stage, cycle)
	return nil
}

// EndStage logs a StageEnd event for stage. It does not change the
// current stage; the caller follows up with SetStage for the next phase.
func (c *Context) EndStage(stage Stage, cycle uint64) error {
	if err := c.checkCycle(cycle); err != nil {
		return err
	}
	c.lastCycle = cycle
	c.events = append(c.events, Event{Cycle: cycle, Stage: stage, Kind: EventStageEnd})
	return nil
}

// milestone appends an engine milestone event tagged with whatever stage
// is currently active.
func (c *Context) milestone(kind EventKind, cycle uint64) error {
	if err := c.checkCycle(cycle); err != nil {
		return err
	}
	c.lastCycle = cycle
	c.append(cycle, kind, "")
	return nil
}

// NpuStarted records that the NPU engine began executing.
func (c *Context) NpuStarted(cycle uint64) error { return c.milestone(EventNpuStart, cycle) }

// PimStarted records that the PIM engine began executing.
func (c *Context) PimStarted(cycle uint64) error { return c.milestone(EventPimStart, cycle) }

// NpuFinished records that the NPU engine completed its work.
func (c *Context) NpuFinished(cycle uint64) error { return c.milestone(EventNpuFinished, cycle) }

// PimFinished records that the PIM engine completed its work.
func (c *Context) PimFinished(cycle uint64) error { return c.milestone(EventPimFinished, cycle) }
