package counts

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// TraceStep is one instrumentation call recorded in a trace file. Op
// selects the call; N, Cycle and Stage are consumed by the ops that need
// them and ignored otherwise.
type TraceStep struct {
	Op    string `yaml:"op"`
	N     uint64 `yaml:"n"`
	Cycle uint64 `yaml:"cycle"`
	Stage Stage  `yaml:"stage"`
}

// Trace is a recorded sequence of instrumentation calls, the YAML-file
// counterpart of a simulator run.
type Trace struct {
	Steps []TraceStep `yaml:"steps"`
}

// LoadTrace parses a YAML trace file.
func LoadTrace(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trace %s: %w", path, err)
	}
	var trace Trace
	if err := yaml.Unmarshal(data, &trace); err != nil {
		return nil, fmt.Errorf("parse trace %s: %w", path, err)
	}
	logrus.Debugf("counts: loaded trace %s with %d steps", path, len(trace.Steps))
	return &trace, nil
}

// Apply replays the trace onto ctx in order, stopping at the first
// failing step.
func (t *Trace) Apply(ctx *Context) error {
	for i, step := range t.Steps {
		if err := step.apply(ctx); err != nil {
			return fmt.Errorf("trace step %d (%s): %w", i, step.Op, err)
		}
	}
	return nil
}

func (s TraceStep) apply(ctx *Context) error {
	switch s.Op {
	case "add_loads":
		return ctx.AddLoads(s.N, s.Cycle)
	case "add_stores":
		return ctx.AddStores(s.N, s.Cycle)
	case "add_computes":
		ctx.AddComputes(s.N)
		return nil
	case "reduce_loads":
		return ctx.ReduceLoads(s.N, s.Cycle)
	case "reduce_stores":
		return ctx.ReduceStores(s.N, s.Cycle)
	case "reduce_computes":
		return ctx.ReduceComputes(s.N)
	case "set_stage":
		if !ValidStage(s.Stage) {
			return fmt.Errorf("unknown stage %q", s.Stage)
		}
		return ctx.SetStage(s.Stage, s.Cycle)
	case "end_stage":
		if !ValidStage(s.Stage) {
			return fmt.Errorf("unknown stage %q", s.Stage)
		}
		return ctx.EndStage(s.Stage, s.Cycle)
	case "npu_start":
		return ctx.NpuStarted(s.Cycle)
	case "pim_start":
		return ctx.PimStarted(s.Cycle)
	case "npu_finished":
		return ctx.NpuFinished(s.Cycle)
	case "pim_finished":
		return ctx.PimFinished(s.Cycle)
	case "observe":
		return ctx.ObserveCycle(s.Cycle)
	default:
		return fmt.Errorf("unknown op %q", s.Op)
	}
}
