package counts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTrace(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestLoadTrace_AndApply(t *testing.T) {
	path := writeTrace(t, `
steps:
  - {op: set_stage, stage: B, cycle: 0}
  - {op: add_loads, n: 2, cycle: 1}
  - {op: add_computes, n: 5}
  - {op: reduce_loads, n: 2, cycle: 4}
  - {op: npu_finished, cycle: 9}
  - {op: end_stage, stage: B, cycle: 9}
  - {op: set_stage, stage: Finished, cycle: 9}
`)

	trace, err := LoadTrace(path)
	require.NoError(t, err)
	require.Len(t, trace.Steps, 7)

	ctx := NewContext()
	require.NoError(t, trace.Apply(ctx))

	snap := ctx.Snapshot()
	assert.Equal(t, uint64(0), ctx.Loads())
	assert.Equal(t, uint64(5), ctx.Computes())
	assert.Equal(t, uint64(2), snap.AllCounts.Loads)
	assert.Equal(t, StageFinished, ctx.Stage())
	assert.Equal(t, Histogram{3: 1}, snap.BusyHisto.Loads)
}

func TestLoadTrace_MissingFile(t *testing.T) {
	_, err := LoadTrace(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadTrace_MalformedYAML(t *testing.T) {
	path := writeTrace(t, "steps: [op: {]")

	_, err := LoadTrace(path)
	require.Error(t, err)
}

func TestTraceApply_UnknownOp(t *testing.T) {
	trace := &Trace{Steps: []TraceStep{{Op: "warp_loads", N: 1, Cycle: 1}}}

	err := trace.Apply(NewContext())

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown op "warp_loads"`)
}

func TestTraceApply_UnknownStage(t *testing.T) {
	trace := &Trace{Steps: []TraceStep{{Op: "set_stage", Stage: "Z", Cycle: 1}}}

	err := trace.Apply(NewContext())

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown stage "Z"`)
}

func TestTraceApply_ReportsFailingStepIndex(t *testing.T) {
	trace := &Trace{Steps: []TraceStep{
		{Op: "add_loads", N: 1, Cycle: 1},
		{Op: "reduce_loads", N: 2, Cycle: 2},
	}}

	err := trace.Apply(NewContext())

	require.ErrorIs(t, err, ErrUnderflow)
	assert.Contains(t, err.Error(), "trace step 1 (reduce_loads)")
}
