package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neupim-sim/neupim-sim/counts"
)

func TestReplayCommand_WritesReportAndCharts(t *testing.T) {
	dir := t.TempDir()
	trace := filepath.Join(dir, "trace.yaml")
	report := filepath.Join(dir, "counts.json")
	charts := filepath.Join(dir, "histograms.html")
	require.NoError(t, os.WriteFile(trace, []byte(`
steps:
  - {op: add_loads, n: 1, cycle: 1}
  - {op: reduce_loads, n: 1, cycle: 4}
`), 0o644))

	rootCmd.SetArgs([]string{"replay", "--trace", trace, "--output", report, "--charts", charts})
	require.NoError(t, rootCmd.Execute())

	parsed, err := counts.ReadReport(report)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), parsed.AllCounts.Loads)
	assert.Equal(t, counts.Histogram{3: 1}, parsed.BusyHisto.Loads)

	_, err = os.Stat(charts)
	assert.NoError(t, err)
}

func TestReplayCommand_FailingTraceSurfacesError(t *testing.T) {
	dir := t.TempDir()
	trace := filepath.Join(dir, "trace.yaml")
	require.NoError(t, os.WriteFile(trace, []byte(`
steps:
  - {op: reduce_loads, n: 1, cycle: 1}
`), 0o644))

	rootCmd.SetArgs([]string{"replay", "--trace", trace, "--output", filepath.Join(dir, "counts.json")})
	err := rootCmd.Execute()

	require.ErrorIs(t, err, counts.ErrUnderflow)
}
