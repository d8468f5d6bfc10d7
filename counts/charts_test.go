package counts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCharts_RendersHTMLPage(t *testing.T) {
	ctx := populatedContext(t)
	path := filepath.Join(t.TempDir(), "histograms.html")

	require.NoError(t, WriteCharts(ctx.Snapshot(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "echarts")
	assert.Contains(t, string(data), "Loads or Stores")
}

func TestWriteCharts_EmptyReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "histograms.html")

	require.NoError(t, WriteCharts(NewContext().Snapshot(), path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteCharts_UnwritablePath(t *testing.T) {
	err := WriteCharts(NewContext().Snapshot(), filepath.Join(t.TempDir(), "missing", "h.html"))
	require.Error(t, err)
}
