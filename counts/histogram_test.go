package counts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistogram_RecordAccumulates(t *testing.T) {
	h := Histogram{}

	h.Record(3)
	h.Record(3)
	h.Record(0)

	assert.Equal(t, Histogram{3: 2, 0: 1}, h)
	assert.Equal(t, uint64(3), h.Total())
}

func TestHistogram_CloneIsIndependent(t *testing.T) {
	h := Histogram{5: 1}

	clone := h.Clone()
	h.Record(5)

	assert.Equal(t, Histogram{5: 1}, clone)
	assert.Equal(t, Histogram{5: 2}, h)
}
