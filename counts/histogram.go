package counts

import (
	"bytes"
	"sort"
	"strconv"
)

// Histogram counts how many intervals of each duration (in cycles) were
// observed. Keys are durations, values are occurrence counts.
type Histogram map[uint64]uint64

// MarshalJSON emits the histogram with keys in ascending duration order.
// The default map encoding would sort the stringified keys lexically.
func (h Histogram) MarshalJSON() ([]byte, error) {
	keys := make([]uint64, 0, len(h))
	for d := range h {
		keys = append(keys, d)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strconv.FormatUint(d, 10))
		buf.WriteString(`":`)
		buf.WriteString(strconv.FormatUint(h[d], 10))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Record adds one occurrence of the given duration.
func (h Histogram) Record(duration uint64) {
	h[duration]++
}

// Total returns the number of recorded intervals across all durations.
func (h Histogram) Total() uint64 {
	var n uint64
	for _, c := range h {
		n += c
	}
	return n
}

// Clone returns an independent copy of h.
func (h Histogram) Clone() Histogram {
	out := make(Histogram, len(h))
	for d, c := range h {
		out[d] = c
	}
	return out
}

// HistogramSet holds one Histogram per class. Two sets exist on a
// Context, one for idle intervals and one for busy intervals. The
// Computes histogram stays empty (see StatusSet).
type HistogramSet struct {
	Loads        Histogram `json:"loads"`
	Stores       Histogram `json:"stores"`
	Computes     Histogram `json:"computes"`
	LoadOrStores Histogram `json:"load_or_stores"`
}

func newHistogramSet() HistogramSet {
	return HistogramSet{
		Loads:        Histogram{},
		Stores:       Histogram{},
		Computes:     Histogram{},
		LoadOrStores: Histogram{},
	}
}

func (s *HistogramSet) of(class OpClass) Histogram {
	switch class {
	case Load:
		return s.Loads
	case Store:
		return s.Stores
	case Compute:
		return s.Computes
	default:
		return s.LoadOrStores
	}
}

func (s *HistogramSet) clone() HistogramSet {
	return HistogramSet{
		Loads:        s.Loads.Clone(),
		Stores:       s.Stores.Clone(),
		Computes:     s.Computes.Clone(),
		LoadOrStores: s.LoadOrStores.Clone(),
	}
}
