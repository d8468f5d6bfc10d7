package counts

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// DefaultReportFile is the legacy report destination, kept as a default
// for callers that do not care where the report lands.
const DefaultReportFile = "counts.json"

// Report is a point-in-time snapshot of a Context, the unit of export.
// Building or exporting a Report never mutates the Context it came from.
type Report struct {
	CurrentCounts Counts       `json:"current_counts"`
	AllCounts     Counts       `json:"all_counts"`
	CurrentStatus StatusSet    `json:"current_status"`
	IdleHisto     HistogramSet `json:"idle_histo"`
	BusyHisto     HistogramSet `json:"busy_histo"`
	CurrentStage  Stage        `json:"current_stage"`
	LastCycle     uint64       `json:"last_cycle"`
	Events        []Event      `json:"events"`
}

// Snapshot builds an independent Report from the current state of c.
func (c *Context) Snapshot() *Report {
	events := make([]Event, len(c.events))
	copy(events, c.events)
	return &Report{
		CurrentCounts: c.current,
		AllCounts:     c.lifetime,
		CurrentStatus: c.status,
		IdleHisto:     c.idleHist.clone(),
		BusyHisto:     c.busyHist.clone(),
		CurrentStage:  c.stage,
		LastCycle:     c.lastCycle,
		Events:        events,
	}
}

// Export writes a snapshot of c to path as pretty-printed JSON,
// overwriting any previous report there. Histogram keys serialize in
// ascending duration order.
func (c *Context) Export(path string) error {
	report := c.Snapshot()
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report to %s: %w", path, err)
	}
	logrus.Infof("counts: report written to %s (%d events)", path, len(report.Events))
	return nil
}

// ReadReport parses a report previously written by Export.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report from %s: %w", path, err)
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	return &report, nil
}
