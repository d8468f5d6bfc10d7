package counts

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// WriteCharts renders the idle and busy duration histograms of a report
// as bar charts on a single standalone HTML page.
func WriteCharts(report *Report, path string) error {
	page := components.NewPage()
	page.AddCharts(
		histogramChart("Loads", report.IdleHisto.Loads, report.BusyHisto.Loads),
		histogramChart("Stores", report.IdleHisto.Stores, report.BusyHisto.Stores),
		histogramChart("Loads or Stores", report.IdleHisto.LoadOrStores, report.BusyHisto.LoadOrStores),
	)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart page %s: %w", path, err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return fmt.Errorf("render chart page %s: %w", path, err)
	}
	return nil
}

// histogramChart pairs the idle and busy series of one class over the
// union of observed durations.
func histogramChart(title string, idle, busy Histogram) *charts.Bar {
	durations := map[uint64]struct{}{}
	for d := range idle {
		durations[d] = struct{}{}
	}
	for d := range busy {
		durations[d] = struct{}{}
	}
	sorted := make([]uint64, 0, len(durations))
	for d := range durations {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	labels := make([]string, len(sorted))
	idleData := make([]opts.BarData, len(sorted))
	busyData := make([]opts.BarData, len(sorted))
	for i, d := range sorted {
		labels[i] = fmt.Sprintf("%d", d)
		idleData[i] = opts.BarData{Value: idle[d]}
		busyData[i] = opts.BarData{Value: busy[d]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:     types.ThemeWesteros,
			PageTitle: "Operation Interval Histograms",
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "interval duration (cycles) vs. occurrences",
		}),
	)
	bar.SetXAxis(labels).
		AddSeries("Idle", idleData).
		AddSeries("Busy", busyData)
	return bar
}
