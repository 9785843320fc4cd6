package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/coolview/coolview/internal/daemon"
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// renderSparkline draws the buffered history of the selected sensor below
// the grid, reading the full time series from the store, not the projection.
func (m Model) renderSparkline() string {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Muted))

	ref, ok := m.selectedRef()
	if !ok || m.store == nil {
		return muted.Render("no history")
	}

	series := sensorSeries(m.store.History(ref.uid), ref.sensor)
	if len(series) == 0 {
		return muted.Render("no history for " + ref.sensor)
	}

	width := m.width - 2
	if width < 10 {
		width = 10
	}

	line := lipgloss.NewStyle().
		Foreground(m.theme.SeriesColor(ref.series)).
		Render(sparkline(series, width))
	label := muted.Render(m.selectedDeviceName(ref) + " · " + ref.sensor)
	return label + "\n" + line
}

// sensorSeries extracts one sensor's numeric series from a device history.
// Temperature readings win; channels fall back to duty, then rpm.
func sensorSeries(snapshots []daemon.Status, sensor string) []float64 {
	var series []float64
	for _, snapshot := range snapshots {
		for _, temp := range snapshot.Temps {
			if temp.Name == sensor {
				series = append(series, temp.Temp)
			}
		}
		for _, channel := range snapshot.Channels {
			if channel.Name != sensor {
				continue
			}
			switch {
			case channel.Duty != nil:
				series = append(series, *channel.Duty)
			case channel.RPM != nil:
				series = append(series, float64(*channel.RPM))
			}
		}
	}
	return series
}

// sparkline renders the series as block characters, sampling evenly and
// scaling to the observed min/max.
func sparkline(series []float64, width int) string {
	if len(series) == 0 || width <= 0 {
		return ""
	}

	lo, hi := series[0], series[0]
	for _, v := range series {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	if width > len(series) {
		width = len(series)
	}
	step := float64(len(series)) / float64(width)

	var b strings.Builder
	for i := 0; i < width; i++ {
		idx := int(math.Min(float64(len(series)-1), math.Floor(float64(i)*step)))
		norm := (series[idx] - lo) / span
		level := int(math.Round(norm * float64(len(sparkBlocks)-1)))
		if level < 0 {
			level = 0
		}
		if level > len(sparkBlocks)-1 {
			level = len(sparkBlocks) - 1
		}
		b.WriteRune(sparkBlocks[level])
	}
	return b.String()
}
