package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

func sensorColumns() []table.Column {
	return []table.Column{
		{Title: "Device", Width: 22},
		{Title: "Sensor", Width: 18},
		{Title: "Temp", Width: 8},
		{Title: "Duty", Width: 6},
		{Title: "RPM", Width: 7},
		{Title: "MHz", Width: 7},
	}
}

func tableStyles(theme Theme) table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(lipgloss.Color(theme.Accent)).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.Border)).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color(theme.Text)).
		Background(lipgloss.Color(theme.Border)).
		Bold(false)
	return styles
}

// updateRows rebuilds the sensor grid from the current snapshot: one row per
// device sensor, values straight from the recent-value projection.
func (m *Model) updateRows() {
	var rows []table.Row
	var refs []rowRef

	series := 0
	for _, device := range m.snapshot.Devices {
		deviceName := device.Name
		for _, sensor := range device.Sensors {
			rows = append(rows, table.Row{
				deviceName,
				sensor.Name,
				sensorCell(sensor.Value.Temp, "°"),
				sensorCell(sensor.Value.Duty, "%"),
				sensorCell(sensor.Value.RPM, ""),
				sensorCell(sensor.Value.Freq, ""),
			})
			refs = append(refs, rowRef{uid: device.UID, sensor: sensor.Name, series: series})
			series++
			// Repeating the device name per row adds noise; show it once.
			deviceName = ""
		}
	}

	m.table.SetRows(rows)
	m.rowRefs = refs
	if cursor := m.table.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

// sensorCell renders a projected value with its unit, or a dash when the
// field has never been reported.
func sensorCell(value, unit string) string {
	if value == "" {
		return "–"
	}
	return value + unit
}

// selectedRef returns the rowRef under the cursor, or false when the grid
// is empty.
func (m Model) selectedRef() (rowRef, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.rowRefs) {
		return rowRef{}, false
	}
	return m.rowRefs[cursor], true
}

// selectedDeviceName resolves the device name for the selected row.
func (m Model) selectedDeviceName(ref rowRef) string {
	for _, device := range m.snapshot.Devices {
		if device.UID == ref.uid {
			return device.Name
		}
	}
	return ref.uid
}
