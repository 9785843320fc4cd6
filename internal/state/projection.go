package state

import (
	"math"
	"strconv"
	"time"

	"github.com/coolview/coolview/internal/daemon"
)

// CurrentValue holds the last-seen formatted readings for one sensor or
// channel. Empty strings mean the field has never been reported; a reported
// zero formats as "0" or "0.0" and stays distinguishable from absent.
type CurrentValue struct {
	Temp string
	Duty string
	RPM  string
	Freq string
}

// SensorReading pairs a sensor/channel name with its projected values.
type SensorReading struct {
	Name  string
	Value CurrentValue
}

// DeviceView is the render-ready copy of one device handed to the UI.
type DeviceView struct {
	UID        string
	Name       string
	Type       daemon.DeviceType
	TypeIndex  int
	Sensors    []SensorReading
	HistoryLen int
}

// Snapshot is the independent view of the store returned to the UI.
type Snapshot struct {
	Devices             []DeviceView
	Initialized         bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
	StaleSamples        int
}

// IsOffline returns true when the daemon has been unreachable for multiple
// consecutive polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// refreshCurrent recomputes the projection from each device's buffer tail.
// Only fields present in the tail snapshot are written, so values persist
// as last-seen and absent fields never collapse to zero. The per-device
// maps were allocated at catalog load and are updated in place. Callers
// hold s.mu.
func (s *Store) refreshCurrent() {
	for _, device := range s.devices {
		latest, ok := device.History.Latest()
		if !ok {
			continue
		}
		values := s.current[device.UID]
		for _, temp := range latest.Temps {
			value := values[temp.Name]
			value.Temp = formatTemp(temp.Temp)
			values[temp.Name] = value
		}
		for _, channel := range latest.Channels {
			value := values[channel.Name]
			if channel.Duty != nil {
				value.Duty = formatWhole(*channel.Duty)
			}
			if channel.RPM != nil {
				value.RPM = strconv.FormatUint(uint64(*channel.RPM), 10)
			}
			if channel.Freq != nil {
				value.Freq = strconv.FormatUint(uint64(*channel.Freq), 10)
			}
			values[channel.Name] = value
		}
	}
}

// formatTemp renders degrees to one decimal place.
func formatTemp(temp float64) string {
	return strconv.FormatFloat(temp, 'f', 1, 64)
}

// formatWhole renders duty percentages to the nearest integer.
func formatWhole(value float64) string {
	return strconv.FormatInt(int64(math.Round(value)), 10)
}
