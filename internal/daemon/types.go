package daemon

import (
	"time"
)

// DeviceType identifies the driver family a device belongs to.
type DeviceType string

const (
	DeviceTypeCPU           DeviceType = "CPU"
	DeviceTypeGPU           DeviceType = "GPU"
	DeviceTypeLiquidctl     DeviceType = "Liquidctl"
	DeviceTypeHwmon         DeviceType = "Hwmon"
	DeviceTypeCustomSensors DeviceType = "CustomSensors"
)

// Ordinal returns a stable sort rank for catalog ordering. Unknown types
// sort last so new daemon-side types don't shuffle known devices around.
func (t DeviceType) Ordinal() int {
	switch t {
	case DeviceTypeCPU:
		return 0
	case DeviceTypeGPU:
		return 1
	case DeviceTypeLiquidctl:
		return 2
	case DeviceTypeHwmon:
		return 3
	case DeviceTypeCustomSensors:
		return 4
	default:
		return 5
	}
}

// HandshakeResponse mirrors GET /handshake.
type HandshakeResponse struct {
	Shake bool `json:"shake"`
}

// DevicesResponse mirrors GET /devices.
type DevicesResponse struct {
	Devices []DeviceRecord `json:"devices"`
}

// DeviceRecord describes one device in the daemon's catalog.
type DeviceRecord struct {
	Name      string      `json:"name"`
	Type      DeviceType  `json:"type"`
	TypeIndex int         `json:"type_index"`
	UID       string      `json:"uid"`
	Info      *DeviceInfo `json:"info"`
}

// DeviceInfo carries static channel/sensor metadata for a device.
type DeviceInfo struct {
	Temps    map[string]TempInfo    `json:"temps"`
	Channels map[string]ChannelInfo `json:"channels"`
}

// TempInfo labels a temperature sensor.
type TempInfo struct {
	Label string `json:"label"`
}

// ChannelInfo labels a controllable channel.
type ChannelInfo struct {
	Label string `json:"label"`
}

// TempStatus is one temperature reading within a snapshot.
type TempStatus struct {
	Name string  `json:"name"`
	Temp float64 `json:"temp"`
}

// ChannelStatus is one channel reading within a snapshot. Not every channel
// reports every field, and zero is a valid distinct reading, so the optional
// fields are pointers rather than zero-defaulted values.
type ChannelStatus struct {
	Name string   `json:"name"`
	RPM  *uint32  `json:"rpm,omitempty"`
	Duty *float64 `json:"duty,omitempty"`
	Freq *uint32  `json:"freq,omitempty"`
}

// Status is one daemon-timestamped sample of a device's readings.
type Status struct {
	Timestamp time.Time       `json:"timestamp"`
	Temps     []TempStatus    `json:"temps,omitempty"`
	Channels  []ChannelStatus `json:"channels,omitempty"`
}

// DeviceStatus pairs a device identity with an ordered slice of its
// status history. Recent-status responses carry only the newest snapshot(s);
// full responses carry the daemon's whole retention window.
type DeviceStatus struct {
	Type          DeviceType `json:"type"`
	TypeIndex     int        `json:"type_index"`
	UID           string     `json:"uid"`
	StatusHistory []Status   `json:"status_history"`
}

// StatusResponse mirrors POST /status.
type StatusResponse struct {
	Devices []DeviceStatus `json:"devices"`
}

// statusRequest selects which slice of history POST /status returns.
// An empty body requests only the most recent snapshot per device.
type statusRequest struct {
	All bool `json:"all,omitempty"`
}
