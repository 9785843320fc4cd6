package daemon

import (
	"encoding/json"
	"testing"
)

func TestStatus_OptionalChannelFields(t *testing.T) {
	payload := `{
		"timestamp": "2026-08-25T10:00:00+02:00",
		"temps": [{"name": "CPU Temp", "temp": 54.25}],
		"channels": [
			{"name": "pump", "rpm": 2100, "duty": 75.0},
			{"name": "fan1", "rpm": 0},
			{"name": "led"}
		]
	}`

	var status Status
	if err := json.Unmarshal([]byte(payload), &status); err != nil {
		t.Fatalf("unmarshal status: %v", err)
	}

	if len(status.Temps) != 1 || status.Temps[0].Temp != 54.25 {
		t.Fatalf("temps = %#v, want one 54.25 reading", status.Temps)
	}
	if status.Timestamp.IsZero() {
		t.Fatal("timestamp not parsed")
	}

	pump := status.Channels[0]
	if pump.RPM == nil || *pump.RPM != 2100 || pump.Duty == nil || *pump.Duty != 75.0 {
		t.Fatalf("pump = %#v, want rpm=2100 duty=75", pump)
	}
	if pump.Freq != nil {
		t.Fatalf("pump freq = %v, want absent", *pump.Freq)
	}

	// A reported zero must stay distinguishable from an absent field.
	fan := status.Channels[1]
	if fan.RPM == nil || *fan.RPM != 0 {
		t.Fatalf("fan rpm = %#v, want present zero", fan.RPM)
	}
	if fan.Duty != nil {
		t.Fatalf("fan duty = %v, want absent", *fan.Duty)
	}

	led := status.Channels[2]
	if led.RPM != nil || led.Duty != nil || led.Freq != nil {
		t.Fatalf("led = %#v, want all fields absent", led)
	}
}

func TestDeviceTypeOrdinal_OrdersKnownTypesFirst(t *testing.T) {
	ordered := []DeviceType{
		DeviceTypeCPU,
		DeviceTypeGPU,
		DeviceTypeLiquidctl,
		DeviceTypeHwmon,
		DeviceTypeCustomSensors,
	}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Ordinal() >= ordered[i].Ordinal() {
			t.Fatalf("Ordinal(%s) = %d not below Ordinal(%s) = %d",
				ordered[i-1], ordered[i-1].Ordinal(), ordered[i], ordered[i].Ordinal())
		}
	}
	if DeviceType("Mystery").Ordinal() <= DeviceTypeCustomSensors.Ordinal() {
		t.Fatal("unknown device types should sort last")
	}
}
