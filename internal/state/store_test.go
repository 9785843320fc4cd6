package state

import (
	"errors"
	"testing"
	"time"

	"github.com/coolview/coolview/internal/daemon"
)

func u32(v uint32) *uint32 { return &v }

func f64(v float64) *float64 { return &v }

func ts(offset int) time.Time {
	return time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC).Add(time.Duration(offset) * time.Second)
}

func catalog() []daemon.DeviceRecord {
	return []daemon.DeviceRecord{
		{Name: "Kraken", Type: daemon.DeviceTypeLiquidctl, TypeIndex: 1, UID: "lc-1"},
		{Name: "CPU", Type: daemon.DeviceTypeCPU, TypeIndex: 1, UID: "cpu-1"},
		{Name: "GPU", Type: daemon.DeviceTypeGPU, TypeIndex: 1, UID: "gpu-1"},
	}
}

func TestStore_SetCatalogOrdersByTypeThenIndex(t *testing.T) {
	s := NewStore()
	s.SetCatalog(catalog(), 10)

	snap := s.Snapshot()
	if !snap.Initialized {
		t.Fatal("store not initialized after SetCatalog")
	}
	var uids []string
	for _, device := range snap.Devices {
		uids = append(uids, device.UID)
	}
	want := []string{"cpu-1", "gpu-1", "lc-1"}
	for i := range want {
		if uids[i] != want[i] {
			t.Fatalf("catalog order = %v, want %v", uids, want)
		}
	}

	uid, _, ok := s.ReferenceLatest()
	if ok {
		t.Fatal("ReferenceLatest ok = true with empty buffers")
	}
	if uid != "cpu-1" {
		t.Fatalf("reference uid = %q, want cpu-1", uid)
	}
}

func TestStore_ApplyFullSeedsBuffersAndProjection(t *testing.T) {
	s := NewStore()
	s.SetCatalog(catalog(), 10)

	s.ApplyFull([]daemon.DeviceStatus{
		{UID: "cpu-1", StatusHistory: []daemon.Status{
			{Timestamp: ts(0), Temps: []daemon.TempStatus{{Name: "CPU Temp", Temp: 51.04}}},
			{Timestamp: ts(1), Temps: []daemon.TempStatus{{Name: "CPU Temp", Temp: 52.96}}},
		}},
		{UID: "unknown", StatusHistory: []daemon.Status{{Timestamp: ts(0)}}},
	})

	_, refTS, ok := s.ReferenceLatest()
	if !ok || !refTS.Equal(ts(1)) {
		t.Fatalf("ReferenceLatest = (%v, %v), want offset-1 timestamp", refTS, ok)
	}

	snap := s.Snapshot()
	cpu := snap.Devices[0]
	if cpu.HistoryLen != 2 {
		t.Fatalf("cpu history length = %d, want 2", cpu.HistoryLen)
	}
	if len(cpu.Sensors) != 1 || cpu.Sensors[0].Name != "CPU Temp" {
		t.Fatalf("cpu sensors = %#v, want one CPU Temp entry", cpu.Sensors)
	}
	if got := cpu.Sensors[0].Value.Temp; got != "53.0" {
		t.Fatalf("projected temp = %q, want tail value 53.0", got)
	}
}

func TestStore_ProjectionFormatsAndKeepsAbsentFieldsEmpty(t *testing.T) {
	s := NewStore()
	s.SetCatalog(catalog(), 10)

	s.ApplyFull([]daemon.DeviceStatus{
		{UID: "lc-1", StatusHistory: []daemon.Status{{
			Timestamp: ts(0),
			Temps:     []daemon.TempStatus{{Name: "Liquid", Temp: 30}},
			Channels: []daemon.ChannelStatus{
				{Name: "pump", RPM: u32(2100), Duty: f64(74.6)},
				{Name: "fan1", RPM: u32(0)},
			},
		}}},
	})

	snap := s.Snapshot()
	var lc DeviceView
	for _, device := range snap.Devices {
		if device.UID == "lc-1" {
			lc = device
		}
	}

	byName := map[string]CurrentValue{}
	for _, sensor := range lc.Sensors {
		byName[sensor.Name] = sensor.Value
	}

	if got := byName["Liquid"].Temp; got != "30.0" {
		t.Fatalf("liquid temp = %q, want 30.0", got)
	}
	pump := byName["pump"]
	if pump.RPM != "2100" || pump.Duty != "75" {
		t.Fatalf("pump = %#v, want rpm=2100 duty=75", pump)
	}
	if pump.Freq != "" {
		t.Fatalf("pump freq = %q, want empty for absent field", pump.Freq)
	}
	fan := byName["fan1"]
	if fan.RPM != "0" {
		t.Fatalf("fan rpm = %q, want 0 (reported zero is a real reading)", fan.RPM)
	}
	if fan.Duty != "" {
		t.Fatalf("fan duty = %q, want empty for absent field", fan.Duty)
	}
}

func TestStore_ApplyRecentAppendsAndCountsStale(t *testing.T) {
	s := NewStore()
	s.SetCatalog(catalog(), 10)
	s.ApplyFull([]daemon.DeviceStatus{
		{UID: "cpu-1", StatusHistory: []daemon.Status{{Timestamp: ts(5)}}},
	})

	appended, stale := s.ApplyRecent([]daemon.DeviceStatus{
		{UID: "cpu-1", StatusHistory: []daemon.Status{{Timestamp: ts(3)}, {Timestamp: ts(6)}}},
	})
	if appended != 1 || stale != 1 {
		t.Fatalf("ApplyRecent = (%d, %d), want (1, 1)", appended, stale)
	}

	snap := s.Snapshot()
	if snap.StaleSamples != 1 {
		t.Fatalf("StaleSamples = %d, want 1", snap.StaleSamples)
	}
}

func TestStore_FailuresPreserveDataAndFlipOffline(t *testing.T) {
	s := NewStore()
	s.SetCatalog(catalog(), 10)
	s.ApplyFull([]daemon.DeviceStatus{
		{UID: "cpu-1", StatusHistory: []daemon.Status{{
			Timestamp: ts(0),
			Temps:     []daemon.TempStatus{{Name: "CPU Temp", Temp: 50}},
		}}},
	})

	s.RecordFailure(errors.New("connection refused"))
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after one failure: failures=%d offline=%v, want 1/false",
			snap.ConsecutiveFailures, snap.IsOffline())
	}
	if snap.Devices[0].HistoryLen != 1 {
		t.Fatal("failure dropped buffered data")
	}
	if snap.LastError == nil {
		t.Fatal("LastError = nil after failure")
	}

	s.RecordFailure(errors.New("connection refused"))
	if snap = s.Snapshot(); !snap.IsOffline() {
		t.Fatal("IsOffline = false after two consecutive failures")
	}

	s.RecordNoOp()
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.LastError != nil {
		t.Fatalf("after no-op contact: failures=%d err=%v, want reset", snap.ConsecutiveFailures, snap.LastError)
	}
	if snap.Devices[0].HistoryLen != 1 {
		t.Fatal("no-op tick mutated buffers")
	}
}

func TestStore_HistoryReturnsCopy(t *testing.T) {
	s := NewStore()
	s.SetCatalog(catalog(), 10)
	s.ApplyFull([]daemon.DeviceStatus{
		{UID: "gpu-1", StatusHistory: []daemon.Status{{Timestamp: ts(0)}}},
	})

	hist := s.History("gpu-1")
	if len(hist) != 1 {
		t.Fatalf("history length = %d, want 1", len(hist))
	}
	hist[0].Timestamp = hist[0].Timestamp.Add(time.Hour)
	if again := s.History("gpu-1"); !again[0].Timestamp.Equal(ts(0)) {
		t.Fatal("mutating returned history changed the store")
	}
	if s.History("nope") != nil {
		t.Fatal("unknown uid should return nil history")
	}
}
