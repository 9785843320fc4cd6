package state

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/coolview/coolview/internal/daemon"
	"github.com/coolview/coolview/internal/history"
)

// Device pairs one catalog entry with its owned status history buffer.
type Device struct {
	UID       string
	Name      string
	Type      daemon.DeviceType
	TypeIndex int
	History   *history.Buffer
}

// Store holds the device catalog, the per-device history buffers, and the
// derived recent-value projection. The sync engine is the only writer; the
// UI reads through Snapshot and History.
type Store struct {
	mu      sync.RWMutex
	devices []*Device
	byUID   map[string]*Device
	current map[string]map[string]CurrentValue

	lastUpdated         time.Time
	lastErr             error
	consecutiveFailures int
	staleSamples        int
}

// NewStore returns an empty, uninitialized store.
func NewStore() *Store {
	return &Store{
		byUID:   make(map[string]*Device),
		current: make(map[string]map[string]CurrentValue),
	}
}

// SetCatalog populates one device entry with an empty buffer per record,
// ordered by (device type ordinal, type index). Projection maps are
// allocated here, once, and only mutated in place afterwards.
func (s *Store) SetCatalog(records []daemon.DeviceRecord, capacity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := make([]daemon.DeviceRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Type.Ordinal() != sorted[j].Type.Ordinal() {
			return sorted[i].Type.Ordinal() < sorted[j].Type.Ordinal()
		}
		return sorted[i].TypeIndex < sorted[j].TypeIndex
	})

	s.devices = s.devices[:0]
	clear(s.byUID)
	clear(s.current)
	for _, record := range sorted {
		device := &Device{
			UID:       record.UID,
			Name:      record.Name,
			Type:      record.Type,
			TypeIndex: record.TypeIndex,
			History:   history.New(capacity),
		}
		s.devices = append(s.devices, device)
		s.byUID[record.UID] = device
		s.current[record.UID] = make(map[string]CurrentValue)
	}
}

// Initialized reports whether a catalog has been loaded.
func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.devices) > 0
}

// ApplyFull replaces every matching device's buffer wholesale with the
// history from a complete-history fetch, then refreshes the projection.
func (s *Store) ApplyFull(batch []daemon.DeviceStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range batch {
		device, ok := s.byUID[entry.UID]
		if !ok {
			continue
		}
		device.History.ReplaceAll(entry.StatusHistory)
	}
	s.refreshCurrent()
	s.recordSuccess()
}

// ApplyRecent appends the batch incrementally to every device present in
// both catalog and response, evicting from the head at capacity, then
// refreshes the projection. Returns how many snapshots were appended and
// how many were skipped as stale (older than the buffer tail).
func (s *Store) ApplyRecent(batch []daemon.DeviceStatus) (appended, stale int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range batch {
		device, ok := s.byUID[entry.UID]
		if !ok {
			continue
		}
		a, st := device.History.AppendEvict(entry.StatusHistory)
		appended += a
		stale += st
	}
	s.staleSamples += stale
	s.refreshCurrent()
	s.recordSuccess()
	return appended, stale
}

// RecordNoOp marks a successful poll that carried no new data. Buffers and
// projection stay untouched; the failure counter resets because the daemon
// answered.
func (s *Store) RecordNoOp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordSuccess()
}

// RecordFailure marks a failed poll. Existing data is preserved; only the
// error and failure counter change.
func (s *Store) RecordFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
	s.lastUpdated = time.Now()
	s.consecutiveFailures++
}

func (s *Store) recordSuccess() {
	s.lastErr = nil
	s.lastUpdated = time.Now()
	s.consecutiveFailures = 0
}

// ReferenceLatest returns the UID and tail timestamp of the reference
// device (the first device in catalog order). ok is false when the catalog
// is empty or the reference buffer holds no snapshots yet.
func (s *Store) ReferenceLatest() (uid string, ts time.Time, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.devices) == 0 {
		return "", time.Time{}, false
	}
	reference := s.devices[0]
	latest, ok := reference.History.Latest()
	if !ok {
		return reference.UID, time.Time{}, false
	}
	return reference.UID, latest.Timestamp, true
}

// History returns a copy of one device's buffered snapshots for chart
// consumers, or nil for unknown devices.
func (s *Store) History(uid string) []daemon.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	device, ok := s.byUID[uid]
	if !ok {
		return nil
	}
	return device.History.Snapshots()
}

// Snapshot returns an independent copy of the current view for rendering.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Initialized:         len(s.devices) > 0,
		LastUpdated:         s.lastUpdated,
		ConsecutiveFailures: s.consecutiveFailures,
		StaleSamples:        s.staleSamples,
	}
	if s.lastErr != nil {
		snap.LastError = fmt.Errorf("%w", s.lastErr)
	}
	for _, device := range s.devices {
		snap.Devices = append(snap.Devices, DeviceView{
			UID:        device.UID,
			Name:       device.Name,
			Type:       device.Type,
			TypeIndex:  device.TypeIndex,
			Sensors:    s.sensorReadings(device),
			HistoryLen: device.History.Len(),
		})
	}
	return snap
}

// sensorReadings assembles a device's projected values in the order the
// daemon reports them: temps first, then channels. Callers hold s.mu.
func (s *Store) sensorReadings(device *Device) []SensorReading {
	latest, ok := device.History.Latest()
	if !ok {
		return nil
	}
	values := s.current[device.UID]

	var readings []SensorReading
	for _, temp := range latest.Temps {
		readings = append(readings, SensorReading{Name: temp.Name, Value: values[temp.Name]})
	}
	for _, channel := range latest.Channels {
		readings = append(readings, SensorReading{Name: channel.Name, Value: values[channel.Name]})
	}
	return readings
}
