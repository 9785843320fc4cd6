// Package history implements the bounded, time-ordered status buffer kept
// for each device. Buffers are written only by the sync engine and read by
// the projection and chart consumers, so the type itself carries no locking.
package history

import (
	"github.com/coolview/coolview/internal/daemon"
)

// DefaultCapacity matches the daemon's retention window at its default
// poll rate (31 minutes of one-second ticks).
const DefaultCapacity = 1860

// Buffer holds one device's status snapshots in strictly non-decreasing
// timestamp order, bounded to a fixed capacity with FIFO eviction.
type Buffer struct {
	capacity int
	entries  []daemon.Status
}

// New creates an empty buffer. Non-positive capacities fall back to
// DefaultCapacity.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		capacity: capacity,
		entries:  make([]daemon.Status, 0, capacity),
	}
}

// ReplaceAll discards the current contents and stores the given ordered
// sequence verbatim, truncating the oldest entries when the incoming
// sequence exceeds capacity. Used for full resyncs.
func (b *Buffer) ReplaceAll(snapshots []daemon.Status) {
	if len(snapshots) > b.capacity {
		snapshots = snapshots[len(snapshots)-b.capacity:]
	}
	b.entries = b.entries[:0]
	b.entries = append(b.entries, snapshots...)
}

// AppendEvict appends each snapshot in order, evicting one entry from the
// head per append once capacity is reached, so length stays constant at the
// cap. Snapshots whose timestamp equals the current tail are duplicates and
// dropped silently; strictly older timestamps are anomalous and counted in
// the stale return value. The rest of the batch is still applied.
func (b *Buffer) AppendEvict(snapshots []daemon.Status) (appended, stale int) {
	for _, snapshot := range snapshots {
		if tail, ok := b.Latest(); ok {
			if snapshot.Timestamp.Equal(tail.Timestamp) {
				continue
			}
			if snapshot.Timestamp.Before(tail.Timestamp) {
				stale++
				continue
			}
		}
		if len(b.entries) >= b.capacity {
			b.entries = b.entries[1:]
		}
		b.entries = append(b.entries, snapshot)
		appended++
	}
	return appended, stale
}

// Latest returns the tail snapshot, or false when the buffer is empty.
func (b *Buffer) Latest() (daemon.Status, bool) {
	if len(b.entries) == 0 {
		return daemon.Status{}, false
	}
	return b.entries[len(b.entries)-1], true
}

// Len returns the number of buffered snapshots.
func (b *Buffer) Len() int {
	return len(b.entries)
}

// Capacity returns the maximum number of snapshots the buffer retains.
func (b *Buffer) Capacity() int {
	return b.capacity
}

// Snapshots returns a copy of the buffered sequence for chart consumers.
func (b *Buffer) Snapshots() []daemon.Status {
	if len(b.entries) == 0 {
		return nil
	}
	dup := make([]daemon.Status, len(b.entries))
	copy(dup, b.entries)
	return dup
}
