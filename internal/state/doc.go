// Package state provides the shared device cache between the sync engine
// and the UI.
//
// # Overview
//
// The Store owns three things: the static device catalog loaded once at
// startup, one bounded history buffer per device, and the recent-value
// projection derived from each buffer's tail. It is the coordination point
// where poll updates meet rendering.
//
// # Architecture
//
// The package follows a producer-consumer pattern:
//
//	Producer (sync engine):          Consumer (UI):
//	┌──────────────────────┐        ┌──────────────────────┐
//	│ ApplyRecent()        │        │ store.Snapshot()     │
//	│ ApplyFull()          │───────→│ store.History(uid)   │
//	│ RecordFailure()      │ (mutex)│        ↓             │
//	│ RecordNoOp()         │        │    render            │
//	└──────────────────────┘        └──────────────────────┘
//
// The engine is the single writer; the UI and chart consumers are read-only
// observers. Snapshot returns defensive copies so renders never observe a
// torn update.
//
// # Projection Semantics
//
// The projection maps device UID → sensor name → last-seen formatted
// values. It is recomputed from buffer tails after every mutation and never
// rebuilt wholesale: the inner maps are allocated once at catalog load and
// updated in place. Temperatures format to one decimal place; duty, rpm,
// and frequency to integers. A field the daemon never reported stays empty
// rather than showing a fabricated zero.
//
// # Failure Bookkeeping
//
// Failed polls preserve all buffered data and only bump a consecutive
// failure counter; two or more consecutive failures flip the snapshot to
// offline so the header can surface the connection state. Stale snapshots
// rejected by the buffers are tallied for the same purpose.
package state
