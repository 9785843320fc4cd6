// Package engine implements the device status synchronization engine.
//
// # Overview
//
// The Synchronizer reconciles two independently-advancing clocks: the
// daemon's sampling tick and the local poll tick. On every poll it fetches
// the newest snapshot batch and decides, once for all devices, whether the
// locally cached time series can be extended incrementally or must be
// rebuilt from a complete history fetch.
//
// # Drift Classification
//
// The decision compares the tail timestamp of the reference device (first in
// catalog order) against the oldest snapshot the batch carries for it:
//
//	drift ≤ threshold  →  incremental: append to every buffer, evict heads
//	drift > threshold  →  full resync: refetch complete history, replace all
//
// Large drift captures daemon restarts, host sleep/wake, and a UI that was
// backgrounded past the retention window. An empty batch, or an empty
// reference buffer, is a no-op tick: the daemon simply has nothing yet.
//
// # Failure Semantics
//
// Transport failures (after the client's own retries) never touch buffered
// data. They are recorded for connection-state tracking, and the next
// successful poll is forced to a full resync regardless of drift, because an
// unknown number of ticks were missed in between.
//
// # Single Flight
//
// At most one poll cycle runs at a time. A tick that fires while a previous
// cycle is outstanding is rejected with ErrPollInFlight rather than queued,
// which keeps overlapping responses from interleaving buffer mutations.
package engine
