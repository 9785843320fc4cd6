// Package daemon provides an HTTP client for the cooling daemon API.
//
// # Overview
//
// This package defines the API client used to mirror the daemon's device
// catalog and sensor status history into the local process. It handles HTTP
// communication, JSON serialization, and type-safe representation of devices
// and status snapshots.
//
// # API Endpoints
//
//   - GET /handshake: liveness probe, used once at startup
//   - GET /devices: device catalog (identity + channel metadata)
//   - POST /status {"all": true}: complete per-device status history
//   - POST /status {}: only the newest snapshot(s) per device
//
// All status-bearing endpoints return empty results (not errors) when the
// daemon has no data yet, for example right after its own restart. Callers
// must treat that as a valid no-op, not a failure.
//
// # Request Handling
//
// Every request carries a bounded timeout and a small retry budget with
// exponential backoff. The handshake gets a larger budget than steady-state
// calls because it races daemon startup. Only an exhausted retry budget is
// surfaced to the caller as an error.
//
// # Optional Fields
//
// Channel readings report duty, rpm, and frequency independently, and zero
// is a valid reading for each. The wire types therefore use pointers for
// these fields so "absent" and "zero" stay distinguishable downstream.
package daemon
