// Package app wires the coolview components together and owns the
// background poll loop.
//
// # Startup Sequence
//
//  1. Load config and user preferences.
//  2. Build the daemon client and the empty store.
//  3. Load the device catalog: handshake, device list, full history seed.
//     This is retried a bounded number of times; a failed load is fatal to
//     startup and polling never begins.
//  4. Start the background poller.
//  5. Run the TUI until the context is cancelled or the user quits.
//
// # Poll Loop
//
// The poller drives engine.PollOnce at the configured cadence. While the
// daemon is unreachable the interval doubles per consecutive failure, capped
// at 30 seconds, and snaps back to the base interval on the first success.
// Overlapping ticks are skipped by the engine's single-flight guard and are
// not logged as failures.
package app
