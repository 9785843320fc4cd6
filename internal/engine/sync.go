package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/coolview/coolview/internal/daemon"
	"github.com/coolview/coolview/internal/state"
)

// DefaultDriftThreshold bounds how far the newest received snapshot may sit
// from the local tail before an incremental merge is abandoned for a full
// reload. It trades resync cost against tolerance for network jitter.
const DefaultDriftThreshold = 2 * time.Second

// Outcome reports what a poll cycle did, so callers can distinguish cheap
// incremental ticks from expensive full reloads.
type Outcome int

const (
	// OutcomeSkipped means no update was applied: the poll was either
	// rejected (already in flight) or failed at the transport.
	OutcomeSkipped Outcome = iota
	// OutcomeNoOp means the daemon answered but carried no usable data.
	OutcomeNoOp
	// OutcomeIncremental means new snapshots were appended to the buffers.
	OutcomeIncremental
	// OutcomeFullResync means every buffer was rebuilt from a complete
	// history fetch.
	OutcomeFullResync
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoOp:
		return "no-op"
	case OutcomeIncremental:
		return "incremental"
	case OutcomeFullResync:
		return "full-resync"
	default:
		return "skipped"
	}
}

// ErrPollInFlight is returned when PollOnce is called while a previous poll
// cycle is still outstanding. The tick is skipped, never queued.
var ErrPollInFlight = errors.New("poll already in flight")

// ErrNotInitialized is returned when polling starts before a catalog load
// has succeeded.
var ErrNotInitialized = errors.New("device catalog not loaded")

// Synchronizer owns the poll cadence: it fetches recent statuses, decides
// between incremental merge and full resync, and applies the result to the
// store. It is the store's only writer.
type Synchronizer struct {
	source    daemon.StatusSource
	store     *state.Store
	threshold time.Duration
	capacity  int

	inFlight  atomic.Bool
	forceFull atomic.Bool
}

// New builds a Synchronizer. A non-positive threshold falls back to
// DefaultDriftThreshold; capacity is passed through to the buffers.
func New(source daemon.StatusSource, store *state.Store, threshold time.Duration, capacity int) *Synchronizer {
	if threshold <= 0 {
		threshold = DefaultDriftThreshold
	}
	return &Synchronizer{
		source:    source,
		store:     store,
		threshold: threshold,
		capacity:  capacity,
	}
}

// Load performs the startup sequence: handshake, device catalog fetch, and
// an initial full-history seed of every buffer. On error the store stays
// uninitialized and the caller must retry Load, not the poll loop.
func (s *Synchronizer) Load(ctx context.Context) error {
	if err := s.source.Handshake(ctx); err != nil {
		return fmt.Errorf("daemon handshake: %w", err)
	}

	records, err := s.source.FetchDevices(ctx)
	if err != nil {
		return fmt.Errorf("fetch devices: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("daemon reported no devices")
	}

	full, err := s.source.FetchAllStatuses(ctx)
	if err != nil {
		return fmt.Errorf("fetch status history: %w", err)
	}

	s.store.SetCatalog(records, s.capacity)
	s.store.ApplyFull(full)
	return nil
}

// PollOnce runs one poll cycle. At most one cycle is in flight at a time; a
// tick that fires while another is outstanding returns ErrPollInFlight
// without touching any buffer. Transport failures leave existing data
// untouched and force the next successful poll to a full resync, because an
// unknown number of ticks were missed.
func (s *Synchronizer) PollOnce(ctx context.Context) (Outcome, error) {
	if !s.store.Initialized() {
		return OutcomeSkipped, ErrNotInitialized
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return OutcomeSkipped, ErrPollInFlight
	}
	defer s.inFlight.Store(false)

	recent, err := s.source.FetchRecentStatuses(ctx)
	if err != nil {
		s.forceFull.Store(true)
		s.store.RecordFailure(err)
		return OutcomeSkipped, fmt.Errorf("fetch recent statuses: %w", err)
	}

	if emptyBatch(recent) {
		// Daemon restart or sleep/wake window: no data yet is a valid
		// answer, not a failure.
		s.store.RecordNoOp()
		return OutcomeNoOp, nil
	}

	if s.forceFull.Load() {
		return s.fullResync(ctx)
	}

	refUID, refTS, ok := s.store.ReferenceLatest()
	if !ok {
		// The reference buffer has nothing to compare against yet, so no
		// drift can be computed. Skip the tick without mutating state.
		s.store.RecordNoOp()
		return OutcomeNoOp, nil
	}
	first, ok := firstSnapshotFor(recent, refUID)
	if !ok {
		s.store.RecordNoOp()
		return OutcomeNoOp, nil
	}

	if withinThreshold(refTS, first.Timestamp, s.threshold) {
		_, stale := s.store.ApplyRecent(recent)
		if stale > 0 {
			log.Printf("dropped %d stale snapshot(s) older than buffer tail", stale)
		}
		return OutcomeIncremental, nil
	}
	return s.fullResync(ctx)
}

// withinThreshold decides one classification for the whole tick, based on
// the reference device (first in catalog order), so all buffers stay
// consistent with each other for cross-device charts. The boundary is
// inclusive: drift equal to the threshold still merges incrementally.
func withinThreshold(local, incoming time.Time, threshold time.Duration) bool {
	drift := incoming.Sub(local)
	if drift < 0 {
		drift = -drift
	}
	return drift <= threshold
}

func (s *Synchronizer) fullResync(ctx context.Context) (Outcome, error) {
	full, err := s.source.FetchAllStatuses(ctx)
	if err != nil {
		s.forceFull.Store(true)
		s.store.RecordFailure(err)
		return OutcomeSkipped, fmt.Errorf("fetch status history: %w", err)
	}
	if emptyBatch(full) {
		s.store.RecordNoOp()
		return OutcomeNoOp, nil
	}
	s.store.ApplyFull(full)
	s.forceFull.Store(false)
	return OutcomeFullResync, nil
}

// emptyBatch reports whether a status response carries no snapshots at all.
func emptyBatch(batch []daemon.DeviceStatus) bool {
	for _, entry := range batch {
		if len(entry.StatusHistory) > 0 {
			return false
		}
	}
	return true
}

// firstSnapshotFor returns the oldest new snapshot for the given device, the
// entry the drift computation compares against the local tail.
func firstSnapshotFor(batch []daemon.DeviceStatus, uid string) (daemon.Status, bool) {
	for _, entry := range batch {
		if entry.UID == uid && len(entry.StatusHistory) > 0 {
			return entry.StatusHistory[0], true
		}
	}
	return daemon.Status{}, false
}
