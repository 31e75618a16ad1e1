package service

import (
	"context"
	"sync"
	"time"

	"terrarium_dashboard/internal/device"
	"terrarium_dashboard/internal/logger"
	"terrarium_dashboard/internal/metrics"
	"terrarium_dashboard/internal/models"
	"terrarium_dashboard/internal/repository"

	"github.com/cenkalti/backoff/v4"
)

// StatusService fetches the controller status and keeps the latest snapshot.
type StatusService struct {
	src          device.StatusSource
	snapshotRepo repository.SnapshotRepo
	eventRepo    repository.EventRepo
	metrics      *metrics.Metrics
	log          *logger.Logger

	interval   time.Duration // 0 = fetch once
	maxBackoff time.Duration
	now        func() time.Time

	mu     sync.RWMutex
	snap   models.StatusSnapshot
	loaded bool
}

func NewStatusService(src device.StatusSource, repos *repository.Repository, m *metrics.Metrics, log *logger.Logger, interval, maxBackoff time.Duration) *StatusService {
	s := &StatusService{
		src:        src,
		metrics:    m,
		log:        log,
		interval:   interval,
		maxBackoff: maxBackoff,
		now:        time.Now,
	}
	if repos != nil {
		s.snapshotRepo = repos.SnapshotRepo
		s.eventRepo = repos.EventRepo
	}
	return s
}

// Run fetches the status once and, when an interval is configured, keeps
// polling until ctx is canceled. The wait doubles after every failed fetch
// up to maxBackoff and resets after a success.
func (s *StatusService) Run(ctx context.Context) {
	ok := s.poll(ctx)
	if s.interval <= 0 {
		return
	}

	b := s.newBackOff()
	for {
		t := time.NewTimer(s.nextWait(b, ok))
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
			ok = s.poll(ctx)
		}
	}
}

// newBackOff starts at twice the interval and never gives up.
func (s *StatusService) newBackOff() *backoff.ExponentialBackOff {
	limit := s.maxBackoff
	if limit < s.interval {
		limit = s.interval
	}
	first := 2 * s.interval
	if first > limit {
		first = limit
	}
	b := &backoff.ExponentialBackOff{
		InitialInterval:     first,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         limit,
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	b.Reset()
	return b
}

func (s *StatusService) nextWait(b *backoff.ExponentialBackOff, ok bool) time.Duration {
	if ok {
		b.Reset()
		return s.interval
	}
	return b.NextBackOff()
}

// Snapshot returns the latest status; false while nothing was fetched yet.
func (s *StatusService) Snapshot() (models.StatusSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.loaded
}

// History returns stored snapshots, newest first.
func (s *StatusService) History(ctx context.Context, limit int) ([]models.StatusSnapshot, error) {
	if s.snapshotRepo == nil {
		return []models.StatusSnapshot{}, nil
	}
	return s.snapshotRepo.List(ctx, limit)
}

// poll runs one fetch. A failure keeps the previous snapshot.
func (s *StatusService) poll(ctx context.Context) bool {
	st, err := s.src.FetchStatus(ctx)
	if err != nil {
		s.metrics.ObserveStatus(nil)
		if s.log != nil {
			s.log.Warnw("status_fetch_failed", "err", err)
		}
		s.appendEvent(ctx, models.EventStatusFailed, "status fetch failed", map[string]any{"error": err.Error()})
		return false
	}

	snap := models.StatusSnapshot{Status: st, FetchedAt: s.now().UTC()}
	if s.snapshotRepo != nil {
		id, err := s.snapshotRepo.Save(ctx, snap)
		if err != nil {
			if s.log != nil {
				s.log.Errorw("snapshot_save_failed", "err", err)
			}
		} else {
			snap.ID = id
		}
	}

	s.mu.Lock()
	s.snap = snap
	s.loaded = true
	s.mu.Unlock()

	s.metrics.ObserveStatus(&st)
	if s.log != nil {
		s.log.Debugw("status_fetched", "snapshot_id", snap.ID)
	}
	s.appendEvent(ctx, models.EventStatus, "status fetched", map[string]any{"snapshot_id": snap.ID})
	return true
}

func (s *StatusService) appendEvent(ctx context.Context, typ, desc string, meta map[string]any) {
	if s.eventRepo == nil {
		return
	}
	err := s.eventRepo.Append(ctx, models.ControlEvent{
		OccurredAt:  s.now().UTC(),
		Type:        typ,
		Description: desc,
		Metadata:    meta,
	})
	if err != nil && s.log != nil {
		s.log.Errorw("event_append_failed", "type", typ, "err", err)
	}
}
