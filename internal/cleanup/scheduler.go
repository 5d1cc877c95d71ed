// Package cleanup retries record deletions whose media object was already
// removed. Ids are queued by the delete handler when the second step of a
// delete fails.
package cleanup

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"io.winapps.prompts/internal/metrics"
	"io.winapps.prompts/internal/store"
)

// runTimeout bounds a single sweep.
const runTimeout = 2 * time.Minute

type Scheduler struct {
	records store.RecordStore
	pending store.PendingDeletions
	logger  *zap.SugaredLogger
	cron    *cron.Cron

	// mu keeps a slow sweep from overlapping with the next tick.
	mu sync.Mutex
}

func NewScheduler(records store.RecordStore, pending store.PendingDeletions, logger *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		records: records,
		pending: pending,
		logger:  logger,
		cron:    cron.New(cron.WithLocation(time.UTC)),
	}
}

// Start schedules RunOnce with the given cron spec (e.g. "@every 5m") and starts the cron runner.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		if _, err := s.RunOnce(ctx); err != nil {
			s.logger.Errorw("pending deletion sweep failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cleanup schedule %q: %w", spec, err)
	}
	s.cron.Start()
	s.logger.Infow("cleanup scheduler started", "schedule", spec)
	return nil
}

// Stop stops the cron runner and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce deletes the record of every queued id and returns how many ids
// left the queue. Ids whose record is already gone are dropped; ids that
// still fail stay queued for the next run.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.pending.List(ctx)
	if err != nil {
		return 0, err
	}

	cleared := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}

		err := s.records.Delete(ctx, id)
		switch {
		case err == nil:
			metrics.CleanupRecordsTotal.WithLabelValues("deleted").Inc()
			s.logger.Infow("pending prompt record deleted", "prompt_id", id)
		case errors.Is(err, store.ErrNotFound):
			metrics.CleanupRecordsTotal.WithLabelValues("already_gone").Inc()
		default:
			metrics.CleanupRecordsTotal.WithLabelValues("failed").Inc()
			s.logger.Warnw("pending prompt record deletion failed", "prompt_id", id, "error", err)
			continue
		}

		if err := s.pending.Remove(ctx, id); err != nil {
			s.logger.Errorw("dequeue pending deletion failed", "prompt_id", id, "error", err)
			continue
		}
		cleared++
	}

	metrics.PendingDeletions.Set(float64(len(ids) - cleared))
	return cleared, nil
}
