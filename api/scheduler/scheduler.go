package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/civicmap/civicmap-api/databases"
	"github.com/civicmap/civicmap-api/images"
)

const sweepBatchSize = 50

// Janitor periodically retries deletion of hosted images that an earlier
// request failed to clean up
type Janitor struct {
	odb      databases.OrphanedImageDatabase
	uploader images.Uploader
	cron     *cron.Cron

	mu      sync.Mutex
	retried int
	failed  int
}

// NewJanitor creates a janitor over the orphaned image queue
func NewJanitor(odb databases.OrphanedImageDatabase, uploader images.Uploader) *Janitor {
	return &Janitor{
		odb:      odb,
		uploader: uploader,
		cron:     cron.New(cron.WithLocation(time.UTC)),
	}
}

// Start schedules the sweep and kicks off the cron runner
func (j *Janitor) Start() {
	_, err := j.cron.AddFunc("@every 15m", j.Sweep)
	if err != nil {
		zap.S().Errorw("failed to schedule orphaned image sweep", "error", err)
		return
	}
	j.cron.Start()
	zap.S().Info("orphaned image janitor started")
}

// Stop halts the cron runner and waits for a running sweep to finish
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}

// Sweep retries deletion for a batch of orphaned images. Successful deletes
// are removed from the queue, failures get their attempt count bumped and
// stay queued for the next run.
func (j *Janitor) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	orphans, err := j.odb.FindBatch(ctx, sweepBatchSize)
	if err != nil {
		zap.S().Errorw("failed to load orphaned image batch", "error", err)
		return
	}
	if len(orphans) == 0 {
		return
	}

	var retried, failed int
	for _, orphan := range orphans {
		if err := j.uploader.Destroy(ctx, orphan.PublicID); err != nil {
			failed++
			if err := j.odb.BumpAttempts(ctx, orphan.ID); err != nil {
				zap.S().Warnw("failed to bump orphan attempts", "publicId", orphan.PublicID, "error", err)
			}
			continue
		}
		retried++
		if err := j.odb.Remove(ctx, orphan.ID); err != nil {
			zap.S().Warnw("failed to dequeue orphaned image", "publicId", orphan.PublicID, "error", err)
		}
	}

	j.mu.Lock()
	j.retried += retried
	j.failed += failed
	j.mu.Unlock()

	zap.S().Infow("orphaned image sweep finished", "deleted", retried, "stillFailing", failed)
}

// Counters reports how many orphans have been deleted and how many retries
// failed since the janitor started
func (j *Janitor) Counters() (retried, failed int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.retried, j.failed
}
