package cleanup

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Job compacts the swipe ledger: rows that repeat an earlier verdict
// for the same pair are redundant for every existence and reciprocity
// query, so they can be dropped without changing observable behavior.
type Job struct {
	swipes swipeCompactor
	logger *zap.Logger
}

type swipeCompactor interface {
	DeleteExactDuplicates(ctx context.Context) (int64, error)
}

func NewSwipeCompactionJob(swipes swipeCompactor, logger *zap.Logger) *Job {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		swipes: swipes,
		logger: logger,
	}
}

// Run performs one compaction pass. The caller owns the schedule.
func (j *Job) Run(ctx context.Context) error {
	if j.swipes == nil {
		return nil
	}

	removed, err := j.swipes.DeleteExactDuplicates(ctx)
	if err != nil {
		return fmt.Errorf("compact swipe ledger: %w", err)
	}
	if removed > 0 {
		j.logger.Info("swipe ledger compaction completed", zap.Int64("removed", removed))
	}

	return nil
}
