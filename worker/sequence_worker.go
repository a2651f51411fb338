package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"outreachly/engine"
)

// SequenceWorker triggers the sequence sweep on a fixed interval. The
// same sweep can also be fired on demand through the trigger endpoint;
// the engine's enrollment lease keeps the two from colliding.
type SequenceWorker struct {
	executor *engine.Executor
	interval time.Duration
	logger   *logrus.Entry
}

func NewSequenceWorker(executor *engine.Executor, interval time.Duration, logger *logrus.Entry) *SequenceWorker {
	return &SequenceWorker{
		executor: executor,
		interval: interval,
		logger:   logger,
	}
}

func (sw *SequenceWorker) Start(ctx context.Context) {
	sw.logger.Infof("Sequence worker started, sweeping every %s", sw.interval)

	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			sw.logger.Info("Sequence worker shutting down...")
			return
		case <-ticker.C:
			sw.executor.Run(ctx)
		}
	}
}
