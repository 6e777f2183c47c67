package export

import (
	"context"
	"errors"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/wellywell/ssccscan/internal/metrics"
)

const retryQueueSize = 100

var errNoRetryAttempts = errors.New("no retry attempts configured")

// Retrier re-sends files whose upload failed. Files that still fail after
// all attempts stay in the output directory for manual delivery.
type Retrier struct {
	uploader Uploader
	tasks    chan string
	attempts int
	interval time.Duration
}

func NewRetrier(uploader Uploader, attempts int, interval time.Duration) *Retrier {
	return &Retrier{
		uploader: uploader,
		tasks:    make(chan string, retryQueueSize),
		attempts: attempts,
		interval: interval,
	}
}

// Enqueue schedules a file for another upload. It never blocks, a full queue
// drops the file.
func (r *Retrier) Enqueue(path string) bool {
	select {
	case r.tasks <- path:
		return true
	default:
		logger.Warnf("Retry queue full, %s left for manual delivery", path)
		return false
	}
}

// Start processes the queue until ctx is cancelled. The returned channel is
// closed when the worker has stopped.
func (r *Retrier) Start(ctx context.Context) chan struct{} {

	done := make(chan struct{})

	go func(ctx context.Context) {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				logger.Info("Context cancel, stopping upload retrier")
				return
			case path := <-r.tasks:
				if err := r.retryUpload(ctx, path); err != nil {
					metrics.ExportsTotal.WithLabelValues("upload_failed").Inc()
					logger.Errorf("Giving up on %s: %s", path, err)
					continue
				}
				metrics.ExportsTotal.WithLabelValues("retried").Inc()
				logger.Infof("Delivered %s on retry", path)
			}
		}
	}(ctx)

	return done
}

func (r *Retrier) retryUpload(ctx context.Context, path string) error {

	err := errNoRetryAttempts
	for attempt := 1; attempt <= r.attempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.interval):
		}

		err = r.uploader.Upload(ctx, path)
		if err == nil {
			return nil
		}
		logger.Warningf("Upload attempt %d/%d of %s failed: %s", attempt, r.attempts, path, err)
	}
	return err
}
