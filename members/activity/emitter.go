package activity

import (
	"context"

	"github.com/hashicorp/go-multierror"

	"github.com/referralhub/casemgmt/scheduled-tasks/logger"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/dal"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/domain"
)

//go:generate mockery --name Notifier --output ./mocks
type Notifier interface {
	Notify(ctx context.Context, events []*domain.ActivityEvent) error
}

// Emitter writes activity events in bounded batches, separate from the cache writes.
type Emitter struct {
	loggerProvider logger.Provider
	events         dal.ActivityEvents
	notifier       Notifier
	chunkSize      int
}

// NewEmitter returns an emitter; notifier may be nil.
func NewEmitter(log logger.Provider, events dal.ActivityEvents, notifier Notifier, chunkSize int) *Emitter {
	return &Emitter{
		loggerProvider: log,
		events:         events,
		notifier:       notifier,
		chunkSize:      chunkSize,
	}
}

// Emit is best effort: every chunk is attempted, and failures come back as one
// *domain.ActivityEmissionError next to the count actually written.
func (e *Emitter) Emit(ctx context.Context, events []*domain.ActivityEvent) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	var (
		result  error
		written int
		dropped int
		notify  []*domain.ActivityEvent
	)

	for start := 0; start < len(events); start += e.chunkSize {
		end := start + e.chunkSize
		if end > len(events) {
			end = len(events)
		}

		chunk := events[start:end]

		if err := e.events.CommitBatch(ctx, chunk); err != nil {
			result = multierror.Append(result, err)
			dropped += len(chunk)

			continue
		}

		written += len(chunk)

		for _, ev := range chunk {
			if ev.RequiresNotification {
				notify = append(notify, ev)
			}
		}
	}

	if e.notifier != nil && len(notify) > 0 {
		if err := e.notifier.Notify(ctx, notify); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if result != nil {
		return written, &domain.ActivityEmissionError{Dropped: dropped, Err: result}
	}

	return written, nil
}
