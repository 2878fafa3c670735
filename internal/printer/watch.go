package printer

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/AvengeMedia/dankprint/internal/log"
	"github.com/google/uuid"
)

// WatchJob polls a job and emits an event whenever its status changes. The
// channel is closed after a finished, gone or failed event, or when ctx ends.
// A zero interval uses the service default.
func (s *Service) WatchJob(ctx context.Context, printerName string, jobID int, interval time.Duration) <-chan JobEvent {
	if interval <= 0 {
		interval = s.watchInterval
	}
	events := make(chan JobEvent, 8)

	go func() {
		defer close(events)

		var signals <-chan struct{}
		if n, ok := s.backend.(Notifier); ok {
			id := uuid.NewString()
			signals = n.Subscribe(id)
			defer n.Unsubscribe(id)
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var last []string
		first := true
		for {
			job, err := s.Job(ctx, printerName, jobID)
			switch {
			case errors.Is(err, ErrJobNotFound):
				gone := PrintJob{ID: jobID, PrinterName: printerName, Status: []string{JobDeleted}}
				send(ctx, events, JobEvent{Job: gone, Gone: true, Time: time.Now()})
				return
			case err != nil:
				if ctx.Err() == nil {
					send(ctx, events, JobEvent{Job: PrintJob{ID: jobID, PrinterName: printerName}, Err: err, Time: time.Now()})
				}
				return
			}

			if first || !slices.Equal(last, job.Status) {
				log.Debugf("[WATCH] job %s-%d: %v", printerName, jobID, job.Status)
				if !send(ctx, events, JobEvent{Job: job, Time: time.Now()}) {
					return
				}
				last = job.Status
				first = false
			}
			if job.Finished() {
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			case _, ok := <-signals:
				if !ok {
					signals = nil
				}
			}
		}
	}()

	return events
}

func send(ctx context.Context, events chan<- JobEvent, ev JobEvent) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
