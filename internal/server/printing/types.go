package printing

import (
	"time"

	"github.com/AvengeMedia/dankprint/internal/printer"
)

type SetJobResult struct {
	Success bool `json:"success"`
}

type CancelJobResult struct {
	Outcome printer.CancelOutcome `json:"outcome"`
}

type PrintResult struct {
	JobID int                  `json:"jobId"`
	Path  printer.DispatchPath `json:"path,omitempty"`
}

type PaperSizeResult struct {
	PaperSize string `json:"paperSize"`
}

type DefaultPrinterResult struct {
	Name string `json:"name"`
}

// JobEvent is the wire form of printer.JobEvent.
type JobEvent struct {
	Job   printer.PrintJob `json:"job"`
	Gone  bool             `json:"gone,omitempty"`
	Error string           `json:"error,omitempty"`
	Time  time.Time        `json:"time"`
}

func newJobEvent(ev printer.JobEvent) JobEvent {
	out := JobEvent{Job: ev.Job, Gone: ev.Gone, Time: ev.Time}
	if ev.Err != nil {
		out.Error = ev.Err.Error()
	}
	return out
}
