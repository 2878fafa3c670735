package printer

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/AvengeMedia/dankprint/internal/log"
	"golang.org/x/exp/maps"
)

const defaultWatchInterval = 2 * time.Second

// Service is the public printing API over one resolved backend.
type Service struct {
	backend       Backend
	spooler       *LprSpooler
	goos          string
	watchInterval time.Duration
}

type Option func(*Service)

func WithSpooler(spooler *LprSpooler) Option {
	return func(s *Service) { s.spooler = spooler }
}

// WithGOOS overrides the platform used to pick the dispatch path.
func WithGOOS(goos string) Option {
	return func(s *Service) { s.goos = goos }
}

func WithWatchInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.watchInterval = d
		}
	}
}

func NewService(backend Backend, opts ...Option) *Service {
	s := &Service{
		backend:       backend,
		goos:          runtime.GOOS,
		watchInterval: defaultWatchInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.spooler == nil {
		s.spooler = NewLprSpooler()
	}
	return s
}

func (s *Service) Backend() Backend {
	return s.backend
}

func (s *Service) Printers(ctx context.Context) ([]PrinterDevice, error) {
	printers, err := s.backend.GetPrinters(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PrinterDevice, len(printers))
	for i, p := range printers {
		out[i] = NormalizePrinter(p)
	}
	return out, nil
}

// Printer returns one printer. An empty name means the default printer.
func (s *Service) Printer(ctx context.Context, name string) (PrinterDevice, error) {
	name, err := s.printerOrDefault(ctx, name)
	if err != nil {
		return PrinterDevice{}, err
	}
	p, err := s.backend.GetPrinter(ctx, name)
	if err != nil {
		return PrinterDevice{}, err
	}
	return NormalizePrinter(p), nil
}

// DefaultPrinterName asks the backend first and falls back to the first
// enumerated printer flagged as default.
func (s *Service) DefaultPrinterName(ctx context.Context) (string, error) {
	name, err := s.backend.GetDefaultPrinterName(ctx)
	if err != nil {
		return "", err
	}
	if name != "" {
		return name, nil
	}

	log.Debug("[Printer] backend reports no default printer, scanning printers")
	printers, err := s.backend.GetPrinters(ctx)
	if err != nil {
		return "", err
	}
	for _, p := range printers {
		if p.IsDefault {
			return p.Name, nil
		}
	}
	return "", ErrNoDefaultPrinter
}

func (s *Service) printerOrDefault(ctx context.Context, name string) (string, error) {
	if name != "" {
		return name, nil
	}
	return s.DefaultPrinterName(ctx)
}

func (s *Service) DriverOptions(ctx context.Context, name string) (DriverOptions, error) {
	provider, ok := s.backend.(DriverOptionsProvider)
	if !ok {
		return nil, &UnsupportedOperationError{Op: "getPrinterDriverOptions", Backend: s.backend.Name()}
	}
	name, err := s.printerOrDefault(ctx, name)
	if err != nil {
		return nil, err
	}
	return provider.GetPrinterDriverOptions(ctx, name)
}

// SelectedPaperSize returns the selected PageSize choice, or "" when none is
// selected. With several selected, the lexicographically first one wins.
func (s *Service) SelectedPaperSize(ctx context.Context, name string) (string, error) {
	opts, err := s.DriverOptions(ctx, name)
	if err != nil {
		return "", err
	}
	return selectedChoice(opts["PageSize"]), nil
}

func selectedChoice(choices map[string]bool) string {
	keys := maps.Keys(choices)
	sort.Strings(keys)
	for _, k := range keys {
		if choices[k] {
			return k
		}
	}
	return ""
}

func (s *Service) SupportedPrintFormats(ctx context.Context) ([]string, error) {
	return s.backend.GetSupportedPrintFormats(ctx)
}

func (s *Service) SupportedJobCommands(ctx context.Context) ([]string, error) {
	return s.backend.GetSupportedJobCommands(ctx)
}

func (s *Service) Job(ctx context.Context, printerName string, jobID int) (PrintJob, error) {
	if printerName == "" {
		return PrintJob{}, &ValidationError{Field: "printer", Msg: "printer name is required"}
	}
	if jobID <= 0 {
		return PrintJob{}, &ValidationError{Field: "jobId", Msg: "job id must be positive"}
	}
	job, err := s.backend.GetJob(ctx, printerName, jobID)
	if err != nil {
		return PrintJob{}, err
	}
	return NormalizeJob(job), nil
}

// SetJob sends a job command. The command is matched case-insensitively
// against the backend's supported commands.
func (s *Service) SetJob(ctx context.Context, printerName string, jobID int, command string) (bool, error) {
	if printerName == "" {
		return false, &ValidationError{Field: "printer", Msg: "printer name is required"}
	}
	if jobID <= 0 {
		return false, &ValidationError{Field: "jobId", Msg: "job id must be positive"}
	}

	command = strings.ToUpper(strings.TrimSpace(command))
	supported, err := s.backend.GetSupportedJobCommands(ctx)
	if err != nil {
		return false, err
	}
	if !contains(supported, command) {
		return false, &ValidationError{
			Field: "command",
			Msg:   fmt.Sprintf("unsupported job command %q (supported: %s)", command, strings.Join(supported, ", ")),
		}
	}
	return s.backend.SetJob(ctx, printerName, jobID, command)
}

// CancelJob cancels a job and reports what became of it. A job that is gone
// or already in a terminal state is an outcome, not an error.
func (s *Service) CancelJob(ctx context.Context, printerName string, jobID int) (CancelOutcome, error) {
	job, err := s.Job(ctx, printerName, jobID)
	switch {
	case errors.Is(err, ErrJobNotFound):
		return CancelOutcomeDeleted, nil
	case err != nil:
		return "", err
	case job.Finished():
		log.Debugf("[Printer] job %s-%d already finished: %v", printerName, jobID, job.Status)
		return CancelOutcomeAlreadyFinished, nil
	}

	ok, err := s.SetJob(ctx, printerName, jobID, "CANCEL")
	if errors.Is(err, ErrJobNotFound) {
		return CancelOutcomeDeleted, nil
	}
	if err != nil {
		return "", err
	}

	job, err = s.Job(ctx, printerName, jobID)
	switch {
	case errors.Is(err, ErrJobNotFound):
		return CancelOutcomeDeleted, nil
	case err != nil:
		return "", err
	case job.HasStatus(JobCancelled):
		return CancelOutcomeCancelled, nil
	case job.Finished():
		return CancelOutcomeAlreadyFinished, nil
	case !ok:
		return "", &BackendError{Op: "setJob", Err: fmt.Errorf("backend refused to cancel job %d", jobID)}
	}
	return CancelOutcomeCancelled, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
