package printer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AvengeMedia/dankprint/internal/log"
)

// Submit normalizes req and dispatches it. The returned channel yields exactly
// one Result and is then closed.
func (s *Service) Submit(ctx context.Context, req SubmissionRequest) <-chan Result {
	out := make(chan Result, 1)
	req = normalizeSubmission(req)
	go func() {
		defer close(out)
		out <- s.dispatch(ctx, req)
	}()
	return out
}

// SubmitFile validates req and hands the file to the backend.
func (s *Service) SubmitFile(ctx context.Context, req FileRequest) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		out <- s.dispatchFile(ctx, req)
	}()
	return out
}

type dispatchRun struct {
	state DispatchState
	path  DispatchPath
}

func (r *dispatchRun) transition(next DispatchState) {
	log.Debugf("[DISPATCH] %s -> %s", r.state, next)
	r.state = next
}

func (r *dispatchRun) finish(res Result) Result {
	res.Path = r.path
	if res.Err != nil {
		r.transition(StateFailed)
	} else {
		r.transition(StateSucceeded)
	}
	return res
}

func (r *dispatchRun) recoverPanic(op string, res *Result) {
	if p := recover(); p != nil {
		log.Errorf("[DISPATCH] %s panicked: %v", op, p)
		*res = r.finish(Result{Err: &BackendError{Op: op, Err: fmt.Errorf("backend panic: %v", p)}})
	}
}

func (s *Service) dispatch(ctx context.Context, req SubmissionRequest) (res Result) {
	run := &dispatchRun{state: StatePending}
	defer run.recoverPanic("printDirect", &res)

	if req.Printer == "" {
		name, err := s.DefaultPrinterName(ctx)
		if err != nil {
			return run.finish(Result{Err: &ValidationError{
				Field: "printer",
				Msg:   "printer parameter or default printer is not defined",
				Err:   err,
			}})
		}
		req.Printer = name
	}

	if raw, ok := s.backend.(RawPrinter); ok {
		run.path = PathNative
		run.transition(StateDispatchedNative)
		id, err := raw.PrintDirect(ctx, req.Data, req.Printer, req.DocName, req.Type, req.Options)
		if err != nil {
			return run.finish(Result{Err: asBackendError("printDirect", err)})
		}
		if id == 0 {
			return run.finish(Result{Err: &BackendError{Op: "printDirect", Err: errSomethingWrong}})
		}
		return run.finish(Result{JobID: id})
	}

	if s.goos == "windows" {
		return run.finish(Result{Err: &UnsupportedOperationError{Op: "printDirect", Backend: s.backend.Name()}})
	}

	run.path = PathSubprocess
	run.transition(StateDispatchedSubprocess)
	path, err := s.spooler.Prepare(req.Data)
	if err != nil {
		return run.finish(Result{Err: &SubprocessError{Command: s.spooler.command(), Err: err}})
	}
	if err := s.spooler.Send(ctx, req.Printer, path); err != nil {
		return run.finish(Result{Err: err})
	}
	return run.finish(Result{})
}

func (s *Service) dispatchFile(ctx context.Context, req FileRequest) (res Result) {
	run := &dispatchRun{state: StatePending}
	defer run.recoverPanic("printFile", &res)

	req, err := s.validateFile(ctx, req)
	if err != nil {
		return run.finish(Result{Err: err})
	}

	run.path = PathNative
	run.transition(StateDispatchedNative)
	reply, err := s.backend.PrintFile(ctx, req.Filename, req.DocName, req.Printer, req.Options)
	if err != nil {
		return run.finish(Result{Err: asBackendError("printFile", err)})
	}
	reply = strings.TrimSpace(reply)
	id, convErr := strconv.Atoi(reply)
	if convErr != nil || id <= 0 {
		if reply == "" {
			return run.finish(Result{Err: &BackendError{Op: "printFile", Err: errSomethingWrong}})
		}
		return run.finish(Result{Err: &BackendError{Op: "printFile", Err: errors.New(reply)}})
	}
	return run.finish(Result{JobID: id})
}

func asBackendError(op string, err error) error {
	var be *BackendError
	if errors.As(err, &be) {
		return err
	}
	return &BackendError{Op: op, Err: err}
}
