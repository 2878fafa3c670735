package printer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoDefaultPrinter = errors.New("no default printer")
	ErrJobNotFound      = errors.New("job not found")
	errSomethingWrong   = errors.New("something went wrong")
)

// ResolutionError means no backend could be opened for the platform.
type ResolutionError struct {
	GOOS   string
	GOARCH string
	Tried  []string
	Err    error
}

func (e *ResolutionError) Error() string {
	msg := fmt.Sprintf("no printing backend available for %s/%s", e.GOOS, e.GOARCH)
	if len(e.Tried) > 0 {
		msg += " (tried " + strings.Join(e.Tried, ", ") + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ResolutionError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e *ValidationError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Field == "" {
		return msg
	}
	return e.Field + ": " + msg
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BackendError carries a backend failure. Its message is the backend's own.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	if e.Err == nil {
		return errSomethingWrong.Error()
	}
	return e.Err.Error()
}

func (e *BackendError) Unwrap() error { return e.Err }

// SubprocessError reports a failed external print command.
type SubprocessError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *SubprocessError) Error() string {
	var parts []string
	if e.Err != nil {
		parts = append(parts, "ERROR: "+e.Err.Error())
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		parts = append(parts, "STD ERROR: "+stderr)
	}
	if len(parts) == 0 {
		return e.Command + " failed"
	}
	return e.Command + ": " + strings.Join(parts, "; ")
}

func (e *SubprocessError) Unwrap() error { return e.Err }

type UnsupportedOperationError struct {
	Op      string
	Backend string
}

func (e *UnsupportedOperationError) Error() string {
	if e.Backend == "" {
		return e.Op + " is not supported"
	}
	return fmt.Sprintf("%s is not supported by the %s backend", e.Op, e.Backend)
}
