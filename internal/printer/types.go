// Package printer is the cross-platform printing core. It resolves a native
// backend (CUPS, the lpstat tool chain or the Windows spooler), normalizes the
// printers and jobs it reports, and dispatches print submissions either to the
// backend or to an lpr subprocess when the backend cannot print raw data.
package printer

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

type PrinterStatus string

const (
	StatusIdle     PrinterStatus = "IDLE"
	StatusPrinting PrinterStatus = "PRINTING"
	StatusStopped  PrinterStatus = "STOPPED"
	// StatusUnknown is never produced by normalization. An unmapped raw state
	// leaves Status empty; callers may substitute StatusUnknown for display.
	StatusUnknown PrinterStatus = "UNKNOWN"
)

// Job status values shared by the backends. Each backend may report others.
const (
	JobPending   = "PENDING"
	JobPaused    = "PAUSED"
	JobPrinting  = "PRINTING"
	JobPrinted   = "PRINTED"
	JobCancelled = "CANCELLED"
	JobAborted   = "ABORTED"
	JobDeleted   = "DELETED"
	JobComplete  = "COMPLETE"
)

const (
	DefaultType    = "RAW"
	DefaultDocName = "node print job"
)

// Attribute is one backend-supplied key/value pair. Time is filled in by
// normalization for keys ending in "time".
type Attribute struct {
	Key   string
	Value string
	Time  time.Time
}

// Attributes keeps backend attributes in the order the backend reported them.
type Attributes []Attribute

func (a Attributes) Lookup(key string) (Attribute, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr, true
		}
	}
	return Attribute{}, false
}

func (a Attributes) Get(key string) (string, bool) {
	attr, ok := a.Lookup(key)
	return attr.Value, ok
}

// Set replaces the value of an existing key in place or appends a new one.
func (a *Attributes) Set(key, value string) {
	for i := range *a {
		if (*a)[i].Key == key {
			(*a)[i].Value = value
			(*a)[i].Time = time.Time{}
			return
		}
	}
	*a = append(*a, Attribute{Key: key, Value: value})
}

func (a Attributes) Keys() []string {
	keys := make([]string, 0, len(a))
	for _, attr := range a {
		keys = append(keys, attr.Key)
	}
	return keys
}

func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	copy(out, a)
	return out
}

// MarshalJSON writes an object in attribute order. Normalized time values are
// written as RFC 3339 strings.
func (a Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, attr := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(attr.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		var value []byte
		if !attr.Time.IsZero() {
			value, err = json.Marshal(attr.Time.Format(time.RFC3339))
		} else {
			value, err = json.Marshal(attr.Value)
		}
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type PrinterDevice struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      PrinterStatus `json:"status,omitempty"`
	IsDefault   bool          `json:"isDefault"`
	Options     Attributes    `json:"options"`
	Jobs        []PrintJob    `json:"jobs,omitempty"`
}

type PrintJob struct {
	ID          int        `json:"id"`
	PrinterName string     `json:"printerName"`
	Name        string     `json:"name,omitempty"`
	User        string     `json:"user,omitempty"`
	Format      string     `json:"format,omitempty"`
	Priority    int        `json:"priority,omitempty"`
	Size        int        `json:"size,omitempty"`
	Status      []string   `json:"status"`
	Options     Attributes `json:"options,omitempty"`
}

// HasStatus reports whether the job carries the given status, ignoring case.
func (j PrintJob) HasStatus(status string) bool {
	for _, s := range j.Status {
		if strings.EqualFold(s, status) {
			return true
		}
	}
	return false
}

// Finished reports whether the job reached a state the backend will not leave.
func (j PrintJob) Finished() bool {
	for _, s := range []string{JobPrinted, JobCancelled, JobAborted, JobDeleted, JobComplete} {
		if j.HasStatus(s) {
			return true
		}
	}
	return false
}

// SubmissionRequest describes a raw print. Printer, DocName, Type and Options
// are optional and defaulted before dispatch.
type SubmissionRequest struct {
	Data    []byte            `json:"data"`
	Printer string            `json:"printer,omitempty"`
	DocName string            `json:"docname,omitempty"`
	Type    string            `json:"type,omitempty"`
	Options map[string]string `json:"options,omitempty"`
	Legacy  *LegacyOptions    `json:"legacy,omitempty"`
}

// LegacyOptions is the older media/fit-to-page request shape.
type LegacyOptions struct {
	Media     string `json:"media"`
	FitToPage string `json:"fit_to_page"`
}

type FileRequest struct {
	Filename string            `json:"filename"`
	Printer  string            `json:"printer,omitempty"`
	DocName  string            `json:"docname,omitempty"`
	Options  map[string]string `json:"options,omitempty"`
}

// DriverOptions maps a capability category (PageSize, ColorModel, ...) to its
// choices and whether each one is currently selected.
type DriverOptions map[string]map[string]bool

type DispatchPath string

const (
	PathNone       DispatchPath = ""
	PathNative     DispatchPath = "native"
	PathSubprocess DispatchPath = "subprocess"
)

type DispatchState string

const (
	StatePending              DispatchState = "PENDING"
	StateDispatchedNative     DispatchState = "DISPATCHED_NATIVE"
	StateDispatchedSubprocess DispatchState = "DISPATCHED_SUBPROCESS"
	StateSucceeded            DispatchState = "SUCCEEDED"
	StateFailed               DispatchState = "FAILED"
)

// Result is the outcome of one submission. JobID is zero on the subprocess
// path, where lpr does not report one.
type Result struct {
	JobID int
	Path  DispatchPath
	Err   error
}

type CancelOutcome string

const (
	CancelOutcomeCancelled       CancelOutcome = "CANCELLED"
	CancelOutcomeDeleted         CancelOutcome = "DELETED"
	CancelOutcomeAlreadyFinished CancelOutcome = "ALREADY_FINISHED"
)

// JobEvent is emitted by WatchJob whenever the observed job changes. Gone is
// set once the backend no longer knows the job.
type JobEvent struct {
	Job  PrintJob
	Gone bool
	Err  error
	Time time.Time
}
