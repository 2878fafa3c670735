// Package winspool is the Windows print spooler backend. The spooler calls
// live in backend_windows.go; the status tables here are shared with the
// tests on every platform.
package winspool

import (
	"sort"

	"github.com/AvengeMedia/dankprint/internal/printer"
	"golang.org/x/exp/maps"
)

// Printer status flags (PRINTER_INFO_2.Status)
const (
	PRINTER_STATUS_PAUSED            = 0x00000001
	PRINTER_STATUS_ERROR             = 0x00000002
	PRINTER_STATUS_PENDING_DELETION  = 0x00000004
	PRINTER_STATUS_PAPER_JAM         = 0x00000008
	PRINTER_STATUS_PAPER_OUT         = 0x00000010
	PRINTER_STATUS_MANUAL_FEED       = 0x00000020
	PRINTER_STATUS_PAPER_PROBLEM     = 0x00000040
	PRINTER_STATUS_OFFLINE           = 0x00000080
	PRINTER_STATUS_IO_ACTIVE         = 0x00000100
	PRINTER_STATUS_BUSY              = 0x00000200
	PRINTER_STATUS_PRINTING          = 0x00000400
	PRINTER_STATUS_OUTPUT_BIN_FULL   = 0x00000800
	PRINTER_STATUS_NOT_AVAILABLE     = 0x00001000
	PRINTER_STATUS_WAITING           = 0x00002000
	PRINTER_STATUS_PROCESSING        = 0x00004000
	PRINTER_STATUS_INITIALIZING      = 0x00008000
	PRINTER_STATUS_WARMING_UP        = 0x00010000
	PRINTER_STATUS_TONER_LOW         = 0x00020000
	PRINTER_STATUS_NO_TONER          = 0x00040000
	PRINTER_STATUS_PAGE_PUNT         = 0x00080000
	PRINTER_STATUS_USER_INTERVENTION = 0x00100000
	PRINTER_STATUS_OUT_OF_MEMORY     = 0x00200000
	PRINTER_STATUS_DOOR_OPEN         = 0x00400000
	PRINTER_STATUS_SERVER_UNKNOWN    = 0x00800000
	PRINTER_STATUS_POWER_SAVE        = 0x01000000
)

// Job status flags (JOB_INFO_2.Status)
const (
	JOB_STATUS_PAUSED            = 0x00000001
	JOB_STATUS_ERROR             = 0x00000002
	JOB_STATUS_DELETING          = 0x00000004
	JOB_STATUS_SPOOLING          = 0x00000008
	JOB_STATUS_PRINTING          = 0x00000010
	JOB_STATUS_OFFLINE           = 0x00000020
	JOB_STATUS_PAPEROUT          = 0x00000040
	JOB_STATUS_PRINTED           = 0x00000080
	JOB_STATUS_DELETED           = 0x00000100
	JOB_STATUS_BLOCKED_DEVQ      = 0x00000200
	JOB_STATUS_USER_INTERVENTION = 0x00000400
	JOB_STATUS_RESTART           = 0x00000800
	JOB_STATUS_COMPLETE          = 0x00001000
	JOB_STATUS_RETAINED          = 0x00002000
)

// SetJob commands
const (
	JOB_CONTROL_PAUSE             = 1
	JOB_CONTROL_RESUME            = 2
	JOB_CONTROL_CANCEL            = 3
	JOB_CONTROL_RESTART           = 4
	JOB_CONTROL_DELETE            = 5
	JOB_CONTROL_SENT_TO_PRINTER   = 6
	JOB_CONTROL_LAST_PAGE_EJECTED = 7
	JOB_CONTROL_RETAIN            = 8
	JOB_CONTROL_RELEASE           = 9
)

type statusBit struct {
	mask uint32
	name string
}

var printerStatusBits = []statusBit{
	{PRINTER_STATUS_PAUSED, "PAUSED"},
	{PRINTER_STATUS_ERROR, "ERROR"},
	{PRINTER_STATUS_PENDING_DELETION, "PENDING_DELETION"},
	{PRINTER_STATUS_PAPER_JAM, "PAPER_JAM"},
	{PRINTER_STATUS_PAPER_OUT, "PAPER_OUT"},
	{PRINTER_STATUS_MANUAL_FEED, "MANUAL_FEED"},
	{PRINTER_STATUS_PAPER_PROBLEM, "PAPER_PROBLEM"},
	{PRINTER_STATUS_OFFLINE, "OFFLINE"},
	{PRINTER_STATUS_IO_ACTIVE, "IO_ACTIVE"},
	{PRINTER_STATUS_BUSY, "BUSY"},
	{PRINTER_STATUS_PRINTING, "PRINTING"},
	{PRINTER_STATUS_OUTPUT_BIN_FULL, "OUTPUT_BIN_FULL"},
	{PRINTER_STATUS_NOT_AVAILABLE, "NOT_AVAILABLE"},
	{PRINTER_STATUS_WAITING, "WAITING"},
	{PRINTER_STATUS_PROCESSING, "PROCESSING"},
	{PRINTER_STATUS_INITIALIZING, "INITIALIZING"},
	{PRINTER_STATUS_WARMING_UP, "WARMING_UP"},
	{PRINTER_STATUS_TONER_LOW, "TONER_LOW"},
	{PRINTER_STATUS_NO_TONER, "NO_TONER"},
	{PRINTER_STATUS_PAGE_PUNT, "PAGE_PUNT"},
	{PRINTER_STATUS_USER_INTERVENTION, "USER_INTERVENTION"},
	{PRINTER_STATUS_OUT_OF_MEMORY, "OUT_OF_MEMORY"},
	{PRINTER_STATUS_DOOR_OPEN, "DOOR_OPEN"},
	{PRINTER_STATUS_SERVER_UNKNOWN, "SERVER_UNKNOWN"},
	{PRINTER_STATUS_POWER_SAVE, "POWER_SAVE"},
}

var jobStatusBits = []statusBit{
	{JOB_STATUS_PAUSED, printer.JobPaused},
	{JOB_STATUS_ERROR, "ERROR"},
	{JOB_STATUS_DELETING, "DELETING"},
	{JOB_STATUS_SPOOLING, "SPOOLING"},
	{JOB_STATUS_PRINTING, printer.JobPrinting},
	{JOB_STATUS_OFFLINE, "OFFLINE"},
	{JOB_STATUS_PAPEROUT, "PAPEROUT"},
	{JOB_STATUS_PRINTED, printer.JobPrinted},
	{JOB_STATUS_DELETED, printer.JobDeleted},
	{JOB_STATUS_BLOCKED_DEVQ, "BLOCKED_DEVQ"},
	{JOB_STATUS_USER_INTERVENTION, "USER_INTERVENTION"},
	{JOB_STATUS_RESTART, "RESTART"},
	{JOB_STATUS_COMPLETE, printer.JobComplete},
	{JOB_STATUS_RETAINED, "RETAINED"},
}

var jobCommands = map[string]uint32{
	"PAUSE":             JOB_CONTROL_PAUSE,
	"RESUME":            JOB_CONTROL_RESUME,
	"CANCEL":            JOB_CONTROL_CANCEL,
	"RESTART":           JOB_CONTROL_RESTART,
	"DELETE":            JOB_CONTROL_DELETE,
	"SENT-TO-PRINTER":   JOB_CONTROL_SENT_TO_PRINTER,
	"LAST-PAGE-EJECTED": JOB_CONTROL_LAST_PAGE_EJECTED,
	"RETAIN":            JOB_CONTROL_RETAIN,
	"RELEASE":           JOB_CONTROL_RELEASE,
}

func statusNames(bits []statusBit, status uint32) []string {
	names := []string{}
	for _, b := range bits {
		if status&b.mask != 0 {
			names = append(names, b.name)
		}
	}
	return names
}

// printerStatus folds the spooler's status bits into the shared vocabulary.
func printerStatus(status uint32) printer.PrinterStatus {
	const stopped = PRINTER_STATUS_PAUSED | PRINTER_STATUS_ERROR | PRINTER_STATUS_OFFLINE |
		PRINTER_STATUS_PAPER_JAM | PRINTER_STATUS_PAPER_OUT | PRINTER_STATUS_PAPER_PROBLEM |
		PRINTER_STATUS_NOT_AVAILABLE | PRINTER_STATUS_NO_TONER | PRINTER_STATUS_DOOR_OPEN |
		PRINTER_STATUS_USER_INTERVENTION | PRINTER_STATUS_PENDING_DELETION | PRINTER_STATUS_OUT_OF_MEMORY
	const busy = PRINTER_STATUS_PRINTING | PRINTER_STATUS_PROCESSING | PRINTER_STATUS_BUSY |
		PRINTER_STATUS_IO_ACTIVE | PRINTER_STATUS_WARMING_UP | PRINTER_STATUS_INITIALIZING

	switch {
	case status&stopped != 0:
		return printer.StatusStopped
	case status&busy != 0:
		return printer.StatusPrinting
	case status&PRINTER_STATUS_SERVER_UNKNOWN != 0:
		return printer.StatusUnknown
	default:
		return printer.StatusIdle
	}
}

// jobStatus lists every set bit. A job with no bits set is queued.
func jobStatus(status uint32) []string {
	names := statusNames(jobStatusBits, status)
	if len(names) == 0 {
		return []string{printer.JobPending}
	}
	return names
}

func supportedJobCommands() []string {
	commands := maps.Keys(jobCommands)
	sort.Strings(commands)
	return commands
}
