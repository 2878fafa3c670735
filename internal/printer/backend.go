package printer

import (
	"context"
	"time"

	"github.com/spf13/afero"
)

// Backend is the native printing subsystem of one platform.
type Backend interface {
	Name() string
	GetPrinters(ctx context.Context) ([]PrinterDevice, error)
	GetPrinter(ctx context.Context, name string) (PrinterDevice, error)
	// GetDefaultPrinterName returns "" when the subsystem has no default.
	GetDefaultPrinterName(ctx context.Context) (string, error)
	GetSupportedPrintFormats(ctx context.Context) ([]string, error)
	GetSupportedJobCommands(ctx context.Context) ([]string, error)
	GetJob(ctx context.Context, printerName string, jobID int) (PrintJob, error)
	SetJob(ctx context.Context, printerName string, jobID int, command string) (bool, error)
	// PrintFile returns the job id as a decimal string, or a message when the
	// subsystem did not accept the file.
	PrintFile(ctx context.Context, filename, docname, printerName string, options map[string]string) (string, error)
}

// RawPrinter is implemented by backends that can spool raw bytes directly.
// A zero job id without an error means the backend failed silently.
type RawPrinter interface {
	PrintDirect(ctx context.Context, data []byte, printerName, docname, dataType string, options map[string]string) (int, error)
}

type DriverOptionsProvider interface {
	GetPrinterDriverOptions(ctx context.Context, printerName string) (DriverOptions, error)
}

// Notifier is implemented by backends that can signal job or printer changes.
// A signal carries no payload; subscribers re-query what they care about.
type Notifier interface {
	Subscribe(id string) <-chan struct{}
	Unsubscribe(id string)
}

// ProviderOptions is handed to every provider when the resolver tries it.
type ProviderOptions struct {
	// Backend pins a provider by name. Empty or "auto" tries them in order.
	Backend        string
	CUPSURL        string
	RequestTimeout time.Duration
	CommandTimeout time.Duration
	AccessLog      string
	Fs             afero.Fs
}
