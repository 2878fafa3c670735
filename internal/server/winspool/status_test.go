package winspool

import (
	"testing"

	"github.com/AvengeMedia/dankprint/internal/printer"
	"github.com/stretchr/testify/assert"
)

func TestPrinterStatus(t *testing.T) {
	tests := []struct {
		name   string
		status uint32
		want   printer.PrinterStatus
	}{
		{"ready", 0, printer.StatusIdle},
		{"printing", PRINTER_STATUS_PRINTING, printer.StatusPrinting},
		{"warming up", PRINTER_STATUS_WARMING_UP, printer.StatusPrinting},
		{"paused", PRINTER_STATUS_PAUSED, printer.StatusStopped},
		{"offline while printing", PRINTER_STATUS_OFFLINE | PRINTER_STATUS_PRINTING, printer.StatusStopped},
		{"toner low", PRINTER_STATUS_TONER_LOW, printer.StatusIdle},
		{"power save", PRINTER_STATUS_POWER_SAVE, printer.StatusIdle},
		{"server unknown", PRINTER_STATUS_SERVER_UNKNOWN, printer.StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, printerStatus(tt.status))
		})
	}
}

func TestPrinterStatusIsKeptByNormalizer(t *testing.T) {
	p := printer.PrinterDevice{Name: "HP", Status: printerStatus(PRINTER_STATUS_PAUSED)}
	p.Options.Set("printer-state", "3")
	assert.Equal(t, printer.StatusStopped, printer.NormalizePrinter(p).Status)
}

func TestJobStatus(t *testing.T) {
	assert.Equal(t, []string{printer.JobPending}, jobStatus(0))
	assert.Equal(t, []string{printer.JobPrinting}, jobStatus(JOB_STATUS_PRINTING))
	assert.Equal(t, []string{"SPOOLING", printer.JobPrinting}, jobStatus(JOB_STATUS_SPOOLING|JOB_STATUS_PRINTING))
	assert.Equal(t, []string{printer.JobPrinted, printer.JobDeleted}, jobStatus(JOB_STATUS_PRINTED|JOB_STATUS_DELETED))

	job := printer.PrintJob{Status: jobStatus(JOB_STATUS_PRINTED | JOB_STATUS_COMPLETE)}
	assert.True(t, job.Finished())
	assert.False(t, printer.PrintJob{Status: jobStatus(JOB_STATUS_PAUSED)}.Finished())
}

func TestStatusNames(t *testing.T) {
	assert.Empty(t, statusNames(printerStatusBits, 0))
	assert.Equal(t, []string{"PAPER_OUT", "DOOR_OPEN"}, statusNames(printerStatusBits, PRINTER_STATUS_PAPER_OUT|PRINTER_STATUS_DOOR_OPEN))
}

func TestSupportedJobCommands(t *testing.T) {
	assert.Equal(t, []string{
		"CANCEL", "DELETE", "LAST-PAGE-EJECTED", "PAUSE", "RELEASE",
		"RESTART", "RESUME", "RETAIN", "SENT-TO-PRINTER",
	}, supportedJobCommands())
}
