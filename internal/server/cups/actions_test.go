package cups

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/AvengeMedia/dankprint/internal/printer"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ippCall struct {
	op   uint16
	req  *ippResponse
	body []byte
}

func (c ippCall) opAttr(name string) string {
	if a, ok := c.req.Groups[0].get(name); ok {
		return a.String()
	}
	return ""
}

type fakeCUPS struct {
	mu     sync.Mutex
	calls  []ippCall
	handle func(call ippCall) (uint16, []ippGroup)
	ppds   map[string]string
}

func newFakeCUPS(t *testing.T, handle func(call ippCall) (uint16, []ippGroup)) (*Backend, *fakeCUPS) {
	t.Helper()
	f := &fakeCUPS{handle: handle, ppds: map[string]string{}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			name := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/printers/"), ".ppd")
			ppd, ok := f.ppds[name]
			if !ok {
				http.NotFound(w, r)
				return
			}
			io.WriteString(w, ppd)
			return
		}

		assert.Equal(t, "application/ipp", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		if !assert.NoError(t, err) {
			return
		}
		req, err := parseIPPResponse(body)
		if !assert.NoError(t, err) {
			return
		}

		call := ippCall{op: req.Status, req: req, body: body}
		f.mu.Lock()
		f.calls = append(f.calls, call)
		f.mu.Unlock()

		status, groups := f.handle(call)
		w.Header().Set("Content-Type", "application/ipp")
		w.Write(encodeResponse(status, req.RequestID, groups...))
	}))
	t.Cleanup(srv.Close)

	return NewBackend(srv.URL, srv.Client(), afero.NewMemMapFs()), f
}

func printerGroup(attrs ...ippAttribute) ippGroup {
	return ippGroup{Tag: IPP_TAG_PRINTER, Attrs: attrs}
}

func jobGroup(attrs ...ippAttribute) ippGroup {
	return ippGroup{Tag: IPP_TAG_JOB, Attrs: attrs}
}

func TestBackend_GetPrinters(t *testing.T) {
	b, f := newFakeCUPS(t, func(call ippCall) (uint16, []ippGroup) {
		switch call.op {
		case IPP_OP_CUPS_GET_PRINTERS:
			return IPP_STATUS_OK, []ippGroup{
				printerGroup(
					stringAttr(IPP_TAG_NAME, "printer-name", "office"),
					intAttr(IPP_TAG_ENUM, "printer-state", 3),
					stringAttr(IPP_TAG_TEXT, "printer-info", "Office Laser"),
					intAttr(IPP_TAG_INTEGER, "printer-state-change-time", 1700000000),
					stringAttr(IPP_TAG_KEYWORD, "printer-state-reasons", "none"),
				),
				printerGroup(
					stringAttr(IPP_TAG_NAME, "printer-name", "lab"),
					intAttr(IPP_TAG_ENUM, "printer-state", 5),
				),
			}
		case IPP_OP_CUPS_GET_DEFAULT:
			return IPP_STATUS_OK, []ippGroup{printerGroup(stringAttr(IPP_TAG_NAME, "printer-name", "lab"))}
		case IPP_OP_GET_JOBS:
			if !strings.HasSuffix(call.opAttr("printer-uri"), "/printers/office") {
				return IPP_STATUS_ERROR_NOT_FOUND, nil
			}
			assert.Equal(t, "not-completed", call.opAttr("which-jobs"))
			return IPP_STATUS_OK, []ippGroup{jobGroup(
				intAttr(IPP_TAG_INTEGER, "job-id", 12),
				stringAttr(IPP_TAG_NAME, "job-name", "report"),
				intAttr(IPP_TAG_ENUM, "job-state", 5),
				stringAttr(IPP_TAG_URI, "job-printer-uri", "ipp://localhost:631/printers/office"),
				stringAttr(IPP_TAG_NAME, "job-originating-user-name", "alice"),
				intAttr(IPP_TAG_INTEGER, "job-k-octets", 2),
				intAttr(IPP_TAG_INTEGER, "time-at-creation", 1700000100),
				intAttr(IPP_TAG_INTEGER, "time-at-completed", 0),
			)}
		}
		t.Errorf("unexpected operation 0x%04x", call.op)
		return IPP_STATUS_SERVER_ERROR, nil
	})

	printers, err := b.GetPrinters(context.Background())
	require.NoError(t, err)
	require.Len(t, printers, 2)

	office := printers[0]
	assert.Equal(t, "office", office.Name)
	assert.Equal(t, "Office Laser", office.Description)
	assert.False(t, office.IsDefault)
	state, _ := office.Options.Get("printer-state")
	assert.Equal(t, "3", state)
	require.Len(t, office.Jobs, 1)

	job := office.Jobs[0]
	assert.Equal(t, 12, job.ID)
	assert.Equal(t, "office", job.PrinterName)
	assert.Equal(t, "alice", job.User)
	assert.Equal(t, 2048, job.Size)
	created, ok := job.Options.Get("creationTime")
	assert.True(t, ok)
	assert.Equal(t, "1700000100", created)
	_, ok = job.Options.Get("completedTime")
	assert.False(t, ok)

	assert.True(t, printers[1].IsDefault)
	assert.Empty(t, printers[1].Jobs)

	normalized := printer.NormalizePrinter(office)
	assert.Equal(t, printer.StatusIdle, normalized.Status)
	assert.Equal(t, []string{"PRINTING"}, normalized.Jobs[0].Status)
	changed, _ := normalized.Options.Lookup("printer-state-change-time")
	assert.Equal(t, int64(1700000000), changed.Time.Unix())

	assert.NotEmpty(t, f.calls)
	assert.Equal(t, b.user, f.calls[0].opAttr("requesting-user-name"))
}

func TestBackend_GetDefaultPrinterName_NoDefault(t *testing.T) {
	b, _ := newFakeCUPS(t, func(ippCall) (uint16, []ippGroup) {
		return IPP_STATUS_ERROR_NOT_FOUND, nil
	})

	name, err := b.GetDefaultPrinterName(context.Background())
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestBackend_GetJob(t *testing.T) {
	b, f := newFakeCUPS(t, func(call ippCall) (uint16, []ippGroup) {
		if strings.HasSuffix(call.opAttr("job-uri"), "/jobs/404") {
			return IPP_STATUS_ERROR_NOT_FOUND, nil
		}
		return IPP_STATUS_OK, []ippGroup{jobGroup(
			intAttr(IPP_TAG_INTEGER, "job-id", 42),
			intAttr(IPP_TAG_ENUM, "job-state", 9),
			stringAttr(IPP_TAG_URI, "job-printer-uri", "ipp://localhost:631/printers/test_printer"),
		)}
	})

	job, err := b.GetJob(context.Background(), "test_printer", 42)
	require.NoError(t, err)
	assert.Equal(t, 42, job.ID)
	assert.Equal(t, "test_printer", job.PrinterName)
	assert.Equal(t, uint16(IPP_OP_GET_JOB_ATTRS), f.calls[0].op)
	assert.True(t, strings.HasPrefix(f.calls[0].opAttr("job-uri"), "ipp://"))

	_, err = b.GetJob(context.Background(), "test_printer", 404)
	assert.ErrorIs(t, err, printer.ErrJobNotFound)
}

func TestBackend_SetJob(t *testing.T) {
	var status uint16 = IPP_STATUS_OK
	b, f := newFakeCUPS(t, func(ippCall) (uint16, []ippGroup) {
		return status, nil
	})
	ctx := context.Background()

	ok, err := b.SetJob(ctx, "office", 5, "CANCEL")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint16(IPP_OP_CANCEL_JOB), f.calls[0].op)

	ok, err = b.SetJob(ctx, "office", 5, "PAUSE")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint16(IPP_OP_HOLD_JOB), f.calls[1].op)
	assert.Equal(t, "indefinite", f.calls[1].opAttr("job-hold-until"))

	status = IPP_STATUS_ERROR_NOT_POSSIBLE
	ok, err = b.SetJob(ctx, "office", 5, "RESTART")
	require.NoError(t, err)
	assert.False(t, ok)

	status = IPP_STATUS_ERROR_NOT_FOUND
	_, err = b.SetJob(ctx, "office", 5, "RESUME")
	assert.ErrorIs(t, err, printer.ErrJobNotFound)

	_, err = b.SetJob(ctx, "office", 5, "RETAIN")
	assert.Error(t, err)
}

func TestBackend_SupportedLists(t *testing.T) {
	b := NewBackend("", nil, nil)

	commands, err := b.GetSupportedJobCommands(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"CANCEL", "PAUSE", "RESTART", "RESUME"}, commands)

	formats, err := b.GetSupportedPrintFormats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"AUTO", "COMMAND", "JPEG", "PDF", "POSTSCRIPT", "RAW", "TEXT"}, formats)
}

func TestBackend_PrintDirect(t *testing.T) {
	b, f := newFakeCUPS(t, func(call ippCall) (uint16, []ippGroup) {
		return IPP_STATUS_OK, []ippGroup{jobGroup(intAttr(IPP_TAG_INTEGER, "job-id", 42))}
	})

	id, err := b.PrintDirect(context.Background(), []byte("hello"), "test_printer", "node print job", "RAW",
		map[string]string{"copies": "2", "collate": "true", "media": "A4"})
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	require.Len(t, f.calls, 1)
	call := f.calls[0]
	assert.Equal(t, uint16(IPP_OP_PRINT_JOB), call.op)
	assert.Equal(t, "application/vnd.cups-raw", call.opAttr("document-format"))
	assert.Equal(t, "node print job", call.opAttr("job-name"))
	assert.True(t, bytes.HasSuffix(call.body, []byte("hello")))

	require.Len(t, call.req.Groups, 2)
	jobAttrs := call.req.Groups[1]
	copies, _ := jobAttrs.get("copies")
	assert.Equal(t, []interface{}{2}, copies.Values)
	collate, _ := jobAttrs.get("collate")
	assert.Equal(t, []interface{}{true}, collate.Values)
	media, _ := jobAttrs.get("media")
	assert.Equal(t, []interface{}{"A4"}, media.Values)

	_, err = b.PrintDirect(context.Background(), []byte("x"), "test_printer", "doc", "BITMAP", nil)
	assert.ErrorContains(t, err, "unsupported format type")
}

func TestOptionAttributes_SkipsEmptyValues(t *testing.T) {
	attrs := optionAttributes(map[string]string{"media": "", "fit-to-page": "false"})
	require.Len(t, attrs, 1)
	assert.Equal(t, "fit-to-page", attrs[0].Name)
	assert.Equal(t, []interface{}{false}, attrs[0].Values)
}

func TestBackend_PrintFile(t *testing.T) {
	var status uint16 = IPP_STATUS_OK
	b, f := newFakeCUPS(t, func(ippCall) (uint16, []ippGroup) {
		if status != IPP_STATUS_OK {
			return status, []ippGroup{{Tag: IPP_TAG_OPERATION, Attrs: []ippAttribute{
				stringAttr(IPP_TAG_TEXT, "status-message", "Unsupported document-format."),
			}}}
		}
		return status, []ippGroup{jobGroup(intAttr(IPP_TAG_INTEGER, "job-id", 43))}
	})
	require.NoError(t, afero.WriteFile(b.fs, "/docs/a.pdf", []byte("%PDF-1.4"), 0o644))

	reply, err := b.PrintFile(context.Background(), "/docs/a.pdf", "a.pdf", "office", nil)
	require.NoError(t, err)
	assert.Equal(t, "43", reply)
	assert.Equal(t, "application/octet-stream", f.calls[0].opAttr("document-format"))

	status = IPP_STATUS_ERROR_DOCUMENT_FORMAT
	reply, err = b.PrintFile(context.Background(), "/docs/a.pdf", "a.pdf", "office", nil)
	require.NoError(t, err)
	assert.Contains(t, reply, "Unsupported document-format.")

	_, err = b.PrintFile(context.Background(), "/docs/missing.pdf", "x", "office", nil)
	assert.Error(t, err)
}

func TestBackend_GetPrinterDriverOptions(t *testing.T) {
	b, f := newFakeCUPS(t, func(ippCall) (uint16, []ippGroup) { return IPP_STATUS_OK, nil })
	f.ppds["office"] = samplePPD

	opts, err := b.GetPrinterDriverOptions(context.Background(), "office")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"Letter": true, "A4": false, "Legal": false}, opts["PageSize"])

	_, err = b.GetPrinterDriverOptions(context.Background(), "ghost")
	assert.ErrorContains(t, err, "no PPD available")
}

func TestBackend_ServiceScenario(t *testing.T) {
	b, _ := newFakeCUPS(t, func(call ippCall) (uint16, []ippGroup) {
		switch call.op {
		case IPP_OP_PRINT_JOB:
			return IPP_STATUS_OK, []ippGroup{jobGroup(intAttr(IPP_TAG_INTEGER, "job-id", 7))}
		case IPP_OP_GET_JOB_ATTRS:
			return IPP_STATUS_OK, []ippGroup{jobGroup(
				intAttr(IPP_TAG_INTEGER, "job-id", 7),
				intAttr(IPP_TAG_ENUM, "job-state", 3),
				stringAttr(IPP_TAG_URI, "job-printer-uri", "ipp://localhost:631/printers/test_printer"),
			)}
		}
		return IPP_STATUS_ERROR_NOT_FOUND, nil
	})
	svc := printer.NewService(b)
	ctx := context.Background()

	id, err := svc.PrintDirect(ctx, printer.SubmissionRequest{Data: []byte("hello"), Printer: "test_printer"})
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	job, err := svc.Job(ctx, "test_printer", id)
	require.NoError(t, err)
	assert.Equal(t, "test_printer", job.PrinterName)
	assert.Equal(t, []string{"PENDING"}, job.Status)
}

func TestNew_Probe(t *testing.T) {
	b, _ := newFakeCUPS(t, func(ippCall) (uint16, []ippGroup) {
		return IPP_STATUS_OK, []ippGroup{printerGroup(stringAttr(IPP_TAG_NAME, "printer-name", "office"))}
	})

	got, err := New(printer.ProviderOptions{CUPSURL: b.BaseURL})
	require.NoError(t, err)
	assert.Equal(t, "cups", got.Name())

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err = New(printer.ProviderOptions{CUPSURL: url})
	assert.ErrorContains(t, err, "not reachable")
}
