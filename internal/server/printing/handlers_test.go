package printing

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net"
	"testing"
	"time"

	mocks_printer "github.com/AvengeMedia/dankprint/internal/mocks/printer"
	"github.com/AvengeMedia/dankprint/internal/printer"
	"github.com/AvengeMedia/dankprint/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type rawBackend struct {
	*mocks_printer.MockBackend
	*mocks_printer.MockRawPrinter
}

type rawResponse struct {
	ID     int             `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

// call runs one request against svc and returns every response written
// before the handler returned.
func call(t *testing.T, svc *printer.Service, req models.Request) []rawResponse {
	t.Helper()
	server, client := net.Pipe()
	defer client.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer server.Close()
		HandleRequest(context.Background(), server, req, svc)
	}()

	var responses []rawResponse
	dec := json.NewDecoder(client)
	for {
		var resp rawResponse
		if err := dec.Decode(&resp); err != nil {
			break
		}
		responses = append(responses, resp)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("handler did not return")
	}
	return responses
}

func TestHandleRequest_UnknownMethod(t *testing.T) {
	svc := printer.NewService(mocks_printer.NewMockBackend(t))

	responses := call(t, svc, models.Request{ID: 1, Method: "printer.explode"})
	require.Len(t, responses, 1)
	assert.Equal(t, 1, responses[0].ID)
	assert.Equal(t, "unknown method: printer.explode", responses[0].Error)
}

func TestHandleRequest_GetDefaultPrinterName(t *testing.T) {
	b := mocks_printer.NewMockBackend(t)
	b.EXPECT().GetDefaultPrinterName(mock.Anything).Return("office", nil).Once()

	responses := call(t, printer.NewService(b), models.Request{ID: 2, Method: "printer.getDefaultPrinterName"})
	require.Len(t, responses, 1)

	var result DefaultPrinterResult
	require.NoError(t, json.Unmarshal(responses[0].Result, &result))
	assert.Equal(t, "office", result.Name)
}

func TestHandleRequest_GetJobMissingParams(t *testing.T) {
	svc := printer.NewService(mocks_printer.NewMockBackend(t))

	responses := call(t, svc, models.Request{ID: 3, Method: "printer.getJob", Params: map[string]interface{}{"printer": "office"}})
	require.Len(t, responses, 1)
	assert.Equal(t, "missing or invalid jobId parameter", responses[0].Error)

	responses = call(t, svc, models.Request{ID: 4, Method: "printer.getJob", Params: map[string]interface{}{"jobId": float64(3)}})
	require.Len(t, responses, 1)
	assert.Equal(t, "missing or invalid printer parameter", responses[0].Error)
}

func TestHandleRequest_GetJob(t *testing.T) {
	b := mocks_printer.NewMockBackend(t)
	job := printer.PrintJob{ID: 7, PrinterName: "office"}
	job.Options.Set("job-state", "9")
	b.EXPECT().GetJob(mock.Anything, "office", 7).Return(job, nil).Once()

	responses := call(t, printer.NewService(b), models.Request{
		ID:     5,
		Method: "printer.getJob",
		Params: map[string]interface{}{"printer": "office", "jobId": float64(7)},
	})
	require.Len(t, responses, 1)

	var got struct {
		ID     int      `json:"id"`
		Status []string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(responses[0].Result, &got))
	assert.Equal(t, 7, got.ID)
	assert.Equal(t, []string{printer.JobPrinted}, got.Status)
}

func TestHandleRequest_SetJob(t *testing.T) {
	b := mocks_printer.NewMockBackend(t)
	b.EXPECT().GetSupportedJobCommands(mock.Anything).Return([]string{"CANCEL", "PAUSE"}, nil)
	b.EXPECT().SetJob(mock.Anything, "office", 7, "PAUSE").Return(true, nil).Once()
	svc := printer.NewService(b)

	responses := call(t, svc, models.Request{
		ID:     6,
		Method: "printer.setJob",
		Params: map[string]interface{}{"printer": "office", "jobId": float64(7), "command": "pause"},
	})
	require.Len(t, responses, 1)
	assert.JSONEq(t, `{"success":true}`, string(responses[0].Result))

	responses = call(t, svc, models.Request{
		ID:     7,
		Method: "printer.setJob",
		Params: map[string]interface{}{"printer": "office", "jobId": float64(7), "command": "explode"},
	})
	require.Len(t, responses, 1)
	assert.Contains(t, responses[0].Error, "unsupported job command")
}

func TestHandleRequest_PrintDirectBase64(t *testing.T) {
	b := rawBackend{
		MockBackend:    mocks_printer.NewMockBackend(t),
		MockRawPrinter: mocks_printer.NewMockRawPrinter(t),
	}
	b.MockRawPrinter.EXPECT().
		PrintDirect(mock.Anything, []byte{0x1b, 0x40, 'h', 'i'}, "receipt", "node print job", "RAW",
			map[string]string{"media": "A4", "fit-to-page": "true"}).
		Return(12, nil).
		Once()

	responses := call(t, printer.NewService(b), models.Request{
		ID:     8,
		Method: "printer.printDirect",
		Params: map[string]interface{}{
			"data":        base64.StdEncoding.EncodeToString([]byte{0x1b, 0x40, 'h', 'i'}),
			"encoding":    "base64",
			"printer":     "receipt",
			"media":       "A4",
			"fit_to_page": true,
		},
	})
	require.Len(t, responses, 1)

	var result PrintResult
	require.NoError(t, json.Unmarshal(responses[0].Result, &result))
	assert.Equal(t, 12, result.JobID)
	assert.Equal(t, printer.PathNative, result.Path)
}

func TestHandleRequest_PrintDirectBadEncoding(t *testing.T) {
	svc := printer.NewService(mocks_printer.NewMockBackend(t))

	responses := call(t, svc, models.Request{
		ID:     9,
		Method: "printer.printDirect",
		Params: map[string]interface{}{"data": "!!!", "encoding": "base64"},
	})
	require.Len(t, responses, 1)
	assert.Contains(t, responses[0].Error, "invalid base64 data")
}

func TestHandleRequest_PrintFileValidation(t *testing.T) {
	svc := printer.NewService(mocks_printer.NewMockBackend(t))

	responses := call(t, svc, models.Request{ID: 10, Method: "printer.printFile", Params: map[string]interface{}{}})
	require.Len(t, responses, 1)
	assert.Contains(t, responses[0].Error, "filename")
}

func TestHandleRequest_WatchJob(t *testing.T) {
	b := mocks_printer.NewMockBackend(t)
	printing := printer.PrintJob{ID: 4, PrinterName: "office", Status: []string{printer.JobPrinting}}
	printed := printer.PrintJob{ID: 4, PrinterName: "office", Status: []string{printer.JobPrinted}}
	b.EXPECT().GetJob(mock.Anything, "office", 4).Return(printing, nil).Once()
	b.EXPECT().GetJob(mock.Anything, "office", 4).Return(printed, nil).Once()

	svc := printer.NewService(b, printer.WithWatchInterval(10*time.Millisecond))
	responses := call(t, svc, models.Request{
		ID:     11,
		Method: "printer.watchJob",
		Params: map[string]interface{}{"printer": "office", "jobId": float64(4), "intervalMs": float64(10)},
	})
	require.Len(t, responses, 2)

	var first, last JobEvent
	require.NoError(t, json.Unmarshal(responses[0].Result, &first))
	require.NoError(t, json.Unmarshal(responses[1].Result, &last))
	assert.Equal(t, []string{printer.JobPrinting}, first.Job.Status)
	assert.Equal(t, []string{printer.JobPrinted}, last.Job.Status)
	assert.Equal(t, 11, responses[1].ID)
}
