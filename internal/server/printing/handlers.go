// Package printing serves the printer.* methods of the socket protocol.
package printing

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/AvengeMedia/dankprint/internal/printer"
	"github.com/AvengeMedia/dankprint/internal/server/models"
)

func HandleRequest(ctx context.Context, conn net.Conn, req models.Request, svc *printer.Service) {
	switch req.Method {
	case "printer.getPrinters":
		handleGetPrinters(ctx, conn, req, svc)
	case "printer.getPrinter":
		handleGetPrinter(ctx, conn, req, svc)
	case "printer.getDefaultPrinterName":
		handleGetDefaultPrinterName(ctx, conn, req, svc)
	case "printer.getDriverOptions":
		handleGetDriverOptions(ctx, conn, req, svc)
	case "printer.getSelectedPaperSize":
		handleGetSelectedPaperSize(ctx, conn, req, svc)
	case "printer.getSupportedPrintFormats":
		handleGetSupportedPrintFormats(ctx, conn, req, svc)
	case "printer.getSupportedJobCommands":
		handleGetSupportedJobCommands(ctx, conn, req, svc)
	case "printer.getJob":
		handleGetJob(ctx, conn, req, svc)
	case "printer.setJob":
		handleSetJob(ctx, conn, req, svc)
	case "printer.cancelJob":
		handleCancelJob(ctx, conn, req, svc)
	case "printer.printDirect":
		handlePrintDirect(ctx, conn, req, svc)
	case "printer.printFile":
		handlePrintFile(ctx, conn, req, svc)
	case "printer.watchJob":
		handleWatchJob(ctx, conn, req, svc)
	default:
		models.RespondError(conn, req.ID, "unknown method: "+req.Method)
	}
}

func optionalString(req models.Request, key string) string {
	s, _ := req.Params[key].(string)
	return s
}

func requiredString(conn net.Conn, req models.Request, key string) (string, bool) {
	s, ok := req.Params[key].(string)
	if !ok || s == "" {
		models.RespondError(conn, req.ID, fmt.Sprintf("missing or invalid %s parameter", key))
		return "", false
	}
	return s, true
}

func requiredInt(conn net.Conn, req models.Request, key string) (int, bool) {
	f, ok := req.Params[key].(float64)
	if !ok {
		models.RespondError(conn, req.ID, fmt.Sprintf("missing or invalid %s parameter", key))
		return 0, false
	}
	return int(f), true
}

func stringMap(v interface{}) map[string]string {
	raw, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, val := range raw {
		out[k] = fmt.Sprint(val)
	}
	return out
}

func handleGetPrinters(ctx context.Context, conn net.Conn, req models.Request, svc *printer.Service) {
	printers, err := svc.Printers(ctx)
	if err != nil {
		models.RespondError(conn, req.ID, err.Error())
		return
	}
	models.Respond(conn, req.ID, printers)
}

func handleGetPrinter(ctx context.Context, conn net.Conn, req models.Request, svc *printer.Service) {
	p, err := svc.Printer(ctx, optionalString(req, "name"))
	if err != nil {
		models.RespondError(conn, req.ID, err.Error())
		return
	}
	models.Respond(conn, req.ID, p)
}

func handleGetDefaultPrinterName(ctx context.Context, conn net.Conn, req models.Request, svc *printer.Service) {
	name, err := svc.DefaultPrinterName(ctx)
	if err != nil {
		models.RespondError(conn, req.ID, err.Error())
		return
	}
	models.Respond(conn, req.ID, DefaultPrinterResult{Name: name})
}

func handleGetDriverOptions(ctx context.Context, conn net.Conn, req models.Request, svc *printer.Service) {
	opts, err := svc.DriverOptions(ctx, optionalString(req, "printer"))
	if err != nil {
		models.RespondError(conn, req.ID, err.Error())
		return
	}
	models.Respond(conn, req.ID, opts)
}

func handleGetSelectedPaperSize(ctx context.Context, conn net.Conn, req models.Request, svc *printer.Service) {
	size, err := svc.SelectedPaperSize(ctx, optionalString(req, "printer"))
	if err != nil {
		models.RespondError(conn, req.ID, err.Error())
		return
	}
	models.Respond(conn, req.ID, PaperSizeResult{PaperSize: size})
}

func handleGetSupportedPrintFormats(ctx context.Context, conn net.Conn, req models.Request, svc *printer.Service) {
	formats, err := svc.SupportedPrintFormats(ctx)
	if err != nil {
		models.RespondError(conn, req.ID, err.Error())
		return
	}
	models.Respond(conn, req.ID, formats)
}

func handleGetSupportedJobCommands(ctx context.Context, conn net.Conn, req models.Request, svc *printer.Service) {
	commands, err := svc.SupportedJobCommands(ctx)
	if err != nil {
		models.RespondError(conn, req.ID, err.Error())
		return
	}
	models.Respond(conn, req.ID, commands)
}

func handleGetJob(ctx context.Context, conn net.Conn, req models.Request, svc *printer.Service) {
	printerName, ok := requiredString(conn, req, "printer")
	if !ok {
		return
	}
	jobID, ok := requiredInt(conn, req, "jobId")
	if !ok {
		return
	}

	job, err := svc.Job(ctx, printerName, jobID)
	if err != nil {
		models.RespondError(conn, req.ID, err.Error())
		return
	}
	models.Respond(conn, req.ID, job)
}

func handleSetJob(ctx context.Context, conn net.Conn, req models.Request, svc *printer.Service) {
	printerName, ok := requiredString(conn, req, "printer")
	if !ok {
		return
	}
	jobID, ok := requiredInt(conn, req, "jobId")
	if !ok {
		return
	}
	command, ok := requiredString(conn, req, "command")
	if !ok {
		return
	}

	success, err := svc.SetJob(ctx, printerName, jobID, command)
	if err != nil {
		models.RespondError(conn, req.ID, err.Error())
		return
	}
	models.Respond(conn, req.ID, SetJobResult{Success: success})
}

func handleCancelJob(ctx context.Context, conn net.Conn, req models.Request, svc *printer.Service) {
	printerName, ok := requiredString(conn, req, "printer")
	if !ok {
		return
	}
	jobID, ok := requiredInt(conn, req, "jobId")
	if !ok {
		return
	}

	outcome, err := svc.CancelJob(ctx, printerName, jobID)
	if err != nil {
		models.RespondError(conn, req.ID, err.Error())
		return
	}
	models.Respond(conn, req.ID, CancelJobResult{Outcome: outcome})
}

// handlePrintDirect accepts data as plain text, or base64 when the encoding
// parameter says so. media and fit_to_page select the legacy option shape.
func handlePrintDirect(ctx context.Context, conn net.Conn, req models.Request, svc *printer.Service) {
	raw, ok := req.Params["data"].(string)
	if !ok {
		models.RespondError(conn, req.ID, "missing or invalid data parameter")
		return
	}

	data := []byte(raw)
	switch encoding := optionalString(req, "encoding"); encoding {
	case "", "utf8", "text":
	case "base64":
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			models.RespondError(conn, req.ID, "invalid base64 data: "+err.Error())
			return
		}
		data = decoded
	default:
		models.RespondError(conn, req.ID, "unsupported encoding: "+encoding)
		return
	}

	sub := printer.SubmissionRequest{
		Data:    data,
		Printer: optionalString(req, "printer"),
		DocName: optionalString(req, "docname"),
		Type:    optionalString(req, "type"),
		Options: stringMap(req.Params["options"]),
	}
	_, hasMedia := req.Params["media"]
	fit, hasFit := req.Params["fit_to_page"]
	if hasMedia || hasFit {
		sub.Legacy = &printer.LegacyOptions{Media: optionalString(req, "media")}
		if hasFit {
			sub.Legacy.FitToPage = fmt.Sprint(fit)
		}
	}

	select {
	case res := <-svc.Submit(ctx, sub):
		if res.Err != nil {
			models.RespondError(conn, req.ID, res.Err.Error())
			return
		}
		models.Respond(conn, req.ID, PrintResult{JobID: res.JobID, Path: res.Path})
	case <-ctx.Done():
		models.RespondError(conn, req.ID, ctx.Err().Error())
	}
}

func handlePrintFile(ctx context.Context, conn net.Conn, req models.Request, svc *printer.Service) {
	fileReq := printer.FileRequest{
		Filename: optionalString(req, "filename"),
		Printer:  optionalString(req, "printer"),
		DocName:  optionalString(req, "docname"),
		Options:  stringMap(req.Params["options"]),
	}

	select {
	case res := <-svc.SubmitFile(ctx, fileReq):
		if res.Err != nil {
			models.RespondError(conn, req.ID, res.Err.Error())
			return
		}
		models.Respond(conn, req.ID, PrintResult{JobID: res.JobID, Path: res.Path})
	case <-ctx.Done():
		models.RespondError(conn, req.ID, ctx.Err().Error())
	}
}

// handleWatchJob streams one response per job event until the job finishes
// or the client goes away.
func handleWatchJob(ctx context.Context, conn net.Conn, req models.Request, svc *printer.Service) {
	printerName, ok := requiredString(conn, req, "printer")
	if !ok {
		return
	}
	jobID, ok := requiredInt(conn, req, "jobId")
	if !ok {
		return
	}

	var interval time.Duration
	if ms, ok := req.Params["intervalMs"].(float64); ok && ms > 0 {
		interval = time.Duration(ms) * time.Millisecond
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	enc := json.NewEncoder(conn)
	for ev := range svc.WatchJob(ctx, printerName, jobID, interval) {
		event := newJobEvent(ev)
		if err := enc.Encode(models.Response[JobEvent]{
			ID:     req.ID,
			Result: &event,
		}); err != nil {
			return
		}
	}
}
