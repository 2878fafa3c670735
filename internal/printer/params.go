package printer

import (
	"context"
	"strings"
)

func normalizeSubmission(req SubmissionRequest) SubmissionRequest {
	if req.Type == "" {
		req.Type = DefaultType
	}
	req.Type = strings.ToUpper(req.Type)
	if req.DocName == "" {
		req.DocName = DefaultDocName
	}
	req.Options = copyOptions(req.Options)
	if req.Legacy != nil {
		req.Options = req.Legacy.apply(req.Options)
	}
	return req
}

func (o LegacyOptions) apply(options map[string]string) map[string]string {
	media := o.Media
	fit := o.FitToPage
	if fit == "" {
		fit = "false"
	}
	if _, ok := options["media"]; media != "" || !ok {
		options["media"] = media
	}
	if _, ok := options["fit-to-page"]; !ok {
		options["fit-to-page"] = fit
	}
	return options
}

func copyOptions(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// PrintDirect submits raw data and waits for the outcome.
func (s *Service) PrintDirect(ctx context.Context, req SubmissionRequest) (int, error) {
	res := <-s.Submit(ctx, req)
	return res.JobID, res.Err
}

// PrintDirectArgs is the positional form of PrintDirect.
//
// Deprecated: use PrintDirect with a SubmissionRequest.
func (s *Service) PrintDirectArgs(ctx context.Context, data []byte, printerName, docname, dataType string, options map[string]string) (int, error) {
	return s.PrintDirect(ctx, SubmissionRequest{
		Data:    data,
		Printer: printerName,
		DocName: docname,
		Type:    dataType,
		Options: options,
	})
}

// PrintFile prints a file the backend can read and waits for the outcome.
func (s *Service) PrintFile(ctx context.Context, req FileRequest) (int, error) {
	res := <-s.SubmitFile(ctx, req)
	return res.JobID, res.Err
}

func (s *Service) validateFile(ctx context.Context, req FileRequest) (FileRequest, error) {
	if strings.TrimSpace(req.Filename) == "" {
		return req, &ValidationError{Field: "filename", Msg: "must be a string"}
	}
	if req.DocName == "" {
		req.DocName = req.Filename
	}
	req.Options = copyOptions(req.Options)
	if req.Printer == "" {
		name, err := s.DefaultPrinterName(ctx)
		if err != nil {
			return req, &ValidationError{Field: "printer", Msg: "printer parameter or default printer is not defined", Err: err}
		}
		req.Printer = name
	}
	return req, nil
}
