package cups

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/AvengeMedia/dankprint/internal/log"
	"github.com/AvengeMedia/dankprint/internal/printer"
	"github.com/spf13/afero"
	"golang.org/x/exp/maps"
)

var printerAttributes = []string{
	"printer-name",
	"printer-uri-supported",
	"device-uri",
	"printer-state",
	"printer-state-message",
	"printer-state-reasons",
	"printer-state-change-time",
	"printer-location",
	"printer-info",
	"printer-make-and-model",
	"printer-is-accepting-jobs",
	"printer-is-shared",
	"printer-type",
	"marker-change-time",
}

var jobAttributes = []string{
	"job-id",
	"job-name",
	"job-state",
	"job-state-reasons",
	"job-printer-uri",
	"job-originating-user-name",
	"job-priority",
	"job-k-octets",
	"document-format",
	"time-at-creation",
	"time-at-processing",
	"time-at-completed",
}

// formats maps submission types to the CUPS document formats.
var formats = map[string]string{
	"RAW":        "application/vnd.cups-raw",
	"TEXT":       "text/plain",
	"PDF":        "application/pdf",
	"JPEG":       "image/jpeg",
	"POSTSCRIPT": "application/postscript",
	"COMMAND":    "application/vnd.cups-command",
	"AUTO":       "application/octet-stream",
}

var jobCommands = map[string]uint16{
	"CANCEL":  IPP_OP_CANCEL_JOB,
	"PAUSE":   IPP_OP_HOLD_JOB,
	"RESUME":  IPP_OP_RELEASE_JOB,
	"RESTART": IPP_OP_RESTART_JOB,
}

// epoch-second job timestamps, renamed so normalization picks them up
var jobTimes = map[string]string{
	"time-at-creation":   "creationTime",
	"time-at-processing": "processingTime",
	"time-at-completed":  "completedTime",
}

func (b *Backend) Name() string { return "cups" }

// ippURI rewrites the HTTP base URL into the ipp scheme CUPS expects in URIs.
func (b *Backend) ippURI(resource string) string {
	base := b.BaseURL
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "ipps://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ipp://" + strings.TrimPrefix(base, "http://")
	}
	return base + resource
}

func (b *Backend) printerURI(name string) ippAttribute {
	return stringAttr(IPP_TAG_URI, "printer-uri", b.ippURI("/printers/"+url.PathEscape(name)))
}

func (b *Backend) jobURI(jobID int) ippAttribute {
	return stringAttr(IPP_TAG_URI, "job-uri", b.ippURI(fmt.Sprintf("/jobs/%d", jobID)))
}

func (b *Backend) userAttr() ippAttribute {
	return stringAttr(IPP_TAG_NAME, "requesting-user-name", b.user)
}

func (b *Backend) GetPrinters(ctx context.Context) ([]printer.PrinterDevice, error) {
	resp, err := b.do(ctx, "/", ippRequest{
		Operation: IPP_OP_CUPS_GET_PRINTERS,
		OpAttrs: []ippAttribute{
			b.userAttr(),
			stringAttr(IPP_TAG_KEYWORD, "requested-attributes", printerAttributes...),
		},
	}, nil)
	if isIPPStatus(err, IPP_STATUS_ERROR_NOT_FOUND) {
		return []printer.PrinterDevice{}, nil
	}
	if err != nil {
		return nil, err
	}

	defaultName, err := b.GetDefaultPrinterName(ctx)
	if err != nil {
		log.Debugf("[CUPS] no default printer: %v", err)
	}

	printers := []printer.PrinterDevice{}
	for _, group := range resp.groups(IPP_TAG_PRINTER) {
		p := printerFromGroup(group, defaultName)
		if p.Name == "" {
			continue
		}

		jobs, err := b.GetJobs(ctx, p.Name, "not-completed")
		if err != nil {
			return nil, err
		}
		p.Jobs = jobs
		printers = append(printers, p)
	}

	return printers, nil
}

func (b *Backend) GetPrinter(ctx context.Context, name string) (printer.PrinterDevice, error) {
	resp, err := b.do(ctx, "/", ippRequest{
		Operation: IPP_OP_GET_PRINTER_ATTRS,
		OpAttrs: []ippAttribute{
			b.printerURI(name),
			b.userAttr(),
			stringAttr(IPP_TAG_KEYWORD, "requested-attributes", printerAttributes...),
		},
	}, nil)
	if isIPPStatus(err, IPP_STATUS_ERROR_NOT_FOUND) {
		return printer.PrinterDevice{}, fmt.Errorf("printer not found: %s", name)
	}
	if err != nil {
		return printer.PrinterDevice{}, err
	}

	groups := resp.groups(IPP_TAG_PRINTER)
	if len(groups) == 0 {
		return printer.PrinterDevice{}, fmt.Errorf("printer not found: %s", name)
	}

	defaultName, _ := b.GetDefaultPrinterName(ctx)
	p := printerFromGroup(groups[0], defaultName)
	if p.Name == "" {
		p.Name = name
	}

	jobs, err := b.GetJobs(ctx, p.Name, "not-completed")
	if err != nil {
		return printer.PrinterDevice{}, err
	}
	p.Jobs = jobs
	return p, nil
}

func printerFromGroup(group ippGroup, defaultName string) printer.PrinterDevice {
	p := printer.PrinterDevice{}
	for _, attr := range group.Attrs {
		value := attr.String()
		switch attr.Name {
		case "printer-name":
			p.Name = value
		case "printer-info":
			p.Description = value
		}
		p.Options.Set(attr.Name, value)
	}
	p.IsDefault = p.Name != "" && p.Name == defaultName
	return p
}

func (b *Backend) GetDefaultPrinterName(ctx context.Context) (string, error) {
	resp, err := b.do(ctx, "/", ippRequest{
		Operation: IPP_OP_CUPS_GET_DEFAULT,
		OpAttrs: []ippAttribute{
			b.userAttr(),
			stringAttr(IPP_TAG_KEYWORD, "requested-attributes", "printer-name"),
		},
	}, nil)
	if isIPPStatus(err, IPP_STATUS_ERROR_NOT_FOUND) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	for _, group := range resp.groups(IPP_TAG_PRINTER) {
		if attr, ok := group.get("printer-name"); ok {
			return attr.String(), nil
		}
	}
	return "", nil
}

// GetJobs lists jobs; whichJobs is "completed", "not-completed" or "all".
func (b *Backend) GetJobs(ctx context.Context, printerName, whichJobs string) ([]printer.PrintJob, error) {
	resp, err := b.do(ctx, "/", ippRequest{
		Operation: IPP_OP_GET_JOBS,
		OpAttrs: []ippAttribute{
			b.printerURI(printerName),
			b.userAttr(),
			stringAttr(IPP_TAG_KEYWORD, "which-jobs", whichJobs),
			boolAttr("my-jobs", false),
			stringAttr(IPP_TAG_KEYWORD, "requested-attributes", jobAttributes...),
		},
	}, nil)
	if isIPPStatus(err, IPP_STATUS_ERROR_NOT_FOUND) {
		return []printer.PrintJob{}, nil
	}
	if err != nil {
		return nil, err
	}

	jobs := []printer.PrintJob{}
	for _, group := range resp.groups(IPP_TAG_JOB) {
		job := jobFromGroup(group, printerName)
		if job.ID != 0 {
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

func (b *Backend) GetJob(ctx context.Context, printerName string, jobID int) (printer.PrintJob, error) {
	resp, err := b.do(ctx, "/", ippRequest{
		Operation: IPP_OP_GET_JOB_ATTRS,
		OpAttrs: []ippAttribute{
			b.jobURI(jobID),
			b.userAttr(),
			stringAttr(IPP_TAG_KEYWORD, "requested-attributes", jobAttributes...),
		},
	}, nil)
	if isIPPStatus(err, IPP_STATUS_ERROR_NOT_FOUND) {
		return printer.PrintJob{}, fmt.Errorf("job %d: %w", jobID, printer.ErrJobNotFound)
	}
	if err != nil {
		return printer.PrintJob{}, err
	}

	groups := resp.groups(IPP_TAG_JOB)
	if len(groups) == 0 {
		return printer.PrintJob{}, fmt.Errorf("job %d: %w", jobID, printer.ErrJobNotFound)
	}
	job := jobFromGroup(groups[0], printerName)
	if job.ID == 0 {
		job.ID = jobID
	}
	return job, nil
}

func jobFromGroup(group ippGroup, printerName string) printer.PrintJob {
	job := printer.PrintJob{PrinterName: printerName}
	for _, attr := range group.Attrs {
		switch attr.Name {
		case "job-id":
			job.ID, _ = attr.Int()
		case "job-name":
			job.Name = attr.String()
		case "job-printer-uri":
			uri := attr.String()
			if i := strings.LastIndex(uri, "/"); i >= 0 && i+1 < len(uri) {
				if name, err := url.PathUnescape(uri[i+1:]); err == nil {
					job.PrinterName = name
				}
			}
		case "job-originating-user-name":
			job.User = attr.String()
		case "document-format":
			job.Format = attr.String()
		case "job-priority":
			job.Priority, _ = attr.Int()
		case "job-k-octets":
			if v, ok := attr.Int(); ok {
				job.Size = v * 1024
			}
		}

		if key, ok := jobTimes[attr.Name]; ok {
			if v, ok := attr.Int(); ok && v > 0 {
				job.Options.Set(key, strconv.Itoa(v))
			}
			continue
		}
		job.Options.Set(attr.Name, attr.String())
	}
	return job
}

func (b *Backend) GetSupportedJobCommands(context.Context) ([]string, error) {
	commands := maps.Keys(jobCommands)
	sort.Strings(commands)
	return commands, nil
}

func (b *Backend) GetSupportedPrintFormats(context.Context) ([]string, error) {
	names := maps.Keys(formats)
	sort.Strings(names)
	return names, nil
}

// SetJob returns false when CUPS refuses the command for the job's state.
func (b *Backend) SetJob(ctx context.Context, printerName string, jobID int, command string) (bool, error) {
	op, ok := jobCommands[command]
	if !ok {
		return false, fmt.Errorf("unsupported job command: %s", command)
	}

	attrs := []ippAttribute{b.jobURI(jobID), b.userAttr()}
	if op == IPP_OP_HOLD_JOB {
		attrs = append(attrs, stringAttr(IPP_TAG_KEYWORD, "job-hold-until", "indefinite"))
	}

	_, err := b.do(ctx, "/jobs", ippRequest{Operation: op, OpAttrs: attrs}, nil)
	switch {
	case isIPPStatus(err, IPP_STATUS_ERROR_NOT_FOUND):
		return false, fmt.Errorf("job %d on %s: %w", jobID, printerName, printer.ErrJobNotFound)
	case isIPPStatus(err, IPP_STATUS_ERROR_NOT_POSSIBLE):
		log.Debugf("[CUPS] %s refused for job %d: %v", command, jobID, err)
		return false, nil
	case err != nil:
		return false, err
	}

	log.Debugf("[CUPS] %s job %d on %s", command, jobID, printerName)
	return true, nil
}

func (b *Backend) PrintDirect(ctx context.Context, data []byte, printerName, docname, dataType string, options map[string]string) (int, error) {
	format, ok := formats[dataType]
	if !ok {
		return 0, fmt.Errorf("unsupported format type: %s", dataType)
	}
	return b.printJob(ctx, data, printerName, docname, format, options)
}

// PrintFile spools a file with automatic format detection. A job refused by
// the scheduler is reported through the returned message.
func (b *Backend) PrintFile(ctx context.Context, filename, docname, printerName string, options map[string]string) (string, error) {
	data, err := afero.ReadFile(b.fs, filename)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", filename, err)
	}

	id, err := b.printJob(ctx, data, printerName, docname, formats["AUTO"], options)
	if ie, ok := err.(*ippError); ok {
		return ie.Error(), nil
	}
	if err != nil {
		return "", err
	}
	return strconv.Itoa(id), nil
}

func (b *Backend) printJob(ctx context.Context, data []byte, printerName, docname, format string, options map[string]string) (int, error) {
	resp, err := b.do(ctx, "/printers/"+url.PathEscape(printerName), ippRequest{
		Operation: IPP_OP_PRINT_JOB,
		OpAttrs: []ippAttribute{
			b.printerURI(printerName),
			b.userAttr(),
			stringAttr(IPP_TAG_NAME, "job-name", docname),
			stringAttr(IPP_TAG_MIMETYPE, "document-format", format),
		},
		JobAttrs: optionAttributes(options),
	}, bytes.NewReader(data))
	if err != nil {
		return 0, err
	}

	for _, group := range resp.groups(IPP_TAG_JOB) {
		if attr, ok := group.get("job-id"); ok {
			if id, ok := attr.Int(); ok {
				log.Infof("[CUPS] job %d queued on %s (%d bytes)", id, printerName, len(data))
				return id, nil
			}
		}
	}
	return 0, nil
}

// optionAttributes encodes job options the way CUPS parses -o values.
func optionAttributes(options map[string]string) []ippAttribute {
	keys := maps.Keys(options)
	sort.Strings(keys)

	attrs := make([]ippAttribute, 0, len(keys))
	for _, k := range keys {
		v := options[k]
		switch {
		case v == "":
			continue
		case v == "true" || v == "false":
			attrs = append(attrs, boolAttr(k, v == "true"))
		case isInteger(v):
			n, _ := strconv.Atoi(v)
			attrs = append(attrs, intAttr(IPP_TAG_INTEGER, k, n))
		default:
			attrs = append(attrs, stringAttr(IPP_TAG_KEYWORD, k, strings.Split(v, ",")...))
		}
	}
	return attrs
}

func isInteger(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil
}
