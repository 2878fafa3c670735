// Package lpstat is a printing backend built on the CUPS command-line tools
// (lpstat, lp, cancel and lpoptions). It serves hosts where the scheduler's
// IPP endpoint is not reachable but the client tools are installed.
package lpstat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/AvengeMedia/dankprint/internal/log"
	"github.com/AvengeMedia/dankprint/internal/printer"
	"github.com/spf13/afero"
	"golang.org/x/exp/maps"
)

const defaultTimeout = 10 * time.Second

var (
	printerRegex = regexp.MustCompile(`^printer\s+(\S+)\s+(.*)$`)
	deviceRegex  = regexp.MustCompile(`^device\s+for\s+(\S+):\s+(.*)$`)
	jobRegex     = regexp.MustCompile(`^(\S+)-(\d+)\s+(\S+)\s+(\d+)\s+(.*)$`)
	requestRegex = regexp.MustCompile(`request id is (\S+)-(\d+)`)
)

var jobTimeLayouts = []string{
	"Mon 02 Jan 2006 03:04:05 PM MST",
	"Mon 02 Jan 2006 15:04:05 MST",
	"Mon Jan 2 15:04:05 2006",
	"Mon 02 Jan 2006 03:04:05 PM",
	"Mon 02 Jan 2006 15:04:05",
}

// Runner runs a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec. A failing command's stderr is
// folded into the returned error.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		return out, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(exitErr.Stderr)))
	}
	return out, err
}

type Backend struct {
	run     Runner
	timeout time.Duration
	fs      afero.Fs
}

func init() {
	for _, goos := range []string{"linux", "darwin", "freebsd", "netbsd", "openbsd"} {
		printer.RegisterSecondary(goos+"_*", "lpstat", open)
	}
}

func open(opts printer.ProviderOptions) (printer.Backend, error) {
	if _, err := exec.LookPath("lpstat"); err != nil {
		return nil, fmt.Errorf("lpstat not installed: %w", err)
	}
	return New(ExecRunner, opts.CommandTimeout, opts.Fs), nil
}

func New(run Runner, timeout time.Duration, fs afero.Fs) *Backend {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Backend{run: run, timeout: timeout, fs: fs}
}

func (b *Backend) Name() string { return "lpstat" }

func (b *Backend) output(ctx context.Context, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	log.Debugf("[LPSTAT] %s %s", name, strings.Join(args, " "))
	return b.run(ctx, name, args...)
}

func (b *Backend) GetPrinters(ctx context.Context) ([]printer.PrinterDevice, error) {
	// Output format: "printer office is idle.  enabled since ..."
	output, err := b.output(ctx, "lpstat", "-l", "-p")
	if err != nil {
		// No printers is not an error
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return []printer.PrinterDevice{}, nil
		}
		return nil, fmt.Errorf("lpstat -p failed: %w", err)
	}

	defaultName, _ := b.GetDefaultPrinterName(ctx)
	deviceURIs := b.deviceURIs(ctx)
	jobs := b.activeJobs(ctx, "")

	printers := parsePrinters(string(output))
	for i := range printers {
		p := &printers[i]
		p.IsDefault = p.Name == defaultName
		if uri, ok := deviceURIs[p.Name]; ok {
			p.Options.Set("device-uri", uri)
		}
		p.Jobs = jobs[p.Name]
	}
	return printers, nil
}

func (b *Backend) GetPrinter(ctx context.Context, name string) (printer.PrinterDevice, error) {
	printers, err := b.GetPrinters(ctx)
	if err != nil {
		return printer.PrinterDevice{}, err
	}
	for _, p := range printers {
		if p.Name == name {
			return p, nil
		}
	}
	return printer.PrinterDevice{}, fmt.Errorf("printer not found: %s", name)
}

func parsePrinters(output string) []printer.PrinterDevice {
	printers := []printer.PrinterDevice{}
	var current *printer.PrinterDevice

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if matches := printerRegex.FindStringSubmatch(line); matches != nil {
			printers = append(printers, printer.PrinterDevice{Name: matches[1]})
			current = &printers[len(printers)-1]

			statusLine := matches[2]
			state := ""
			switch {
			case strings.Contains(statusLine, "disabled"):
				state = "5"
			case strings.Contains(statusLine, "now printing"):
				state = "4"
			case strings.Contains(statusLine, "is idle"):
				state = "3"
			}
			if state != "" {
				current.Options.Set("printer-state", state)
			}
			current.Options.Set("printer-is-accepting-jobs", strconv.FormatBool(!strings.Contains(statusLine, "disabled")))
			continue
		}

		if current == nil {
			continue
		}
		detail := strings.TrimSpace(line)
		if detail == "" {
			continue
		}

		key, value, ok := strings.Cut(detail, ":")
		value = strings.TrimSpace(value)
		switch {
		case ok && key == "Description":
			current.Description = value
			current.Options.Set("printer-info", value)
		case ok && key == "Location":
			current.Options.Set("printer-location", value)
		case ok && key == "Alerts":
			current.Options.Set("printer-state-reasons", value)
		case ok && key == "Connection":
			current.Options.Set("printer-connection", value)
		case ok:
		default:
			if _, exists := current.Options.Get("printer-state-message"); !exists {
				current.Options.Set("printer-state-message", detail)
			}
		}
	}
	return printers
}

func (b *Backend) GetDefaultPrinterName(ctx context.Context) (string, error) {
	output, err := b.output(ctx, "lpstat", "-d")
	if err != nil {
		return "", nil
	}

	// Output format: "system default destination: office"
	line := strings.TrimSpace(string(output))
	if strings.HasPrefix(line, "system default destination:") {
		return strings.TrimSpace(strings.TrimPrefix(line, "system default destination:")), nil
	}
	return "", nil
}

func (b *Backend) deviceURIs(ctx context.Context) map[string]string {
	output, err := b.output(ctx, "lpstat", "-v")
	if err != nil {
		return nil
	}

	// Output format: "device for office: usb://HP/LaserJet%20Pro%20M404?serial=XXX"
	result := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(string(output)))
	for scanner.Scan() {
		if matches := deviceRegex.FindStringSubmatch(scanner.Text()); matches != nil {
			result[matches[1]] = matches[2]
		}
	}
	return result
}

// activeJobs lists not-completed jobs, keyed by printer. An empty printerName
// lists every queue.
func (b *Backend) activeJobs(ctx context.Context, printerName string) map[string][]printer.PrintJob {
	args := []string{"-l", "-o"}
	if printerName != "" {
		args = append(args, printerName)
	}
	output, err := b.output(ctx, "lpstat", args...)
	if err != nil {
		// No jobs is not an error
		return map[string][]printer.PrintJob{}
	}
	return parseJobs(string(output), "")
}

func (b *Backend) completedJobs(ctx context.Context, printerName string) map[string][]printer.PrintJob {
	output, err := b.output(ctx, "lpstat", "-W", "completed", "-o", printerName)
	if err != nil {
		return map[string][]printer.PrintJob{}
	}
	return parseJobs(string(output), "9")
}

// parseJobs reads "office-123 alice 1024 Mon 19 Dec 2025 12:34:56 PM" lines
// and their indented detail lines. A non-empty state overrides the detected one.
func parseJobs(output, state string) map[string][]printer.PrintJob {
	result := make(map[string][]printer.PrintJob)
	var (
		current     *printer.PrintJob
		currentName string
	)
	flush := func() {
		if current == nil {
			return
		}
		if state != "" {
			current.Options.Set("job-state", state)
		} else if _, ok := current.Options.Get("job-state"); !ok {
			current.Options.Set("job-state", "3")
		}
		result[currentName] = append(result[currentName], *current)
		current = nil
	}

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if matches := jobRegex.FindStringSubmatch(line); matches != nil && !strings.HasPrefix(line, "\t") && !strings.HasPrefix(line, " ") {
			flush()
			id, _ := strconv.Atoi(matches[2])
			size, _ := strconv.Atoi(matches[4])
			currentName = matches[1]
			current = &printer.PrintJob{
				ID:          id,
				PrinterName: matches[1],
				User:        matches[3],
				Size:        size,
			}
			current.Options.Set("job-originating-user-name", matches[3])
			if created, ok := parseJobTime(strings.TrimSpace(matches[5])); ok {
				current.Options.Set("creationTime", strconv.FormatInt(created.Unix(), 10))
			}
			continue
		}

		if current == nil {
			continue
		}
		key, value, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "Status":
			current.Options.Set("job-printer-state-message", value)
		case "Alerts":
			current.Options.Set("job-state-reasons", value)
			switch {
			case strings.Contains(value, "job-printing"):
				current.Options.Set("job-state", "5")
			case strings.Contains(value, "job-hold-until-specified"):
				current.Options.Set("job-state", "4")
			}
		}
	}
	flush()
	return result
}

func parseJobTime(s string) (time.Time, bool) {
	for _, layout := range jobTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func findJob(jobs map[string][]printer.PrintJob, printerName string, jobID int) (printer.PrintJob, bool) {
	for _, job := range jobs[printerName] {
		if job.ID == jobID {
			return job, true
		}
	}
	return printer.PrintJob{}, false
}

func (b *Backend) GetJob(ctx context.Context, printerName string, jobID int) (printer.PrintJob, error) {
	if job, ok := findJob(b.activeJobs(ctx, printerName), printerName, jobID); ok {
		return job, nil
	}
	if job, ok := findJob(b.completedJobs(ctx, printerName), printerName, jobID); ok {
		return job, nil
	}
	return printer.PrintJob{}, fmt.Errorf("job %s-%d: %w", printerName, jobID, printer.ErrJobNotFound)
}

var jobCommands = map[string][]string{
	"CANCEL":  {"cancel"},
	"PAUSE":   {"lp", "-H", "hold"},
	"RESUME":  {"lp", "-H", "resume"},
	"RESTART": {"lp", "-H", "restart"},
}

func (b *Backend) GetSupportedJobCommands(context.Context) ([]string, error) {
	commands := maps.Keys(jobCommands)
	sort.Strings(commands)
	return commands, nil
}

func (b *Backend) GetSupportedPrintFormats(context.Context) ([]string, error) {
	return []string{"AUTO", "RAW"}, nil
}

func (b *Backend) SetJob(ctx context.Context, printerName string, jobID int, command string) (bool, error) {
	argv, ok := jobCommands[command]
	if !ok {
		return false, fmt.Errorf("unsupported job command: %s", command)
	}

	jobName := fmt.Sprintf("%s-%d", printerName, jobID)
	var args []string
	if argv[0] == "cancel" {
		args = []string{jobName}
	} else {
		args = append([]string{"-i", jobName}, argv[1:]...)
	}

	_, err := b.output(ctx, argv[0], args...)
	if err != nil {
		msg := strings.ToLower(err.Error())
		switch {
		case strings.Contains(msg, "does not exist"), strings.Contains(msg, "not found"):
			return false, fmt.Errorf("job %s: %w", jobName, printer.ErrJobNotFound)
		case strings.Contains(msg, "not possible"), strings.Contains(msg, "already"):
			log.Debugf("[LPSTAT] %s refused for %s: %v", command, jobName, err)
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// PrintFile runs lp. When lp does not report a request id its output is
// returned as the message.
func (b *Backend) PrintFile(ctx context.Context, filename, docname, printerName string, options map[string]string) (string, error) {
	if _, err := b.fs.Stat(filename); err != nil {
		return "", fmt.Errorf("cannot print %s: %w", filename, err)
	}

	args := []string{"-d", printerName}
	if docname != "" {
		args = append(args, "-t", docname)
	}
	keys := maps.Keys(options)
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "-o", k+"="+options[k])
	}
	args = append(args, "--", filename)

	output, err := b.output(ctx, "lp", args...)
	if err != nil {
		return "", err
	}

	// Output format: "request id is office-42 (1 file(s))"
	if matches := requestRegex.FindStringSubmatch(string(output)); matches != nil {
		return matches[2], nil
	}
	return strings.TrimSpace(string(output)), nil
}

// GetPrinterDriverOptions parses "PageSize/Media Size: *Letter A4 Legal",
// where the starred choice is selected.
func (b *Backend) GetPrinterDriverOptions(ctx context.Context, printerName string) (printer.DriverOptions, error) {
	output, err := b.output(ctx, "lpoptions", "-p", printerName, "-l")
	if err != nil {
		return nil, err
	}
	return parseLpoptions(string(output)), nil
}

func parseLpoptions(output string) printer.DriverOptions {
	opts := printer.DriverOptions{}
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		head, choices, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		key, _, _ := strings.Cut(head, "/")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		values := make(map[string]bool)
		for _, choice := range strings.Fields(choices) {
			selected := strings.HasPrefix(choice, "*")
			values[strings.TrimPrefix(choice, "*")] = selected
		}
		opts[key] = values
	}
	return opts
}

var (
	_ printer.Backend               = (*Backend)(nil)
	_ printer.DriverOptionsProvider = (*Backend)(nil)
)
