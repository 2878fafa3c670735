//go:build windows

package winspool

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unsafe"

	"github.com/AvengeMedia/dankprint/internal/log"
	"github.com/AvengeMedia/dankprint/internal/printer"
	"github.com/spf13/afero"
	"golang.org/x/sys/windows"
)

var (
	modwinspool = windows.NewLazySystemDLL("winspool.drv")

	procEnumPrintersW                = modwinspool.NewProc("EnumPrintersW")
	procGetPrinterW                  = modwinspool.NewProc("GetPrinterW")
	procGetDefaultPrinterW           = modwinspool.NewProc("GetDefaultPrinterW")
	procOpenPrinterW                 = modwinspool.NewProc("OpenPrinterW")
	procClosePrinter                 = modwinspool.NewProc("ClosePrinter")
	procEnumJobsW                    = modwinspool.NewProc("EnumJobsW")
	procGetJobW                      = modwinspool.NewProc("GetJobW")
	procSetJobW                      = modwinspool.NewProc("SetJobW")
	procEnumPrintProcessorsW         = modwinspool.NewProc("EnumPrintProcessorsW")
	procEnumPrintProcessorDatatypesW = modwinspool.NewProc("EnumPrintProcessorDatatypesW")
	procStartDocPrinterW             = modwinspool.NewProc("StartDocPrinterW")
	procStartPagePrinter             = modwinspool.NewProc("StartPagePrinter")
	procWritePrinter                 = modwinspool.NewProc("WritePrinter")
	procEndPagePrinter               = modwinspool.NewProc("EndPagePrinter")
	procEndDocPrinter                = modwinspool.NewProc("EndDocPrinter")
)

const (
	PRINTER_ENUM_LOCAL       = 0x00000002
	PRINTER_ENUM_CONNECTIONS = 0x00000004

	maxJobs = 0xFFFFFFFF
)

// PRINTER_INFO_2
type printerInfo2 struct {
	ServerName         *uint16
	PrinterName        *uint16
	ShareName          *uint16
	PortName           *uint16
	DriverName         *uint16
	Comment            *uint16
	Location           *uint16
	DevMode            uintptr
	SepFile            *uint16
	PrintProcessor     *uint16
	Datatype           *uint16
	Parameters         *uint16
	SecurityDescriptor uintptr
	Attributes         uint32
	Priority           uint32
	DefaultPriority    uint32
	StartTime          uint32
	UntilTime          uint32
	Status             uint32
	Jobs               uint32
	AveragePPM         uint32
}

// JOB_INFO_2
type jobInfo2 struct {
	JobID              uint32
	PrinterName        *uint16
	MachineName        *uint16
	UserName           *uint16
	Document           *uint16
	NotifyName         *uint16
	Datatype           *uint16
	PrintProcessor     *uint16
	Parameters         *uint16
	DriverName         *uint16
	DevMode            uintptr
	Status             *uint16
	SecurityDescriptor uintptr
	StatusCode         uint32
	Priority           uint32
	Position           uint32
	StartTime          uint32
	UntilTime          uint32
	TotalPages         uint32
	Size               uint32
	Submitted          windows.Systemtime
	Time               uint32
	PagesPrinted       uint32
}

// DOC_INFO_1
type docInfo1 struct {
	DocName    *uint16
	OutputFile *uint16
	Datatype   *uint16
}

// PRINTPROCESSOR_INFO_1 and DATATYPES_INFO_1 share this layout.
type nameInfo1 struct {
	Name *uint16
}

type Backend struct {
	fs afero.Fs
}

func init() {
	printer.RegisterPrimary("windows", "winspool", open)
}

func open(opts printer.ProviderOptions) (printer.Backend, error) {
	if err := modwinspool.Load(); err != nil {
		return nil, fmt.Errorf("winspool.drv not available: %w", err)
	}
	return New(opts.Fs), nil
}

func New(fs afero.Fs) *Backend {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Backend{fs: fs}
}

func (b *Backend) Name() string { return "winspool" }

// fetch runs a spooler call twice: once to learn the buffer size and once to
// fill the buffer. A nil buffer with a nil error means there was nothing to
// return.
func fetch(call func(buf *byte, size uint32, needed *uint32) error) ([]byte, error) {
	var needed uint32
	err := call(nil, 0, &needed)
	if err == nil || needed == 0 {
		return nil, err
	}
	if !errors.Is(err, windows.ERROR_INSUFFICIENT_BUFFER) {
		return nil, err
	}

	buf := make([]byte, needed)
	if err := call(&buf[0], needed, &needed); err != nil {
		return nil, err
	}
	return buf, nil
}

func check(r uintptr, err error) error {
	if r == 0 {
		if err == nil || errors.Is(err, windows.ERROR_SUCCESS) {
			return windows.ERROR_GEN_FAILURE
		}
		return err
	}
	return nil
}

func openPrinter(name string) (windows.Handle, error) {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0, err
	}
	var h windows.Handle
	r, _, callErr := procOpenPrinterW.Call(uintptr(unsafe.Pointer(namePtr)), uintptr(unsafe.Pointer(&h)), 0)
	if err := check(r, callErr); err != nil {
		return 0, fmt.Errorf("OpenPrinter %s: %w", name, err)
	}
	return h, nil
}

func closePrinter(h windows.Handle) {
	procClosePrinter.Call(uintptr(h))
}

func withPrinter(name string, fn func(h windows.Handle) error) error {
	h, err := openPrinter(name)
	if err != nil {
		return err
	}
	defer closePrinter(h)
	return fn(h)
}

func (b *Backend) GetPrinters(ctx context.Context) ([]printer.PrinterDevice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var returned uint32
	flags := uint32(PRINTER_ENUM_LOCAL | PRINTER_ENUM_CONNECTIONS)
	buf, err := fetch(func(buf *byte, size uint32, needed *uint32) error {
		r, _, callErr := procEnumPrintersW.Call(
			uintptr(flags),
			0,
			2,
			uintptr(unsafe.Pointer(buf)),
			uintptr(size),
			uintptr(unsafe.Pointer(needed)),
			uintptr(unsafe.Pointer(&returned)),
		)
		return check(r, callErr)
	})
	if err != nil {
		return nil, fmt.Errorf("EnumPrinters: %w", err)
	}
	if buf == nil || returned == 0 {
		return []printer.PrinterDevice{}, nil
	}

	defaultName, _ := b.GetDefaultPrinterName(ctx)

	infos := unsafe.Slice((*printerInfo2)(unsafe.Pointer(&buf[0])), returned)
	printers := make([]printer.PrinterDevice, 0, returned)
	for i := range infos {
		p := printerFromInfo(&infos[i])
		if p.Name == "" {
			continue
		}
		p.IsDefault = p.Name == defaultName
		jobs, err := enumJobs(p.Name)
		if err != nil {
			log.Debugf("[WINSPOOL] EnumJobs %s: %v", p.Name, err)
		}
		p.Jobs = jobs
		printers = append(printers, p)
	}
	return printers, nil
}

func (b *Backend) GetPrinter(ctx context.Context, name string) (printer.PrinterDevice, error) {
	if err := ctx.Err(); err != nil {
		return printer.PrinterDevice{}, err
	}

	var p printer.PrinterDevice
	err := withPrinter(name, func(h windows.Handle) error {
		buf, err := fetch(func(buf *byte, size uint32, needed *uint32) error {
			r, _, callErr := procGetPrinterW.Call(
				uintptr(h),
				2,
				uintptr(unsafe.Pointer(buf)),
				uintptr(size),
				uintptr(unsafe.Pointer(needed)),
			)
			return check(r, callErr)
		})
		if err != nil {
			return fmt.Errorf("GetPrinter %s: %w", name, err)
		}
		if buf == nil {
			return fmt.Errorf("printer not found: %s", name)
		}
		p = printerFromInfo((*printerInfo2)(unsafe.Pointer(&buf[0])))
		return nil
	})
	if err != nil {
		return printer.PrinterDevice{}, err
	}

	defaultName, _ := b.GetDefaultPrinterName(ctx)
	p.IsDefault = p.Name == defaultName
	p.Jobs, _ = enumJobs(name)
	return p, nil
}

func printerFromInfo(info *printerInfo2) printer.PrinterDevice {
	p := printer.PrinterDevice{
		Name:        windows.UTF16PtrToString(info.PrinterName),
		Description: windows.UTF16PtrToString(info.Comment),
		Status:      printerStatus(info.Status),
	}

	setString := func(key string, v *uint16) {
		if s := windows.UTF16PtrToString(v); s != "" {
			p.Options.Set(key, s)
		}
	}
	setString("server-name", info.ServerName)
	setString("share-name", info.ShareName)
	setString("port-name", info.PortName)
	setString("driver-name", info.DriverName)
	setString("location", info.Location)
	setString("separator-file", info.SepFile)
	setString("print-processor", info.PrintProcessor)
	setString("datatype", info.Datatype)
	setString("parameters", info.Parameters)
	p.Options.Set("attributes", strconv.FormatUint(uint64(info.Attributes), 10))
	p.Options.Set("priority", strconv.FormatUint(uint64(info.Priority), 10))
	p.Options.Set("default-priority", strconv.FormatUint(uint64(info.DefaultPriority), 10))
	p.Options.Set("start-minute", strconv.FormatUint(uint64(info.StartTime), 10))
	p.Options.Set("until-minute", strconv.FormatUint(uint64(info.UntilTime), 10))
	p.Options.Set("status", strings.Join(statusNames(printerStatusBits, info.Status), ","))
	p.Options.Set("jobs", strconv.FormatUint(uint64(info.Jobs), 10))
	p.Options.Set("average-ppm", strconv.FormatUint(uint64(info.AveragePPM), 10))
	return p
}

func enumJobs(printerName string) ([]printer.PrintJob, error) {
	var jobs []printer.PrintJob
	err := withPrinter(printerName, func(h windows.Handle) error {
		var returned uint32
		buf, err := fetch(func(buf *byte, size uint32, needed *uint32) error {
			r, _, callErr := procEnumJobsW.Call(
				uintptr(h),
				0,
				uintptr(maxJobs),
				2,
				uintptr(unsafe.Pointer(buf)),
				uintptr(size),
				uintptr(unsafe.Pointer(needed)),
				uintptr(unsafe.Pointer(&returned)),
			)
			return check(r, callErr)
		})
		if err != nil || buf == nil || returned == 0 {
			return err
		}
		for _, info := range unsafe.Slice((*jobInfo2)(unsafe.Pointer(&buf[0])), returned) {
			jobs = append(jobs, jobFromInfo(&info))
		}
		return nil
	})
	return jobs, err
}

func jobFromInfo(info *jobInfo2) printer.PrintJob {
	job := printer.PrintJob{
		ID:          int(info.JobID),
		PrinterName: windows.UTF16PtrToString(info.PrinterName),
		Name:        windows.UTF16PtrToString(info.Document),
		User:        windows.UTF16PtrToString(info.UserName),
		Format:      windows.UTF16PtrToString(info.Datatype),
		Priority:    int(info.Priority),
		Size:        int(info.Size),
		Status:      jobStatus(info.StatusCode),
	}

	setString := func(key string, v *uint16) {
		if s := windows.UTF16PtrToString(v); s != "" {
			job.Options.Set(key, s)
		}
	}
	setString("machine-name", info.MachineName)
	setString("notify-name", info.NotifyName)
	setString("print-processor", info.PrintProcessor)
	setString("parameters", info.Parameters)
	setString("driver-name", info.DriverName)
	setString("status-message", info.Status)
	job.Options.Set("position", strconv.FormatUint(uint64(info.Position), 10))
	job.Options.Set("total-pages", strconv.FormatUint(uint64(info.TotalPages), 10))
	job.Options.Set("pages-printed", strconv.FormatUint(uint64(info.PagesPrinted), 10))
	job.Options.Set("elapsed-ms", strconv.FormatUint(uint64(info.Time), 10))

	// Submitted is UTC.
	st := info.Submitted
	if st.Year > 0 {
		submitted := time.Date(int(st.Year), time.Month(st.Month), int(st.Day),
			int(st.Hour), int(st.Minute), int(st.Second), int(st.Milliseconds)*1e6, time.UTC)
		job.Options.Set("creationTime", strconv.FormatInt(submitted.Unix(), 10))
	}
	return job
}

func (b *Backend) GetDefaultPrinterName(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var needed uint32
	procGetDefaultPrinterW.Call(0, uintptr(unsafe.Pointer(&needed)))
	if needed == 0 {
		return "", nil
	}

	buf := make([]uint16, needed)
	r, _, _ := procGetDefaultPrinterW.Call(
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(unsafe.Pointer(&needed)),
	)
	if r == 0 {
		return "", nil
	}
	return windows.UTF16ToString(buf), nil
}

func (b *Backend) GetJob(ctx context.Context, printerName string, jobID int) (printer.PrintJob, error) {
	if err := ctx.Err(); err != nil {
		return printer.PrintJob{}, err
	}

	var job printer.PrintJob
	err := withPrinter(printerName, func(h windows.Handle) error {
		buf, err := fetch(func(buf *byte, size uint32, needed *uint32) error {
			r, _, callErr := procGetJobW.Call(
				uintptr(h),
				uintptr(uint32(jobID)),
				2,
				uintptr(unsafe.Pointer(buf)),
				uintptr(size),
				uintptr(unsafe.Pointer(needed)),
			)
			return check(r, callErr)
		})
		if errors.Is(err, windows.ERROR_INVALID_PARAMETER) || (err == nil && buf == nil) {
			return fmt.Errorf("job %d on %s: %w", jobID, printerName, printer.ErrJobNotFound)
		}
		if err != nil {
			return fmt.Errorf("GetJob %d: %w", jobID, err)
		}
		job = jobFromInfo((*jobInfo2)(unsafe.Pointer(&buf[0])))
		return nil
	})
	return job, err
}

func (b *Backend) GetSupportedJobCommands(context.Context) ([]string, error) {
	return supportedJobCommands(), nil
}

func (b *Backend) SetJob(ctx context.Context, printerName string, jobID int, command string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	code, ok := jobCommands[command]
	if !ok {
		return false, fmt.Errorf("unsupported job command: %s", command)
	}

	err := withPrinter(printerName, func(h windows.Handle) error {
		r, _, callErr := procSetJobW.Call(uintptr(h), uintptr(uint32(jobID)), 0, 0, uintptr(code))
		return check(r, callErr)
	})
	if errors.Is(err, windows.ERROR_INVALID_PARAMETER) {
		return false, fmt.Errorf("job %d on %s: %w", jobID, printerName, printer.ErrJobNotFound)
	}
	if err != nil {
		return false, fmt.Errorf("SetJob %s %d: %w", command, jobID, err)
	}
	return true, nil
}

// GetSupportedPrintFormats lists the datatypes of every installed print
// processor.
func (b *Backend) GetSupportedPrintFormats(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	processors, err := enumNames(func(buf *byte, size uint32, needed, returned *uint32) (uintptr, error) {
		r, _, callErr := procEnumPrintProcessorsW.Call(
			0, 0, 1,
			uintptr(unsafe.Pointer(buf)),
			uintptr(size),
			uintptr(unsafe.Pointer(needed)),
			uintptr(unsafe.Pointer(returned)),
		)
		return r, callErr
	})
	if err != nil {
		return nil, fmt.Errorf("EnumPrintProcessors: %w", err)
	}

	seen := make(map[string]bool)
	for _, proc := range processors {
		procPtr, err := windows.UTF16PtrFromString(proc)
		if err != nil {
			continue
		}
		datatypes, err := enumNames(func(buf *byte, size uint32, needed, returned *uint32) (uintptr, error) {
			r, _, callErr := procEnumPrintProcessorDatatypesW.Call(
				0,
				uintptr(unsafe.Pointer(procPtr)),
				1,
				uintptr(unsafe.Pointer(buf)),
				uintptr(size),
				uintptr(unsafe.Pointer(needed)),
				uintptr(unsafe.Pointer(returned)),
			)
			return r, callErr
		})
		if err != nil {
			log.Debugf("[WINSPOOL] EnumPrintProcessorDatatypes %s: %v", proc, err)
			continue
		}
		for _, dt := range datatypes {
			seen[dt] = true
		}
	}

	formats := make([]string, 0, len(seen))
	for dt := range seen {
		formats = append(formats, dt)
	}
	sort.Strings(formats)
	return formats, nil
}

func enumNames(call func(buf *byte, size uint32, needed, returned *uint32) (uintptr, error)) ([]string, error) {
	var returned uint32
	buf, err := fetch(func(buf *byte, size uint32, needed *uint32) error {
		return check(call(buf, size, needed, &returned))
	})
	if err != nil || buf == nil || returned == 0 {
		return nil, err
	}

	names := make([]string, 0, returned)
	for _, info := range unsafe.Slice((*nameInfo1)(unsafe.Pointer(&buf[0])), returned) {
		names = append(names, windows.UTF16PtrToString(info.Name))
	}
	return names, nil
}

// PrintDirect spools data as a single-page document. Options have no spooler
// equivalent and are ignored.
func (b *Backend) PrintDirect(ctx context.Context, data []byte, printerName, docname, dataType string, options map[string]string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(options) > 0 {
		log.Debugf("[WINSPOOL] ignoring %d options for %s", len(options), printerName)
	}

	docPtr, err := windows.UTF16PtrFromString(docname)
	if err != nil {
		return 0, err
	}
	typePtr, err := windows.UTF16PtrFromString(dataType)
	if err != nil {
		return 0, err
	}

	var jobID uint32
	err = withPrinter(printerName, func(h windows.Handle) error {
		doc := docInfo1{DocName: docPtr, Datatype: typePtr}
		r, _, callErr := procStartDocPrinterW.Call(uintptr(h), 1, uintptr(unsafe.Pointer(&doc)))
		if err := check(r, callErr); err != nil {
			return fmt.Errorf("StartDocPrinter: %w", err)
		}
		jobID = uint32(r)
		defer procEndDocPrinter.Call(uintptr(h))

		r, _, callErr = procStartPagePrinter.Call(uintptr(h))
		if err := check(r, callErr); err != nil {
			return fmt.Errorf("StartPagePrinter: %w", err)
		}
		defer procEndPagePrinter.Call(uintptr(h))

		if len(data) == 0 {
			return nil
		}
		var written uint32
		r, _, callErr = procWritePrinter.Call(
			uintptr(h),
			uintptr(unsafe.Pointer(&data[0])),
			uintptr(uint32(len(data))),
			uintptr(unsafe.Pointer(&written)),
		)
		if err := check(r, callErr); err != nil {
			return fmt.Errorf("WritePrinter: %w", err)
		}
		if int(written) != len(data) {
			return fmt.Errorf("WritePrinter: wrote %d of %d bytes", written, len(data))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Infof("[WINSPOOL] spooled job %d on %s (%d bytes)", jobID, printerName, len(data))
	return int(jobID), nil
}

// PrintFile spools the file's bytes as RAW and replies with the job id.
func (b *Backend) PrintFile(ctx context.Context, filename, docname, printerName string, options map[string]string) (string, error) {
	data, err := afero.ReadFile(b.fs, filename)
	if err != nil {
		return "", err
	}
	jobID, err := b.PrintDirect(ctx, data, printerName, docname, printer.DefaultType, options)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(jobID), nil
}

var (
	_ printer.Backend    = (*Backend)(nil)
	_ printer.RawPrinter = (*Backend)(nil)
)
