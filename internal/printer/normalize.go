package printer

import (
	"strconv"
	"strings"
	"time"
)

var printerStates = map[string]PrinterStatus{
	"3": StatusIdle,
	"4": StatusPrinting,
	"5": StatusStopped,
}

var jobStates = map[string]string{
	"3": JobPending,
	"4": JobPaused,
	"5": JobPrinting,
	"6": JobPaused,
	"7": JobCancelled,
	"8": JobAborted,
	"9": JobPrinted,
}

// NormalizePrinter maps the raw printer-state attribute to a PrinterStatus
// and converts time attributes. The input is not modified.
func NormalizePrinter(p PrinterDevice) PrinterDevice {
	p.Options = normalizeTimes(p.Options)
	if p.Status == "" {
		if raw, ok := p.Options.Get("printer-state"); ok {
			if status, ok := printerStates[strings.TrimSpace(raw)]; ok {
				p.Status = status
			}
		}
	}
	if p.Jobs != nil {
		jobs := make([]PrintJob, len(p.Jobs))
		for i, job := range p.Jobs {
			jobs[i] = NormalizeJob(job)
		}
		p.Jobs = jobs
	}
	return p
}

// NormalizeJob fills an empty status from the raw job-state attribute and
// converts time attributes. The input is not modified.
func NormalizeJob(j PrintJob) PrintJob {
	j.Options = normalizeTimes(j.Options)
	if len(j.Status) == 0 {
		if raw, ok := j.Options.Get("job-state"); ok {
			if status, ok := jobStates[strings.TrimSpace(raw)]; ok {
				j.Status = []string{status}
			}
		}
	} else {
		j.Status = append([]string(nil), j.Status...)
	}
	return j
}

func isTimeKey(key string) bool {
	return strings.HasSuffix(strings.ToLower(key), "time")
}

func normalizeTimes(attrs Attributes) Attributes {
	out := attrs.Clone()
	for i := range out {
		attr := &out[i]
		if !isTimeKey(attr.Key) || !attr.Time.IsZero() {
			continue
		}
		secs, err := strconv.ParseInt(strings.TrimSpace(attr.Value), 10, 64)
		if err != nil || secs == 0 {
			continue
		}
		attr.Time = time.Unix(secs, 0).UTC()
	}
	return out
}
