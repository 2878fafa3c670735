package cups

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/spf13/afero"
)

// Backend talks IPP to a CUPS scheduler.
type Backend struct {
	BaseURL string
	Client  *http.Client
	fs      afero.Fs
	user    string

	accessLog  string
	notifierMu sync.Mutex
	notifier   *Notifier
}

// Notifier turns scheduler events into payload-free change signals.
type Notifier struct {
	dbusConn    *dbus.Conn
	signals     chan *dbus.Signal
	sigWG       sync.WaitGroup
	dirty       chan struct{}
	stopChan    chan struct{}
	stopOnce    sync.Once
	notifierWg  sync.WaitGroup
	subscribers map[string]chan struct{}
	subMutex    sync.RWMutex
	lm          *LogMonitor
}

// LogMonitor follows the CUPS access log when D-Bus is not available.
type LogMonitor struct {
	ctx      context.Context
	cancel   context.CancelFunc
	logPaths []string
	notifier *Notifier
}

type CUPSAccessLogEntry struct {
	Host         string
	Group        string
	User         string
	Timestamp    time.Time
	Method       string
	Resource     string
	Version      string
	Status       int
	Bytes        int
	IPPOperation string
	IPPStatus    string
}

type ippAttribute struct {
	Tag    byte
	Name   string
	Values []interface{}
}

type ippGroup struct {
	Tag   byte
	Attrs []ippAttribute
}

func (g ippGroup) get(name string) (ippAttribute, bool) {
	for _, a := range g.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return ippAttribute{}, false
}

type ippRequest struct {
	Operation uint16
	RequestID uint32
	OpAttrs   []ippAttribute
	JobAttrs  []ippAttribute
}

type ippResponse struct {
	Status    uint16
	RequestID uint32
	Groups    []ippGroup
}

func (r *ippResponse) groups(tag byte) []ippGroup {
	var out []ippGroup
	for _, g := range r.Groups {
		if g.Tag == tag {
			out = append(out, g)
		}
	}
	return out
}

func (r *ippResponse) statusMessage() string {
	for _, g := range r.groups(IPP_TAG_OPERATION) {
		if a, ok := g.get("status-message"); ok && len(a.Values) > 0 {
			return formatIPPValue(a.Values[0])
		}
	}
	return ""
}

// IPP Operation IDs
const (
	IPP_OP_PRINT_JOB          = 0x0002
	IPP_OP_VALIDATE_JOB       = 0x0004
	IPP_OP_CANCEL_JOB         = 0x0008
	IPP_OP_GET_JOB_ATTRS      = 0x0009
	IPP_OP_GET_JOBS           = 0x000A
	IPP_OP_GET_PRINTER_ATTRS  = 0x000B
	IPP_OP_HOLD_JOB           = 0x000C
	IPP_OP_RELEASE_JOB        = 0x000D
	IPP_OP_RESTART_JOB        = 0x000E
	IPP_OP_CUPS_GET_DEFAULT   = 0x4001
	IPP_OP_CUPS_GET_PRINTERS  = 0x4002
)

// IPP Status Codes
const (
	IPP_STATUS_OK                    = 0x0000
	IPP_STATUS_CLIENT_ERROR          = 0x0400
	IPP_STATUS_ERROR_NOT_AUTHORIZED  = 0x0403
	IPP_STATUS_ERROR_NOT_POSSIBLE    = 0x0404
	IPP_STATUS_ERROR_NOT_FOUND       = 0x0406
	IPP_STATUS_ERROR_DOCUMENT_FORMAT = 0x040A
	IPP_STATUS_SERVER_ERROR          = 0x0500
)

// IPP Tags
const (
	IPP_TAG_ZERO               = 0x00
	IPP_TAG_OPERATION          = 0x01
	IPP_TAG_JOB                = 0x02
	IPP_TAG_END                = 0x03
	IPP_TAG_PRINTER            = 0x04
	IPP_TAG_UNSUPPORTED_GROUP  = 0x05
	IPP_TAG_SUBSCRIPTION       = 0x06
	IPP_TAG_EVENT_NOTIFICATION = 0x07
	IPP_TAG_NOVALUE            = 0x13
	IPP_TAG_INTEGER            = 0x21
	IPP_TAG_BOOLEAN            = 0x22
	IPP_TAG_ENUM               = 0x23
	IPP_TAG_STRING             = 0x30
	IPP_TAG_DATE               = 0x31
	IPP_TAG_RESOLUTION         = 0x32
	IPP_TAG_RANGE              = 0x33
	IPP_TAG_BEGIN_COLLECTION   = 0x34
	IPP_TAG_TEXT_LANG          = 0x35
	IPP_TAG_NAME_LANG          = 0x36
	IPP_TAG_END_COLLECTION     = 0x37
	IPP_TAG_TEXT               = 0x41
	IPP_TAG_NAME               = 0x42
	IPP_TAG_KEYWORD            = 0x44
	IPP_TAG_URI                = 0x45
	IPP_TAG_CHARSET            = 0x47
	IPP_TAG_LANGUAGE           = 0x48
	IPP_TAG_MIMETYPE           = 0x49
	IPP_TAG_MEMBERNAME         = 0x4A
)
