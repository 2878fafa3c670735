package cups

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/AvengeMedia/dankprint/internal/log"
	"github.com/godbus/dbus/v5"
)

const (
	cupsService   = "org.cups.cupsd"
	cupsPath      = "/org/cups/cupsd"
	cupsInterface = "org.cups.cupsd.Notifier"
)

const defaultAccessLog = "/var/log/cups/access_log"

var notifierSignals = []string{
	"PrinterAdded",
	"PrinterDeleted",
	"PrinterStateChanged",
	"JobCreated",
	"JobCompleted",
	"JobState",
	"JobProgress",
}

// localhost - - [01/Jan/2025:10:30:45 +0100] "POST /printers/PDF HTTP/1.1" 200 123 Print-Job successful-ok
var accessLogPattern = regexp.MustCompile(`^(\S+)\s+(\S+)\s+(\S+)\s+\[([^\]]+)\]\s+"([A-Z]+)\s+(\S+)\s+([^"]+)"\s+(\d+)\s+(\d+)(?:\s+(\S+))?(?:\s+(\S+))?`)

// NewNotifier listens for CUPS D-Bus signals and falls back to following
// accessLog when the scheduler's D-Bus notifier does not answer.
func NewNotifier(accessLog string) *Notifier {
	n := newNotifier()

	if err := n.connectDBus(); err != nil {
		log.Warnf("[CUPS] D-Bus interface not available (%v). Fallback to log parsing", err)
		if accessLog == "" {
			accessLog = defaultAccessLog
		}
		n.lm = n.NewLogMonitor(accessLog)
		n.lm.Start()
	}

	n.notifierWg.Add(1)
	go n.notifier()

	return n
}

func newNotifier() *Notifier {
	return &Notifier{
		signals:     make(chan *dbus.Signal, 256),
		dirty:       make(chan struct{}, 1),
		stopChan:    make(chan struct{}),
		subscribers: make(map[string]chan struct{}),
	}
}

func (n *Notifier) connectDBus() error {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return fmt.Errorf("system bus connection failed: %w", err)
	}

	// dbus on CUPS is not always there
	obj := conn.Object(cupsService, cupsPath)
	if err := obj.Call("org.freedesktop.DBus.Peer.Ping", 0).Store(); err != nil {
		conn.Close()
		return err
	}

	n.dbusConn = conn
	if err := n.startSignalPump(); err != nil {
		conn.Close()
		n.dbusConn = nil
		return err
	}
	return nil
}

func (n *Notifier) startSignalPump() error {
	n.dbusConn.Signal(n.signals)

	for _, member := range notifierSignals {
		if err := n.dbusConn.AddMatchSignal(
			dbus.WithMatchInterface(cupsInterface),
			dbus.WithMatchMember(member),
		); err != nil {
			return err
		}
	}

	n.sigWG.Add(1)
	go n.pump()
	return nil
}

func (n *Notifier) pump() {
	defer n.sigWG.Done()
	for {
		select {
		case <-n.stopChan:
			return
		case sig, ok := <-n.signals:
			if !ok {
				return
			}
			if sig == nil {
				continue
			}
			n.handleSignal(sig)
		}
	}
}

func (n *Notifier) handleSignal(sig *dbus.Signal) {
	member := strings.TrimPrefix(sig.Name, cupsInterface+".")
	if member == sig.Name {
		return
	}
	for _, known := range notifierSignals {
		if member == known {
			log.Debugf("[CUPS] signal %s %v", member, sig.Body)
			n.markDirty()
			return
		}
	}
}

func (n *Notifier) InjectSignal(name string, body ...interface{}) bool {
	sig := &dbus.Signal{
		Name: name,
		Body: body,
	}

	select {
	case n.signals <- sig:
		return true
	case <-time.After(2 * time.Second):
		return false
	}
}

func (n *Notifier) InjectPrinterAdded() bool {
	return n.InjectSignal(cupsInterface + ".PrinterAdded")
}

func (n *Notifier) InjectPrinterDeleted() bool {
	return n.InjectSignal(cupsInterface + ".PrinterDeleted")
}

func (n *Notifier) InjectPrinterStateChanged(printerName string) bool {
	return n.InjectSignal(cupsInterface+".PrinterStateChanged", printerName)
}

func (n *Notifier) InjectJobCreated(printerName string) bool {
	return n.InjectSignal(cupsInterface+".JobCreated", printerName)
}

func (n *Notifier) InjectJobCompleted(printerName string) bool {
	return n.InjectSignal(cupsInterface+".JobCompleted", printerName)
}

func (n *Notifier) markDirty() {
	select {
	case n.dirty <- struct{}{}:
	default:
	}
}

// notifier coalesces bursts of signals into one fan-out per minGap.
func (n *Notifier) notifier() {
	defer n.notifierWg.Done()
	const minGap = 100 * time.Millisecond

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-n.stopChan:
			if timer != nil {
				timer.Stop()
			}
			return
		case <-n.dirty:
			if fire != nil {
				continue
			}
			timer = time.NewTimer(minGap)
			fire = timer.C
		case <-fire:
			fire = nil
			n.broadcast()
		}
	}
}

func (n *Notifier) broadcast() {
	n.subMutex.RLock()
	defer n.subMutex.RUnlock()
	for _, ch := range n.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (n *Notifier) Subscribe(id string) <-chan struct{} {
	ch := make(chan struct{}, 1)
	n.subMutex.Lock()
	if old, ok := n.subscribers[id]; ok {
		close(old)
	}
	n.subscribers[id] = ch
	n.subMutex.Unlock()
	return ch
}

func (n *Notifier) Unsubscribe(id string) {
	n.subMutex.Lock()
	if ch, ok := n.subscribers[id]; ok {
		close(ch)
		delete(n.subscribers, id)
	}
	n.subMutex.Unlock()
}

func (n *Notifier) Close() {
	n.stopOnce.Do(func() {
		close(n.stopChan)
		n.notifierWg.Wait()
		n.sigWG.Wait()

		if n.lm != nil {
			n.lm.Close()
		}

		if n.dbusConn != nil {
			n.dbusConn.RemoveSignal(n.signals)
			n.dbusConn.Close()
		}

		n.subMutex.Lock()
		for _, ch := range n.subscribers {
			close(ch)
		}
		n.subscribers = make(map[string]chan struct{})
		n.subMutex.Unlock()
	})
}

func (n *Notifier) NewLogMonitor(logPaths ...string) *LogMonitor {
	ctx, cancel := context.WithCancel(context.Background())
	return &LogMonitor{
		ctx:      ctx,
		cancel:   cancel,
		logPaths: logPaths,
		notifier: n,
	}
}

// Start follows every log path that exists. Signals injected from log lines
// are consumed by the signal pump, which is started here if D-Bus did not.
func (lm *LogMonitor) Start() {
	if lm.notifier.dbusConn == nil {
		lm.notifier.sigWG.Add(1)
		go lm.notifier.pump()
	}

	for _, logPath := range lm.logPaths {
		if _, err := os.Stat(logPath); err == nil {
			go lm.monitorLogFile(logPath)
		} else {
			log.Debugf("[CUPS] access log %s not readable: %v", logPath, err)
		}
	}
}

func (lm *LogMonitor) monitorLogFile(logPath string) {
	// tail -F to follow the log across rotations
	cmd := exec.CommandContext(lm.ctx, "tail", "-F", "-n", "0", logPath)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		log.Errorf("[CUPS] Error stdout pipe for %s: %v", logPath, err)
		return
	}

	if err := cmd.Start(); err != nil {
		log.Errorf("[CUPS] Error tail start for %s: %v", logPath, err)
		return
	}
	defer cmd.Wait()

	lm.follow(stdout)
}

func (lm *LogMonitor) follow(r io.Reader) {
	reader := bufio.NewReader(r)
	for {
		select {
		case <-lm.ctx.Done():
			return
		default:
		}

		line, err := reader.ReadString('\n')
		if line != "" {
			lm.processLogLine(strings.TrimSpace(line))
		}
		if err != nil {
			if err != io.EOF {
				log.Errorf("[CUPS] Read error log: %v", err)
			}
			return
		}
	}
}

func (lm *LogMonitor) processLogLine(line string) {
	entry, err := parseLogLine(line)
	if err != nil {
		log.Debug("[CUPS] Log event error", "err", err)
		return
	}
	if !entry.IsSuccessful() {
		return
	}

	printerName := entry.GetPrinterName()
	switch entry.IPPOperation {
	case "Create-Job", "Print-Job", "Send-Document":
		lm.notifier.InjectJobCreated(printerName)
	case "Cancel-Job", "Hold-Job", "Release-Job", "Restart-Job", "Purge-Jobs":
		lm.notifier.InjectJobCompleted(printerName)
	case "Pause-Printer", "Resume-Printer", "Enable-Printer", "Disable-Printer":
		lm.notifier.InjectPrinterStateChanged(printerName)
	case "CUPS-Add-Modify-Printer":
		lm.notifier.InjectPrinterAdded()
	case "CUPS-Delete-Printer":
		lm.notifier.InjectPrinterDeleted()
	}
}

func parseLogLine(line string) (*CUPSAccessLogEntry, error) {
	matches := accessLogPattern.FindStringSubmatch(line)
	if len(matches) < 10 {
		return nil, fmt.Errorf("invalid access log line")
	}

	timestamp, err := time.Parse("02/Jan/2006:15:04:05 -0700", matches[4])
	if err != nil {
		return nil, fmt.Errorf("invalid access log timestamp: %w", err)
	}

	status, _ := strconv.Atoi(matches[8])
	bytes, _ := strconv.Atoi(matches[9])

	return &CUPSAccessLogEntry{
		Host:         matches[1],
		Group:        matches[2],
		User:         matches[3],
		Timestamp:    timestamp,
		Method:       matches[5],
		Resource:     matches[6],
		Version:      matches[7],
		Status:       status,
		Bytes:        bytes,
		IPPOperation: matches[10],
		IPPStatus:    matches[11],
	}, nil
}

func (e *CUPSAccessLogEntry) GetPrinterName() string {
	parts := strings.Split(e.Resource, "/")
	for i, part := range parts {
		if part == "printers" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

func (e *CUPSAccessLogEntry) IsSuccessful() bool {
	return e.Status >= 200 && e.Status < 300
}

func (lm *LogMonitor) Close() {
	lm.cancel()
}
