// Package cups is the printing backend for CUPS schedulers, spoken to over
// IPP. It also follows scheduler events over D-Bus, or the access log when
// the D-Bus notifier is missing.
package cups

import (
	"context"
	"fmt"
	"net/http"
	"os/user"
	"strings"
	"time"

	"github.com/AvengeMedia/dankprint/internal/log"
	"github.com/AvengeMedia/dankprint/internal/printer"
	"github.com/spf13/afero"
)

const (
	DefaultURL     = "http://localhost:631"
	defaultTimeout = 30 * time.Second
)

func init() {
	for _, goos := range []string{"linux", "darwin", "freebsd", "netbsd", "openbsd"} {
		printer.RegisterPrimary(goos, "cups", open)
	}
}

func open(opts printer.ProviderOptions) (printer.Backend, error) {
	return New(opts)
}

// New connects to the scheduler and checks that it answers IPP.
func New(opts printer.ProviderOptions) (*Backend, error) {
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	b := NewBackend(opts.CUPSURL, &http.Client{Timeout: timeout}, opts.Fs)
	b.accessLog = opts.AccessLog

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if _, err := b.GetDefaultPrinterName(ctx); err != nil {
		return nil, fmt.Errorf("CUPS at %s not reachable: %w", b.BaseURL, err)
	}

	log.Debugf("[CUPS] connected to %s as %s", b.BaseURL, b.user)
	return b, nil
}

// NewBackend builds a backend without probing the scheduler.
func NewBackend(baseURL string, client *http.Client, fs afero.Fs) *Backend {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Backend{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
		fs:      fs,
		user:    currentUser(),
	}
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "dprint"
}

// Subscribe starts the event notifier on first use.
func (b *Backend) Subscribe(id string) <-chan struct{} {
	b.notifierMu.Lock()
	if b.notifier == nil {
		b.notifier = NewNotifier(b.accessLog)
	}
	n := b.notifier
	b.notifierMu.Unlock()
	return n.Subscribe(id)
}

func (b *Backend) Unsubscribe(id string) {
	b.notifierMu.Lock()
	n := b.notifier
	b.notifierMu.Unlock()
	if n != nil {
		n.Unsubscribe(id)
	}
}

func (b *Backend) Close() {
	b.notifierMu.Lock()
	defer b.notifierMu.Unlock()
	if b.notifier != nil {
		b.notifier.Close()
		b.notifier = nil
	}
}

var (
	_ printer.Backend               = (*Backend)(nil)
	_ printer.RawPrinter            = (*Backend)(nil)
	_ printer.DriverOptionsProvider = (*Backend)(nil)
	_ printer.Notifier              = (*Backend)(nil)
)
