package printer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/AvengeMedia/dankprint/internal/log"
)

type ProviderFunc func(opts ProviderOptions) (Backend, error)

type provider struct {
	name string
	open ProviderFunc
}

var (
	providersMu sync.RWMutex
	primary     = map[string]provider{}
	secondary   = map[string][]provider{}
)

// RegisterPrimary makes fn the first backend tried on goos.
func RegisterPrimary(goos, name string, fn ProviderFunc) {
	providersMu.Lock()
	defer providersMu.Unlock()
	primary[goos] = provider{name: name, open: fn}
}

// RegisterSecondary adds a fallback under a platform key of the form
// "<goos>_<goarch>" or "<goos>_*".
func RegisterSecondary(platform, name string, fn ProviderFunc) {
	providersMu.Lock()
	defer providersMu.Unlock()
	secondary[platform] = append(secondary[platform], provider{name: name, open: fn})
}

func candidates(goos, goarch string) []provider {
	providersMu.RLock()
	defer providersMu.RUnlock()

	var out []provider
	seen := make(map[string]bool)
	add := func(p provider) {
		if seen[p.name] {
			return
		}
		seen[p.name] = true
		out = append(out, p)
	}

	if p, ok := primary[goos]; ok {
		add(p)
	}
	for _, p := range secondary[goos+"_"+goarch] {
		add(p)
	}
	for _, p := range secondary[goos+"_*"] {
		add(p)
	}
	return out
}

// Providers lists the backend names that would be tried on goos/goarch.
func Providers(goos, goarch string) []string {
	var names []string
	for _, p := range candidates(goos, goarch) {
		names = append(names, p.name)
	}
	return names
}

// Resolve opens the first provider that works on goos/goarch.
func Resolve(opts ProviderOptions, goos, goarch string) (Backend, error) {
	all := candidates(goos, goarch)
	if opts.Backend != "" && opts.Backend != "auto" {
		var pinned []provider
		for _, p := range all {
			if p.name == opts.Backend {
				pinned = append(pinned, p)
			}
		}
		if len(pinned) == 0 {
			return nil, &ResolutionError{
				GOOS:   goos,
				GOARCH: goarch,
				Err:    fmt.Errorf("backend %q is not available on this platform", opts.Backend),
			}
		}
		all = pinned
	}

	var (
		tried []string
		errs  []error
	)
	for _, p := range all {
		tried = append(tried, p.name)
		backend, err := p.open(opts)
		if err != nil {
			log.Debugf("[RESOLVE] %s unavailable: %v", p.name, err)
			errs = append(errs, fmt.Errorf("%s: %w", p.name, err))
			continue
		}
		if backend == nil {
			errs = append(errs, fmt.Errorf("%s: provider returned no backend", p.name))
			continue
		}
		log.Infof("[RESOLVE] using %s backend", p.name)
		return backend, nil
	}

	return nil, &ResolutionError{GOOS: goos, GOARCH: goarch, Tried: tried, Err: errors.Join(errs...)}
}

// ResolveHost is Resolve for the running platform.
func ResolveHost(opts ProviderOptions) (Backend, error) {
	return Resolve(opts, runtime.GOOS, runtime.GOARCH)
}
