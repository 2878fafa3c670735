package printer_test

import (
	"errors"
	"testing"

	mocks_printer "github.com/AvengeMedia/dankprint/internal/mocks/printer"
	"github.com/AvengeMedia/dankprint/internal/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Order(t *testing.T) {
	beta := mocks_printer.NewMockBackend(t)
	gamma := mocks_printer.NewMockBackend(t)

	var tried []string
	printer.RegisterPrimary("resolvetest", "alpha", func(printer.ProviderOptions) (printer.Backend, error) {
		tried = append(tried, "alpha")
		return nil, errors.New("scheduler not running")
	})
	printer.RegisterSecondary("resolvetest_amd64", "beta", func(printer.ProviderOptions) (printer.Backend, error) {
		tried = append(tried, "beta")
		return beta, nil
	})
	printer.RegisterSecondary("resolvetest_*", "gamma", func(printer.ProviderOptions) (printer.Backend, error) {
		tried = append(tried, "gamma")
		return gamma, nil
	})

	assert.Equal(t, []string{"alpha", "beta", "gamma"}, printer.Providers("resolvetest", "amd64"))

	got, err := printer.Resolve(printer.ProviderOptions{}, "resolvetest", "amd64")
	require.NoError(t, err)
	assert.Same(t, beta, got)
	assert.Equal(t, []string{"alpha", "beta"}, tried)

	tried = nil
	got, err = printer.Resolve(printer.ProviderOptions{}, "resolvetest", "arm64")
	require.NoError(t, err)
	assert.Same(t, gamma, got)
	assert.Equal(t, []string{"alpha", "gamma"}, tried)

	tried = nil
	got, err = printer.Resolve(printer.ProviderOptions{Backend: "gamma"}, "resolvetest", "amd64")
	require.NoError(t, err)
	assert.Same(t, gamma, got)
	assert.Equal(t, []string{"gamma"}, tried)
}

func TestResolve_Failure(t *testing.T) {
	printer.RegisterPrimary("failtest", "only", func(printer.ProviderOptions) (printer.Backend, error) {
		return nil, errors.New("library missing")
	})

	_, err := printer.Resolve(printer.ProviderOptions{}, "failtest", "386")
	var rerr *printer.ResolutionError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, []string{"only"}, rerr.Tried)
	assert.Contains(t, err.Error(), "library missing")

	_, err = printer.Resolve(printer.ProviderOptions{}, "nothingtest", "386")
	require.ErrorAs(t, err, &rerr)
	assert.Empty(t, rerr.Tried)

	_, err = printer.Resolve(printer.ProviderOptions{Backend: "winspool"}, "failtest", "386")
	require.ErrorAs(t, err, &rerr)
	assert.Contains(t, err.Error(), `backend "winspool" is not available`)
}
