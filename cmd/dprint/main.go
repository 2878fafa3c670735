package main

import (
	"os"
	"runtime"
	"time"

	"github.com/AvengeMedia/dankprint/internal/config"
	"github.com/AvengeMedia/dankprint/internal/log"
	"github.com/AvengeMedia/dankprint/internal/printer"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	_ "github.com/AvengeMedia/dankprint/internal/server/cups"
	_ "github.com/AvengeMedia/dankprint/internal/server/lpstat"
	_ "github.com/AvengeMedia/dankprint/internal/server/winspool"
)

var Version = "dev"

var (
	configFile string
	cfg        *config.Config
	settings   = config.New(afero.NewOsFs())
)

var rootCmd = &cobra.Command{
	Use:     "dprint",
	Short:   "Cross-platform printing from the command line",
	Long:    "dprint lists printers, inspects and controls jobs, and submits raw data or files through CUPS, the lpstat tools or the Windows spooler.",
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loaded, err := config.Load(settings, configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
		log.SetLevel(cfg.Log.Level)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (default: dprint.yaml in $XDG_CONFIG_HOME/dprint, /etc/dprint or .)")
	flags.String("backend", config.BackendAuto, "Printing backend: auto, cups, lpstat or winspool")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("cups-url", "http://localhost:631", "CUPS server URL")

	settings.BindPFlag(config.KeyBackend, flags.Lookup("backend"))
	settings.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	settings.BindPFlag(config.KeyCUPSURL, flags.Lookup("cups-url"))

	rootCmd.AddCommand(printersCmd, formatsCmd, commandsCmd, backendsCmd, jobCmd, printCmd, serverCmd)
}

// newService resolves the backend once per process.
func newService() *printer.Service {
	backend, err := printer.Resolve(printer.ProviderOptions{
		Backend:        cfg.Backend,
		CUPSURL:        cfg.CUPS.URL,
		RequestTimeout: cfg.CUPS.Timeout,
		CommandTimeout: cfg.Commands.Timeout,
		AccessLog:      cfg.CUPS.AccessLog,
		Fs:             afero.NewOsFs(),
	}, runtime.GOOS, runtime.GOARCH)
	if err != nil {
		log.Fatalf("No printing backend available: %v", err)
	}

	spooler := printer.NewLprSpooler()
	spooler.Command = cfg.Lpr.Command
	spooler.TempDir = cfg.Lpr.TempDir

	return printer.NewService(backend,
		printer.WithSpooler(spooler),
		printer.WithWatchInterval(cfg.Watch.Interval),
	)
}

func commandTimeout() time.Duration {
	if cfg == nil {
		return 30 * time.Second
	}
	return cfg.Commands.Timeout + cfg.CUPS.Timeout
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
