// Package config loads dprint settings from dprint.yaml, DPRINT_* environment
// variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	BackendAuto     = "auto"
	BackendCUPS     = "cups"
	BackendLpstat   = "lpstat"
	BackendWinspool = "winspool"
)

const (
	KeyBackend         = "backend"
	KeyLogLevel        = "log.level"
	KeyCUPSURL         = "cups.url"
	KeyCUPSTimeout     = "cups.timeout"
	KeyCUPSAccessLog   = "cups.access_log"
	KeyLprCommand      = "lpr.command"
	KeyLprTempDir      = "lpr.temp_dir"
	KeyCommandsTimeout = "commands.timeout"
	KeyServerSocket    = "server.socket"
	KeyWatchInterval   = "watch.interval"
)

type Config struct {
	Backend  string
	Log      LogConfig
	CUPS     CUPSConfig
	Lpr      LprConfig
	Commands CommandsConfig
	Server   ServerConfig
	Watch    WatchConfig
}

type LogConfig struct {
	Level string // debug, info, warn, error
}

type CUPSConfig struct {
	URL       string
	Timeout   time.Duration
	AccessLog string
}

type LprConfig struct {
	Command string
	TempDir string // empty means the OS temp dir
}

type CommandsConfig struct {
	Timeout time.Duration
}

type ServerConfig struct {
	Socket string
}

type WatchConfig struct {
	Interval time.Duration
}

// New returns a viper instance with dprint's defaults, search paths and
// environment binding. Flags may be bound to it before Load.
func New(fs afero.Fs) *viper.Viper {
	v := viper.New()
	if fs != nil {
		v.SetFs(fs)
	}

	v.SetConfigName("dprint")
	v.SetConfigType("yaml")
	for _, dir := range searchPaths() {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("DPRINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyBackend, BackendAuto)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyCUPSURL, "http://localhost:631")
	v.SetDefault(KeyCUPSTimeout, 10*time.Second)
	v.SetDefault(KeyCUPSAccessLog, "/var/log/cups/access_log")
	v.SetDefault(KeyLprCommand, "lpr")
	v.SetDefault(KeyLprTempDir, "")
	v.SetDefault(KeyCommandsTimeout, 10*time.Second)
	v.SetDefault(KeyServerSocket, defaultSocket())
	v.SetDefault(KeyWatchInterval, 2*time.Second)
	return v
}

func searchPaths() []string {
	var paths []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "dprint"))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "dprint"))
	}
	return append(paths, "/etc/dprint", ".")
}

func defaultSocket() string {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return filepath.Join(runtimeDir, "dprint.sock")
	}
	return filepath.Join(os.TempDir(), "dprint.sock")
}

// Load reads the config file, when one exists, and validates the result. An
// explicit path must exist.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Backend: strings.ToLower(strings.TrimSpace(v.GetString(KeyBackend))),
		Log: LogConfig{
			Level: v.GetString(KeyLogLevel),
		},
		CUPS: CUPSConfig{
			URL:       v.GetString(KeyCUPSURL),
			Timeout:   v.GetDuration(KeyCUPSTimeout),
			AccessLog: v.GetString(KeyCUPSAccessLog),
		},
		Lpr: LprConfig{
			Command: v.GetString(KeyLprCommand),
			TempDir: v.GetString(KeyLprTempDir),
		},
		Commands: CommandsConfig{
			Timeout: v.GetDuration(KeyCommandsTimeout),
		},
		Server: ServerConfig{
			Socket: v.GetString(KeyServerSocket),
		},
		Watch: WatchConfig{
			Interval: v.GetDuration(KeyWatchInterval),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case "", BackendAuto, BackendCUPS, BackendLpstat, BackendWinspool:
	default:
		return fmt.Errorf("invalid backend %q (expected auto, cups, lpstat or winspool)", c.Backend)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	durations := map[string]time.Duration{
		KeyCUPSTimeout:     c.CUPS.Timeout,
		KeyCommandsTimeout: c.Commands.Timeout,
		KeyWatchInterval:   c.Watch.Interval,
	}
	for key, d := range durations {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", key, d)
		}
	}

	if c.CUPS.URL == "" {
		return fmt.Errorf("%s must not be empty", KeyCUPSURL)
	}
	if c.Lpr.Command == "" {
		return fmt.Errorf("%s must not be empty", KeyLprCommand)
	}
	return nil
}
