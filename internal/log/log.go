// Package log is the process-wide logger, a thin layer over charmbracelet/log.
package log

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	cblog "github.com/charmbracelet/log"
)

var (
	loggerMu sync.RWMutex
	logger   = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *cblog.Logger {
	l := cblog.NewWithOptions(w, cblog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "dprint",
	})
	l.SetLevel(cblog.InfoLevel)
	return l
}

func get() *cblog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// GetLogger returns the underlying logger.
func GetLogger() *cblog.Logger {
	return get()
}

// SetOutput redirects all log output, keeping the current level.
func SetOutput(w io.Writer) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	level := logger.GetLevel()
	logger = newLogger(w)
	logger.SetLevel(level)
}

// SetLevel accepts debug, info, warn, error or fatal. Unknown names fall back to info.
func SetLevel(level string) {
	lvl, err := cblog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = cblog.InfoLevel
	}
	get().SetLevel(lvl)
}

func Debug(msg interface{}, keyvals ...interface{}) { get().Debug(msg, keyvals...) }
func Info(msg interface{}, keyvals ...interface{})  { get().Info(msg, keyvals...) }
func Warn(msg interface{}, keyvals ...interface{})  { get().Warn(msg, keyvals...) }
func Error(msg interface{}, keyvals ...interface{}) { get().Error(msg, keyvals...) }
func Fatal(msg interface{}, keyvals ...interface{}) { get().Fatal(msg, keyvals...) }

func Debugf(format string, args ...interface{}) { get().Debugf(format, args...) }
func Infof(format string, args ...interface{})  { get().Infof(format, args...) }
func Warnf(format string, args ...interface{})  { get().Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { get().Errorf(format, args...) }
func Fatalf(format string, args ...interface{}) { get().Fatalf(format, args...) }
