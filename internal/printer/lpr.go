package printer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/AvengeMedia/dankprint/internal/log"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// CommandRunner runs an external command to completion and returns what it
// wrote to stderr.
type CommandRunner func(ctx context.Context, name string, args ...string) (stderr []byte, err error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.Bytes(), err
}

// LprSpooler hands raw payloads to lpr through a temporary file.
type LprSpooler struct {
	Fs      afero.Fs
	TempDir string
	Command string
	Run     CommandRunner
}

func NewLprSpooler() *LprSpooler {
	return &LprSpooler{
		Fs:      afero.NewOsFs(),
		Command: "lpr",
		Run:     ExecRunner,
	}
}

func (l *LprSpooler) fs() afero.Fs {
	if l.Fs == nil {
		return afero.NewOsFs()
	}
	return l.Fs
}

func (l *LprSpooler) command() string {
	if l.Command == "" {
		return "lpr"
	}
	return l.Command
}

// Prepare writes data to a fresh printing-<uuid> file and returns its path.
func (l *LprSpooler) Prepare(data []byte) (string, error) {
	dir := l.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	fs := l.fs()
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}

	path := filepath.Join(dir, "printing-"+uuid.NewString())
	if err := afero.WriteFile(fs, path, data, 0o600); err != nil {
		l.remove(path)
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	return path, nil
}

// Send runs lpr on a prepared file. The file is gone when Send returns.
func (l *LprSpooler) Send(ctx context.Context, printerName, path string) error {
	defer l.remove(path)

	run := l.Run
	if run == nil {
		run = ExecRunner
	}

	args := []string{"-P" + printerName, "-oraw", "-r", path}
	log.Debugf("[LPR] %s %v", l.command(), args)

	stderr, err := run(ctx, l.command(), args...)
	if err != nil || len(stderr) > 0 {
		return &SubprocessError{Command: l.command(), Stderr: string(stderr), Err: err}
	}
	return nil
}

func (l *LprSpooler) remove(path string) {
	fs := l.fs()
	if _, err := fs.Stat(path); err != nil {
		return
	}
	if err := fs.Remove(path); err != nil {
		log.Warnf("[LPR] failed to remove %s: %v", path, err)
	}
}
