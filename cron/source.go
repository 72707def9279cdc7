package cron

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/sirupsen/logrus"
)

// Source reads and installs the raw cron table text. The raw text is
// the canonical store; callers re-read it before every mutation instead
// of caching parsed state.
type Source interface {
	Read() (string, error)
	Install(text string) error
}

// SystemTab is the user's installed crontab, reached through the
// crontab binary.
type SystemTab struct{}

func (SystemTab) Read() (string, error) {
	cmd := exec.Command("crontab", "-l")

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		// crontab -l exits nonzero when no table is installed; that is
		// an empty table, not a failure.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", nil
		}
		return "", fmt.Errorf("read crontab: %w", err)
	}

	return out.String(), nil
}

// Install stages the text to a temporary file and hands it to the
// crontab binary, so a failed install leaves the current table alone.
func (SystemTab) Install(text string) error {
	staged, err := os.CreateTemp("", "cronberry-*.tab")
	if err != nil {
		return fmt.Errorf("stage crontab: %w", err)
	}
	defer os.Remove(staged.Name())

	if _, err := staged.WriteString(text); err != nil {
		staged.Close()
		return fmt.Errorf("stage crontab: %w", err)
	}
	if err := staged.Close(); err != nil {
		return fmt.Errorf("stage crontab: %w", err)
	}

	logrus.Debugf("install staged crontab: %s", staged.Name())

	if err := exec.Command("crontab", staged.Name()).Run(); err != nil {
		return fmt.Errorf("could not finalize updating the crontab: %w", err)
	}
	return nil
}

// FileTab is a crontab kept in a plain file.
type FileTab string

func (f FileTab) Read() (string, error) {
	data, err := os.ReadFile(string(f))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read crontab file: %w", err)
	}
	return string(data), nil
}

func (f FileTab) Install(text string) error {
	if err := os.WriteFile(string(f), []byte(text), 0o644); err != nil {
		return fmt.Errorf("write crontab file: %w", err)
	}
	return nil
}

// Select returns the file source when path is non-empty, and the system
// crontab otherwise.
func Select(path string) Source {
	if path != "" {
		return FileTab(path)
	}
	return SystemTab{}
}
