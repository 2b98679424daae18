package store

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// Lock is a PID lock file that keeps two servers from sharing one data file.
type Lock struct {
	path string
}

// NewLock creates a lock next to the given data file.
func NewLock(dataFile string) *Lock {
	return &Lock{path: dataFile + ".lock"}
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Acquire takes the lock. Locks left behind by dead processes are removed.
func (l *Lock) Acquire() error {
	err := l.create()
	if err == nil {
		return nil
	}
	if !os.IsExist(err) {
		return fmt.Errorf("failed to create lock file: %w", err)
	}

	locked, err := l.IsLocked()
	if err != nil {
		return err
	}
	if locked {
		pid, _ := l.owner()
		return fmt.Errorf("data file is in use (PID %d)", pid)
	}

	// IsLocked removed the stale file; try once more.
	if err := l.create(); err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("lock acquired by another process during retry")
		}
		return fmt.Errorf("failed to create lock file on retry: %w", err)
	}
	return nil
}

func (l *Lock) create() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	_, writeErr := fmt.Fprintf(f, "%d", os.Getpid())
	f.Close()
	if writeErr != nil {
		os.Remove(l.path)
		return fmt.Errorf("failed to write lock file: %w", writeErr)
	}
	return nil
}

// Release removes the lock file. Releasing twice is not an error.
func (l *Lock) Release() error {
	err := os.Remove(l.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

// IsLocked reports whether a live process holds the lock.
// Stale or unreadable lock files are removed.
func (l *Lock) IsLocked() (bool, error) {
	pid, err := l.owner()
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		if _, ok := err.(*strconv.NumError); !ok {
			return false, fmt.Errorf("failed to read existing lock file: %w", err)
		}
		// Invalid PID - treat as stale
		if removeErr := os.Remove(l.path); removeErr != nil && !os.IsNotExist(removeErr) {
			return false, fmt.Errorf("failed to remove invalid lock file: %w", removeErr)
		}
		return false, nil
	}

	if processExists(pid) {
		return true, nil
	}

	if removeErr := os.Remove(l.path); removeErr != nil && !os.IsNotExist(removeErr) {
		return false, fmt.Errorf("failed to remove stale lock file: %w", removeErr)
	}
	return false, nil
}

func (l *Lock) owner() (int, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

// processExists sends signal 0, which only checks that the PID is alive.
func processExists(pid int) bool {
	if pid == os.Getpid() {
		return true
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
