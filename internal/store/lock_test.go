package store

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestLock_Acquire_Success(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "catalog.json")

	lock := NewLock(dataFile)
	if err := lock.Acquire(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(lock.Path())
	if err != nil {
		t.Fatalf("failed to read lock file: %v", err)
	}
	pid, err := strconv.Atoi(string(data))
	if err != nil {
		t.Fatalf("failed to parse PID from lock file: %v", err)
	}
	if pid != os.Getpid() {
		t.Errorf("lock file PID mismatch: got %d, want %d", pid, os.Getpid())
	}
}

func TestLock_Acquire_AlreadyLocked(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "catalog.json")
	lock := NewLock(dataFile)

	// Our own PID counts as a live owner
	if err := os.WriteFile(lock.Path(), []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		t.Fatalf("failed to create lock file: %v", err)
	}

	err := lock.Acquire()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.HasPrefix(err.Error(), "data file is in use") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestLock_Acquire_StaleLock(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "catalog.json")
	lock := NewLock(dataFile)

	// PID 99999999 is unlikely to exist
	if err := os.WriteFile(lock.Path(), []byte("99999999"), 0644); err != nil {
		t.Fatalf("failed to create lock file: %v", err)
	}

	if err := lock.Acquire(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(lock.Path())
	if err != nil {
		t.Fatalf("failed to read lock file: %v", err)
	}
	if string(data) != strconv.Itoa(os.Getpid()) {
		t.Errorf("expected lock to hold our PID, got %q", data)
	}
}

func TestLock_Acquire_InvalidPID(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "catalog.json")
	lock := NewLock(dataFile)

	if err := os.WriteFile(lock.Path(), []byte("not-a-pid"), 0644); err != nil {
		t.Fatalf("failed to create lock file: %v", err)
	}

	if err := lock.Acquire(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLock_Release_Idempotent(t *testing.T) {
	lock := NewLock(filepath.Join(t.TempDir(), "catalog.json"))
	if err := lock.Acquire(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("first release failed: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("second release failed: %v", err)
	}
	if _, err := os.Stat(lock.Path()); !os.IsNotExist(err) {
		t.Error("expected lock file to be removed")
	}
}

func TestLock_IsLocked(t *testing.T) {
	lock := NewLock(filepath.Join(t.TempDir(), "catalog.json"))

	locked, err := lock.IsLocked()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if locked {
		t.Error("expected unlocked before Acquire")
	}

	if err := lock.Acquire(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	locked, err = lock.IsLocked()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !locked {
		t.Error("expected locked after Acquire")
	}
}
