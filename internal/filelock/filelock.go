// Package filelock provides file locking and atomic write operations so
// concurrent builds and index updates never corrupt generated output.
package filelock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// ErrLockTimeout is returned by LockWithTimeout when the lock stays held by
// another process past the deadline.
var ErrLockTimeout = errors.New("timed out waiting for file lock")

// lockRetryInterval is the pause between acquisition attempts in
// LockWithTimeout.
const lockRetryInterval = 10 * time.Millisecond

// LockMetrics records how a lock acquisition went: how many attempts it
// took, how long the caller waited, and whether it gave up.
type LockMetrics struct {
	Attempts int
	Wait     time.Duration
	TimedOut bool
}

// MonitorFunc receives metrics when a lock acquisition completes or times
// out. Useful for surfacing contention in build logs.
type MonitorFunc func(path string, metrics LockMetrics)

// FileLock wraps a flock file lock for coordinating access to files.
type FileLock struct {
	flock   *flock.Flock
	path    string
	monitor MonitorFunc
	last    LockMetrics
}

// NewFileLock creates a new file lock for the given path.
// The lock file will be created at the specified path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// SetMonitor installs a callback invoked with metrics after each acquisition
// attempt completes. Pass nil to remove the monitor.
func (fl *FileLock) SetMonitor(monitor MonitorFunc) {
	fl.monitor = monitor
}

// LastMetrics returns the metrics recorded by the most recent Lock or
// LockWithTimeout call.
func (fl *FileLock) LastMetrics() LockMetrics {
	return fl.last
}

// Lock acquires an exclusive lock on the file, blocking until the lock is available.
// Returns an error if the lock cannot be acquired.
func (fl *FileLock) Lock() error {
	start := time.Now()
	if err := fl.flock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", fl.path, err)
	}
	fl.record(LockMetrics{Attempts: 1, Wait: time.Since(start)})
	return nil
}

// LockWithTimeout attempts to acquire an exclusive lock, retrying until the
// timeout elapses. Returns an error wrapping ErrLockTimeout if another
// process holds the lock for the whole window.
func (fl *FileLock) LockWithTimeout(timeout time.Duration) error {
	start := time.Now()
	deadline := start.Add(timeout)
	attempts := 0

	for {
		attempts++
		acquired, err := fl.flock.TryLock()
		if err != nil {
			return fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
		}
		if acquired {
			fl.record(LockMetrics{Attempts: attempts, Wait: time.Since(start)})
			return nil
		}
		if time.Now().After(deadline) {
			fl.record(LockMetrics{Attempts: attempts, Wait: time.Since(start), TimedOut: true})
			return fmt.Errorf("failed to acquire lock on %s within %s: %w", fl.path, timeout, ErrLockTimeout)
		}
		time.Sleep(lockRetryInterval)
	}
}

// TryLock attempts to acquire an exclusive lock on the file without blocking.
// Returns true if the lock was acquired, false if the lock is held by another process.
// Returns an error if the lock operation fails.
func (fl *FileLock) TryLock() (bool, error) {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	return acquired, nil
}

// Unlock releases the lock.
// Returns an error if the unlock operation fails.
func (fl *FileLock) Unlock() error {
	err := fl.flock.Unlock()
	if err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// record stores the metrics and notifies the monitor if one is installed.
func (fl *FileLock) record(metrics LockMetrics) {
	fl.last = metrics
	if fl.monitor != nil {
		fl.monitor(fl.path, metrics)
	}
}

// AtomicWrite writes data to a file atomically using a temp file and rename strategy.
// This ensures that readers never see partial writes, even if the write is interrupted.
//
// The process:
// 1. Create a temporary file in the same directory as the target
// 2. Write content to the temporary file
// 3. Rename the temporary file to the target path (atomic operation)
//
// If the operation fails at any point, the original file (if it exists) remains unchanged.
func AtomicWrite(path string, data []byte) error {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	// Temp file must live in the same directory as the target so the rename
	// stays on one filesystem and remains atomic
	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	// Ensure temp file is cleaned up on error
	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// CreateTemp uses 0600; generated docs should be world-readable
	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	// Success - prevent cleanup of temp file since it's now renamed
	tempFile = nil

	return nil
}

// LockAndWrite acquires a lock, performs an atomic write, releases the lock,
// and removes the lock file. This is the pattern used for files multiple
// docsmith processes may write, like sidebars.json.
//
// The lock path is derived by appending ".lock" to the target path.
// Example: writing to "sidebars.json" uses lock file "sidebars.json.lock"
func LockAndWrite(path string, data []byte) error {
	lockPath := path + ".lock"
	lock := NewFileLock(lockPath)

	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() {
		lock.Unlock()
		os.Remove(lockPath)
	}()

	return AtomicWrite(path, data)
}
