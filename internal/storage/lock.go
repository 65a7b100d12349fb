package storage

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"
)

// DefaultLockTimeout bounds how long WithLock waits for another process.
const DefaultLockTimeout = 5 * time.Second

const lockPollInterval = 10 * time.Millisecond

// ErrLockTimeout is returned when the lock stays held past the timeout.
var ErrLockTimeout = errors.New("timed out waiting for lock")

// FileLock is an exclusive advisory lock (flock) shared between processes.
// A FileLock is not safe for concurrent use; each goroutine takes its own.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock returns an unlocked lock on path. The file is created on
// first acquisition.
func NewFileLock(path string) *FileLock {
	return &FileLock{path: path}
}

// LockPath returns the lock file guarding the file at path.
func LockPath(path string) string {
	return path + ".lock"
}

// TryLock acquires the lock without waiting. It reports false when another
// holder has it.
func (l *FileLock) TryLock() (bool, error) {
	if l.file != nil {
		return true, nil
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return false, err
	}

	err = syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
	switch {
	case err == nil:
		l.file = f
		return true, nil
	case errors.Is(err, syscall.EWOULDBLOCK):
		f.Close()
		return false, nil
	default:
		f.Close()
		return false, err
	}
}

// Lock waits up to timeout for the lock.
func (l *FileLock) Lock(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		ok, err := l.TryLock()
		if err != nil || ok {
			return err
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: %s", ErrLockTimeout, l.path)
		}
		time.Sleep(lockPollInterval)
	}
}

// Unlock releases the lock. Unlocking an unheld lock is a no-op.
func (l *FileLock) Unlock() error {
	f := l.file
	if f == nil {
		return nil
	}
	l.file = nil

	unlockErr := syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
	closeErr := f.Close()
	return errors.Join(unlockErr, closeErr)
}

// WithLock runs fn while holding the lock at path.
func WithLock(path string, fn func() error) error {
	lock := NewFileLock(path)
	if err := lock.Lock(DefaultLockTimeout); err != nil {
		return err
	}
	defer lock.Unlock()

	return fn()
}
