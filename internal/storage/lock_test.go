package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLock_LockUnlock(t *testing.T) {
	t.Parallel()

	lockPath := filepath.Join(t.TempDir(), "cache.lock")
	lock := NewFileLock(lockPath)

	require.NoError(t, lock.Lock(time.Second))
	assert.FileExists(t, lockPath)
	require.NoError(t, lock.Unlock())
	assert.Nil(t, lock.file)

	// second unlock is a no-op
	assert.NoError(t, lock.Unlock())
}

func TestFileLock_TryLockHeldElsewhere(t *testing.T) {
	t.Parallel()

	lockPath := filepath.Join(t.TempDir(), "cache.lock")

	holder := NewFileLock(lockPath)
	ok, err := holder.TryLock()
	require.NoError(t, err)
	require.True(t, ok)

	other := NewFileLock(lockPath)
	ok, err = other.TryLock()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, holder.Unlock())

	ok, err = other.TryLock()
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, other.Unlock())
}

func TestFileLock_WaitsForRelease(t *testing.T) {
	t.Parallel()

	lockPath := filepath.Join(t.TempDir(), "cache.lock")

	holder := NewFileLock(lockPath)
	require.NoError(t, holder.Lock(time.Second))

	acquired := make(chan error, 1)
	go func() {
		waiter := NewFileLock(lockPath)
		err := waiter.Lock(5 * time.Second)
		if err == nil {
			waiter.Unlock()
		}
		acquired <- err
	}()

	select {
	case <-acquired:
		t.Fatal("waiter should block while the lock is held")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, holder.Unlock())

	select {
	case err := <-acquired:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("waiter should acquire the lock once released")
	}
}

func TestFileLock_Timeout(t *testing.T) {
	t.Parallel()

	lockPath := filepath.Join(t.TempDir(), "cache.lock")

	holder := NewFileLock(lockPath)
	require.NoError(t, holder.Lock(time.Second))
	t.Cleanup(func() { holder.Unlock() })

	err := NewFileLock(lockPath).Lock(30 * time.Millisecond)
	assert.ErrorIs(t, err, ErrLockTimeout)
}

func TestFileLock_InvalidPath(t *testing.T) {
	t.Parallel()

	lock := NewFileLock("/non-existent-dir/cache.lock")
	assert.Error(t, lock.Lock(time.Second))
}

func TestWithLock(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "metadata.json")
	called := false
	err := WithLock(LockPath(path), func() error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)

	sentinel := errors.New("boom")
	assert.ErrorIs(t, WithLock(LockPath(path), func() error { return sentinel }), sentinel)
}
