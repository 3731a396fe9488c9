// SPDX-License-Identifier: MPL-2.0

//go:build unix

package provision

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestAcquireCreateLock_CreatesFile(t *testing.T) {
	t.Parallel()

	lockPath := filepath.Join(t.TempDir(), "test.lock")
	lock, err := acquireCreateLock(lockPath)
	if err != nil {
		t.Fatalf("acquireCreateLock() error: %v", err)
	}
	defer lock.Release()

	if _, statErr := os.Stat(lockPath); statErr != nil {
		t.Errorf("lock file not found at %s: %v", lockPath, statErr)
	}
}

func TestAcquireCreateLock_BlocksConcurrent(t *testing.T) {
	t.Parallel()

	lockPath := filepath.Join(t.TempDir(), "test.lock")
	lockA, err := acquireCreateLock(lockPath)
	if err != nil {
		t.Fatalf("acquireCreateLock A: %v", err)
	}

	var acquired atomic.Bool

	done := make(chan struct{})
	go func() {
		defer close(done)
		lockB, bErr := acquireCreateLock(lockPath)
		if bErr != nil {
			t.Errorf("acquireCreateLock B: %v", bErr)
			return
		}
		acquired.Store(true)
		lockB.Release()
	}()

	time.Sleep(100 * time.Millisecond)
	if acquired.Load() {
		t.Fatal("goroutine B acquired the lock while A still held it")
	}

	lockA.Release()

	select {
	case <-done:
		if !acquired.Load() {
			t.Fatal("goroutine B never acquired the lock after A released")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for goroutine B to acquire the lock")
	}
}

func TestCreateLock_Release_Idempotent(t *testing.T) {
	t.Parallel()

	lock, err := acquireCreateLock(filepath.Join(t.TempDir(), "test.lock"))
	if err != nil {
		t.Fatalf("acquireCreateLock() error: %v", err)
	}
	lock.Release()
	lock.Release()

	var nilLock *createLock
	nilLock.Release()
}

func TestAcquireCreateLock_MissingDir(t *testing.T) {
	t.Parallel()

	_, err := acquireCreateLock(filepath.Join(t.TempDir(), "missing", "test.lock"))
	if err == nil {
		t.Fatal("acquireCreateLock() in a missing directory should fail")
	}
}
