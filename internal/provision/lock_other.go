// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package provision

import "errors"

// errFlockUnavailable is returned where flock(2) does not exist. The cache
// falls back to its in-process mutex.
var errFlockUnavailable = errors.New("flock not available on this platform")

// acquireCreateLock always fails with errFlockUnavailable on this platform.
func acquireCreateLock(string) (*createLock, error) {
	return nil, errFlockUnavailable
}

// createLock is the non-unix stub.
type createLock struct{}

// Release is a no-op.
func (l *createLock) Release() {}
