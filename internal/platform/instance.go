package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
)

// ErrAlreadyRunning indicates another timer process holds the lock.
var ErrAlreadyRunning = errors.New("countdown already running")

const (
	lockPortMin = 20000
	lockPortMax = 39999
)

// InstanceLock keeps a loopback port bound while the process runs.
type InstanceLock struct {
	listener net.Listener
}

// AcquireInstanceLock binds the loopback port derived from appName.
func AcquireInstanceLock(appName string) (*InstanceLock, error) {
	address := lockAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrAlreadyRunning, address, err)
	}
	return &InstanceLock{listener: listener}, nil
}

// Release frees the lock. It is safe on a nil lock.
func (lock *InstanceLock) Release() error {
	if lock == nil || lock.listener == nil {
		return nil
	}
	err := lock.listener.Close()
	lock.listener = nil
	return err
}

// Address reports the bound address, or "" after release.
func (lock *InstanceLock) Address() string {
	if lock == nil || lock.listener == nil {
		return ""
	}
	return lock.listener.Addr().String()
}

func lockAddress(appName string) string {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	span := uint32(lockPortMax - lockPortMin + 1)
	return fmt.Sprintf("127.0.0.1:%d", lockPortMin+int(hash.Sum32()%span))
}
