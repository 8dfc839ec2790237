//go:build !unix

package runner

type fileLock struct{}

// acquireLock is a no-op where flock is unavailable.
func acquireLock(string) (*fileLock, error) {
	return &fileLock{}, nil
}

func (*fileLock) release() error { return nil }
