package syncwatch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"clio/internal/services"
)

// AcquireLock takes the watch lock at path without blocking. The returned
// release function must be called once the watch ends. A held lock means
// another clio process is already watching this sync.
func AcquireLock(path string) (func(), error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, services.Wrap(services.ErrConfiguration, component, "lock", fmt.Sprintf("create lock directory %q", dir), err)
		}
	}

	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "lock", fmt.Sprintf("acquire lock %q", path), err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrValidation, component, "lock", "another sync watch is already running", nil)
	}
	return func() { _ = lock.Unlock() }, nil
}
