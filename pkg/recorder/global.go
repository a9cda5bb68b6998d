package recorder

import (
	"errors"
	"sync"
)

// ErrAlreadyInstalled is returned by Install when a process-wide recorder
// has already been registered.
var ErrAlreadyInstalled = errors.New("a recorder is already installed")

var (
	globalMu sync.Mutex
	global   *Recorder
)

// Install registers r as the process-wide recorder. It may succeed at most
// once per process; host applications call it at startup. The recorder
// itself never consults the global, it exists purely as a convenience for
// instrumentation sites that have no way to thread a Recorder through.
func Install(r *Recorder) error {
	globalMu.Lock()
	defer globalMu.Unlock()
	if global != nil {
		return ErrAlreadyInstalled
	}
	global = r
	return nil
}

// Installed returns the process-wide recorder, or nil if none was installed.
func Installed() *Recorder {
	globalMu.Lock()
	defer globalMu.Unlock()
	return global
}
