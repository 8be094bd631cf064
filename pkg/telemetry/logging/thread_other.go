//go:build !linux

package logging

import "os"

// Without a portable thread id every goroutine reports the same slot.
func currentThreadID() int {
	return os.Getpid()
}
