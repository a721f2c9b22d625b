package tool

import (
	"errors"
	"strings"
	"syscall"
)

// IsAddrInUseError detects address-already-in-use bind errors across platforms.
func IsAddrInUseError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.EADDRINUSE) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "address already in use") ||
		strings.Contains(msg, "only one usage of each socket address")
}
