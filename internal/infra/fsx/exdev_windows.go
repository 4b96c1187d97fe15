//go:build windows

package fsx

import (
	"errors"
	"os"
	"syscall"
)

// ERROR_NOT_SAME_DEVICE：MoveFileEx 不允许跨卷时返回。
const errNotSameDevice syscall.Errno = 17

func isCrossDeviceErr(err error) bool {
	if errors.Is(err, errNotSameDevice) {
		return true
	}
	var le *os.LinkError
	if errors.As(err, &le) && errors.Is(le.Err, errNotSameDevice) {
		return true
	}
	return false
}
