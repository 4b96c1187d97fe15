//go:build !unix && !windows

package fsx

func isCrossDeviceErr(err error) bool { return false }
