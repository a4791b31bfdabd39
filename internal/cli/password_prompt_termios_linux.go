//go:build linux

package cli

import "golang.org/x/sys/unix"

// Terminal attribute requests used by disableEcho.
const (
	ioctlGetTermios = unix.TCGETS
	ioctlSetTermios = unix.TCSETS
)
