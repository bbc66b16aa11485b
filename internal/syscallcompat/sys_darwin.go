package syscallcompat

import (
	"golang.org/x/sys/unix"
)

const (
	// ENOATTR is returned when the attribute does not exist.
	ENOATTR = unix.ENOATTR

	XATTR_CREATE  = unix.XATTR_CREATE
	XATTR_REPLACE = unix.XATTR_REPLACE
)
