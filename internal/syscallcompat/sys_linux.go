package syscallcompat

import (
	"golang.org/x/sys/unix"
)

const (
	// ENOATTR is returned when the attribute does not exist. Linux calls it
	// ENODATA.
	ENOATTR = unix.ENODATA

	// XATTR_CREATE makes setxattr fail with EEXIST if the attribute exists.
	XATTR_CREATE = unix.XATTR_CREATE
	// XATTR_REPLACE makes setxattr fail with ENOATTR if the attribute is
	// missing.
	XATTR_REPLACE = unix.XATTR_REPLACE
)
