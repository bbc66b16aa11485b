//go:build linux || darwin

// Package syscallcompat wraps the xattr syscall family of Linux and MacOS.
//
// The get and list wrappers discover the buffer size with a size query and
// then fetch into a buffer of exactly that size. Errors are returned as they
// come from golang.org/x/sys/unix, usually a bare syscall.Errno.
package syscallcompat

import (
	"errors"
	"syscall"

	"golang.org/x/sys/unix"
)

// MaxSizeRetries is how often the size query is repeated when the attribute
// changed size between the query and the fetch.
const MaxSizeRetries = 2

// ErrSizeChanged is returned when the value or name list kept changing size
// between the size query and the fetch, MaxSizeRetries times in a row.
var ErrSizeChanged = errors.New("xattr size changed between size query and fetch")

// fetchFunc is a getxattr or listxattr style call. Passing a nil buffer
// returns the required size.
type fetchFunc func(buf []byte) (int, error)

// fetchSized runs the size-query-then-fetch sequence for `fn`.
//
// A zero size returns an empty, non-nil slice without a second call. Some
// implementations reject a fetch into a zero-length buffer.
func fetchSized(fn fetchFunc) ([]byte, error) {
	for i := 0; i <= MaxSizeRetries; i++ {
		sz, err := retryEINTR2(func() (int, error) {
			return fn(nil)
		})
		if err != nil {
			return nil, err
		}
		if sz == 0 {
			return []byte{}, nil
		}
		buf := make([]byte, sz)
		n, err := retryEINTR2(func() (int, error) {
			return fn(buf)
		})
		// Linux: the value grew and does not fit anymore.
		if err == syscall.ERANGE {
			continue
		}
		if err != nil {
			return nil, err
		}
		// The value shrank (or grew, on MacOS, which truncates instead of
		// returning ERANGE). Do not hand out a value we cannot vouch for.
		if n != sz {
			continue
		}
		return buf, nil
	}
	return nil, ErrSizeChanged
}

// Getxattr is a wrapper around unix.Getxattr that handles the buffer sizing.
// Follows symlinks.
func Getxattr(path string, attr string) ([]byte, error) {
	return fetchSized(func(buf []byte) (int, error) {
		return unix.Getxattr(path, attr, buf)
	})
}

// Lgetxattr is a wrapper around unix.Lgetxattr that handles the buffer sizing.
func Lgetxattr(path string, attr string) ([]byte, error) {
	return fetchSized(func(buf []byte) (int, error) {
		return unix.Lgetxattr(path, attr, buf)
	})
}

// Fgetxattr is a wrapper around unix.Fgetxattr that handles the buffer sizing.
func Fgetxattr(fd int, attr string) ([]byte, error) {
	return fetchSized(func(buf []byte) (int, error) {
		return unix.Fgetxattr(fd, attr, buf)
	})
}

// Listxattr is a wrapper around unix.Listxattr that handles the buffer sizing.
// It returns the raw name blob: NUL-terminated names, back to back.
func Listxattr(path string) ([]byte, error) {
	return fetchSized(func(buf []byte) (int, error) {
		return unix.Listxattr(path, buf)
	})
}

// Llistxattr is like Listxattr but does not follow symlinks.
func Llistxattr(path string) ([]byte, error) {
	return fetchSized(func(buf []byte) (int, error) {
		return unix.Llistxattr(path, buf)
	})
}

// Flistxattr is like Listxattr but operates on an open file descriptor.
func Flistxattr(fd int) ([]byte, error) {
	return fetchSized(func(buf []byte) (int, error) {
		return unix.Flistxattr(fd, buf)
	})
}

// Setxattr wraps unix.Setxattr. Retries on EINTR.
func Setxattr(path string, attr string, data []byte, flags int) error {
	return retryEINTR(func() error {
		return unix.Setxattr(path, attr, data, flags)
	})
}

// Lsetxattr wraps unix.Lsetxattr. Retries on EINTR.
func Lsetxattr(path string, attr string, data []byte, flags int) error {
	return retryEINTR(func() error {
		return unix.Lsetxattr(path, attr, data, flags)
	})
}

// Fsetxattr wraps unix.Fsetxattr. Retries on EINTR.
func Fsetxattr(fd int, attr string, data []byte, flags int) error {
	return retryEINTR(func() error {
		return unix.Fsetxattr(fd, attr, data, flags)
	})
}

// Removexattr wraps unix.Removexattr. Retries on EINTR.
func Removexattr(path string, attr string) error {
	return retryEINTR(func() error {
		return unix.Removexattr(path, attr)
	})
}

// Lremovexattr wraps unix.Lremovexattr. Retries on EINTR.
func Lremovexattr(path string, attr string) error {
	return retryEINTR(func() error {
		return unix.Lremovexattr(path, attr)
	})
}

// Fremovexattr wraps unix.Fremovexattr. Retries on EINTR.
func Fremovexattr(fd int, attr string) error {
	return retryEINTR(func() error {
		return unix.Fremovexattr(fd, attr)
	})
}
