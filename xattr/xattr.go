//go:build linux || darwin

// Package xattr reads and writes extended file attributes.
//
// Every function maps to one call of the OS xattr syscall family (two for
// reads, which first query the size). The plain functions follow symlinks,
// the L-prefixed ones operate on the symlink itself, the F-prefixed ones
// on an open file.
//
// All errors are of type *Error. Use errors.Is with the Err* sentinels to
// check for a specific failure:
//
//	val, err := xattr.Get("/tmp/foo", "user.demo")
//	if errors.Is(err, xattr.ErrAttributeNotFound) {
//		...
//	}
package xattr

import (
	"os"

	"github.com/xattrctl/xattrctl/internal/syscallcompat"
)

// Flags modify the behavior of the Set functions.
type Flags int

const (
	// Create fails with ErrAttributeExists if the attribute is already set.
	Create Flags = syscallcompat.XATTR_CREATE
	// Replace fails with ErrAttributeNotFound if the attribute is not set.
	Replace Flags = syscallcompat.XATTR_REPLACE
)

// Get returns the value of attribute `name` on `path`, following symlinks.
// A present attribute with an empty value returns an empty, non-nil slice.
func Get(path string, name string) ([]byte, error) {
	val, err := syscallcompat.Getxattr(path, name)
	if err != nil {
		return nil, newError("xattr.get", path, name, err)
	}
	return val, nil
}

// LGet is like Get but does not follow symlinks.
func LGet(path string, name string) ([]byte, error) {
	val, err := syscallcompat.Lgetxattr(path, name)
	if err != nil {
		return nil, newError("xattr.lget", path, name, err)
	}
	return val, nil
}

// FGet is like Get but operates on an open file.
func FGet(f *os.File, name string) (val []byte, err error) {
	err = withFd(f, func(fd int) (err error) {
		val, err = syscallcompat.Fgetxattr(fd, name)
		return err
	})
	if err != nil {
		return nil, newError("xattr.fget", f.Name(), name, err)
	}
	return val, nil
}

// Set creates or replaces attribute `name` on `path`, following symlinks.
func Set(path string, name string, value []byte) error {
	return SetWithFlags(path, name, value, 0)
}

// SetWithFlags is like Set but accepts Create or Replace.
func SetWithFlags(path string, name string, value []byte, flags Flags) error {
	err := syscallcompat.Setxattr(path, name, value, int(flags))
	if err != nil {
		return newError("xattr.set", path, name, err)
	}
	return nil
}

// LSet is like Set but does not follow symlinks.
func LSet(path string, name string, value []byte) error {
	return LSetWithFlags(path, name, value, 0)
}

// LSetWithFlags is like SetWithFlags but does not follow symlinks.
func LSetWithFlags(path string, name string, value []byte, flags Flags) error {
	err := syscallcompat.Lsetxattr(path, name, value, int(flags))
	if err != nil {
		return newError("xattr.lset", path, name, err)
	}
	return nil
}

// FSet is like Set but operates on an open file.
func FSet(f *os.File, name string, value []byte) error {
	return FSetWithFlags(f, name, value, 0)
}

// FSetWithFlags is like SetWithFlags but operates on an open file.
func FSetWithFlags(f *os.File, name string, value []byte, flags Flags) error {
	err := withFd(f, func(fd int) error {
		return syscallcompat.Fsetxattr(fd, name, value, int(flags))
	})
	if err != nil {
		return newError("xattr.fset", f.Name(), name, err)
	}
	return nil
}

// Remove deletes attribute `name` from `path`, following symlinks.
func Remove(path string, name string) error {
	err := syscallcompat.Removexattr(path, name)
	if err != nil {
		return newError("xattr.remove", path, name, err)
	}
	return nil
}

// LRemove is like Remove but does not follow symlinks.
func LRemove(path string, name string) error {
	err := syscallcompat.Lremovexattr(path, name)
	if err != nil {
		return newError("xattr.lremove", path, name, err)
	}
	return nil
}

// FRemove is like Remove but operates on an open file.
func FRemove(f *os.File, name string) error {
	err := withFd(f, func(fd int) error {
		return syscallcompat.Fremovexattr(fd, name)
	})
	if err != nil {
		return newError("xattr.fremove", f.Name(), name, err)
	}
	return nil
}

// List returns the names of all attributes on `path`, following symlinks.
func List(path string) (Names, error) {
	blob, err := syscallcompat.Listxattr(path)
	if err != nil {
		return Names{}, newError("xattr.list", path, "", err)
	}
	return NamesFromBlob(blob), nil
}

// LList is like List but does not follow symlinks.
func LList(path string) (Names, error) {
	blob, err := syscallcompat.Llistxattr(path)
	if err != nil {
		return Names{}, newError("xattr.llist", path, "", err)
	}
	return NamesFromBlob(blob), nil
}

// FList is like List but operates on an open file.
func FList(f *os.File) (names Names, err error) {
	var blob []byte
	err = withFd(f, func(fd int) (err error) {
		blob, err = syscallcompat.Flistxattr(fd)
		return err
	})
	if err != nil {
		return Names{}, newError("xattr.flist", f.Name(), "", err)
	}
	return NamesFromBlob(blob), nil
}

// Supported reports whether the filesystem `path` lives on supports
// extended attributes. Only a definite "not supported" answer returns
// false.
func Supported(path string) bool {
	_, err := syscallcompat.Listxattr(path)
	return err == nil || classify(err) != KindNotSupported
}

// withFd runs `op` on the file descriptor of `f` while keeping `f` from
// being closed concurrently.
func withFd(f *os.File, op func(fd int) error) error {
	rc, err := f.SyscallConn()
	if err != nil {
		return err
	}
	var opErr error
	err = rc.Control(func(fd uintptr) {
		opErr = op(int(fd))
	})
	if err != nil {
		return err
	}
	return opErr
}
