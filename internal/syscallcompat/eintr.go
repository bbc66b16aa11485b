package syscallcompat

import (
	"golang.org/x/sys/unix"
)

// retryEINTR executes operation `op` and retries if it gets EINTR.
//
// Like ignoringEINTR() in the Go stdlib:
// https://github.com/golang/go/blob/d2a80f3fb5b44450e0b304ac5a718f99c053d82a/src/os/file_posix.go#L243
//
// Network filesystems like CIFS throw lots of EINTR errors, also on xattr
// calls.
func retryEINTR(op func() error) error {
	for {
		err := op()
		if err != unix.EINTR {
			return err
		}
	}
}

// retryEINTR2 is like retryEINTR but for functions that return an (int, error)
// pair like unix.Getxattr().
func retryEINTR2(op func() (int, error)) (int, error) {
	for {
		ret, err := op()
		if err != unix.EINTR {
			return ret, err
		}
	}
}
