// Package ensurefds012 makes sure that file descriptors 0, 1 and 2 are open,
// backed by /dev/null if necessary.
//
// If xattrctl is started with stderr closed, the control socket opened by
// "serve" could get fd 2, and every log message would be written into a
// client connection. Import the package for its side effect:
//
//	import _ "github.com/xattrctl/xattrctl/internal/ensurefds012"
//
// The import line MUST be in the alphabetically first source code file of
// package main, so init() runs before anything else opens a file.
//
// Check with
//
//	$ xattrctl serve --ctlsock /tmp/x.sock /tmp 0<&- 1>&- 2>&-
//	$ ls -l /proc/$(pgrep xattrctl)/fd
//
// that 0, 1 and 2 point to /dev/null.
package ensurefds012

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/xattrctl/xattrctl/internal/exitcodes"
)

func init() {
	fd, err := unix.Open("/dev/null", unix.O_RDWR, 0)
	if err != nil {
		os.Exit(exitcodes.DevNull)
	}
	for fd <= 2 {
		fd, err = unix.Dup(fd)
		if err != nil {
			os.Exit(exitcodes.DevNull)
		}
	}
	// The first fd above 2 is not needed
	unix.Close(fd)
}
