//go:build linux || darwin

package xattr

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"testing"

	pkgxattr "github.com/pkg/xattr"
)

var tmpDir string

// userXattrSupported is false if tmpDir lives on a filesystem without
// user.* xattr support (tmpfs on older kernels, for example).
var userXattrSupported bool

func TestMain(m *testing.M) {
	// Prefer /var/tmp over /tmp, which is often a tmpfs.
	parent := "/var/tmp/xattrctl-test-parent"
	if err := os.MkdirAll(parent, 0700); err != nil {
		parent = os.TempDir()
	}
	var err error
	tmpDir, err = os.MkdirTemp(parent, "xattr")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	userXattrSupported = oracleSupported(tmpDir)
	if !userXattrSupported {
		fmt.Printf("xattrs not supported on %q, skipping filesystem tests\n", tmpDir)
	}
	r := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(r)
}

// oracleSupported asks github.com/pkg/xattr, so a bug in this package
// cannot hide all filesystem tests.
func oracleSupported(path string) bool {
	err := pkgxattr.Set(path, "user.xattrSupported-dummy-value", []byte("1"))
	if err == nil {
		pkgxattr.Remove(path, "user.xattrSupported-dummy-value")
		return true
	}
	var xerr *pkgxattr.Error
	if errors.As(err, &xerr) && (xerr.Err == syscall.ENOTSUP || xerr.Err == syscall.EOPNOTSUPP) {
		return false
	}
	return true
}

func requireXattr(t *testing.T) {
	t.Helper()
	if !userXattrSupported {
		t.Skipf("user.* xattrs not supported on %q", tmpDir)
	}
}

// newFile creates an empty regular file named after the test.
func newFile(t *testing.T) string {
	t.Helper()
	fn := tmpDir + "/" + t.Name()
	err := os.WriteFile(fn, nil, 0600)
	if err != nil {
		t.Fatalf("creating empty file failed: %v", err)
	}
	return fn
}

// userNames returns the user.* names of `n`. SELinux labels every file with
// security.selinux, which the tests must not trip over.
func userNames(n Names) []string {
	names := []string{}
	for name := range n.All() {
		if strings.HasPrefix(name, "user.") {
			names = append(names, name)
		}
	}
	return names
}
