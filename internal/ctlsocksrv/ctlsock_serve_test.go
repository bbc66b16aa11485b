//go:build linux || darwin

package ctlsocksrv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/xattrctl/xattrctl/ctlsock"
	"github.com/xattrctl/xattrctl/xattr"
)

var tmpDir string

func TestMain(m *testing.M) {
	parent := "/var/tmp/xattrctl-test-parent"
	if err := os.MkdirAll(parent, 0700); err != nil {
		parent = os.TempDir()
	}
	var err error
	tmpDir, err = os.MkdirTemp(parent, "ctlsock")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	r := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(r)
}

func TestResolve(t *testing.T) {
	ch := ctlSockHandler{root: "/srv/root"}
	testCases := []struct {
		in   string
		want string
		warn bool
		err  error
	}{
		{"", "/srv/root", false, nil},
		{"/", "/srv/root", false, nil},
		{".", "/srv/root", false, nil},
		{"//./", "/srv/root", false, nil},
		{"foo", "/srv/root/foo", false, nil},
		{"/foo/./bar", "/srv/root/foo/bar", true, nil},
		{"..", "", false, errEscapesRoot},
		{"foo/../../etc", "", false, errEscapesRoot},
	}
	for _, tc := range testCases {
		have, warn, err := ch.resolve(tc.in)
		if err != tc.err {
			t.Errorf("%q: want err %v, got %v", tc.in, tc.err, err)
			continue
		}
		if have != tc.want {
			t.Errorf("%q: want %q, got %q", tc.in, tc.want, have)
		}
		if (warn != "") != tc.warn {
			t.Errorf("%q: unexpected warning state %q", tc.in, warn)
		}
	}
}

func TestHandleRequestBadInput(t *testing.T) {
	ch := ctlSockHandler{root: tmpDir}
	_, err := ch.handleRequest(&ctlsock.RequestStruct{Op: ctlsock.OpGet, Path: "x"})
	if err == nil {
		t.Error("missing Name should fail")
	}
	_, err = ch.handleRequest(&ctlsock.RequestStruct{Op: "chmod", Path: "x", Name: "user.x"})
	if err == nil {
		t.Error("unknown op should fail")
	}
	_, err = ch.handleRequest(&ctlsock.RequestStruct{Op: ctlsock.OpList, Path: "../x"})
	if err != errEscapesRoot {
		t.Errorf("want errEscapesRoot, got %v", err)
	}
	_, err = ch.handleRequest(&ctlsock.RequestStruct{Op: ctlsock.OpList, Path: "missing"})
	if !errors.Is(err, xattr.ErrNoSuchPath) {
		t.Errorf("want ErrNoSuchPath, got %v", err)
	}
}

// Full round trip through a real socket.
func TestServe(t *testing.T) {
	root := filepath.Join(tmpDir, "root")
	if err := os.Mkdir(root, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(root+"/file", nil, 0600); err != nil {
		t.Fatal(err)
	}
	sockPath := filepath.Join(tmpDir, "sock")
	sock, err := Listen(sockPath)
	if err != nil {
		t.Fatal(err)
	}
	defer sock.Close()
	go Serve(sock, root)

	c, err := ctlsock.New(sockPath)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	// Errors come back as *ResponseStruct with the errno filled in
	_, err = c.Query(&ctlsock.RequestStruct{Op: ctlsock.OpGet, Path: "missing", Name: "user.x"})
	var resp *ctlsock.ResponseStruct
	if !errors.As(err, &resp) {
		t.Fatalf("want *ResponseStruct, got %v", err)
	}
	if resp.ErrKind != xattr.KindNoSuchPath.String() || resp.ErrNo <= 0 {
		t.Errorf("wrong error response: %#v", resp)
	}

	_, err = c.Query(&ctlsock.RequestStruct{Op: ctlsock.OpSet, Path: "file", Name: "user.demo", Value: []byte("rulez")})
	if err != nil {
		if errors.As(err, &resp) && resp.ErrKind == xattr.KindNotSupported.String() {
			t.Skipf("user.* xattrs not supported: %v", err)
		}
		t.Fatal(err)
	}
	resp, err = c.Query(&ctlsock.RequestStruct{Op: ctlsock.OpGet, Path: "/file", Name: "user.demo"})
	if err != nil {
		t.Fatal(err)
	}
	if string(resp.Value) != "rulez" {
		t.Errorf("got %q", resp.Value)
	}
	resp, err = c.Query(&ctlsock.RequestStruct{Op: ctlsock.OpLList, Path: "file"})
	if err != nil {
		t.Fatal(err)
	}
	// SELinux adds security.selinux, so only look at user.*
	var userNames []string
	for _, n := range resp.Names {
		if strings.HasPrefix(n, "user.") {
			userNames = append(userNames, n)
		}
	}
	if !cmp.Equal(userNames, []string{"user.demo"}) {
		t.Errorf("got %v", resp.Names)
	}
	_, err = c.Query(&ctlsock.RequestStruct{Op: ctlsock.OpRemove, Path: "file", Name: "user.demo"})
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.Query(&ctlsock.RequestStruct{Op: ctlsock.OpLGet, Path: "file", Name: "user.demo"})
	if !errors.As(err, &resp) || resp.ErrKind != xattr.KindNotFound.String() {
		t.Errorf("want AttributeNotFound, got %v", err)
	}
}

// A stale socket file from a crashed server must not prevent Listen.
func TestListenOrphaned(t *testing.T) {
	sockPath := filepath.Join(tmpDir, "orphan")
	sock, err := Listen(sockPath)
	if err != nil {
		t.Fatal(err)
	}
	// Close the listener without removing the file, like a crash would.
	sock.(interface{ SetUnlinkOnClose(bool) }).SetUnlinkOnClose(false)
	sock.Close()
	if _, err := os.Stat(sockPath); err != nil {
		t.Fatalf("socket file should still exist: %v", err)
	}
	sock, err = Listen(sockPath)
	if err != nil {
		t.Fatal(err)
	}
	sock.Close()
}
