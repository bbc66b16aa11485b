package ctlsocksrv

import (
	"path/filepath"
	"strings"
)

// cleanRequestPath turns a path sent by a client into a clean path relative
// to the served root:
//  1. Leading slash(es) are dropped, so "/foo" and "foo" are the same
//  2. The root itself is returned as "."
//  3. ok is false if the cleaned path points above the root
//
// Symlinks are not resolved. See the TestCleanRequestPath testcases for
// examples.
func cleanRequestPath(p string) (clean string, ok bool) {
	// (1), (2): filepath.Clean("") is "."
	clean = filepath.Clean(strings.TrimLeft(p, "/"))
	// (3)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", false
	}
	return clean, true
}
