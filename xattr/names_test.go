//go:build linux || darwin

package xattr

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNamesFromBlob(t *testing.T) {
	testCases := []struct {
		blob string
		want []string
	}{
		{"", []string{}},
		{"\000", []string{}},
		{"user.a\000", []string{"user.a"}},
		{"user.a\000user.b\000", []string{"user.a", "user.b"}},
		// Order is kept as-is, not sorted.
		{"user.z\000user.a\000security.selinux\000", []string{"user.z", "user.a", "security.selinux"}},
		// Empty segments never turn into names.
		{"user.a\000\000user.b\000", []string{"user.a", "user.b"}},
		// Missing final NUL (SMB1 does this)
		{"user.a\000user.b", []string{"user.a", "user.b"}},
	}
	for _, tc := range testCases {
		n := NamesFromBlob([]byte(tc.blob))
		if diff := cmp.Diff(tc.want, n.Strings()); diff != "" {
			t.Errorf("blob %q (-want +got):\n%s", tc.blob, diff)
		}
		if n.Len() != len(tc.want) {
			t.Errorf("blob %q: Len()=%d, want %d", tc.blob, n.Len(), len(tc.want))
		}
	}
}

func TestNamesRestartable(t *testing.T) {
	n := NamesFromBlob([]byte("user.a\000user.b\000user.c\000"))
	for i := 0; i < 2; i++ {
		var got []string
		for name := range n.All() {
			got = append(got, name)
		}
		if diff := cmp.Diff([]string{"user.a", "user.b", "user.c"}, got); diff != "" {
			t.Errorf("pass %d (-want +got):\n%s", i, diff)
		}
	}
}

func TestNamesBreak(t *testing.T) {
	n := NamesFromBlob([]byte("user.a\000user.b\000user.c\000"))
	var got []string
	for name := range n.All() {
		got = append(got, name)
		if name == "user.b" {
			break
		}
	}
	if diff := cmp.Diff([]string{"user.a", "user.b"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if !n.Contains("user.c") || n.Contains("user.d") || n.Contains("") {
		t.Error("Contains is wrong")
	}
}
