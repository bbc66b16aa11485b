//go:build linux || darwin

package xattr

import (
	"bytes"
	"iter"
)

// Names is the result of a single list call: the name blob as returned by
// the OS, NUL-terminated names back to back.
//
// The blob is split lazily. Ranging over All twice yields the same names,
// in the order the OS reported them. To see changes on the file, call
// List again.
type Names struct {
	blob []byte
}

// NamesFromBlob wraps a raw name blob.
func NamesFromBlob(blob []byte) Names {
	return Names{blob: blob}
}

// All returns an iterator over the attribute names. Empty segments, like
// the one after the last NUL, are skipped.
func (n Names) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := n.blob
		for len(rest) > 0 {
			var name []byte
			name, rest, _ = bytes.Cut(rest, []byte{0})
			if len(name) == 0 {
				continue
			}
			if !yield(string(name)) {
				return
			}
		}
	}
}

// Strings returns all names as a slice. Never nil.
func (n Names) Strings() []string {
	names := []string{}
	for name := range n.All() {
		names = append(names, name)
	}
	return names
}

// Len returns the number of names.
func (n Names) Len() (count int) {
	for range n.All() {
		count++
	}
	return count
}

// Contains reports whether `name` is in the list.
func (n Names) Contains(name string) bool {
	for cur := range n.All() {
		if cur == name {
			return true
		}
	}
	return false
}
