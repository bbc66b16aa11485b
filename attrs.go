package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	// Must be imported before anything opens a file
	_ "github.com/xattrctl/xattrctl/internal/ensurefds012"

	"github.com/xattrctl/xattrctl/internal/dump"
	"github.com/xattrctl/xattrctl/internal/exitcodes"
	"github.com/xattrctl/xattrctl/internal/tlog"
	"github.com/xattrctl/xattrctl/xattr"
)

// accessor bundles the xattr functions for either following symlinks or
// operating on them ("-h").
type accessor struct {
	get    func(path string, name string) ([]byte, error)
	set    func(path string, name string, value []byte, flags xattr.Flags) error
	remove func(path string, name string) error
	list   func(path string) (xattr.Names, error)
}

func newAccessor(noDereference bool) accessor {
	if noDereference {
		return accessor{xattr.LGet, xattr.LSetWithFlags, xattr.LRemove, xattr.LList}
	}
	return accessor{xattr.Get, xattr.SetWithFlags, xattr.Remove, xattr.List}
}

func outputEncoding(args *argContainer) (dump.Encoding, error) {
	enc, err := dump.ParseEncoding(args.encoding)
	if err != nil {
		return enc, exitcodes.NewErr(err.Error(), exitcodes.Usage)
	}
	return enc, nil
}

// getCmd implements "xattrctl get -n NAME PATH...". The output is in dump
// format so it can be fed back to "restore".
func getCmd(args *argContainer) error {
	enc, err := outputEncoding(args)
	if err != nil {
		return err
	}
	acc := newAccessor(args.noDereference)
	return forEachPath(args.rest, func(path string) error {
		val, err := acc.get(path, args.name)
		if err != nil {
			return err
		}
		if args.onlyValues {
			_, err = os.Stdout.Write(val)
			return err
		}
		entry := dump.Entry{Path: path, Attrs: []dump.Attr{{Name: args.name, Value: val}}}
		return dump.Write(os.Stdout, []dump.Entry{entry}, enc)
	})
}

// setCmd implements "xattrctl set -n NAME -v VALUE PATH...".
func setCmd(args *argContainer) error {
	var val []byte
	var err error
	if flagSet.Changed("encoding") {
		var enc dump.Encoding
		enc, err = outputEncoding(args)
		if err != nil {
			return err
		}
		val, err = dump.DecodeValueAs(args.value, enc)
	} else {
		val, err = dump.DecodeValue(args.value)
	}
	if err != nil {
		return exitcodes.WrapErr(err, exitcodes.Encoding)
	}
	var flags xattr.Flags
	if args.create {
		flags = xattr.Create
	} else if args.replace {
		flags = xattr.Replace
	}
	acc := newAccessor(args.noDereference)
	return forEachPath(args.rest, func(path string) error {
		err := acc.set(path, args.name, val, flags)
		if err == nil {
			tlog.Debug.Printf("set %q on %q (%d bytes)", args.name, path, len(val))
		}
		return err
	})
}

// removeCmd implements "xattrctl remove -n NAME PATH...".
func removeCmd(args *argContainer) error {
	acc := newAccessor(args.noDereference)
	return forEachPath(args.rest, func(path string) error {
		return acc.remove(path, args.name)
	})
}

// listCmd implements "xattrctl list PATH...". With more than one PATH, each
// block of names is preceded by a "# file:" header.
func listCmd(args *argContainer) error {
	acc := newAccessor(args.noDereference)
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	multi := len(args.rest) > 1
	return forEachPath(args.rest, func(path string) error {
		names, err := acc.list(path)
		if err != nil {
			return err
		}
		if multi {
			fmt.Fprintf(w, "# file: %s\n", path)
		}
		for name := range names.All() {
			if strings.HasPrefix(name, args.match) {
				fmt.Fprintln(w, name)
			}
		}
		if multi {
			fmt.Fprintln(w)
		}
		return w.Flush()
	})
}
