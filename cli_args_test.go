package main

import (
	"reflect"
	"testing"

	"github.com/xattrctl/xattrctl/internal/exitcodes"
)

// TestParseCliOpts checks command detection, flag placement and the
// per-command validation.
func TestParseCliOpts(t *testing.T) {
	testcases := []struct {
		// i is the input
		i []string
		// cmd and rest are the expected output
		cmd  string
		rest []string
		// e is the expected exit code, 0 for no error
		e int
	}{
		{
			i:    []string{"xattrctl", "get", "-n", "user.a", "f1", "f2"},
			cmd:  "get",
			rest: []string{"f1", "f2"},
		},
		// Flags can come before the command
		{
			i:    []string{"xattrctl", "-d", "-n", "user.a", "remove", "f1"},
			cmd:  "remove",
			rest: []string{"f1"},
		},
		{
			i:    []string{"xattrctl", "LIST", "f1"},
			cmd:  "list",
			rest: []string{"f1"},
		},
		// "--" stops option parsing
		{
			i:    []string{"xattrctl", "list", "--", "-f1"},
			cmd:  "list",
			rest: []string{"-f1"},
		},
		{
			i:    []string{"xattrctl", "restore"},
			cmd:  "restore",
			rest: []string{},
		},
		{
			i:    []string{"xattrctl", "query", "--ctlsock", "s", "get", "/a", "user.b"},
			cmd:  "query",
			rest: []string{"get", "/a", "user.b"},
		},
		{i: []string{"xattrctl"}, e: exitcodes.Usage},
		{i: []string{"xattrctl", "frobnicate", "f1"}, e: exitcodes.Usage},
		{i: []string{"xattrctl", "--nosuchflag", "list", "f1"}, e: exitcodes.Usage},
		{i: []string{"xattrctl", "get", "f1"}, e: exitcodes.Usage},
		{i: []string{"xattrctl", "get", "-n", "user.a"}, e: exitcodes.Usage},
		{i: []string{"xattrctl", "set", "-n", "user.a", "--create", "--replace", "f1"}, e: exitcodes.Usage},
		{i: []string{"xattrctl", "restore", "a", "b"}, e: exitcodes.Usage},
		{i: []string{"xattrctl", "serve", "dir"}, e: exitcodes.Usage},
		{i: []string{"xattrctl", "serve", "--ctlsock", "s", "d1", "d2"}, e: exitcodes.Usage},
		{i: []string{"xattrctl", "query", "--ctlsock", "s", "get"}, e: exitcodes.Usage},
		{i: []string{"xattrctl", "dump", "-j", "-1", "f1"}, e: exitcodes.Usage},
	}
	for _, tc := range testcases {
		args, err := parseCliOpts(tc.i)
		if tc.e != 0 {
			if code := exitcodes.Code(err); code != tc.e {
				t.Errorf("in=%q: want exit code %d, got %d (err=%v)", tc.i, tc.e, code, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("in=%q: unexpected error %v", tc.i, err)
			continue
		}
		if args.cmd != tc.cmd || !reflect.DeepEqual(args.rest, tc.rest) {
			t.Errorf("\n  in=%q\nwant=%q %q\n got=%q %q", tc.i, tc.cmd, tc.rest, args.cmd, args.rest)
		}
	}
}

// TestDumpMatchDefault checks that "dump" only looks at the user namespace
// unless "--match" is passed, and that "list" shows everything.
func TestDumpMatchDefault(t *testing.T) {
	args, err := parseCliOpts([]string{"xattrctl", "dump", "f1"})
	if err != nil {
		t.Fatal(err)
	}
	if args.match != "user." {
		t.Errorf("dump default: %q", args.match)
	}
	args, err = parseCliOpts([]string{"xattrctl", "dump", "--match", "", "f1"})
	if err != nil {
		t.Fatal(err)
	}
	if args.match != "" {
		t.Errorf("explicit --match: %q", args.match)
	}
	args, err = parseCliOpts([]string{"xattrctl", "list", "f1"})
	if err != nil {
		t.Fatal(err)
	}
	if args.match != "" {
		t.Errorf("list default: %q", args.match)
	}
}

func TestParseCliOptsShorthands(t *testing.T) {
	args, err := parseCliOpts([]string{"xattrctl", "-h", "-q", "dump", "-R", "-j", "3",
		"--exclude", "*.o", "--exclude", "tmp/", "d"})
	if err != nil {
		t.Fatal(err)
	}
	if !args.noDereference || !args.quiet || !args.recursive || args.jobs != 3 {
		t.Errorf("%+v", args)
	}
	if !reflect.DeepEqual(args.exclude, []string{"*.o", "tmp/"}) {
		t.Errorf("exclude: %q", args.exclude)
	}
	// "--help" and "--version" do not need a command
	args, err = parseCliOpts([]string{"xattrctl", "--version"})
	if err != nil || !args.version {
		t.Errorf("--version: %v %v", args.version, err)
	}
}
