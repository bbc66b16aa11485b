package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/xattrctl/xattrctl/internal/exitcodes"
	"github.com/xattrctl/xattrctl/internal/tlog"
	"github.com/xattrctl/xattrctl/xattr"
)

// kindExitCodes maps the failure classes of the xattr package to process
// exit codes.
var kindExitCodes = map[xattr.Kind]int{
	xattr.KindNotFound:     exitcodes.NoAttr,
	xattr.KindNoSuchPath:   exitcodes.NoSuchPath,
	xattr.KindPermission:   exitcodes.Permission,
	xattr.KindNotSupported: exitcodes.NotSupported,
	xattr.KindOutOfSpace:   exitcodes.OutOfSpace,
	xattr.KindInvalid:      exitcodes.Invalid,
	xattr.KindExists:       exitcodes.Exists,
	xattr.KindRace:         exitcodes.Race,
	xattr.KindOS:           exitcodes.Other,
}

// withExitCode attaches the exit code matching the xattr failure class to
// "err". Errors that already carry an exit code are returned unchanged.
func withExitCode(err error) error {
	if err == nil {
		return nil
	}
	var ee exitcodes.Err
	if errors.As(err, &ee) {
		return err
	}
	// errors.Join: the last failure decides
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		if errs := joined.Unwrap(); len(errs) > 0 {
			return exitcodes.WrapErr(err, exitcodes.Code(withExitCode(errs[len(errs)-1])))
		}
	}
	var xerr *xattr.Error
	switch {
	case errors.As(err, &xerr):
		return exitcodes.WrapErr(err, kindExitCodes[xerr.Kind])
	case errors.Is(err, fs.ErrNotExist):
		return exitcodes.WrapErr(err, exitcodes.NoSuchPath)
	case errors.Is(err, fs.ErrPermission):
		return exitcodes.WrapErr(err, exitcodes.Permission)
	}
	return exitcodes.WrapErr(err, exitcodes.Other)
}

// forEachPath runs "fn" on every path. A failure is reported and
// processing continues; the last failure is returned.
func forEachPath(paths []string, fn func(path string) error) (last error) {
	for _, p := range paths {
		err := fn(p)
		if err != nil {
			tlog.Warn.Printf("%v", err)
			last = withExitCode(err)
		}
	}
	return last
}

// run executes the command selected by args.cmd.
func run(args *argContainer) error {
	switch args.cmd {
	case "get":
		return getCmd(args)
	case "set":
		return setCmd(args)
	case "remove":
		return removeCmd(args)
	case "list":
		return listCmd(args)
	case "dump":
		return dumpCmd(args)
	case "restore":
		return restoreCmd(args)
	case "serve":
		return serveCmd(args)
	case "query":
		return queryCmd(args)
	}
	return exitcodes.NewErr(fmt.Sprintf("unknown command %q", args.cmd), exitcodes.Usage)
}

func main() {
	args, err := parseCliOpts(os.Args)
	if err != nil {
		tlog.Fatal.Printf("%v", err)
		fmt.Fprintf(os.Stderr, "Try \"%s --help\" for more information.\n", tlog.ProgramName)
		exitcodes.Exit(err)
	}
	// "-d"
	if args.debug {
		tlog.Debug.Enabled = true
	}
	// "--version"
	if args.version {
		printVersion()
		os.Exit(0)
	}
	// "--help"
	if args.help {
		helpLong()
		os.Exit(0)
	}
	// "-q"
	if args.quiet {
		tlog.Info.Enabled = false
	}
	// "--wpanic"
	if args.wpanic {
		tlog.Warn.Wpanic = true
		tlog.Debug.Printf("Panicking on warnings")
	}
	tlog.Debug.Printf("cli args: %q", os.Args)
	err = run(&args)
	if err != nil {
		tlog.Debug.Printf("%s: exit code %d", args.cmd, exitcodes.Code(err))
		exitcodes.Exit(err)
	}
}
