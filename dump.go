package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/xattrctl/xattrctl/internal/dump"
	"github.com/xattrctl/xattrctl/internal/exitcodes"
	"github.com/xattrctl/xattrctl/internal/tlog"
)

func dumpOptions(args *argContainer) (dump.Options, error) {
	opts := dump.Options{
		Recursive:     args.recursive,
		NoDereference: args.noDereference,
		Match:         args.match,
		Jobs:          args.jobs,
	}
	// "--exclude" and "--exclude-from"
	excluder, err := dump.CompileExcludes(args.exclude, args.excludeFrom)
	if err != nil {
		return opts, exitcodes.WrapErr(err, exitcodes.ExcludeError)
	}
	opts.Excluder = excluder
	return opts, nil
}

// dumpCmd implements "xattrctl dump PATH...".
func dumpCmd(args *argContainer) error {
	enc, err := outputEncoding(args)
	if err != nil {
		return err
	}
	opts, err := dumpOptions(args)
	if err != nil {
		return err
	}
	paths, err := dump.Walk(args.rest, opts)
	if err != nil {
		return withExitCode(err)
	}
	tlog.Debug.Printf("dump: %d paths, %d jobs", len(paths), opts.Jobs)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	entries, err := dump.Collect(ctx, paths, opts)
	if err != nil {
		return exitcodes.WrapErr(err, exitcodes.Other)
	}
	var last error
	for _, e := range entries {
		if e.Err != nil {
			tlog.Warn.Printf("%v", e.Err)
			last = withExitCode(e.Err)
		}
	}
	err = dump.Write(os.Stdout, entries, enc)
	if err != nil {
		return exitcodes.WrapErr(err, exitcodes.Other)
	}
	return last
}

// restoreCmd implements "xattrctl restore [FILE|-]".
func restoreCmd(args *argContainer) error {
	in := os.Stdin
	if len(args.rest) == 1 && args.rest[0] != "-" {
		f, err := os.Open(args.rest[0])
		if err != nil {
			return withExitCode(err)
		}
		defer f.Close()
		in = f
	}
	entries, err := dump.Parse(in)
	if err != nil {
		var perr *dump.ParseError
		if errors.As(err, &perr) {
			return exitcodes.WrapErr(err, exitcodes.ParseDump)
		}
		return withExitCode(err)
	}
	opts := dump.Options{
		NoDereference: args.noDereference,
		Match:         args.match,
	}
	err = dump.Restore(entries, opts)
	if err != nil {
		tlog.Warn.Printf("%v", err)
		return withExitCode(err)
	}
	tlog.Info.Printf("Restored %d files", len(entries))
	return nil
}
