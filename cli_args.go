package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/xattrctl/xattrctl/internal/exitcodes"
	"github.com/xattrctl/xattrctl/internal/tlog"
)

// argContainer stores the parsed CLI options and arguments
type argContainer struct {
	debug, quiet, wpanic, version, help, noDereference,
	create, replace, onlyValues, recursive, syslog bool
	name, value, encoding, match, ctlsock string
	jobs int
	// --exclude and --exclude-from can be passed multiple times
	exclude, excludeFrom []string
	// cmd is the first positional argument, like "get" or "dump"
	cmd string
	// rest are the positional arguments after cmd
	rest []string
	// Helper variables that are NOT cli options all start with an underscore
	// _matchChanged is true when the user passed "--match" explicitly.
	_matchChanged bool
}

var flagSet *flag.FlagSet

// commands maps the command word to the minimum number of positional
// arguments it needs after it.
var commands = map[string]int{
	"get":     1,
	"set":     1,
	"remove":  1,
	"list":    1,
	"dump":    1,
	"restore": 0,
	"serve":   1,
	"query":   2,
}

// parseCliOpts - parse command line options (i.e. arguments that start with "-")
func parseCliOpts(osArgs []string) (args argContainer, err error) {
	flagSet = flag.NewFlagSet(tlog.ProgramName, flag.ContinueOnError)
	flagSet.Usage = func() {}
	flagSet.SetOutput(io.Discard)

	flagSet.BoolVarP(&args.debug, "debug", "d", false, "Enable debug output")
	flagSet.BoolVarP(&args.quiet, "quiet", "q", false, "Quiet - silence informational messages")
	flagSet.BoolVar(&args.wpanic, "wpanic", false, "When encountering a warning, panic and exit immediately")
	flagSet.BoolVar(&args.version, "version", false, "Print version and exit")
	flagSet.BoolVar(&args.help, "help", false, "Show this help text")
	flagSet.BoolVarP(&args.noDereference, "no-dereference", "h", false,
		"Operate on symlinks themselves instead of their targets")

	flagSet.StringVarP(&args.name, "name", "n", "", "Attribute name")
	flagSet.StringVarP(&args.value, "value", "v", "", "Attribute value (0x... hex, 0s... base64, \"...\" or plain text)")
	flagSet.StringVarP(&args.encoding, "encoding", "e", "auto", "Output encoding: text, hex, base64 or auto")
	flagSet.BoolVar(&args.create, "create", false, "set: fail if the attribute already exists")
	flagSet.BoolVar(&args.replace, "replace", false, "set: fail if the attribute does not exist")
	flagSet.BoolVar(&args.onlyValues, "only-values", false, "get: print the raw value without encoding")
	flagSet.StringVarP(&args.match, "match", "m", "", "Only names starting with this prefix (dump default: \"user.\")")

	flagSet.BoolVarP(&args.recursive, "recursive", "R", false, "dump: descend into directories")
	flagSet.IntVarP(&args.jobs, "jobs", "j", 0, "dump: files to read in parallel (default: number of CPUs)")
	flagSet.StringArrayVar(&args.exclude, "exclude", nil, "dump: skip paths matching this gitignore-style pattern")
	flagSet.StringArrayVar(&args.excludeFrom, "exclude-from", nil, "dump: read exclude patterns from file")

	flagSet.StringVar(&args.ctlsock, "ctlsock", "", "serve, query: control socket path")
	flagSet.BoolVar(&args.syslog, "syslog", false, "serve: send log messages to syslog")

	// Actual parsing
	err = flagSet.Parse(osArgs[1:])
	if err != nil {
		return args, exitcodes.NewErr(err.Error(), exitcodes.Usage)
	}
	args._matchChanged = flagSet.Changed("match")
	if args.help || args.version {
		return args, nil
	}
	if flagSet.NArg() == 0 {
		return args, exitcodes.NewErr("missing command", exitcodes.Usage)
	}
	args.cmd = strings.ToLower(flagSet.Arg(0))
	args.rest = flagSet.Args()[1:]
	minArgs, ok := commands[args.cmd]
	if !ok {
		return args, exitcodes.NewErr(fmt.Sprintf("unknown command %q", flagSet.Arg(0)), exitcodes.Usage)
	}
	if len(args.rest) < minArgs {
		return args, exitcodes.NewErr(fmt.Sprintf("%s: not enough arguments", args.cmd), exitcodes.Usage)
	}
	err = checkArgs(&args)
	return args, err
}

// checkArgs validates flag combinations that depend on the command.
func checkArgs(args *argContainer) error {
	usageErr := func(format string, a ...interface{}) error {
		return exitcodes.NewErr(args.cmd+": "+fmt.Sprintf(format, a...), exitcodes.Usage)
	}
	switch args.cmd {
	case "get", "remove":
		if args.name == "" {
			return usageErr("missing --name")
		}
	case "set":
		if args.name == "" {
			return usageErr("missing --name")
		}
		if args.create && args.replace {
			return usageErr("--create and --replace are mutually exclusive")
		}
	case "restore":
		if len(args.rest) > 1 {
			return usageErr("at most one input file")
		}
	case "serve":
		if args.ctlsock == "" {
			return usageErr("missing --ctlsock")
		}
		if len(args.rest) != 1 {
			return usageErr("exactly one ROOT directory")
		}
	case "query":
		if args.ctlsock == "" {
			return usageErr("missing --ctlsock")
		}
		if len(args.rest) > 4 {
			return usageErr("too many arguments")
		}
	}
	if args.jobs < 0 {
		return usageErr("--jobs must not be negative")
	}
	if args.cmd == "dump" && !args._matchChanged {
		args.match = "user."
	}
	return nil
}
