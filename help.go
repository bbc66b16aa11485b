package main

import (
	"fmt"

	"github.com/xattrctl/xattrctl/internal/tlog"
)

const tUsage = "" +
	"Usage: " + tlog.ProgramName + " [OPTIONS] get -n NAME PATH...\n" +
	"  or   " + tlog.ProgramName + " [OPTIONS] set -n NAME -v VALUE [--create|--replace] PATH...\n" +
	"  or   " + tlog.ProgramName + " [OPTIONS] remove -n NAME PATH...\n" +
	"  or   " + tlog.ProgramName + " [OPTIONS] list [-m PREFIX] PATH...\n" +
	"  or   " + tlog.ProgramName + " [OPTIONS] dump [-R] [-j N] [--exclude PATTERN] PATH...\n" +
	"  or   " + tlog.ProgramName + " [OPTIONS] restore [FILE|-]\n" +
	"  or   " + tlog.ProgramName + " [OPTIONS] serve --ctlsock SOCKET ROOT\n" +
	"  or   " + tlog.ProgramName + " [OPTIONS] query --ctlsock SOCKET OP PATH [NAME [VALUE]]\n"

// helpLong is displayed on "--help".
func helpLong() {
	printVersion()
	fmt.Print("\n")
	fmt.Print(tUsage)
	fmt.Print(`
Values given with -v (and the VALUE of query) are decoded like setfattr
does: "0x" starts hex, "0s" starts base64, double quotes allow octal
escapes, anything else is taken literally.

Options may appear before or after the command. A standalone "--" stops
option parsing.
`)
	fmt.Print("\nOptions:\n")
	flagSet.PrintDefaults()
}
