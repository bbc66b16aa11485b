package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strconv"

	"github.com/xattrctl/xattrctl/internal/tlog"
)

const (
	gitVersionNotSet = "[GitVersion not set]"
	buildDateNotSet  = "0000-00-00"
)

var (
	// GitVersion is the xattrctl version according to git, set via -ldflags
	GitVersion = gitVersionNotSet
	// BuildDate is a date string like "2017-09-06", set via -ldflags
	BuildDate = buildDateNotSet
)

func init() {
	versionFromBuildInfo()
}

// printVersion prints a version string like this:
// xattrctl v0.3.1; 2026-05-12 go1.24.1 linux/amd64
func printVersion() {
	built := fmt.Sprintf("%s %s", BuildDate, runtime.Version())
	fmt.Printf("%s %s; %s %s/%s\n",
		tlog.ProgramName, GitVersion, built,
		runtime.GOOS, runtime.GOARCH)
}

// versionFromBuildInfo tries to get some information out of the information baked in
// by the Go compiler. Does nothing when the variables were set via -ldflags.
func versionFromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		tlog.Debug.Println("versionFromBuildInfo: ReadBuildInfo() failed")
		return
	}
	var vcsRevision, vcsTime string
	var vcsModified bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			vcsRevision = s.Value
		case "vcs.time":
			vcsTime = s.Value
		case "vcs.modified":
			vcsModified, _ = strconv.ParseBool(s.Value)
		}
	}
	if GitVersion == gitVersionNotSet {
		GitVersion = info.Main.Version
		if GitVersion == "(devel)" && vcsRevision != "" {
			GitVersion = fmt.Sprintf("vcs.revision=%s", vcsRevision)
		}
		if vcsModified {
			GitVersion += "-dirty"
		}
	}
	if BuildDate == buildDateNotSet && vcsTime != "" {
		BuildDate = fmt.Sprintf("vcs.time=%s", vcsTime)
	}
}
