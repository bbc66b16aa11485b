// Package exitcodes contains all well-defined exit codes that xattrctl
// can return.
package exitcodes

import (
	"errors"
	"os"
)

const (
	// Usage - usage error like wrong cli syntax, wrong number of parameters.
	Usage = 1
	// 2 is reserved because it is used by Go panic

	// NoSuchPath means that a PATH argument does not exist.
	NoSuchPath = 3
	// NoAttr means that the attribute is not set on the file.
	NoAttr = 4
	// Permission means that access to the file or attribute was denied.
	Permission = 5
	// NotSupported means that the filesystem does not support extended
	// attributes (or not this namespace).
	NotSupported = 6
	// OutOfSpace means there is no space left for the attribute.
	OutOfSpace = 7
	// Invalid means that the OS rejected the attribute name or value.
	Invalid = 8
	// Exists means that "--create" was passed and the attribute exists.
	Exists = 9
	// Race means that the attribute kept changing while we read it.
	Race = 10
	// Other error - please inspect the message
	Other = 11
	// Encoding means that a value could not be decoded (bad hex, base64,
	// or quoting).
	Encoding = 12
	// ParseDump means that the input to "restore" is malformed.
	ParseDump = 13
	// CtlSock - the control socket file could not be created or queried.
	CtlSock = 20
	// ExcludeError - an error occurred while processing "--exclude-from"
	ExcludeError = 29
	// DevNull means that /dev/null could not be opened
	DevNull = 30
)

// Err wraps an error with an associated numeric exit code
type Err struct {
	error
	code int
}

// NewErr returns an error containing "msg" and the exit code "code".
func NewErr(msg string, code int) Err {
	return Err{
		error: errors.New(msg),
		code:  code,
	}
}

// WrapErr attaches the exit code "code" to an existing error.
func WrapErr(err error, code int) Err {
	return Err{
		error: err,
		code:  code,
	}
}

// Unwrap returns the wrapped error.
func (e Err) Unwrap() error {
	return e.error
}

// Code extracts the numeric exit code from "err". Errors without one
// map to Other, nil maps to 0.
func Code(err error) int {
	if err == nil {
		return 0
	}
	var err2 Err
	if !errors.As(err, &err2) {
		return Other
	}
	return err2.code
}

// Exit extracts the numeric exit code from "err" (if available) and exits the
// application.
func Exit(err error) {
	os.Exit(Code(err))
}
