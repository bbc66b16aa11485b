//go:build linux || darwin

package xattr

import (
	"errors"
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/xattrctl/xattrctl/internal/syscallcompat"
)

// Kind classifies an xattr failure.
type Kind int

const (
	// KindOS is any OS error that has no more specific kind. Error.Err
	// carries the raw errno.
	KindOS Kind = iota
	// KindNotFound means the attribute is not set on the path.
	KindNotFound
	// KindNoSuchPath means the path (or a directory on the way) does not exist.
	KindNoSuchPath
	// KindPermission means access was denied.
	KindPermission
	// KindNotSupported means the filesystem has no xattr support, or none
	// for this namespace.
	KindNotSupported
	// KindOutOfSpace means there is no room left for the attribute.
	KindOutOfSpace
	// KindInvalid means the OS rejected the name or the value.
	KindInvalid
	// KindExists means Create was passed and the attribute already exists.
	KindExists
	// KindRace means the attribute kept changing size while we were reading it.
	KindRace
)

var kindNames = map[Kind]string{
	KindOS:           "OSError",
	KindNotFound:     "AttributeNotFound",
	KindNoSuchPath:   "NoSuchPath",
	KindPermission:   "PermissionDenied",
	KindNotSupported: "NotSupported",
	KindOutOfSpace:   "OutOfSpace",
	KindInvalid:      "Invalid",
	KindExists:       "AttributeExists",
	KindRace:         "Race",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind is the reverse of Kind.String. It is used by clients of the
// control socket, which only see the name.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return KindOS, false
}

// Sentinel errors for use with errors.Is. An *Error matches the sentinel
// of its Kind.
var (
	ErrAttributeNotFound = errors.New("attribute not found")
	ErrNoSuchPath        = errors.New("no such file or directory")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrNotSupported      = errors.New("extended attributes not supported")
	ErrOutOfSpace        = errors.New("no space for extended attribute")
	ErrInvalid           = errors.New("invalid attribute name or value")
	ErrAttributeExists   = errors.New("attribute already exists")
	ErrRace              = errors.New("attribute changed while reading it")
)

var kindSentinels = map[Kind]error{
	KindNotFound:     ErrAttributeNotFound,
	KindNoSuchPath:   ErrNoSuchPath,
	KindPermission:   ErrPermissionDenied,
	KindNotSupported: ErrNotSupported,
	KindOutOfSpace:   ErrOutOfSpace,
	KindInvalid:      ErrInvalid,
	KindExists:       ErrAttributeExists,
	KindRace:         ErrRace,
}

// Error records a failed xattr operation.
type Error struct {
	// Op is the operation, like "xattr.get" or "xattr.lset".
	Op string
	// Path is the file the operation was performed on. For the F* variants,
	// this is the name of the *os.File.
	Path string
	// Name is the attribute name. Empty for list operations.
	Name string
	Kind Kind
	// Err is the underlying error, usually a syscall.Errno.
	Err error
}

func (e *Error) Error() string {
	if e.Name == "" {
		return e.Op + " " + e.Path + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + " " + e.Name + ": " + e.Err.Error()
}

// Unwrap returns the underlying error, so errors.Is(err, syscall.ENOENT) and
// errors.Is(err, fs.ErrNotExist) keep working.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel error for e.Kind.
func (e *Error) Is(target error) bool {
	s, ok := kindSentinels[e.Kind]
	return ok && s == target
}

// Errno returns the raw error number, or 0 if the failure did not come
// from the OS.
func (e *Error) Errno() syscall.Errno {
	var errno syscall.Errno
	if errors.As(e.Err, &errno) {
		return errno
	}
	return 0
}

// KindOf returns the Kind of err if it is (or wraps) an *Error, and
// KindOS otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOS
}

// newError wraps the error returned by a syscallcompat call. It must be
// called right after the call so the errno cannot be confused with the one
// of a later call.
func newError(op string, path string, name string, err error) *Error {
	return &Error{
		Op:   op,
		Path: path,
		Name: name,
		Kind: classify(err),
		Err:  err,
	}
}

func classify(err error) Kind {
	if err == syscallcompat.ErrSizeChanged {
		return KindRace
	}
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return KindOS
	}
	// ENOTSUP == EOPNOTSUPP on Linux, so this cannot be a switch on errno.
	switch {
	case errno == syscallcompat.ENOATTR:
		return KindNotFound
	case errno == unix.ENOENT || errno == unix.ENOTDIR:
		return KindNoSuchPath
	case errno == unix.EACCES || errno == unix.EPERM:
		return KindPermission
	case errno == unix.ENOTSUP || errno == unix.EOPNOTSUPP:
		return KindNotSupported
	case errno == unix.ENOSPC || errno == unix.E2BIG || errno == unix.EDQUOT:
		return KindOutOfSpace
	case errno == unix.EINVAL || errno == unix.ERANGE || errno == unix.ENAMETOOLONG:
		return KindInvalid
	case errno == unix.EEXIST:
		return KindExists
	}
	return KindOS
}
