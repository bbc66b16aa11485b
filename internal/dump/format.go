// Package dump reads and writes extended attributes of whole file trees in
// the text format of "getfattr --dump":
//
//	# file: path/to/file
//	user.foo="bar"
//	user.bin=0sAAEC
//
// Entries are separated by an empty line.
package dump

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const filePrefix = "# file: "

// maxLineLen is enough for a 64 kiB value (the Linux limit) with every
// byte escaped.
const maxLineLen = 4*65536 + 4096

// Attr is one extended attribute.
type Attr struct {
	Name  string
	Value []byte
}

// Entry holds the attributes of one file.
type Entry struct {
	Path  string
	Attrs []Attr
	// Err is set by Collect if the attributes could not be read.
	Err error
}

// Write prints `entries` in dump format. Entries without attributes or
// with an error are skipped, like getfattr does.
func Write(w io.Writer, entries []Entry, enc Encoding) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if e.Err != nil || len(e.Attrs) == 0 {
			continue
		}
		fmt.Fprintf(bw, "%s%s\n", filePrefix, escape([]byte(e.Path), ""))
		for _, a := range e.Attrs {
			fmt.Fprintf(bw, "%s=%s\n", escape([]byte(a.Name), "="), EncodeValue(a.Value, enc))
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// ParseError is returned by Parse for malformed input.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Parse reads a dump. Comment lines other than "# file:" are ignored.
// A line without "=" is an attribute with an empty value.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	var cur *Entry
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineLen)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSuffix(sc.Text(), "\r")
		switch {
		case strings.HasPrefix(line, filePrefix):
			path, err := unescape(line[len(filePrefix):])
			if err != nil {
				return nil, &ParseError{lineNo, err.Error()}
			}
			if len(path) == 0 {
				return nil, &ParseError{lineNo, "empty file name"}
			}
			entries = append(entries, Entry{Path: string(path)})
			cur = &entries[len(entries)-1]
		case strings.TrimSpace(line) == "":
			cur = nil
		case strings.HasPrefix(line, "#"):
			continue
		default:
			if cur == nil {
				return nil, &ParseError{lineNo, "attribute outside of a \"# file:\" block"}
			}
			rawName, rawValue, _ := strings.Cut(line, "=")
			name, err := unescape(rawName)
			if err != nil {
				return nil, &ParseError{lineNo, err.Error()}
			}
			if len(name) == 0 {
				return nil, &ParseError{lineNo, "empty attribute name"}
			}
			val, err := DecodeValue(rawValue)
			if err != nil {
				return nil, &ParseError{lineNo, err.Error()}
			}
			cur.Attrs = append(cur.Attrs, Attr{Name: string(name), Value: val})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
