package dump

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Encoding selects how values are printed. The prefixes follow getfattr and
// setfattr, so dumps can be fed to either tool.
type Encoding int

const (
	// Auto prints printable UTF-8 as quoted text and everything else as
	// base64.
	Auto Encoding = iota
	// Text prints double-quoted text with octal escapes.
	Text
	// Hex prints "0x" followed by hex digits.
	Hex
	// Base64 prints "0s" followed by standard base64.
	Base64
)

// ParseEncoding parses the value of the "-e" flag.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return Auto, nil
	case "text":
		return Text, nil
	case "hex":
		return Hex, nil
	case "base64":
		return Base64, nil
	}
	return Auto, fmt.Errorf("unknown encoding %q, want text, hex, base64 or auto", s)
}

// EncodeValue formats an attribute value. DecodeValue reverses it.
func EncodeValue(val []byte, enc Encoding) string {
	if enc == Auto {
		enc = Base64
		if isPrintable(val) {
			enc = Text
		}
	}
	switch enc {
	case Hex:
		return "0x" + hex.EncodeToString(val)
	case Base64:
		return "0s" + base64.StdEncoding.EncodeToString(val)
	}
	return `"` + escape(val, "") + `"`
}

// DecodeValue parses a value as accepted by setfattr:
//
//	0x0102ff        hex
//	0sAQL/          base64
//	"quoted\012"    text with octal escapes
//	anything else   literal text
func DecodeValue(s string) ([]byte, error) {
	if len(s) >= 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			val, err := hex.DecodeString(s[2:])
			if err != nil {
				return nil, fmt.Errorf("bad hex value: %w", err)
			}
			return val, nil
		case 's', 'S':
			val, err := base64.StdEncoding.DecodeString(s[2:])
			if err != nil {
				return nil, fmt.Errorf("bad base64 value: %w", err)
			}
			return val, nil
		}
	}
	if strings.HasPrefix(s, `"`) {
		if len(s) < 2 || !strings.HasSuffix(s, `"`) {
			return nil, fmt.Errorf("unterminated quoted value %s", s)
		}
		return unescape(s[1 : len(s)-1])
	}
	return append([]byte{}, s...), nil
}

func isPrintable(val []byte) bool {
	if !utf8.Valid(val) {
		return false
	}
	for _, r := range string(val) {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// escape replaces control characters, DEL, backslash, double quote and
// every byte in `extra` with a backslash and three octal digits.
// Backslash itself becomes "\\".
func escape(b []byte, extra string) string {
	var sb strings.Builder
	for _, c := range b {
		switch {
		case c == '\\':
			sb.WriteString(`\\`)
		case c < 0x20 || c == 0x7f || c == '"' || strings.IndexByte(extra, c) >= 0:
			fmt.Fprintf(&sb, `\%03o`, c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// unescape reverses escape.
func unescape(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			out = append(out, s[i])
			continue
		}
		if i+1 < len(s) && s[i+1] == '\\' {
			out = append(out, '\\')
			i++
			continue
		}
		if i+3 >= len(s) {
			return nil, fmt.Errorf("truncated escape sequence in %q", s)
		}
		var c int
		for _, d := range s[i+1 : i+4] {
			if d < '0' || d > '7' {
				return nil, fmt.Errorf("bad escape sequence %q in %q", s[i:i+4], s)
			}
			c = c*8 + int(d-'0')
		}
		if c > 0xff {
			return nil, fmt.Errorf("escape sequence %q out of range", s[i:i+4])
		}
		out = append(out, byte(c))
		i += 3
	}
	return out, nil
}

// DecodeValueAs parses `s` in a fixed encoding, as selected with "-e" on
// the command line. The "0x" and "0s" prefixes are optional for Hex and
// Base64. Text takes `s` literally. Auto is the same as DecodeValue.
func DecodeValueAs(s string, enc Encoding) ([]byte, error) {
	switch enc {
	case Text:
		return append([]byte{}, s...), nil
	case Hex:
		if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
			s = "0x" + s
		}
	case Base64:
		if !strings.HasPrefix(s, "0s") && !strings.HasPrefix(s, "0S") {
			s = "0s" + s
		}
	}
	return DecodeValue(s)
}
