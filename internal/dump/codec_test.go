package dump

import (
	"bytes"
	"testing"
)

func TestEncodeValue(t *testing.T) {
	testCases := []struct {
		val  []byte
		enc  Encoding
		want string
	}{
		{[]byte("rulez"), Auto, `"rulez"`},
		{[]byte("rulez"), Text, `"rulez"`},
		{[]byte("rulez"), Hex, "0x72756c657a"},
		{[]byte("rulez"), Base64, "0scnVsZXo="},
		{[]byte{}, Auto, `""`},
		{[]byte("grüße"), Auto, `"grüße"`},
		{[]byte{0, 1, 2}, Auto, "0sAAEC"},
		{[]byte("a\nb"), Auto, "0sYQpi"},
		{[]byte("a\nb\"c\\d"), Text, `"a\012b\042c\\d"`},
		{[]byte{0xff}, Text, "\"\xff\""},
	}
	for _, tc := range testCases {
		have := EncodeValue(tc.val, tc.enc)
		if have != tc.want {
			t.Errorf("EncodeValue(%q, %d): want=%s have=%s", tc.val, tc.enc, tc.want, have)
		}
		back, err := DecodeValue(have)
		if err != nil {
			t.Errorf("DecodeValue(%s): %v", have, err)
			continue
		}
		if !bytes.Equal(back, tc.val) {
			t.Errorf("DecodeValue(%s): want=%q have=%q", have, tc.val, back)
		}
	}
}

func TestDecodeValue(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"", ""},
		{"0X4142", "AB"},
		{"0SQUI=", "AB"},
		{`"with space"`, "with space"},
		{`"\000"`, "\000"},
		{"0", "0"},
		{"0z", "0z"},
	}
	for _, tc := range testCases {
		have, err := DecodeValue(tc.in)
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		if string(have) != tc.want {
			t.Errorf("%q: want=%q have=%q", tc.in, tc.want, have)
		}
	}
	for _, bad := range []string{"0xzz", "0s!!", `"unterminated`, `"`, `"\9"`, `"\1"`, `"\777"`} {
		if _, err := DecodeValue(bad); err == nil {
			t.Errorf("%q: expected an error", bad)
		}
	}
}

func TestParseEncoding(t *testing.T) {
	for in, want := range map[string]Encoding{"": Auto, "auto": Auto, "TEXT": Text, "hex": Hex, "base64": Base64} {
		have, err := ParseEncoding(in)
		if err != nil || have != want {
			t.Errorf("%q: have=%d err=%v", in, have, err)
		}
	}
	if _, err := ParseEncoding("rot13"); err == nil {
		t.Error("rot13 should be rejected")
	}
}

func TestDecodeValueAs(t *testing.T) {
	testCases := []struct {
		in   string
		enc  Encoding
		want []byte
	}{
		{"0x0102", Text, []byte("0x0102")},
		{`"q"`, Text, []byte(`"q"`)},
		{"0102", Hex, []byte{1, 2}},
		{"0x0102", Hex, []byte{1, 2}},
		{"AAEC", Base64, []byte{0, 1, 2}},
		{"0sAAEC", Base64, []byte{0, 1, 2}},
		{"0sAAEC", Auto, []byte{0, 1, 2}},
	}
	for _, tc := range testCases {
		have, err := DecodeValueAs(tc.in, tc.enc)
		if err != nil {
			t.Errorf("DecodeValueAs(%q, %d): %v", tc.in, tc.enc, err)
			continue
		}
		if !bytes.Equal(have, tc.want) {
			t.Errorf("DecodeValueAs(%q, %d): want=%q have=%q", tc.in, tc.enc, tc.want, have)
		}
	}
	if _, err := DecodeValueAs("zz", Hex); err == nil {
		t.Error("bad hex should fail")
	}
}
