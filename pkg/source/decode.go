package source

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding is returned for an encoding name Decode does not know.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Encoding names.
const (
	EncodingAuto    = "auto"
	EncodingUTF8    = "utf-8"
	EncodingUTF16LE = "utf-16le"
	EncodingUTF16BE = "utf-16be"
	EncodingGB18030 = "gb18030"
	EncodingGBK     = "gbk"
	EncodingBig5    = "big5"
)

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}

	encodings = map[string]encoding.Encoding{
		EncodingUTF8:    unicode.UTF8,
		EncodingUTF16LE: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
		EncodingUTF16BE: unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
		EncodingGB18030: simplifiedchinese.GB18030,
		EncodingGBK:     simplifiedchinese.GBK,
		EncodingBig5:    traditionalchinese.Big5,
	}

	aliases = map[string]string{
		"":         EncodingAuto,
		"utf8":     EncodingUTF8,
		"utf-16":   EncodingUTF16LE,
		"utf16le":  EncodingUTF16LE,
		"utf16be":  EncodingUTF16BE,
		"gb2312":   EncodingGBK,
		"cp936":    EncodingGBK,
		"big-5":    EncodingBig5,
		"gb-18030": EncodingGB18030,
	}
)

// Encodings returns the accepted canonical encoding names.
func Encodings() []string {
	return []string{
		EncodingAuto, EncodingUTF8, EncodingUTF16LE, EncodingUTF16BE,
		EncodingGB18030, EncodingGBK, EncodingBig5,
	}
}

// CanonicalEncoding maps an encoding name or alias to its canonical name.
func CanonicalEncoding(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	if name == EncodingAuto {
		return name, nil
	}
	if _, ok := encodings[name]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return name, nil
}

// Decode converts data to a string using the named encoding.
//
// With "auto", a byte order mark selects UTF-8 or UTF-16; otherwise valid
// UTF-8 is taken as-is and anything else is decoded as GB18030.
// Malformed input never fails: undecodable bytes become U+FFFD.
func Decode(data []byte, name string) (string, error) {
	name, err := CanonicalEncoding(name)
	if err != nil {
		return "", err
	}

	if name == EncodingAuto {
		name = detect(data)
	}

	if name == EncodingUTF8 {
		data = bytes.TrimPrefix(data, bomUTF8)
		if utf8.Valid(data) {
			return string(data), nil
		}
	}

	decoded, _, err := transform.Bytes(encodings[name].NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", name, err)
	}
	return string(decoded), nil
}

func detect(data []byte) string {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return EncodingUTF8
	case bytes.HasPrefix(data, bomUTF16LE):
		return EncodingUTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		return EncodingUTF16BE
	case utf8.Valid(data):
		return EncodingUTF8
	default:
		return EncodingGB18030
	}
}

// NormalizeNewlines converts CRLF and lone CR line endings to LF.
func NormalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
