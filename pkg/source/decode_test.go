package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"

	"github.com/yaklabco/quill/pkg/source"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	const text = "你好，世界！Hello"

	gb, err := simplifiedchinese.GB18030.NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	gbk, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	big5Text := "你好世界"
	big5, err := traditionalchinese.Big5.NewEncoder().Bytes([]byte(big5Text))
	require.NoError(t, err)

	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	utf16be, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	tests := []struct {
		name     string
		data     []byte
		encoding string
		want     string
	}{
		{"auto utf-8", []byte(text), "auto", text},
		{"empty name is auto", []byte(text), "", text},
		{"auto strips utf-8 bom", append([]byte{0xEF, 0xBB, 0xBF}, text...), "auto", text},
		{"auto utf-16le bom", utf16le, "auto", text},
		{"auto utf-16be bom", utf16be, "auto", text},
		{"auto falls back to gb18030", gb, "auto", text},
		{"explicit gb18030", gb, "gb18030", text},
		{"explicit gbk", gbk, "GBK", text},
		{"alias gb2312", gbk, "gb2312", text},
		{"explicit big5", big5, "big5", big5Text},
		{"explicit utf-8 strips bom", append([]byte{0xEF, 0xBB, 0xBF}, 'a'), "utf8", "a"},
		{"invalid utf-8 replaced", []byte{'a', 0xFF, 'b'}, "utf-8", "a�b"},
		{"empty input", nil, "auto", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := source.Decode(tt.data, tt.encoding)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_UnknownEncoding(t *testing.T) {
	t.Parallel()

	_, err := source.Decode([]byte("x"), "ebcdic")
	require.ErrorIs(t, err, source.ErrUnknownEncoding)
}

func TestCanonicalEncoding(t *testing.T) {
	t.Parallel()

	for _, name := range source.Encodings() {
		got, err := source.CanonicalEncoding(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, got)
	}

	got, err := source.CanonicalEncoding(" UTF-16 ")
	require.NoError(t, err)
	assert.Equal(t, source.EncodingUTF16LE, got)
}

func TestNormalizeNewlines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a\nb\nc\n", source.NormalizeNewlines("a\r\nb\rc\r\n"))
	assert.Equal(t, "plain\n", source.NormalizeNewlines("plain\n"))
}
