package source_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/source"
)

func TestPreprocess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		opts source.Options
		want string
	}{
		{"no cleanup", "  a\n\n\n\nb  \n", source.Options{}, "  a\n\n\n\nb  \n"},
		{"trim only", "\n  a\n\n\nb  \n\n", source.Options{Trim: true}, "a\n\n\nb"},
		{"collapse only", "a\n\n\n\nb\n\n", source.Options{CollapseBlankLines: true}, "a\n\nb\n\n"},
		{"single blank line kept", "a\n\nb", source.Options{Trim: true, CollapseBlankLines: true}, "a\n\nb"},
		{"both", "\n\na\n\n\nb\n\n\n", source.Options{Trim: true, CollapseBlankLines: true}, "a\n\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, source.Preprocess(tt.in, tt.opts))
		})
	}
}

func TestPrepare(t *testing.T) {
	t.Parallel()

	got, err := source.Prepare([]byte("\r\nline one\r\n\r\n\r\nline two\r\n"), source.Options{
		Encoding:           source.EncodingAuto,
		Trim:               true,
		CollapseBlankLines: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "line one\n\nline two", got)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("你好\n"), 0o644))

	ctx := context.Background()
	opts := source.Options{Trim: true}

	got, err := source.LoadFile(ctx, path, nil, opts)
	require.NoError(t, err)
	assert.Equal(t, "你好", got)

	got, err = source.LoadFile(ctx, source.StdinPath, strings.NewReader(" from stdin "), opts)
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)

	_, err = source.LoadFile(ctx, filepath.Join(dir, "missing.txt"), nil, opts)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRead_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := source.Read(ctx, strings.NewReader("x"), source.Options{})
	require.ErrorIs(t, err, context.Canceled)
}
