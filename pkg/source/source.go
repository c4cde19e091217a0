package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// StdinPath is the path that selects standard input.
const StdinPath = "-"

//nolint:gochecknoglobals // Compiled once.
var blankRun = regexp.MustCompile(`\n{2,}`)

// Options controls loading and cleanup.
type Options struct {
	// Encoding names the input encoding; see Decode.
	Encoding string

	// Markdown strips Markdown markup.
	Markdown bool

	// Trim removes leading and trailing whitespace.
	Trim bool

	// CollapseBlankLines replaces every run of two or more newlines with
	// exactly one blank line.
	CollapseBlankLines bool
}

// Read reads all of r and prepares it according to opts.
func Read(ctx context.Context, r io.Reader, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("read cancelled: %w", err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}

	return Prepare(data, opts)
}

// LoadFile reads path (or stdin for "-") and prepares it according to opts.
func LoadFile(ctx context.Context, path string, stdin io.Reader, opts Options) (string, error) {
	if path == StdinPath {
		return Read(ctx, stdin, opts)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(ctx, f, opts)
}

// Prepare decodes data and applies the cleanup steps in order: newline
// normalization, Markdown stripping, then Preprocess.
func Prepare(data []byte, opts Options) (string, error) {
	text, err := Decode(data, opts.Encoding)
	if err != nil {
		return "", err
	}

	text = NormalizeNewlines(text)
	if opts.Markdown {
		text = MarkdownToText([]byte(text))
	}

	return Preprocess(text, opts), nil
}

// Preprocess applies the whitespace cleanup selected in opts.
func Preprocess(text string, opts Options) string {
	if opts.Trim {
		text = strings.TrimSpace(text)
	}
	if opts.CollapseBlankLines {
		text = blankRun.ReplaceAllString(text, "\n\n")
	}
	return text
}
