package deliver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/shlex"

	"github.com/yaklabco/quill/pkg/fsutil"
)

// DefaultSeparator is written by WriterSink between pages (a form feed).
const DefaultSeparator = "\f\n"

// DefaultPageNamePattern names the files written by DirSink.
const DefaultPageNamePattern = "page-%04d.txt"

// pageFileGlob matches every file a DirSink may have written.
const pageFileGlob = "page-[0-9]*.txt"

// ErrEmptyCommand is returned when a command sink is given no command.
var ErrEmptyCommand = errors.New("empty command")

// Compile-time interface checks.
var (
	_ Sink = (*WriterSink)(nil)
	_ Sink = (*DirSink)(nil)
	_ Sink = (*CommandSink)(nil)
)

// WriterSink writes pages to an io.Writer, each followed by a newline, with
// Separator between pages.
type WriterSink struct {
	w         io.Writer
	separator string
}

// NewWriterSink creates a WriterSink. An empty separator means
// DefaultSeparator.
func NewWriterSink(w io.Writer, separator string) *WriterSink {
	if separator == "" {
		separator = DefaultSeparator
	}
	return &WriterSink{w: w, separator: separator}
}

// WritePage implements Sink.
func (s *WriterSink) WritePage(_ context.Context, page Page) error {
	if _, err := io.WriteString(s.w, page.Text+"\n"); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}

// Advance implements Sink.
func (s *WriterSink) Advance(_ context.Context) error {
	if _, err := io.WriteString(s.w, s.separator); err != nil {
		return fmt.Errorf("write separator: %w", err)
	}
	return nil
}

// DirSink writes every page to its own file in a directory.
// Page files left by an earlier run are removed when the sink is created,
// so the directory always holds exactly one book.
type DirSink struct {
	dir     string
	pattern string
}

// NewDirSink creates dir if needed and returns a DirSink writing files named
// by DefaultPageNamePattern.
func NewDirSink(dir string) (*DirSink, error) {
	if dir == "" {
		return nil, errors.New("dir sink: directory not set")
	}
	if err := fsutil.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("dir sink: %w", err)
	}
	if err := removePageFiles(dir); err != nil {
		return nil, fmt.Errorf("dir sink: %w", err)
	}
	return &DirSink{dir: dir, pattern: DefaultPageNamePattern}, nil
}

func removePageFiles(dir string) error {
	stale, err := filepath.Glob(filepath.Join(dir, pageFileGlob))
	if err != nil {
		return fmt.Errorf("list page files: %w", err)
	}
	for _, path := range stale {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove stale page: %w", err)
		}
	}
	return nil
}

// PagePath returns the file path of page number n.
func (s *DirSink) PagePath(n int) string {
	return filepath.Join(s.dir, fmt.Sprintf(s.pattern, n))
}

// WritePage implements Sink.
func (s *DirSink) WritePage(ctx context.Context, page Page) error {
	return fsutil.WriteAtomic(ctx, s.PagePath(page.Number), []byte(page.Text), 0)
}

// Advance implements Sink. Files need no page turn.
func (s *DirSink) Advance(_ context.Context) error {
	return nil
}

// CommandSink pipes each page into an external command, such as a
// clipboard tool ("wl-copy", "pbcopy", "xclip -selection clipboard").
// An optional advance command runs between pages.
type CommandSink struct {
	args    []string
	advance []string
}

// NewCommandSink parses the command lines with shell quoting rules.
func NewCommandSink(command, advance string) (*CommandSink, error) {
	args, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parse command: %w", err)
	}
	if len(args) == 0 {
		return nil, ErrEmptyCommand
	}

	var advanceArgs []string
	if strings.TrimSpace(advance) != "" {
		advanceArgs, err = shlex.Split(advance)
		if err != nil {
			return nil, fmt.Errorf("parse advance command: %w", err)
		}
	}

	return &CommandSink{args: args, advance: advanceArgs}, nil
}

// WritePage implements Sink.
func (s *CommandSink) WritePage(ctx context.Context, page Page) error {
	return run(ctx, s.args, strings.NewReader(page.Text))
}

// Advance implements Sink.
func (s *CommandSink) Advance(ctx context.Context) error {
	if len(s.advance) == 0 {
		return nil
	}
	return run(ctx, s.advance, nil)
}

func run(ctx context.Context, args []string, stdin io.Reader) error {
	//nolint:gosec // The command comes from the user's own configuration.
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = stdin

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("run %s: %w: %s", args[0], err, msg)
		}
		return fmt.Errorf("run %s: %w", args[0], err)
	}
	return nil
}
