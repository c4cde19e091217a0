package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/yaklabco/quill/pkg/layout"
	"github.com/yaklabco/quill/pkg/runner"
	"github.com/yaklabco/quill/pkg/source"
)

func newRunner(t *testing.T, linesPerPage int, maxWidth float64) *runner.Runner {
	t.Helper()

	cfg := layout.DefaultConfig()
	cfg.LinesPerPage = linesPerPage
	cfg.MaxLineWidth = maxWidth

	p, err := layout.NewPaginator(cfg)
	if err != nil {
		t.Fatalf("NewPaginator: %v", err)
	}
	return runner.New(p)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestRunner_Run_NoPaginator(t *testing.T) {
	t.Parallel()

	_, err := runner.New(nil).Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	if !errors.Is(err, runner.ErrNoPaginator) {
		t.Fatalf("expected ErrNoPaginator, got %v", err)
	}
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := newRunner(t, 1, 20).Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Files) != 0 || result.Stats.FilesDiscovered != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
	if result.HasErrors() {
		t.Error("empty result should have no errors")
	}
}

func TestRunner_Run_MultipleFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "你好，世界！\nHello world")
	writeFile(t, filepath.Join(dir, "b.txt"), "Hello w")

	result, err := newRunner(t, 1, 20).Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Files) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(result.Files))
	}
	if filepath.Base(result.Files[0].Path) != "a.txt" {
		t.Errorf("outcomes not in path order: %s first", result.Files[0].Path)
	}

	want := []string{"你好，世", "界！", "Hello w", "orld"}
	if got := result.Files[0].Book.Texts(); !slices.Equal(got, want) {
		t.Errorf("a.txt pages = %q, want %q", got, want)
	}

	if result.Stats.FilesProcessed != 2 || result.Stats.Pages != 5 || result.Stats.Lines != 5 {
		t.Errorf("unexpected stats %+v", result.Stats)
	}
	if result.Stats.WidestLine != 20 {
		t.Errorf("WidestLine = %v, want 20", result.Stats.WidestLine)
	}
}

func TestRunner_Run_SerialMatchesParallel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for i := range 12 {
		name := filepath.Join(dir, "ch"+strings.Repeat("x", i)+".txt")
		writeFile(t, name, strings.Repeat("Chapter 第一章 ", i+1))
	}

	r := newRunner(t, 3, 30)

	serial, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 1})
	if err != nil {
		t.Fatalf("serial Run: %v", err)
	}
	parallel, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 8})
	if err != nil {
		t.Fatalf("parallel Run: %v", err)
	}

	if len(serial.Files) != len(parallel.Files) {
		t.Fatalf("file counts differ: %d vs %d", len(serial.Files), len(parallel.Files))
	}
	for i := range serial.Files {
		s, p := serial.Files[i], parallel.Files[i]
		if s.Path != p.Path || !slices.Equal(s.Book.Texts(), p.Book.Texts()) {
			t.Errorf("outcome %d differs: %s vs %s", i, s.Path, p.Path)
		}
	}
	if serial.Stats != parallel.Stats {
		t.Errorf("stats differ: %+v vs %+v", serial.Stats, parallel.Stats)
	}
}

func TestRunner_Run_MarkdownByExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "# Title\n\n**bold** text")
	writeFile(t, filepath.Join(dir, "b.txt"), "**bold** text")

	result, err := newRunner(t, 14, 57).Run(context.Background(), runner.Options{
		WorkingDir:          dir,
		Source:              source.Options{Encoding: source.EncodingAuto},
		MarkdownByExtension: true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	md := strings.Join(result.Files[0].Book.Lines, "\n")
	if strings.Contains(md, "**") || strings.Contains(md, "#") {
		t.Errorf("markdown not stripped: %q", md)
	}
	txt := strings.Join(result.Files[1].Book.Lines, "\n")
	if !strings.Contains(txt, "**bold**") {
		t.Errorf("plain text altered: %q", txt)
	}
}

func TestRunner_Run_FileError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "good.txt"), "fine")
	writeFile(t, filepath.Join(dir, "bad.txt"), "fine")

	result, err := newRunner(t, 1, 20).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Source:     source.Options{Encoding: "klingon"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !result.HasErrors() || result.Stats.FilesErrored != 2 {
		t.Fatalf("expected per-file errors, got %+v", result.Stats)
	}
	for _, f := range result.Files {
		if !errors.Is(f.Error, source.ErrUnknownEncoding) {
			t.Errorf("%s: expected ErrUnknownEncoding, got %v", f.Path, f.Error)
		}
	}
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "text")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newRunner(t, 1, 20).Run(ctx, runner.Options{WorkingDir: dir}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestResult_HasErrors_Nil(t *testing.T) {
	t.Parallel()

	var r *runner.Result
	if r.HasErrors() {
		t.Error("nil result should report no errors")
	}
}
