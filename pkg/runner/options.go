// Package runner lays out many input files concurrently.
package runner

import "github.com/yaklabco/quill/pkg/source"

// Options controls a batch run.
type Options struct {
	// Paths are files or directories to process. Empty means the working
	// directory.
	Paths []string

	// WorkingDir resolves relative Paths. Empty means os.Getwd().
	WorkingDir string

	// Extensions (lowercase, leading dot) select files inside directories.
	// Files named explicitly in Paths are always processed.
	Extensions []string

	// ExcludeGlobs skip matching files and directories, relative to WorkingDir.
	ExcludeGlobs []string

	// FollowSymlinks traverses directory symlinks.
	FollowSymlinks bool

	// Jobs caps concurrent workers. 0 or negative means runtime.NumCPU().
	Jobs int

	// Source controls decoding and cleanup of every file.
	Source source.Options

	// MarkdownByExtension strips Markdown from .md and .markdown files even
	// when Source.Markdown is off.
	MarkdownByExtension bool
}

// DefaultExtensions returns the extensions picked up inside directories.
func DefaultExtensions() []string {
	return []string{".txt", ".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// sourceFor returns the source options for one file.
func (o Options) sourceFor(path string) source.Options {
	opts := o.Source
	if o.MarkdownByExtension && isMarkdown(path) {
		opts.Markdown = true
	}
	return opts
}
