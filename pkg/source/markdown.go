package source

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/width"
)

// MarkdownToText renders Markdown as plain text. Markup is dropped, block
// elements are separated by a blank line, list items keep a bullet or number
// and code blocks are copied verbatim.
func MarkdownToText(src []byte) string {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(src))

	r := &plainRenderer{src: src}
	return strings.Join(r.blocks(doc), "\n\n")
}

type plainRenderer struct {
	src []byte
}

// blocks renders each block child of parent.
func (r *plainRenderer) blocks(parent ast.Node) []string {
	var out []string
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if s, ok := r.block(child); ok {
			out = append(out, s)
		}
	}
	return out
}

func (r *plainRenderer) block(node ast.Node) (string, bool) {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.Heading, *ast.TextBlock:
		return r.inline(n), true
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return r.rawLines(n), true
	case *ast.List:
		return r.list(n), true
	case *ast.Blockquote:
		inner := r.blocks(n)
		return strings.Join(inner, "\n\n"), len(inner) > 0
	case *east.Table:
		return r.table(n), true
	case *ast.ThematicBreak, *ast.HTMLBlock:
		return "", false
	default:
		inner := r.blocks(n)
		return strings.Join(inner, "\n\n"), len(inner) > 0
	}
}

func (r *plainRenderer) list(list *ast.List) string {
	var items []string
	number := list.Start
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "- "
		if list.IsOrdered() {
			marker = strconv.Itoa(number) + ". "
			number++
		}
		body := strings.Join(r.blocks(item), "\n")
		items = append(items, marker+body)
	}
	return strings.Join(items, "\n")
}

func (r *plainRenderer) table(table *east.Table) string {
	var rows []string
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, r.inline(cell))
		}
		rows = append(rows, strings.Join(cells, " | "))
	}
	return strings.Join(rows, "\n")
}

func (r *plainRenderer) rawLines(node ast.Node) string {
	var sb strings.Builder
	lines := node.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		sb.Write(seg.Value(r.src))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// inline concatenates the text of node's inline descendants. A soft line
// break becomes a space, except between two East Asian wide characters,
// which join directly.
func (r *plainRenderer) inline(node ast.Node) string {
	var sb strings.Builder
	softBreak := false

	write := func(b []byte) {
		if len(b) == 0 {
			return
		}
		if softBreak {
			prev, _ := utf8.DecodeLastRuneInString(sb.String())
			next, _ := utf8.DecodeRune(b)
			if !isWide(prev) || !isWide(next) {
				sb.WriteByte(' ')
			}
			softBreak = false
		}
		sb.Write(b)
	}

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch v := n.(type) {
		case *ast.Text:
			write(v.Segment.Value(r.src))
			switch {
			case v.HardLineBreak():
				softBreak = false
				sb.WriteByte('\n')
			case v.SoftLineBreak():
				softBreak = true
			}
		case *ast.String:
			write(v.Value)
		case *ast.AutoLink:
			write(v.Label(r.src))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(sb.String())
}

// isWide reports whether r is a wide or fullwidth character of a script
// written without spaces between words. Hangul is wide but space-separated.
func isWide(r rune) bool {
	if unicode.Is(unicode.Hangul, r) {
		return false
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	default:
		return false
	}
}
