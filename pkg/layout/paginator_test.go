package layout_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/layout"
)

func newPaginator(t *testing.T, mutate func(*layout.Config)) *layout.Paginator {
	t.Helper()

	cfg := layout.DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}

	p, err := layout.NewPaginator(cfg)
	require.NoError(t, err)
	return p
}

func TestLayoutLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"single line", "A", []string{"A"}},
		{"trailing newline dropped", "A\n", []string{"A"}},
		{"many trailing newlines dropped", "A\n\n\n", []string{"A"}},
		{"interior blank line kept", "A\n\nB", []string{"A", "", "B"}},
		{"consecutive newlines", "A\n\n\nB", []string{"A", "", "", "B"}},
		{"only newlines", "\n\n", nil},
		{"leading newline kept", "\nA", []string{"", "A"}},
		{"crlf carriage return is measured", "A\r\nB", []string{"A\r", "B"}},
	}

	p := newPaginator(t, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, p.LayoutLines(tt.text))
		})
	}
}

func TestLayoutLines_HardWrap(t *testing.T) {
	t.Parallel()

	// 19 latin runes at width 3 fill 57 exactly; the 20th wraps.
	p := newPaginator(t, nil)

	text := strings.Repeat("a", 20)
	assert.Equal(t, []string{strings.Repeat("a", 19), "a"}, p.LayoutLines(text))

	// No word-boundary awareness: the break falls inside a word.
	p = newPaginator(t, func(c *layout.Config) { c.MaxLineWidth = 10 })
	assert.Equal(t, []string{"abc", "def"}, p.LayoutLines("abcdef"))
}

func TestLayoutLines_FractionalWidths(t *testing.T) {
	t.Parallel()

	p := newPaginator(t, func(c *layout.Config) { c.MaxLineWidth = 3 })

	// Two backticks are 3.0 and fit exactly.
	assert.Equal(t, []string{"``", "`"}, p.LayoutLines("```"))
}

func TestLayoutLines_OversizedRune(t *testing.T) {
	t.Parallel()

	p := newPaginator(t, func(c *layout.Config) { c.CharWidths['@'] = 100 })

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"alone", "@", []string{"@"}},
		{"leading", "@b", []string{"@", "b"}},
		{"after text", "a@b", []string{"a", "@", "b"}},
		{"after newline", "a\n@", []string{"a", "@"}},
		{"twice", "@@", []string{"@", "@"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, p.LayoutLines(tt.text))
		})
	}
}

func TestLayoutLines_WidthBound(t *testing.T) {
	t.Parallel()

	p := newPaginator(t, func(c *layout.Config) { c.MaxLineWidth = 20 })
	text := "The quick brown fox，跳过了懒狗。\n\n" +
		strings.Repeat("中文与English混排——测试 `code` <tag> → ~ ", 8)

	for _, line := range p.LayoutLines(text) {
		if len([]rune(line)) <= 1 {
			continue
		}
		assert.LessOrEqual(t, p.Model().StringWidth(line), p.MaxLineWidth(), "line %q", line)
	}
}

func TestLayoutLines_Deterministic(t *testing.T) {
	t.Parallel()

	p := newPaginator(t, nil)
	text := strings.Repeat("你好，世界！Hello world.\n", 40)

	first := p.Format(text)
	for range 5 {
		assert.Equal(t, first, p.Format(text))
	}
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		linesPerPage int
		lines        []string
		want         []string
	}{
		{"no lines", 3, nil, nil},
		{"short page", 3, []string{"a", "b"}, []string{"a\nb"}},
		{"exact multiple", 2, []string{"a", "b", "c", "d"}, []string{"a\nb", "c\nd"}},
		{"remainder", 2, []string{"a", "b", "c"}, []string{"a\nb", "c"}},
		{"one line per page", 1, []string{"a", "", "b"}, []string{"a", "", "b"}},
		{"blank lines kept", 3, []string{"", "", "x"}, []string{"\n\nx"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := newPaginator(t, func(c *layout.Config) { c.LinesPerPage = tt.linesPerPage })
			assert.Equal(t, tt.want, p.Paginate(tt.lines))
		})
	}
}

func TestPaginate_PageSizeBound(t *testing.T) {
	t.Parallel()

	p := newPaginator(t, func(c *layout.Config) { c.LinesPerPage = 4 })

	lines := make([]string, 0, 11)
	for range 11 {
		lines = append(lines, "x")
	}

	pages := p.Paginate(lines)
	require.Len(t, pages, 3)
	for _, page := range pages[:len(pages)-1] {
		assert.Len(t, strings.Split(page, "\n"), 4)
	}
	assert.Len(t, strings.Split(pages[2], "\n"), 3)
}

func TestFormat_EndToEnd(t *testing.T) {
	t.Parallel()

	cfg := layout.DefaultConfig()
	cfg.LinesPerPage = 1
	cfg.MaxLineWidth = 20

	lines, err := layout.LayoutLines("你好，世界！\nHello world", cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"你好，世", "界！", "Hello w", "orld"}, lines)

	pages, err := layout.Format("你好，世界！\nHello world", cfg)
	require.NoError(t, err)
	assert.Equal(t, lines, pages)

	again, err := layout.Format("你好，世界！\nHello world", cfg)
	require.NoError(t, err)
	assert.Equal(t, pages, again)
}

func TestPackageFunctions_RejectInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := layout.DefaultConfig()
	cfg.LinesPerPage = 0

	_, err := layout.LayoutLines("a", cfg)
	require.ErrorIs(t, err, layout.ErrInvalidConfiguration)

	_, err = layout.Paginate([]string{"a"}, cfg)
	require.ErrorIs(t, err, layout.ErrInvalidConfiguration)

	_, err = layout.Format("a", cfg)
	require.ErrorIs(t, err, layout.ErrInvalidConfiguration)
}

func TestPaginate_EmptyInput(t *testing.T) {
	t.Parallel()

	pages, err := layout.Paginate([]string{}, layout.DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, pages)

	lines, err := layout.LayoutLines("", layout.DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestBook(t *testing.T) {
	t.Parallel()

	p := newPaginator(t, func(c *layout.Config) { c.LinesPerPage = 2 })
	text := "one\ntwo\nthree\n"

	book := p.Book(text)
	assert.Equal(t, []string{"one", "two", "three"}, book.Lines)
	require.Len(t, book.Pages, 2)
	assert.Equal(t, 1, book.Pages[0].Number)
	assert.Equal(t, []string{"one", "two"}, book.Pages[0].Lines)
	assert.Equal(t, 2, book.Pages[1].Number)
	assert.Equal(t, p.Format(text), book.Texts())
}
