package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/quill/pkg/source"
)

func TestMarkdownToText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "heading and paragraph",
			in:   "# Title\n\nSome *emphasis* and **strong** text.\n",
			want: "Title\n\nSome emphasis and strong text.",
		},
		{
			name: "soft break becomes space",
			in:   "one\ntwo\n",
			want: "one two",
		},
		{
			name: "soft break between ideographs joins",
			in:   "你好，\n世界\n",
			want: "你好，世界",
		},
		{
			name: "soft break between ideograph and latin keeps space",
			in:   "中文\nEnglish\n",
			want: "中文 English",
		},
		{
			name: "soft break in korean keeps space",
			in:   "안녕\n하세요\n",
			want: "안녕 하세요",
		},
		{
			name: "links keep their label",
			in:   "See [the docs](https://example.com) or <https://example.org>.\n",
			want: "See the docs or https://example.org.",
		},
		{
			name: "bullet list",
			in:   "- apple\n- pear\n",
			want: "- apple\n- pear",
		},
		{
			name: "ordered list keeps start",
			in:   "3. three\n4. four\n",
			want: "3. three\n4. four",
		},
		{
			name: "fenced code verbatim",
			in:   "```go\nfmt.Println(\"hi\")\n```\n",
			want: "fmt.Println(\"hi\")",
		},
		{
			name: "inline code",
			in:   "Run `quill format`.\n",
			want: "Run quill format.",
		},
		{
			name: "blockquote and thematic break",
			in:   "> quoted\n\n---\n\nafter\n",
			want: "quoted\n\nafter",
		},
		{
			name: "table",
			in:   "| a | b |\n|---|---|\n| 1 | 2 |\n",
			want: "a | b\n1 | 2",
		},
		{
			name: "chinese text",
			in:   "## 标题\n\n你好，世界！\n",
			want: "标题\n\n你好，世界！",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, source.MarkdownToText([]byte(tt.in)))
		})
	}
}
