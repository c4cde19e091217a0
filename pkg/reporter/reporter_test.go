package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/layout"
	"github.com/yaklabco/quill/pkg/reporter"
)

func newDocument(t *testing.T, text string) *reporter.Document {
	t.Helper()

	cfg := layout.DefaultConfig()
	cfg.LinesPerPage = 1
	cfg.MaxLineWidth = 20

	p, err := layout.NewPaginator(cfg)
	require.NoError(t, err)

	return &reporter.Document{Source: "input.txt", Book: p.Book(text), Paginator: p}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "unknown format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	assert.True(t, reporter.FormatText.IsValid())
	assert.True(t, reporter.FormatJSON.IsValid())
	assert.True(t, reporter.FormatSummary.IsValid())
	assert.False(t, reporter.Format("sarif").IsValid())
	assert.False(t, reporter.Format("").IsValid())
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	for _, format := range []reporter.Format{"", reporter.FormatText, reporter.FormatJSON, reporter.FormatSummary} {
		rep, err := reporter.New(reporter.Options{Writer: &buf, Format: format, Color: "never"})
		require.NoError(t, err)
		assert.NotNil(t, rep)
	}

	_, err := reporter.New(reporter.Options{Writer: &buf, Format: "xml"})
	require.Error(t, err)
}

func TestReport_RequiresPaginator(t *testing.T) {
	var buf bytes.Buffer

	for _, format := range []reporter.Format{reporter.FormatText, reporter.FormatJSON, reporter.FormatSummary} {
		rep, err := reporter.New(reporter.Options{Writer: &buf, Format: format, Color: "never"})
		require.NoError(t, err)

		err = rep.Report(context.Background(), &reporter.Document{})
		require.ErrorIs(t, err, reporter.ErrNoPaginator, "format %s", format)
	}
}

func TestTextReporter(t *testing.T) {
	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})
	require.NoError(t, err)

	require.NoError(t, rep.Report(context.Background(), newDocument(t, "你好，世界！\nHello world")))

	want := strings.Join([]string{
		"=== Page 1/4 ===",
		"1 │ 你好，世",
		"",
		"=== Page 2/4 ===",
		"2 │ 界！",
		"",
		"=== Page 3/4 ===",
		"3 │ Hello w",
		"",
		"=== Page 4/4 ===",
		"4 │ orld",
		"",
		"4 pages, 4 lines (17 characters), widest line 20.0/20.0",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestTextReporter_ShowWidths(t *testing.T) {
	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Color: "never", ShowWidths: true, BarCells: 4})
	require.NoError(t, err)

	require.NoError(t, rep.Report(context.Background(), newDocument(t, "你好，世界！")))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "1 │ 你好，世    18.0 ███░", lines[1])
	assert.Equal(t, "2 │ 界！         9.0 █░░░", lines[4])
}

func TestTextReporter_Empty(t *testing.T) {
	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})
	require.NoError(t, err)

	require.NoError(t, rep.Report(context.Background(), newDocument(t, "")))
	assert.Equal(t, "No pages (input is empty)\n", buf.String())
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatJSON, ShowWidths: true})
	require.NoError(t, err)

	require.NoError(t, rep.Report(context.Background(), newDocument(t, "你好，世界！\nHello world")))

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, reporter.JSONSchemaVersion, output.Version)
	assert.Equal(t, "input.txt", output.Source)
	assert.Equal(t, reporter.JSONSettings{LinesPerPage: 1, MaxLineWidth: 20}, output.Settings)
	require.Len(t, output.Pages, 4)
	assert.Equal(t, "Hello w", output.Pages[2].Text)
	require.Len(t, output.Pages[0].Lines, 1)
	require.NotNil(t, output.Pages[0].Lines[0].Width)
	assert.InDelta(t, 18.0, *output.Pages[0].Lines[0].Width, 1e-9)
	assert.Equal(t, 4, output.Summary.Pages)
}

func TestJSONReporter_CompactWithoutWidths(t *testing.T) {
	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatJSON, Compact: true})
	require.NoError(t, err)

	require.NoError(t, rep.Report(context.Background(), newDocument(t, "<a>")))

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "\n"), "compact output is a single line")
	assert.NotContains(t, out, `"width"`)
	assert.Contains(t, out, `"text":"<a>"`)
}

func TestJSONReporter_EmptyPagesIsArray(t *testing.T) {
	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatJSON, Compact: true})
	require.NoError(t, err)

	require.NoError(t, rep.Report(context.Background(), newDocument(t, "")))
	assert.Contains(t, buf.String(), `"pages":[]`)
}

func TestSummaryReporter(t *testing.T) {
	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatSummary, Color: "never"})
	require.NoError(t, err)

	require.NoError(t, rep.Report(context.Background(), newDocument(t, "你好，世界！\nHello world")))

	out := buf.String()
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Source:          input.txt")
	assert.Contains(t, out, "Pages:           4")
	assert.Contains(t, out, "Widest line:     20.0/20.0")
}
