package configloader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/config"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("QUILL_LINES_PER_PAGE", "3")
	t.Setenv("QUILL_MAX_LINE_WIDTH", "42.5")
	t.Setenv("QUILL_ENCODING", "gbk")
	t.Setenv("QUILL_MARKDOWN", "true")
	t.Setenv("QUILL_SINK", "command")
	t.Setenv("QUILL_COMMAND", "wl-copy")
	t.Setenv("QUILL_ADVANCE_COMMAND", "true")
	t.Setenv("QUILL_DELAY", "1s")
	t.Setenv("QUILL_PAGE_LIMIT", "5")
	t.Setenv("QUILL_WAIT", "false")
	t.Setenv("QUILL_FORMAT", "summary")

	cfg := config.NewConfig()
	require.NoError(t, LoadFromEnv(cfg))

	assert.Equal(t, 3, cfg.Layout.Lines())
	assert.InDelta(t, 42.5, cfg.Layout.Width(), 1e-9)
	assert.Equal(t, "gbk", cfg.Input.Encoding)
	assert.True(t, config.BoolValue(cfg.Input.Markdown, false))
	assert.Equal(t, config.SinkCommand, cfg.Delivery.Sink)
	assert.Equal(t, "wl-copy", cfg.Delivery.Command)
	assert.Equal(t, "true", cfg.Delivery.AdvanceCommand)
	assert.Equal(t, time.Second, config.DurationValue(cfg.Delivery.Delay, 0))
	assert.Equal(t, 5, config.IntValue(cfg.Delivery.PageLimit, 0))
	assert.False(t, config.BoolValue(cfg.Delivery.Wait, true))
	assert.Equal(t, config.FormatSummary, cfg.Format)
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name, key, value, wantErr string
	}{
		{"bool", "QUILL_MARKDOWN", "maybe", "invalid boolean for QUILL_MARKDOWN"},
		{"int", "QUILL_PAGE_LIMIT", "many", "invalid integer for QUILL_PAGE_LIMIT"},
		{"float", "QUILL_MAX_LINE_WIDTH", "wide", "invalid number for QUILL_MAX_LINE_WIDTH"},
		{"duration", "QUILL_DELAY", "soon", "invalid duration for QUILL_DELAY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			err := LoadFromEnv(config.NewConfig())
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadFromEnv_NilConfig(t *testing.T) {
	require.NoError(t, LoadFromEnv(nil))
}

func TestListEnvVars(t *testing.T) {
	vars := ListEnvVars()
	require.Len(t, vars, len(envMappings))
	assert.Equal(t, "QUILL_ADVANCE_COMMAND", vars[0].Name)
	for _, v := range vars {
		assert.NotEmpty(t, v.Description, v.Name)
	}
}
