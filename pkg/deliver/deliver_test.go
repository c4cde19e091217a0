package deliver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/deliver"
)

// recordingSink records every call in order.
type recordingSink struct {
	events   []string
	failPage int
}

func (s *recordingSink) WritePage(_ context.Context, page deliver.Page) error {
	if page.Number == s.failPage {
		return errors.New("sink broke")
	}
	s.events = append(s.events, "page:"+page.Text)
	return nil
}

func (s *recordingSink) Advance(_ context.Context) error {
	s.events = append(s.events, "advance")
	return nil
}

// countingTrigger records waits into the sink's event log and aborts on the
// wait numbered abortOn (1-based, 0 never).
func countingTrigger(sink *recordingSink, abortOn int) (deliver.Trigger, *int) {
	waits := 0
	return deliver.TriggerFunc(func(context.Context) error {
		waits++
		sink.events = append(sink.events, "wait")
		if waits == abortOn {
			return deliver.ErrAborted
		}
		return nil
	}), &waits
}

func TestDeliverer_Run(t *testing.T) {
	t.Parallel()

	pages := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		name       string
		opts       deliver.Options
		wantEvents []string
		wantPauses int
	}{
		{
			name: "no pacing",
			opts: deliver.Options{},
			wantEvents: []string{
				"page:a", "advance", "page:b", "advance", "page:c",
				"advance", "page:d", "advance", "page:e",
			},
		},
		{
			name: "wait before first page",
			opts: deliver.Options{WaitFirst: true},
			wantEvents: []string{
				"wait", "page:a", "advance", "page:b", "advance", "page:c",
				"advance", "page:d", "advance", "page:e",
			},
		},
		{
			name: "page limit pauses while pages remain",
			opts: deliver.Options{PageLimit: 2},
			wantEvents: []string{
				"page:a", "advance", "page:b", "advance", "wait",
				"page:c", "advance", "page:d", "advance", "wait",
				"page:e",
			},
			wantPauses: 2,
		},
		{
			name: "page limit equal to page count is disabled",
			opts: deliver.Options{PageLimit: 5},
			wantEvents: []string{
				"page:a", "advance", "page:b", "advance", "page:c",
				"advance", "page:d", "advance", "page:e",
			},
		},
		{
			name: "no pause after the final page",
			opts: deliver.Options{PageLimit: 4},
			wantEvents: []string{
				"page:a", "advance", "page:b", "advance", "page:c",
				"advance", "page:d", "advance", "wait", "page:e",
			},
			wantPauses: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sink := &recordingSink{}
			trigger, _ := countingTrigger(sink, 0)

			stats, err := deliver.New(sink, trigger, tt.opts).Run(context.Background(), pages)
			require.NoError(t, err)
			assert.Equal(t, tt.wantEvents, sink.events)
			assert.Equal(t, deliver.Stats{Total: 5, Delivered: 5, Pauses: tt.wantPauses}, stats)
		})
	}
}

func TestDeliverer_Run_Empty(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	trigger, waits := countingTrigger(sink, 0)

	stats, err := deliver.New(sink, trigger, deliver.Options{WaitFirst: true}).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, stats.Delivered)
	assert.Zero(t, *waits)
	assert.Empty(t, sink.events)
}

func TestDeliverer_Run_Abort(t *testing.T) {
	t.Parallel()

	t.Run("before first page", func(t *testing.T) {
		t.Parallel()

		sink := &recordingSink{}
		trigger, _ := countingTrigger(sink, 1)

		stats, err := deliver.New(sink, trigger, deliver.Options{WaitFirst: true}).
			Run(context.Background(), []string{"a", "b"})
		require.ErrorIs(t, err, deliver.ErrAborted)
		assert.Zero(t, stats.Delivered)
		assert.Equal(t, []string{"wait"}, sink.events)
	})

	t.Run("at page limit", func(t *testing.T) {
		t.Parallel()

		sink := &recordingSink{}
		trigger, _ := countingTrigger(sink, 1)

		stats, err := deliver.New(sink, trigger, deliver.Options{PageLimit: 1}).
			Run(context.Background(), []string{"a", "b", "c"})
		require.ErrorIs(t, err, deliver.ErrAborted)
		assert.Equal(t, 1, stats.Delivered)
		assert.Equal(t, []string{"page:a", "advance", "wait"}, sink.events)
	})
}

func TestDeliverer_Run_SinkError(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{failPage: 2}
	stats, err := deliver.New(sink, nil, deliver.Options{}).Run(context.Background(), []string{"a", "b", "c"})
	require.ErrorContains(t, err, "write page 2/3")
	assert.Equal(t, 1, stats.Delivered)
}

func TestDeliverer_Run_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &recordingSink{}
	_, err := deliver.New(sink, nil, deliver.Options{}).Run(ctx, []string{"a"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sink.events)
}

func TestDeliverer_Run_DoesNotMutatePages(t *testing.T) {
	t.Parallel()

	pages := []string{"x", "y"}
	_, err := deliver.New(&recordingSink{}, nil, deliver.Options{}).Run(context.Background(), pages)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, pages)
}

func TestPage_Last(t *testing.T) {
	t.Parallel()

	assert.True(t, deliver.Page{Number: 3, Total: 3}.Last())
	assert.False(t, deliver.Page{Number: 1, Total: 3}.Last())
}
