// Package deliver hands laid-out pages to an external consumer.
//
// A Deliverer walks the page sequence once, writing each page to a Sink and
// advancing the sink between pages. A Trigger supplies the "continue" and
// "abort" signals: before the first page and, in page-limit mode, after every
// PageLimit pages. The page slice is treated as read-only.
package deliver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yaklabco/quill/internal/logging"
)

// ErrAborted is returned when the trigger signals abort.
var ErrAborted = errors.New("delivery aborted")

// Page is one page handed to a Sink.
type Page struct {
	// Number is the 1-based page number.
	Number int

	// Total is the number of pages in the run.
	Total int

	// Text is the page content: lines joined by '\n'.
	Text string
}

// Last reports whether p is the final page of the run.
func (p Page) Last() bool {
	return p.Number == p.Total
}

// Sink consumes pages.
type Sink interface {
	// WritePage delivers one page.
	WritePage(ctx context.Context, page Page) error

	// Advance moves the consumer to the next page. It is called between
	// pages, never after the last one.
	Advance(ctx context.Context) error
}

// Trigger blocks until the user signals continue (nil) or abort (ErrAborted).
type Trigger interface {
	Wait(ctx context.Context) error
}

// TriggerFunc adapts a function to Trigger.
type TriggerFunc func(ctx context.Context) error

// Wait implements Trigger.
func (f TriggerFunc) Wait(ctx context.Context) error {
	return f(ctx)
}

// Options controls pacing.
type Options struct {
	// Delay is slept between a page and the following Advance.
	Delay time.Duration

	// PageLimit pauses for the trigger after every PageLimit pages while
	// pages remain. Zero, or a limit >= the page count, disables pausing.
	PageLimit int

	// WaitFirst waits for the trigger before the first page.
	WaitFirst bool
}

// Stats summarizes a run.
type Stats struct {
	Total     int
	Delivered int
	Pauses    int
}

// Deliverer drives a Sink through a page sequence.
type Deliverer struct {
	sink    Sink
	trigger Trigger
	opts    Options
}

// New creates a Deliverer. A nil trigger never pauses.
func New(sink Sink, trigger Trigger, opts Options) *Deliverer {
	if trigger == nil {
		trigger = Immediate()
	}
	return &Deliverer{sink: sink, trigger: trigger, opts: opts}
}

// Run delivers pages in order. It returns ErrAborted (wrapped) when the
// trigger aborts and the context error when ctx is cancelled; Stats reports
// how far the run got in either case.
func (d *Deliverer) Run(ctx context.Context, pages []string) (Stats, error) {
	logger := logging.FromContext(ctx)
	total := len(pages)
	stats := Stats{Total: total}

	if total == 0 {
		return stats, nil
	}

	limit := d.opts.PageLimit
	paced := limit > 0 && limit < total
	if !paced {
		logger.Debug("page limit disabled or not below page count; delivering all pages",
			logging.FieldPageLimit, limit, logging.FieldTotal, total)
	}

	if d.opts.WaitFirst {
		if err := d.trigger.Wait(ctx); err != nil {
			return stats, fmt.Errorf("wait before first page: %w", err)
		}
	}

	sinceResume := 0
	for i, text := range pages {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("delivery cancelled: %w", err)
		}

		page := Page{Number: i + 1, Total: total, Text: text}
		if err := d.sink.WritePage(ctx, page); err != nil {
			return stats, fmt.Errorf("write page %d/%d: %w", page.Number, total, err)
		}
		stats.Delivered++
		sinceResume++
		logger.Debug("page delivered", logging.FieldPage, page.Number, logging.FieldTotal, total)

		if page.Last() {
			break
		}

		if err := sleep(ctx, d.opts.Delay); err != nil {
			return stats, fmt.Errorf("delivery cancelled: %w", err)
		}
		if err := d.sink.Advance(ctx); err != nil {
			return stats, fmt.Errorf("advance after page %d: %w", page.Number, err)
		}

		if paced && sinceResume >= limit {
			logger.Info("page limit reached; press Enter to continue or Esc to abort",
				logging.FieldDelivered, stats.Delivered, logging.FieldPageLimit, limit)
			stats.Pauses++
			if err := d.trigger.Wait(ctx); err != nil {
				return stats, fmt.Errorf("wait after page %d: %w", page.Number, err)
			}
			sinceResume = 0
		}
	}

	return stats, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
