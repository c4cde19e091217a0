package deliver

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/cancelreader"
	"golang.org/x/term"
)

// Key codes understood by KeyTrigger in raw mode.
const (
	keyCtrlC = 0x03
	keyEnter = '\r'
	keyLF    = '\n'
	keyEsc   = 0x1b
	keySpace = ' '
)

// Immediate returns a Trigger that never blocks. It still honours
// cancellation.
func Immediate() Trigger {
	return TriggerFunc(func(ctx context.Context) error {
		return ctx.Err()
	})
}

// KeyTrigger reads continue/abort keys from a terminal.
//
// On a TTY the terminal is switched to raw mode for the duration of Wait:
// Enter or Space continue, Esc, q or Ctrl-C abort. On anything else a line
// is read: "q", "quit" or "abort" abort, any other line continues, and end
// of input aborts.
type KeyTrigger struct {
	in     *os.File
	prompt io.Writer
}

// NewKeyTrigger creates a KeyTrigger reading from in and writing prompts to
// prompt (which may be nil).
func NewKeyTrigger(in *os.File, prompt io.Writer) *KeyTrigger {
	return &KeyTrigger{in: in, prompt: prompt}
}

// IsTerminal reports whether the trigger reads from a terminal.
func (k *KeyTrigger) IsTerminal() bool {
	return term.IsTerminal(int(k.in.Fd()))
}

// Wait implements Trigger. Cancelling ctx interrupts the pending read, so no
// key press is consumed after Wait returns.
func (k *KeyTrigger) Wait(ctx context.Context) error {
	if k.prompt != nil {
		_, _ = fmt.Fprint(k.prompt, "Press Enter to continue, Esc to abort... ")
	}

	read := k.readLine
	if k.IsTerminal() {
		state, err := term.MakeRaw(int(k.in.Fd()))
		if err != nil {
			return fmt.Errorf("enter raw mode: %w", err)
		}
		defer func() { _ = term.Restore(int(k.in.Fd()), state) }()
		read = k.readKey
	}

	reader, err := cancelreader.NewReader(k.in)
	if err != nil {
		return fmt.Errorf("open key reader: %w", err)
	}
	defer func() { _ = reader.Close() }()

	result := make(chan error, 1)
	go func() { result <- read(reader) }()

	select {
	case <-ctx.Done():
		if reader.Cancel() {
			<-result
		}
		err = ctx.Err()
	case err = <-result:
	}

	if k.prompt != nil {
		_, _ = fmt.Fprint(k.prompt, "\r\n")
	}
	return err
}

func (k *KeyTrigger) readKey(r io.Reader) error {
	buf := make([]byte, 1)
	for {
		if _, err := r.Read(buf); err != nil {
			return fmt.Errorf("%w: read key: %w", ErrAborted, err)
		}
		if ok, decision := classifyKey(buf[0]); ok {
			return decision
		}
	}
}

// readLine reads a byte at a time so nothing past the newline is consumed.
func (k *KeyTrigger) readLine(r io.Reader) error {
	var line strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n == 1 {
			if buf[0] == '\n' {
				break
			}
			line.WriteByte(buf[0])
		}
		if err != nil {
			if line.Len() == 0 {
				return fmt.Errorf("%w: read input: %w", ErrAborted, err)
			}
			break
		}
	}
	return classifyLine(line.String())
}

// classifyKey maps a raw key byte to a decision; ok is false for keys that
// carry no meaning.
func classifyKey(b byte) (bool, error) {
	switch b {
	case keyEnter, keyLF, keySpace:
		return true, nil
	case keyEsc, keyCtrlC, 'q', 'Q':
		return true, ErrAborted
	default:
		return false, nil
	}
}

func classifyLine(line string) error {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "q", "quit", "abort":
		return ErrAborted
	default:
		return nil
	}
}
