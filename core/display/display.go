// Package display owns the message lifecycle: rendering to the LCD, blinking
// the notification LED and promoting messages to acknowledged when the key
// switch is pressed.
package display

import (
	"context"
	"log"
	"sync"
	"time"

	"josephlewis.net/lsd/core/duino"
	"josephlewis.net/lsd/core/logger"
)

// Pins is the subset of the board used for the LED and key switch.
type Pins interface {
	PinMode(ctx context.Context, pin int, mode byte) error
	DigitalWrite(ctx context.Context, pin int, level byte) error
	DigitalRead(ctx context.Context, pin int) (bool, error)
}

// Screen is the subset of the LCD the display needs.
type Screen interface {
	Clear(ctx context.Context) error
	PrintAt(ctx context.Context, col, row int, text string) error
	Columns() int
	Rows() int
}

// Options configure the physical wiring and timing.
type Options struct {
	LEDPin        int
	ButtonPin     int
	BlinkInterval time.Duration
	PollInterval  time.Duration

	// AckText is shown for AckHold after the key switch fires.
	AckText string
	AckHold time.Duration
}

// Display coordinates the LCD, LED and key switch around a single message.
type Display struct {
	pins   Pins
	screen Screen
	opts   Options
	events *logger.Logger

	mu      sync.Mutex
	current string
	acked   string
	blinker *blinker
	watcher *watcher
	// generation guards against acks from notifiers that were already
	// replaced by a newer message.
	generation int
}

// New sets up the LED and key switch pins and blanks the screen.
func New(ctx context.Context, pins Pins, screen Screen, opts Options, events *logger.Logger) (*Display, error) {
	if err := pins.PinMode(ctx, opts.LEDPin, duino.Output); err != nil {
		return nil, err
	}
	if err := pins.PinMode(ctx, opts.ButtonPin, duino.Input); err != nil {
		return nil, err
	}

	d := &Display{
		pins:   pins,
		screen: screen,
		opts:   opts,
		events: events,
	}

	return d, screen.Clear(ctx)
}

// LastAcked returns the most recently acknowledged message.
func (d *Display) LastAcked() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.acked
}

// Show renders the message and starts the notifiers. Any previous unacked
// message is replaced.
func (d *Display) Show(ctx context.Context, message string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopNotifiersLocked()

	if err := d.render(ctx, message); err != nil {
		return err
	}
	d.current = message

	d.generation++
	generation := d.generation
	d.blinker = startBlinker(d.pins, d.opts.LEDPin, d.opts.BlinkInterval, d.hardwareError)
	d.watcher = startWatcher(d.pins, d.opts.ButtonPin, d.opts.PollInterval, func() {
		d.ack(generation)
	}, d.hardwareError)

	return nil
}

// Close stops the notifiers and blanks the screen.
func (d *Display) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopNotifiersLocked()
	return d.screen.Clear(context.Background())
}

// ack promotes the current message to acknowledged. Stale generations are
// ignored, their message was already replaced.
func (d *Display) ack(generation int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if generation != d.generation {
		return
	}

	d.stopNotifiersLocked()
	d.acked = d.current

	if err := d.events.Record(&logger.MessageAcked{Message: d.acked}); err != nil {
		log.Printf("couldn't record ack: %v", err)
	}

	ctx := context.Background()
	if err := d.render(ctx, d.opts.AckText); err != nil {
		d.hardwareError(err)
		return
	}
	time.Sleep(d.opts.AckHold)
	if err := d.screen.Clear(ctx); err != nil {
		d.hardwareError(err)
	}
}

func (d *Display) stopNotifiersLocked() {
	if d.watcher != nil {
		d.watcher.Stop()
		d.watcher = nil
	}
	if d.blinker != nil {
		d.blinker.Stop()
		d.blinker = nil
	}
}

func (d *Display) render(ctx context.Context, message string) error {
	if err := d.screen.Clear(ctx); err != nil {
		return err
	}

	lines := WrapMessage(message, d.screen.Columns())
	if rows := d.screen.Rows(); len(lines) > rows {
		lines = lines[:rows]
	}

	for row, line := range lines {
		if line == "" {
			continue
		}
		if err := d.screen.PrintAt(ctx, 0, row, line); err != nil {
			return err
		}
	}
	return nil
}

func (d *Display) hardwareError(err error) {
	log.Printf("board error: %v", err)
	if recordErr := d.events.Record(&logger.SerialError{
		Context:      "display",
		ErrorMessage: err.Error(),
	}); recordErr != nil {
		log.Printf("couldn't record board error: %v", recordErr)
	}
}

// WrapMessage splits a message into up to two display lines. The second line
// starts one character later when the message breaks exactly on a space, so
// words that end at the display edge don't drag a blank into line two.
func WrapMessage(message string, cols int) []string {
	if len(message) <= cols {
		return []string{message}
	}

	first := message[:cols]

	rest := message[cols:]
	if message[cols] == ' ' {
		rest = message[cols+1:]
	}
	if len(rest) > cols {
		rest = rest[:cols]
	}

	return []string{first, rest}
}
