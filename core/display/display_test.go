package display

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"josephlewis.net/lsd/core/duino"
	"josephlewis.net/lsd/core/logger"
)

func TestWrapMessage(t *testing.T) {
	cases := map[string]struct {
		message string
		want    []string
	}{
		"empty":     {"", []string{""}},
		"one line":  {"short", []string{"short"}},
		"full line": {"exactly 16 chars", []string{"exactly 16 chars"}},
		"hard wrap mid-word": {
			"a message that wraps over",
			[]string{"a message that w", "raps over"},
		},
		"space at the wrap point is swallowed": {
			"sixteen chars ab and the rest",
			[]string{"sixteen chars ab", "and the rest"},
		},
		"second line truncated": {
			"this is a really long message that can never fit on the screen",
			[]string{"this is a really", "long message tha"},
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			assert.Equal(t, tc.want, WrapMessage(tc.message, 16))
		})
	}
}

// fakePins records pin operations and serves a scripted button state.
type fakePins struct {
	mu      sync.Mutex
	modes   map[int]byte
	levels  map[int]byte
	pressed bool
}

func newFakePins() *fakePins {
	return &fakePins{modes: make(map[int]byte), levels: make(map[int]byte)}
}

func (f *fakePins) PinMode(ctx context.Context, pin int, mode byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modes[pin] = mode
	return nil
}

func (f *fakePins) DigitalWrite(ctx context.Context, pin int, level byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.levels[pin] = level
	return nil
}

func (f *fakePins) DigitalRead(ctx context.Context, pin int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pressed, nil
}

func (f *fakePins) press() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pressed = true
}

func (f *fakePins) level(pin int) byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.levels[pin]
}

// fakeScreen records rendering operations.
type fakeScreen struct {
	mu  sync.Mutex
	ops []string
}

func (f *fakeScreen) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "clear")
	return nil
}

func (f *fakeScreen) PrintAt(ctx context.Context, col, row int, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, fmt.Sprintf("print(%d,%d,%q)", col, row, text))
	return nil
}

func (f *fakeScreen) Columns() int { return 16 }
func (f *fakeScreen) Rows() int    { return 2 }

func (f *fakeScreen) snapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ops...)
}

func testOptions() Options {
	return Options{
		LEDPin:        6,
		ButtonPin:     2,
		BlinkInterval: time.Millisecond,
		PollInterval:  time.Millisecond,
		AckText:       "OK ;-)",
		AckHold:       0,
	}
}

func newTestDisplay(t *testing.T, pins *fakePins, screen *fakeScreen) *Display {
	t.Helper()

	var buf bytes.Buffer
	d, err := New(context.Background(), pins, screen, testOptions(), logger.NewJsonLinesLogRecorder(&buf))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestNew(t *testing.T) {
	pins := newFakePins()
	screen := &fakeScreen{}
	newTestDisplay(t, pins, screen)

	assert.Equal(t, duino.Output, pins.modes[6])
	assert.Equal(t, duino.Input, pins.modes[2])
	assert.Equal(t, []string{"clear"}, screen.snapshot())
}

func TestShow(t *testing.T) {
	pins := newFakePins()
	screen := &fakeScreen{}
	d := newTestDisplay(t, pins, screen)

	if err := d.Show(context.Background(), "deploy finished ok"); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, []string{
		"clear",
		"clear",
		`print(0,0,"deploy finished ")`,
		`print(0,1,"ok")`,
	}, screen.snapshot())

	// Nothing acked yet.
	assert.Equal(t, "", d.LastAcked())

	// The LED blinks while the message is pending.
	assert.Eventually(t, func() bool {
		return pins.level(6) == duino.High
	}, time.Second, time.Millisecond)
}

func TestAck(t *testing.T) {
	pins := newFakePins()
	screen := &fakeScreen{}
	d := newTestDisplay(t, pins, screen)

	if err := d.Show(context.Background(), "lunch time"); err != nil {
		t.Fatal(err)
	}

	pins.press()

	assert.Eventually(t, func() bool {
		return d.LastAcked() == "lunch time"
	}, time.Second, time.Millisecond)

	// Confirmation text then a blank screen.
	assert.Eventually(t, func() bool {
		ops := screen.snapshot()
		return len(ops) > 0 && ops[len(ops)-1] == "clear"
	}, time.Second, time.Millisecond)
	assert.Contains(t, screen.snapshot(), `print(0,0,"OK ;-)")`)

	// The LED settles dark once acked.
	assert.Eventually(t, func() bool {
		return pins.level(6) == duino.Low
	}, time.Second, time.Millisecond)
}

func TestAck_staleGeneration(t *testing.T) {
	pins := newFakePins()
	screen := &fakeScreen{}
	d := newTestDisplay(t, pins, screen)

	if err := d.Show(context.Background(), "current message"); err != nil {
		t.Fatal(err)
	}

	// An ack from a notifier belonging to an older message is ignored.
	d.ack(0)
	assert.Equal(t, "", d.LastAcked())
}

func TestShow_replacesPending(t *testing.T) {
	pins := newFakePins()
	screen := &fakeScreen{}
	d := newTestDisplay(t, pins, screen)
	ctx := context.Background()

	if err := d.Show(ctx, "first"); err != nil {
		t.Fatal(err)
	}
	if err := d.Show(ctx, "second"); err != nil {
		t.Fatal(err)
	}

	pins.press()

	assert.Eventually(t, func() bool {
		return d.LastAcked() == "second"
	}, time.Second, time.Millisecond)
}
