package display

import (
	"context"
	"sync"
	"time"

	"josephlewis.net/lsd/core/duino"
)

// blinker toggles the notification LED until stopped, leaving it dark.
type blinker struct {
	pins     Pins
	pin      int
	interval time.Duration
	onError  func(error)

	stopOnce sync.Once
	stop     chan struct{}
}

func startBlinker(pins Pins, pin int, interval time.Duration, onError func(error)) *blinker {
	b := &blinker{
		pins:     pins,
		pin:      pin,
		interval: interval,
		onError:  onError,
		stop:     make(chan struct{}),
	}
	go b.run()
	return b
}

func (b *blinker) run() {
	ctx := context.Background()
	level := duino.High

	for {
		if err := b.pins.DigitalWrite(ctx, b.pin, level); err != nil {
			b.onError(err)
			return
		}
		if level == duino.High {
			level = duino.Low
		} else {
			level = duino.High
		}

		select {
		case <-b.stop:
			if err := b.pins.DigitalWrite(ctx, b.pin, duino.Low); err != nil {
				b.onError(err)
			}
			return
		case <-time.After(b.interval):
		}
	}
}

// Stop signals the blinker to quit. Safe to call multiple times and from the
// watcher callback.
func (b *blinker) Stop() {
	b.stopOnce.Do(func() { close(b.stop) })
}
