package display

import (
	"context"
	"sync"
	"time"
)

// watcher polls the key switch and fires the callback once when it reads
// high.
type watcher struct {
	pins     Pins
	pin      int
	interval time.Duration
	callback func()
	onError  func(error)

	stopOnce sync.Once
	stop     chan struct{}
}

func startWatcher(pins Pins, pin int, interval time.Duration, callback func(), onError func(error)) *watcher {
	w := &watcher{
		pins:     pins,
		pin:      pin,
		interval: interval,
		callback: callback,
		onError:  onError,
		stop:     make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *watcher) run() {
	ctx := context.Background()

	for {
		select {
		case <-w.stop:
			return
		case <-time.After(w.interval):
		}

		pressed, err := w.pins.DigitalRead(ctx, w.pin)
		if err != nil {
			w.onError(err)
			return
		}
		if pressed {
			w.callback()
			return
		}
	}
}

// Stop signals the watcher to quit. Safe to call multiple times.
func (w *watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
}
