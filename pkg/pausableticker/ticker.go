package pausableticker

import (
	"sync"
	"time"
)

// Ticker paces the frame loop. Each tick carries the wall time elapsed since
// the previous tick, not counting time spent paused, so a resumed game does
// not see one huge frame.
type Ticker struct {
	C <-chan time.Duration // The channel on which elapsed times are delivered.

	mutex    sync.Mutex
	pause    chan bool
	paused   bool
	stopped  bool
	stop     chan struct{}
	done     chan struct{}
	ticker   *time.Ticker
	interval time.Duration
}

func New(d time.Duration) *Ticker {
	c := make(chan time.Duration)
	t := &Ticker{
		C:        c,
		pause:    make(chan bool),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		ticker:   time.NewTicker(d),
		interval: d,
	}

	go t.run(c, time.Now())

	return t
}

// waitResume blocks until the ticker is resumed. It returns false if the
// ticker was stopped instead.
func (t *Ticker) waitResume() bool {
	for {
		select {
		case shouldPause := <-t.pause:
			if !shouldPause {
				t.ticker.Reset(t.interval)
				select {
				case <-t.ticker.C:
				default:
				}
				return true
			}
		case <-t.stop:
			return false
		}
	}
}

// hold handles a pause request. It returns false if the ticker was stopped
// while paused.
func (t *Ticker) hold(shouldPause bool, last *time.Time) bool {
	if !shouldPause {
		return true
	}
	if !t.waitResume() {
		return false
	}
	*last = time.Now()
	return true
}

func (t *Ticker) run(c chan<- time.Duration, last time.Time) {
	defer close(t.done)

	for {
		select {
		case now := <-t.ticker.C:
			elapsed := now.Sub(last)
			if elapsed < 0 {
				elapsed = 0
			}
			last = now

			select {
			case c <- elapsed:
			case shouldPause := <-t.pause:
				if !t.hold(shouldPause, &last) {
					return
				}
			case <-t.stop:
				return
			}
		case shouldPause := <-t.pause:
			if !t.hold(shouldPause, &last) {
				return
			}
		case <-t.stop:
			return
		}
	}
}

func (t *Ticker) setPaused(paused bool) {
	t.mutex.Lock()
	t.paused = paused
	t.mutex.Unlock()
}

func (t *Ticker) send(pause bool) bool {
	select {
	case t.pause <- pause:
		return true
	case <-t.done:
		return false
	}
}

func (t *Ticker) Pause() {
	if t.send(true) {
		t.setPaused(true)
	}
}

func (t *Ticker) Paused() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.paused
}

func (t *Ticker) Resume() {
	if t.send(false) {
		t.setPaused(false)
	}
}

// Stop ends the ticker. It is safe to call more than once.
func (t *Ticker) Stop() {
	t.mutex.Lock()
	if t.stopped {
		t.mutex.Unlock()
		return
	}
	t.stopped = true
	close(t.stop)
	t.mutex.Unlock()

	<-t.done
	t.ticker.Stop()
}

func (t *Ticker) Stopped() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.stopped
}
