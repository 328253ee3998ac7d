package timer

import (
	"container/heap"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	stateIdle = iota
	stateActive
	stateExpired
)

// A Token decides whether a callback is still wanted when its timer comes
// due. Tokens are usually captured from some generation counter when the
// timer is created.
type Token interface {
	Valid() bool
}

// TokenFunc adapts a function to a Token.
type TokenFunc func() bool

func (f TokenFunc) Valid() bool { return f() }

// The Timer type represents a single deferred callback on a Scheduler's
// engine clock. A Timer must be created with Scheduler.AfterFunc.
type Timer struct {
	scheduler *Scheduler
	fn        func()
	token     Token

	state    int
	duration time.Duration // time left while idle
	deadline time.Duration // engine time at which an active timer fires
	version  uint64
}

// Start starts the timer. It will call its function once the scheduler's
// clock has advanced by the timer's duration.
func (t *Timer) Start() bool {
	if t.state != stateIdle {
		return false
	}
	t.state = stateActive
	t.deadline = t.scheduler.now + t.duration
	t.scheduler.push(t)
	return true
}

// Pause pauses the timer until Start is called again. The next Start waits
// for the rest of the duration.
func (t *Timer) Pause() bool {
	if t.state != stateActive {
		return false
	}
	t.state = stateIdle
	t.duration = t.deadline - t.scheduler.now
	t.version++
	return true
}

// Paused returns true if the timer is in idle state, either because Start()
// hasn't been called yet or because Pause() was called.
func (t *Timer) Paused() bool {
	return t.state == stateIdle
}

// SetTimeLeft adjusts the point in time the timer will fire to duration d
// from now. It returns false if the timer already expired, true otherwise.
func (t *Timer) SetTimeLeft(d time.Duration) bool {
	switch t.state {
	case stateExpired:
		return false
	case stateActive:
		t.version++
		t.deadline = t.scheduler.now + d
		t.scheduler.push(t)
	default:
		t.duration = d
	}
	return true
}

// Stop prevents the Timer from firing. It returns true if the call stops
// the timer, false if the timer has already expired or been stopped.
func (t *Timer) Stop() bool {
	if t.state != stateActive {
		return false
	}
	t.state = stateExpired
	t.version++
	return true
}

// TimeLeft returns the duration left to run before the timer expires.
// TimeLeft is safe to be called on a nil timer and will return 0 in that
// case.
func (t *Timer) TimeLeft() time.Duration {
	if t == nil {
		return 0
	}

	switch t.state {
	case stateIdle:
		return t.duration
	case stateActive:
		return t.deadline - t.scheduler.now
	case stateExpired:
		return 0
	default:
		panic("unhandled timer state")
	}
}

func (t *Timer) Expired() bool {
	return t.state == stateExpired
}

type entry struct {
	timer    *Timer
	deadline time.Duration
	version  uint64
	seq      uint64
}

type queue []entry

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].deadline != q[j].deadline {
		return q[i].deadline < q[j].deadline
	}
	return q[i].seq < q[j].seq
}
func (q queue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x interface{}) { *q = append(*q, x.(entry)) }
func (q *queue) Pop() interface{} {
	old := *q
	n := len(old)
	e := old[n-1]
	*q = old[:n-1]
	return e
}

// Scheduler owns an engine clock and the timers waiting on it. Timers only
// fire from Advance, so callbacks never interrupt a simulation tick. A
// Scheduler is not safe for concurrent use.
type Scheduler struct {
	now     time.Duration
	pending queue
	seq     uint64
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the engine time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

func (s *Scheduler) push(t *Timer) {
	s.seq++
	heap.Push(&s.pending, entry{
		timer:    t,
		deadline: t.deadline,
		version:  t.version,
		seq:      s.seq,
	})
}

// AfterFunc returns an idle timer that calls f d after it is started, as
// long as token is nil or still valid at that point.
func (s *Scheduler) AfterFunc(d time.Duration, token Token, f func()) *Timer {
	return &Timer{
		scheduler: s,
		fn:        f,
		token:     token,
		duration:  d,
	}
}

// Schedule creates and starts a timer.
func (s *Scheduler) Schedule(d time.Duration, token Token, f func()) *Timer {
	t := s.AfterFunc(d, token, f)
	t.Start()
	return t
}

// Advance moves the engine clock forward by elapsed and runs every timer
// that came due, in deadline order. It returns the number of callbacks
// that ran.
func (s *Scheduler) Advance(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	target := s.now + elapsed
	fired := 0

	for s.pending.Len() > 0 {
		next := s.pending[0]
		if next.deadline > target {
			break
		}
		heap.Pop(&s.pending)

		t := next.timer
		if t.state != stateActive || t.version != next.version {
			continue
		}

		s.now = next.deadline
		t.state = stateExpired
		if t.token != nil && !t.token.Valid() {
			log.Debug().Dur("deadline", next.deadline).Msg("dropping stale timer")
			continue
		}

		t.fn()
		fired++
	}

	s.now = target
	return fired
}

// Pending returns the number of active timers.
func (s *Scheduler) Pending() (count int) {
	for _, e := range s.pending {
		if e.timer.state == stateActive && e.timer.version == e.version {
			count++
		}
	}
	return
}
