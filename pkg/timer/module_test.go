package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleFiresInOrder(t *testing.T) {
	s := NewScheduler()
	var order []string

	s.Schedule(300*time.Millisecond, nil, func() { order = append(order, "c") })
	s.Schedule(100*time.Millisecond, nil, func() { order = append(order, "a") })
	s.Schedule(100*time.Millisecond, nil, func() { order = append(order, "b") })
	require.Equal(t, 3, s.Pending())

	assert.Equal(t, 0, s.Advance(99*time.Millisecond))
	assert.Equal(t, 2, s.Advance(time.Millisecond))
	assert.Equal(t, []string{"a", "b"}, order)

	assert.Equal(t, 1, s.Advance(time.Second))
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 1100*time.Millisecond, s.Now())
	assert.Equal(t, 0, s.Pending())
}

func TestCallbackSeesDeadline(t *testing.T) {
	s := NewScheduler()
	var at time.Duration
	s.Schedule(250*time.Millisecond, nil, func() { at = s.Now() })
	s.Advance(time.Second)
	assert.Equal(t, 250*time.Millisecond, at)
}

func TestStaleTokenDropsCallback(t *testing.T) {
	s := NewScheduler()
	generation := 1
	captured := generation
	token := TokenFunc(func() bool { return generation == captured })

	ran := false
	timer := s.Schedule(time.Second, token, func() { ran = true })

	generation++
	assert.Equal(t, 0, s.Advance(2*time.Second))
	assert.False(t, ran)
	assert.True(t, timer.Expired())
}

func TestStop(t *testing.T) {
	s := NewScheduler()
	ran := false
	timer := s.Schedule(time.Second, nil, func() { ran = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	s.Advance(2 * time.Second)
	assert.False(t, ran)
	assert.Equal(t, time.Duration(0), timer.TimeLeft())
}

func TestPauseAndResume(t *testing.T) {
	s := NewScheduler()
	ran := false
	timer := s.AfterFunc(time.Second, nil, func() { ran = true })
	assert.True(t, timer.Paused())
	assert.Equal(t, time.Second, timer.TimeLeft())

	require.True(t, timer.Start())
	assert.False(t, timer.Start())
	s.Advance(400 * time.Millisecond)
	assert.Equal(t, 600*time.Millisecond, timer.TimeLeft())

	require.True(t, timer.Pause())
	s.Advance(5 * time.Second)
	assert.False(t, ran)
	assert.Equal(t, 600*time.Millisecond, timer.TimeLeft())

	timer.Start()
	s.Advance(599 * time.Millisecond)
	assert.False(t, ran)
	s.Advance(time.Millisecond)
	assert.True(t, ran)
}

func TestSetTimeLeft(t *testing.T) {
	s := NewScheduler()
	count := 0
	timer := s.Schedule(time.Second, nil, func() { count++ })

	s.Advance(500 * time.Millisecond)
	assert.True(t, timer.SetTimeLeft(100*time.Millisecond))
	s.Advance(100 * time.Millisecond)
	assert.Equal(t, 1, count)

	s.Advance(time.Second)
	assert.Equal(t, 1, count, "the original deadline is discarded")
	assert.False(t, timer.SetTimeLeft(time.Second))
}

func TestCallbackCanSchedule(t *testing.T) {
	s := NewScheduler()
	var order []int
	s.Schedule(100*time.Millisecond, nil, func() {
		order = append(order, 1)
		s.Schedule(100*time.Millisecond, nil, func() { order = append(order, 2) })
	})

	assert.Equal(t, 2, s.Advance(time.Second))
	assert.Equal(t, []int{1, 2}, order)
}

func TestNilTimerTimeLeft(t *testing.T) {
	var timer *Timer
	assert.Equal(t, time.Duration(0), timer.TimeLeft())
}
