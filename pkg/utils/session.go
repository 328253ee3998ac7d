package utils

import (
	"context"
	"sync/atomic"
	"time"
)

// Session tracks one run of the simulation: its lifetime and how many
// frames it got through.
type Session struct {
	context   context.Context
	cancel    context.CancelFunc
	startTime time.Time
	frames    atomic.Uint64
}

func NewSession(ctx context.Context) *Session {
	ctx, cancel := context.WithCancel(ctx)
	return &Session{
		context:   ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
}

func (s *Session) Started() time.Time {
	return s.startTime
}

func (s *Session) Ctx() context.Context {
	return s.context
}

func (s *Session) IsDone() bool {
	return s.context.Err() != nil
}

func (s *Session) Cancel() {
	s.cancel()
}

// Frame records that a frame was simulated.
func (s *Session) Frame() {
	s.frames.Add(1)
}

func (s *Session) Frames() uint64 {
	return s.frames.Load()
}

// FrameRate returns the frames simulated per second of wall time.
func (s *Session) FrameRate() float64 {
	elapsed := time.Since(s.startTime).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(s.Frames()) / elapsed
}
