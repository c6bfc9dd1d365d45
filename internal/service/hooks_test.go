package service

import (
	"context"
	"time"
)

// SetSleepFn replaces the pacing sleep so tests can observe pauses
// without waiting for them.
func (s *PlaceService) SetSleepFn(fn func(ctx context.Context, d time.Duration)) {
	s.sleepFn = fn
}
