package usecase

import "time"

// DelayScheduler runs every task once after a fixed delay, on its own goroutine.
type DelayScheduler struct {
	delay time.Duration
}

func NewDelayScheduler(delay time.Duration) *DelayScheduler {
	return &DelayScheduler{delay: delay}
}

func (that *DelayScheduler) Schedule(task func()) {
	time.AfterFunc(that.delay, task)
}
