package session

import "time"

// Timer is a pending scheduled call. *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d on its own goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ClockScheduler schedules on the wall clock.
func ClockScheduler() Scheduler { return clockScheduler{} }
