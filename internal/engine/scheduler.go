package engine

import "time"

// TaskHandle is a cancellable scheduled task. Cancel reports whether the
// task was stopped before running, mirroring time.Timer.Stop.
type TaskHandle interface {
	Cancel() bool
}

// Scheduler runs a function after a delay. The production implementation
// uses real timers; tests substitute one they drive by hand.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) TaskHandle
}

// TimerScheduler schedules via time.AfterFunc.
type TimerScheduler struct{}

func (TimerScheduler) Schedule(d time.Duration, fn func()) TaskHandle {
	return timerHandle{t: time.AfterFunc(d, fn)}
}

type timerHandle struct {
	t *time.Timer
}

func (h timerHandle) Cancel() bool { return h.t.Stop() }
