package sectionobserver

import "time"

// frameInterval approximates one display refresh at 60Hz.
const frameInterval = 16 * time.Millisecond

// TimerScheduler runs callbacks on runtime timers. It stands in for the
// browser event loop outside of js/wasm builds.
type TimerScheduler struct {
	// Frame overrides the simulated frame interval.
	Frame time.Duration
}

func (t TimerScheduler) RequestFrame(fn func()) {
	d := t.Frame
	if d <= 0 {
		d = frameInterval
	}
	time.AfterFunc(d, fn)
}

func (t TimerScheduler) AfterFunc(d time.Duration, fn func()) (stop func()) {
	timer := time.AfterFunc(d, fn)
	return func() { timer.Stop() }
}
