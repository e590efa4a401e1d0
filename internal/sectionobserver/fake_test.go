package sectionobserver

import (
	"sort"
	"time"
)

type fakeWatcher struct {
	id      SectionID
	opts    WatchOptions
	fn      func(bool)
	stopped bool
}

type scrollCall struct {
	id       SectionID
	behavior Behavior
}

// fakeDoc is an in-memory page.
type fakeDoc struct {
	rects     map[SectionID]Rect
	headers   map[string]float64
	watchers  []*fakeWatcher
	listeners map[int]func()
	nextL     int
	scrolls   []scrollCall
}

func newFakeDoc() *fakeDoc {
	return &fakeDoc{
		rects:     map[SectionID]Rect{},
		headers:   map[string]float64{},
		listeners: map[int]func(){},
	}
}

func (d *fakeDoc) Rect(id SectionID) (Rect, bool) {
	r, ok := d.rects[id]
	return r, ok
}

func (d *fakeDoc) HeaderHeight(selector string) (float64, bool) {
	h, ok := d.headers[selector]
	return h, ok
}

func (d *fakeDoc) ScrollIntoView(id SectionID, behavior Behavior) bool {
	if _, ok := d.rects[id]; !ok {
		return false
	}
	d.scrolls = append(d.scrolls, scrollCall{id: id, behavior: behavior})
	return true
}

func (d *fakeDoc) Observe(id SectionID, opts WatchOptions, fn func(bool)) (func(), bool) {
	if _, ok := d.rects[id]; !ok {
		return nil, false
	}
	w := &fakeWatcher{id: id, opts: opts, fn: fn}
	d.watchers = append(d.watchers, w)
	return func() { w.stopped = true }, true
}

func (d *fakeDoc) OnScroll(fn func()) func() {
	d.nextL++
	id := d.nextL
	d.listeners[id] = fn
	return func() { delete(d.listeners, id) }
}

// live returns the watchers that have not been stopped.
func (d *fakeDoc) live() []*fakeWatcher {
	var out []*fakeWatcher
	for _, w := range d.watchers {
		if !w.stopped {
			out = append(out, w)
		}
	}
	return out
}

// intersect fires every watcher ever created for id, stale ones included,
// the way a late browser callback would.
func (d *fakeDoc) intersect(id SectionID, in bool) {
	for _, w := range d.watchers {
		if w.id == id {
			w.fn(in)
		}
	}
}

func (d *fakeDoc) scroll() {
	keys := make([]int, 0, len(d.listeners))
	for k := range d.listeners {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		d.listeners[k]()
	}
}

type fakeTimer struct {
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

// fakeSched is a manually driven event loop.
type fakeSched struct {
	now    time.Duration
	frames []func()
	timers []*fakeTimer
}

func (s *fakeSched) RequestFrame(fn func()) { s.frames = append(s.frames, fn) }

func (s *fakeSched) AfterFunc(d time.Duration, fn func()) func() {
	t := &fakeTimer{at: s.now + d, fn: fn}
	s.timers = append(s.timers, t)
	return func() { t.stopped = true }
}

// flushFrames runs the frames queued so far.
func (s *fakeSched) flushFrames() int {
	pending := s.frames
	s.frames = nil
	for _, fn := range pending {
		fn()
	}
	return len(pending)
}

func (s *fakeSched) advance(d time.Duration) {
	s.now += d
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= s.now {
			t.fired = true
			t.fn()
		}
	}
}

// landingPage lays out the default sections 600px tall, scrolled so that
// hero straddles the reference line.
func landingPage() *fakeDoc {
	d := newFakeDoc()
	d.rects["hero"] = Rect{Top: -10, Bottom: 590}
	d.rects["skills"] = Rect{Top: 590, Bottom: 1190}
	d.rects["work"] = Rect{Top: 1190, Bottom: 1790}
	d.rects["projects"] = Rect{Top: 1790, Bottom: 2390}
	return d
}

// scrollBy shifts every section up by dy pixels.
func (d *fakeDoc) scrollBy(dy float64) {
	for id, r := range d.rects {
		d.rects[id] = Rect{Top: r.Top - dy, Bottom: r.Bottom - dy}
	}
}
