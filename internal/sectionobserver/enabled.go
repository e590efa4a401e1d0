package sectionobserver

import "sync"

// EnabledSource decides whether a consumer wants observation.
type EnabledSource interface {
	Enabled() bool
}

// Static is a fixed enabled state.
type Static bool

func (b Static) Enabled() bool { return bool(b) }

// Func is a predicate evaluated at every reconciliation.
type Func func() bool

func (f Func) Enabled() bool {
	if f == nil {
		return true
	}
	return f()
}

// Flag is a reactive boolean. Consumers mounted with a Flag reconcile
// whenever it changes.
type Flag struct {
	mu       sync.Mutex
	v        bool
	next     uint64
	watchers map[uint64]func()
}

// NewFlag returns a Flag holding v.
func NewFlag(v bool) *Flag {
	return &Flag{v: v, watchers: make(map[uint64]func())}
}

func (f *Flag) Enabled() bool {
	if f == nil {
		return true
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.v
}

// Set stores v and notifies watchers if the value changed.
func (f *Flag) Set(v bool) {
	f.mu.Lock()
	if f.v == v {
		f.mu.Unlock()
		return
	}
	f.v = v
	fns := make([]func(), 0, len(f.watchers))
	for _, fn := range f.watchers {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Watch registers fn to run after every change.
func (f *Flag) Watch(fn func()) (cancel func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.watchers == nil {
		f.watchers = make(map[uint64]func())
	}
	f.next++
	id := f.next
	f.watchers[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.watchers, id)
	}
}

func resolveEnabled(src EnabledSource) bool {
	if src == nil {
		return true
	}
	return src.Enabled()
}
