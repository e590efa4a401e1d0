package sectionobserver

import (
	"log/slog"
	"sync"

	"github.com/mahdiarghyani/portfolio/internal/logfields"
)

// Store is the page-wide observation state shared by every Consumer.
//
// Invariants:
//   - watchers and the scroll listener exist iff users > 0;
//   - config and active are reset to their initial values when users
//     drops back to zero;
//   - every install and teardown bumps the epoch, and callbacks created
//     under an older epoch never mutate state.
type Store struct {
	doc   Document
	sched Scheduler
	log   *slog.Logger

	mu           sync.Mutex
	sig          signalState
	users        int
	config       Config
	disposables  []func()
	scrollStop   func()
	framePending bool
	manualSeq    uint64
	manualStop   func()
	subs         []subscriber
	nextSub      uint64
}

type subscriber struct {
	id uint64
	fn func(SectionID)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug records.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns a Store bound to doc. A nil doc means there is no browsing
// context; the Store then ignores every DOM-facing call. A nil sched falls
// back to TimerScheduler.
func New(doc Document, sched Scheduler, opts ...Option) *Store {
	if sched == nil {
		sched = TimerScheduler{}
	}
	s := &Store{
		doc:    doc,
		sched:  sched,
		log:    slog.Default(),
		config: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Active returns the current active section, or None.
func (s *Store) Active() SectionID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sig.active
}

// Users returns the number of enabled consumers.
func (s *Store) Users() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users
}

// Config returns a copy of the configuration in effect.
func (s *Store) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.clone()
}

// ManualScroll reports whether a programmatic scroll is in flight.
func (s *Store) ManualScroll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sig.manual
}

// Subscribe calls fn with the new value every time the active section
// changes. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(SectionID)) (cancel func()) {
	s.mu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// SetActiveSection overrides the active section. It bypasses both signal
// sources and works without a browsing context.
func (s *Store) SetActiveSection(id SectionID) {
	s.log.Debug("Active section overridden", logfields.Section(string(id)))
	s.dispatch(manualOverride{id: id})
}

// ScrollToSection scrolls the section into view and marks it active right
// away. Passive scroll corrections are suppressed until the scroll has had
// time to settle, after which one corrective pass runs.
func (s *Store) ScrollToSection(id SectionID, behavior Behavior) {
	if s.doc == nil {
		return
	}
	if _, ok := s.doc.Rect(id); !ok {
		return
	}
	if behavior == "" {
		behavior = BehaviorSmooth
	}

	s.mu.Lock()
	s.sig.manual = true
	s.manualSeq++
	seq := s.manualSeq
	prev := s.manualStop
	s.manualStop = nil
	s.mu.Unlock()
	if prev != nil {
		prev()
	}

	s.dispatch(manualOverride{id: id})
	s.doc.ScrollIntoView(id, behavior)

	stop := s.sched.AfterFunc(behavior.settle(), func() { s.endManualScroll(seq) })
	s.mu.Lock()
	if s.manualSeq == seq && s.sig.manual {
		s.manualStop = stop
	}
	s.mu.Unlock()
}

func (s *Store) endManualScroll(seq uint64) {
	s.mu.Lock()
	if seq != s.manualSeq {
		s.mu.Unlock()
		return
	}
	s.sig.manual = false
	s.manualStop = nil
	installed := s.users > 0
	epoch := s.sig.epoch
	s.mu.Unlock()

	if installed {
		s.correct(epoch, false)
	}
}

// resolve fills the unset fields of opts from the shared configuration.
func (s *Store) resolve(opts Options) Config {
	s.mu.Lock()
	stored := s.config.clone()
	s.mu.Unlock()

	cfg := stored
	if len(opts.IDs) > 0 {
		cfg.IDs = append([]SectionID(nil), opts.IDs...)
	}
	if len(cfg.IDs) == 0 {
		cfg.IDs = append([]SectionID(nil), DefaultSectionIDs...)
	}
	if opts.Offset != nil && *opts.Offset >= 0 {
		cfg.Offset = *opts.Offset
	}
	if opts.HeaderSelector != "" {
		cfg.HeaderSelector = opts.HeaderSelector
	}
	return cfg
}

// activate registers one more enabled consumer. The first one installs
// the scroll listener; every activation rewrites the shared configuration
// and reinstalls the watchers.
func (s *Store) activate(cfg Config) {
	if s.doc == nil {
		return
	}
	s.mu.Lock()
	first := s.users == 0
	s.config = cfg.clone()
	s.users++
	s.mu.Unlock()

	s.install()
	if !first {
		return
	}

	stop := s.doc.OnScroll(s.onScroll)
	s.mu.Lock()
	if s.users > 0 && s.scrollStop == nil {
		s.scrollStop, stop = stop, nil
	}
	s.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// reconfigure replaces the shared configuration and reinstalls watchers.
func (s *Store) reconfigure(cfg Config) {
	if s.doc == nil {
		return
	}
	s.mu.Lock()
	if s.users == 0 {
		s.mu.Unlock()
		return
	}
	s.config = cfg.clone()
	s.mu.Unlock()
	s.install()
}

// deactivate releases one consumer. The last one tears everything down
// and resets the shared state.
func (s *Store) deactivate() {
	if s.doc == nil {
		return
	}
	s.mu.Lock()
	if s.users == 0 {
		s.mu.Unlock()
		return
	}
	s.users--
	if s.users > 0 {
		s.mu.Unlock()
		return
	}
	scrollStop, manualStop := s.scrollStop, s.manualStop
	s.scrollStop, s.manualStop = nil, nil
	s.manualSeq++
	s.sig.manual = false
	s.framePending = false
	s.config = DefaultConfig()
	s.mu.Unlock()

	s.uninstall()
	if scrollStop != nil {
		scrollStop()
	}
	if manualStop != nil {
		manualStop()
	}
	s.dispatch(manualOverride{id: None})
	s.log.Debug("Section observer torn down")
}

// install replaces the intersection watchers with a fresh set for the
// current configuration and schedules one corrective pass, since watchers
// only report future changes.
func (s *Store) install() {
	s.mu.Lock()
	s.sig.epoch++
	epoch := s.sig.epoch
	stale := s.disposables
	s.disposables = nil
	cfg := s.config.clone()
	s.mu.Unlock()

	runAll(stale)

	offset := ComputeOffset(s.doc, cfg.HeaderSelector, cfg.Offset)
	opts := watchOptions(offset)
	handles := make([]func(), 0, len(cfg.IDs))
	for _, id := range cfg.IDs {
		stop, ok := s.doc.Observe(id, opts, func(intersecting bool) {
			s.dispatch(intersectionUpdate{epoch: epoch, id: id, intersecting: intersecting})
		})
		if ok && stop != nil {
			handles = append(handles, stop)
		}
	}

	s.mu.Lock()
	if s.sig.epoch != epoch {
		// A newer install or a teardown won the race.
		s.mu.Unlock()
		runAll(handles)
		return
	}
	s.disposables = handles
	s.mu.Unlock()

	s.log.Debug("Section observer installed",
		slog.Int("watchers", len(handles)),
		slog.Float64("offset", offset),
		slog.Uint64("epoch", epoch))

	s.sched.RequestFrame(func() { s.correct(epoch, false) })
}

// uninstall stops every intersection watcher. The scroll listener is
// owned by activate/deactivate.
func (s *Store) uninstall() {
	s.mu.Lock()
	s.sig.epoch++
	handles := s.disposables
	s.disposables = nil
	s.mu.Unlock()
	runAll(handles)
}

func (s *Store) onScroll() {
	s.mu.Lock()
	if s.users == 0 || s.sig.manual || s.framePending {
		s.mu.Unlock()
		return
	}
	s.framePending = true
	epoch := s.sig.epoch
	s.mu.Unlock()

	s.sched.RequestFrame(func() {
		s.mu.Lock()
		s.framePending = false
		s.mu.Unlock()
		s.correct(epoch, true)
	})
}

// correct runs one geometric classification pass.
func (s *Store) correct(epoch uint64, passive bool) {
	s.mu.Lock()
	if epoch != s.sig.epoch || (passive && s.sig.manual) {
		s.mu.Unlock()
		return
	}
	cfg := s.config.clone()
	s.mu.Unlock()

	offset := ComputeOffset(s.doc, cfg.HeaderSelector, cfg.Offset)
	id, found := Classify(s.doc, cfg.IDs, offset)
	s.dispatch(scrollTick{epoch: epoch, passive: passive, id: id, found: found})
}

func (s *Store) dispatch(ev event) {
	s.mu.Lock()
	changed := reduce(&s.sig, ev)
	active := s.sig.active
	var subs []subscriber
	if changed {
		subs = append(subs, s.subs...)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(active)
	}
}

// watchers returns the number of live intersection watchers.
func (s *Store) watchers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.disposables)
}

func runAll(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}
