package sectionobserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() (*Store, *fakeDoc, *fakeSched) {
	doc := landingPage()
	sched := &fakeSched{}
	return New(doc, sched), doc, sched
}

func TestInstallRunsCorrectivePassOnNextFrame(t *testing.T) {
	s, _, sched := newTestStore()
	c := s.Use(Options{})
	c.Mount()

	assert.Equal(t, None, s.Active(), "watchers only report future changes")
	require.Equal(t, 1, sched.flushFrames())
	assert.Equal(t, SectionID("hero"), s.Active())
}

func TestReferenceCounting(t *testing.T) {
	s, doc, sched := newTestStore()
	consumers := []*Consumer{
		s.Use(Options{Enabled: Static(true)}),
		s.Use(Options{Enabled: Static(true)}),
		s.Use(Options{Enabled: Static(true)}),
	}
	for _, c := range consumers {
		c.Mount()
	}
	sched.flushFrames()
	require.Equal(t, 3, s.Users())
	require.Len(t, doc.listeners, 1, "one scroll listener regardless of consumer count")

	consumers[0].Unmount()
	consumers[1].Unmount()
	assert.Equal(t, 1, s.Users())
	assert.Len(t, doc.live(), len(DefaultSectionIDs))
	assert.Len(t, doc.listeners, 1)
	assert.Equal(t, SectionID("hero"), s.Active())

	consumers[2].Unmount()
	assert.Equal(t, 0, s.Users())
	assert.Empty(t, doc.live())
	assert.Empty(t, doc.listeners)
	assert.Equal(t, None, s.Active())
	assert.Equal(t, DefaultConfig(), s.Config())
}

func TestUnmountTwiceReleasesOnce(t *testing.T) {
	s, _, _ := newTestStore()
	a := s.Use(Options{})
	b := s.Use(Options{})
	a.Mount()
	b.Mount()

	a.Unmount()
	a.Unmount()
	assert.Equal(t, 1, s.Users())
}

// A user scrolling into a gap past every section keeps the previous
// highlight rather than clearing it.
func TestDeadZoneKeepsLastKnownSection(t *testing.T) {
	s, doc, sched := newTestStore()
	s.Use(Options{}).Mount()
	sched.flushFrames()

	s.SetActiveSection("skills")
	doc.scrollBy(5000)
	doc.scroll()
	sched.flushFrames()

	assert.Equal(t, SectionID("skills"), s.Active())
}

func TestIntersectionSetsActiveSection(t *testing.T) {
	s, doc, sched := newTestStore()
	s.Use(Options{}).Mount()
	sched.flushFrames()

	doc.intersect("work", true)
	assert.Equal(t, SectionID("work"), s.Active())

	doc.intersect("projects", false)
	assert.Equal(t, SectionID("work"), s.Active(), "leaving the band does not clear")
}

func TestScrollEventsCoalescePerFrame(t *testing.T) {
	s, doc, sched := newTestStore()
	s.Use(Options{}).Mount()
	sched.flushFrames()

	doc.scrollBy(700)
	for range 5 {
		doc.scroll()
	}
	assert.Equal(t, 1, sched.flushFrames())
	assert.Equal(t, SectionID("skills"), s.Active())

	doc.scroll()
	assert.Equal(t, 1, sched.flushFrames(), "a new frame may be requested once the last one ran")
}

func TestManualScrollSuppressesPassiveUpdates(t *testing.T) {
	s, doc, sched := newTestStore()
	c := s.Use(Options{})
	c.Mount()
	sched.flushFrames()

	c.ScrollToSection("projects", BehaviorSmooth)
	assert.Equal(t, SectionID("projects"), s.Active(), "optimistic update is synchronous")
	assert.True(t, s.ManualScroll())
	require.Len(t, doc.scrolls, 1)
	assert.Equal(t, scrollCall{id: "projects", behavior: BehaviorSmooth}, doc.scrolls[0])

	// The page is still near the top while the animation runs.
	for range 3 {
		sched.advance(100 * time.Millisecond)
		doc.scroll()
		sched.flushFrames()
		assert.Equal(t, SectionID("projects"), s.Active())
	}

	// Animation lands; the corrective pass after 650ms reads real geometry.
	doc.scrollBy(1800)
	sched.advance(350 * time.Millisecond)
	assert.False(t, s.ManualScroll())
	assert.Equal(t, SectionID("projects"), s.Active())

	doc.scrollBy(-1200)
	doc.scroll()
	sched.flushFrames()
	assert.Equal(t, SectionID("skills"), s.Active(), "passive updates resume after the window")
}

func TestManualScrollCorrectsAfterWindow(t *testing.T) {
	s, _, sched := newTestStore()
	s.Use(Options{}).Mount()
	sched.flushFrames()

	// The scroll never moves the page, so the corrective pass restores hero.
	s.ScrollToSection("work", BehaviorAuto)
	assert.Equal(t, SectionID("work"), s.Active())

	sched.advance(49 * time.Millisecond)
	assert.True(t, s.ManualScroll())
	sched.advance(1 * time.Millisecond)
	assert.False(t, s.ManualScroll())
	assert.Equal(t, SectionID("hero"), s.Active())
}

func TestRepeatedScrollToSectionKeepsFlagUntilLastSettles(t *testing.T) {
	s, _, sched := newTestStore()
	s.Use(Options{}).Mount()
	sched.flushFrames()

	s.ScrollToSection("work", BehaviorSmooth)
	sched.advance(400 * time.Millisecond)
	s.ScrollToSection("projects", BehaviorSmooth)
	sched.advance(300 * time.Millisecond)
	assert.True(t, s.ManualScroll(), "first timer was superseded")
	sched.advance(350 * time.Millisecond)
	assert.False(t, s.ManualScroll())
}

func TestScrollToMissingSectionIsNoop(t *testing.T) {
	s, doc, sched := newTestStore()
	s.Use(Options{}).Mount()
	sched.flushFrames()

	s.ScrollToSection("contact", BehaviorSmooth)
	assert.Equal(t, SectionID("hero"), s.Active())
	assert.False(t, s.ManualScroll())
	assert.Empty(t, doc.scrolls)
	assert.Empty(t, sched.timers)
}

func TestReinstallNeverDuplicatesWatchers(t *testing.T) {
	s, doc, sched := newTestStore()
	s.Use(Options{}).Mount()
	ids := []SectionID{"hero", "work"}

	s.reconfigure(Config{IDs: ids, Offset: 80})
	s.reconfigure(Config{IDs: ids, Offset: 80})
	s.install()

	assert.Len(t, doc.live(), len(ids))
	assert.Equal(t, len(ids), s.watchers())
	sched.flushFrames()
}

func TestStaleWatcherCallbacksAreDropped(t *testing.T) {
	s, doc, sched := newTestStore()
	c := s.Use(Options{IDs: []SectionID{"hero", "skills"}})
	c.Mount()
	sched.flushFrames()
	require.Equal(t, SectionID("hero"), s.Active())

	c.Update(Options{IDs: []SectionID{"hero", "work"}})
	// The old "skills" watcher is stopped; a late callback must not apply.
	doc.intersect("skills", true)
	assert.Equal(t, SectionID("hero"), s.Active())

	doc.intersect("work", true)
	assert.Equal(t, SectionID("work"), s.Active())
}

func TestTeardownCancelsInFlightPasses(t *testing.T) {
	s, doc, sched := newTestStore()
	c := s.Use(Options{})
	c.Mount()
	sched.flushFrames()

	doc.scrollBy(700)
	doc.scroll()
	c.ScrollToSection("work", BehaviorAuto)
	c.Unmount()

	sched.flushFrames()
	sched.advance(time.Second)
	doc.intersect("projects", true)

	assert.Equal(t, None, s.Active())
	assert.False(t, s.ManualScroll())
}

func TestSubscribeReceivesChanges(t *testing.T) {
	s, doc, sched := newTestStore()
	var seen []SectionID
	cancel := s.Subscribe(func(id SectionID) { seen = append(seen, id) })

	c := s.Use(Options{})
	c.Mount()
	sched.flushFrames()
	doc.intersect("hero", true) // unchanged, no notification
	doc.intersect("skills", true)
	cancel()
	doc.intersect("work", true)

	assert.Equal(t, []SectionID{"hero", "skills"}, seen)
}

func TestHeaderSelectorDrivesOffset(t *testing.T) {
	s, doc, sched := newTestStore()
	doc.headers["header.site"] = 120.4
	s.Use(Options{HeaderSelector: "header.site"}).Mount()
	sched.flushFrames()

	live := doc.live()
	require.NotEmpty(t, live)
	assert.Equal(t, "-120px 0px -55% 0px", live[0].opts.RootMargin())
}

func TestNoDocumentIsSilentNoop(t *testing.T) {
	s := New(nil, &fakeSched{})
	c := s.Use(Options{})
	c.Mount()
	c.ScrollToSection("hero", BehaviorSmooth)

	assert.Equal(t, 0, s.Users())
	assert.Equal(t, None, c.ActiveSection())

	c.SetActiveSection("skills")
	assert.Equal(t, SectionID("skills"), c.ActiveSection())
	c.Unmount()
}

func TestReduce(t *testing.T) {
	st := &signalState{epoch: 2, active: "hero"}

	assert.False(t, reduce(st, intersectionUpdate{epoch: 1, id: "work", intersecting: true}), "stale epoch")
	assert.False(t, reduce(st, intersectionUpdate{epoch: 2, id: "work", intersecting: false}))
	assert.True(t, reduce(st, intersectionUpdate{epoch: 2, id: "work", intersecting: true}))
	assert.Equal(t, SectionID("work"), st.active)

	st.manual = true
	assert.False(t, reduce(st, scrollTick{epoch: 2, passive: true, id: "hero", found: true}))
	assert.True(t, reduce(st, scrollTick{epoch: 2, passive: false, id: "hero", found: true}))
	assert.False(t, reduce(st, scrollTick{epoch: 2, id: "skills", found: false}))

	assert.True(t, reduce(st, manualOverride{id: None}))
	assert.Equal(t, None, st.active)
}
