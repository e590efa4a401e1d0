package sectionobserver

// event is a tagged update to the active section.
type event interface {
	isEvent()
}

// intersectionUpdate is delivered by an intersection watcher.
type intersectionUpdate struct {
	epoch        uint64
	id           SectionID
	intersecting bool
}

// scrollTick carries the outcome of one geometric classification pass.
// Passive ticks come from the scroll listener and are suppressed while a
// manual scroll is in flight; corrective ticks are not.
type scrollTick struct {
	epoch   uint64
	passive bool
	id      SectionID
	found   bool
}

// manualOverride replaces the active section unconditionally.
type manualOverride struct {
	id SectionID
}

func (intersectionUpdate) isEvent() {}
func (scrollTick) isEvent()         {}
func (manualOverride) isEvent()     {}

// signalState is the part of the store the reducer reads and writes.
type signalState struct {
	active SectionID
	epoch  uint64
	manual bool
}

// reduce applies ev to st with last-event-wins semantics and reports
// whether the active section changed.
func reduce(st *signalState, ev event) bool {
	next := st.active
	switch e := ev.(type) {
	case intersectionUpdate:
		if e.epoch != st.epoch || !e.intersecting {
			return false
		}
		next = e.id
	case scrollTick:
		if e.epoch != st.epoch || (e.passive && st.manual) {
			return false
		}
		// No qualifying section keeps the last known good value.
		if !e.found {
			return false
		}
		next = e.id
	case manualOverride:
		next = e.id
	default:
		return false
	}
	if next == st.active {
		return false
	}
	st.active = next
	return true
}
