package sectionobserver

import (
	"fmt"
	"strconv"
	"time"
)

// SectionID identifies a scrollable page section by its element id.
type SectionID string

// None is the null active section.
const None SectionID = ""

const (
	// DefaultOffset is the header offset in pixels used when none is configured.
	DefaultOffset = 80.0

	// lookahead lets a section claim the reference line slightly before its
	// top actually crosses it.
	lookahead = 8.0
	// fallbackSlack is how far above the reference line a section top may
	// sit and still be picked when no section straddles the line.
	fallbackSlack = 40.0

	watchThreshold    = 0.1
	watchBottomMargin = "-55%"

	smoothScrollSettle = 650 * time.Millisecond
	autoScrollSettle   = 50 * time.Millisecond
)

// DefaultSectionIDs are the sections of the portfolio landing page.
var DefaultSectionIDs = []SectionID{"hero", "skills", "work", "projects"}

// Config is the observation configuration shared by all consumers.
type Config struct {
	IDs            []SectionID
	Offset         float64
	HeaderSelector string
}

// DefaultConfig returns the configuration in effect before any consumer
// has activated.
func DefaultConfig() Config {
	return Config{
		IDs:    append([]SectionID(nil), DefaultSectionIDs...),
		Offset: DefaultOffset,
	}
}

func (c Config) clone() Config {
	c.IDs = append([]SectionID(nil), c.IDs...)
	return c
}

func (c Config) equal(o Config) bool {
	if c.Offset != o.Offset || c.HeaderSelector != o.HeaderSelector || len(c.IDs) != len(o.IDs) {
		return false
	}
	for i := range c.IDs {
		if c.IDs[i] != o.IDs[i] {
			return false
		}
	}
	return true
}

// Rect is the vertical extent of an element's bounding box relative to
// the viewport.
type Rect struct {
	Top    float64
	Bottom float64
}

// Behavior is the scroll animation style passed to ScrollIntoView.
type Behavior string

const (
	BehaviorSmooth  Behavior = "smooth"
	BehaviorAuto    Behavior = "auto"
	BehaviorInstant Behavior = "instant"
)

// settle is how long the manual-scroll flag stays raised after a
// programmatic scroll.
// Only auto jumps settle early; instant waits as long as smooth.
func (b Behavior) settle() time.Duration {
	if b == BehaviorAuto {
		return autoScrollSettle
	}
	return smoothScrollSettle
}

// WatchOptions configures one intersection watcher.
type WatchOptions struct {
	Threshold float64
	// TopMargin and BottomMargin are CSS lengths; negative values shrink
	// the observed root.
	TopMargin    string
	BottomMargin string
}

// RootMargin renders the options as a CSS rootMargin value.
func (w WatchOptions) RootMargin() string {
	return fmt.Sprintf("%s 0px %s 0px", w.TopMargin, w.BottomMargin)
}

func watchOptions(offset float64) WatchOptions {
	return WatchOptions{
		Threshold:    watchThreshold,
		TopMargin:    "-" + strconv.FormatFloat(offset, 'f', -1, 64) + "px",
		BottomMargin: watchBottomMargin,
	}
}

// Document is the part of a browsing context the observer depends on.
type Document interface {
	// Rect returns the bounding box of the element with the given id.
	Rect(id SectionID) (Rect, bool)
	// HeaderHeight returns the rendered height of the first element
	// matching selector.
	HeaderHeight(selector string) (float64, bool)
	// ScrollIntoView scrolls the element to the top of the viewport.
	ScrollIntoView(id SectionID, behavior Behavior) bool
	// Observe installs an intersection watcher on the element. The
	// returned function disconnects it.
	Observe(id SectionID, opts WatchOptions, fn func(intersecting bool)) (stop func(), ok bool)
	// OnScroll registers a passive scroll listener on the window.
	OnScroll(fn func()) (stop func())
}

// Scheduler defers work onto the UI event loop.
type Scheduler interface {
	// RequestFrame runs fn before the next repaint.
	RequestFrame(fn func())
	// AfterFunc runs fn once d has elapsed. The returned function cancels
	// it if it has not run yet.
	AfterFunc(d time.Duration, fn func()) (stop func())
}
