package sectionobserver

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeOffset(t *testing.T) {
	doc := newFakeDoc()
	doc.headers["header"] = 63.6
	doc.headers[".nan"] = math.NaN()
	doc.headers[".inf"] = math.Inf(1)
	doc.headers[".zero"] = 0

	tests := []struct {
		name     string
		doc      Document
		selector string
		want     float64
	}{
		{"no selector", doc, "", 80},
		{"missing element", doc, "#nope", 80},
		{"nan height", doc, ".nan", 80},
		{"infinite height", doc, ".inf", 80},
		{"zero height", doc, ".zero", 80},
		{"rounded header height", doc, "header", 64},
		{"no document", nil, "header", 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeOffset(tt.doc, tt.selector, 80))
		})
	}
}

func TestComputeOffsetUnresolvedSelectorReturnsFallback(t *testing.T) {
	doc := newFakeDoc()
	for _, fallback := range []float64{0, 1, 56, 80, 123.5} {
		assert.Equal(t, fallback, ComputeOffset(doc, ".site-header", fallback))
	}
}

func TestClassifyRects(t *testing.T) {
	tests := []struct {
		name     string
		sections []SectionRect
		offset   float64
		want     SectionID
		found    bool
	}{
		{
			name: "first section straddles the line",
			sections: []SectionRect{
				{"a", Rect{Top: -10, Bottom: 200}},
				{"b", Rect{Top: 250, Bottom: 500}},
			},
			offset: 80,
			want:   "a",
			found:  true,
		},
		{
			name: "lookahead claims a section 8px early",
			sections: []SectionRect{
				{"a", Rect{Top: -500, Bottom: 88}},
				{"b", Rect{Top: 88, Bottom: 700}},
			},
			offset: 80,
			want:   "b",
			found:  true,
		},
		{
			name: "closest top wins among overlapping candidates",
			sections: []SectionRect{
				{"outer", Rect{Top: -400, Bottom: 900}},
				{"inner", Rect{Top: 60, Bottom: 300}},
			},
			offset: 80,
			want:   "inner",
			found:  true,
		},
		{
			name: "above every section falls back to the first one below",
			sections: []SectionRect{
				{"a", Rect{Top: 300, Bottom: 600}},
				{"b", Rect{Top: 600, Bottom: 900}},
			},
			offset: 80,
			want:   "a",
			found:  true,
		},
		{
			name: "fallback tolerates a top slightly above the line",
			sections: []SectionRect{
				{"gap-before", Rect{Top: -300, Bottom: -100}},
				{"a", Rect{Top: 45, Bottom: 60}},
			},
			offset: 80,
			want:   "a",
			found:  true,
		},
		{
			name: "dead zone below every section",
			sections: []SectionRect{
				{"a", Rect{Top: -2000, Bottom: -1500}},
				{"b", Rect{Top: -1500, Bottom: -100}},
			},
			offset: 80,
			found:  false,
		},
		{
			name:   "no sections",
			offset: 80,
			found:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClassifyRects(tt.sections, tt.offset)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifySkipsMissingElements(t *testing.T) {
	doc := newFakeDoc()
	doc.rects["skills"] = Rect{Top: 0, Bottom: 400}

	got, ok := Classify(doc, []SectionID{"hero", "skills"}, 80)
	assert.True(t, ok)
	assert.Equal(t, SectionID("skills"), got)
}

func TestWatchOptionsRootMargin(t *testing.T) {
	assert.Equal(t, "-80px 0px -55% 0px", watchOptions(80).RootMargin())
	assert.Equal(t, "-64px 0px -55% 0px", watchOptions(64).RootMargin())
	assert.Equal(t, 0.1, watchOptions(80).Threshold)
}

func TestBehaviorSettle(t *testing.T) {
	tests := []struct {
		behavior Behavior
		want     time.Duration
	}{
		{BehaviorAuto, 50 * time.Millisecond},
		{BehaviorSmooth, 650 * time.Millisecond},
		{BehaviorInstant, 650 * time.Millisecond},
		{"", 650 * time.Millisecond},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.behavior.settle(), "behavior %q", tt.behavior)
	}
}
