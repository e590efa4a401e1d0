package sectionobserver

import "math"

// ComputeOffset returns the pixel offset of the reference line below the
// top of the viewport. When headerSelector resolves to an element with a
// measurable height, that height (rounded) is used; otherwise fallback.
func ComputeOffset(doc Document, headerSelector string, fallback float64) float64 {
	if doc == nil || headerSelector == "" {
		return fallback
	}
	h, ok := doc.HeaderHeight(headerSelector)
	if !ok || h == 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return fallback
	}
	return math.Round(h)
}

// SectionRect pairs a section id with its measured box.
type SectionRect struct {
	ID   SectionID
	Rect Rect
}

// Measure collects the boxes of ids in order, skipping ids without an
// element.
func Measure(doc Document, ids []SectionID) []SectionRect {
	if doc == nil {
		return nil
	}
	out := make([]SectionRect, 0, len(ids))
	for _, id := range ids {
		r, ok := doc.Rect(id)
		if !ok {
			continue
		}
		out = append(out, SectionRect{ID: id, Rect: r})
	}
	return out
}

// Classify measures ids and picks the section under the reference line.
func Classify(doc Document, ids []SectionID, offset float64) (SectionID, bool) {
	return ClassifyRects(Measure(doc, ids), offset)
}

// ClassifyRects picks the section under the reference line at offset.
//
// A section is a candidate when its top is at or above offset+8 and its
// bottom is below that line; the candidate whose top is closest to offset
// wins, earlier sections winning ties. With no candidate, the first
// section in list order with top >= offset-40 is chosen. ok is false when
// nothing qualifies, and callers leave the active section as it was.
func ClassifyRects(sections []SectionRect, offset float64) (id SectionID, ok bool) {
	line := offset + lookahead
	best := math.Inf(1)
	for _, s := range sections {
		if s.Rect.Top > line || s.Rect.Bottom <= line {
			continue
		}
		if d := math.Abs(s.Rect.Top - offset); d < best {
			best, id, ok = d, s.ID, true
		}
	}
	if ok {
		return id, true
	}

	for _, s := range sections {
		if s.Rect.Top >= offset-fallbackSlack {
			return s.ID, true
		}
	}
	return None, false
}
