package main

import (
	"math"
	"strconv"
	"strings"

	"github.com/mahdiarghyani/portfolio/internal/sectionobserver"
)

// navAttrs are the data-* attributes of the section navigation element.
type navAttrs struct {
	Sections string
	Offset   string
	Header   string
}

// options turns the nav attributes into consumer options. Missing or
// malformed values are left unset so the shared defaults apply.
func (a navAttrs) options() sectionobserver.Options {
	var opts sectionobserver.Options
	for _, f := range strings.Fields(strings.ReplaceAll(a.Sections, ",", " ")) {
		opts.IDs = append(opts.IDs, sectionobserver.SectionID(f))
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(a.Offset), 64); err == nil && v >= 0 && !math.IsInf(v, 0) {
		opts.Offset = sectionobserver.Pixels(v)
	}
	opts.HeaderSelector = strings.TrimSpace(a.Header)
	return opts
}

// sectionFromHref extracts the section id of an in-page link such as
// "#work" or "/fa#work". Links to other pages yield None.
func sectionFromHref(href string) sectionobserver.SectionID {
	_, frag, ok := strings.Cut(href, "#")
	if !ok || frag == "" {
		return sectionobserver.None
	}
	return sectionobserver.SectionID(frag)
}
