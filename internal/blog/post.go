package blog

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mahdiarghyani/portfolio/internal/content"
)

// ErrNotFound is returned when no published post matches a slug.
var ErrNotFound = errors.New("post not found")

// ErrMissingClosingDelimiter indicates a document opened a front matter
// block but never closed it.
var ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")

// Post is one rendered blog article.
type Post struct {
	Locale      content.Locale `json:"locale"`
	Slug        string         `json:"slug"`
	Path        string         `json:"path"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Date        time.Time      `json:"date"`
	UpdatedAt   time.Time      `json:"updatedAt,omitzero"`
	Tags        []string       `json:"tags"`
	Image       string         `json:"image,omitempty"`
	Author      string         `json:"author,omitempty"`
	Draft       bool           `json:"draft"`
	ReadingTime int            `json:"readingTime"`
	HTML        template.HTML  `json:"-"`
}

type frontMatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Date        string   `yaml:"date"`
	UpdatedAt   string   `yaml:"updatedAt"`
	Tags        []string `yaml:"tags"`
	Image       string   `yaml:"image"`
	Author      string   `yaml:"author"`
	Draft       bool     `yaml:"draft"`
}

// splitFrontMatter separates a leading "---" delimited YAML block from the
// markdown body. Documents without one return the full input as body.
func splitFrontMatter(doc []byte) (fm, body []byte, err error) {
	nl := "\n"
	if i := bytes.IndexByte(doc, '\n'); i > 0 && doc[i-1] == '\r' {
		nl = "\r\n"
	}
	open := []byte("---" + nl)
	if !bytes.HasPrefix(doc, open) {
		return nil, doc, nil
	}

	rest := doc[len(open):]
	if bytes.HasPrefix(rest, open) {
		return nil, rest[len(open):], nil
	}
	closing := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closing)
	if idx < 0 {
		if bytes.HasSuffix(rest, []byte(nl+"---")) {
			return rest[:len(rest)-len(nl)-3], nil, nil
		}
		return nil, nil, ErrMissingClosingDelimiter
	}
	return rest[:idx+len(nl)], rest[idx+len(closing):], nil
}

var dateLayouts = []string{time.DateOnly, time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04"}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func parseFrontMatter(raw []byte) (frontMatter, error) {
	var fm frontMatter
	if len(bytes.TrimSpace(raw)) == 0 {
		return fm, nil
	}
	if err := yaml.Unmarshal(raw, &fm); err != nil {
		return fm, fmt.Errorf("parsing front matter: %w", err)
	}
	return fm, nil
}

// PostPath is the public route of a post.
func PostPath(loc content.Locale, slug string) string {
	return loc.Prefix() + "/blog/" + slug
}

// ListPath is the public route of the blog index.
func ListPath(loc content.Locale) string {
	return loc.Prefix() + "/blog"
}

// FormatDate renders a post date: "January 2, 2006" in English and the
// Solar Hijri calendar with Persian digits in Persian.
func FormatDate(t time.Time, loc content.Locale) string {
	if t.IsZero() {
		return ""
	}
	if loc == content.Persian {
		return content.FormatJalali(t)
	}
	return t.Format("January 2, 2006")
}
