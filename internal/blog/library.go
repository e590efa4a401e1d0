package blog

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/mahdiarghyani/portfolio/internal/content"
	"github.com/mahdiarghyani/portfolio/internal/logfields"
)

// Library holds every post of every locale. Reload swaps the whole set
// atomically so readers never observe a partial load.
type Library struct {
	fsys fs.FS
	md   goldmark.Markdown
	log  *slog.Logger

	mu    sync.RWMutex
	posts map[content.Locale][]*Post
}

// Option configures a Library.
type Option func(*Library)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(lib *Library) {
		if l != nil {
			lib.log = l
		}
	}
}

// New returns an empty library reading from fsys. Call Reload to populate it.
func New(fsys fs.FS, opts ...Option) *Library {
	lib := &Library{
		fsys: fsys,
		log:  slog.Default(),
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
		posts: map[content.Locale][]*Post{},
	}
	for _, opt := range opts {
		opt(lib)
	}
	return lib
}

// Load builds a library from fsys, which must contain <locale>/blog/*.md.
func Load(fsys fs.FS, opts ...Option) (*Library, error) {
	lib := New(fsys, opts...)
	if err := lib.Reload(); err != nil {
		return nil, err
	}
	return lib, nil
}

// Reload re-reads every post. On error the previous set stays in place.
func (l *Library) Reload() error {
	next := make(map[content.Locale][]*Post, len(content.Locales))
	total := 0
	for _, loc := range content.Locales {
		matches, err := doublestar.Glob(l.fsys, string(loc)+"/blog/**/*.md")
		if err != nil {
			return fmt.Errorf("listing %s posts: %w", loc, err)
		}
		slices.Sort(matches)

		posts := make([]*Post, 0, len(matches))
		for _, name := range matches {
			p, err := l.readPost(loc, name)
			if err != nil {
				return fmt.Errorf("loading %s: %w", name, err)
			}
			posts = append(posts, p)
		}
		sortByDateDesc(posts)
		next[loc] = posts
		total += len(posts)
	}

	l.mu.Lock()
	l.posts = next
	l.mu.Unlock()

	l.log.Debug("Blog library loaded", slog.Int("posts", total))
	return nil
}

func (l *Library) readPost(loc content.Locale, name string) (*Post, error) {
	raw, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, err
	}
	fmRaw, body, err := splitFrontMatter(raw)
	if err != nil {
		return nil, err
	}
	fm, err := parseFrontMatter(fmRaw)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(fm.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	updated, err := parseDate(fm.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("updatedAt: %w", err)
	}

	var buf bytes.Buffer
	if err := l.md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}

	slug := strings.TrimSuffix(path.Base(name), ".md")
	title := fm.Title
	if title == "" {
		title = slug
	}
	l.log.Debug("Loaded post", logfields.Locale(string(loc)), logfields.Slug(slug))

	return &Post{
		Locale:      loc,
		Slug:        slug,
		Path:        PostPath(loc, slug),
		Title:       title,
		Description: fm.Description,
		Date:        date,
		UpdatedAt:   updated,
		Tags:        fm.Tags,
		Image:       fm.Image,
		Author:      fm.Author,
		Draft:       fm.Draft,
		ReadingTime: ReadingTime(buf.Bytes()),
		HTML:        template.HTML(buf.String()), //nolint:gosec // rendered from repository-owned markdown
	}, nil
}

func sortByDateDesc(posts []*Post) {
	slices.SortStableFunc(posts, func(a, b *Post) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return strings.Compare(a.Slug, b.Slug)
	})
}

// Posts returns the published posts of loc, newest first.
func (l *Library) Posts(loc content.Locale) []*Post {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*Post, 0, len(l.posts[loc]))
	for _, p := range l.posts[loc] {
		if !p.Draft {
			out = append(out, p)
		}
	}
	return out
}

// Post returns the published post with the given slug.
func (l *Library) Post(loc content.Locale, slug string) (*Post, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, p := range l.posts[loc] {
		if p.Slug == slug && !p.Draft {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, loc, slug)
}

// Routes lists the public paths of every published post, for prerendering
// and sitemaps.
func (l *Library) Routes() []string {
	var routes []string
	for _, loc := range content.Locales {
		for _, p := range l.Posts(loc) {
			routes = append(routes, p.Path)
		}
	}
	return routes
}

// Tags returns the unique tags of posts, sorted.
func Tags(posts []*Post) []string {
	var tags []string
	for _, p := range posts {
		tags = append(tags, p.Tags...)
	}
	slices.Sort(tags)
	return slices.Compact(tags)
}

// FilterBySearch keeps posts whose title, description or a tag contains
// query, case-insensitively. An empty query keeps everything.
func FilterBySearch(posts []*Post, query string) []*Post {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return posts
	}
	var out []*Post
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			slices.ContainsFunc(p.Tags, func(t string) bool { return strings.Contains(strings.ToLower(t), q) }) {
			out = append(out, p)
		}
	}
	return out
}

// FilterByTag keeps posts carrying tag exactly. An empty tag keeps everything.
func FilterByTag(posts []*Post, tag string) []*Post {
	if tag == "" {
		return posts
	}
	var out []*Post
	for _, p := range posts {
		if slices.Contains(p.Tags, tag) {
			out = append(out, p)
		}
	}
	return out
}
