package blog

import (
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiarghyani/portfolio/internal/content"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"en/blog/first.md": {Data: []byte(`---
title: First post
description: Getting started with Go
date: 2024-01-10
tags: [go, web]
---
# Hello

Some **bold** words here.
`)},
		"en/blog/second.md": {Data: []byte(`---
title: Second post
description: Scroll spying
date: 2024-03-02
tags: [frontend]
---
Body.
`)},
		"en/blog/wip.md": {Data: []byte(`---
title: Draft
date: 2024-05-01
draft: true
---
Not yet.
`)},
		"fa/blog/first.md": {Data: []byte("---\ntitle: نخستین\ndate: 2023-01-01\ntags: [go]\n---\nسلام دنیا\n")},
	}
}

func TestLoadAndList(t *testing.T) {
	lib, err := Load(testFS())
	require.NoError(t, err)

	posts := lib.Posts(content.English)
	require.Len(t, posts, 2, "drafts are hidden")
	assert.Equal(t, "second", posts[0].Slug, "newest first")
	assert.Equal(t, "first", posts[1].Slug)
	assert.Equal(t, "/blog/first", posts[1].Path)
	assert.Contains(t, string(posts[1].HTML), `<h1 id="hello">Hello</h1>`)
	assert.Contains(t, string(posts[1].HTML), "<strong>bold</strong>")
	assert.Equal(t, 1, posts[1].ReadingTime)

	fa := lib.Posts(content.Persian)
	require.Len(t, fa, 1)
	assert.Equal(t, "/fa/blog/first", fa[0].Path)

	assert.Equal(t, []string{"/blog/second", "/blog/first", "/fa/blog/first"}, lib.Routes())
}

func TestPostLookup(t *testing.T) {
	lib, err := Load(testFS())
	require.NoError(t, err)

	p, err := lib.Post(content.English, "first")
	require.NoError(t, err)
	assert.Equal(t, "First post", p.Title)

	_, err = lib.Post(content.English, "wip")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = lib.Post(content.Persian, "second")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(fstest.MapFS{"en/blog/bad.md": {Data: []byte("---\ntitle: x\n")}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingClosingDelimiter)

	_, err = Load(fstest.MapFS{"en/blog/bad.md": {Data: []byte("---\ndate: yesterday\n---\n")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "en/blog/bad.md")
}

func TestReloadKeepsPreviousSetOnError(t *testing.T) {
	fsys := testFS()
	lib, err := Load(fsys)
	require.NoError(t, err)

	fsys["en/blog/broken.md"] = &fstest.MapFile{Data: []byte("---\nunterminated")}
	require.Error(t, lib.Reload())
	assert.Len(t, lib.Posts(content.English), 2)
}

func TestSplitFrontMatter(t *testing.T) {
	fm, body, err := splitFrontMatter([]byte("no front matter"))
	require.NoError(t, err)
	assert.Nil(t, fm)
	assert.Equal(t, "no front matter", string(body))

	fm, body, err = splitFrontMatter([]byte("---\r\ntitle: x\r\n---\r\nbody"))
	require.NoError(t, err)
	assert.Equal(t, "title: x\r\n", string(fm))
	assert.Equal(t, "body", string(body))

	fm, body, err = splitFrontMatter([]byte("---\n---\nbody"))
	require.NoError(t, err)
	assert.Empty(t, fm)
	assert.Equal(t, "body", string(body))
}

func TestTagsAndFilters(t *testing.T) {
	posts := []*Post{
		{Title: "Go tips", Tags: []string{"go", "tips"}},
		{Title: "Vue", Description: "Composition API", Tags: []string{"frontend"}},
		{Title: "Other", Tags: []string{"go"}},
	}
	assert.Equal(t, []string{"frontend", "go", "tips"}, Tags(posts))

	assert.Len(t, FilterBySearch(posts, ""), 3)
	assert.Len(t, FilterBySearch(posts, "COMPOSITION"), 1)
	assert.Len(t, FilterBySearch(posts, "go"), 2)
	assert.Len(t, FilterBySearch(posts, "TIP"), 1)

	assert.Len(t, FilterByTag(posts, "go"), 2)
	assert.Len(t, FilterByTag(posts, ""), 3)
	assert.Empty(t, FilterByTag(posts, "g"))
}

func TestReadingTime(t *testing.T) {
	assert.Equal(t, 0, ReadingTime(nil))
	assert.Equal(t, 1, ReadingTime([]byte("<p>one two three</p>")))

	long := "<p>" + strings.Repeat("word ", 201) + "</p><script>var a = 1 2 3</script>"
	assert.Equal(t, 201, CountWords([]byte(long)))
	assert.Equal(t, 2, ReadingTime([]byte(long)))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "January 1, 2023", FormatDate(d, content.English))
	assert.Equal(t, "۱۱ دی ۱۴۰۱", FormatDate(d, content.Persian))
	assert.Equal(t, "", FormatDate(time.Time{}, content.English))
}

func TestFeed(t *testing.T) {
	lib, err := Load(testFS())
	require.NoError(t, err)

	xml, err := Feed(content.English, lib.Posts(content.English), "https://example.com/", "Mahdi")
	require.NoError(t, err)
	assert.Contains(t, xml, `<rss version="2.0"`)
	assert.Contains(t, xml, "<title>Blog - Mahdi</title>")
	assert.Contains(t, xml, "<link>https://example.com/blog</link>")
	assert.Contains(t, xml, "<language>en</language>")
	assert.Contains(t, xml, "<link>https://example.com/blog/second</link>")
	assert.NotContains(t, xml, "Draft")
	assert.Less(t, strings.Index(xml, "/blog/second"), strings.Index(xml, "/blog/first"))

	xml, err = Feed(content.Persian, lib.Posts(content.Persian), "https://example.com", "Mahdi")
	require.NoError(t, err)
	assert.Contains(t, xml, "<language>fa</language>")
	assert.Contains(t, xml, "https://example.com/fa/blog/first")
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	blogDir := filepath.Join(dir, "en", "blog")
	require.NoError(t, os.MkdirAll(blogDir, 0o755))

	var reloads atomic.Int32
	w, err := NewWatcher(dir, func() error { return nil }, func(error) { reloads.Add(1) })
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond
	require.NoError(t, w.Start(t.Context()))
	t.Cleanup(func() { _ = w.Stop() })

	require.NoError(t, os.WriteFile(filepath.Join(blogDir, "new.md"), []byte("---\ntitle: x\n---\n"), 0o644))

	require.Eventually(t, func() bool { return reloads.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}
