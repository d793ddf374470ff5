package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func seedContent(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeDoc(t, dir, "intro-to-go.md", `---
title: Intro to Go
date: 2024-03-01
description: getting started
tags:
  - go
  - beginners
featured: true
---
Go is a statically typed language.
`)
	writeDoc(t, dir, "deploying-with-docker.md", `---
title: Deploying with Docker
date: 2024-05-10
tags: [docker, ops]
---
Containers all the way down.
`)
	writeDoc(t, dir, "unfinished.md", `---
title: Not Ready
date: 2024-06-01
draft: true
---
Work in progress.
`)
	// Wrong types everywhere: every field should fall back to its default.
	writeDoc(t, dir, "odd-metadata.md", `---
title: 42
tags: 7
featured: "yes"
date: not-a-date
---
Body survives bad metadata.
`)
	writeDoc(t, dir, "notes.txt", "not a post")
	return dir
}

func TestListPostsFiltersAndSorts(t *testing.T) {
	store := NewFileStore(seedContent(t))

	posts, err := store.ListPosts()
	require.NoError(t, err)
	require.Len(t, posts, 3)

	// Newest first; the undated document sorts last.
	assert.Equal(t, "deploying-with-docker", posts[0].Slug)
	assert.Equal(t, "intro-to-go", posts[1].Slug)
	assert.Equal(t, "odd-metadata", posts[2].Slug)

	for _, post := range posts {
		assert.False(t, post.Draft)
	}
}

func TestListPostsParsesFrontMatter(t *testing.T) {
	store := NewFileStore(seedContent(t))

	post, err := store.GetBySlug("intro-to-go")
	require.NoError(t, err)
	require.NotNil(t, post)

	assert.Equal(t, "Intro to Go", post.Title)
	assert.Equal(t, "getting started", post.Description)
	assert.Equal(t, []string{"go", "beginners"}, post.Tags)
	assert.True(t, post.Featured)
	assert.Equal(t, 2024, post.Date.Year())
	assert.Contains(t, post.Content, "statically typed")
}

func TestMalformedFieldsDefault(t *testing.T) {
	store := NewFileStore(seedContent(t))

	post, err := store.GetBySlug("odd-metadata")
	require.NoError(t, err)
	require.NotNil(t, post)

	// Title falls back to the slug, everything else to zero values.
	assert.Equal(t, "odd-metadata", post.Title)
	assert.Empty(t, post.Tags)
	assert.False(t, post.Featured)
	assert.True(t, post.Date.IsZero())
	assert.Contains(t, post.Content, "Body survives")
}

func TestGetBySlugDraftAndAbsent(t *testing.T) {
	store := NewFileStore(seedContent(t))

	// Point lookup resolves drafts; only listings exclude them.
	draft, err := store.GetBySlug("unfinished")
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.True(t, draft.Draft)

	missing, err := store.GetBySlug("no-such-post")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetBySlugRejectsPathEscapes(t *testing.T) {
	store := NewFileStore(seedContent(t))

	for _, slug := range []string{"../filestore", "a/b", `a\b`, "..", ""} {
		post, err := store.GetBySlug(slug)
		require.NoError(t, err)
		assert.Nil(t, post, "slug %q should not resolve", slug)
	}
}

func TestListSlugsIncludesDrafts(t *testing.T) {
	store := NewFileStore(seedContent(t))

	slugs, err := store.ListSlugs()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"intro-to-go", "deploying-with-docker", "unfinished", "odd-metadata",
	}, slugs)
}

func TestMissingRootIsEmptyNotError(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "does-not-exist"))

	posts, err := store.ListPosts()
	require.NoError(t, err)
	assert.Empty(t, posts)

	slugs, err := store.ListSlugs()
	require.NoError(t, err)
	assert.Empty(t, slugs)

	post, err := store.GetBySlug("anything")
	require.NoError(t, err)
	assert.Nil(t, post)
}

func TestDocumentWithoutFrontMatter(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "plain.md", "Just a body, no metadata.\n")
	store := NewFileStore(dir)

	post, err := store.GetBySlug("plain")
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, "plain", post.Title)
	assert.Contains(t, post.Content, "Just a body")
}
