package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorales/portfolio-backend/models"
)

type stubPostStore struct {
	posts []*models.Post
}

func (s *stubPostStore) FindAll() ([]*models.Post, error) { return s.posts, nil }

func (s *stubPostStore) FindPublished() ([]*models.Post, error) {
	var out []*models.Post
	for _, p := range s.posts {
		if p.Published {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubPostStore) FindFeatured(limit int) ([]*models.Post, error) {
	var out []*models.Post
	for _, p := range s.posts {
		if p.Published && p.Featured {
			out = append(out, p)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubPostStore) FindBySlug(slug string) (*models.Post, error) {
	for _, p := range s.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

type stubTagStore struct {
	tags []*models.Tag
}

func (s *stubTagStore) FindAll() ([]*models.Tag, error) { return s.tags, nil }

type stubFileStore struct {
	posts []models.FilePost
}

func (s *stubFileStore) ListPosts() ([]models.FilePost, error) { return s.posts, nil }

func (s *stubFileStore) GetBySlug(slug string) (*models.FilePost, error) {
	for _, p := range s.posts {
		if p.Slug == slug {
			post := p
			return &post, nil
		}
	}
	return nil, nil
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func testResolver() (*Resolver, *stubPostStore, *stubFileStore) {
	march := date(2025, 3, 1)
	jan := date(2025, 1, 15)

	posts := &stubPostStore{posts: []*models.Post{
		{
			ID: 1, Slug: "database-post", Title: "Database Post",
			Published: true, PublishedAt: &march,
			Tags:      []models.Tag{{Name: "Go", Slug: "go", Color: models.DefaultTagColor}},
			CreatedAt: march,
		},
		{
			ID: 2, Slug: "hidden-draft", Title: "Hidden Draft",
			Published: false, CreatedAt: date(2025, 4, 1),
		},
		{
			ID: 3, Slug: "featured-db", Title: "Featured DB",
			Published: true, Featured: true, PublishedAt: &jan, CreatedAt: jan,
		},
	}}
	tags := &stubTagStore{tags: []*models.Tag{
		{ID: 1, Name: "Go", Slug: "go", Color: models.DefaultTagColor},
	}}
	files := &stubFileStore{posts: []models.FilePost{
		{
			Slug: "file-post", Title: "File Post", Date: date(2025, 2, 10),
			Tags: []string{"go", "Filesystems"}, Content: "static words",
		},
		{
			Slug: "featured-file", Title: "Featured File", Date: date(2025, 5, 1),
			Featured: true, Content: "more static words",
		},
	}}

	return NewResolver(posts, tags, files), posts, files
}

func TestGetPostBySlugPrefersDatabase(t *testing.T) {
	resolver, posts, files := testResolver()

	// Same slug in both stores: the mutable source wins.
	posts.posts = append(posts.posts, &models.Post{
		ID: 9, Slug: "file-post", Title: "Shadowing Row", Published: true,
	})
	_ = files

	post, err := resolver.GetPostBySlug("file-post")
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, SourceDatabase, post.Source)
	assert.Equal(t, "Shadowing Row", post.Title)
}

func TestGetPostBySlugFallsBackToFile(t *testing.T) {
	resolver, _, _ := testResolver()

	post, err := resolver.GetPostBySlug("featured-file")
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, SourceFile, post.Source)
	assert.True(t, post.Published)
	assert.GreaterOrEqual(t, post.ReadingTime, 1)

	absent, err := resolver.GetPostBySlug("nowhere")
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func TestGetPublishedPostsMergesNewestFirst(t *testing.T) {
	resolver, _, _ := testResolver()

	posts, err := resolver.GetPublishedPosts(false)
	require.NoError(t, err)

	var slugs []string
	for _, p := range posts {
		slugs = append(slugs, p.Slug)
	}
	assert.Equal(t, []string{
		"featured-file", // 2025-05-01
		"database-post", // 2025-03-01
		"file-post",     // 2025-02-10
		"featured-db",   // 2025-01-15
	}, slugs)
}

func TestGetPublishedPostsIncludeUnpublished(t *testing.T) {
	resolver, _, _ := testResolver()

	posts, err := resolver.GetPublishedPosts(true)
	require.NoError(t, err)

	found := false
	for _, p := range posts {
		if p.Slug == "hidden-draft" {
			found = true
			assert.False(t, p.Published)
		}
	}
	assert.True(t, found, "unpublished database post should be listed")
}

func TestGetFeaturedPostsMergedAndCapped(t *testing.T) {
	resolver, _, _ := testResolver()

	posts, err := resolver.GetFeaturedPosts(0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "featured-file", posts[0].Slug)
	assert.Equal(t, "featured-db", posts[1].Slug)

	capped, err := resolver.GetFeaturedPosts(1)
	require.NoError(t, err)
	require.Len(t, capped, 1)
	assert.Equal(t, "featured-file", capped[0].Slug)
}

func TestGetAllTagsDeduplicatesByName(t *testing.T) {
	resolver, _, _ := testResolver()

	tags, err := resolver.GetAllTags()
	require.NoError(t, err)

	var names []string
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	// "go" from the file post folds into the relational "Go".
	assert.ElementsMatch(t, []string{"Go", "Filesystems"}, names)

	for _, tag := range tags {
		if tag.Name == "Filesystems" {
			assert.Equal(t, "filesystems", tag.Slug)
			assert.Equal(t, models.DefaultTagColor, tag.Color)
		}
	}
}
