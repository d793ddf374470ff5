package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func basePost() Post {
	return Post{
		ID:          1,
		Slug:        "first-post",
		Title:       "First Post",
		Description: "original description",
		Content:     "some words of content here",
		ReadingTime: 1,
		Author:      DefaultAuthor,
	}
}

func TestApplyIsSparse(t *testing.T) {
	post := basePost()
	patch := PostPatch{Description: strPtr("new description")}
	patch.Apply(&post, time.Now())

	assert.Equal(t, "new description", post.Description)
	assert.Equal(t, "First Post", post.Title)
	assert.Equal(t, "some words of content here", post.Content)
	assert.Equal(t, 1, post.ReadingTime)
	assert.Equal(t, "first-post", post.Slug)
}

func TestApplyRecomputesReadingTimeOnContentChange(t *testing.T) {
	post := basePost()
	long := ""
	for i := 0; i < 500; i++ {
		long += "word "
	}
	patch := PostPatch{Content: strPtr(long)}
	patch.Apply(&post, time.Now())

	assert.Equal(t, long, post.Content)
	assert.Equal(t, 3, post.ReadingTime)
}

func TestApplyStampsPublishedAtOnce(t *testing.T) {
	post := basePost()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	patch := PostPatch{Published: boolPtr(true)}
	patch.Apply(&post, now)

	assert.True(t, post.Published)
	if assert.NotNil(t, post.PublishedAt) {
		assert.Equal(t, now, *post.PublishedAt)
	}

	// Publishing again later must not move the timestamp.
	later := now.Add(48 * time.Hour)
	again := PostPatch{Published: boolPtr(true)}
	again.Apply(&post, later)

	assert.Equal(t, now, *post.PublishedAt)
}

func TestApplyExplicitPublishedAtWins(t *testing.T) {
	post := basePost()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	explicit := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	patch := PostPatch{Published: boolPtr(true), PublishedAt: &explicit}
	patch.Apply(&post, now)

	if assert.NotNil(t, post.PublishedAt) {
		assert.Equal(t, explicit, *post.PublishedAt)
	}
}

func TestApplyUnpublishKeepsPublishedAt(t *testing.T) {
	post := basePost()
	published := time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC)
	post.Published = true
	post.PublishedAt = &published

	patch := PostPatch{Published: boolPtr(false)}
	patch.Apply(&post, time.Now())

	assert.False(t, post.Published)
	assert.Equal(t, published, *post.PublishedAt)
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, PostPatch{}.IsEmpty())
	assert.False(t, PostPatch{Title: strPtr("x")}.IsEmpty())
	assert.False(t, PostPatch{Tags: &[]string{"go"}}.IsEmpty())
}

func TestSortDate(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	published := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	post := Post{CreatedAt: created}
	assert.Equal(t, created, post.SortDate())

	post.PublishedAt = &published
	assert.Equal(t, published, post.SortDate())
}
