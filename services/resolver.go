// Package services holds the cross-cutting logic above the stores, most
// importantly the resolver that merges file-backed and database-backed
// posts into one read model.
package services

import (
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jmorales/portfolio-backend/meta"
	"github.com/jmorales/portfolio-backend/models"
)

// Post sources for UnifiedPost.Source.
const (
	SourceDatabase = "database"
	SourceFile     = "file"
)

// PostStore is the slice of the relational store the resolver reads from.
type PostStore interface {
	FindAll() ([]*models.Post, error)
	FindPublished() ([]*models.Post, error)
	FindFeatured(limit int) ([]*models.Post, error)
	FindBySlug(slug string) (*models.Post, error)
}

// TagStore lists the relational tags.
type TagStore interface {
	FindAll() ([]*models.Tag, error)
}

// FileStore is the slice of the file-backed store the resolver reads from.
type FileStore interface {
	ListPosts() ([]models.FilePost, error)
	GetBySlug(slug string) (*models.FilePost, error)
}

// UnifiedPost is the one external read-model shape both post sources
// normalize to.
type UnifiedPost struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Content     string     `json:"content"`
	Tags        []string   `json:"tags"`
	Featured    bool       `json:"featured"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ReadingTime int        `json:"reading_time"`
	Author      string     `json:"author,omitempty"`
	CoverImage  string     `json:"cover_image,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	Source      string     `json:"source"`
}

// Resolver presents one catalog over both stores, keyed by slug. The
// database is checked first on lookups because it is the only mutable
// source; static files authored into the deployment artifact fill in the
// rest.
type Resolver struct {
	posts  PostStore
	tags   TagStore
	files  FileStore
	logger zerolog.Logger
}

func NewResolver(posts PostStore, tags TagStore, files FileStore) *Resolver {
	return &Resolver{
		posts:  posts,
		tags:   tags,
		files:  files,
		logger: log.With().Str("component", "resolver").Logger(),
	}
}

// GetPostBySlug looks the slug up in the database first, then falls back to
// the file store. Returns nil when neither source knows the slug.
func (r *Resolver) GetPostBySlug(slug string) (*UnifiedPost, error) {
	post, err := r.posts.FindBySlug(slug)
	if err != nil {
		return nil, err
	}
	if post != nil {
		u := fromDatabase(*post)
		return &u, nil
	}

	filePost, err := r.files.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if filePost == nil {
		return nil, nil
	}
	u := fromFile(*filePost)
	return &u, nil
}

// GetPublishedPosts merges both stores' visible posts newest-first.
// File-backed drafts never appear; unpublished database posts appear only
// when includeUnpublished is set.
func (r *Resolver) GetPublishedPosts(includeUnpublished bool) ([]UnifiedPost, error) {
	var stored []*models.Post
	var err error
	if includeUnpublished {
		stored, err = r.posts.FindAll()
	} else {
		stored, err = r.posts.FindPublished()
	}
	if err != nil {
		return nil, err
	}

	filePosts, err := r.files.ListPosts()
	if err != nil {
		return nil, err
	}

	merged := make([]UnifiedPost, 0, len(stored)+len(filePosts))
	for _, post := range stored {
		merged = append(merged, fromDatabase(*post))
	}
	for _, post := range filePosts {
		merged = append(merged, fromFile(post))
	}
	sortNewestFirst(merged)
	return merged, nil
}

// GetFeaturedPosts merges featured posts from both sources, newest-first,
// capped at limit.
func (r *Resolver) GetFeaturedPosts(limit int) ([]UnifiedPost, error) {
	stored, err := r.posts.FindFeatured(limit)
	if err != nil {
		return nil, err
	}
	filePosts, err := r.files.ListPosts()
	if err != nil {
		return nil, err
	}

	merged := make([]UnifiedPost, 0, len(stored))
	for _, post := range stored {
		merged = append(merged, fromDatabase(*post))
	}
	for _, post := range filePosts {
		if post.Featured {
			merged = append(merged, fromFile(post))
		}
	}
	sortNewestFirst(merged)
	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

// GetAllTags merges relational tags with the plain-string tags found on
// file-backed posts, deduplicating by case-folded name. File-only tags get
// derived slugs and the default color.
func (r *Resolver) GetAllTags() ([]models.Tag, error) {
	stored, err := r.tags.FindAll()
	if err != nil {
		return nil, err
	}
	filePosts, err := r.files.ListPosts()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(stored))
	tags := make([]models.Tag, 0, len(stored))
	for _, tag := range stored {
		seen[strings.ToLower(tag.Name)] = true
		tags = append(tags, *tag)
	}
	for _, post := range filePosts {
		for _, name := range post.Tags {
			key := strings.ToLower(strings.TrimSpace(name))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			tags = append(tags, models.Tag{
				Name:  name,
				Slug:  meta.TagSlug(name),
				Color: models.DefaultTagColor,
			})
		}
	}
	return tags, nil
}

func fromDatabase(post models.Post) UnifiedPost {
	tags := make([]string, 0, len(post.Tags))
	for _, tag := range post.Tags {
		tags = append(tags, tag.Name)
	}
	createdAt := post.CreatedAt
	return UnifiedPost{
		Slug:        post.Slug,
		Title:       post.Title,
		Description: post.Description,
		Content:     post.Content,
		Tags:        tags,
		Featured:    post.Featured,
		Published:   post.Published,
		PublishedAt: post.PublishedAt,
		ReadingTime: post.ReadingTime,
		Author:      post.Author,
		CoverImage:  post.CoverImage,
		CreatedAt:   &createdAt,
		Source:      SourceDatabase,
	}
}

func fromFile(post models.FilePost) UnifiedPost {
	var publishedAt *time.Time
	if !post.Date.IsZero() {
		date := post.Date
		publishedAt = &date
	}
	return UnifiedPost{
		Slug:        post.Slug,
		Title:       post.Title,
		Description: post.Description,
		Content:     post.Content,
		Tags:        post.Tags,
		Featured:    post.Featured,
		Published:   !post.Draft,
		PublishedAt: publishedAt,
		ReadingTime: meta.EstimateReadingTime(post.Content),
		Source:      SourceFile,
	}
}

func sortNewestFirst(posts []UnifiedPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		return sortDate(posts[i]).After(sortDate(posts[j]))
	})
}

func sortDate(post UnifiedPost) time.Time {
	if post.PublishedAt != nil {
		return *post.PublishedAt
	}
	if post.CreatedAt != nil {
		return *post.CreatedAt
	}
	return time.Time{}
}
