package api

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jmorales/portfolio-backend/models"
	"github.com/jmorales/portfolio-backend/services"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	blogPostHandler blogPostHandler
	tagHandler      tagHandler
	statusHandler   statusHandler
}

// PostStore is what the handlers need from the relational post repository.
type PostStore interface {
	FindBySlug(slug string) (*models.Post, error)
	Create(post *models.Post, tagNames []string) error
	Update(id uint, patch models.PostPatch) (*models.Post, error)
	Delete(id uint) (*models.Post, error)
	DeleteAll() (int64, error)
	CountAll() (int64, error)
	CountPublished() (int64, error)
}

// TagStore is what the handlers need from the relational tag repository.
type TagStore interface {
	FindAll() ([]*models.Tag, error)
	Create(tag *models.Tag) error
}

// FileStore is the read-only view of on-disk content the handlers use to
// tell "not found" apart from "file-backed and immutable".
type FileStore interface {
	GetBySlug(slug string) (*models.FilePost, error)
	ListSlugs() ([]string, error)
}

// ContentResolver is the unified read model over both stores.
type ContentResolver interface {
	GetPostBySlug(slug string) (*services.UnifiedPost, error)
	GetPublishedPosts(includeUnpublished bool) ([]services.UnifiedPost, error)
	GetFeaturedPosts(limit int) ([]services.UnifiedPost, error)
	GetAllTags() ([]models.Tag, error)
}

type createPostRequest struct {
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Featured    bool       `json:"featured"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at"`
	CoverImage  string     `json:"cover_image"`
	Author      string     `json:"author"`
	Tags        []string   `json:"tags"`
}

func (r createPostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required")),
		validation.Field(&r.Content, validation.Required.Error("content is required")),
	)
}

type createTagRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

func (r createTagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("name is required")),
	)
}

type postsResponse struct {
	Posts []services.UnifiedPost `json:"posts"`
	Total int                    `json:"total"`
}

type postResponse struct {
	Post services.UnifiedPost `json:"post"`
}

type postMutationResponse struct {
	Message string      `json:"message"`
	Post    models.Post `json:"post"`
}

type postDeleteResponse struct {
	Message     string      `json:"message"`
	DeletedPost models.Post `json:"deletedPost"`
}

type tagsResponse struct {
	Tags []models.Tag `json:"tags"`
}

type tagMutationResponse struct {
	Message string     `json:"message"`
	Tag     models.Tag `json:"tag"`
}
