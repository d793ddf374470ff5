package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jmorales/portfolio-backend/errs"
	"github.com/jmorales/portfolio-backend/meta"
	"github.com/jmorales/portfolio-backend/models"
	"github.com/jmorales/portfolio-backend/services"
)

// Bulk deletion is two-factor: credentials plus this exact confirmation
// header, because the operation is irreversible.
const (
	confirmDeleteAllHeader = "X-Confirm-Delete-All"
	confirmDeleteAllValue  = "yes-delete-all-posts"
)

type blogPostHandler struct {
	responder Responder
	logger    zerolog.Logger
	posts     PostStore
	files     FileStore
	resolver  ContentResolver
}

func newBlogPostHandler(posts PostStore, files FileStore, resolver ContentResolver) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder: NewResponder(logger),
		logger:    logger,
		posts:     posts,
		files:     files,
		resolver:  resolver,
	}
}

// listPosts merges published posts from both sources. includeUnpublished
// widens the relational side to drafts and requires credentials;
// featured=true narrows to featured posts, optionally capped by limit.
func (h blogPostHandler) listPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		includeUnpublished, _ := strconv.ParseBool(r.URL.Query().Get("includeUnpublished"))
		if includeUnpublished && !ctxAuthenticated(r.Context()) {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		featured, _ := strconv.ParseBool(r.URL.Query().Get("featured"))

		var err error
		var posts []services.UnifiedPost
		if featured {
			limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
			posts, err = h.resolver.GetFeaturedPosts(limit)
		} else {
			posts, err = h.resolver.GetPublishedPosts(includeUnpublished)
		}
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("posts", err))
			return
		}

		h.responder.WriteJSON(w, postsResponse{Posts: posts, Total: len(posts)})
	}
}

// getPost resolves a slug against both sources. Unpublished posts are
// visible to authenticated callers only.
func (h blogPostHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		post, err := h.resolver.GetPostBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFound("post"))
			return
		}

		if !post.Published && !ctxAuthenticated(r.Context()) {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		h.responder.WriteJSON(w, postResponse{Post: *post})
	}
}

// createPost inserts a relational post, deriving slug and reading time when
// the client did not supply them.
func (h blogPostHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode post request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := req.Validate(); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError(err.Error()))
			return
		}

		slug := req.Slug
		if slug == "" {
			slug = meta.GenerateSlug(req.Title)
		}
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("cannot derive a slug from title"))
			return
		}

		author := req.Author
		if author == "" {
			author = models.DefaultAuthor
		}

		post := models.Post{
			Slug:        slug,
			Title:       req.Title,
			Description: req.Description,
			Content:     req.Content,
			Featured:    req.Featured,
			Published:   req.Published,
			PublishedAt: req.PublishedAt,
			ReadingTime: meta.EstimateReadingTime(req.Content),
			CoverImage:  req.CoverImage,
			Author:      author,
		}
		if post.Published && post.PublishedAt == nil {
			now := time.Now().UTC()
			post.PublishedAt = &now
		}

		if err := h.posts.Create(&post, req.Tags); err != nil {
			h.responder.WriteError(w, errs.FromStore("post", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, postMutationResponse{
			Message: "post created successfully",
			Post:    post,
		})
	}
}

// updatePost applies a sparse patch to a relational post. File-backed posts
// are immutable through the API: a slug that only resolves to a file
// answers 404 explicitly rather than being silently ignored.
func (h blogPostHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, apiErr := h.mutableTarget(chi.URLParam(r, "slug"))
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		var patch models.PostPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode post patch body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if patch.IsEmpty() {
			h.responder.WriteError(w, errs.NewBadRequestError("no fields to update"))
			return
		}
		if patch.Title != nil && *patch.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		if patch.Content != nil && *patch.Content == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("content"))
			return
		}
		if patch.Slug != nil && *patch.Slug == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("slug"))
			return
		}

		updated, err := h.posts.Update(post.ID, patch)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("post", err))
			return
		}

		h.responder.WriteJSON(w, postMutationResponse{
			Message: "post updated successfully",
			Post:    *updated,
		})
	}
}

// deletePost removes a relational post, with the same file-backed
// immutability rule as updatePost.
func (h blogPostHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, apiErr := h.mutableTarget(chi.URLParam(r, "slug"))
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		deleted, err := h.posts.Delete(post.ID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("post", err))
			return
		}

		h.responder.WriteJSON(w, postDeleteResponse{
			Message:     "post deleted successfully",
			DeletedPost: *deleted,
		})
	}
}

// deleteAllPosts removes every relational post. Without the confirmation
// header nothing is deleted, authenticated or not.
func (h blogPostHandler) deleteAllPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(confirmDeleteAllHeader) != confirmDeleteAllValue {
			h.responder.WriteError(w, errs.NewBadRequestError(
				fmt.Sprintf("bulk delete requires header %s: %s", confirmDeleteAllHeader, confirmDeleteAllValue)))
			return
		}

		count, err := h.posts.DeleteAll()
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("posts", err))
			return
		}

		h.logger.Info().Int64("count", count).Msg("bulk deleted all posts")
		h.responder.WriteJSON(w, map[string]any{
			"message": fmt.Sprintf("deleted %d posts", count),
			"count":   count,
		})
	}
}

// mutableTarget resolves a slug to a relational post or explains why it
// cannot be mutated: 404 for unknown slugs, 404 with a read-only message
// for slugs that only exist as files.
func (h blogPostHandler) mutableTarget(slug string) (*models.Post, *errs.ApiErr) {
	if slug == "" {
		return nil, errs.NewBadRequestError("missing slug")
	}

	post, err := h.posts.FindBySlug(slug)
	if err != nil {
		return nil, errs.FromStore("post", err)
	}
	if post != nil {
		return post, nil
	}

	filePost, err := h.files.GetBySlug(slug)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("failed to check file-backed content", err)
	}
	if filePost != nil {
		return nil, errs.NewNotFoundError("post is file-backed and read-only")
	}
	return nil, errs.NewNotFound("post")
}
