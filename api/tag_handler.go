package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jmorales/portfolio-backend/errs"
	"github.com/jmorales/portfolio-backend/meta"
	"github.com/jmorales/portfolio-backend/models"
)

type tagHandler struct {
	responder Responder
	logger    zerolog.Logger
	tags      TagStore
	resolver  ContentResolver
}

func newTagHandler(tags TagStore, resolver ContentResolver) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()

	return tagHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tags:      tags,
		resolver:  resolver,
	}
}

// listTags is public: relational tags merged with file-backed post tags,
// deduplicated by name.
func (h tagHandler) listTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.resolver.GetAllTags()
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("tags", err))
			return
		}
		h.responder.WriteJSON(w, tagsResponse{Tags: tags})
	}
}

func (h tagHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode tag request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := req.Validate(); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError(err.Error()))
			return
		}

		tag := models.Tag{
			Name:        req.Name,
			Slug:        meta.TagSlug(req.Name),
			Description: req.Description,
			Color:       req.Color,
		}
		if tag.Color == "" {
			tag.Color = models.DefaultTagColor
		}

		if err := h.tags.Create(&tag); err != nil {
			h.responder.WriteError(w, errs.FromStore("tag", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, tagMutationResponse{
			Message: "tag created successfully",
			Tag:     tag,
		})
	}
}
