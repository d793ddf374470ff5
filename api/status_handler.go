package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jmorales/portfolio-backend/errs"
)

type statusHandler struct {
	responder   Responder
	logger      zerolog.Logger
	posts       PostStore
	tags        TagStore
	files       FileStore
	startupTime time.Time
}

func newStatusHandler(posts PostStore, tags TagStore, files FileStore, startupTime time.Time) statusHandler {
	logger := log.With().Str("handlerName", "statusHandler").Logger()

	return statusHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		posts:       posts,
		tags:        tags,
		files:       files,
		startupTime: startupTime,
	}
}

// getStatus is public; the authenticated flag lets the admin UI verify
// credentials without mutating anything.
func (h statusHandler) getStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		total, err := h.posts.CountAll()
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("posts", err))
			return
		}
		published, err := h.posts.CountPublished()
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("posts", err))
			return
		}
		tags, err := h.tags.FindAll()
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("tags", err))
			return
		}
		slugs, err := h.files.ListSlugs()
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to list file-backed slugs")
		}

		h.responder.WriteJSON(w, map[string]any{
			"status":         "ok",
			"authenticated":  ctxAuthenticated(r.Context()),
			"uptime_seconds": int(time.Since(h.startupTime).Seconds()),
			"posts": map[string]any{
				"database":  total,
				"published": published,
				"files":     len(slugs),
			},
			"tags": len(tags),
		})
	}
}
