package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public and credential-gated endpoint groups.
// Published-content reads are public; every mutation and every read of
// unpublished content goes through requireAuth (the includeUnpublished and
// unpublished-slug cases are enforced inside the handlers, since those
// routes are public for published content).
func setupRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware) {
	r.Get("/status", handlers.statusHandler.getStatus())

	r.Route("/blog", func(r chi.Router) {
		// Public reads
		r.Get("/", handlers.blogPostHandler.listPosts())
		r.Get("/tags", handlers.tagHandler.listTags())
		r.Get("/{slug}", handlers.blogPostHandler.getPost())

		// Mutations
		r.Group(func(r chi.Router) {
			r.Use(auth.require)

			r.Post("/", handlers.blogPostHandler.createPost())
			r.Put("/{slug}", handlers.blogPostHandler.updatePost())
			r.Delete("/{slug}", handlers.blogPostHandler.deletePost())
			r.Delete("/", handlers.blogPostHandler.deleteAllPosts())
			r.Post("/tags", handlers.tagHandler.createTag())
		})
	})
}
