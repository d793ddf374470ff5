package api

import (
	"time"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(posts PostStore, tags TagStore, files FileStore, resolver ContentResolver, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		blogPostHandler: newBlogPostHandler(posts, files, resolver),
		tagHandler:      newTagHandler(tags, resolver),
		statusHandler:   newStatusHandler(posts, tags, files, startupTime),
	}
}
