package api

import (
	"context"
)

type keyType string

const (
	authenticatedKey keyType = "authenticated"
	requestIDKey     keyType = "requestID"
)

// ctxWithAuthenticated marks whether the request carried valid admin
// credentials
func ctxWithAuthenticated(ctx context.Context, ok bool) context.Context {
	return context.WithValue(ctx, authenticatedKey, ok)
}

// ctxAuthenticated reports whether the request was authenticated. Requests
// that never passed through the auth middleware count as unauthenticated.
func ctxAuthenticated(ctx context.Context) bool {
	ok, _ := ctx.Value(authenticatedKey).(bool)
	return ok
}

func ctxWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func ctxRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
