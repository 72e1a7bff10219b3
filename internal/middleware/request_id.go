package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type requestIdKey struct{}

const requestIdHeader = "X-Request-Id"

// RequestId propagates an inbound request id or generates a fresh one,
// echoing it on the response for log correlation.
func RequestId(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqId := r.Header.Get(requestIdHeader)
		if reqId == "" {
			reqId = uuid.NewString()
		}
		w.Header().Set(requestIdHeader, reqId)

		ctx := context.WithValue(r.Context(), requestIdKey{}, reqId)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestId returns the request id, or "" outside the middleware.
func GetRequestId(ctx context.Context) string {
	reqId, _ := ctx.Value(requestIdKey{}).(string)
	return reqId
}
