package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// requestInfo collects what inner handlers learn about a request, such as
// the authenticated user, for the completion log line.
type requestInfo struct {
	userID uuid.UUID
}

const ctxKeyRequestInfo ctxKey = "requestInfo"

// noteUser records the authenticated user for requestLogger, if it is in the chain.
func noteUser(ctx context.Context, id uuid.UUID) {
	if info, ok := ctx.Value(ctxKeyRequestInfo).(*requestInfo); ok {
		info.userID = id
	}
}

// requestLogger logs each request at INFO; the completion line carries the
// matched route and, on authenticated routes, the user ID.
func requestLogger(l *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			info := &requestInfo{}
			r = r.WithContext(context.WithValue(r.Context(), ctxKeyRequestInfo, info))

			reqID := chimw.GetReqID(r.Context())
			l.Debug("request started", "req_id", reqID, "method", r.Method, "path", r.URL.Path)

			next.ServeHTTP(ww, r)

			attrs := []any{
				"req_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				attrs = append(attrs, "route", rc.RoutePattern())
			}
			if info.userID != uuid.Nil {
				attrs = append(attrs, "user_id", info.userID.String())
			}
			if ww.Status() >= http.StatusInternalServerError {
				l.Warn("request complete", attrs...)
				return
			}
			l.Info("request complete", attrs...)
		})
	}
}

// recoverer logs panics as ERROR and answers with the internal_error payload.
func recoverer(l *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					attrs := []any{"req_id", chimw.GetReqID(r.Context()), "path", r.URL.Path, "err", rec}
					if info, ok := r.Context().Value(ctxKeyRequestInfo).(*requestInfo); ok && info.userID != uuid.Nil {
						attrs = append(attrs, "user_id", info.userID.String())
					}
					l.Error("panic", append(attrs, "stack", string(debug.Stack()))...)
					writeErr(w, http.StatusInternalServerError, "internal_error", "internal_error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
