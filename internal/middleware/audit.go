package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/idudko/login-checker/internal/audit"
)

// AuditMiddleware notifies auditSubject of the runs a request ingested.
// Handlers report runs through GetAuditContext(ctx).AddRun.
func AuditMiddleware(auditSubject *audit.Subject) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			wrapped := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			auditCtx := NewAuditContext()
			r = r.WithContext(WithAuditContext(r.Context(), auditCtx))

			next.ServeHTTP(wrapped, r)

			if len(auditCtx.Runs) > 0 && auditSubject != nil && wrapped.Status() < http.StatusBadRequest {
				auditSubject.NotifyAll(audit.CreateAuditEvent(r, auditCtx.Runs))
			}
		}
		return http.HandlerFunc(fn)
	}
}

type AuditContext struct {
	Runs []string
}

func NewAuditContext() *AuditContext {
	return &AuditContext{
		Runs: make([]string, 0),
	}
}

func (c *AuditContext) AddRun(id string) {
	c.Runs = append(c.Runs, id)
}

type auditContextKey struct{}

func WithAuditContext(ctx context.Context, auditCtx *AuditContext) context.Context {
	return context.WithValue(ctx, auditContextKey{}, auditCtx)
}

func GetAuditContext(ctx context.Context) *AuditContext {
	if auditCtx, ok := ctx.Value(auditContextKey{}).(*AuditContext); ok {
		return auditCtx
	}
	return nil
}
