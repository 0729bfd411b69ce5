package httpx

import (
	"context"
	"net/http"
	"strings"
)

type authContextKey string

const contextKeyUserID authContextKey = "projetorh-user-id"

type contextSetter interface {
	SetContext(context.Context)
}

// requireAuth ensures the request has a valid bearer token before invoking
// the handler. All rejection paths are 401; the message distinguishes a
// missing header, a malformed header and a failed verification, and never
// says whether verification failed from expiry or tampering.
func (r *Router) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx, _, ok := r.ensureAuth(w, req)
		if !ok {
			return
		}
		if setter, ok := w.(contextSetter); ok {
			setter.SetContext(ctx)
		}
		next(w, req.WithContext(ctx))
	}
}

// ensureAuth validates the Authorization header and enriches the context
// with the authenticated subject.
func (r *Router) ensureAuth(w http.ResponseWriter, req *http.Request) (context.Context, string, bool) {
	header := req.Header.Get("Authorization")
	if strings.TrimSpace(header) == "" {
		writeError(w, http.StatusUnauthorized, "token not provided")
		return req.Context(), "", false
	}

	scheme, token, _ := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !strings.EqualFold(scheme, "Bearer") || token == "" {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return req.Context(), "", false
	}

	subject, err := r.auth.Authenticate(token)
	if err != nil {
		r.logger.Warn("token validation failed", "error", err, "path", req.URL.Path)
		writeError(w, http.StatusUnauthorized, "not authorized")
		return req.Context(), "", false
	}
	if subject == "" {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return req.Context(), "", false
	}

	ctx := context.WithValue(req.Context(), contextKeyUserID, subject)
	return ctx, subject, true
}

// userIDFromContext extracts the authenticated subject from context.
func userIDFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(contextKeyUserID)
	if value == nil {
		return "", false
	}
	id, ok := value.(string)
	return id, ok && id != ""
}
