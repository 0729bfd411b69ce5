package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/datelohan/projetorh/internal/domain"
	"github.com/datelohan/projetorh/internal/repository"
	"github.com/datelohan/projetorh/internal/service/user"
)

func invalidRoleMessage() string {
	allowed := make([]string, 0, len(domain.Roles))
	for _, role := range domain.Roles {
		allowed = append(allowed, string(role))
	}
	return "invalid role, allowed values: " + strings.Join(allowed, ", ")
}

func (r *Router) handleUsers(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		users, err := r.users.List(req.Context())
		if err != nil {
			r.fail(w, req, err)
			return
		}
		public := make([]domain.PublicUser, 0, len(users))
		for i := range users {
			public = append(public, users[i].Public())
		}
		writeJSON(w, http.StatusOK, public)
	case http.MethodPost:
		var payload struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"role"`
			Active   *bool  `json:"active"`
		}
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if payload.Name == "" || payload.Email == "" || payload.Password == "" || payload.Role == "" {
			writeError(w, http.StatusBadRequest, "name, email, password and role are required")
			return
		}
		created, err := r.users.Create(req.Context(), user.CreateInput{
			Name:     payload.Name,
			Email:    payload.Email,
			Password: payload.Password,
			Role:     payload.Role,
			Active:   payload.Active,
		})
		if err != nil {
			r.writeUserError(w, req, err)
			return
		}
		writeJSON(w, http.StatusCreated, created.Public())
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleUserByID(w http.ResponseWriter, req *http.Request) {
	id := strings.TrimPrefix(req.URL.Path, "/usuarios/")
	if id == "" || strings.Contains(id, "/") {
		r.notFound(w)
		return
	}
	switch req.Method {
	case http.MethodPut:
		var payload struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Role     string `json:"role"`
			Active   *bool  `json:"active"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if payload.Name == "" || payload.Email == "" || payload.Role == "" {
			writeError(w, http.StatusBadRequest, "name, email and role are required")
			return
		}
		updated, err := r.users.Update(req.Context(), id, user.UpdateInput{
			Name:     payload.Name,
			Email:    payload.Email,
			Role:     payload.Role,
			Active:   payload.Active,
			Password: payload.Password,
		})
		if err != nil {
			r.writeUserError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, updated.Public())
	case http.MethodDelete:
		if err := r.users.Delete(req.Context(), id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				writeError(w, http.StatusNotFound, "user not found")
				return
			}
			r.fail(w, req, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) writeUserError(w http.ResponseWriter, req *http.Request, err error) {
	switch {
	case errors.Is(err, user.ErrInvalidRole):
		writeError(w, http.StatusBadRequest, invalidRoleMessage())
	case errors.Is(err, user.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	default:
		r.fail(w, req, err)
	}
}
