package httpapi

import (
	"errors"
	"net/http"

	"github.com/tinoosan/smartbudget/internal/errs"
)

// POST /v1/users
func (s *Server) postUser(w http.ResponseWriter, r *http.Request) {
	req := r.Context().Value(ctxKeyRegister).(registerRequest)
	u, err := s.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	toJSON(w, http.StatusCreated, toUserResponse(u))
}

// POST /v1/sessions
func (s *Server) postSession(w http.ResponseWriter, r *http.Request) {
	req := r.Context().Value(ctxKeyLogin).(loginRequest)
	u, err := s.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		// Unknown email and wrong password look the same to clients.
		if errors.Is(err, errs.ErrNotFound) || errors.Is(err, errs.ErrUnauthorized) {
			writeErr(w, http.StatusUnauthorized, "invalid email or password", "invalid_credentials")
			return
		}
		s.writeServiceErr(w, r, err)
		return
	}
	tok, exp, err := s.tokens.sign(u.ID)
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, sessionResponse{Token: tok, ExpiresAt: exp.UTC(), User: toUserResponse(u)})
}

// GET /v1/me
func (s *Server) getMe(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.Get(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			unauthorized(w)
			return
		}
		s.writeServiceErr(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, toUserResponse(u))
}
