package handler

import (
	"net/http"

	"github.com/trucklog/backend/internal/domain"
	"github.com/trucklog/backend/internal/middleware"
)

// signupRequest is the request body for POST /api/signup.
type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// loginRequest is the request body for POST /api/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the body returned by a successful login.
type loginResponse struct {
	SessionID string            `json:"sessionId"`
	User      domain.PublicUser `json:"user"`
}

// signupResponse is the body returned by a successful signup.
type signupResponse struct {
	Message string            `json:"message"`
	User    domain.PublicUser `json:"user"`
}

// signup handles POST /api/signup.
func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	user, err := s.auth.Signup(r.Context(), req.Username, req.Password, req.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, signupResponse{Message: "User created successfully", User: user})
}

// login handles POST /api/login.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	token, user, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{SessionID: token, User: user})
}

// logout handles POST /api/logout.
// It removes whatever token the request carries; an absent or unknown token
// still gets a 200 because logout is idempotent.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(middleware.SessionHeader)
	if token != "" {
		if err := s.auth.Logout(r.Context(), token); err != nil {
			respondError(w, err)
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
