package apitest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nzaccagnino/notely/internal/api"
)

type contextKey string

const userContextKey contextKey = "user"

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			jsonError(w, "missing authentication", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			jsonError(w, "invalid authorization header", http.StatusUnauthorized)
			return
		}

		c, err := s.tokens.Validate(parts[1])
		if err != nil {
			jsonError(w, "invalid token", http.StatusUnauthorized)
			return
		}

		u := s.store.userByID(c.UserID)
		if u == nil {
			jsonError(w, "user not found", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getUserFromContext(r *http.Request) *user {
	u, _ := r.Context().Value(userContextKey).(*user)
	return u
}

// Auth handlers

func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		jsonError(w, "name, email and password are required", http.StatusBadRequest)
		return
	}

	if len(req.Password) < 6 {
		jsonError(w, "password must be at least 6 characters", http.StatusBadRequest)
		return
	}

	u, err := s.store.createUser(req.Name, req.Email, req.Password)
	if errors.Is(err, errEmailTaken) {
		jsonError(w, "Email is already in use", http.StatusBadRequest)
		return
	}
	if err != nil {
		jsonError(w, "failed to create user", http.StatusInternalServerError)
		return
	}

	jsonResponse(w, api.RegisterData{UserID: u.ID}, "User Created", http.StatusCreated)
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		jsonError(w, "email and password are required", http.StatusBadRequest)
		return
	}

	u := s.store.userByEmail(req.Email)
	if u == nil || !validatePassword(u, req.Password) {
		jsonError(w, "Email or password is wrong", http.StatusUnauthorized)
		return
	}

	token, err := s.tokens.Generate(u.ID)
	if err != nil {
		jsonError(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	jsonResponse(w, api.LoginData{AccessToken: token}, "User logged successfully", http.StatusOK)
}

func (s *Server) meHandler(w http.ResponseWriter, r *http.Request) {
	u := getUserFromContext(r)
	jsonResponse(w, u.User, "User retrieved", http.StatusOK)
}

// Notes handlers

func (s *Server) listNotesHandler(archived bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := getUserFromContext(r)
		jsonResponse(w, s.store.listNotes(u.ID, archived), "Notes retrieved", http.StatusOK)
	}
}

func (s *Server) getNoteHandler(w http.ResponseWriter, r *http.Request) {
	u := getUserFromContext(r)
	noteID := chi.URLParam(r, "id")

	note, ok := s.store.getNote(u.ID, noteID)
	if !ok {
		jsonError(w, "Note is not found", http.StatusNotFound)
		return
	}

	jsonResponse(w, note, "Note retrieved", http.StatusOK)
}

func (s *Server) addNoteHandler(w http.ResponseWriter, r *http.Request) {
	u := getUserFromContext(r)

	var req api.Note
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		jsonError(w, "title is required", http.StatusBadRequest)
		return
	}

	note := s.store.addNote(u.ID, req)
	jsonResponse(w, note, "Note created", http.StatusCreated)
}

func (s *Server) deleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	u := getUserFromContext(r)
	noteID := chi.URLParam(r, "id")

	if !s.store.deleteNote(u.ID, noteID) {
		jsonError(w, "Note is not found", http.StatusNotFound)
		return
	}

	jsonResponse(w, nil, "Note deleted", http.StatusOK)
}

func (s *Server) setArchivedHandler(archived bool) http.HandlerFunc {
	message := "Note unarchived"
	if archived {
		message = "Note archived"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		u := getUserFromContext(r)
		noteID := chi.URLParam(r, "id")

		if !s.store.setArchived(u.ID, noteID, archived) {
			jsonError(w, "Note is not found", http.StatusNotFound)
			return
		}

		jsonResponse(w, nil, message, http.StatusOK)
	}
}
