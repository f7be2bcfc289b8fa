package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/quizhub/internal/server/models"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// userResponse is the wire shape of a user. The password hash never appears
// here.
type userResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	IsAdmin        bool      `json:"isAdmin"`
	CompletedGames []string  `json:"completedGames"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toUserResponse(u *models.User) userResponse {
	completed := u.CompletedGames
	if completed == nil {
		completed = []string{}
	}
	return userResponse{
		ID:             u.ID,
		Email:          u.Email,
		IsAdmin:        u.IsAdmin,
		CompletedGames: completed,
		CreatedAt:      u.CreatedAt,
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeValid(w, r, &req) {
		return
	}

	user, token, err := s.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"token": token,
		"user":  toUserResponse(user),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeValid(w, r, &req) {
		return
	}

	token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := CurrentUserID(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := s.users.GetByID(r.Context(), userID)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	actorID, ok := CurrentUserID(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := s.users.Delete(r.Context(), actorID, chi.URLParam(r, "id")); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCompleteGame(w http.ResponseWriter, r *http.Request) {
	userID, ok := CurrentUserID(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := s.users.CompleteGame(r.Context(), userID, chi.URLParam(r, "gameID")); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
