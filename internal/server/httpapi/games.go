package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/quizhub/internal/server/models"
)

type createGameRequest struct {
	Title     string            `json:"title" validate:"required"`
	StartText string            `json:"startText"`
	EndText   string            `json:"endText"`
	Order     int               `json:"order" validate:"min=0"`
	Questions []models.Question `json:"questions" validate:"dive"`
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.games.List(r.Context())
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	if games == nil {
		games = []*models.Game{}
	}
	writeJSON(w, http.StatusOK, games)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := s.games.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	actorID, ok := CurrentUserID(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createGameRequest
	if !decodeValid(w, r, &req) {
		return
	}

	game, err := s.games.Create(r.Context(), actorID, &models.Game{
		Title:     req.Title,
		StartText: req.StartText,
		EndText:   req.EndText,
		Order:     req.Order,
		Questions: req.Questions,
	})
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	actorID, ok := CurrentUserID(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := s.games.Delete(r.Context(), actorID, chi.URLParam(r, "id")); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleIconUpload(w http.ResponseWriter, r *http.Request) {
	actorID, ok := CurrentUserID(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	url, err := s.games.IconUploadURL(r.Context(), actorID, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (s *Server) handleIconDownload(w http.ResponseWriter, r *http.Request) {
	url, err := s.games.IconDownloadURL(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
