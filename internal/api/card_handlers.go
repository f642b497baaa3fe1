package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/flashflow/flashflow/internal/errors"
	"github.com/flashflow/flashflow/internal/logger"
	"github.com/flashflow/flashflow/internal/models"
)

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	cards := s.Cards.ListCards(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{"cards": cards, "total": len(cards)})
}

func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	var data models.AddCardData
	if err := decodeJSON(r, &data); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.Cards.AddCard(r.Context(), data)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("card created: id=%s", card.ID)
	respondJSON(w, http.StatusCreated, card)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	card, err := s.Cards.GetCard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	var patch models.CardPatch
	if err := decodeJSON(r, &patch); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.Cards.UpdateCard(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	if err := s.Cards.DeleteCard(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDueCards(w http.ResponseWriter, r *http.Request) {
	cards := s.Cards.DueCards(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{"cards": cards, "total": len(cards)})
}

func (s *Server) handleReviewCard(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quality *int `json:"quality"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}
	if body.Quality == nil {
		handleError(w, r, errors.NewBadRequestError("quality is required"))
		return
	}

	card, err := s.Cards.ReviewCard(r.Context(), chi.URLParam(r, "id"), *body.Quality)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("card reviewed: id=%s quality=%d", card.ID, *body.Quality)
	respondJSON(w, http.StatusOK, card)
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"topics": s.Cards.Topics(r.Context())})
}

// parseQueryInt returns the named query parameter as an int, or def
// when absent or malformed.
func parseQueryInt(r *http.Request, name string, def int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
