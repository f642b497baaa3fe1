package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", s.handleListCards)
			r.Post("/", s.handleAddCard)
			r.Get("/due", s.handleDueCards)
			r.Get("/{id}", s.handleGetCard)
			r.Patch("/{id}", s.handleUpdateCard)
			r.Delete("/{id}", s.handleDeleteCard)
			r.Post("/{id}/review", s.handleReviewCard)
		})

		r.Get("/topics", s.handleTopics)
		r.Get("/progress", s.handleProgress)

		r.Route("/stats", func(r chi.Router) {
			r.Get("/summary", s.handleSummary)
			r.Get("/distribution", s.handleDistribution)
			r.Get("/topics", s.handleTopicProgress)
			r.Get("/activity", s.handleActivity)
		})

		r.Post("/reset", s.handleReset)
	})

	return r
}
