package api

import "net/http"

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	entries := s.Progress.Entries(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.Progress.Summary(r.Context()))
}

func (s *Server) handleDistribution(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"buckets": s.Progress.Distribution(r.Context())})
}

func (s *Server) handleTopicProgress(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"topics": s.Progress.TopicProgress(r.Context())})
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	days := parseQueryInt(r, "days", 0)
	respondJSON(w, http.StatusOK, map[string]any{"activity": s.Progress.Activity(r.Context(), days)})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.Progress.Reset(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
