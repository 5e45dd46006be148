package api

import "net/http"

func (s *Server) handleListCarReviews(w http.ResponseWriter, r *http.Request) {
	carID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid car id")
		return
	}

	reviews, err := s.reviewService.ListCarReviews(r.Context(), carID)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reviews": reviews})
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	carID, okID := pathID(r)
	if !okID {
		writeError(w, http.StatusBadRequest, "invalid car id")
		return
	}

	var input struct {
		Comment string `json:"comment"`
	}
	if !decodeBody(w, r, &input) {
		return
	}

	review, err := s.reviewService.CreateReview(r.Context(), claims.UserID, carID, input.Comment)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	id, okID := pathID(r)
	if !okID {
		writeError(w, http.StatusBadRequest, "invalid review id")
		return
	}

	if err := s.reviewService.DeleteReview(r.Context(), claims.UserID, claims.IsAdmin(), id); err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "review deleted"})
}
