package api

import "net/http"

func (s *Server) handleListBodyTypes(w http.ResponseWriter, r *http.Request) {
	items, err := s.referenceService.ListBodyTypes(r.Context())
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"body_types": items})
}

func (s *Server) handleListClasses(w http.ResponseWriter, r *http.Request) {
	items, err := s.referenceService.ListClasses(r.Context())
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"classes": items})
}

func (s *Server) handleListFuelTypes(w http.ResponseWriter, r *http.Request) {
	items, err := s.referenceService.ListFuelTypes(r.Context())
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"fuel_types": items})
}

func (s *Server) handleListStatuses(w http.ResponseWriter, r *http.Request) {
	items, err := s.referenceService.ListStatuses(r.Context())
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"statuses": items})
}
