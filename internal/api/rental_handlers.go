package api

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"garage/internal/models"
	"garage/internal/service"
)

func parseDate(raw string) (time.Time, bool) {
	t, err := time.Parse(models.DateLayout, raw)
	return t, err == nil
}

func (s *Server) handleCheckAvailability(w http.ResponseWriter, r *http.Request) {
	carID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid car id")
		return
	}

	var input struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	if !decodeBody(w, r, &input) {
		return
	}

	start, okStart := parseDate(input.StartDate)
	end, okEnd := parseDate(input.EndDate)
	if !okStart || !okEnd {
		writeError(w, http.StatusBadRequest, "dates must be in YYYY-MM-DD format")
		return
	}

	conflicts, err := s.rentalService.CheckAvailability(r.Context(), carID, start, end)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	// Занятые даты не ошибка, а обычный ответ.
	writeJSON(w, http.StatusOK, map[string]any{
		"available": len(conflicts) == 0,
		"conflicts": conflicts,
	})
}

func (s *Server) handleCreateRental(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	var input struct {
		CarID     int64  `json:"car_id"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	if !decodeBody(w, r, &input) {
		return
	}

	start, okStart := parseDate(input.StartDate)
	end, okEnd := parseDate(input.EndDate)
	if !okStart || !okEnd {
		writeError(w, http.StatusBadRequest, "dates must be in YYYY-MM-DD format")
		return
	}

	// client_id всегда берётся из claims, не из тела запроса.
	rental, err := s.rentalService.CreateRental(r.Context(), claims.UserID, input.CarID, start, end)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (s *Server) handleListRentals(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	rentals, err := s.rentalService.ListRentals(r.Context(), claims.UserID, claims.IsAdmin())
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rentals": rentals})
}

func (s *Server) handleUpdateRental(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	id, okID := pathID(r)
	if !okID {
		writeError(w, http.StatusBadRequest, "invalid rental id")
		return
	}

	var input struct {
		StartDate *string `json:"start_date"`
		EndDate   *string `json:"end_date"`
	}
	if !decodeBody(w, r, &input) {
		return
	}

	var patch service.RentalPatch
	if input.StartDate != nil {
		start, okDate := parseDate(*input.StartDate)
		if !okDate {
			writeError(w, http.StatusBadRequest, "dates must be in YYYY-MM-DD format")
			return
		}
		patch.StartDate = &start
	}
	if input.EndDate != nil {
		end, okDate := parseDate(*input.EndDate)
		if !okDate {
			writeError(w, http.StatusBadRequest, "dates must be in YYYY-MM-DD format")
			return
		}
		patch.EndDate = &end
	}

	rental, err := s.rentalService.UpdateRental(r.Context(), claims.UserID, claims.IsAdmin(), id, patch)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (s *Server) handleDeleteRental(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	id, okID := pathID(r)
	if !okID {
		writeError(w, http.StatusBadRequest, "invalid rental id")
		return
	}

	if err := s.rentalService.DeleteRental(r.Context(), claims.UserID, claims.IsAdmin(), id); err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "rental deleted"})
}

// handleExportRentals отдаёт xlsx отчёт по арендам периода.
func (s *Server) handleExportRentals(w http.ResponseWriter, r *http.Request) {
	from, okFrom := parseDate(r.URL.Query().Get("from"))
	to, okTo := parseDate(r.URL.Query().Get("to"))
	if !okFrom || !okTo {
		writeError(w, http.StatusBadRequest, "from and to must be in YYYY-MM-DD format")
		return
	}

	rentals, err := s.rentalService.GetRentalsByDateRange(r.Context(), from, to)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	filePath, err := s.exporter.RentalsReport(rentals, from, to)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(filePath))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	http.ServeFile(w, r, filePath)

	if err := os.Remove(filePath); err != nil {
		s.logger.Warn().Err(err).Str("file_path", filePath).Msg("failed to remove export file")
	}
}
