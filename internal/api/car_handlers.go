package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"garage/internal/models"

	"github.com/go-chi/chi/v5"
)

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func (s *Server) handleListCars(w http.ResponseWriter, r *http.Request) {
	query, err := parseCarQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cars, err := s.carService.QueryCars(r.Context(), query)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"cars":  cars,
		"page":  query.Page,
		"limit": query.Limit,
	})
}

func parseCarQuery(values url.Values) (models.CarQuery, error) {
	var q models.CarQuery

	q.Filter.NameContains = strings.TrimSpace(values.Get("name"))
	q.Filter.ColorContains = strings.TrimSpace(values.Get("color"))

	var parseErr error
	floatParam := func(name string) *float64 {
		raw := values.Get(name)
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			parseErr = badParam(name)
			return nil
		}
		return &v
	}
	intParam := func(name string) *int64 {
		raw := values.Get(name)
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			parseErr = badParam(name)
			return nil
		}
		return &v
	}

	q.Filter.MinPrice = floatParam("minPrice")
	q.Filter.MaxPrice = floatParam("maxPrice")
	q.Filter.MinEngineVolume = floatParam("minEngineVolume")
	q.Filter.MaxEngineVolume = floatParam("maxEngineVolume")
	q.Filter.MinHorsepower = intParam("minHorsepower")
	q.Filter.MaxHorsepower = intParam("maxHorsepower")
	q.Filter.BodyTypeID = intParam("bodyTypeId")
	q.Filter.ClassID = intParam("classId")
	q.Filter.FuelTypeID = intParam("fuelTypeId")

	if raw := values.Get("available"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			parseErr = badParam("available")
		}
		q.Filter.Available = &v
	}
	if raw := values.Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			parseErr = badParam("page")
		}
		q.Page = v
	}
	if raw := values.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			parseErr = badParam("limit")
		}
		q.Limit = v
	}
	if parseErr != nil {
		return q, parseErr
	}

	q.SortBy = strings.TrimSpace(values.Get("sortBy"))
	q.Desc = strings.EqualFold(values.Get("order"), "desc")
	return q, nil
}

type paramError struct{ name string }

func (e paramError) Error() string { return "invalid value for parameter " + e.name }

func badParam(name string) error { return paramError{name: name} }

func (s *Server) handleGetCar(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid car id")
		return
	}

	car, err := s.carService.GetCar(r.Context(), id)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (s *Server) handleCreateCar(w http.ResponseWriter, r *http.Request) {
	var input models.CarInput
	if !decodeBody(w, r, &input) {
		return
	}

	car, err := s.carService.CreateCar(r.Context(), input)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, car)
}

func (s *Server) handleUpdateCar(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid car id")
		return
	}

	var input models.CarInput
	if !decodeBody(w, r, &input) {
		return
	}

	car, err := s.carService.UpdateCar(r.Context(), id, input)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (s *Server) handleDeleteCar(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid car id")
		return
	}

	if err := s.carService.DeleteCar(r.Context(), id); err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "car deleted"})
}
