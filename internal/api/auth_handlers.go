package api

import (
	"fmt"
	"net/http"

	"garage/internal/models"
	"garage/internal/service"
)

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var input service.SignupInput
	if !decodeBody(w, r, &input) {
		return
	}

	user, token, err := s.authService.Signup(r.Context(), input)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"token": token, "user": user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &input) {
		return
	}

	// Лимит на попытки входа по паре email+IP, чтобы один адрес не мог
	// перебирать чужие пароли.
	limiterKey := fmt.Sprintf("login:%s:%s", input.Email, remoteIP(r))
	allowed, err := s.loginLimiter.Allow(r.Context(), limiterKey, models.LoginRateLimit, models.LoginRateWindow)
	if err != nil {
		s.logger.Error().Err(err).Msg("login rate limiter error")
	} else if !allowed {
		writeError(w, http.StatusTooManyRequests, "too many login attempts, try again later")
		return
	}

	user, token, err := s.authService.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

// handleVerifyToken перечитывает пользователя из БД: токен удалённого
// аккаунта перестаёт проходить проверку.
func (s *Server) handleVerifyToken(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	user, err := s.authService.VerifyUser(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
