package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"garage/internal/auth"
	"garage/internal/config"
	"garage/internal/database"
	"garage/internal/export"
	"garage/internal/models"
	"garage/internal/repository"
	"garage/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	handler http.Handler
	db      *database.DB
	tokens  *auth.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zerolog.Nop()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"), &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:              0,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      15 * time.Second,
		},
		// rps 0 отключает общий лимитер в тестах
		RateLimit: config.RateLimitConfig{RPS: 0},
	}

	services := Services{
		Auth:      service.NewAuthService(db, tokens, &logger),
		Cars:      service.NewCarService(db),
		Rentals:   service.NewRentalService(db, nil, &logger),
		Reviews:   service.NewReviewService(db, nil, &logger),
		Users:     service.NewUserService(db),
		Reference: service.NewReferenceService(db),
	}

	exporter := export.NewExporter(t.TempDir(), &logger)
	server := NewServer(cfg, tokens, services, repository.NewMemoryRateLimiter(), exporter, &logger)

	return &testEnv{handler: server.Handler(), db: db, tokens: tokens}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.RemoteAddr = "192.0.2.1:12345"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

// signupToken регистрирует пользователя через API и возвращает его токен.
func (e *testEnv) signupToken(t *testing.T, email, role string) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/signup", "", map[string]string{
		"email":      email,
		"password":   "password123",
		"first_name": "Иван",
		"last_name":  "Петров",
		"role":       role,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decodeJSON(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (e *testEnv) createCar(t *testing.T, adminToken, name string, price float64) int64 {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/cars", adminToken, map[string]any{
		"name":          name,
		"color":         "белый",
		"price_per_day": price,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var car models.Car
	decodeJSON(t, rec, &car)
	return car.ID
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSignupAndLogin(t *testing.T) {
	env := newTestEnv(t)

	env.signupToken(t, "user@example.com", "")

	// Повторная регистрация того же email
	rec := env.do(t, http.MethodPost, "/api/signup", "", map[string]string{
		"email":      "user@example.com",
		"password":   "password123",
		"first_name": "A",
		"last_name":  "B",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/signup", "", map[string]string{
		"email":      "bad-email",
		"password":   "password123",
		"first_name": "A",
		"last_name":  "B",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"email":    "user@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"email":    "user@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var errResp map[string]string
	decodeJSON(t, rec, &errResp)
	assert.NotEmpty(t, errResp["error"])
}

func TestLogin_RateLimited(t *testing.T) {
	env := newTestEnv(t)
	env.signupToken(t, "victim@example.com", "")

	body := map[string]string{"email": "victim@example.com", "password": "wrong"}
	for i := 0; i < models.LoginRateLimit; i++ {
		rec := env.do(t, http.MethodPost, "/api/login", "", body)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := env.do(t, http.MethodPost, "/api/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestVerifyToken(t *testing.T) {
	env := newTestEnv(t)
	token := env.signupToken(t, "user@example.com", "")

	rec := env.do(t, http.MethodGet, "/api/verify-token", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/verify-token", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/verify-token", "garbage.token.here", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyToken_DeletedUser(t *testing.T) {
	env := newTestEnv(t)
	token := env.signupToken(t, "gone@example.com", "")

	user, err := env.db.GetUserByEmail(context.Background(), "gone@example.com")
	require.NoError(t, err)
	require.NoError(t, env.db.DeleteUser(context.Background(), user.ID))

	rec := env.do(t, http.MethodGet, "/api/verify-token", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCars_PublicReadAdminWrite(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.signupToken(t, "admin@example.com", models.RoleAdmin)
	userToken := env.signupToken(t, "user@example.com", "")

	// Запись только для администратора
	carBody := map[string]any{"name": "Camry", "color": "белый", "price_per_day": 1500.0}
	rec := env.do(t, http.MethodPost, "/api/cars", "", carBody)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/cars", userToken, carBody)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	carID := env.createCar(t, adminToken, "Camry", 1500)

	// Чтение публичное
	rec = env.do(t, http.MethodGet, "/api/cars", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/cars/%d", carID), "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/cars/99999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPut, fmt.Sprintf("/api/cars/%d", carID), adminToken,
		map[string]any{"name": "Camry 2024", "color": "белый", "price_per_day": 1700.0})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/cars/%d", carID), adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCars_FilterAndSort(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.signupToken(t, "admin@example.com", models.RoleAdmin)

	env.createCar(t, adminToken, "Car A", 800)
	env.createCar(t, adminToken, "Car B", 1500)
	env.createCar(t, adminToken, "Car C", 2500)

	rec := env.do(t, http.MethodGet, "/api/cars?minPrice=1000&maxPrice=2000", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Cars []models.Car `json:"cars"`
	}
	decodeJSON(t, rec, &resp)
	require.Len(t, resp.Cars, 1)
	assert.Equal(t, "Car B", resp.Cars[0].Name)

	// Неизвестное поле сортировки отклоняется, а не подменяется молча
	rec = env.do(t, http.MethodGet, "/api/cars?sortBy=password_hash", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/cars?minPrice=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckAvailability(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.signupToken(t, "admin@example.com", models.RoleAdmin)
	userToken := env.signupToken(t, "user@example.com", "")
	carID := env.createCar(t, adminToken, "Camry", 1500)

	rec := env.do(t, http.MethodPost, "/api/rentals", userToken, map[string]any{
		"car_id":     carID,
		"start_date": "2024-06-01",
		"end_date":   "2024-06-05",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Касание границы: занято, но это не ошибка
	rec = env.do(t, http.MethodPost, fmt.Sprintf("/api/cars/%d/check-availability", carID), userToken,
		map[string]string{"start_date": "2024-06-05", "end_date": "2024-06-08"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Available bool               `json:"available"`
		Conflicts []models.DateRange `json:"conflicts"`
	}
	decodeJSON(t, rec, &resp)
	assert.False(t, resp.Available)
	require.Len(t, resp.Conflicts, 1)

	rec = env.do(t, http.MethodPost, fmt.Sprintf("/api/cars/%d/check-availability", carID), userToken,
		map[string]string{"start_date": "2024-06-06", "end_date": "2024-06-08"})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &resp)
	assert.True(t, resp.Available)

	// start >= end это ошибка валидации
	rec = env.do(t, http.MethodPost, fmt.Sprintf("/api/cars/%d/check-availability", carID), userToken,
		map[string]string{"start_date": "2024-06-08", "end_date": "2024-06-06"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRentals_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.signupToken(t, "admin@example.com", models.RoleAdmin)
	aliceToken := env.signupToken(t, "alice@example.com", "")
	bobToken := env.signupToken(t, "bob@example.com", "")
	carID := env.createCar(t, adminToken, "Camry", 1500)

	rec := env.do(t, http.MethodPost, "/api/rentals", aliceToken, map[string]any{
		"car_id":     carID,
		"start_date": "2024-06-01",
		"end_date":   "2024-06-05",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var rental models.Rental
	decodeJSON(t, rec, &rental)
	// Стоимость считает сервер: 4 суток по 1500
	assert.Equal(t, 6000.0, rental.TotalPrice)

	// Пересекающаяся аренда конфликтует
	rec = env.do(t, http.MethodPost, "/api/rentals", bobToken, map[string]any{
		"car_id":     carID,
		"start_date": "2024-06-03",
		"end_date":   "2024-06-07",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Боб видит только свои аренды
	rec = env.do(t, http.MethodGet, "/api/rentals", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listResp struct {
		Rentals []models.Rental `json:"rentals"`
	}
	decodeJSON(t, rec, &listResp)
	assert.Empty(t, listResp.Rentals)

	rec = env.do(t, http.MethodGet, "/api/rentals", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &listResp)
	assert.Len(t, listResp.Rentals, 1)

	// Администратор видит все
	rec = env.do(t, http.MethodGet, "/api/rentals", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &listResp)
	assert.Len(t, listResp.Rentals, 1)

	// Чужую аренду менять нельзя
	path := fmt.Sprintf("/api/rentals/%d", rental.ID)
	rec = env.do(t, http.MethodPut, path, bobToken, map[string]string{"end_date": "2024-06-06"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPut, path, aliceToken, map[string]string{"end_date": "2024-06-06"})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &rental)
	assert.Equal(t, 7500.0, rental.TotalPrice)

	rec = env.do(t, http.MethodDelete, path, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodDelete, path, aliceToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, path, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReviews(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.signupToken(t, "admin@example.com", models.RoleAdmin)
	authorToken := env.signupToken(t, "author@example.com", "")
	strangerToken := env.signupToken(t, "stranger@example.com", "")
	carID := env.createCar(t, adminToken, "Camry", 1500)

	reviewsPath := fmt.Sprintf("/api/cars/%d/reviews", carID)

	rec := env.do(t, http.MethodPost, reviewsPath, "", map[string]string{"comment": "норм"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, reviewsPath, authorToken, map[string]string{"comment": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, reviewsPath, authorToken, map[string]string{"comment": "Отличная машина"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var review models.Review
	decodeJSON(t, rec, &review)
	assert.Equal(t, "Camry", review.CarName)

	// Список публичный, свежий отзыв первым
	rec = env.do(t, http.MethodGet, reviewsPath, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listResp struct {
		Reviews []models.Review `json:"reviews"`
	}
	decodeJSON(t, rec, &listResp)
	require.Len(t, listResp.Reviews, 1)
	assert.Equal(t, "Отличная машина", listResp.Reviews[0].Comment)

	deletePath := fmt.Sprintf("/api/reviews/%d", review.ID)
	rec = env.do(t, http.MethodDelete, deletePath, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodDelete, deletePath, authorToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUsersAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.signupToken(t, "admin@example.com", models.RoleAdmin)
	userToken := env.signupToken(t, "user@example.com", "")

	rec := env.do(t, http.MethodGet, "/api/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/users", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listResp struct {
		Users []models.User `json:"users"`
	}
	decodeJSON(t, rec, &listResp)
	assert.Len(t, listResp.Users, 2)

	// Хэш пароля не сериализуется
	assert.NotContains(t, rec.Body.String(), "password_hash")
}

func TestReferenceEndpoints(t *testing.T) {
	env := newTestEnv(t)

	err := env.db.SyncReferences(context.Background(), models.ReferenceData{
		BodyTypes: []models.BodyType{{TypeName: "Седан"}},
		Statuses:  []models.Status{{Available: true}},
	})
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, "/api/body-types", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Седан")

	rec = env.do(t, http.MethodGet, "/api/statuses", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExportRentals(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.signupToken(t, "admin@example.com", models.RoleAdmin)
	userToken := env.signupToken(t, "user@example.com", "")
	carID := env.createCar(t, adminToken, "Camry", 1500)

	rec := env.do(t, http.MethodPost, "/api/rentals", userToken, map[string]any{
		"car_id":     carID,
		"start_date": "2024-06-01",
		"end_date":   "2024-06-05",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/rentals/export?from=2024-06-01&to=2024-06-30", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/rentals/export?from=2024-06-01&to=2024-06-30", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotEmpty(t, rec.Body.Bytes())

	rec = env.do(t, http.MethodGet, "/api/rentals/export?from=bad&to=2024-06-30", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
