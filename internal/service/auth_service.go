package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"garage/internal/auth"
	"garage/internal/database"
	"garage/internal/domain"
	"garage/internal/models"

	"github.com/rs/zerolog"
)

var emailPattern = regexp.MustCompile(`^[\w.+-]+@[\w-]+\.[\w.-]+$`)

type AuthService struct {
	repo   domain.Repository
	tokens *auth.TokenManager
	logger *zerolog.Logger
}

func NewAuthService(repo domain.Repository, tokens *auth.TokenManager, logger *zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, logger: logger}
}

type SignupInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	MiddleName  string `json:"middle_name"`
	Role        string `json:"role"`
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*models.User, string, error) {
	input.Email = strings.TrimSpace(input.Email)
	if !emailPattern.MatchString(input.Email) {
		return nil, "", invalidInput("email must be a valid email address")
	}
	if len(input.Password) < 6 {
		return nil, "", invalidInput("password must be at least 6 characters")
	}
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return nil, "", invalidInput("first name and last name are required")
	}
	if input.Role == "" {
		input.Role = models.RoleUser
	}
	if input.Role != models.RoleUser && input.Role != models.RoleAdmin {
		return nil, "", invalidInput("role must be admin or user")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Email:        input.Email,
		PasswordHash: hash,
		PhoneNumber:  input.PhoneNumber,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		MiddleName:   input.MiddleName,
		Role:         input.Role,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("user signed up")
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", invalidInput("email and password are required")
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// VerifyUser перепроверяет, что пользователь из claims всё ещё существует.
// Используется только на /verify-token; остальные вызовы доверяют claims.
func (s *AuthService) VerifyUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}
