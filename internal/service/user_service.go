package service

import (
	"context"
	"strings"

	"garage/internal/domain"
	"garage/internal/models"
)

type UserService struct {
	repo domain.Repository
}

func NewUserService(repo domain.Repository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.repo.GetAllUsers(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *UserService) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	patch.Email = strings.TrimSpace(patch.Email)
	if !emailPattern.MatchString(patch.Email) {
		return nil, invalidInput("email must be a valid email address")
	}
	if patch.Role != models.RoleUser && patch.Role != models.RoleAdmin {
		return nil, invalidInput("role must be admin or user")
	}
	return s.repo.UpdateUser(ctx, id, patch)
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	return s.repo.DeleteUser(ctx, id)
}
