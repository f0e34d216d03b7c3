package services

import (
	"errors"
	"strings"

	"github.com/remaep/registry_service/internal/domain"
	"github.com/remaep/registry_service/internal/dto"
	"github.com/remaep/registry_service/internal/helper"
	"github.com/remaep/registry_service/internal/repository"
)

type AuthService interface {
	// Login verifies the credential pair and returns the admin account.
	Login(input dto.AdminLogin) (*domain.AdminUser, error)
}

type authService struct {
	repo repository.AdminRepository
	auth helper.Auth
}

func NewAuthService(repo repository.AdminRepository, auth helper.Auth) AuthService {
	return &authService{
		repo: repo,
		auth: auth,
	}
}

func (s *authService) Login(input dto.AdminLogin) (*domain.AdminUser, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)

	if email == "" || password == "" {
		return nil, errors.New("invalid email or password")
	}

	admin, err := s.repo.FindByEmail(email)
	if err != nil || admin == nil || admin.ID == 0 {
		return nil, errors.New("invalid email or password")
	}

	if err := s.auth.VerifyPassword(password, admin.PasswordHash); err != nil {
		return nil, errors.New("invalid email or password")
	}

	return admin, nil
}
