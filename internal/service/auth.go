package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/masalakitchen/storefront/internal/apperr"
	"github.com/masalakitchen/storefront/internal/models"
	"github.com/masalakitchen/storefront/internal/repo"
	"github.com/masalakitchen/storefront/pkg/tokens"
)

const adminTokenTTL = 24 * time.Hour

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

// Login verifies admin credentials and mints a session token. A wrong email
// and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", apperr.Validation("email and password required")
	}

	admin, err := s.Repo.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)
		}
		return "", apperr.Classify(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)
	}

	token, err := tokens.Mint(s.JWTSecret, admin.Email, tokens.AdminRole, adminTokenTTL)
	if err != nil {
		return "", fmt.Errorf("mint admin token: %w", err)
	}
	return token, nil
}

// EnsureAdmin creates the bootstrap admin account when it does not exist
// yet. Driven by ADMIN_EMAIL / ADMIN_PASSWORD at startup.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.Repo.GetAdminByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Classify(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &models.AdminUser{Email: email, PasswordHash: string(hash)}
	if err := s.Repo.CreateAdmin(ctx, admin); err != nil {
		return apperr.Classify(err)
	}
	return nil
}
