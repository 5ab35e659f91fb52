package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/spec-kit/kit-service/internal/auth"
	"github.com/spec-kit/kit-service/internal/config"
	apperrors "github.com/spec-kit/kit-service/pkg/util"
)

// AdminAuthService authenticates the catalog operator configured in the environment.
type AdminAuthService struct {
	email        string
	passwordHash string
	tokenMgr     *auth.TokenManager
}

// NewAdminAuthService builds the service.
func NewAdminAuthService(cfg config.AuthConfig) *AdminAuthService {
	return &AdminAuthService{
		email:        strings.ToLower(strings.TrimSpace(cfg.AdminEmail)),
		passwordHash: cfg.AdminPasswordHash,
		tokenMgr:     auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
	}
}

// TokenManager exposes the manager for the auth middleware.
func (s *AdminAuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Enabled reports whether operator credentials are configured. A password
// hash that is not bcrypt leaves login disabled.
func (s *AdminAuthService) Enabled() bool {
	return s.email != "" && auth.IsPasswordHash(s.passwordHash)
}

// Login checks the operator credentials and issues a token.
func (s *AdminAuthService) Login(_ context.Context, email, password string) (string, time.Time, error) {
	if !s.Enabled() {
		return "", time.Time{}, apperrors.NewUnavailable("admin login is not configured", nil)
	}

	given := strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(given), []byte(s.email)) == 1
	passwordErr := auth.ComparePassword(s.passwordHash, password)
	if !emailOK || passwordErr != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(s.email, auth.SubjectTypeAdmin)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, exp, nil
}
