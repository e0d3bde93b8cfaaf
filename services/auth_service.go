package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/tourney/utils"
	"github.com/golang-jwt/jwt/v4"
)

const (
	RoleOrganizer = "organizer"

	tokenTTL = 24 * time.Hour
)

type AuthService interface {
	// Enabled reports whether an admin password is configured. When it is
	// not, organiser routes are open.
	Enabled() bool
	Login(ctx context.Context, password string) (string, error)
	ParseToken(token string) (jwt.MapClaims, error)
}

type authService struct {
	passwordHash string
	jwtSecret    []byte
	now          func() time.Time
	logger       *slog.Logger
}

// NewAuthService hashes adminPassword once at startup. An empty password
// disables login.
func NewAuthService(adminPassword, jwtSecret string, logger *slog.Logger) (AuthService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &authService{
		jwtSecret: []byte(jwtSecret),
		now:       time.Now,
		logger:    logger,
	}
	if adminPassword == "" {
		return s, nil
	}
	if jwtSecret == "" {
		return nil, fmt.Errorf("jwt secret is required when an admin password is set")
	}

	hash, err := utils.HashPassword(adminPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	s.passwordHash = hash
	return s, nil
}

func (s *authService) Enabled() bool {
	return s.passwordHash != ""
}

func (s *authService) Login(ctx context.Context, password string) (string, error) {
	if !s.Enabled() {
		return "", ErrAuthDisabled
	}
	if !utils.CheckPasswordHash(password, s.passwordHash) {
		s.logger.Warn("organiser login rejected")
		return "", ErrAuthInvalidCredentials
	}

	now := s.now()
	claims := jwt.MapClaims{
		"sub":  RoleOrganizer,
		"role": RoleOrganizer,
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (s *authService) ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrAuthInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrAuthInvalidToken
	}
	if role, _ := claims["role"].(string); role != RoleOrganizer {
		return nil, ErrForbiddenOperation
	}
	return claims, nil
}
