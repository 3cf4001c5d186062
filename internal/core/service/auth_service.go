package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/niharika-studio/portfolio-api/internal/core/domain"
	"github.com/niharika-studio/portfolio-api/internal/core/ports"
)

// AuthService implements the session gate and the credential store contract.
//
// The client-facing token is the opaque session id wrapped in an HS256 JWT
// signed with the session secret. The signature only proves the cookie was
// issued by us; all session state (admin binding, idle expiry) lives in the
// SessionStore.
type AuthService struct {
	admins   ports.AdminRepository
	sessions ports.SessionStore
	secret   []byte
	tokenTTL time.Duration
	hashCost int
}

func NewAuthService(admins ports.AdminRepository, sessions ports.SessionStore, secret string, tokenTTL time.Duration, hashCost int) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if hashCost < bcrypt.MinCost || hashCost > bcrypt.MaxCost {
		hashCost = bcrypt.DefaultCost
	}
	return &AuthService{
		admins:   admins,
		sessions: sessions,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		hashCost: hashCost,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	admin, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	sessionID, err := s.sessions.Create(ctx, admin.ID)
	if err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}

	token, err := s.signToken(sessionID)
	if err != nil {
		_ = s.sessions.Delete(ctx, sessionID)
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}

	return token, admin, nil
}

func (s *AuthService) Check(ctx context.Context, token string) (string, error) {
	sessionID, err := s.parseToken(token)
	if err != nil {
		return "", domain.ErrUnauthenticated
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", domain.ErrUnauthenticated
	}

	// A session without its authenticated flag or admin binding is as good
	// as absent; destroy it so the client must log in again.
	if !sess.Authenticated || sess.AdminID == "" {
		_ = s.sessions.Delete(ctx, sessionID)
		return "", domain.ErrUnauthenticated
	}

	if err := s.sessions.Touch(ctx, sessionID); err != nil {
		return "", domain.ErrUnauthenticated
	}

	return sess.AdminID, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) {
	sessionID, err := s.parseToken(token)
	if err != nil {
		return
	}
	_ = s.sessions.Delete(ctx, sessionID)
}

func (s *AuthService) Provision(ctx context.Context, username, password string) (*domain.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := &domain.Admin{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	return s.admins.Create(ctx, admin)
}

func (s *AuthService) Bootstrap(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil
	}

	if _, err := s.admins.FindByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrAdminNotFound) {
		return err
	}

	_, err := s.Provision(ctx, username, password)
	if errors.Is(err, domain.ErrAdminExists) {
		return nil
	}
	return err
}

func (s *AuthService) signToken(sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *AuthService) parseToken(token string) (string, error) {
	if token == "" {
		return "", domain.ErrUnauthenticated
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrUnauthenticated
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", domain.ErrUnauthenticated
	}
	return sid, nil
}
