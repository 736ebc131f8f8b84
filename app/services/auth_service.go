package services

import (
	"context"
	"errors"

	"github.com/shirshak001/JEWEL/app/models"
	"github.com/shirshak001/JEWEL/app/repositories"
	"github.com/shirshak001/JEWEL/pkg/apperr"
	"github.com/shirshak001/JEWEL/pkg/auth"
	"github.com/shirshak001/JEWEL/pkg/logger"
	"github.com/shirshak001/JEWEL/pkg/session"
)

// LoginResult is returned on a successful dashboard login.
type LoginResult struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

// PublicUser is the serialisable shape of an account.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// AuthService handles dashboard login/logout over sliding sessions.
type AuthService struct {
	users    *repositories.UserRepository
	sessions *session.Store
}

func NewAuthService(users *repositories.UserRepository, sessions *session.Store) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// Login verifies credentials, opens a sliding session and issues a JWT
// bound to it. Wrong email and wrong password are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if !u.Active || !auth.CheckPassword(u.Password, password) {
		return nil, apperr.ErrUnauthorized
	}

	sess, err := s.sessions.Create(ctx, u.ID.Hex(), u.Email, u.Name, u.Role)
	if err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(u.ID.Hex(), u.Role, sess.ID)
	if err != nil {
		return nil, err
	}

	if err := s.users.TouchLogin(ctx, u.ID); err != nil {
		logger.WithCtx(ctx).Warn("auth: touch login failed", "error", err)
	}

	logger.WithCtx(ctx).Info("login", "email", u.Email, "role", u.Role)
	return &LoginResult{
		Token: token,
		User:  PublicUser{ID: u.ID.Hex(), Email: u.Email, Name: u.Name, Role: u.Role},
	}, nil
}

// Logout revokes the session behind the token. Idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := auth.ValidateToken(token)
	if err != nil {
		return nil
	}
	return s.sessions.Revoke(ctx, claims.SessionID)
}

// Session returns the live session state for a token, sliding its window.
func (s *AuthService) Session(ctx context.Context, token string) (*session.Session, error) {
	claims, err := auth.ValidateToken(token)
	if err != nil || claims.SessionID == "" {
		return nil, apperr.ErrUnauthorized
	}
	return s.sessions.Check(ctx, claims.SessionID)
}

// CreateAdmin provisions a dashboard account, used by the CLI.
func (s *AuthService) CreateAdmin(ctx context.Context, name, email, password, role string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     role,
		Active:   true,
	}
	u.Normalize()
	if u.Role == "" {
		u.Role = models.RoleAdmin
	}
	if err := s.users.Insert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
