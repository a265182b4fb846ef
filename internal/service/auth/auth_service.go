package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Domenick1991/carrental/config"
	"github.com/Domenick1991/carrental/internal/account"
	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Directory is the account service as seen from here.
type Directory interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, input account.RegisterInput) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type AuthUseCase interface {
	AdminLogin(ctx context.Context, username, password string) (*domain.Session, error)
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	Register(ctx context.Context, input account.RegisterInput) (*domain.User, error)
	ListUsers(ctx context.Context, query string) ([]domain.User, error)
	Logout(ctx context.Context) error
}

type AuthService struct {
	admin     config.AdminConfig
	directory Directory
	sessions  repository.SessionRepository
	log       *zap.Logger
}

func NewAuthService(admin config.AdminConfig, directory Directory, sessions repository.SessionRepository, log *zap.Logger) *AuthService {
	return &AuthService{admin: admin, directory: directory, sessions: sessions, log: log}
}

func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (*domain.Session, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) == 1
	if !userOK || !passOK {
		s.log.Warn("admin login rejected", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}
	if err := s.sessions.SetUsername(ctx, username); err != nil {
		return nil, err
	}
	return &domain.Session{Username: username, Admin: true}, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	token, err := s.directory.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, account.ErrRejected) {
			return nil, errors.Join(ErrInvalidCredentials, err)
		}
		return nil, err
	}

	if err := s.sessions.SetUsername(ctx, username); err != nil {
		return nil, err
	}
	if err := s.sessions.SetToken(ctx, token); err != nil {
		return nil, err
	}
	s.log.Info("user signed in", zap.String("username", username))
	return &domain.Session{Username: username, Token: token}, nil
}

func (s *AuthService) Register(ctx context.Context, input account.RegisterInput) (*domain.User, error) {
	return s.directory.Register(ctx, input)
}

// ListUsers returns users whose name, email or role contains query,
// ignoring case.
func (s *AuthService) ListUsers(ctx context.Context, query string) ([]domain.User, error) {
	users, err := s.directory.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return users, nil
	}

	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Username), query) ||
			strings.Contains(strings.ToLower(u.Email), query) ||
			strings.Contains(strings.ToLower(u.Role), query) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

var _ AuthUseCase = (*AuthService)(nil)
