package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/adityarajsrv/CareerQuill/internal/domain"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// UserStore persists accounts.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateRequest changes only the fields that are set.
type UpdateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

type Service struct {
	users    UserStore
	tokens   *Tokens
	validate *validator.Validate
	cost     int
}

func NewService(users UserStore, tokens *Tokens) *Service {
	return &Service{users: users, tokens: tokens, validate: validator.New(), cost: bcrypt.DefaultCost}
}

func (s *Service) Tokens() *Tokens { return s.tokens }

// Register creates an account and returns it with a session token.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, string, error) {
	req.Name, req.Email = strings.TrimSpace(req.Name), strings.TrimSpace(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return nil, "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, "", err
	}
	u := &domain.User{Name: req.Name, Email: req.Email, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, string, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	u, err := s.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Authenticate resolves a session token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	id, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*domain.User, error) {
	req.Name, req.Email = strings.TrimSpace(req.Name), strings.TrimSpace(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Email != "" {
		u.Email = req.Email
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
