// Package user implements registration and password authentication.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tinoosan/smartbudget/internal/errs"
	"github.com/tinoosan/smartbudget/internal/ledger"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLen is the shortest accepted password.
const MinPasswordLen = 4

type Repo interface {
	UserByEmail(ctx context.Context, email string) (ledger.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (ledger.User, error)
}

type Writer interface {
	// CreateUser returns errs.ErrConflict when the email is taken.
	CreateUser(ctx context.Context, u ledger.User) (ledger.User, error)
}

type Service interface {
	Register(ctx context.Context, name, email, password string) (ledger.User, error)
	Authenticate(ctx context.Context, email, password string) (ledger.User, error)
	Get(ctx context.Context, id uuid.UUID) (ledger.User, error)
}

type service struct {
	repo   Repo
	writer Writer
	cost   int
}

func New(repo Repo, writer Writer) Service {
	return &service{repo: repo, writer: writer, cost: bcrypt.DefaultCost}
}

// NewWithCost is New with an explicit bcrypt cost; tests use bcrypt.MinCost.
func NewWithCost(repo Repo, writer Writer, cost int) Service {
	return &service{repo: repo, writer: writer, cost: cost}
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

func (s *service) Register(ctx context.Context, name, email, password string) (ledger.User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" || email == "" {
		return ledger.User{}, fmt.Errorf("name and email are required: %w", errs.ErrInvalid)
	}
	if !strings.Contains(email, "@") {
		return ledger.User{}, fmt.Errorf("email is malformed: %w", errs.ErrInvalid)
	}
	if len(password) < MinPasswordLen {
		return ledger.User{}, fmt.Errorf("password must have at least %d characters: %w", MinPasswordLen, errs.ErrInvalid)
	}
	if _, err := s.repo.UserByEmail(ctx, email); err == nil {
		return ledger.User{}, fmt.Errorf("email already registered: %w", errs.ErrConflict)
	} else if !errors.Is(err, errs.ErrNotFound) {
		return ledger.User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return ledger.User{}, fmt.Errorf("hash password: %w", err)
	}
	u := ledger.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	return s.writer.CreateUser(ctx, u)
}

func (s *service) Authenticate(ctx context.Context, email, password string) (ledger.User, error) {
	u, err := s.repo.UserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return ledger.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return ledger.User{}, errs.ErrUnauthorized
	}
	return u, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (ledger.User, error) {
	if id == uuid.Nil {
		return ledger.User{}, errs.ErrInvalid
	}
	return s.repo.UserByID(ctx, id)
}
