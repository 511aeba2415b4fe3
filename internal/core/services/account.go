package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"vehicle-inference-service/internal/core/domain"
	"vehicle-inference-service/internal/core/ports/output"
)

// bcrypt ignores input past 72 bytes.
const maxPasswordBytes = 72

// AccountService owns signup, login and session resolution for the Access Gate.
type AccountService struct {
	repo     ports.AccountRepository
	sessions ports.SessionIssuer
	hashCost int
}

func NewAccountService(repo ports.AccountRepository, sessions ports.SessionIssuer, hashCost int) *AccountService {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &AccountService{repo: repo, sessions: sessions, hashCost: hashCost}
}

func (s *AccountService) Signup(ctx context.Context, username, email, password string) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	email = domain.NormalizeEmail(email)
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}
	if len(password) > maxPasswordBytes {
		return nil, domain.ErrPasswordTooLong
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		ID:           uuid.New(),
		CreatedAt:    time.Now().UTC(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	log.WithField("account_id", account.ID).Info("account registered")
	return account, nil
}

// Login checks credentials and returns a signed session token.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.Account, string, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(account.ID)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

// Authenticate resolves a session token to a live account.
func (s *AccountService) Authenticate(ctx context.Context, token string) (*domain.Account, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	id, err := s.sessions.Verify(token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	return account, nil
}

func (s *AccountService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
