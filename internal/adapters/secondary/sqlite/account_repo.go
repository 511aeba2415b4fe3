package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"vehicle-inference-service/internal/core/domain"
	"vehicle-inference-service/internal/core/ports/output"
)

// AccountStore keeps accounts in a local SQLite file. It is the fallback
// when no DATABASE_URL is configured.
type AccountStore struct {
	db *sql.DB
}

var _ ports.AccountRepository = (*AccountStore)(nil)

func Open(path string) (*AccountStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)

	s := &AccountStore{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *AccountStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		username TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create account schema: %w", err)
	}
	return nil
}

func (s *AccountStore) Create(ctx context.Context, account *domain.Account) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO account (id, created_at, username, email, password_hash) VALUES (?, ?, ?, ?, ?)`,
		account.ID.String(), account.CreatedAt.UTC().Format(time.RFC3339Nano),
		account.Username, account.Email, account.PasswordHash,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.ErrEmailAlreadyRegistered
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (s *AccountStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, username, email, password_hash FROM account WHERE id = ?`, id.String())
	return scanAccount(row, "get account by id")
}

func (s *AccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, username, email, password_hash FROM account WHERE email = ?`, email)
	return scanAccount(row, "get account by email")
}

func (s *AccountStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *AccountStore) Close() error {
	return s.db.Close()
}

func scanAccount(row *sql.Row, op string) (*domain.Account, error) {
	var (
		a         domain.Account
		id        string
		createdAt string
	)
	if err := row.Scan(&id, &createdAt, &a.Username, &a.Email, &a.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var err error
	if a.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%s: bad id %q: %w", op, id, err)
	}
	if a.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("%s: bad created_at %q: %w", op, createdAt, err)
	}
	return &a, nil
}
