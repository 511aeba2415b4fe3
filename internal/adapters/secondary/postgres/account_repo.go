package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"vehicle-inference-service/internal/core/domain"
	"vehicle-inference-service/internal/core/ports/output"
)

const uniqueViolation = "23505"

const accountSchema = `
	CREATE TABLE IF NOT EXISTS account (
		id            UUID PRIMARY KEY,
		created_at    TIMESTAMPTZ NOT NULL,
		username      VARCHAR(150) NOT NULL,
		email         VARCHAR(150) NOT NULL UNIQUE,
		password_hash VARCHAR(200) NOT NULL
	)
`

type accountRepo struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) ports.AccountRepository {
	return &accountRepo{pool: pool}
}

// EnsureSchema creates the account table when it does not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, accountSchema); err != nil {
		return fmt.Errorf("create account schema: %w", err)
	}
	return nil
}

func (r *accountRepo) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO account (id, created_at, username, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		account.ID, account.CreatedAt, account.Username, account.Email, account.PasswordHash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrEmailAlreadyRegistered
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (r *accountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `
		SELECT id, created_at, username, email, password_hash
		FROM account
		WHERE id = $1
	`
	a, err := scanAccount(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account by id: %w", err)
	}
	return a, nil
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `
		SELECT id, created_at, username, email, password_hash
		FROM account
		WHERE email = $1
	`
	a, err := scanAccount(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account by email: %w", err)
	}
	return a, nil
}

func (r *accountRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	if err := row.Scan(&a.ID, &a.CreatedAt, &a.Username, &a.Email, &a.PasswordHash); err != nil {
		return nil, err
	}
	return &a, nil
}
