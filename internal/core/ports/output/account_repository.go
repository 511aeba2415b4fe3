package ports

import (
	"context"

	"github.com/google/uuid"

	"vehicle-inference-service/internal/core/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Ping(ctx context.Context) error
}

// SessionIssuer signs and verifies session tokens for the Access Gate.
type SessionIssuer interface {
	Issue(accountID uuid.UUID) (string, error)
	Verify(token string) (uuid.UUID, error)
}
