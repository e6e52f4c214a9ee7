package transactions

import (
	"context"

	"github.com/piresc/mycompta/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/mycompta/services/transactions TransactionRepo

// TransactionRepo defines the interface for transaction persistence.
// A nil year means no year filter.
type TransactionRepo interface {
	// Save inserts or replaces the transaction keyed by its id
	Save(ctx context.Context, transaction *models.Transaction) error
	// List returns every user's transactions.
	//
	// Deprecated: use ListByUser.
	List(ctx context.Context, year *int) ([]*models.Transaction, error)
	ListByUser(ctx context.Context, userID string, year *int) ([]*models.Transaction, error)
	// GetByID returns apperror.ErrNotFound when id is absent or owned by someone else
	GetByID(ctx context.Context, userID, id string) (*models.Transaction, error)
}
