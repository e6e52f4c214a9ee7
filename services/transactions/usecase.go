package transactions

import (
	"context"

	"github.com/piresc/mycompta/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/mycompta/services/transactions TransactionUC

// TransactionUC defines the interface for transaction use cases
type TransactionUC interface {
	CalculateTVA(ctx context.Context, userID string, req *models.TVARequest) (*models.TVAResponse, error)
	CreateTransaction(ctx context.Context, userID string, req *models.TVARequest) (*models.Transaction, error)
	ListTransactions(ctx context.Context, userID string, year *int) ([]*models.Transaction, error)
	GetTransaction(ctx context.Context, userID, id string) (*models.Transaction, error)
}
