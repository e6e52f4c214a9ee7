package transactions

import (
	"context"

	"github.com/piresc/mycompta/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/mycompta/services/transactions TransactionGW

// TransactionGW defines the outbound event interface
type TransactionGW interface {
	PublishTransactionCreated(ctx context.Context, transaction *models.Transaction) error
}
