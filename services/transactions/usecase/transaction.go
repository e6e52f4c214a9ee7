package usecase

import (
	"context"
	"fmt"

	"github.com/piresc/mycompta/internal/pkg/apperror"
	"github.com/piresc/mycompta/internal/pkg/logger"
	"github.com/piresc/mycompta/internal/pkg/models"
	nr "github.com/piresc/mycompta/internal/pkg/newrelic"
	"github.com/piresc/mycompta/internal/pkg/tva"
	"github.com/piresc/mycompta/services/transactions"
)

// transactionUC implements the transactions.TransactionUC interface
type transactionUC struct {
	transactionRepo transactions.TransactionRepo
	transactionGW   transactions.TransactionGW
}

// NewTransactionUC creates a new transaction use case
func NewTransactionUC(
	transactionRepo transactions.TransactionRepo,
	transactionGW transactions.TransactionGW,
) transactions.TransactionUC {
	return &transactionUC{
		transactionRepo: transactionRepo,
		transactionGW:   transactionGW,
	}
}

// CalculateTVA computes tva and total without persisting anything
func (uc *transactionUC) CalculateTVA(ctx context.Context, userID string, req *models.TVARequest) (*models.TVAResponse, error) {
	transaction, err := buildTransaction(userID, req)
	if err != nil {
		return nil, err
	}

	return &models.TVAResponse{
		TVA:    transaction.TVA().InexactFloat64(),
		Total:  transaction.Total().InexactFloat64(),
		UserID: transaction.UserID(),
	}, nil
}

// CreateTransaction builds, saves and announces a transaction
func (uc *transactionUC) CreateTransaction(ctx context.Context, userID string, req *models.TVARequest) (*models.Transaction, error) {
	transaction, err := buildTransaction(userID, req)
	if err != nil {
		return nil, err
	}

	err = nr.WithSegment(ctx, "TransactionRepo.Save", func() error {
		return uc.transactionRepo.Save(ctx, transaction)
	})
	if err != nil {
		logger.ErrorCtx(ctx, "Failed to save transaction",
			logger.String("transaction_id", transaction.ID()),
			logger.Err(err))
		return nil, err
	}

	if err := uc.transactionGW.PublishTransactionCreated(ctx, transaction); err != nil {
		logger.WarnCtx(ctx, "Failed to publish transaction created event",
			logger.String("transaction_id", transaction.ID()),
			logger.Err(err))
	}

	logger.InfoCtx(ctx, "Transaction created",
		logger.String("transaction_id", transaction.ID()),
		logger.Int("year", transaction.Year()))

	return transaction, nil
}

// ListTransactions returns the caller's transactions, optionally for one year
func (uc *transactionUC) ListTransactions(ctx context.Context, userID string, year *int) ([]*models.Transaction, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", apperror.ErrValidation)
	}

	return nr.WithSegmentAndReturn(ctx, "TransactionRepo.ListByUser", func() ([]*models.Transaction, error) {
		return uc.transactionRepo.ListByUser(ctx, userID, year)
	})
}

// GetTransaction returns one of the caller's transactions
func (uc *transactionUC) GetTransaction(ctx context.Context, userID, id string) (*models.Transaction, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", apperror.ErrValidation)
	}
	if id == "" {
		return nil, fmt.Errorf("%w: transaction id is required", apperror.ErrValidation)
	}

	return nr.WithSegmentAndReturn(ctx, "TransactionRepo.GetByID", func() (*models.Transaction, error) {
		return uc.transactionRepo.GetByID(ctx, userID, id)
	})
}

func buildTransaction(userID string, req *models.TVARequest) (*models.Transaction, error) {
	if req == nil || req.Amount == nil || req.TVARate == nil {
		return nil, fmt.Errorf("%w: amount and tva_rate are required", apperror.ErrValidation)
	}

	amount, err := tva.FromFloat(*req.Amount)
	if err != nil {
		return nil, err
	}
	rate, err := tva.FromFloat(*req.TVARate)
	if err != nil {
		return nil, err
	}

	return models.NewTransaction(models.TransactionParams{
		UserID:      userID,
		Amount:      amount,
		TVARate:     rate,
		Description: req.Description,
	})
}
