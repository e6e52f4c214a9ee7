package repository

import (
	"context"
	"sync"

	"github.com/piresc/mycompta/internal/pkg/models"
	"github.com/piresc/mycompta/services/transactions"
)

// MemoryRepo keeps transaction documents in process memory
type MemoryRepo struct {
	mu   sync.RWMutex
	docs map[string]models.TransactionDocument
}

// NewMemoryRepo creates an empty in-memory repository
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{docs: make(map[string]models.TransactionDocument)}
}

var _ transactions.TransactionRepo = (*MemoryRepo)(nil)

// Save upserts the transaction by id
func (r *MemoryRepo) Save(ctx context.Context, transaction *models.Transaction) error {
	if err := ctx.Err(); err != nil {
		return persistenceError("save transaction", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[transaction.ID()] = transaction.ToDocument()
	return nil
}

// List returns every stored transaction
func (r *MemoryRepo) List(ctx context.Context, year *int) ([]*models.Transaction, error) {
	return r.filter(ctx, func(doc models.TransactionDocument) bool {
		return matchesYear(doc, year)
	})
}

// ListByUser returns the transactions owned by userID
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, year *int) ([]*models.Transaction, error) {
	return r.filter(ctx, func(doc models.TransactionDocument) bool {
		return doc.UserID == userID && matchesYear(doc, year)
	})
}

// GetByID returns the transaction id owned by userID
func (r *MemoryRepo) GetByID(ctx context.Context, userID, id string) (*models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, persistenceError("get transaction", err)
	}

	r.mu.RLock()
	doc, ok := r.docs[id]
	r.mu.RUnlock()

	if !ok || doc.UserID != userID {
		return nil, notFoundError(id)
	}

	tx, err := doc.ToTransaction()
	if err != nil {
		return nil, persistenceError("decode transaction "+id, err)
	}
	return tx, nil
}

func (r *MemoryRepo) filter(ctx context.Context, keep func(models.TransactionDocument) bool) ([]*models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, persistenceError("list transactions", err)
	}

	r.mu.RLock()
	docs := make([]models.TransactionDocument, 0, len(r.docs))
	for _, doc := range r.docs {
		if keep(doc) {
			docs = append(docs, doc)
		}
	}
	r.mu.RUnlock()

	return fromDocuments(docs)
}
