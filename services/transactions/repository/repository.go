package repository

import (
	"fmt"
	"sort"

	"github.com/piresc/mycompta/internal/pkg/apperror"
	"github.com/piresc/mycompta/internal/pkg/models"
)

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", apperror.ErrPersistence, op, err)
}

func notFoundError(id string) error {
	return fmt.Errorf("%w: transaction %s not found", apperror.ErrNotFound, id)
}

// fromDocuments rehydrates stored documents, newest first
func fromDocuments(docs []models.TransactionDocument) ([]*models.Transaction, error) {
	result := make([]*models.Transaction, 0, len(docs))
	for _, doc := range docs {
		tx, err := doc.ToTransaction()
		if err != nil {
			return nil, persistenceError(fmt.Sprintf("decode transaction %s", doc.ID), err)
		}
		result = append(result, tx)
	}
	sortNewestFirst(result)
	return result, nil
}

func sortNewestFirst(txs []*models.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].CreatedAt().Equal(txs[j].CreatedAt()) {
			return txs[i].ID() < txs[j].ID()
		}
		return txs[i].CreatedAt().After(txs[j].CreatedAt())
	})
}

func matchesYear(doc models.TransactionDocument, year *int) bool {
	return year == nil || doc.Year == *year
}
