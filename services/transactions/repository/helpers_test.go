package repository

import (
	"testing"
	"time"

	"github.com/piresc/mycompta/internal/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestTransaction(t *testing.T, id, userID string, createdAt time.Time) *models.Transaction {
	t.Helper()
	tx, err := models.NewTransaction(models.TransactionParams{
		ID:          id,
		UserID:      userID,
		Amount:      decimal.RequireFromString("10.5"),
		TVARate:     decimal.RequireFromString("5.5"),
		Description: "supplies " + id,
		CreatedAt:   createdAt,
	})
	require.NoError(t, err)
	return tx
}

func ids(txs []*models.Transaction) []string {
	out := make([]string, len(txs))
	for i, tx := range txs {
		out[i] = tx.ID()
	}
	return out
}

func intPtr(v int) *int {
	return &v
}

var (
	jan2023 = time.Date(2023, 1, 15, 9, 30, 0, 0, time.UTC)
	mar2024 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	jun2024 = time.Date(2024, 6, 20, 18, 45, 0, 0, time.UTC)
)
