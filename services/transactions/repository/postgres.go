package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/piresc/mycompta/internal/pkg/models"
	"github.com/piresc/mycompta/services/transactions"
)

const schemaTransactions = `
	CREATE TABLE IF NOT EXISTS transactions (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		year       INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		doc        JSONB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS transactions_user_year_idx ON transactions (user_id, year, created_at DESC);
`

// PostgresRepo stores transaction documents in a JSONB column with the
// queried fields promoted to indexed columns
type PostgresRepo struct {
	db *sqlx.DB
}

// NewPostgresRepo creates a PostgreSQL-backed repository
func NewPostgresRepo(db *sqlx.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

var _ transactions.TransactionRepo = (*PostgresRepo)(nil)

// EnsureSchema creates the transactions table when missing
func (r *PostgresRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaTransactions); err != nil {
		return persistenceError("create schema", err)
	}
	return nil
}

// Save upserts the transaction by id
func (r *PostgresRepo) Save(ctx context.Context, transaction *models.Transaction) error {
	doc := transaction.ToDocument()
	payload, err := json.Marshal(doc)
	if err != nil {
		return persistenceError("encode transaction", err)
	}

	query := `
		INSERT INTO transactions (id, user_id, year, created_at, doc)
		VALUES ($1, $2, $3, $4, $5::jsonb)
		ON CONFLICT (id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			year = EXCLUDED.year,
			created_at = EXCLUDED.created_at,
			doc = EXCLUDED.doc
	`
	_, err = r.db.ExecContext(ctx, query, doc.ID, doc.UserID, doc.Year, doc.CreatedAt, string(payload))
	if err != nil {
		return persistenceError("save transaction", err)
	}
	return nil
}

// List returns every stored transaction
func (r *PostgresRepo) List(ctx context.Context, year *int) ([]*models.Transaction, error) {
	if year == nil {
		return r.selectDocs(ctx, `SELECT doc FROM transactions ORDER BY created_at DESC, id`)
	}
	return r.selectDocs(ctx, `SELECT doc FROM transactions WHERE year = $1 ORDER BY created_at DESC, id`, *year)
}

// ListByUser returns the transactions owned by userID
func (r *PostgresRepo) ListByUser(ctx context.Context, userID string, year *int) ([]*models.Transaction, error) {
	if year == nil {
		return r.selectDocs(ctx, `SELECT doc FROM transactions WHERE user_id = $1 ORDER BY created_at DESC, id`, userID)
	}
	return r.selectDocs(ctx, `SELECT doc FROM transactions WHERE user_id = $1 AND year = $2 ORDER BY created_at DESC, id`, userID, *year)
}

// GetByID returns the transaction id owned by userID
func (r *PostgresRepo) GetByID(ctx context.Context, userID, id string) (*models.Transaction, error) {
	var raw string
	err := r.db.GetContext(ctx, &raw, `SELECT doc FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundError(id)
	}
	if err != nil {
		return nil, persistenceError("get transaction", err)
	}

	var doc models.TransactionDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, persistenceError("decode transaction "+id, err)
	}
	tx, err := doc.ToTransaction()
	if err != nil {
		return nil, persistenceError("decode transaction "+id, err)
	}
	return tx, nil
}

func (r *PostgresRepo) selectDocs(ctx context.Context, query string, args ...interface{}) ([]*models.Transaction, error) {
	var raws []string
	if err := r.db.SelectContext(ctx, &raws, query, args...); err != nil {
		return nil, persistenceError("list transactions", err)
	}

	docs := make([]models.TransactionDocument, 0, len(raws))
	for _, raw := range raws {
		var doc models.TransactionDocument
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, persistenceError("decode transaction", err)
		}
		docs = append(docs, doc)
	}

	return fromDocuments(docs)
}
