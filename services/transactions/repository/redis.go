package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/piresc/mycompta/internal/pkg/constants"
	"github.com/piresc/mycompta/internal/pkg/models"
	"github.com/piresc/mycompta/services/transactions"
)

// RedisRepo stores each transaction as a JSON document with set indexes
// by owner and year
type RedisRepo struct {
	client *redis.Client
}

// NewRedisRepo creates a Redis-backed repository
func NewRedisRepo(client *redis.Client) *RedisRepo {
	return &RedisRepo{client: client}
}

var _ transactions.TransactionRepo = (*RedisRepo)(nil)

func indexKeys(doc models.TransactionDocument) []string {
	return []string{
		constants.KeyTransactionsAll,
		fmt.Sprintf(constants.KeyTransactionsYear, doc.Year),
		fmt.Sprintf(constants.KeyUserTransactions, doc.UserID),
		fmt.Sprintf(constants.KeyUserTransactionsYear, doc.UserID, doc.Year),
	}
}

// Save writes the document and its index entries in one MULTI block
func (r *RedisRepo) Save(ctx context.Context, transaction *models.Transaction) error {
	doc := transaction.ToDocument()
	payload, err := json.Marshal(doc)
	if err != nil {
		return persistenceError("encode transaction", err)
	}

	key := fmt.Sprintf(constants.KeyTransaction, doc.ID)

	// an overwrite may move the document to other index sets
	previous, err := r.getDocument(ctx, doc.ID)
	if err != nil && !errors.Is(err, redis.Nil) {
		return persistenceError("save transaction", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if previous != nil {
			for _, idx := range indexKeys(*previous) {
				pipe.SRem(ctx, idx, doc.ID)
			}
		}
		pipe.Set(ctx, key, payload, 0)
		for _, idx := range indexKeys(doc) {
			pipe.SAdd(ctx, idx, doc.ID)
		}
		return nil
	})
	if err != nil {
		return persistenceError("save transaction", err)
	}
	return nil
}

// List returns every stored transaction
func (r *RedisRepo) List(ctx context.Context, year *int) ([]*models.Transaction, error) {
	index := constants.KeyTransactionsAll
	if year != nil {
		index = fmt.Sprintf(constants.KeyTransactionsYear, *year)
	}
	return r.listIndex(ctx, index)
}

// ListByUser returns the transactions owned by userID
func (r *RedisRepo) ListByUser(ctx context.Context, userID string, year *int) ([]*models.Transaction, error) {
	index := fmt.Sprintf(constants.KeyUserTransactions, userID)
	if year != nil {
		index = fmt.Sprintf(constants.KeyUserTransactionsYear, userID, *year)
	}
	return r.listIndex(ctx, index)
}

// GetByID returns the transaction id owned by userID
func (r *RedisRepo) GetByID(ctx context.Context, userID, id string) (*models.Transaction, error) {
	doc, err := r.getDocument(ctx, id)
	if errors.Is(err, redis.Nil) {
		return nil, notFoundError(id)
	}
	if err != nil {
		return nil, persistenceError("get transaction", err)
	}
	if doc.UserID != userID {
		return nil, notFoundError(id)
	}

	tx, err := doc.ToTransaction()
	if err != nil {
		return nil, persistenceError("decode transaction "+id, err)
	}
	return tx, nil
}

func (r *RedisRepo) getDocument(ctx context.Context, id string) (*models.TransactionDocument, error) {
	raw, err := r.client.Get(ctx, fmt.Sprintf(constants.KeyTransaction, id)).Bytes()
	if err != nil {
		return nil, err
	}

	var doc models.TransactionDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode transaction %s: %w", id, err)
	}
	return &doc, nil
}

func (r *RedisRepo) listIndex(ctx context.Context, index string) ([]*models.Transaction, error) {
	ids, err := r.client.SMembers(ctx, index).Result()
	if err != nil {
		return nil, persistenceError("list transactions", err)
	}
	if len(ids) == 0 {
		return []*models.Transaction{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = fmt.Sprintf(constants.KeyTransaction, id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, persistenceError("list transactions", err)
	}

	docs := make([]models.TransactionDocument, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			// index entry without a document
			continue
		}
		var doc models.TransactionDocument
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, persistenceError("decode transaction "+ids[i], err)
		}
		docs = append(docs, doc)
	}

	return fromDocuments(docs)
}
