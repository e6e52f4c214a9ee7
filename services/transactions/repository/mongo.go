package repository

import (
	"context"
	"errors"

	"github.com/piresc/mycompta/internal/pkg/models"
	"github.com/piresc/mycompta/services/transactions"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo stores one document per transaction, keyed by _id
type MongoRepo struct {
	collection *mongo.Collection
}

// NewMongoRepo creates a MongoDB-backed repository over collection
func NewMongoRepo(collection *mongo.Collection) *MongoRepo {
	return &MongoRepo{collection: collection}
}

var _ transactions.TransactionRepo = (*MongoRepo)(nil)

// EnsureIndexes creates the owner/year index used by the list queries
func (r *MongoRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "year", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("user_year_created"),
	})
	if err != nil {
		return persistenceError("create indexes", err)
	}
	return nil
}

// Save replaces the document with the same id, inserting it when absent
func (r *MongoRepo) Save(ctx context.Context, transaction *models.Transaction) error {
	doc := transaction.ToDocument()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return persistenceError("save transaction", err)
	}
	return nil
}

// List returns every stored transaction
func (r *MongoRepo) List(ctx context.Context, year *int) ([]*models.Transaction, error) {
	filter := bson.M{}
	if year != nil {
		filter["year"] = *year
	}
	return r.find(ctx, filter)
}

// ListByUser returns the transactions owned by userID
func (r *MongoRepo) ListByUser(ctx context.Context, userID string, year *int) ([]*models.Transaction, error) {
	filter := bson.M{"user_id": userID}
	if year != nil {
		filter["year"] = *year
	}
	return r.find(ctx, filter)
}

// GetByID returns the transaction id owned by userID
func (r *MongoRepo) GetByID(ctx context.Context, userID, id string) (*models.Transaction, error) {
	var doc models.TransactionDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFoundError(id)
	}
	if err != nil {
		return nil, persistenceError("get transaction", err)
	}

	tx, err := doc.ToTransaction()
	if err != nil {
		return nil, persistenceError("decode transaction "+id, err)
	}
	return tx, nil
}

func (r *MongoRepo) find(ctx context.Context, filter bson.M) ([]*models.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, persistenceError("list transactions", err)
	}
	defer cursor.Close(ctx)

	var docs []models.TransactionDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, persistenceError("list transactions", err)
	}

	return fromDocuments(docs)
}
