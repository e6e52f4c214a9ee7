package repository

import (
	"context"
	"testing"
	"time"

	"github.com/piresc/mycompta/internal/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func mongoDoc(id, userID string, createdAt time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "user_id", Value: userID},
		{Key: "amount", Value: 10.5},
		{Key: "tva_rate", Value: 5.5},
		{Key: "description", Value: "supplies " + id},
		{Key: "created_at", Value: createdAt},
		// stored derived figures are ignored and recomputed
		{Key: "tva", Value: 999.0},
		{Key: "total", Value: 999.0},
		{Key: "year", Value: createdAt.Year()},
	}
}

func TestMongoRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("save upserts", func(mt *mtest.T) {
		repo := NewMongoRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: "tx-1"}}}},
		))

		err := repo.Save(context.Background(), newTestTransaction(mt.T, "tx-1", "alice", mar2024))
		require.NoError(mt, err)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "update", started.CommandName)
	})

	mt.Run("save error", func(mt *mtest.T) {
		repo := NewMongoRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    91,
			Message: "shutdown in progress",
			Name:    "ShutdownInProgress",
		}))

		err := repo.Save(context.Background(), newTestTransaction(mt.T, "tx-1", "alice", mar2024))
		assert.ErrorIs(mt, err, apperror.ErrPersistence)
	})

	mt.Run("list by user", func(mt *mtest.T) {
		repo := NewMongoRepo(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			mongoDoc("tx-b", "alice", mar2024),
			mongoDoc("tx-c", "alice", jun2024),
		))

		result, err := repo.ListByUser(context.Background(), "alice", intPtr(2024))
		require.NoError(mt, err)
		assert.Equal(mt, []string{"tx-c", "tx-b"}, ids(result))
		assert.Equal(mt, 0.58, result[0].TVA().InexactFloat64())
		assert.Equal(mt, 11.08, result[0].Total().InexactFloat64())
	})

	mt.Run("list empty", func(mt *mtest.T) {
		repo := NewMongoRepo(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		result, err := repo.List(context.Background(), nil)
		require.NoError(mt, err)
		assert.Empty(mt, result)
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := NewMongoRepo(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, mongoDoc("tx-1", "alice", mar2024)))

		tx, err := repo.GetByID(context.Background(), "alice", "tx-1")
		require.NoError(mt, err)
		assert.Equal(mt, "tx-1", tx.ID())
		assert.Equal(mt, "alice", tx.UserID())
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		repo := NewMongoRepo(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), "alice", "missing")
		assert.ErrorIs(mt, err, apperror.ErrNotFound)
	})
}
