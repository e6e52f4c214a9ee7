package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/piresc/mycompta/internal/pkg/apperror"
	"github.com/piresc/mycompta/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisRepo(t *testing.T) (*RedisRepo, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisRepo(client), mr
}

func TestRedisRepo_SaveWritesDocumentAndIndexes(t *testing.T) {
	repo, mr := setupRedisRepo(t)
	tx := newTestTransaction(t, "tx-1", "alice", mar2024)

	require.NoError(t, repo.Save(context.Background(), tx))

	raw, err := mr.Get("transaction:tx-1")
	require.NoError(t, err)
	var doc models.TransactionDocument
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "alice", doc.UserID)
	assert.Equal(t, 2024, doc.Year)
	assert.Equal(t, 0.58, doc.TVA)
	assert.Equal(t, 11.08, doc.Total)

	for _, key := range []string{
		"transactions:all",
		"transactions:year:2024",
		"user:alice:transactions",
		"user:alice:transactions:year:2024",
	} {
		ok, err := mr.SIsMember(key, "tx-1")
		require.NoError(t, err, key)
		assert.True(t, ok, key)
	}
}

func TestRedisRepo_ListByUser(t *testing.T) {
	repo, _ := setupRedisRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, newTestTransaction(t, "tx-a", "alice", jan2023)))
	require.NoError(t, repo.Save(ctx, newTestTransaction(t, "tx-b", "alice", mar2024)))
	require.NoError(t, repo.Save(ctx, newTestTransaction(t, "tx-c", "alice", jun2024)))
	require.NoError(t, repo.Save(ctx, newTestTransaction(t, "tx-d", "bob", mar2024)))

	all, err := repo.ListByUser(ctx, "alice", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"tx-c", "tx-b", "tx-a"}, ids(all))

	in2023, err := repo.ListByUser(ctx, "alice", intPtr(2023))
	require.NoError(t, err)
	assert.Equal(t, []string{"tx-a"}, ids(in2023))

	none, err := repo.ListByUser(ctx, "carol", nil)
	require.NoError(t, err)
	assert.Empty(t, none)

	everyone, err := repo.List(ctx, intPtr(2024))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"tx-b", "tx-c", "tx-d"}, ids(everyone))
}

func TestRedisRepo_SaveIsIdempotent(t *testing.T) {
	repo, mr := setupRedisRepo(t)
	tx := newTestTransaction(t, "tx-1", "alice", mar2024)

	require.NoError(t, repo.Save(context.Background(), tx))
	require.NoError(t, repo.Save(context.Background(), tx))

	members, err := mr.SMembers("user:alice:transactions")
	require.NoError(t, err)
	assert.Equal(t, []string{"tx-1"}, members)
}

func TestRedisRepo_OverwriteMovesIndexes(t *testing.T) {
	repo, mr := setupRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newTestTransaction(t, "tx-1", "alice", jan2023)))
	require.NoError(t, repo.Save(ctx, newTestTransaction(t, "tx-1", "alice", mar2024)))

	ok, err := mr.SIsMember("user:alice:transactions:year:2023", "tx-1")
	if err == nil {
		assert.False(t, ok)
	}

	in2024, err := repo.ListByUser(ctx, "alice", intPtr(2024))
	require.NoError(t, err)
	assert.Equal(t, []string{"tx-1"}, ids(in2024))
}

func TestRedisRepo_SkipsDanglingIndexEntries(t *testing.T) {
	repo, mr := setupRedisRepo(t)
	require.NoError(t, repo.Save(context.Background(), newTestTransaction(t, "tx-1", "alice", mar2024)))
	_, err := mr.SetAdd("user:alice:transactions", "ghost")
	require.NoError(t, err)

	result, err := repo.ListByUser(context.Background(), "alice", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"tx-1"}, ids(result))
}

func TestRedisRepo_GetByID(t *testing.T) {
	repo, _ := setupRedisRepo(t)
	require.NoError(t, repo.Save(context.Background(), newTestTransaction(t, "tx-1", "alice", mar2024)))

	tx, err := repo.GetByID(context.Background(), "alice", "tx-1")
	require.NoError(t, err)
	assert.Equal(t, "tx-1", tx.ID())

	_, err = repo.GetByID(context.Background(), "bob", "tx-1")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = repo.GetByID(context.Background(), "alice", "nope")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestRedisRepo_BackendDown(t *testing.T) {
	repo, mr := setupRedisRepo(t)
	mr.Close()

	err := repo.Save(context.Background(), newTestTransaction(t, "tx-1", "alice", mar2024))
	assert.ErrorIs(t, err, apperror.ErrPersistence)

	_, err = repo.ListByUser(context.Background(), "alice", nil)
	assert.ErrorIs(t, err, apperror.ErrPersistence)
}
