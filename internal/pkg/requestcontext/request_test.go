package requestcontext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestContextValues(t *testing.T) {
	ctx := WithUserID(WithRequestID(context.Background(), "req-42"), "alice")

	assert.Equal(t, "req-42", GetRequestID(ctx))
	assert.Equal(t, "alice", GetUserID(ctx))
}

func TestRequestContextEmpty(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
	assert.Empty(t, GetUserID(context.Background()))
}

func TestRequestContextKeysDoNotCollideWithStrings(t *testing.T) {
	ctx := context.WithValue(context.Background(), "request_id", "plain") //nolint:staticcheck

	assert.Empty(t, GetRequestID(ctx))
}
