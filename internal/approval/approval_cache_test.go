package approval_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"out-of-office/internal/approval"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestPendingCache_Invalidate(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes every approver key at once", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		cache := approval.NewPendingCache(rdb, time.Minute)
		mock.ExpectDel(approval.PendingKey("a"), approval.PendingKey("b")).SetVal(2)

		cache.Invalidate(ctx, []string{"a", "b"})

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis failure is swallowed", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		cache := approval.NewPendingCache(rdb, time.Minute)
		mock.ExpectDel(approval.PendingKey("a")).SetErr(errors.New("redis down"))

		assert.NotPanics(t, func() { cache.Invalidate(ctx, []string{"a"}) })
	})

	t.Run("no-op without redis", func(t *testing.T) {
		cache := approval.NewPendingCache(nil, 0)

		assert.NotPanics(t, func() { cache.Invalidate(ctx, []string{"a"}) })
	})
}

func TestPendingCache_GetOrLoad_WithoutRedis(t *testing.T) {
	cache := approval.NewPendingCache(nil, 0)
	calls := 0

	resp, err := cache.GetOrLoad(context.Background(), "a", func(context.Context) ([]approval.ApprovalResponse, error) {
		calls++
		return []approval.ApprovalResponse{{ID: "x"}}, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "x", resp[0].ID)
}
