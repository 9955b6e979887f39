package approval

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const PendingKeyPrefix = "approvals:pending:"

func PendingKey(approverID string) string {
	return PendingKeyPrefix + approverID
}

type PendingLoader func(ctx context.Context) ([]ApprovalResponse, error)

// PendingCache caches each approver's NEW approvals. A nil redis client
// turns it into a pass-through.
type PendingCache interface {
	GetOrLoad(ctx context.Context, approverID string, load PendingLoader) ([]ApprovalResponse, error)
	Invalidate(ctx context.Context, approverIDs []string)
}

type pendingCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewPendingCache(rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) PendingCache {
	l := zap.L().Named("approval.cache")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.cache")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &pendingCache{rdb: rdb, ttl: ttl, sf: &singleflight.Group{}, logger: l}
}

func (c *pendingCache) GetOrLoad(ctx context.Context, approverID string, load PendingLoader) ([]ApprovalResponse, error) {
	if c.rdb == nil {
		return load(ctx)
	}

	key := PendingKey(approverID)
	if cached, err := c.rdb.Get(ctx, key).Result(); err == nil {
		var resp []ApprovalResponse
		if json.Unmarshal([]byte(cached), &resp) == nil {
			return resp, nil
		}
	}

	v, err, _ := c.sf.Do(key, func() (interface{}, error) {
		resp, err := load(ctx)
		if err != nil {
			return nil, err
		}

		if data, err := json.Marshal(resp); err == nil {
			if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
				c.logger.Warn("pending approvals cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]ApprovalResponse), nil
}

func (c *pendingCache) Invalidate(ctx context.Context, approverIDs []string) {
	if c.rdb == nil || len(approverIDs) == 0 {
		return
	}

	keys := make([]string, len(approverIDs))
	for i, id := range approverIDs {
		keys[i] = PendingKey(id)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Error("failed to invalidate pending approvals cache",
			zap.Strings("keys", keys),
			zap.Error(err),
		)
	}
}
