package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/leanios/access-gate/internal/core/domain"
)

// RoleCache caches role lookups in Redis hashes.
// Key format: role:<user_id> → {role, disabled}
type RoleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRoleCache creates a RoleCache whose entries expire after ttl.
func NewRoleCache(client *redis.Client, ttl time.Duration) *RoleCache {
	return &RoleCache{client: client, ttl: ttl}
}

// Get returns the cached access for id. A missing key is a miss; an entry
// that cannot be parsed is dropped and reported as a miss.
func (c *RoleCache) Get(ctx context.Context, id string) (domain.Access, bool, error) {
	vals, err := c.client.HGetAll(ctx, c.key(id)).Result()
	if err != nil {
		return domain.Access{}, false, fmt.Errorf("role cache get: %w", err)
	}
	if len(vals) == 0 {
		return domain.Access{}, false, nil
	}

	access, err := parseAccess(vals)
	if err != nil {
		_ = c.client.Del(ctx, c.key(id)).Err()
		return domain.Access{}, false, nil
	}
	return access, true, nil
}

// Set stores access for id with the cache TTL.
func (c *RoleCache) Set(ctx context.Context, id string, access domain.Access) error {
	key := c.key(id)
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, key, "role", string(access.Role), "disabled", strconv.FormatBool(access.Disabled))
		p.Expire(ctx, key, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("role cache set: %w", err)
	}
	return nil
}

// Invalidate removes the cached entry for id.
func (c *RoleCache) Invalidate(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("role cache invalidate: %w", err)
	}
	return nil
}

func (c *RoleCache) key(id string) string {
	return "role:" + id
}

func parseAccess(vals map[string]string) (domain.Access, error) {
	role, err := domain.ParseRole(vals["role"])
	if err != nil {
		return domain.Access{}, err
	}
	disabled, err := strconv.ParseBool(vals["disabled"])
	if err != nil {
		return domain.Access{}, fmt.Errorf("%w: disabled %q", domain.ErrMalformedProfile, vals["disabled"])
	}
	return domain.Access{Role: role, Disabled: disabled}, nil
}
