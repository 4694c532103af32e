// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"calendar_backend/internal/feature/tasks/domain/entity"
	"calendar_backend/internal/feature/tasks/usecase"
)

// CachingTaskRepository decorates a TaskRepository with Redis caching of list
// queries. It implements the decorator pattern, transparently adding caching
// without modifying the underlying repository. Every write for a user
// invalidates all of that user's cached lists before returning.
type CachingTaskRepository struct {
	inner     usecase.TaskRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingTaskRepository decorates a TaskRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "tasks".
// A nil redis client disables caching entirely.
func NewCachingTaskRepository(rdb *redis.Client, ttl time.Duration, inner usecase.TaskRepository, namespace string) *CachingTaskRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "tasks"
	}
	return &CachingTaskRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create persists the task and invalidates the owner's cached lists.
func (c *CachingTaskRepository) Create(ctx context.Context, t *entity.Task) error {
	if err := c.inner.Create(ctx, t); err != nil {
		return err
	}
	c.invalidateUser(ctx, t.UserID)
	return nil
}

// FindByID delegates to the underlying repository. Single-row reads are cheap
// enough that they are not cached.
func (c *CachingTaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*entity.Task, error) {
	return c.inner.FindByID(ctx, userID, taskID)
}

// List retrieves tasks, checking cache first then falling back to the database.
func (c *CachingTaskRepository) List(ctx context.Context, userID uint, q usecase.TaskQuery) ([]entity.Task, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.List(ctx, userID, q)
	}

	key := c.cacheKey(userID, q)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Task
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.List(ctx, userID, q)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Update applies the partial update and invalidates the owner's cached lists.
func (c *CachingTaskRepository) Update(ctx context.Context, userID, taskID uint, upd usecase.TaskUpdate) (*entity.Task, error) {
	task, err := c.inner.Update(ctx, userID, taskID, upd)
	if err != nil {
		return nil, err
	}
	c.invalidateUser(ctx, userID)
	return task, nil
}

// Delete removes the task and invalidates the owner's cached lists.
func (c *CachingTaskRepository) Delete(ctx context.Context, userID, taskID uint) error {
	if err := c.inner.Delete(ctx, userID, taskID); err != nil {
		return err
	}
	c.invalidateUser(ctx, userID)
	return nil
}

// invalidateUser drops every cached list for the user. Best effort: cache
// deletion failures never fail the write that triggered them.
func (c *CachingTaskRepository) invalidateUser(ctx context.Context, userID uint) {
	if c.rdb == nil {
		return
	}
	_ = c.deleteByPattern(ctx, fmt.Sprintf("%s:%d:*", c.namespace, userID))
}

// cacheKey generates a cache key for a specific list query.
func (c *CachingTaskRepository) cacheKey(userID uint, q usecase.TaskQuery) string {
	day := "-"
	if q.Day != nil {
		day = q.Day.Format("2006-01-02")
	}
	completed := "-"
	if q.Completed != nil {
		completed = fmt.Sprintf("%t", *q.Completed)
	}
	window := "-"
	if q.From != nil && q.To != nil {
		window = q.From.Format("2006-01-02") + ".." + q.To.Format("2006-01-02")
	}
	return fmt.Sprintf("%s:%d:%s:%s:%s", c.namespace, userID, day, completed, window)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingTaskRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
