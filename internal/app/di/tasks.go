// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"calendar_backend/internal/feature/tasks/adapters"
	"calendar_backend/internal/feature/tasks/usecase"
	"calendar_backend/internal/platform/cache"
)

// taskListCacheTTL bounds how stale a cached task list may get if an
// invalidation is missed (invalidation itself is best effort).
const taskListCacheTTL = 5 * time.Minute

// NewTaskRepository creates a TaskRepository implementation.
// If Redis is available, list queries are served through a caching decorator;
// otherwise the Postgres repository is used directly.
func NewTaskRepository(rdb *redis.Client, db *gorm.DB) usecase.TaskRepository {
	repo := adapters.NewTaskPostgres(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingTaskRepository(rdb, taskListCacheTTL, repo, "tasks")
}
