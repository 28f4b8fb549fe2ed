package repositories

import (
	"context"
	"time"

	"github.com/mikarurangwa/dayplan/internal/app/models"
)

// NopCache satisfies TaskCache without caching anything. Used when no
// redis address is configured.
type NopCache struct{}

func (NopCache) GetTaskList(ctx context.Context) ([]models.Task, error) { return nil, nil }

func (NopCache) SetTaskList(ctx context.Context, tasks []models.Task, ttl time.Duration) error {
	return nil
}

func (NopCache) DeleteTaskList(ctx context.Context) error { return nil }

func (NopCache) GetTasksOn(ctx context.Context, day string) ([]models.Task, error) {
	return nil, nil
}

func (NopCache) SetTasksOn(ctx context.Context, day string, tasks []models.Task, ttl time.Duration) error {
	return nil
}

func (NopCache) DeleteTasksOn(ctx context.Context, day string) error { return nil }
