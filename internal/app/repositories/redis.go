package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mikarurangwa/dayplan/internal/app/models"
	"github.com/redis/go-redis/v9"
)

type TaskCache interface {
	GetTaskList(ctx context.Context) ([]models.Task, error)
	SetTaskList(ctx context.Context, tasks []models.Task, ttl time.Duration) error
	DeleteTaskList(ctx context.Context) error

	GetTasksOn(ctx context.Context, day string) ([]models.Task, error)
	SetTasksOn(ctx context.Context, day string, tasks []models.Task, ttl time.Duration) error
	DeleteTasksOn(ctx context.Context, day string) error
}

type RedisTaskCache struct {
	rdb *redis.Client
}

func NewRedisTaskCache(rdb *redis.Client) *RedisTaskCache {
	return &RedisTaskCache{rdb: rdb}
}

const taskListKey = "tasks:list"

func dayKey(day string) string {
	return "tasks:on:" + day
}

func (r *RedisTaskCache) GetTaskList(ctx context.Context) ([]models.Task, error) {
	return r.getTasks(ctx, taskListKey)
}

func (r *RedisTaskCache) SetTaskList(ctx context.Context, tasks []models.Task, ttl time.Duration) error {
	return r.setTasks(ctx, taskListKey, tasks, ttl)
}

func (r *RedisTaskCache) DeleteTaskList(ctx context.Context) error {
	return r.rdb.Del(ctx, taskListKey).Err()
}

func (r *RedisTaskCache) GetTasksOn(ctx context.Context, day string) ([]models.Task, error) {
	return r.getTasks(ctx, dayKey(day))
}

func (r *RedisTaskCache) SetTasksOn(ctx context.Context, day string, tasks []models.Task, ttl time.Duration) error {
	return r.setTasks(ctx, dayKey(day), tasks, ttl)
}

func (r *RedisTaskCache) DeleteTasksOn(ctx context.Context, day string) error {
	return r.rdb.Del(ctx, dayKey(day)).Err()
}

func (r *RedisTaskCache) getTasks(ctx context.Context, key string) ([]models.Task, error) {
	val, err := r.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := json.Unmarshal([]byte(val), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *RedisTaskCache) setTasks(ctx context.Context, key string, tasks []models.Task, ttl time.Duration) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, key, data, ttl).Err()
}
