package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mikarurangwa/dayplan/internal/app/models"
	"github.com/mikarurangwa/dayplan/internal/app/repositories"
)

func newTestService(t *testing.T, tasks ...models.Task) *TaskService {
	t.Helper()
	repo := repositories.NewMemoryTaskRepo()
	for _, task := range tasks {
		if err := repo.Add(task); err != nil {
			t.Fatalf("failed to seed task: %v", err)
		}
	}
	return NewTaskService(repo, repositories.NopCache{})
}

func TestTasksOn(t *testing.T) {
	mayFirst := models.Task{
		ID:      uuid.New(),
		Title:   "Read Ch.3",
		DueDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	svc := newTestService(t, mayFirst)

	tasks, err := svc.TasksOn(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != mayFirst.ID {
		t.Fatalf("expected the May 1 task, got %+v", tasks)
	}

	tasks, err = svc.TasksOn(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks on May 2, got %+v", tasks)
	}
}

func TestTasksOnIgnoresTimeOfDay(t *testing.T) {
	evening := models.Task{
		ID:      uuid.New(),
		Title:   "evening",
		DueDate: time.Date(2024, 5, 1, 22, 45, 0, 0, time.UTC),
	}
	svc := newTestService(t, evening)

	tasks, err := svc.TasksOn(time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected a match regardless of time of day, got %+v", tasks)
	}
}

func TestTasksOnPreservesInsertionOrder(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	first := models.Task{ID: uuid.New(), Title: "first", DueDate: day.Add(20 * time.Hour)}
	second := models.Task{ID: uuid.New(), Title: "second", DueDate: day.Add(8 * time.Hour)}
	other := models.Task{ID: uuid.New(), Title: "other day", DueDate: day.AddDate(0, 0, 3)}
	svc := newTestService(t, first, second, other)

	tasks, err := svc.TasksOn(day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Insertion order, not time-of-day order.
	if len(tasks) != 2 || tasks[0].ID != first.ID || tasks[1].ID != second.ID {
		t.Fatalf("unexpected order: %+v", tasks)
	}
}

func TestTasksToday(t *testing.T) {
	now := time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC)
	today := models.Task{ID: uuid.New(), Title: "today", DueDate: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	tomorrow := models.Task{ID: uuid.New(), Title: "tomorrow", DueDate: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)}
	svc := newTestService(t, today, tomorrow)

	tasks, err := svc.TasksToday(now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != today.ID {
		t.Fatalf("expected only today's task, got %+v", tasks)
	}
}

func TestHasTaskOn(t *testing.T) {
	task := models.Task{
		ID:      uuid.New(),
		Title:   "x",
		DueDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	svc := newTestService(t, task)

	has, err := svc.HasTaskOn(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !has {
		t.Fatal("expected a task on May 1")
	}

	has, err = svc.HasTaskOn(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if has {
		t.Fatal("expected no task on May 2")
	}
}

func TestTasksOnServedFromDayCache(t *testing.T) {
	day := "2024-05-01"
	cached := []models.Task{
		{ID: uuid.New(), Title: "cached", DueDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	}
	mockRepo := &mockTaskRepository{
		listFn: func() ([]models.Task, error) {
			t.Fatal("repo must not be hit on a day-cache hit")
			return nil, nil
		},
	}
	mockCache := &mockTaskCache{
		getDayFn: func(ctx context.Context, gotDay string) ([]models.Task, error) {
			if gotDay != day {
				t.Fatalf("unexpected day key: %q", gotDay)
			}
			return cached, nil
		},
	}

	svc := NewTaskService(mockRepo, mockCache)

	tasks, err := svc.TasksOn(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "cached" {
		t.Fatalf("unexpected result: %+v", tasks)
	}
}
