package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mikarurangwa/dayplan/internal/app/models"
	"github.com/mikarurangwa/dayplan/internal/app/repositories"
)

const (
	taskListTTL = 15 * time.Second
	dayViewTTL  = 15 * time.Second
)

type TaskService struct {
	repo  repositories.TaskRepository
	cache repositories.TaskCache
}

func NewTaskService(repo repositories.TaskRepository, cache repositories.TaskCache) *TaskService {
	return &TaskService{
		repo:  repo,
		cache: cache,
	}
}

func (s *TaskService) Create(title, description string, due time.Time, reminder *models.ReminderTime) (*models.Task, error) {
	task := models.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		DueDate:     due,
		Reminder:    reminder,
	}

	if err := s.repo.Add(task); err != nil {
		return nil, err
	}

	s.invalidate(task.DueDate)
	return &task, nil
}

func (s *TaskService) Update(task models.Task) error {
	if err := s.repo.Update(task); err != nil {
		return err
	}

	s.invalidate(task.DueDate)
	return nil
}

func (s *TaskService) Delete(id uuid.UUID) error {
	// Look the task up first so its day view can be invalidated too.
	var due *time.Time
	if tasks, err := s.repo.List(); err == nil {
		for _, t := range tasks {
			if t.ID == id {
				d := t.DueDate
				due = &d
				break
			}
		}
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	ctx := context.Background()
	_ = s.cache.DeleteTaskList(ctx)
	if due != nil {
		_ = s.cache.DeleteTasksOn(ctx, dayOf(*due))
	}
	return nil
}

func (s *TaskService) List() ([]models.Task, error) {
	ctx := context.Background()

	if tasks, err := s.cache.GetTaskList(ctx); err == nil && tasks != nil {
		return tasks, nil
	}

	tasks, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	_ = s.cache.SetTaskList(ctx, tasks, taskListTTL)

	return tasks, nil
}

func (s *TaskService) SetRemindersEnabled(enabled bool) error {
	return s.repo.SetRemindersEnabled(enabled)
}

func (s *TaskService) RemindersEnabled() (bool, error) {
	return s.repo.RemindersEnabled()
}

func (s *TaskService) invalidate(due time.Time) {
	ctx := context.Background()
	_ = s.cache.DeleteTaskList(ctx)
	_ = s.cache.DeleteTasksOn(ctx, dayOf(due))
}

func dayOf(t time.Time) string {
	return t.Format("2006-01-02")
}
