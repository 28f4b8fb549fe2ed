package services

import (
	"context"
	"time"

	"github.com/mikarurangwa/dayplan/internal/app/models"
)

// TasksOn returns every task due on the same civil date as date, in the
// order they were added. Time of day on either side is ignored.
func (s *TaskService) TasksOn(date time.Time) ([]models.Task, error) {
	ctx := context.Background()
	day := dayOf(date)

	if tasks, err := s.cache.GetTasksOn(ctx, day); err == nil && tasks != nil {
		return tasks, nil
	}

	all, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	for _, t := range all {
		if t.DueOn(date) {
			tasks = append(tasks, t)
		}
	}

	_ = s.cache.SetTasksOn(ctx, day, tasks, dayViewTTL)

	return tasks, nil
}

// TasksToday is TasksOn for the caller-supplied current time.
func (s *TaskService) TasksToday(now time.Time) ([]models.Task, error) {
	return s.TasksOn(now)
}

// HasTaskOn reports whether any task is due on the given date. Used for
// calendar-cell highlighting.
func (s *TaskService) HasTaskOn(date time.Time) (bool, error) {
	tasks, err := s.TasksOn(date)
	if err != nil {
		return false, err
	}
	return len(tasks) > 0, nil
}
