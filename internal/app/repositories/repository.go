package repositories

import (
	"github.com/google/uuid"
	"github.com/mikarurangwa/dayplan/internal/app/models"
)

type TaskRepository interface {
	Add(task models.Task) error
	Update(task models.Task) error
	Delete(id uuid.UUID) error
	List() ([]models.Task, error)

	SetRemindersEnabled(enabled bool) error
	RemindersEnabled() (bool, error)
}
