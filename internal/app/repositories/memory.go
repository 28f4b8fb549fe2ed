package repositories

import (
	"strings"

	"github.com/google/uuid"
	"github.com/mikarurangwa/dayplan/internal/app/models"
)

// MemoryTaskRepo keeps tasks for the lifetime of the process, in insertion
// order. It is the default backend; nothing survives a restart.
type MemoryTaskRepo struct {
	tasks            []models.Task
	index            map[uuid.UUID]int
	remindersEnabled bool
}

func NewMemoryTaskRepo() *MemoryTaskRepo {
	return &MemoryTaskRepo{
		index:            make(map[uuid.UUID]int),
		remindersEnabled: true,
	}
}

func (r *MemoryTaskRepo) Add(task models.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return models.ErrEmptyTitle
	}
	if _, ok := r.index[task.ID]; ok {
		return models.ErrDuplicateID
	}
	r.index[task.ID] = len(r.tasks)
	r.tasks = append(r.tasks, task)
	return nil
}

func (r *MemoryTaskRepo) Update(task models.Task) error {
	i, ok := r.index[task.ID]
	if !ok {
		return models.ErrNotFound
	}
	if strings.TrimSpace(task.Title) == "" {
		return models.ErrEmptyTitle
	}
	r.tasks[i] = task
	return nil
}

// Delete is a no-op when the id is unknown; deleting twice is not an error.
func (r *MemoryTaskRepo) Delete(id uuid.UUID) error {
	i, ok := r.index[id]
	if !ok {
		return nil
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.tasks); j++ {
		r.index[r.tasks[j].ID] = j
	}
	return nil
}

func (r *MemoryTaskRepo) List() ([]models.Task, error) {
	out := make([]models.Task, len(r.tasks))
	copy(out, r.tasks)
	return out, nil
}

func (r *MemoryTaskRepo) SetRemindersEnabled(enabled bool) error {
	r.remindersEnabled = enabled
	return nil
}

func (r *MemoryTaskRepo) RemindersEnabled() (bool, error) {
	return r.remindersEnabled, nil
}
