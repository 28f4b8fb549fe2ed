package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/mikarurangwa/dayplan/internal/app/models"
)

// ReminderWindow is how long after its scheduled instant a reminder still
// counts as due. A poller slower than this window can miss reminders
// entirely; that is the accepted trade-off of polling.
const ReminderWindow = 5 * time.Minute

// DueReminders returns every task whose reminder instant falls in the
// half-open window [instant, instant+ReminderWindow) around now. The check
// is stateless: polling twice inside the window returns the task twice.
// The global reminders flag is not consulted here; it gates delivery, not
// evaluation.
func (s *TaskService) DueReminders(now time.Time) ([]models.Task, error) {
	all, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	var due []models.Task
	for _, t := range all {
		instant, ok := t.ReminderInstant()
		if !ok {
			continue
		}
		if !now.Before(instant) && now.Before(instant.Add(ReminderWindow)) {
			due = append(due, t)
		}
	}
	return due, nil
}

// ReminderNotifier wraps DueReminders with the delivery-side concerns the
// evaluator deliberately leaves out: the global enabled flag and
// once-per-instant deduplication across polls.
type ReminderNotifier struct {
	svc  *TaskService
	seen map[uuid.UUID]time.Time // task id -> reminder instant last fired
}

func NewReminderNotifier(svc *TaskService) *ReminderNotifier {
	return &ReminderNotifier{
		svc:  svc,
		seen: make(map[uuid.UUID]time.Time),
	}
}

// Poll returns the tasks to notify about at now: due reminders that have
// not already fired for their current instant. Rescheduling a task's
// reminder makes it eligible to fire again.
func (n *ReminderNotifier) Poll(now time.Time) ([]models.Task, error) {
	enabled, err := n.svc.RemindersEnabled()
	if err != nil {
		return nil, err
	}
	if !enabled {
		return nil, nil
	}

	due, err := n.svc.DueReminders(now)
	if err != nil {
		return nil, err
	}

	var fire []models.Task
	for _, t := range due {
		instant, _ := t.ReminderInstant()
		if last, ok := n.seen[t.ID]; ok && last.Equal(instant) {
			continue
		}
		n.seen[t.ID] = instant
		fire = append(fire, t)
	}

	// Drop entries that left the window so the map does not grow with
	// every task ever notified.
	for id, instant := range n.seen {
		if now.Sub(instant) >= ReminderWindow {
			delete(n.seen, id)
		}
	}

	return fire, nil
}
