package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task is one entry in the planner. Reminder is nil when the task has no
// reminder; the combination "enabled but no time" cannot be expressed.
type Task struct {
	ID          uuid.UUID
	Title       string
	Description string
	DueDate     time.Time
	Reminder    *ReminderTime
}

// ReminderTime is a wall-clock time of day on the task's due date.
type ReminderTime struct {
	Hour   int
	Minute int
}

func (r ReminderTime) String() string {
	return fmt.Sprintf("%02d:%02d", r.Hour, r.Minute)
}

// ParseReminderTime accepts "HH:MM" as well as the unpadded "H:M" form
// produced by older clients.
func ParseReminderTime(s string) (ReminderTime, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return ReminderTime{}, fmt.Errorf("invalid reminder time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return ReminderTime{}, fmt.Errorf("invalid reminder time %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return ReminderTime{}, fmt.Errorf("invalid reminder time %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return ReminderTime{}, fmt.Errorf("reminder time %q out of range", s)
	}
	return ReminderTime{Hour: h, Minute: m}, nil
}

// ReminderInstant is the moment the reminder becomes due: the task's civil
// due date at the reminder's time of day, in the due date's location.
// Returns false when the task has no reminder.
func (t Task) ReminderInstant() (time.Time, bool) {
	if t.Reminder == nil {
		return time.Time{}, false
	}
	y, m, d := t.DueDate.Date()
	return time.Date(y, m, d, t.Reminder.Hour, t.Reminder.Minute, 0, 0, t.DueDate.Location()), true
}

// DueOn reports whether the task's due date falls on the same civil date
// as d. Only (year, month, day) are compared; time of day is ignored.
func (t Task) DueOn(d time.Time) bool {
	y1, m1, d1 := t.DueDate.Date()
	y2, m2, d2 := d.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

type taskJSON struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	DueDate         string  `json:"dueDate"`
	ReminderTime    *string `json:"reminderTime"`
	ReminderEnabled bool    `json:"reminderEnabled"`
}

func (t Task) MarshalJSON() ([]byte, error) {
	out := taskJSON{
		ID:      t.ID.String(),
		Title:   t.Title,
		DueDate: t.DueDate.Format(time.RFC3339),
	}
	if t.Description != "" {
		out.Description = &t.Description
	}
	if t.Reminder != nil {
		s := t.Reminder.String()
		out.ReminderTime = &s
		out.ReminderEnabled = true
	}
	return json.Marshal(out)
}

func (t *Task) UnmarshalJSON(data []byte) error {
	var in taskJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	id, err := uuid.Parse(in.ID)
	if err != nil {
		return fmt.Errorf("invalid task id %q: %w", in.ID, err)
	}
	due, err := time.Parse(time.RFC3339, in.DueDate)
	if err != nil {
		return fmt.Errorf("invalid due date %q: %w", in.DueDate, err)
	}

	t.ID = id
	t.Title = in.Title
	t.DueDate = due
	t.Description = ""
	if in.Description != nil {
		t.Description = *in.Description
	}

	// Enabled with no time is a known inconsistency in old payloads;
	// it collapses to "no reminder".
	t.Reminder = nil
	if in.ReminderEnabled && in.ReminderTime != nil {
		rt, err := ParseReminderTime(*in.ReminderTime)
		if err != nil {
			return err
		}
		t.Reminder = &rt
	}
	return nil
}
