package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTaskJSONRoundTrip(t *testing.T) {
	due, _ := time.Parse(time.RFC3339, "2024-05-01T00:00:00Z")
	task := Task{
		ID:          uuid.New(),
		Title:       "Read Ch.3",
		Description: "pages 40-60",
		DueDate:     due,
		Reminder:    &ReminderTime{Hour: 9, Minute: 0},
	}

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var got Task
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if got.ID != task.ID || got.Title != task.Title || got.Description != task.Description {
		t.Fatalf("fields changed in round trip: %+v", got)
	}
	if !got.DueDate.Equal(task.DueDate) {
		t.Fatalf("due date changed: expected %v, got %v", task.DueDate, got.DueDate)
	}
	if got.Reminder == nil || *got.Reminder != *task.Reminder {
		t.Fatalf("reminder changed: %+v", got.Reminder)
	}
}

func TestTaskJSONRoundTripNoReminder(t *testing.T) {
	task := Task{
		ID:      uuid.New(),
		Title:   "no reminder",
		DueDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	s := string(data)
	if !strings.Contains(s, `"reminderTime":null`) {
		t.Fatalf("expected null reminderTime, got %s", s)
	}
	if !strings.Contains(s, `"reminderEnabled":false`) {
		t.Fatalf("expected reminderEnabled false, got %s", s)
	}
	if !strings.Contains(s, `"description":null`) {
		t.Fatalf("expected null description, got %s", s)
	}

	var got Task
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got.Reminder != nil {
		t.Fatalf("expected no reminder, got %+v", got.Reminder)
	}
	if got.Description != "" {
		t.Fatalf("expected empty description, got %q", got.Description)
	}
}

func TestTaskJSONEnabledWithoutTimeCollapses(t *testing.T) {
	// Old payloads can claim an enabled reminder with no time.
	payload := `{"id":"b2f4f7f0-8a3d-4f2e-9a1b-111111111111","title":"x","description":null,"dueDate":"2024-05-01T00:00:00Z","reminderTime":null,"reminderEnabled":true}`

	var got Task
	if err := json.Unmarshal([]byte(payload), &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got.Reminder != nil {
		t.Fatalf("expected inconsistent payload to decode as no reminder, got %+v", got.Reminder)
	}
}

func TestParseReminderTime(t *testing.T) {
	cases := []struct {
		in      string
		want    ReminderTime
		wantErr bool
	}{
		{in: "09:00", want: ReminderTime{9, 0}},
		{in: "9:0", want: ReminderTime{9, 0}},
		{in: "23:59", want: ReminderTime{23, 59}},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "-1:00", wantErr: true},
		{in: "0900", wantErr: true},
		{in: "abc", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseReminderTime(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseReminderTime(%q): expected error, got %+v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseReminderTime(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseReminderTime(%q): expected %+v, got %+v", tc.in, tc.want, got)
		}
	}
}

func TestDueOnIgnoresTimeOfDay(t *testing.T) {
	task := Task{
		ID:      uuid.New(),
		Title:   "x",
		DueDate: time.Date(2024, 5, 1, 18, 30, 0, 0, time.UTC),
	}

	if !task.DueOn(time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC)) {
		t.Error("expected match on same civil date with different time")
	}
	if task.DueOn(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected no match on the following date")
	}
}

func TestReminderInstant(t *testing.T) {
	task := Task{
		ID:       uuid.New(),
		Title:    "x",
		DueDate:  time.Date(2024, 5, 1, 18, 30, 0, 0, time.UTC),
		Reminder: &ReminderTime{Hour: 9, Minute: 15},
	}

	instant, ok := task.ReminderInstant()
	if !ok {
		t.Fatal("expected a reminder instant")
	}
	want := time.Date(2024, 5, 1, 9, 15, 0, 0, time.UTC)
	if !instant.Equal(want) {
		t.Fatalf("expected %v, got %v", want, instant)
	}

	task.Reminder = nil
	if _, ok := task.ReminderInstant(); ok {
		t.Fatal("expected no instant without a reminder")
	}
}
