package repositories

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/mikarurangwa/dayplan/internal/app/models"
	_ "github.com/lib/pq"
)

// PostgresTaskRepo is the opt-in durable backend. The sequence column keeps
// insertion order stable across restarts.
type PostgresTaskRepo struct {
	db *sql.DB
}

func NewPostgresTaskRepo(dsn string) (*PostgresTaskRepo, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, &models.StorageError{Op: "open", Err: err}
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS tasks (
			pos SERIAL,
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			due_date TIMESTAMPTZ NOT NULL,
			reminder_hour SMALLINT,
			reminder_minute SMALLINT
		)
	`)
	if err != nil {
		return nil, &models.StorageError{Op: "migrate tasks", Err: err}
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS settings (
			id SMALLINT PRIMARY KEY DEFAULT 1,
			reminders_enabled BOOLEAN NOT NULL DEFAULT TRUE
		)
	`)
	if err != nil {
		return nil, &models.StorageError{Op: "migrate settings", Err: err}
	}
	_, err = db.Exec(`INSERT INTO settings (id) VALUES (1) ON CONFLICT DO NOTHING`)
	if err != nil {
		return nil, &models.StorageError{Op: "seed settings", Err: err}
	}

	return &PostgresTaskRepo{db: db}, nil
}

func (r *PostgresTaskRepo) Add(task models.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return models.ErrEmptyTitle
	}

	var exists bool
	err := r.db.QueryRow("SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)", task.ID).Scan(&exists)
	if err != nil {
		return &models.StorageError{Op: "add", Err: err}
	}
	if exists {
		return models.ErrDuplicateID
	}

	hour, minute := reminderColumns(task)
	_, err = r.db.Exec(
		"INSERT INTO tasks (id, title, description, due_date, reminder_hour, reminder_minute) VALUES ($1, $2, $3, $4, $5, $6)",
		task.ID, task.Title, task.Description, task.DueDate, hour, minute)
	if err != nil {
		return &models.StorageError{Op: "add", Err: err}
	}
	return nil
}

func (r *PostgresTaskRepo) Update(task models.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return models.ErrEmptyTitle
	}

	hour, minute := reminderColumns(task)
	res, err := r.db.Exec(
		"UPDATE tasks SET title = $2, description = $3, due_date = $4, reminder_hour = $5, reminder_minute = $6 WHERE id = $1",
		task.ID, task.Title, task.Description, task.DueDate, hour, minute)
	if err != nil {
		return &models.StorageError{Op: "update", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &models.StorageError{Op: "update", Err: err}
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresTaskRepo) Delete(id uuid.UUID) error {
	_, err := r.db.Exec("DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return &models.StorageError{Op: "delete", Err: err}
	}
	return nil
}

func (r *PostgresTaskRepo) List() ([]models.Task, error) {
	rows, err := r.db.Query(
		"SELECT id, title, description, due_date, reminder_hour, reminder_minute FROM tasks ORDER BY pos")
	if err != nil {
		return nil, &models.StorageError{Op: "list", Err: err}
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		var hour, minute sql.NullInt64
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &hour, &minute); err != nil {
			return nil, &models.StorageError{Op: "list", Err: err}
		}
		if hour.Valid && minute.Valid {
			t.Reminder = &models.ReminderTime{Hour: int(hour.Int64), Minute: int(minute.Int64)}
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.StorageError{Op: "list", Err: err}
	}
	return tasks, nil
}

func (r *PostgresTaskRepo) SetRemindersEnabled(enabled bool) error {
	_, err := r.db.Exec("UPDATE settings SET reminders_enabled = $1 WHERE id = 1", enabled)
	if err != nil {
		return &models.StorageError{Op: "set reminders flag", Err: err}
	}
	return nil
}

func (r *PostgresTaskRepo) RemindersEnabled() (bool, error) {
	var enabled bool
	err := r.db.QueryRow("SELECT reminders_enabled FROM settings WHERE id = 1").Scan(&enabled)
	if err != nil {
		return false, &models.StorageError{Op: "get reminders flag", Err: err}
	}
	return enabled, nil
}

func reminderColumns(task models.Task) (hour, minute sql.NullInt64) {
	if task.Reminder != nil {
		hour = sql.NullInt64{Int64: int64(task.Reminder.Hour), Valid: true}
		minute = sql.NullInt64{Int64: int64(task.Reminder.Minute), Valid: true}
	}
	return hour, minute
}
