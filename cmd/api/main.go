package main

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"github.com/mikarurangwa/dayplan/internal/app/models"
	"github.com/mikarurangwa/dayplan/internal/app/repositories"
	"github.com/mikarurangwa/dayplan/internal/app/services"
	"github.com/mikarurangwa/dayplan/internal/kafka"
)

func initConfig() {
	viper.SetEnvPrefix("DAYPLAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func main() {
	initConfig()

	port := viper.GetString("API_PORT")
	if port == "" {
		log.Fatal("api.port is not configured")
	}

	repo, err := buildRepo()
	if err != nil {
		log.Fatal(err)
	}

	var cache repositories.TaskCache = repositories.NopCache{}
	if addr := viper.GetString("REDIS_ADDR"); addr != "" {
		cache = repositories.NewRedisTaskCache(redis.NewClient(&redis.Options{Addr: addr}))
	}

	var events *kafka.Producer
	if broker := viper.GetString("KAFKA_BROKER"); broker != "" {
		topic := viper.GetString("KAFKA_TOPIC")
		if topic == "" {
			log.Fatal("kafka.topic is not configured")
		}
		events = kafka.NewProducer(broker, topic)
		defer events.Close()
	}

	srv := &server{
		svc:    services.NewTaskService(repo, cache),
		events: events,
		now:    time.Now,
	}

	log.Printf("API started on :%s", port)
	log.Fatal(newRouter(srv).Run(":" + port))
}

func buildRepo() (repositories.TaskRepository, error) {
	switch storage := viper.GetString("STORAGE"); storage {
	case "", "memory":
		return repositories.NewMemoryTaskRepo(), nil
	case "postgres":
		dsn := viper.GetString("POSTGRES_DSN")
		if dsn == "" {
			return nil, errors.New("postgres.dsn is not configured")
		}
		repo, err := repositories.NewPostgresTaskRepo(dsn)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, errors.New("unknown storage backend: " + storage)
	}
}

type server struct {
	svc    *services.TaskService
	events *kafka.Producer
	now    func() time.Time
}

func newRouter(s *server) *gin.Engine {
	r := gin.Default()

	r.POST("/create", s.createHandler)
	r.PUT("/update", s.updateHandler)
	r.DELETE("/delete", s.deleteHandler)
	r.GET("/list", s.listHandler)
	r.GET("/today", s.todayHandler)
	r.GET("/on", s.onHandler)
	r.GET("/reminders/due", s.dueRemindersHandler)
	r.GET("/settings/reminders", s.getRemindersFlagHandler)
	r.PUT("/settings/reminders", s.setRemindersFlagHandler)

	return r
}

func (s *server) createHandler(c *gin.Context) {
	var req struct {
		Title           string  `json:"title"`
		Description     string  `json:"description"`
		DueDate         string  `json:"dueDate"`
		ReminderTime    *string `json:"reminderTime"`
		ReminderEnabled bool    `json:"reminderEnabled"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	due, err := time.Parse(time.RFC3339, req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dueDate"})
		return
	}

	var reminder *models.ReminderTime
	if req.ReminderEnabled && req.ReminderTime != nil {
		rt, err := models.ParseReminderTime(*req.ReminderTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		reminder = &rt
	}

	task, err := s.svc.Create(req.Title, req.Description, due, reminder)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	s.emit("created", task.ID)
	c.JSON(http.StatusOK, task)
}

func (s *server) updateHandler(c *gin.Context) {
	var task models.Task
	if err := c.BindJSON(&task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.svc.Update(task); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	s.emit("updated", task.ID)
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (s *server) deleteHandler(c *gin.Context) {
	var req struct {
		ID string `json:"id"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ID"})
		return
	}

	if err := s.svc.Delete(id); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	s.emit("deleted", id)
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *server) listHandler(c *gin.Context) {
	tasks, err := s.svc.List()
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, taskList(tasks))
}

func (s *server) todayHandler(c *gin.Context) {
	tasks, err := s.svc.TasksToday(s.now())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, taskList(tasks))
}

func (s *server) onHandler(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	tasks, err := s.svc.TasksOn(date)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, taskList(tasks))
}

func (s *server) dueRemindersHandler(c *gin.Context) {
	tasks, err := s.svc.DueReminders(s.now())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, taskList(tasks))
}

func (s *server) getRemindersFlagHandler(c *gin.Context) {
	enabled, err := s.svc.RemindersEnabled()
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"enabled": enabled})
}

func (s *server) setRemindersFlagHandler(c *gin.Context) {
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.svc.SetRemindersEnabled(req.Enabled); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"enabled": req.Enabled})
}

func (s *server) emit(action string, id uuid.UUID) {
	if s.events != nil {
		s.events.SendEvent(action, id.String())
	}
}

// taskList keeps empty results rendering as [] instead of null.
func taskList(tasks []models.Task) []models.Task {
	if tasks == nil {
		return []models.Task{}
	}
	return tasks
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrEmptyTitle), errors.Is(err, models.ErrDuplicateID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
