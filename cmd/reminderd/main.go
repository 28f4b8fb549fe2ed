package main

import (
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

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

	dsn := viper.GetString("POSTGRES_DSN")
	broker := viper.GetString("KAFKA_BROKER")
	topic := viper.GetString("KAFKA_TOPIC")

	if dsn == "" || broker == "" || topic == "" {
		log.Fatal("postgres.dsn, kafka.broker or kafka.topic is not configured")
	}

	interval := viper.GetDuration("POLL_INTERVAL")
	if interval == 0 {
		interval = time.Minute
	}
	if interval >= services.ReminderWindow {
		log.Printf("warning: poll interval %s is not shorter than the %s reminder window, reminders can be missed", interval, services.ReminderWindow)
	}

	// The poller only makes sense over the shared durable store; the
	// in-memory backend is private to whichever process owns it.
	repo, err := repositories.NewPostgresTaskRepo(dsn)
	if err != nil {
		log.Fatal(err)
	}

	var cache repositories.TaskCache = repositories.NopCache{}
	if addr := viper.GetString("REDIS_ADDR"); addr != "" {
		cache = repositories.NewRedisTaskCache(redis.NewClient(&redis.Options{Addr: addr}))
	}

	svc := services.NewTaskService(repo, cache)
	notifier := services.NewReminderNotifier(svc)

	events := kafka.NewProducer(broker, topic)
	defer events.Close()

	log.Printf("reminderd started, polling every %s", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for now := range ticker.C {
		due, err := notifier.Poll(now)
		if err != nil {
			log.Printf("reminder poll failed: %v", err)
			continue
		}
		for _, t := range due {
			instant, _ := t.ReminderInstant()
			log.Printf("reminder due: %q (scheduled %s)", t.Title, instant.Format(time.RFC3339))
			events.SendEvent("reminder_due", t.ID.String())
		}
	}
}
