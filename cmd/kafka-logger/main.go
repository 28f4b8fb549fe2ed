package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/spf13/viper"

	appkafka "github.com/mikarurangwa/dayplan/internal/kafka"
)

func initConfig() {
	viper.SetEnvPrefix("DAYPLAN")
	viper.AutomaticEnv()
}

func main() {
	initConfig()

	broker := viper.GetString("KAFKA_BROKER")
	topic := viper.GetString("KAFKA_TOPIC")
	logFile := viper.GetString("KAFKA_LOG_FILE")

	if broker == "" || topic == "" || logFile == "" {
		log.Fatal("KAFKA_BROKER, KAFKA_TOPIC or KAFKA_LOG_FILE is not configured")
	}

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}
	defer file.Close()

	logger := log.New(file, "", log.LstdFlags)
	logger.Println("dayplan audit logger started")

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{broker},
		Topic:   topic,
		GroupID: "dayplan-audit-group",
	})

	for {
		m, err := r.ReadMessage(context.Background())
		if err != nil {
			logger.Printf("error reading message: %v\n", err)
			continue
		}

		var ev appkafka.Event
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			logger.Printf("[%s] unparseable event: %s\n", time.Now().Format(time.RFC3339), string(m.Value))
			continue
		}

		logger.Printf("[%s] %s task=%s\n", ev.At.Format(time.RFC3339), ev.Action, ev.TaskID)
	}
}
