package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event is the audit record published for every mutation and every
// reminder firing.
type Event struct {
	Action string    `json:"action"`
	TaskID string    `json:"task_id"`
	At     time.Time `json:"at"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(broker, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(broker),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// SendEvent publishes best-effort; an unreachable broker must never fail
// the request that triggered the event.
func (p *Producer) SendEvent(action, taskID string) {
	ev := Event{
		Action: action,
		TaskID: taskID,
		At:     time.Now(),
	}

	value, err := json.Marshal(ev)
	if err != nil {
		log.Println("failed to marshal kafka event:", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(taskID),
		Value: value,
		Time:  ev.At,
	}

	if err := p.writer.WriteMessages(context.Background(), msg); err != nil {
		log.Println("failed to write kafka message:", err)
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
