// Package event publishes booking lifecycle events to Kafka. The producer is
// optional plumbing: when no brokers are configured the service simply runs
// without it.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/roomkeeper/room-reservation-backend/internal/booking"
)

// BookingEvent is the JSON payload written to the booking events topic.
type BookingEvent struct {
	Type      string    `json:"type"`
	BookingID int64     `json:"booking_id"`
	RoomID    int64     `json:"room_id"`
	Number    string    `json:"number"`
	Status    string    `json:"status"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Producer writes booking events to a single Kafka topic, keyed by booking
// number so events for one booking stay ordered within a partition.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	return &Producer{writer: writer}
}

// PublishBookingEvent implements booking.EventPublisher.
func (p *Producer) PublishBookingEvent(ctx context.Context, eventType string, b *booking.Booking) error {
	evt := BookingEvent{
		Type:      eventType,
		BookingID: b.ID,
		RoomID:    b.RoomID,
		Number:    b.Number,
		Status:    string(b.Status),
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}

	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal booking event failed: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(b.Number),
		Value: data,
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
