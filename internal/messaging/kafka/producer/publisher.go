package producer

import (
	"context"

	"github.com/1000bang/vacation-api-sub001/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// publishEvent writes one outbox row to the broker. The alarm seq is the
// message key so deliveries for the same alarm stay ordered, and the
// originating request id travels along for log correlation on the consumer.
func publishEvent(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	headers := []kafkago.Header{
		{Key: "event_type", Value: []byte(event.EventType)},
		{Key: "aggregate_type", Value: []byte(event.AggregateType)},
	}
	if event.RequestID != "" {
		headers = append(headers, kafkago.Header{Key: "request_id", Value: []byte(event.RequestID)})
	}

	return writer.WriteMessages(ctx, kafkago.Message{
		Topic:   event.Topic,
		Key:     []byte(event.AggregateID),
		Value:   event.Payload,
		Headers: headers,
	})
}
