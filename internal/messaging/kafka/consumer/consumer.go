package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/1000bang/vacation-api-sub001/internal/events"
)

// ConsumeAlarmDeliveries drains the notification topic and records each
// delivery. Downstream channels (mail, push) hook in here; for now a
// structured log line is the delivery.
func ConsumeAlarmDeliveries(
	ctx context.Context,
	reader *kafkago.Reader,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.alarm_delivery")
	log.Info("alarm delivery consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("alarm delivery consumer stopped")
				return
			}
			log.Error("fetch alarm delivery message failed", zap.Error(err))
			continue
		}

		var event events.AlarmCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			// A malformed payload never becomes readable on retry.
			log.Error("decode alarm_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		log.Info("alarm delivered",
			zap.Int64("alarm_seq", event.AlarmSeq),
			zap.String("user_id", event.UserID),
			zap.String("alarm_type", event.AlarmType),
			zap.String("application_type", event.ApplicationType),
			zap.Int64("application_seq", event.ApplicationSeq),
		)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit alarm delivery message failed", zap.Error(err))
		}
	}
}
