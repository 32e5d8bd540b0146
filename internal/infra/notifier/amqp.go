package notifier

import (
	"context"
	"encoding/json"
	"time"

	"studio-booking/internal/pkg/errs"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPNotifier hands verification codes to the mail worker through a
// durable queue. Delivery is fire and forget; callers treat a publish
// failure as a warning, not an abort.
type AMQPNotifier struct {
	conn  *amqp.Connection
	queue string
}

func NewAMQPNotifier(conn *amqp.Connection, queue string) *AMQPNotifier {
	return &AMQPNotifier{conn: conn, queue: queue}
}

type codeRequestedEvent struct {
	BookingID uuid.UUID `json:"booking_id"`
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	RoomName  string    `json:"room_name"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (n *AMQPNotifier) SendCode(ctx context.Context, email, code string, meta shared.CodeMeta) error {
	ch, err := n.conn.Channel()
	if err != nil {
		return errs.Wrap(err, "failed to open channel")
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so codes survive a broker restart.
	if _, err := ch.QueueDeclare(n.queue, true, false, false, false, nil); err != nil {
		return errs.Wrap(err, "failed to declare queue")
	}

	body, err := json.Marshal(codeRequestedEvent{
		BookingID: meta.BookingID,
		Email:     email,
		Code:      code,
		RoomName:  meta.RoomName,
		Date:      meta.Date,
		StartTime: meta.StartTime,
		EndTime:   meta.EndTime,
		ExpiresAt: meta.ExpiresAt,
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode event")
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", n.queue, false, false, pub); err != nil {
		return errs.Wrap(err, "failed to publish event")
	}
	return nil
}
