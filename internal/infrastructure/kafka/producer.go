package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/merjane-tech/go-backend/internal/cfg"
	"github.com/merjane-tech/go-backend/pkg/e"
	"github.com/merjane-tech/go-backend/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// NotificationType — вид исходящего уведомления.
type NotificationType string

const (
	NotificationDelay      NotificationType = "DELAY"
	NotificationOutOfStock NotificationType = "OUT_OF_STOCK"
	NotificationExpiration NotificationType = "EXPIRATION"
)

const expiryDateLayout = "2006-01-02"

// NotificationMessage — полезная нагрузка сообщения в топике уведомлений.
type NotificationMessage struct {
	EventID      string           `json:"event_id"`
	Type         NotificationType `json:"type"`
	ProductName  string           `json:"product_name"`
	LeadTimeDays *int32           `json:"lead_time_days,omitempty"`
	ExpiryDate   *string          `json:"expiry_date,omitempty"`
	OccurredAt   int64            `json:"occurred_at"`
}

// Producer отправляет уведомления о позициях заказа в Kafka.
// Реализует usecase.Notifier.
type Producer struct {
	writer *kafka.Writer
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) (*Producer, error) {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    10,
		BatchTimeout: 500 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warnf("Kafka producer error: %s", err.Error())
			}
		},
	}

	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
	}, nil
}

// SendDelayNotification уведомляет о задержке пополнения продукта.
func (p *Producer) SendDelayNotification(ctx context.Context, leadTime int32, productName string) error {
	return p.send(ctx, newDelayMessage(leadTime, productName))
}

// SendOutOfStockNotification уведомляет о недоступности продукта.
func (p *Producer) SendOutOfStockNotification(ctx context.Context, productName string) error {
	return p.send(ctx, newOutOfStockMessage(productName))
}

// SendExpirationNotification уведомляет об истечении срока годности продукта.
// expiryDate может отсутствовать, тогда поле не попадает в сообщение.
func (p *Producer) SendExpirationNotification(ctx context.Context, productName string, expiryDate *time.Time) error {
	return p.send(ctx, newExpirationMessage(productName, expiryDate))
}

func (p *Producer) send(ctx context.Context, msg *NotificationMessage) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.ProductName),
		Value: value,
	})
}

// EnsureTopic создаёт топик уведомлений, если он ещё не существует.
func (p *Producer) EnsureTopic(timeout time.Duration) error {
	conn, err := kafka.Dial(p.cfg.NetworkMode, p.cfg.Brokers[0])
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(p.cfg.Topic)
	if err == nil && len(partitions) > 0 {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.CreateTopics(kafka.TopicConfig{
			Topic:             p.cfg.Topic,
			NumPartitions:     p.cfg.Partitions,
			ReplicationFactor: p.cfg.ReplicationFactor,
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to create topic %s: %w", p.cfg.Topic, err))
		}
		return nil
	case <-time.After(timeout):
		_ = conn.Close()
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("timeout: %v, topic: %s", timeout, p.cfg.Topic))
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

func newDelayMessage(leadTime int32, productName string) *NotificationMessage {
	return &NotificationMessage{
		EventID:      uuid.NewString(),
		Type:         NotificationDelay,
		ProductName:  productName,
		LeadTimeDays: &leadTime,
		OccurredAt:   time.Now().UnixNano(),
	}
}

func newOutOfStockMessage(productName string) *NotificationMessage {
	return &NotificationMessage{
		EventID:     uuid.NewString(),
		Type:        NotificationOutOfStock,
		ProductName: productName,
		OccurredAt:  time.Now().UnixNano(),
	}
}

func newExpirationMessage(productName string, expiryDate *time.Time) *NotificationMessage {
	var expiry *string
	if expiryDate != nil {
		formatted := expiryDate.Format(expiryDateLayout)
		expiry = &formatted
	}

	return &NotificationMessage{
		EventID:     uuid.NewString(),
		Type:        NotificationExpiration,
		ProductName: productName,
		ExpiryDate:  expiry,
		OccurredAt:  time.Now().UnixNano(),
	}
}
