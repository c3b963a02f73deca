package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/flowers/internal/domain"
	"github.com/Gunvolt24/flowers/internal/ports"
	"github.com/Gunvolt24/flowers/pkg/ctxmeta"
	"github.com/Gunvolt24/flowers/pkg/metrics"
)

// Проверка, что Producer удовлетворяет интерфейсу OrderPublisher.
var _ ports.OrderPublisher = (*Producer)(nil)

// writer — то, что Producer использует из kafka.Writer.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer — публикует оформленные заказы в топик (ключ — order_uid, значение — JSON).
type Producer struct {
	writer    writer
	topic     string
	closeOnce sync.Once
}

// NewProducer — Producer поверх kafka.Writer.
func NewProducer(cfg *ProducerConfig) *Producer {
	return newProducer(cfg.writer(), cfg.Topic)
}

func newProducer(w writer, topic string) *Producer {
	return &Producer{writer: w, topic: topic}
}

// Publish — отправляет заказ; возвращает ошибку, если брокер не подтвердил запись.
func (p *Producer) Publish(ctx context.Context, order *domain.Order) error {
	if order == nil || order.OrderUID == "" {
		return errors.New("publish: order_uid is required")
	}
	value, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("publish: marshal order: %w", err)
	}

	msg := kafka.Message{Key: []byte(order.OrderUID), Value: value}
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		msg.Headers = append(msg.Headers, kafka.Header{Key: "X-Request-ID", Value: []byte(rid)})
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		metrics.KafkaMessagesPublished.WithLabelValues(p.topic, "error").Inc()
		return fmt.Errorf("publish order %s: %w", order.OrderUID, err)
	}
	metrics.KafkaMessagesPublished.WithLabelValues(p.topic, "ok").Inc()
	return nil
}

// Close — сбрасывает буферы и закрывает writer.
func (p *Producer) Close() (err error) {
	p.closeOnce.Do(func() { err = p.writer.Close() })
	return err
}
