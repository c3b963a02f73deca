// Пакет kafka — публикация заказов в топик и их чтение с сохранением в хранилище.
package kafka

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/flowers/internal/ports"
	"github.com/Gunvolt24/flowers/pkg/metrics"
	"github.com/Gunvolt24/flowers/pkg/validate"
)

// Проверка, что Consumer удовлетворяет интерфейсу MessageConsumer.
var _ ports.MessageConsumer = (*Consumer)(nil)

// reader — то, что Consumer использует из kafka.Reader.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// messageSaver — разбор, валидация и сохранение заказа из сообщения.
type messageSaver interface {
	SaveFromMessage(ctx context.Context, raw []byte) error
}

// Consumer — читает заказы из топика и сохраняет их (at-least-once, ручной коммит).
type Consumer struct {
	reader         reader
	saver          messageSaver
	log            ports.Logger
	processTimeout time.Duration
	fetchBackoff   *backoff
	rnd            *rand.Rand
	retryPause     time.Duration
	closeOnce      sync.Once
}

// NewConsumer — Consumer поверх kafka.Reader; незаданные таймауты берутся по умолчанию.
func NewConsumer(cfg *ConsumerConfig, saver messageSaver, log ports.Logger) *Consumer {
	c := cfg.withDefaults()
	return newConsumer(kafka.NewReader(c.ReaderConfig()), saver, log, c, rand.New(rand.NewSource(time.Now().UnixNano())))
}

func newConsumer(r reader, saver messageSaver, log ports.Logger, cfg ConsumerConfig, rnd *rand.Rand) *Consumer {
	return &Consumer{
		reader:         r,
		saver:          saver,
		log:            log,
		processTimeout: cfg.ProcessTimeout,
		fetchBackoff:   newBackoff(cfg.RetryInitial, cfg.RetryMax, rnd),
		rnd:            rnd,
		retryPause:     min(cfg.RetryInitial, 500*time.Millisecond),
	}
}

// Run — цикл чтения до отмены ctx:
//   - успешно сохранённое сообщение коммитится;
//   - невалидный заказ логируется и коммитится (повторять бессмысленно);
//   - временная ошибка оставляет оффсет, сообщение будет прочитано снова;
//   - ошибки брокера повторяются с экспоненциальной паузой.
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "order consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			wait := c.fetchBackoff.next()
			c.log.Warnf(ctx, "fetch failed: %v (retry in %s)", err, wait)
			if !sleepCtx(ctx, wait) {
				return ctx.Err()
			}
			continue
		}
		c.fetchBackoff.reset()
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		if c.process(ctx, rc.Topic, msg) {
			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.log.Warnf(ctx, "commit failed partition=%d offset=%d: %v", msg.Partition, msg.Offset, err)
			}
			continue
		}
		// Пауза перед повтором, чтобы не долбить упавшую зависимость.
		if !sleepCtx(ctx, jitterEqual(c.rnd, c.retryPause)) {
			return ctx.Err()
		}
	}
}

// process — сохраняет одно сообщение; true, если оффсет нужно закоммитить.
func (c *Consumer) process(ctx context.Context, topic string, msg kafka.Message) bool {
	pctx, cancel := context.WithTimeout(ctx, c.processTimeout)
	defer cancel()

	err := c.saver.SaveFromMessage(pctx, msg.Value)
	switch {
	case err == nil:
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
		return true
	case errors.Is(err, validate.ErrInvalidOrder):
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "skip invalid order key=%s offset=%d: %v", msg.Key, msg.Offset, err)
		return true
	default:
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "save failed key=%s offset=%d: %v (will retry)", msg.Key, msg.Offset, err)
		return false
	}
}

// Close — закрывает reader; повторные вызовы ничего не делают.
func (c *Consumer) Close() (err error) {
	c.closeOnce.Do(func() { err = c.reader.Close() })
	return err
}
