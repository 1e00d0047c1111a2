package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer buffers messages in memory and writes them to Kafka from a single
// goroutine, so callers never wait on the broker.
type Producer struct {
	w       messageWriter
	logger  *slog.Logger
	inbox   chan kafka.Message
	closeCh chan struct{}
	once    sync.Once
}

// NewProducer builds a producer for topic. Messages with the same key land on
// the same partition.
func NewProducer(brokers []string, topic string, buf int, logger *slog.Logger) *Producer {
	return newProducer(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}, buf, logger)
}

func newProducer(w messageWriter, buf int, logger *slog.Logger) *Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Producer{
		w:       w,
		logger:  logger,
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
	}
}

// Start runs the write loop until Close is called or ctx ends. Remaining
// messages are flushed before the writer is closed.
func (p *Producer) Start(ctx context.Context) {
	go func() {
		defer close(p.closeCh)
		for {
			select {
			case <-ctx.Done():
				p.Close()
				p.drain()
				return
			case m, ok := <-p.inbox:
				if !ok {
					p.drain()
					return
				}
				p.write(m)
			}
		}
	}()
}

func (p *Producer) drain() {
	for m := range p.inbox {
		p.write(m)
	}
	if err := p.w.Close(); err != nil {
		p.logger.Error("Failed to close kafka writer", slog.String("error", err.Error()))
	}
}

func (p *Producer) write(m kafka.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := p.w.WriteMessages(ctx, m); err != nil {
		p.logger.Error("Failed to write event to kafka",
			slog.String("key", string(m.Key)),
			slog.String("error", err.Error()))
	}
}

// Publish queues a message. When the buffer is full the message is dropped and
// logged.
func (p *Producer) Publish(key, value []byte, headers ...kafka.Header) {
	m := kafka.Message{
		Key:     key,
		Value:   value,
		Time:    time.Now(),
		Headers: headers,
	}
	defer func() {
		// publishing after Close must not bring the process down
		if recover() != nil {
			p.logger.Warn("Event dropped, producer closed", slog.String("key", string(key)))
		}
	}()
	select {
	case p.inbox <- m:
	default:
		p.logger.Warn("Event dropped, producer buffer full", slog.String("key", string(key)))
	}
}

// Close stops accepting messages. The write loop flushes what is queued.
func (p *Producer) Close() {
	p.once.Do(func() { close(p.inbox) })
}

// WaitClosed blocks until the write loop has flushed and exited.
func (p *Producer) WaitClosed() { <-p.closeCh }
