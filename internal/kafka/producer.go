// Package kafka publishes dashboard events to Kafka topics. Publishing is
// best-effort: callers log and continue when the broker is unavailable.
package kafka

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/yourorg/trading-dashboard/internal/model"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// BacktestCompletedEvent is emitted after a backtest run finishes and its
// result has been persisted.
type BacktestCompletedEvent struct {
	BacktestID     int     `json:"backtest_id"`
	StrategyID     string  `json:"strategy_id"`
	Symbol         string  `json:"symbol"`
	TotalReturnPct float64 `json:"total_return_pct"`
	SharpeRatio    float64 `json:"sharpe_ratio"`
	TotalTrades    int     `json:"total_trades"`
	CompletedAt    string  `json:"completed_at"`
}

// Producer publishes dashboard events, creating one writer per topic lazily.
// Safe for use from concurrent request handlers.
type Producer struct {
	mu       sync.Mutex
	writers  map[string]*kafka.Writer
	brokers  []string
	clientID string
	logger   *zap.Logger
}

// NewProducer creates a new event producer
func NewProducer(brokers []string, clientID string, logger *zap.Logger) *Producer {
	return &Producer{
		writers:  make(map[string]*kafka.Writer),
		brokers:  brokers,
		clientID: clientID,
		logger:   logger,
	}
}

// PublishBacktestCompleted emits a completion event for a finished run,
// keyed by symbol so events for one instrument stay ordered.
func (p *Producer) PublishBacktestCompleted(ctx context.Context, topic string, backtestID int, result *model.BacktestResult) error {
	event := BacktestCompletedEvent{
		BacktestID:     backtestID,
		StrategyID:     result.StrategyID,
		Symbol:         result.Symbol,
		TotalReturnPct: result.TotalReturnPct,
		SharpeRatio:    result.SharpeRatio,
		TotalTrades:    result.TotalTrades,
		CompletedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	return p.publish(ctx, topic, result.Symbol, event)
}

// getWriter returns the writer for a topic, creating it on first use
func (p *Producer) getWriter(topic string) *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if writer, exists := p.writers[topic]; exists {
		return writer
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(p.brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		Transport: &kafka.Transport{
			ClientID: p.clientID,
		},
	}

	p.writers[topic] = writer
	return writer
}

func (p *Producer) publish(ctx context.Context, topic, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		p.logger.Error("Failed to marshal event",
			zap.String("topic", topic),
			zap.Error(err))
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
		Time:  time.Now(),
	}

	if err := p.getWriter(topic).WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish event",
			zap.String("topic", topic),
			zap.String("key", key),
			zap.Error(err))
		return err
	}

	p.logger.Debug("Event published",
		zap.String("topic", topic),
		zap.String("key", key))

	return nil
}

// Close closes all writers
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for topic, writer := range p.writers {
		if err := writer.Close(); err != nil {
			p.logger.Error("Failed to close Kafka writer",
				zap.String("topic", topic),
				zap.Error(err))
		}
	}
	return nil
}
