// Package sink exports whale events to external systems.
package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/Mantelijo/whale-alert/internal/hub"
	"github.com/Mantelijo/whale-alert/internal/metrics"
	"github.com/Mantelijo/whale-alert/internal/whale"
)

// Envelope wraps every exported record.
type Envelope struct {
	Type string          `json:"type"`
	TS   int64           `json:"ts"`
	Data json.RawMessage `json:"data"`
}

// Source is the hub a sink exports from.
type Source interface {
	Subscribe() *hub.Subscription
	Unsubscribe(sub *hub.Subscription)
}

// KafkaSink publishes whale events to a kafka topic, keyed by event id.
type KafkaSink struct {
	topic   string
	p       sarama.SyncProducer
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*KafkaSink)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *KafkaSink) {
		s.metrics = m
	}
}

func NewKafkaSink(brokers []string, topic string, cfg *sarama.Config, opts ...Option) (*KafkaSink, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("no kafka brokers")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka topic is empty")
	}
	if cfg == nil {
		cfg = sarama.NewConfig()
		cfg.Producer.RequiredAcks = sarama.WaitForAll
		cfg.Producer.Retry.Max = 5
		cfg.Producer.Retry.Backoff = 200 * time.Millisecond
	}
	// SyncProducer needs both
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true

	p, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return NewKafkaSinkWithProducer(p, topic, opts...), nil
}

func NewKafkaSinkWithProducer(p sarama.SyncProducer, topic string, opts ...Option) *KafkaSink {
	s := &KafkaSink{topic: topic, p: p, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.New(nil)
	}
	return s
}

// Emit sends one event and waits for the broker ack.
func (s *KafkaSink) Emit(ev *whale.WhaleEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	b, err := json.Marshal(Envelope{
		Type: string(hub.WhaleTransaction),
		TS:   s.now().UnixMilli(),
		Data: data,
	})
	if err != nil {
		return err
	}

	_, _, err = s.p.SendMessage(&sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(ev.ID),
		Value: sarama.ByteEncoder(b),
	})
	if err != nil {
		return fmt.Errorf("kafka emit failed: %w", err)
	}
	return nil
}

// Run exports every live event published to src until ctx is done or src is
// closed. The history present at the first subscription is not exported.
// Failed sends are logged and skipped.
//
// When the hub drops the sink for falling behind, Run subscribes again and
// exports the events it missed from the new history snapshot, oldest first.
// Events evicted from history before that are lost and logged.
func (s *KafkaSink) Run(ctx context.Context, src Source) error {
	slog.Info("exporting whale events to kafka", slog.String("topic", s.topic))

	// id of the newest event received from the hub
	var last string
	for resumed := false; ; resumed = true {
		sub := src.Subscribe()
		open := s.consume(ctx, sub, &last, resumed)
		src.Unsubscribe(sub)
		if !open || ctx.Err() != nil {
			return nil
		}
	}
}

// consume exports the messages of sub until ctx is done or the channel is
// closed. It reports whether the hub may still be subscribed to, which is
// the case once a history snapshot was received.
func (s *KafkaSink) consume(ctx context.Context, sub *hub.Subscription, last *string, resumed bool) bool {
	subscribed := false
	for {
		select {
		case <-ctx.Done():
			return false
		case msg, ok := <-sub.Messages():
			if !ok {
				// a closed hub closes new subscriptions before the snapshot
				return subscribed
			}
			switch msg.Type {
			case hub.InitialData:
				subscribed = true
				history, _ := msg.Data.([]*whale.WhaleEvent)
				if resumed {
					s.backfill(ctx, history, last)
				} else if len(history) > 0 {
					*last = history[0].ID
				}
			case hub.WhaleTransaction:
				ev, ok := msg.Data.(*whale.WhaleEvent)
				if !ok {
					continue
				}
				*last = ev.ID
				s.export(ev)
			}
		}
	}
}

// backfill exports the events of the newest first history that were
// published after last.
func (s *KafkaSink) backfill(ctx context.Context, history []*whale.WhaleEvent, last *string) {
	missed := history
	found := *last == ""
	for i, ev := range history {
		if ev.ID == *last {
			missed = history[:i]
			found = true
			break
		}
	}

	s.metrics.ExportResubscribes.Inc()
	slog.Warn("kafka export fell behind, resubscribed",
		slog.String("topic", s.topic),
		slog.Int("missed", len(missed)),
	)
	if !found {
		slog.Error("kafka export lost events evicted from history",
			slog.String("topic", s.topic),
			slog.String("last_exported_id", *last),
		)
	}

	for i := len(missed) - 1; i >= 0; i-- {
		if ctx.Err() != nil {
			return
		}
		*last = missed[i].ID
		s.export(missed[i])
		s.metrics.ExportBackfilled.Inc()
	}
}

func (s *KafkaSink) export(ev *whale.WhaleEvent) {
	if err := s.Emit(ev); err != nil {
		slog.Error("failed to export whale event",
			slog.Any("error", err),
			slog.String("id", ev.ID),
		)
	}
}

func (s *KafkaSink) Close() error {
	if s.p != nil {
		return s.p.Close()
	}
	return nil
}
