package events

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	kafkaGo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher sends events to an external broker
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, key string, event any) error
	Close() error
}

// KafkaPublisher writes events to kafka, one kafka topic per domain topic
type KafkaPublisher struct {
	writer      *kafkaGo.Writer
	topicPrefix string
}

func NewKafkaPublisher(brokers []string, topicPrefix string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(brokers...),
			Balancer:               &kafkaGo.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
		topicPrefix: topicPrefix,
	}
}

func (k *KafkaPublisher) PublishEvent(ctx context.Context, topic string, key string, event any) error {
	payload, err := jsoniter.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	return k.writer.WriteMessages(ctx, kafkaGo.Message{
		Topic: k.topicPrefix + topic,
		Key:   []byte(key),
		Value: payload,
	})
}

func (k *KafkaPublisher) Close() error {
	return k.writer.Close()
}

// Bridge forwards every bus event to the publisher
func Bridge(bus *Bus, pub Publisher, timeout time.Duration) error {
	return bus.SubscribeAll(func(evt Event) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := pub.PublishEvent(ctx, evt.Topic, evt.ResourceID, evt); err != nil {
			zap.L().Error("event export failed",
				zap.String("namespace", "events"),
				zap.String("topic", evt.Topic),
				zap.Error(err),
			)
		}
	}, false)
}
