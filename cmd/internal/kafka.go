package internal

import (
	"github.com/confluentinc/confluent-kafka-go/kafka"
	"go.uber.org/zap"

	"github.com/sanLimbu/tasks-api/internal"
	"github.com/sanLimbu/tasks-api/internal/config"
)

// KafkaProducer pairs the producer with the topic events are written to.
type KafkaProducer struct {
	Producer *kafka.Producer
	Topic    string
}

// NewKafkaProducer instantiates the Kafka producer. Delivery reports are logged, failures don't block
// the request that published the event.
func NewKafkaProducer(conf config.Broker, logger *zap.Logger) (*KafkaProducer, error) {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": conf.KafkaHost,
	})
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "kafka.NewProducer")
	}

	go func() {
		for e := range producer.Events() {
			if msg, ok := e.(*kafka.Message); ok && msg.TopicPartition.Error != nil {
				logger.Error("kafka delivery failed", zap.Error(msg.TopicPartition.Error))
			}
		}
	}()

	return &KafkaProducer{
		Producer: producer,
		Topic:    conf.KafkaTopic,
	}, nil
}

// Close flushes pending messages and closes the producer.
func (k *KafkaProducer) Close() {
	k.Producer.Flush(5000)
	k.Producer.Close()
}

// KafkaConsumer wraps the consumer subscribed to the tasks topic.
type KafkaConsumer struct {
	Consumer *kafka.Consumer
}

// NewKafkaConsumer instantiates the Kafka consumer subscribed to the tasks topic, offsets are committed
// manually.
func NewKafkaConsumer(conf config.Broker, groupID string) (*KafkaConsumer, error) {
	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":  conf.KafkaHost,
		"group.id":           groupID,
		"auto.offset.reset":  "earliest",
		"enable.auto.commit": false,
	})
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "kafka.NewConsumer")
	}

	if err := consumer.Subscribe(conf.KafkaTopic, nil); err != nil {
		consumer.Close()
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "consumer.Subscribe")
	}

	return &KafkaConsumer{
		Consumer: consumer,
	}, nil
}
