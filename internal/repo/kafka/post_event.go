package kafka

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/vmihailenco/msgpack/v5"
	"posts-backend/internal/entity"
	"posts-backend/internal/repo"
)

const (
	NumPartitions = 3
)

// TopicConfig содержит настройки для создания топика
type TopicConfig struct {
	NumPartitions     int
	ReplicationFactor int
}

type PostEventKafkaRepository struct {
	writer *kafka.Writer
}

// createTopicIfNotExists создает топик, если он не существует
func createTopicIfNotExists(ctx context.Context, brokers []string, topic string, config TopicConfig) error {
	dialer := &kafka.Dialer{Timeout: 5 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", brokers[0])
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	partitions, err := conn.ReadPartitions(topic)
	if err != nil && !errors.Is(err, kafka.UnknownTopicOrPartition) {
		return err
	}
	if len(partitions) > 0 {
		return nil
	}

	controller, err := conn.Controller()
	if err != nil {
		return err
	}
	controllerConn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return err
	}
	defer func() { _ = controllerConn.Close() }()

	return controllerConn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     config.NumPartitions,
		ReplicationFactor: config.ReplicationFactor,
	})
}

// replicationFactor не может быть больше количества брокеров
func replicationFactor(brokers []string, desired int) int {
	return max(1, min(len(brokers), desired))
}

func NewPostEventKafkaRepository(brokers []string, topic string) (repo.PostEventRepository, error) {
	if len(brokers) == 0 {
		return nil, errors.New("не предоставлены брокеры Kafka")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	topicConfig := TopicConfig{
		NumPartitions:     NumPartitions,
		ReplicationFactor: replicationFactor(brokers, 3),
	}
	if err := createTopicIfNotExists(ctx, brokers, topic, topicConfig); err != nil {
		return nil, fmt.Errorf("ошибка при создании топика %s: %w", topic, err)
	}
	return &PostEventKafkaRepository{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}, nil
}

func (r *PostEventKafkaRepository) PublishPostEvent(ctx context.Context, event *entity.PostEvent) error {
	message, err := encodePostEvent(event)
	if err != nil {
		return err
	}
	return r.writer.WriteMessages(ctx, message)
}

// encodePostEvent сериализует событие; ключ - ID поста, чтобы события одного поста шли в одну партицию
func encodePostEvent(event *entity.PostEvent) (kafka.Message, error) {
	b, err := msgpack.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(event.PostID),
		Value: b,
		Time:  event.OccurredAt,
	}, nil
}

func (r *PostEventKafkaRepository) Close() error {
	return r.writer.Close()
}
