// Package notify announces scans and status exports on a message broker.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	kafkago "github.com/segmentio/kafka-go"
	logger "github.com/sirupsen/logrus"

	"github.com/wellywell/ssccscan/internal/config"
	"github.com/wellywell/ssccscan/internal/types"
)

const publishTimeout = 5 * time.Second

type sender interface {
	send(ctx context.Context, topic string, payload []byte) error
	close()
}

// Publisher sends scan and status events to the configured backend. With
// backend none every publish is a no-op. Failures are logged, never returned.
type Publisher struct {
	mu     sync.RWMutex
	conf   *config.MessagingConfig
	sender sender
}

func NewPublisher(conf *config.MessagingConfig) *Publisher {
	return &Publisher{conf: conf}
}

// Connect sets up the backend connection.
func (p *Publisher) Connect() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.conf.Backend {
	case config.BackendNone, "":
		return nil
	case config.BackendMQTT:
		s, err := connectMQTT(p.conf)
		if err != nil {
			return err
		}
		p.sender = s
	case config.BackendKafka:
		p.sender = newKafkaSender(p.conf)
	default:
		return fmt.Errorf("unknown messaging backend: %s", p.conf.Backend)
	}
	logger.Infof("Messaging backend %s ready", p.conf.Backend)
	return nil
}

func (p *Publisher) PublishScan(ctx context.Context, entry types.ScanEntry) {
	p.publish(ctx, p.conf.ScanTopic, entry)
}

func (p *Publisher) PublishStatus(ctx context.Context, event types.StatusEvent) {
	p.publish(ctx, p.conf.StatusTopic, event)
}

func (p *Publisher) publish(ctx context.Context, topic string, event any) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.sender == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Errorf("Could not encode event for %s: %s", topic, err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.sender.send(ctx, topic, payload); err != nil {
		logger.Warnf("Publish to %s failed: %s", topic, err)
	}
}

func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sender != nil {
		p.sender.close()
		p.sender = nil
	}
}

type mqttSender struct {
	client mqtt.Client
}

func connectMQTT(conf *config.MessagingConfig) (*mqttSender, error) {
	broker := fmt.Sprintf("tcp://%s:%d", conf.MQTTBroker, conf.MQTTPort)
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(conf.MQTTClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(publishTimeout) {
		logger.Warnf("MQTT broker %s not reachable yet, retrying in background", broker)
	} else if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &mqttSender{client: client}, nil
}

func (s *mqttSender) send(ctx context.Context, topic string, payload []byte) error {
	if !s.client.IsConnected() {
		return fmt.Errorf("mqtt not connected")
	}
	token := s.client.Publish(topic, 1, false, payload)
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *mqttSender) close() {
	s.client.Disconnect(1000)
}

type kafkaSender struct {
	writer *kafkago.Writer
}

func newKafkaSender(conf *config.MessagingConfig) *kafkaSender {
	return &kafkaSender{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(conf.Brokers()...),
			Balancer:     &kafkago.LeastBytes{},
			RequiredAcks: kafkago.RequireOne,
		},
	}
}

func (s *kafkaSender) send(ctx context.Context, topic string, payload []byte) error {
	return s.writer.WriteMessages(ctx, kafkago.Message{
		Topic: topic,
		Value: payload,
	})
}

func (s *kafkaSender) close() {
	if err := s.writer.Close(); err != nil {
		logger.Warnf("Closing kafka writer: %s", err)
	}
}
