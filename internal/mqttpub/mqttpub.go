package mqttpub

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/callebjorkell/keypad/internal/button"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
	"time"
)

const (
	defaultTimeout = 2 * time.Second
	disconnectWait = 250
)

var ErrTimeout = errors.New("timed out waiting for the mqtt broker")

type Config struct {
	Broker   string
	Topic    string
	ClientID string
}

// Event is the JSON payload published for every button press.
type Event struct {
	ID   int       `json:"id"`
	Name string    `json:"name"`
	Pin  uint8     `json:"pin"`
	Time time.Time `json:"time"`
}

// Publisher forwards button presses to an MQTT broker under <topic>/button,
// and keeps <topic>/status at online/offline.
type Publisher struct {
	client  mqtt.Client
	topic   string
	timeout time.Duration
	now     func() time.Time
}

func New(client mqtt.Client, topic string) *Publisher {
	return &Publisher{
		client:  client,
		topic:   topic,
		timeout: defaultTimeout,
		now:     time.Now,
	}
}

func Connect(cfg Config) (*Publisher, error) {
	log.Infof("Connecting to mqtt broker %s", cfg.Broker)
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetAutoReconnect(true)
	opts.SetWill(statusTopic(cfg.Topic), "offline", 1, true)

	client := mqtt.NewClient(opts)
	p := New(client, cfg.Topic)
	if err := p.wait(client.Connect()); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Broker, err)
	}
	if err := p.send(statusTopic(cfg.Topic), true, []byte("online")); err != nil {
		log.Warn("Unable to publish availability: ", err)
	}
	return p, nil
}

func statusTopic(topic string) string {
	return fmt.Sprintf("%s/status", topic)
}

func (p *Publisher) ButtonTopic() string {
	return fmt.Sprintf("%s/button", p.topic)
}

func (p *Publisher) wait(token mqtt.Token) error {
	if !token.WaitTimeout(p.timeout) {
		return ErrTimeout
	}
	return token.Error()
}

func (p *Publisher) send(topic string, retained bool, payload []byte) error {
	return p.wait(p.client.Publish(topic, 1, retained, payload))
}

func (p *Publisher) Publish(d button.Descriptor) error {
	payload, err := json.Marshal(Event{
		ID:   int(d.ID),
		Name: d.Name,
		Pin:  d.Pin,
		Time: p.now(),
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return p.send(p.ButtonTopic(), false, payload)
}

func (p *Publisher) Close() error {
	err := p.send(statusTopic(p.topic), true, []byte("offline"))
	p.client.Disconnect(disconnectWait)
	return err
}
