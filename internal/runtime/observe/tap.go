// Package observe mirrors dispatched events onto a Watermill topic so tools
// outside the loop can watch the event stream without touching the loop
// itself.
package observe

import (
	"context"
	"errors"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/bytedance/sonic"

	"github.com/drblury/winloop/internal/runtime/events"
	"github.com/drblury/winloop/internal/runtime/ids"
	"github.com/drblury/winloop/internal/runtime/logging"
	"github.com/drblury/winloop/internal/runtime/observe/sink"
)

// MetadataEventType is the message metadata key holding the event's type
// name.
const MetadataEventType = "event_type"

var (
	ErrPublisherRequired = errors.New("observe: publisher is required")
	ErrTopicRequired     = errors.New("observe: topic is required")
)

var codec = sonic.ConfigStd

// Envelope is the JSON payload of a tapped event. Value is omitted when the
// event cannot be encoded as JSON; Text always carries its printed form.
type Envelope struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Value any    `json:"value,omitempty"`
}

// Encode renders ev as an Envelope payload.
func Encode(ev events.Event) ([]byte, error) {
	env := Envelope{Type: events.TypeName(ev), Text: events.Describe(ev), Value: ev}
	payload, err := codec.Marshal(env)
	if err == nil {
		return payload, nil
	}
	env.Value = nil
	return codec.Marshal(env)
}

// Decode parses a tapped message. Value decodes into generic JSON values.
func Decode(msg *message.Message) (Envelope, error) {
	var env Envelope
	err := codec.Unmarshal(msg.Payload, &env)
	return env, err
}

// Tap publishes events on a single topic.
type Tap struct {
	publisher message.Publisher
	topic     string
	logger    logging.Logger
}

// NewTap creates a Tap publishing on topic.
func NewTap(publisher message.Publisher, topic string, logger logging.Logger) (*Tap, error) {
	if publisher == nil {
		return nil, ErrPublisherRequired
	}
	if topic == "" {
		return nil, ErrTopicRequired
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Tap{publisher: publisher, topic: topic, logger: logger}, nil
}

// NewInProcessTap creates a Tap backed by an in-memory Go channel pub/sub.
// The returned subscriber receives every published event; messages must be
// acknowledged.
func NewInProcessTap(topic string, logger logging.Logger) (*Tap, message.Subscriber, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s, err := sink.BuildChannel(context.Background(), sink.Options{}, logging.NewWatermillAdapter(logger))
	if err != nil {
		return nil, nil, err
	}

	tap, err := NewTap(s.Publisher, topic, logger)
	if err != nil {
		_ = s.Close()
		return nil, nil, err
	}
	return tap, s.Subscriber, nil
}

// Topic returns the topic events are published on.
func (t *Tap) Topic() string { return t.topic }

// Publish sends ev to the topic.
func (t *Tap) Publish(ev events.Event) error {
	payload, err := Encode(ev)
	if err != nil {
		return err
	}

	msg := message.NewMessage(ids.CreateULID(), payload)
	msg.Metadata.Set(MetadataEventType, events.TypeName(ev))

	if err := t.publisher.Publish(t.topic, msg); err != nil {
		t.logger.Error("Failed to publish tapped event", err, logging.LogFields{
			"topic":      t.topic,
			"event_type": events.TypeName(ev),
		})
		return err
	}
	return nil
}

// Close closes the underlying publisher.
func (t *Tap) Close() error {
	return t.publisher.Close()
}
