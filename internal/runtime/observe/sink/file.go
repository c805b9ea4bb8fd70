package sink

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/bytedance/sonic"
)

const (
	// FileName is the name of the JSON lines file sink.
	FileName = "file"
	// DefaultFile is used when Options.File is empty.
	DefaultFile = "winloop-events.jsonl"
)

// PollInterval is how often a FileSubscriber looks for new lines at end of
// file.
var PollInterval = 50 * time.Millisecond

// ErrClosed is returned when using a closed file publisher or subscriber.
var ErrClosed = errors.New("sink: closed")

var codec = sonic.ConfigStd

// record is one line of the file.
type record struct {
	UUID     string            `json:"uuid"`
	Topic    string            `json:"topic"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Payload  []byte            `json:"payload"`
}

// BuildFile creates a sink appending messages to opts.File, one JSON object
// per line.
func BuildFile(_ context.Context, opts Options, logger watermill.LoggerAdapter) (Sink, error) {
	path := opts.File
	if path == "" {
		path = DefaultFile
	}
	return Sink{
		Publisher:  NewFilePublisher(path, logger),
		Subscriber: NewFileSubscriber(path, logger),
	}, nil
}

// FilePublisher appends messages to a file.
type FilePublisher struct {
	path   string
	logger watermill.LoggerAdapter

	mu     sync.Mutex
	closed bool
}

// NewFilePublisher creates a publisher appending to path.
func NewFilePublisher(path string, logger watermill.LoggerAdapter) *FilePublisher {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return &FilePublisher{path: path, logger: logger}
}

// Publish appends messages to the file. Messages in one call are written
// with a single write.
func (p *FilePublisher) Publish(topic string, messages ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}

	var buf []byte
	for _, msg := range messages {
		line, err := codec.Marshal(record{
			UUID:     msg.UUID,
			Topic:    topic,
			Metadata: msg.Metadata,
			Payload:  msg.Payload,
		})
		if err != nil {
			return err
		}
		buf = append(buf, line...)
		buf = append(buf, '\n')
	}

	f, err := os.OpenFile(p.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.Write(buf); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Close marks the publisher closed.
func (p *FilePublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// FileSubscriber tails a file written by a FilePublisher. Each subscription
// reads from the start of the file and waits for an ack or nack before
// delivering the next message.
type FileSubscriber struct {
	path   string
	logger watermill.LoggerAdapter

	closing   chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewFileSubscriber creates a subscriber reading path.
func NewFileSubscriber(path string, logger watermill.LoggerAdapter) *FileSubscriber {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return &FileSubscriber{path: path, logger: logger, closing: make(chan struct{})}
}

// Subscribe streams messages published on topic. The channel is closed when
// ctx is done or the subscriber is closed.
func (s *FileSubscriber) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	select {
	case <-s.closing:
		return nil, ErrClosed
	default:
	}

	f, err := os.OpenFile(s.path, os.O_RDONLY|os.O_CREATE, 0o600)
	if err != nil {
		return nil, err
	}

	out := make(chan *message.Message)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(out)
		defer f.Close()
		s.tail(ctx, f, topic, out)
	}()
	return out, nil
}

func (s *FileSubscriber) tail(ctx context.Context, f *os.File, topic string, out chan<- *message.Message) {
	logger := s.logger.With(watermill.LogFields{"file": s.path, "topic": topic})
	reader := bufio.NewReader(f)
	var partial []byte

	for {
		chunk, err := reader.ReadBytes('\n')
		partial = append(partial, chunk...)

		switch {
		case err == nil:
			line := partial
			partial = nil
			if !s.deliver(ctx, line, topic, out, logger) {
				return
			}
			continue
		case !errors.Is(err, io.EOF):
			logger.Error("Failed to read sink file", err, nil)
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-s.closing:
			return
		case <-time.After(PollInterval):
		}
	}
}

func (s *FileSubscriber) deliver(ctx context.Context, line []byte, topic string, out chan<- *message.Message, logger watermill.LoggerAdapter) bool {
	var rec record
	if err := codec.Unmarshal(line, &rec); err != nil {
		logger.Error("Skipping malformed sink line", err, nil)
		return true
	}
	if rec.Topic != topic {
		return true
	}

	msg := message.NewMessage(rec.UUID, rec.Payload)
	for k, v := range rec.Metadata {
		msg.Metadata.Set(k, v)
	}

	select {
	case out <- msg:
	case <-ctx.Done():
		return false
	case <-s.closing:
		return false
	}

	select {
	case <-msg.Acked():
	case <-msg.Nacked():
		logger.Debug("Message nacked", watermill.LogFields{"uuid": msg.UUID})
	case <-ctx.Done():
		return false
	case <-s.closing:
		return false
	}
	return true
}

// Close stops every subscription and waits for them to finish.
func (s *FileSubscriber) Close() error {
	s.closeOnce.Do(func() { close(s.closing) })
	s.wg.Wait()
	return nil
}
