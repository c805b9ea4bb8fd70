package sink

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	assert.Equal(t, []string{ChannelName, FileName}, DefaultRegistry.Names())
	assert.True(t, DefaultRegistry.Has("channel"))
	assert.False(t, DefaultRegistry.Has("kafka"))
}

func TestRegistry_BuildUnknown(t *testing.T) {
	_, err := NewRegistry().Build(context.Background(), Options{Name: "kafka"}, nil)
	assert.ErrorIs(t, err, ErrUnknownSink)
	assert.Contains(t, err.Error(), `"kafka"`)
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	reg := NewRegistry()
	calls := 0
	reg.Register("custom", func(context.Context, Options, watermill.LoggerAdapter) (Sink, error) {
		calls++
		return BuildChannel(context.Background(), Options{}, watermill.NopLogger{})
	})

	s, err := reg.Build(context.Background(), Options{Name: "custom"}, nil)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, 1, calls)
	assert.True(t, reg.Has("custom"))
}

func TestChannelSink(t *testing.T) {
	s, err := Build(context.Background(), Options{Name: ChannelName}, watermill.NopLogger{})
	require.NoError(t, err)

	msgs, err := s.Subscriber.Subscribe(context.Background(), "events")
	require.NoError(t, err)
	require.NoError(t, s.Publisher.Publish("events", message.NewMessage("1", []byte("a"))))

	select {
	case msg := <-msgs:
		assert.Equal(t, "1", msg.UUID)
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
	assert.NoError(t, s.Close())
}

func TestFileSink_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	s, err := Build(context.Background(), Options{Name: FileName, File: path}, watermill.NopLogger{})
	require.NoError(t, err)
	defer s.Close()

	first := message.NewMessage("1", []byte(`{"n":1}`))
	first.Metadata.Set("event_type", "a")
	require.NoError(t, s.Publisher.Publish("events", first, message.NewMessage("2", []byte(`{"n":2}`))))
	require.NoError(t, s.Publisher.Publish("other", message.NewMessage("x", nil)))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	msgs, err := s.Subscriber.Subscribe(ctx, "events")
	require.NoError(t, err)

	var got []*message.Message
	for len(got) < 2 {
		select {
		case msg := <-msgs:
			got = append(got, msg)
			msg.Ack()
		case <-ctx.Done():
			t.Fatal("timeout waiting for messages")
		}
	}

	assert.Equal(t, "1", got[0].UUID)
	assert.Equal(t, "a", got[0].Metadata.Get("event_type"))
	assert.JSONEq(t, `{"n":1}`, string(got[0].Payload))
	assert.Equal(t, "2", got[1].UUID)
}

func TestFileSubscriber_SeesLaterWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	pub := NewFilePublisher(path, nil)
	sub := NewFileSubscriber(path, nil)
	defer sub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	msgs, err := sub.Subscribe(ctx, "events")
	require.NoError(t, err)

	require.NoError(t, pub.Publish("events", message.NewMessage("late", []byte("x"))))

	select {
	case msg := <-msgs:
		assert.Equal(t, "late", msg.UUID)
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("timeout waiting for message")
	}
}

func TestFileSink_Closed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	pub := NewFilePublisher(path, nil)
	sub := NewFileSubscriber(path, nil)

	msgs, err := sub.Subscribe(context.Background(), "events")
	require.NoError(t, err)

	require.NoError(t, pub.Close())
	assert.ErrorIs(t, pub.Publish("events", message.NewMessage("1", nil)), ErrClosed)

	require.NoError(t, sub.Close())
	_, open := <-msgs
	assert.False(t, open)

	_, err = sub.Subscribe(context.Background(), "events")
	assert.ErrorIs(t, err, ErrClosed)
}
