package sink

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// ChannelName is the name of the in-memory sink.
const ChannelName = "channel"

// ChannelBuffer is the per-subscriber buffer of the in-memory sink.
const ChannelBuffer = 64

// BuildChannel creates an in-memory Go channel pub/sub. Messages published
// while nobody subscribes are dropped.
func BuildChannel(_ context.Context, _ Options, logger watermill.LoggerAdapter) (Sink, error) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: ChannelBuffer,
	}, logger)
	return Sink{Publisher: pubSub, Subscriber: pubSub}, nil
}
