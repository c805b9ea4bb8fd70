// Package sink builds the Watermill publisher/subscriber pairs a Tap
// publishes on. Sinks are looked up by name in a Registry.
package sink

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// ErrUnknownSink is returned by Build for names nothing was registered under.
var ErrUnknownSink = errors.New("sink: unknown sink")

// Sink pairs a publisher with a subscriber reading what it published.
type Sink struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber
}

// Close closes both sides. Sinks sharing one pub/sub for both sides are
// closed once.
func (s Sink) Close() error {
	var errs []error
	if s.Publisher != nil {
		errs = append(errs, s.Publisher.Close())
	}
	if s.Subscriber != nil && any(s.Subscriber) != any(s.Publisher) {
		errs = append(errs, s.Subscriber.Close())
	}
	return errors.Join(errs...)
}

// Options selects and parameterises a sink.
type Options struct {
	// Name is the registered sink name, e.g. "channel" or "file".
	Name string
	// File is the path used by the file sink.
	File string
}

// Builder creates a sink from options.
type Builder func(ctx context.Context, opts Options, logger watermill.LoggerAdapter) (Sink, error)

// Registry maps sink names to builders.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// DefaultRegistry knows the channel and file sinks.
var DefaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(ChannelName, BuildChannel)
	r.Register(FileName, BuildFile)
	return r
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

// Register adds or replaces the builder for name.
func (r *Registry) Register(name string, builder Builder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[name] = builder
}

// Build creates the sink named by opts.Name.
func (r *Registry) Build(ctx context.Context, opts Options, logger watermill.LoggerAdapter) (Sink, error) {
	r.mu.RLock()
	builder, ok := r.builders[opts.Name]
	r.mu.RUnlock()

	if !ok {
		return Sink{}, fmt.Errorf("%w: %q (registered: %v)", ErrUnknownSink, opts.Name, r.Names())
	}
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return builder(ctx, opts, logger)
}

// Names returns the registered sink names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Has reports whether a sink is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.builders[name]
	return ok
}

// Build creates a sink using the default registry.
func Build(ctx context.Context, opts Options, logger watermill.LoggerAdapter) (Sink, error) {
	return DefaultRegistry.Build(ctx, opts, logger)
}
