package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/drblury/winloop/internal/runtime/window"
)

const (
	DefaultMetricsNamespace = "winloop"
	DefaultObserveTopic     = "winloop.events"
	DefaultObserveSink      = "channel"
)

var metricNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Config groups the settings required to initialise an EventLoop. Zero
// values are filled in by Default and by Parse.
type Config struct {
	// DefaultWindow is used by CreateWindow when it is given zero Settings.
	DefaultWindow window.Settings `yaml:"default_window"`

	// Metrics configuration.
	MetricsEnabled bool `yaml:"metrics_enabled"`
	// MetricsNamespace prefixes every exported metric name.
	MetricsNamespace string `yaml:"metrics_namespace"`

	// TracingEnabled wraps each tick in an OpenTelemetry span.
	TracingEnabled bool `yaml:"tracing_enabled"`

	// Observe configuration. When enabled every dispatched event is also
	// published on ObserveTopic. Unless the caller supplies a publisher,
	// the loop builds the sink named by ObserveSink ("channel" or "file").
	ObserveEnabled bool   `yaml:"observe_enabled"`
	ObserveTopic   string `yaml:"observe_topic"`
	ObserveSink    string `yaml:"observe_sink"`
	// ObserveFile is the path written by the file sink.
	ObserveFile string `yaml:"observe_file"`
}

// Default returns a configuration with every field set to its default.
func Default() *Config {
	return &Config{
		DefaultWindow:    window.DefaultSettings(),
		MetricsNamespace: DefaultMetricsNamespace,
		ObserveTopic:     DefaultObserveTopic,
		ObserveSink:      DefaultObserveSink,
	}
}

// Load reads a YAML configuration file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes YAML from r over the defaults and validates the result.
// Unknown keys are rejected. An empty document yields Default().
func Parse(r io.Reader) (*Config, error) {
	conf := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(conf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c Config) String() string {
	// Use a type alias to avoid infinite recursion when printing
	type configAlias Config
	return fmt.Sprintf("%+v", configAlias(c))
}

// Validate checks that the configuration can drive an EventLoop.
// Returns an error describing every invalid field.
func (c *Config) Validate() error {
	var errs []error

	errs = append(errs, c.validateWindow()...)
	errs = append(errs, c.validateMetrics()...)
	errs = append(errs, c.validateObserve()...)

	return errors.Join(errs...)
}

func (c *Config) validateWindow() []error {
	var errs []error
	size := c.DefaultWindow.Size
	if size.Width == 0 || size.Height == 0 {
		errs = append(errs, fmt.Errorf("window: default size %s must be non-zero", size))
	}
	if _, err := c.DefaultWindow.Fullscreen.MarshalText(); err != nil {
		errs = append(errs, err)
	}
	return errs
}

func (c *Config) validateMetrics() []error {
	if !c.MetricsEnabled {
		return nil
	}
	if !metricNamePattern.MatchString(c.MetricsNamespace) {
		return []error{fmt.Errorf("metrics: invalid namespace %q", c.MetricsNamespace)}
	}
	return nil
}

func (c *Config) validateObserve() []error {
	if !c.ObserveEnabled {
		return nil
	}
	var errs []error
	if c.ObserveTopic == "" {
		errs = append(errs, errors.New("observe: topic is required"))
	}
	if c.ObserveSink == "" {
		errs = append(errs, errors.New("observe: sink is required"))
	}
	return errs
}

// ValidateConfig is a convenience function to validate a config pointer.
// Returns nil if the config is valid.
func ValidateConfig(c *Config) error {
	if c == nil {
		return errors.New("config is nil")
	}
	return c.Validate()
}
