package winloop

import (
	runtimepkg "github.com/drblury/winloop/internal/runtime"
	backendpkg "github.com/drblury/winloop/internal/runtime/backend"
	"github.com/drblury/winloop/internal/runtime/backend/headless"
	configpkg "github.com/drblury/winloop/internal/runtime/config"
	errspkg "github.com/drblury/winloop/internal/runtime/errors"
	eventspkg "github.com/drblury/winloop/internal/runtime/events"
	idspkg "github.com/drblury/winloop/internal/runtime/ids"
	inputpkg "github.com/drblury/winloop/internal/runtime/input"
	loggingpkg "github.com/drblury/winloop/internal/runtime/logging"
	observepkg "github.com/drblury/winloop/internal/runtime/observe"
	sinkpkg "github.com/drblury/winloop/internal/runtime/observe/sink"
	windowpkg "github.com/drblury/winloop/internal/runtime/window"
)

type (
	Config        = configpkg.Config
	EventLoop     = runtimepkg.EventLoop
	Dependencies  = runtimepkg.Dependencies
	Handler       = runtimepkg.Handler
	WindowContext = runtimepkg.WindowContext
	LoopPhase     = runtimepkg.Phase
	LoopMetrics   = runtimepkg.LoopMetrics
	LoopHooks     = runtimepkg.LoopHooks
	TickContext   = runtimepkg.TickContext
	Middleware    = runtimepkg.Middleware

	Event         = eventspkg.Event
	Sender        = eventspkg.Sender
	Receiver      = eventspkg.Receiver
	Poller        = eventspkg.Poller
	Started       = eventspkg.Started
	EventsCleared = eventspkg.EventsCleared
	Exited        = eventspkg.Exited
	Quit          = eventspkg.Quit

	WindowID              = windowpkg.ID
	PlatformID            = windowpkg.PlatformID
	WindowHandle          = windowpkg.Handle
	WindowRegistry        = windowpkg.Registry
	WindowSettings        = windowpkg.Settings
	WindowSize            = windowpkg.Size
	WindowPhase           = windowpkg.Phase
	FullscreenMode        = windowpkg.FullscreenMode
	WindowRequest         = windowpkg.Request
	WindowReady           = windowpkg.Ready
	WindowResized         = windowpkg.Resized
	WindowRedrawRequested = windowpkg.RedrawRequested
	WindowClosed          = windowpkg.Closed
	WindowInput           = windowpkg.InputEvent

	Input            = inputpkg.Input
	Keyboard         = inputpkg.Keyboard
	MouseMove        = inputpkg.MouseMove
	RawMouseMove     = inputpkg.RawMouseMove
	MouseButtonInput = inputpkg.MouseButtonInput
	MouseScroll      = inputpkg.MouseScroll
	KeyCode          = inputpkg.KeyCode
	MouseButton      = inputpkg.MouseButton
	ButtonState      = inputpkg.ButtonState

	Backend          = backendpkg.Backend
	BackendCallbacks = backendpkg.Callbacks
	Materialized     = backendpkg.Materialized
	NativeEvent      = backendpkg.NativeEvent
	HeadlessBackend  = headless.Backend
	HeadlessOptions  = headless.Options

	Tap            = observepkg.Tap
	Envelope       = observepkg.Envelope
	Sink           = sinkpkg.Sink
	SinkOptions    = sinkpkg.Options
	SinkBuilder    = sinkpkg.Builder
	SinkRegistry   = sinkpkg.Registry
	FilePublisher  = sinkpkg.FilePublisher
	FileSubscriber = sinkpkg.FileSubscriber

	LogFields = loggingpkg.LogFields
	Logger    = loggingpkg.Logger

	WindowCreationError   = errspkg.WindowCreationError
	WindowErrorKind       = errspkg.WindowErrorKind
	ConfigValidationError = errspkg.ConfigValidationError
)

const (
	FullscreenNone       = windowpkg.FullscreenNone
	FullscreenBorderless = windowpkg.FullscreenBorderless

	KindOs          = errspkg.KindOs
	KindUnsupported = errspkg.KindUnsupported

	SinkChannel     = sinkpkg.ChannelName
	SinkFile        = sinkpkg.FileName
	SinkDefaultFile = sinkpkg.DefaultFile
)

var (
	NewEventLoop   = runtimepkg.NewEventLoop
	NewLoopMetrics = runtimepkg.NewLoopMetrics

	Chain               = runtimepkg.Chain
	LoggingHooks        = runtimepkg.LoggingHooks
	SlowTickHooks       = runtimepkg.SlowTickHooks
	LogEventsMiddleware = runtimepkg.LogEventsMiddleware
	FilterMiddleware    = runtimepkg.FilterMiddleware
	RecovererMiddleware = runtimepkg.RecovererMiddleware

	DefaultConfig  = configpkg.Default
	LoadConfig     = configpkg.Load
	ParseConfig    = configpkg.Parse
	ValidateConfig = configpkg.ValidateConfig

	NewChannel  = eventspkg.NewChannel
	NewPoller   = eventspkg.NewPoller
	TypeName    = eventspkg.TypeName
	Describe    = eventspkg.Describe
	NewRegistry = windowpkg.NewRegistry

	DefaultWindowSettings = windowpkg.DefaultSettings
	NewWindowID           = windowpkg.NewID
	ParseWindowID         = windowpkg.ParseID

	NewHeadlessBackend = headless.New
	ErrTickLimit       = headless.ErrTickLimit

	NewTap          = observepkg.NewTap
	NewInProcessTap = observepkg.NewInProcessTap
	EncodeEvent     = observepkg.Encode
	DecodeEvent     = observepkg.Decode

	NewSinkRegistry     = sinkpkg.NewRegistry
	DefaultSinkRegistry = sinkpkg.DefaultRegistry
	BuildSink           = sinkpkg.Build
	NewFilePublisher    = sinkpkg.NewFilePublisher
	NewFileSubscriber   = sinkpkg.NewFileSubscriber

	NewSlogLogger       = loggingpkg.NewSlogLogger
	NewWatermillLogger  = loggingpkg.NewWatermillLogger
	NewNopLogger        = loggingpkg.NewNopLogger
	NewWatermillAdapter = loggingpkg.NewWatermillAdapter

	NewOsError          = errspkg.NewOsError
	NewUnsupportedError = errspkg.NewUnsupportedError

	CreateULID = idspkg.CreateULID

	ErrReceiverDropped      = errspkg.ErrReceiverDropped
	ErrEventRequired        = errspkg.ErrEventRequired
	ErrHandlerRequired      = errspkg.ErrHandlerRequired
	ErrBackendRequired      = errspkg.ErrBackendRequired
	ErrConfigRequired       = errspkg.ErrConfigRequired
	ErrLoggerRequired       = errspkg.ErrLoggerRequired
	ErrLoopAlreadyRun       = errspkg.ErrLoopAlreadyRun
	ErrHandleReleased       = errspkg.ErrHandleReleased
	ErrWindowClosed         = errspkg.ErrWindowClosed
	ErrUnsupportedRequest   = errspkg.ErrUnsupportedRequest
	ErrWindowCreationFailed = errspkg.ErrWindowCreationFailed
	ErrPublisherRequired    = observepkg.ErrPublisherRequired
	ErrTopicRequired        = observepkg.ErrTopicRequired
	ErrUnknownSink          = sinkpkg.ErrUnknownSink
	ErrSinkClosed           = sinkpkg.ErrClosed
)

// Loop phases.
const (
	LoopCreated = runtimepkg.PhaseCreated
	LoopStarted = runtimepkg.PhaseStarted
	LoopRunning = runtimepkg.PhaseRunning
	LoopExited  = runtimepkg.PhaseExited
)

// As recovers the concrete value of ev.
func As[T any](ev Event) (T, bool) {
	return eventspkg.As[T](ev)
}

// Is reports whether ev holds a T.
func Is[T any](ev Event) bool {
	return eventspkg.Is[T](ev)
}
