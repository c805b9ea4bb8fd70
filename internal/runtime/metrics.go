package runtime

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// LoopMetrics tracks event loop and window lifecycle statistics. A nil
// *LoopMetrics is valid and records nothing.
type LoopMetrics struct {
	mu sync.Mutex

	ticksTotal      prometheus.Counter
	dispatchedTotal *prometheus.CounterVec
	createdTotal    prometheus.Counter
	closedTotal     prometheus.Counter
	windowsLive     prometheus.Gauge

	registerer prometheus.Registerer
	registered bool
}

// NewLoopMetrics creates the collectors under namespace. They are not
// registered until Register is called.
func NewLoopMetrics(namespace string, registerer prometheus.Registerer) *LoopMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &LoopMetrics{
		registerer: registerer,
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loop",
			Name:      "ticks_total",
			Help:      "Total number of event loop ticks",
		}),
		dispatchedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loop",
			Name:      "events_dispatched_total",
			Help:      "Total number of events dispatched to the handler, by event type",
		}, []string{"type"}),
		createdTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "windows",
			Name:      "created_total",
			Help:      "Total number of window creation requests handed to the backend",
		}),
		closedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "windows",
			Name:      "closed_total",
			Help:      "Total number of windows closed",
		}),
		windowsLive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "windows",
			Name:      "live",
			Help:      "Number of windows currently registered",
		}),
	}
}

// Register registers the Prometheus collectors. Safe to call multiple times.
func (m *LoopMetrics) Register() error {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.registered {
		return nil
	}

	collectors := []prometheus.Collector{
		m.ticksTotal,
		m.dispatchedTotal,
		m.createdTotal,
		m.closedTotal,
		m.windowsLive,
	}

	for _, c := range collectors {
		if err := m.registerer.Register(c); err != nil {
			// Check if it's already registered (not an error)
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}

	m.registered = true
	return nil
}

func (m *LoopMetrics) RecordTick() {
	if m == nil {
		return
	}
	m.ticksTotal.Inc()
}

func (m *LoopMetrics) RecordDispatch(eventType string) {
	if m == nil {
		return
	}
	m.dispatchedTotal.WithLabelValues(eventType).Inc()
}

func (m *LoopMetrics) RecordWindowCreated() {
	if m == nil {
		return
	}
	m.createdTotal.Inc()
}

func (m *LoopMetrics) RecordWindowClosed() {
	if m == nil {
		return
	}
	m.closedTotal.Inc()
}

func (m *LoopMetrics) SetLiveWindows(n int) {
	if m == nil {
		return
	}
	m.windowsLive.Set(float64(n))
}
