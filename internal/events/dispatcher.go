package events

import (
	"context"
	"sync"

	"github.com/gleamnails/GN-BookingService/pkg/metrics"
)

// Logger is the logging interface the dispatcher depends on.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sink consumes events. A sink error is logged and counted but never
// retried; sinks needing delivery guarantees must implement them internally.
type Sink interface {
	Name() string
	Handle(ctx context.Context, e Event) error
}

// Dispatcher fans events out to the registered sinks from a single worker
// goroutine. Emit never blocks the caller.
type Dispatcher struct {
	ch    chan Event
	sinks []Sink
	log   Logger
	m     *metrics.Metrics // optional

	stopOnce sync.Once
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewDispatcher creates a dispatcher with the given buffer size. Metrics may
// be nil when instrumentation is disabled.
func NewDispatcher(buffer int, sinks []Sink, log Logger, m *metrics.Metrics) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	return &Dispatcher{
		ch:    make(chan Event, buffer),
		sinks: sinks,
		log:   log,
		m:     m,
		done:  make(chan struct{}),
	}
}

// Run starts the worker goroutine. It returns immediately.
func (d *Dispatcher) Run(ctx context.Context) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for {
			select {
			case e, ok := <-d.ch:
				if !ok {
					return
				}
				d.deliver(ctx, e)
			case <-ctx.Done():
				d.drain()
				return
			}
		}
	}()
}

// Emit enqueues an event. When the buffer is full the event is dropped with
// a warning; side channels are lossy by contract.
func (d *Dispatcher) Emit(e Event) {
	select {
	case <-d.done:
		d.log.Warn("events: dispatcher stopped, dropping event type=%s", e.Type)
		return
	default:
	}
	select {
	case d.ch <- e:
	default:
		d.log.Warn("events: buffer full, dropping event type=%s", e.Type)
		if d.m != nil {
			d.m.EventsDispatchedTotal.WithLabelValues("dispatcher", "dropped").Inc()
		}
	}
}

// Stop closes the intake and waits for queued events to be delivered.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.done)
		close(d.ch)
	})
	d.wg.Wait()
}

func (d *Dispatcher) deliver(ctx context.Context, e Event) {
	for _, s := range d.sinks {
		if err := s.Handle(ctx, e); err != nil {
			d.log.Error("events: sink %s failed on type=%s: %v", s.Name(), e.Type, err)
			if d.m != nil {
				d.m.EventsDispatchedTotal.WithLabelValues(s.Name(), "error").Inc()
			}
			continue
		}
		if d.m != nil {
			d.m.EventsDispatchedTotal.WithLabelValues(s.Name(), "ok").Inc()
		}
	}
}

// drain delivers whatever is already buffered using a background context,
// then returns. Called when the run context is cancelled during shutdown.
func (d *Dispatcher) drain() {
	for {
		select {
		case e, ok := <-d.ch:
			if !ok {
				return
			}
			d.deliver(context.Background(), e)
		default:
			return
		}
	}
}
