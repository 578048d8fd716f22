package events_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	"github.com/gleamnails/GN-BookingService/internal/events"
)

type recordingSink struct {
	mu      sync.Mutex
	name    string
	handled []events.Event
	err     error
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Handle(_ context.Context, e events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.handled = append(s.handled, e)
	return nil
}

func (s *recordingSink) events() []events.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]events.Event, len(s.handled))
	copy(out, s.handled)
	return out
}

type captureLogger struct {
	mu    sync.Mutex
	warns int
}

func (l *captureLogger) Info(string, ...interface{}) {}

func (l *captureLogger) Warn(string, ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns++
}

func (l *captureLogger) Error(string, ...interface{}) {}

func (l *captureLogger) warnCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.warns
}

func event(t events.Type) events.Event {
	return events.Event{
		Type:       t,
		Booking:    &domain.Booking{ID: "bk-1", BookingCode: "GN-20260901001"},
		OccurredAt: time.Now(),
	}
}

func TestDispatcher_DeliversToAllSinks(t *testing.T) {
	mail := &recordingSink{name: "mail"}
	sheet := &recordingSink{name: "sheet"}
	d := events.NewDispatcher(8, []events.Sink{mail, sheet}, &captureLogger{}, nil)

	d.Run(context.Background())
	d.Emit(event(events.TypeBookingCreated))
	d.Emit(event(events.TypeBookingConfirmed))
	d.Stop()

	require.Len(t, mail.events(), 2)
	require.Len(t, sheet.events(), 2)
	assert.Equal(t, events.TypeBookingCreated, mail.events()[0].Type)
	assert.Equal(t, events.TypeBookingConfirmed, mail.events()[1].Type)
}

func TestDispatcher_SinkErrorDoesNotStopOthers(t *testing.T) {
	broken := &recordingSink{name: "mail", err: errors.New("provider down")}
	sheet := &recordingSink{name: "sheet"}
	d := events.NewDispatcher(8, []events.Sink{broken, sheet}, &captureLogger{}, nil)

	d.Run(context.Background())
	d.Emit(event(events.TypeBookingCancelled))
	d.Stop()

	assert.Empty(t, broken.events())
	require.Len(t, sheet.events(), 1)
}

func TestDispatcher_DropsWhenBufferFull(t *testing.T) {
	sink := &recordingSink{name: "mail"}
	log := &captureLogger{}
	// The worker is not running, so the buffer is the only capacity.
	d := events.NewDispatcher(1, []events.Sink{sink}, log, nil)

	d.Emit(event(events.TypeBookingCreated))
	d.Emit(event(events.TypeBookingConfirmed))
	assert.Equal(t, 1, log.warnCount())

	d.Run(context.Background())
	d.Stop()
	require.Len(t, sink.events(), 1, "the overflow event is gone")
	assert.Equal(t, events.TypeBookingCreated, sink.events()[0].Type)
}

func TestDispatcher_EmitAfterStopIsSafe(t *testing.T) {
	sink := &recordingSink{name: "mail"}
	log := &captureLogger{}
	d := events.NewDispatcher(8, []events.Sink{sink}, log, nil)

	d.Run(context.Background())
	d.Stop()

	d.Emit(event(events.TypeBookingCreated))
	assert.Equal(t, 1, log.warnCount())
	assert.Empty(t, sink.events())
}

func TestDispatcher_StopDrainsQueue(t *testing.T) {
	sink := &recordingSink{name: "sheet"}
	d := events.NewDispatcher(16, []events.Sink{sink}, &captureLogger{}, nil)

	for i := 0; i < 10; i++ {
		d.Emit(event(events.TypePaymentUpdated))
	}
	d.Run(context.Background())
	d.Stop()

	assert.Len(t, sink.events(), 10)
}
