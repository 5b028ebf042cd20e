// Package notifier delivers one-way events from the capture pipeline to
// whatever UI is listening. The pipeline never blocks on a slow
// listener and never reads anything back.
package notifier

import (
	"log"

	"MarketTracker/internal/model"
)

// EventType discriminates pipeline events.
type EventType string

const (
	EventStatus       EventType = "status"
	EventError        EventType = "error"
	EventCaptureCount EventType = "capture_count"
	EventReading      EventType = "reading"
)

// Event is a single pipeline notification.
type Event struct {
	Type    EventType
	Message string
	Count   int
	Reading *model.PriceReading
}

// Notifier receives pipeline events.
type Notifier interface {
	Status(msg string)
	Error(msg string)
	CaptureCount(n int)
	ReadingCaptured(r *model.PriceReading)
}

// ChannelNotifier forwards events over a buffered channel. When the
// buffer is full the event is dropped rather than stalling the capture
// loop; the UI only ever needs the latest state.
type ChannelNotifier struct {
	ch chan Event
}

// NewChannelNotifier creates a notifier with the given buffer size.
func NewChannelNotifier(buffer int) *ChannelNotifier {
	if buffer <= 0 {
		buffer = 64
	}
	return &ChannelNotifier{ch: make(chan Event, buffer)}
}

// Events returns the receive side for a UI consumer.
func (c *ChannelNotifier) Events() <-chan Event { return c.ch }

func (c *ChannelNotifier) Status(msg string)  { c.send(Event{Type: EventStatus, Message: msg}) }
func (c *ChannelNotifier) Error(msg string)   { c.send(Event{Type: EventError, Message: msg}) }
func (c *ChannelNotifier) CaptureCount(n int) { c.send(Event{Type: EventCaptureCount, Count: n}) }

func (c *ChannelNotifier) ReadingCaptured(r *model.PriceReading) {
	c.send(Event{Type: EventReading, Reading: r})
}

func (c *ChannelNotifier) send(e Event) {
	select {
	case c.ch <- e:
	default:
	}
}

// LogNotifier writes events to the process log; the default sink when
// no UI is attached.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (l *LogNotifier) Status(msg string)  { log.Printf("[INFO] %s", msg) }
func (l *LogNotifier) Error(msg string)   { log.Printf("[ERROR] %s", msg) }
func (l *LogNotifier) CaptureCount(n int) { log.Printf("[INFO] captures this session: %d", n) }

func (l *LogNotifier) ReadingCaptured(r *model.PriceReading) {
	log.Printf("[INFO] %s", FormatReading(r))
}

// Tee fans one event stream out to several notifiers.
type Tee []Notifier

func (t Tee) Status(msg string) {
	for _, n := range t {
		n.Status(msg)
	}
}

func (t Tee) Error(msg string) {
	for _, n := range t {
		n.Error(msg)
	}
}

func (t Tee) CaptureCount(count int) {
	for _, n := range t {
		n.CaptureCount(count)
	}
}

func (t Tee) ReadingCaptured(r *model.PriceReading) {
	for _, n := range t {
		n.ReadingCaptured(r)
	}
}
