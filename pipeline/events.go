package pipeline

import (
	"time"
)

// EventType represents the type of run event.
type EventType string

const (
	EventParseCompleted   EventType = "parse_completed"
	EventStageStarted     EventType = "stage_started"
	EventStageCompleted   EventType = "stage_completed"
	EventAnalyzeCompleted EventType = "analyze_completed"
	EventRunFailed        EventType = "run_failed"
)

// Event represents an observable run event with typed data.
type Event struct {
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data"`
}

// EventEmitter manages event listeners and dispatches events. Runs are
// single-threaded, so the emitter is not safe for concurrent registration.
type EventEmitter struct {
	listeners []func(Event)
}

// NewEventEmitter creates a new EventEmitter.
func NewEventEmitter() *EventEmitter {
	return &EventEmitter{
		listeners: make([]func(Event), 0),
	}
}

// On registers a listener function to receive events.
func (e *EventEmitter) On(listener func(Event)) {
	e.listeners = append(e.listeners, listener)
}

// Emit dispatches an event to all registered listeners in registration order.
// A nil emitter drops the event.
func (e *EventEmitter) Emit(event Event) {
	if e == nil {
		return
	}
	for _, listener := range e.listeners {
		listener(event)
	}
}

// ListenerCount returns the number of registered listeners.
func (e *EventEmitter) ListenerCount() int {
	return len(e.listeners)
}

// ParseCompletedEvent creates a parse_completed event.
func ParseCompletedEvent(states, symbols, rules int, duration time.Duration) Event {
	return Event{
		Type:      EventParseCompleted,
		Timestamp: time.Now(),
		Data: map[string]any{
			"states":      states,
			"symbols":     symbols,
			"rules":       rules,
			"duration_ms": duration.Milliseconds(),
		},
	}
}

// StageStartedEvent creates a stage_started event.
func StageStartedEvent(name string, index int) Event {
	return Event{
		Type:      EventStageStarted,
		Timestamp: time.Now(),
		Data: map[string]any{
			"name":  name,
			"index": index,
		},
	}
}

// StageCompletedEvent creates a stage_completed event.
func StageCompletedEvent(name string, index, states, rules int, duration time.Duration) Event {
	return Event{
		Type:      EventStageCompleted,
		Timestamp: time.Now(),
		Data: map[string]any{
			"name":        name,
			"index":       index,
			"states":      states,
			"rules":       rules,
			"duration_ms": duration.Milliseconds(),
		},
	}
}

// AnalyzeCompletedEvent creates an analyze_completed event.
func AnalyzeCompletedEvent(input string, accepted bool) Event {
	return Event{
		Type:      EventAnalyzeCompleted,
		Timestamp: time.Now(),
		Data: map[string]any{
			"input":    input,
			"accepted": accepted,
		},
	}
}

// RunFailedEvent creates a run_failed event.
func RunFailedEvent(err string, duration time.Duration) Event {
	return Event{
		Type:      EventRunFailed,
		Timestamp: time.Now(),
		Data: map[string]any{
			"error":       err,
			"duration_ms": duration.Milliseconds(),
		},
	}
}
