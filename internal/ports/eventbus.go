// Package ports define the EventBus interface for event-driven communication.
package ports

import (
	"github.com/tejashwikalptaru/gospin/internal/domain"
)

// EventBus publishes controller events to observers (window title, logging, tests).
//
// Example usage:
//
//	subID := bus.Subscribe(domain.EventTrackLoaded, func(event domain.Event) {
//	    e := event.(domain.TrackLoadedEvent)
//	    window.SetTitle(e.Track.Name)
//	})
//	defer bus.Unsubscribe(subID)
//
// Thread-safety: Implementations must be thread-safe.
type EventBus interface {
	// Publish delivers event to all subscribers of its type, then to wildcard subscribers.
	Publish(event domain.Event)

	// Subscribe registers a handler for events of the specified type.
	Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID

	// Unsubscribe removes a subscription. Unknown ids are ignored.
	Unsubscribe(id domain.SubscriptionID)

	// SubscribeAll registers a handler that receives all events regardless of type.
	SubscribeAll(handler domain.EventHandler) domain.SubscriptionID

	// HasSubscribers returns true if any subscription would receive events of the given type.
	HasSubscribers(eventType domain.EventType) bool

	// Close drops all subscriptions. Publishing after Close is a no-op.
	Close() error
}

// EventFilter decides whether an event is delivered to a filtered subscriber.
type EventFilter func(event domain.Event) bool

// FilteringEventBus extends EventBus with filtered subscriptions.
type FilteringEventBus interface {
	EventBus

	// SubscribeFiltered registers a handler that only sees events passing filter.
	//
	//	bus.SubscribeFiltered(domain.EventTrackCompleted, func(e domain.Event) bool {
	//	    return e.(domain.TrackCompletedEvent).Looping
	//	}, countLoops)
	SubscribeFiltered(eventType domain.EventType, filter EventFilter, handler domain.EventHandler) domain.SubscriptionID
}
