// Package notify broadcasts short status messages to registered listeners.
package notify

// Listener receives published messages.
//
// Implementations must be comparable (typically a pointer) so the hub can
// tell whether a listener is already registered.
type Listener interface {
	Notify(message string)
}

// Hub delivers each published message to every listener in the order they
// subscribed. Delivery is synchronous. A Hub is not safe for concurrent use.
type Hub struct {
	listeners []Listener
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{}
}

// Subscribe registers a listener. Subscribing twice has no effect.
func (h *Hub) Subscribe(l Listener) {
	if h.indexOf(l) >= 0 {
		return
	}
	h.listeners = append(h.listeners, l)
}

// Unsubscribe removes a listener if it is registered
func (h *Hub) Unsubscribe(l Listener) {
	i := h.indexOf(l)
	if i < 0 {
		return
	}
	h.listeners = append(h.listeners[:i], h.listeners[i+1:]...)
}

// Publish sends message to all current listeners
func (h *Hub) Publish(message string) {
	// Copy so a listener unsubscribing itself does not shift the loop.
	listeners := make([]Listener, len(h.listeners))
	copy(listeners, h.listeners)
	for _, l := range listeners {
		l.Notify(message)
	}
}

// Len returns the number of registered listeners
func (h *Hub) Len() int {
	return len(h.listeners)
}

func (h *Hub) indexOf(l Listener) int {
	for i, existing := range h.listeners {
		if existing == l {
			return i
		}
	}
	return -1
}
