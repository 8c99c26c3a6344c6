// Package bridge carries tag-activation notifications from rendered units
// to the controller that owns them, without either side holding a
// reference to the other. Delivery is queued: Emit returns before any
// subscriber runs, and the host drains the queue between inputs.
//
// Every event is scoped by an editor-instance ID and subscribers only see
// their own instance's events, so mounting several editors in one process
// cannot cross-route a click.
package bridge

import (
	"sync"

	"github.com/walteh/tagedit/pkg/token"
)

// Event is one tag activation.
type Event struct {
	EditorID string
	Kind     token.Kind
	Label    string
}

// Bridge is a broadcast channel with per-instance scoping. The zero
// value is not usable; call New.
type Bridge struct {
	mu    sync.Mutex
	subs  map[string][]func(Event)
	queue []Event
}

func New() *Bridge {
	return &Bridge{subs: make(map[string][]func(Event))}
}

// defaultBridge is the process-wide channel most hosts use.
var defaultBridge = New()

// Default returns the process-wide bridge.
func Default() *Bridge {
	return defaultBridge
}

// Subscribe registers fn for events scoped to editorID and returns an
// unsubscribe func. One controller per live editor subscribes.
func (b *Bridge) Subscribe(editorID string, fn func(Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subs[editorID] = append(b.subs[editorID], fn)
	idx := len(b.subs[editorID]) - 1

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[editorID]
		if idx < len(subs) {
			subs[idx] = nil
		}
	}
}

// Emit queues ev and returns immediately. No subscriber runs until the
// next Drain, which is the suspension point that keeps click handling
// decoupled from buffer mutation.
func (b *Bridge) Emit(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue = append(b.queue, ev)
}

// Drain delivers every queued event to the subscribers of its instance,
// in emission order. Events queued while draining are delivered in the
// same call.
func (b *Bridge) Drain() {
	for {
		b.mu.Lock()
		if len(b.queue) == 0 {
			b.mu.Unlock()
			return
		}
		ev := b.queue[0]
		b.queue = b.queue[1:]
		subs := make([]func(Event), len(b.subs[ev.EditorID]))
		copy(subs, b.subs[ev.EditorID])
		b.mu.Unlock()

		for _, fn := range subs {
			if fn != nil {
				fn(ev)
			}
		}
	}
}

// Pending reports the number of undelivered events.
func (b *Bridge) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}
