package stream

import "sync"

type Collection string

const (
	CollectionAccounts     Collection = "accounts"
	CollectionTransactions Collection = "transactions"
	CollectionBudgets      Collection = "budgets"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event tells a connected client that a document in one of its collections
// changed and it should refresh that collection.
type Event struct {
	Collection Collection `json:"collection"`
	Action     Action     `json:"action"`
	EntityID   string     `json:"entity_id"`
	UserID     string     `json:"-"`
}

type Publisher interface {
	Publish(event Event)
}

// NopPublisher is used where no change feed is wired, e.g. in tests.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}

// Hub fans change events out to per-user subscribers. Publishing never
// blocks: a subscriber that cannot keep up loses events and is expected to
// re-fetch on the next one it does receive.
type Hub struct {
	mu          sync.Mutex
	buffer      int
	closed      bool
	subscribers map[string]map[chan Event]struct{}
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		buffer:      buffer,
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

func (h *Hub) Publish(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}

	for ch := range h.subscribers[event.UserID] {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe registers a listener for one user's events. The returned
// function removes the subscription and closes the channel.
func (h *Hub) Subscribe(userID string) (<-chan Event, func()) {
	ch := make(chan Event, h.buffer)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(ch)
		return ch, func() {}
	}

	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[chan Event]struct{})
	}
	h.subscribers[userID][ch] = struct{}{}

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		if _, ok := h.subscribers[userID][ch]; !ok {
			return
		}
		delete(h.subscribers[userID], ch)
		if len(h.subscribers[userID]) == 0 {
			delete(h.subscribers, userID)
		}
		close(ch)
	}
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for _, subs := range h.subscribers {
		for ch := range subs {
			close(ch)
		}
	}
	h.subscribers = make(map[string]map[chan Event]struct{})
}
