package events

// Handler receives flushed events in emission order.
type Handler func(Event)

// Emitter is the producer side of the bus.
type Emitter interface {
	Emit(Event)
}

// DefaultRetain is the number of flushed events kept for Drain.
const DefaultRetain = 4096

// Bus queues events during a tick and hands them out afterwards.
//
// Emit only appends. Flush delivers everything pending to subscribers, then
// keeps it for Drain. Events emitted by a handler during Flush are delivered
// by the next Flush. When nobody drains, the oldest retained events are
// overwritten once Retain is reached.
type Bus struct {
	pending  []Event
	flushed  []Event
	handlers []Handler
	retain   int
	dropped  int
}

// NewBus creates a bus that retains up to retain flushed events.
// retain <= 0 uses DefaultRetain.
func NewBus(retain int) *Bus {
	if retain <= 0 {
		retain = DefaultRetain
	}
	return &Bus{retain: retain}
}

// Subscribe registers h for every future flush.
func (b *Bus) Subscribe(h Handler) {
	b.handlers = append(b.handlers, h)
}

// Emit queues e for the next flush.
func (b *Bus) Emit(e Event) {
	b.pending = append(b.pending, e)
}

// Pending returns the number of queued, unflushed events.
func (b *Bus) Pending() int {
	return len(b.pending)
}

// Flush delivers queued events to subscribers and moves them to the drain buffer.
func (b *Bus) Flush() {
	if len(b.pending) == 0 {
		return
	}
	batch := b.pending
	b.pending = nil

	for _, e := range batch {
		for _, h := range b.handlers {
			h(e)
		}
	}

	b.flushed = append(b.flushed, batch...)
	if over := len(b.flushed) - b.retain; over > 0 {
		b.dropped += over
		b.flushed = append(b.flushed[:0], b.flushed[over:]...)
	}
}

// Drain returns every flushed event since the last Drain and clears the buffer.
func (b *Bus) Drain() []Event {
	out := b.flushed
	b.flushed = nil
	return out
}

// Dropped returns how many flushed events were discarded before being drained.
func (b *Bus) Dropped() int {
	return b.dropped
}
