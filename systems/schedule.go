package systems

import "container/heap"

// Scheduler runs callbacks at a given simulation tick.
// Entries due on the same tick run in the order they were scheduled.
type Scheduler struct {
	queue entryHeap
	seq   uint64
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

type scheduledEntry struct {
	at  int64
	seq uint64
	fn  func(now int64)
}

// entryHeap implements heap.Interface ordered by (at, seq).
type entryHeap []*scheduledEntry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}
func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) {
	*h = append(*h, x.(*scheduledEntry))
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// At schedules fn to run on the first RunDue call with now >= tick.
func (s *Scheduler) At(tick int64, fn func(now int64)) {
	s.seq++
	heap.Push(&s.queue, &scheduledEntry{at: tick, seq: s.seq, fn: fn})
}

// RunDue runs every entry scheduled at or before now and returns how many ran.
// Entries scheduled by a callback for a tick <= now also run in this call.
func (s *Scheduler) RunDue(now int64) int {
	ran := 0
	for s.queue.Len() > 0 && s.queue[0].at <= now {
		e := heap.Pop(&s.queue).(*scheduledEntry)
		e.fn(now)
		ran++
	}
	return ran
}

// Len returns the number of pending entries.
func (s *Scheduler) Len() int {
	return s.queue.Len()
}

// Next returns the tick of the earliest pending entry.
func (s *Scheduler) Next() (int64, bool) {
	if s.queue.Len() == 0 {
		return 0, false
	}
	return s.queue[0].at, true
}
