package event

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/waydemo/waydemo/ticker"
)

const MaxQueued = 65535

// Filter reports whether an event should be kept.
type Filter func(userdata interface{}, ev Event) bool

// Watcher is called synchronously for every pushed event, before it is
// queued.
type Watcher struct {
	Callback Filter
	Userdata interface{}
}

type Entry struct {
	ev   Event
	prev *Entry
	next *Entry
}

// Queue is a FIFO of events. Removed entries are kept on a free list and
// reused, so a steady stream of events does not allocate.
type Queue struct {
	lock  sync.Mutex
	clock *ticker.Ticker

	count int
	head  *Entry
	tail  *Entry
	free  *Entry

	watchers []*Watcher
	wmu      sync.Mutex
}

// NewQueue creates an empty queue stamping events with clock. A nil clock
// starts a new one.
func NewQueue(clock *ticker.Ticker) *Queue {
	if clock == nil {
		clock = ticker.New()
	}
	return &Queue{clock: clock}
}

func (q *Queue) add(ev Event) error {
	if q.count >= MaxQueued {
		return errors.New("event queue is full")
	}

	var entry *Entry
	if q.free == nil {
		entry = &Entry{}
	} else {
		entry = q.free
		q.free = q.free.next
	}
	entry.ev = ev

	if q.tail != nil {
		q.tail.next = entry
		entry.prev = q.tail
		q.tail = entry
		entry.next = nil
	} else {
		if q.head != nil {
			panic("invalid queue state, tail exists without head")
		}
		q.head = entry
		q.tail = entry
		entry.prev = nil
		entry.next = nil
	}

	q.count++
	return nil
}

func (q *Queue) cut(entry *Entry) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	}
	if entry.next != nil {
		entry.next.prev = entry.prev
	}
	if entry == q.head {
		if entry.prev != nil {
			panic("invalid event queue state, queue head is not beginning")
		}
		q.head = entry.next
	}
	if entry == q.tail {
		if entry.next != nil {
			panic("invalid event queue state, queue tail is not the end")
		}
		q.tail = entry.prev
	}
	entry.prev = nil
	entry.next = q.free
	q.free = entry
	q.count--
}

// Push stamps ev with the current clock, shows it to every watcher and
// appends it to the queue.
func (q *Queue) Push(ev Event) error {
	ev.Timestamp = q.clock.GetAsMS()

	q.wmu.Lock()
	watchers := q.watchers
	q.wmu.Unlock()
	for _, w := range watchers {
		w.Callback(w.Userdata, ev)
	}

	q.lock.Lock()
	defer q.lock.Unlock()
	return errors.Wrapf(q.add(ev), "unable to add %s event", ev.Kind)
}

// Poll removes and returns the oldest event. The second result is false when
// the queue is empty.
func (q *Queue) Poll() (Event, bool) {
	q.lock.Lock()
	defer q.lock.Unlock()
	if q.head == nil {
		return Event{}, false
	}
	ev := q.head.ev
	q.cut(q.head)
	return ev, true
}

// Len is the number of queued events.
func (q *Queue) Len() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return q.count
}

// HasKind reports whether an event of the given kind is queued.
func (q *Queue) HasKind(kind Kind) bool {
	q.lock.Lock()
	defer q.lock.Unlock()
	for entry := q.head; entry != nil; entry = entry.next {
		if entry.ev.Kind == kind {
			return true
		}
	}
	return false
}

// Filter drops every queued event for which f returns false.
func (q *Queue) Filter(f Filter, userdata interface{}) {
	q.lock.Lock()
	defer q.lock.Unlock()
	for entry := q.head; entry != nil; {
		next := entry.next
		if !f(userdata, entry.ev) {
			q.cut(entry)
		}
		entry = next
	}
}

func (q *Queue) AddWatch(watcher *Watcher) {
	q.wmu.Lock()
	defer q.wmu.Unlock()
	q.watchers = append(q.watchers, watcher)
}

func (q *Queue) DelWatch(watcher *Watcher) {
	q.wmu.Lock()
	defer q.wmu.Unlock()
	// a fresh slice: Push may be iterating the old one
	updatedWatchers := make([]*Watcher, 0, len(q.watchers))
	for _, w := range q.watchers {
		if w != watcher {
			updatedWatchers = append(updatedWatchers, w)
		}
	}
	q.watchers = updatedWatchers
}
