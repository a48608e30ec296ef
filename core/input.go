package core

import (
	"sync"
	"time"
)

// Input is anything that can be queued for the simulation goroutine.
type Input interface {
	input()
}

// PointerSample is a raw pointer position. A zero T is stamped on arrival.
type PointerSample struct {
	X, Y float64
	T    time.Time
}

// PointerLift ends a stroke: the trail is cleared and the next sample starts fresh.
type PointerLift struct{}

// Resize carries new viewport dimensions.
type Resize struct {
	Width, Height int
}

// SliceAck is the answer to a slice notification, fed back in so it is
// applied on the simulation goroutine.
type SliceAck struct {
	Notification SliceNotification
	Ack          Ack
	Err          error
}

func (PointerSample) input() {}
func (PointerLift) input()   {}
func (Resize) input()        {}
func (SliceAck) input()      {}
func (SpawnCommand) input()  {}

// InputQueue is a fixed-size FIFO ring. It is safe for concurrent producers
// and a single consumer.
type InputQueue struct {
	mu    sync.Mutex
	data  []Input
	head  int
	tail  int
	count int
}

func NewInputQueue(capacity int) *InputQueue {
	if capacity < 1 {
		capacity = 1
	}
	return &InputQueue{data: make([]Input, capacity)}
}

// Push stages an input, returning false if the queue is full.
func (q *InputQueue) Push(in Input) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.count == len(q.data) {
		return false
	}
	q.data[q.tail] = in
	q.tail = (q.tail + 1) % len(q.data)
	q.count++
	return true
}

// Drain returns all staged inputs in FIFO order and empties the queue.
func (q *InputQueue) Drain() []Input {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.count == 0 {
		return nil
	}
	out := make([]Input, q.count)
	for i := 0; i < q.count; i++ {
		idx := (q.head + i) % len(q.data)
		out[i] = q.data[idx]
		q.data[idx] = nil
	}
	q.head = 0
	q.tail = 0
	q.count = 0
	return out
}

func (q *InputQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

func (q *InputQueue) Capacity() int {
	return len(q.data)
}
