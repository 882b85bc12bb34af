package algorithms

// Queue - singly linked FIFO work list.
//
// Operating on a nil queue, or popping/peeking an empty one, is a
// programming error and panics.
type Queue[T any] struct {
	head *queueNode[T]
	tail *queueNode[T]
	size int
}

type queueNode[T any] struct {
	data T
	next *queueNode[T]
}

// NewQueue - empty queue
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{}
}

func (q *Queue[T]) mustExist() {
	if q == nil {
		panic("algorithms: cannot work with nil queue")
	}
}

// Push - append to the tail
func (q *Queue[T]) Push(elem T) {
	q.mustExist()
	n := &queueNode[T]{data: elem}
	if q.head == nil {
		q.head, q.tail = n, n
	} else {
		q.tail.next = n
		q.tail = n
	}
	q.size++
}

// Pop - remove and return the head
func (q *Queue[T]) Pop() T {
	if q.IsEmpty() {
		panic("algorithms: can't pop element from queue: queue is empty")
	}
	n := q.head
	q.head = n.next
	if q.head == nil {
		q.tail = nil
	}
	q.size--
	return n.data
}

// First - the head without removing it
func (q *Queue[T]) First() T {
	if q.IsEmpty() {
		panic("algorithms: can't return element from queue: queue is empty")
	}
	return q.head.data
}

// IsEmpty - reports whether nothing is queued
func (q *Queue[T]) IsEmpty() bool {
	q.mustExist()
	return q.head == nil
}

// Len - number of queued elements
func (q *Queue[T]) Len() int {
	q.mustExist()
	return q.size
}

// Clear - drop every element
func (q *Queue[T]) Clear() {
	q.mustExist()
	q.head, q.tail = nil, nil
	q.size = 0
}
