package dashboard

// QueueCapacity bounds how many actions can wait between two frames.
// Pushes beyond the cap are dropped so a burst of input can never stall
// the render loop.
const QueueCapacity = 32

// actionQueue is a bounded FIFO of pending actions. It is only touched
// from the program's update loop, so it needs no locking.
type actionQueue struct {
	items []Action
}

func newActionQueue() *actionQueue {
	return &actionQueue{items: make([]Action, 0, QueueCapacity)}
}

// Push enqueues an action. It never blocks; when the queue is full the
// action is silently dropped and Push reports false.
func (q *actionQueue) Push(a Action) bool {
	if len(q.items) >= QueueCapacity {
		return false
	}
	q.items = append(q.items, a)
	return true
}

// Drain returns all queued actions in arrival order and empties the queue.
func (q *actionQueue) Drain() []Action {
	if len(q.items) == 0 {
		return nil
	}
	drained := q.items
	q.items = make([]Action, 0, QueueCapacity)
	return drained
}

// Len reports how many actions are waiting.
func (q *actionQueue) Len() int {
	return len(q.items)
}
