package core

import "time"

const (
	defaultQueueCap     = 16
	compactMinCap       = 64 // Don't compact if capacity is less than this
	compactShrinkFactor = 4  // Trigger compaction when len < cap/4
)

// pendingQueue holds tasks in insertion order. It is not safe for concurrent
// use on its own; the owning pool's mutex guards every call.
//
// Selection is a linear scan for the first task whose start time has arrived.
// Tasks that are simultaneously eligible are therefore claimed in FIFO order,
// and a task scheduled far in the future keeps occupying its slot (and
// counting toward capacity) until it becomes eligible or is canceled.
type pendingQueue struct {
	tasks []*task
}

func newPendingQueue() pendingQueue {
	return pendingQueue{tasks: make([]*task, 0, defaultQueueCap)}
}

func (q *pendingQueue) push(t *task) {
	q.tasks = append(q.tasks, t)
}

// takeEligible removes and returns the first task eligible at now. When no
// task is eligible it returns the wait until the nearest future start time
// (0 if the queue holds nothing at all).
func (q *pendingQueue) takeEligible(now time.Time) (*task, time.Duration) {
	wait := time.Duration(0)
	for i, t := range q.tasks {
		if t.eligible(now) {
			q.removeAt(i)
			return t, 0
		}
		if d := t.startAt.Sub(now); wait == 0 || d < wait {
			wait = d
		}
	}
	return nil, wait
}

// removeByID drops the pending task with the given id, reporting whether a
// removal happened. Tasks already claimed by a worker are not affected. The
// dropped task's result cell is settled so waiters are released.
func (q *pendingQueue) removeByID(id TaskID) bool {
	for i, t := range q.tasks {
		if t.id == id {
			q.removeAt(i)
			if t.discard != nil {
				t.discard()
			}
			return true
		}
	}
	return false
}

func (q *pendingQueue) removeAt(i int) {
	copy(q.tasks[i:], q.tasks[i+1:])
	// Zero out the vacated slot to prevent memory leak
	q.tasks[len(q.tasks)-1] = nil
	q.tasks = q.tasks[:len(q.tasks)-1]
	q.maybeCompact()
}

// clear discards every pending task, returning how many were dropped. Each
// dropped task's result cell is settled so waiters are released.
func (q *pendingQueue) clear() int {
	n := len(q.tasks)
	for _, t := range q.tasks {
		if t.discard != nil {
			t.discard()
		}
	}
	// Create a new slice to release all task references
	q.tasks = make([]*task, 0, defaultQueueCap)
	return n
}

func (q *pendingQueue) names() []string {
	out := make([]string, len(q.tasks))
	for i, t := range q.tasks {
		out[i] = t.name
	}
	return out
}

func (q *pendingQueue) contains(id TaskID) bool {
	for _, t := range q.tasks {
		if t.id == id {
			return true
		}
	}
	return false
}

func (q *pendingQueue) len() int {
	return len(q.tasks)
}

func (q *pendingQueue) maybeCompact() {
	n := len(q.tasks)
	c := cap(q.tasks)

	if c < compactMinCap {
		return
	}
	if n == 0 {
		q.tasks = make([]*task, 0, defaultQueueCap)
		return
	}
	if n*compactShrinkFactor >= c {
		return
	}

	newCap := max(max(c/2, defaultQueueCap), n)

	newSlice := make([]*task, n, newCap)
	copy(newSlice, q.tasks)
	q.tasks = newSlice
}
