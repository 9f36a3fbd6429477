// Package clock provides a scheduler driven by explicit time advances.
//
// Nothing here reads the wall clock: hosts call Advance with each frame's
// elapsed time and tests call it with simulated durations, so timer
// callbacks fire deterministically on the caller's goroutine.
package clock

import (
	"container/heap"
	"time"
)

// Task is a scheduled callback. Cancel stops future runs.
type Task struct {
	due       time.Duration
	period    time.Duration // 0 for one-shot tasks
	seq       uint64
	fn        func()
	cancelled bool
	index     int
}

// Cancel prevents the task from running again. Safe to call from inside
// the task's own callback.
func (t *Task) Cancel() {
	t.cancelled = true
}

// Scheduler runs callbacks at simulated times.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	queue taskQueue
}

// NewScheduler creates a scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the elapsed simulated time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Every runs fn every period, first at Now()+period.
// Panics if period is not positive.
func (s *Scheduler) Every(period time.Duration, fn func()) *Task {
	if period <= 0 {
		panic("clock: Every called with non-positive period")
	}
	return s.schedule(period, period, fn)
}

// After runs fn once, delay from now. A non-positive delay fires on the next Advance.
func (s *Scheduler) After(delay time.Duration, fn func()) *Task {
	if delay < 0 {
		delay = 0
	}
	return s.schedule(delay, 0, fn)
}

// Advance moves time forward by d, running every callback that falls due
// in time order. Ties run in scheduling order. Callbacks scheduled from
// inside a callback also run if they fall due within the advance.
// Returns the number of callbacks run.
func (s *Scheduler) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	target := s.now + d
	fired := 0

	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.due > target {
			break
		}
		heap.Pop(&s.queue)
		if next.cancelled {
			continue
		}

		s.now = next.due
		next.fn()
		fired++

		if next.period > 0 && !next.cancelled {
			next.due += next.period
			s.seq++
			next.seq = s.seq
			heap.Push(&s.queue, next)
		}
	}

	s.now = target
	return fired
}

// Pending returns the number of live scheduled tasks.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.queue {
		if !t.cancelled {
			n++
		}
	}
	return n
}

func (s *Scheduler) schedule(delay, period time.Duration, fn func()) *Task {
	s.seq++
	t := &Task{
		due:    s.now + delay,
		period: period,
		seq:    s.seq,
		fn:     fn,
	}
	heap.Push(&s.queue, t)
	return t
}

// taskQueue is a min-heap ordered by due time then sequence.
type taskQueue []*Task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*Task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
