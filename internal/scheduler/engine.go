// Package scheduler fires task reminders at their trigger time. Pending
// reminders sit in a min-heap keyed on trigger time; a single goroutine
// sleeps until the earliest one is due and emits it on a buffered
// channel. Emission never blocks: if the consumer lags, the reminder is
// dropped and counted.
package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrStopped            = errors.New("scheduler: engine stopped")
)

// Reminder is one due notification for a task.
type Reminder struct {
	TaskID    string
	Text      string
	TriggerAt time.Time
}

type reminderQueue []Reminder

func (q reminderQueue) Len() int { return len(q) }

func (q reminderQueue) Less(i, j int) bool {
	return q[i].TriggerAt.Before(q[j].TriggerAt)
}

func (q reminderQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *reminderQueue) Push(x any) {
	*q = append(*q, x.(Reminder))
}

func (q *reminderQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

type Engine struct {
	mu       sync.Mutex
	queue    reminderQueue
	canceled map[string]bool
	out      chan Reminder
	wakeup   chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}
	started  bool
	stopped  bool
	dropped  uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:    make(reminderQueue, 0),
		canceled: make(map[string]bool),
		out:      make(chan Reminder, bufferSize),
		wakeup:   make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// C is the stream of due reminders. Closed on Stop.
func (e *Engine) C() <-chan Reminder {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Schedule queues a reminder. Re-scheduling a task clears any earlier
// cancellation for it.
func (e *Engine) Schedule(r Reminder) error {
	if r.TriggerAt.IsZero() {
		return ErrInvalidTriggerTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}

	delete(e.canceled, r.TaskID)
	heap.Push(&e.queue, r)
	e.signalWakeup()
	return nil
}

// Cancel suppresses any queued reminder for the task. The entry stays in
// the heap and is discarded when it surfaces.
func (e *Engine) Cancel(taskID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.canceled[taskID] = true
}

// Dropped counts reminders discarded because the consumer was not
// keeping up.
func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.TriggerAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popDue(time.Now().UTC())
			for _, r := range due {
				select {
				case e.out <- r:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (Reminder, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return Reminder{}, false
	}
	return e.queue[0], true
}

func (e *Engine) popDue(now time.Time) []Reminder {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Reminder, 0)
	for len(e.queue) > 0 {
		next := e.queue[0]
		if next.TriggerAt.After(now) {
			break
		}
		r := heap.Pop(&e.queue).(Reminder)
		if e.canceled[r.TaskID] {
			delete(e.canceled, r.TaskID)
			continue
		}
		out = append(out, r)
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
