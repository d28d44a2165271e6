package audit

import (
	"context"
	"log"
	"sync"
	"time"
)

type Event struct {
	GymCenterID uint
	UserID      *uint
	Action      string
	Entity      string
	EntityID    *uint
	Metadata    any
	OccurredAt  time.Time
}

// Sink receives audit events from the dispatcher worker.
type Sink interface {
	Record(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	sinks []Sink
	queue chan Event
	done  chan struct{}
	once  sync.Once
}

func NewDispatcher(sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		sinks: sinks,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		for _, s := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.Record(ctx, ev); err != nil {
				log.Printf("audit: %s %s: %v", ev.Action, ev.Entity, err)
			}
			cancel()
		}
	}
}

// Dispatch enqueues ev without blocking. A full queue drops the event; audit
// must never fail a request.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	select {
	case d.queue <- ev:
	default:
		log.Println("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for queued ones to be recorded.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() {
		close(d.queue)
	})
	<-d.done
}
