// Package automation delivers workflow events to downstream automation handlers.
package automation

import (
	"context"
	"sync"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/logger"
	"fieldservice/internal/usecase/interfaces"
)

// DefaultBufferSize is the event queue length used when none is configured.
const DefaultBufferSize = 100

// Handler processes one automation event. Errors are logged and never
// reach the caller that emitted the event.
type Handler func(context.Context, entities.AutomationEvent) error

// Bus is an in-process, buffered automation sink.
//
// Emit never blocks: when the queue is full the event is dropped with a
// warning. Handlers run on their own goroutine once Start is called.
type Bus struct {
	events chan entities.AutomationEvent

	mu       sync.RWMutex
	handlers map[entities.AutomationEventType][]Handler
	any      []Handler

	wg sync.WaitGroup
}

var _ interfaces.IAutomationSink = (*Bus)(nil)

func NewBus(bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Bus{
		events:   make(chan entities.AutomationEvent, bufferSize),
		handlers: make(map[entities.AutomationEventType][]Handler),
	}
}

// Subscribe registers a handler for one event type.
func (b *Bus) Subscribe(eventType entities.AutomationEventType, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], h)
	logger.Debugf("[automation][bus] handler registered type=%s", eventType)
}

// SubscribeAll registers a handler that receives every event.
func (b *Bus) SubscribeAll(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.any = append(b.any, h)
}

func (b *Bus) Emit(_ context.Context, event entities.AutomationEvent) {
	select {
	case b.events <- event:
		logger.Debugf("[automation][bus] queued type=%s entity=%s/%s", event.Type, event.EntityType, event.EntityID)
	default:
		logger.Warnf("[automation][bus] queue full, dropping type=%s entity=%s/%s", event.Type, event.EntityType, event.EntityID)
	}
}

// Start runs the dispatch loop until ctx is cancelled.
func (b *Bus) Start(ctx context.Context) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.loop(ctx)
	}()
	logger.Infof("[automation][bus] started buffer=%d", cap(b.events))
}

// Wait blocks until the dispatch loop and every running handler have returned.
func (b *Bus) Wait() {
	b.wg.Wait()
}

func (b *Bus) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			logger.Infof("[automation][bus] stopped pending=%d", len(b.events))
			return
		case event := <-b.events:
			b.dispatch(ctx, event)
		}
	}
}

func (b *Bus) dispatch(ctx context.Context, event entities.AutomationEvent) {
	b.mu.RLock()
	hs := make([]Handler, 0, len(b.handlers[event.Type])+len(b.any))
	hs = append(hs, b.handlers[event.Type]...)
	hs = append(hs, b.any...)
	b.mu.RUnlock()

	for _, h := range hs {
		b.wg.Add(1)
		go func(h Handler) {
			defer b.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					logger.Errorf("[automation][bus] handler panic type=%s entity_id=%s panic=%v", event.Type, event.EntityID, r)
				}
			}()
			if err := h(ctx, event); err != nil {
				logger.Errorf("[automation][bus] handler failed type=%s entity_id=%s err=%v", event.Type, event.EntityID, err)
			}
		}(h)
	}
}
