package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"kalkyle/platform/logger"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func TestPublishSync_DispatchesToSubscribedHandlers(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	var calls int
	bus.Subscribe("thing.happened", HandlerFunc(func(_ context.Context, _ Event) error {
		calls++
		return nil
	}))
	bus.Subscribe("thing.happened", HandlerFunc(func(_ context.Context, _ Event) error {
		calls++
		return nil
	}))
	bus.Subscribe("other.happened", HandlerFunc(func(_ context.Context, _ Event) error {
		t.Fatal("handler for other event should not run")
		return nil
	}))

	if err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "thing.happened"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 handler calls, got %d", calls)
	}
}

func TestPublishSync_ReturnsFirstHandlerError(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))
	boom := errors.New("boom")

	bus.Subscribe("thing.happened", HandlerFunc(func(_ context.Context, _ Event) error {
		return boom
	}))

	err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "thing.happened"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped handler error, got %v", err)
	}
}

func TestPublish_SurvivesCancelledRequestContext(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	var wg sync.WaitGroup
	wg.Add(1)
	var handlerCtxErr error
	bus.Subscribe("thing.happened", HandlerFunc(func(ctx context.Context, _ Event) error {
		handlerCtxErr = ctx.Err()
		wg.Done()
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, testEvent{NewBaseEvent(), "thing.happened"})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not run")
	}

	if handlerCtxErr != nil {
		t.Fatalf("expected handler context to be detached from cancellation, got %v", handlerCtxErr)
	}
}
