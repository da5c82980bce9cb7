package event

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus() *Bus {
	logger := zerolog.Nop()
	return NewBus(&logger)
}

func TestBus_HandlersRunInRegistrationOrder(t *testing.T) {
	bus := newTestBus()

	var order []string
	bus.Subscribe(Notify, func(ctx context.Context, payload any) error {
		order = append(order, "first")
		return nil
	})
	bus.Subscribe(Notify, func(ctx context.Context, payload any) error {
		order = append(order, "second")
		return nil
	})
	bus.Subscribe(Notify, func(ctx context.Context, payload any) error {
		order = append(order, "third")
		return nil
	})

	err := bus.Emit(context.Background(), Notify, "payload")

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestBus_FailingHandlerDoesNotStopLaterHandlers(t *testing.T) {
	bus := newTestBus()
	boom := errors.New("boom")

	var secondRan bool
	bus.Subscribe(Notify, func(ctx context.Context, payload any) error {
		return boom
	})
	bus.Subscribe(Notify, func(ctx context.Context, payload any) error {
		secondRan = true
		return nil
	})

	err := bus.Emit(context.Background(), Notify, nil)

	assert.True(t, secondRan)
	assert.ErrorIs(t, err, boom)
}

func TestBus_HandlersScopedToEventType(t *testing.T) {
	bus := newTestBus()

	var notifyCalls, readCalls int
	bus.Subscribe(Notify, func(ctx context.Context, payload any) error {
		notifyCalls++
		return nil
	})
	bus.Subscribe(Read, func(ctx context.Context, payload any) error {
		readCalls++
		return nil
	})

	require.NoError(t, bus.Emit(context.Background(), Read, nil))

	assert.Zero(t, notifyCalls)
	assert.Equal(t, 1, readCalls)
}

func TestBus_EmitWithoutHandlersIsNoOp(t *testing.T) {
	bus := newTestBus()
	assert.NoError(t, bus.Emit(context.Background(), Notify, nil))
}

func TestBus_PayloadReachesHandler(t *testing.T) {
	bus := newTestBus()

	var got any
	bus.Subscribe(Notify, func(ctx context.Context, payload any) error {
		got = payload
		return nil
	})

	require.NoError(t, bus.Emit(context.Background(), Notify, 42))
	assert.Equal(t, 42, got)
}
