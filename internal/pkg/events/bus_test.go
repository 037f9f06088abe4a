package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/truelife/learningapp/internal/pkg/events"
)

type testEvent struct{ kind events.Kind }

func (e testEvent) Kind() events.Kind { return e.kind }

func TestPublishRunsHandlersInRegistrationOrder(t *testing.T) {
	bus := events.NewBus(zerolog.Nop())

	var order []string
	bus.Subscribe("thing.happened", func(ctx context.Context, e events.Event) error {
		order = append(order, "first")
		return nil
	})
	bus.Subscribe("thing.happened", func(ctx context.Context, e events.Event) error {
		order = append(order, "second")
		return nil
	})

	bus.Publish(context.Background(), testEvent{kind: "thing.happened"})
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestPublishSwallowsHandlerErrors(t *testing.T) {
	bus := events.NewBus(zerolog.Nop())

	var secondRan bool
	bus.Subscribe("thing.happened", func(ctx context.Context, e events.Event) error {
		return errors.New("mail server down")
	})
	bus.Subscribe("thing.happened", func(ctx context.Context, e events.Event) error {
		secondRan = true
		return nil
	})

	// A failing handler never propagates and never blocks later handlers
	bus.Publish(context.Background(), testEvent{kind: "thing.happened"})
	assert.True(t, secondRan)
}

func TestPublishUnknownKindIsNoOp(t *testing.T) {
	bus := events.NewBus(zerolog.Nop())
	bus.Publish(context.Background(), testEvent{kind: "nobody.listens"})
}

func TestHandlersOnlyReceiveTheirKind(t *testing.T) {
	bus := events.NewBus(zerolog.Nop())

	var calls int
	bus.Subscribe("kind.a", func(ctx context.Context, e events.Event) error {
		calls++
		return nil
	})

	bus.Publish(context.Background(), testEvent{kind: "kind.b"})
	bus.Publish(context.Background(), testEvent{kind: "kind.a"})
	assert.Equal(t, 1, calls)
}
