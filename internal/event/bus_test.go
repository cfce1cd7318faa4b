package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-bookstore/internal/model"
)

func TestInMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewBus()
	ch, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	bus.Publish(Event{Type: TypeLoginSucceeded, Auth: model.AuthEvent{Identifier: "a@x.com"}})

	got := <-ch
	assert.Equal(t, TypeLoginSucceeded, got.Type)
	assert.Equal(t, "a@x.com", got.Auth.Identifier)
	assert.NotEmpty(t, got.ID)
	assert.False(t, got.Timestamp.IsZero())
}

func TestInMemoryBus_DropsWhenFull(t *testing.T) {
	bus := NewBus()
	_, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	for i := 0; i < subscriberBuffer+5; i++ {
		bus.Publish(Event{Type: TypeTokenRejected})
	}

	assert.Equal(t, uint64(5), bus.Dropped())
}

func TestInMemoryBus_UnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus()
	ch, unsubscribe := bus.Subscribe()
	unsubscribe()

	_, ok := <-ch
	require.False(t, ok)

	// A second call is a no-op.
	unsubscribe()
	bus.Publish(Event{Type: TypeLoginRejected})
}
