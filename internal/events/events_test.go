package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishJSON(t *testing.T) {
	bus := NewEventBus()

	var received []string
	bus.Subscribe(EventRentalCreated, func(event *Event) error {
		var payload RentalEventPayload
		require.NoError(t, json.Unmarshal(event.Payload, &payload))
		received = append(received, payload.CarName)
		return nil
	})

	err := bus.PublishJSON(EventRentalCreated, RentalEventPayload{RentalID: 1, CarName: "Camry"})
	require.NoError(t, err)
	// Чужой тип события не доставляется
	err = bus.PublishJSON(EventRentalDeleted, RentalEventPayload{RentalID: 2, CarName: "Rio"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Camry"}, received)
}

func TestEventBus_MultipleSubscribers(t *testing.T) {
	bus := NewEventBus()

	calls := 0
	handler := func(event *Event) error {
		calls++
		return nil
	}
	bus.Subscribe(EventReviewCreated, handler)
	bus.Subscribe(EventReviewCreated, handler)

	require.NoError(t, bus.PublishJSON(EventReviewCreated, ReviewEventPayload{ReviewID: 1}))
	assert.Equal(t, 2, calls)
}

func TestEventBus_NilSafe(t *testing.T) {
	var bus *EventBus
	assert.NoError(t, bus.PublishJSON(EventRentalCreated, nil))
}
