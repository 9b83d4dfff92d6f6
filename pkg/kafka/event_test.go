package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	event, err := NewEvent("storefront.order.created", "42", "order", "storefront", map[string]any{"total": 115000})

	require.NoError(t, err)
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "storefront.order.created", event.EventType)
	assert.Equal(t, "42", event.AggregateID)
	assert.Equal(t, "order", event.AggregateType)
	assert.Equal(t, 1, event.Version)
	assert.False(t, event.Timestamp.IsZero())

	var data map[string]any
	require.NoError(t, json.Unmarshal(event.Data, &data))
	assert.EqualValues(t, 115000, data["total"])
}

func TestEvent_MarshalRoundTrip(t *testing.T) {
	event, err := NewEvent("storefront.user.registered", "7", "user", "storefront", nil)
	require.NoError(t, err)
	event.WithCorrelationID("corr-1")

	raw, err := event.Marshal()
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, "corr-1", decoded.CorrelationID)
}
