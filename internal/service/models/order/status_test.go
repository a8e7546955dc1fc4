package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	allowed := map[Status][]Status{
		StatusPending:    {StatusProcessing, StatusCancelled},
		StatusProcessing: {StatusShipped, StatusCancelled},
		StatusShipped:    {StatusDelivered, StatusCancelled},
		StatusDelivered:  {StatusRefunded},
		StatusCancelled:  {},
		StatusRefunded:   {},
	}

	all := []Status{
		StatusPending,
		StatusProcessing,
		StatusShipped,
		StatusDelivered,
		StatusCancelled,
		StatusRefunded,
	}

	for from, targets := range allowed {
		allowedSet := make(map[Status]bool, len(targets))
		for _, to := range targets {
			allowedSet[to] = true
		}

		for _, to := range all {
			got := from.CanTransitionTo(to)
			assert.Equal(t, allowedSet[to], got, "%s -> %s", from, to)
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusRefunded.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusProcessing.IsTerminal())
	assert.False(t, StatusShipped.IsTerminal())
	assert.False(t, StatusDelivered.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "shipped", "delivered", "cancelled", "refunded"} {
		parsed, err := ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, parsed.String())
	}

	_, err := ParseStatus("returned")
	require.ErrorIs(t, err, ErrInvalidStatus)
}
