package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	oldState := map[string]any{
		"prefix":      "FAC",
		"next_number": 4,
		"separator":   "-",
	}
	newState := map[string]any{
		"prefix":        "INV",
		"next_number":   4,
		"custom_format": "{prefix}{year}-{number}",
	}

	changes := Diff(oldState, newState)

	require.Contains(t, changes, "prefix")
	assert.Equal(t, map[string]any{"old": "FAC", "new": "INV"}, changes["prefix"])

	require.Contains(t, changes, "custom_format")
	assert.Equal(t, map[string]any{"old": nil, "new": "{prefix}{year}-{number}"}, changes["custom_format"])

	require.Contains(t, changes, "separator")
	assert.Equal(t, map[string]any{"old": "-", "new": nil}, changes["separator"])

	assert.NotContains(t, changes, "next_number")
}

func TestDiff_NoChanges(t *testing.T) {
	state := map[string]any{"padding": 3, "include_year": true}
	assert.Empty(t, Diff(state, state))
}

func TestDiff_NumericRepresentations(t *testing.T) {
	// JSON round-trips turn ints into float64; values that print the same
	// are not reported as changes.
	changes := Diff(map[string]any{"counter": 7}, map[string]any{"counter": float64(7)})
	assert.Empty(t, changes)
}
