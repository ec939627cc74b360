package mcp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateArguments(t *testing.T) {
	getTicket := ToolByName("get_ticket")
	listSections := ToolByName("list_kb_sections")
	require.NotNil(t, getTicket)
	require.NotNil(t, listSections)

	t.Run("required present", func(t *testing.T) {
		assert.NoError(t, ValidateArguments(getTicket, map[string]any{"ticket_id": float64(42)}))
	})

	t.Run("required absent", func(t *testing.T) {
		err := ValidateArguments(getTicket, map[string]any{"other": 1})
		require.Error(t, err)
		var verr *ValidationError
		assert.True(t, errors.As(err, &verr))
		assert.Contains(t, err.Error(), "ticket_id")
	})

	t.Run("empty args with required fields", func(t *testing.T) {
		err := ValidateArguments(getTicket, nil)
		require.Error(t, err)
		assert.Equal(t, "Missing arguments", err.Error())
	})

	t.Run("empty args without required fields", func(t *testing.T) {
		assert.NoError(t, ValidateArguments(listSections, nil))
		assert.NoError(t, ValidateArguments(listSections, map[string]any{}))
	})

	t.Run("wrong type", func(t *testing.T) {
		err := ValidateArguments(getTicket, map[string]any{"ticket_id": "not-a-number"})
		require.Error(t, err)
		var verr *ValidationError
		assert.True(t, errors.As(err, &verr))
	})

	t.Run("extra properties allowed", func(t *testing.T) {
		assert.NoError(t, ValidateArguments(getTicket, map[string]any{
			"ticket_id": float64(1),
			"extra":     "ignored",
		}))
	})

	t.Run("optional argument with wrong type", func(t *testing.T) {
		search := ToolByName("search_kb_articles")
		require.NotNil(t, search)
		err := ValidateArguments(search, map[string]any{"query": "vpn", "limit": "ten"})
		require.Error(t, err)
	})
}
