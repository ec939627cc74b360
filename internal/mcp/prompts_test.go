package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rpcCall(t *testing.T, s *Server, method string, params any) (json.RawMessage, *Error) {
	t.Helper()

	var raw json.RawMessage
	if params != nil {
		var err error
		raw, err = json.Marshal(params)
		require.NoError(t, err)
	}

	reqBytes, err := json.Marshal(Request{JSONRPC: "2.0", ID: 1, Method: method, Params: raw})
	require.NoError(t, err)

	respBytes, err := s.HandleMessage(context.Background(), reqBytes)
	require.NoError(t, err)

	var resp struct {
		Result json.RawMessage `json:"result"`
		Error  *Error          `json:"error"`
	}
	require.NoError(t, json.Unmarshal(respBytes, &resp))
	return resp.Result, resp.Error
}

func TestPromptsList(t *testing.T) {
	server, _ := newTestServer()

	raw, rpcErr := rpcCall(t, server, "prompts/list", nil)
	require.Nil(t, rpcErr)

	var result PromptsListResult
	require.NoError(t, json.Unmarshal(raw, &result))
	require.Len(t, result.Prompts, 2)

	names := []string{result.Prompts[0].Name, result.Prompts[1].Name}
	assert.Contains(t, names, "analyze-ticket")
	assert.Contains(t, names, "draft-ticket-response")

	for _, p := range result.Prompts {
		require.Len(t, p.Arguments, 1)
		assert.Equal(t, "ticket_id", p.Arguments[0].Name)
		assert.True(t, p.Arguments[0].Required)
	}
}

func TestPromptsGet(t *testing.T) {
	server, _ := newTestServer()

	raw, rpcErr := rpcCall(t, server, "prompts/get", GetPromptParams{
		Name:      "analyze-ticket",
		Arguments: map[string]string{"ticket_id": "42"},
	})
	require.Nil(t, rpcErr)

	var result GetPromptResult
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, "Analysis prompt for ticket #42", result.Description)

	require.Len(t, result.Messages, 1)
	assert.Equal(t, "user", result.Messages[0].Role)
	assert.Equal(t, "text", result.Messages[0].Content.Type)
	assert.Contains(t, result.Messages[0].Content.Text, "ticket #42")
	// Templates are trimmed before substitution into the message.
	assert.NotEqual(t, "\n", result.Messages[0].Content.Text[:1])
}

func TestPromptsGetDraftResponse(t *testing.T) {
	server, _ := newTestServer()

	raw, rpcErr := rpcCall(t, server, "prompts/get", GetPromptParams{
		Name:      "draft-ticket-response",
		Arguments: map[string]string{"ticket_id": "7"},
	})
	require.Nil(t, rpcErr)

	var result GetPromptResult
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, "Response draft prompt for ticket #7", result.Description)
	assert.Contains(t, result.Messages[0].Content.Text, "search_kb_articles")
}

func TestPromptsGetMissingTicketID(t *testing.T) {
	server, _ := newTestServer()

	tests := []GetPromptParams{
		{Name: "analyze-ticket"},
		{Name: "analyze-ticket", Arguments: map[string]string{}},
		{Name: "analyze-ticket", Arguments: map[string]string{"ticket_id": ""}},
	}

	for _, params := range tests {
		_, rpcErr := rpcCall(t, server, "prompts/get", params)
		require.NotNil(t, rpcErr, "missing ticket_id must be a hard failure")
		assert.Equal(t, ErrCodeInvalidParams, rpcErr.Code)
		assert.Contains(t, rpcErr.Message, "ticket_id")
	}
}

func TestPromptsGetUnknownName(t *testing.T) {
	server, _ := newTestServer()

	_, rpcErr := rpcCall(t, server, "prompts/get", GetPromptParams{
		Name:      "does-not-exist",
		Arguments: map[string]string{"ticket_id": "1"},
	})
	require.NotNil(t, rpcErr)
	assert.Equal(t, ErrCodeInvalidParams, rpcErr.Code)
	assert.Contains(t, rpcErr.Message, "does-not-exist")
}
