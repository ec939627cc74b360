package mcp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-io/zendesk-mcp/internal/zendesk"
)

func TestResourcesList(t *testing.T) {
	server, _ := newTestServer()

	raw, rpcErr := rpcCall(t, server, "resources/list", nil)
	require.Nil(t, rpcErr)

	var result ResourcesListResult
	require.NoError(t, json.Unmarshal(raw, &result))
	require.Len(t, result.Resources, 1)
	assert.Equal(t, KnowledgeBaseURI, result.Resources[0].URI)
	assert.Equal(t, "application/json", result.Resources[0].MimeType)
}

func TestResourcesRead(t *testing.T) {
	server, client := newTestServer()
	client.Sections = []zendesk.Section{
		{ID: 1, Name: "Getting Started"},
		{ID: 2, Name: "Billing"},
	}

	raw, rpcErr := rpcCall(t, server, "resources/read", ReadResourceParams{URI: KnowledgeBaseURI})
	require.Nil(t, rpcErr)

	var result ReadResourceResult
	require.NoError(t, json.Unmarshal(raw, &result))
	require.Len(t, result.Contents, 1)
	assert.Equal(t, KnowledgeBaseURI, result.Contents[0].URI)

	var payload struct {
		Metadata struct {
			TotalSections int               `json:"total_sections"`
			Sections      []zendesk.Section `json:"sections"`
			Note          string            `json:"note"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &payload))
	assert.Equal(t, 2, payload.Metadata.TotalSections)
	assert.Len(t, payload.Metadata.Sections, 2)
	assert.Contains(t, payload.Metadata.Note, "search_kb_articles")
}

func TestResourcesReadUsesCache(t *testing.T) {
	server, client := newTestServer()
	client.Sections = []zendesk.Section{{ID: 1}}

	_, rpcErr := rpcCall(t, server, "resources/read", ReadResourceParams{URI: KnowledgeBaseURI})
	require.Nil(t, rpcErr)
	_, rpcErr = rpcCall(t, server, "resources/read", ReadResourceParams{URI: KnowledgeBaseURI})
	require.Nil(t, rpcErr)

	assert.Equal(t, 1, client.Calls("ListSections"))
}

func TestResourcesReadUnsupportedScheme(t *testing.T) {
	server, _ := newTestServer()

	_, rpcErr := rpcCall(t, server, "resources/read", ReadResourceParams{URI: "other://x"})
	require.NotNil(t, rpcErr, "unsupported scheme must propagate as a channel error")
	assert.Equal(t, ErrCodeInvalidParams, rpcErr.Code)
	assert.Contains(t, rpcErr.Message, "other")
}

func TestResourcesReadUnknownPath(t *testing.T) {
	server, _ := newTestServer()

	_, rpcErr := rpcCall(t, server, "resources/read", ReadResourceParams{URI: "zendesk://tickets"})
	require.NotNil(t, rpcErr)
	assert.Equal(t, ErrCodeInvalidParams, rpcErr.Code)
	assert.Contains(t, rpcErr.Message, "tickets")
}

func TestResourcesReadBackendFailure(t *testing.T) {
	server, client := newTestServer()
	client.FailOps["ListSections"] = assert.AnError

	_, rpcErr := rpcCall(t, server, "resources/read", ReadResourceParams{URI: KnowledgeBaseURI})
	require.NotNil(t, rpcErr, "backend failures during resource reads are hard failures")
	assert.Equal(t, ErrCodeInternal, rpcErr.Code)
}
