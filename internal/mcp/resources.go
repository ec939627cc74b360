package mcp

import (
	"context"
	"encoding/json"
	"strings"
)

// KnowledgeBaseURI is the only resource this server exposes: a lightweight
// index of the help-center sections, not a full knowledge-base dump.
const KnowledgeBaseURI = "zendesk://knowledge-base"

// ResourceRegistry contains the available resources.
var ResourceRegistry = []Resource{
	{
		URI:         KnowledgeBaseURI,
		Name:        "Zendesk Knowledge Base",
		Description: "Access to Zendesk Help Center articles and sections",
		MimeType:    "application/json",
	},
}

func (s *Server) handleResourcesList(req Request) Response {
	return SuccessResponse(req.ID, ResourcesListResult{
		Resources: ResourceRegistry,
	})
}

// handleResourcesRead validates the URI exactly and returns cached section
// metadata. Like prompts, resource failures propagate as JSON-RPC errors.
func (s *Server) handleResourcesRead(ctx context.Context, req Request) Response {
	var params ReadResourceParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return ErrorResponse(req.ID, ErrCodeInvalidParams, "Invalid params: "+err.Error())
	}

	if !strings.HasPrefix(params.URI, "zendesk://") {
		scheme, _, _ := strings.Cut(params.URI, "://")
		s.logger.Printf("resources/read: unsupported URI scheme %q", scheme)
		return ErrorResponse(req.ID, ErrCodeInvalidParams, "Unsupported URI scheme: "+scheme)
	}

	path := strings.TrimPrefix(params.URI, "zendesk://")
	if path != "knowledge-base" {
		s.logger.Printf("resources/read: unknown resource path %q", path)
		return ErrorResponse(req.ID, ErrCodeInvalidParams, "Unknown resource path: "+path)
	}

	sections, err := s.kb.CachedSections(ctx)
	if err != nil {
		s.logger.Printf("resources/read: fetching knowledge base metadata: %v", err)
		return ErrorResponse(req.ID, ErrCodeInternal, "Failed to read knowledge base: "+err.Error())
	}

	output, _ := json.MarshalIndent(map[string]any{
		"metadata": map[string]any{
			"total_sections": len(sections),
			"sections":       sections,
			"note":           "Use the search_kb_articles tool to find specific articles",
		},
	}, "", "  ")

	return SuccessResponse(req.ID, ReadResourceResult{
		Contents: []ResourceContents{
			{
				URI:      params.URI,
				MimeType: "application/json",
				Text:     string(output),
			},
		},
	})
}
