package mcp

import (
	"encoding/json"
	"fmt"
	"strings"
)

const ticketAnalysisTemplate = `
You are a helpful Zendesk support analyst. You've been asked to analyze ticket #%s.

Please fetch the ticket info and comments to analyze it and provide:
1. A summary of the issue
2. The current status and timeline
3. Key points of interaction

Remember to be professional and focus on actionable insights.
`

const commentDraftTemplate = `
You are a helpful Zendesk support agent. You need to draft a response to ticket #%s.

Please:
1. Fetch the ticket info and comments to understand the issue
2. Search the knowledge base for relevant articles using the search_kb_articles tool
3. Draft a professional and helpful response that:
   - Acknowledges the customer's concern
   - Addresses the specific issues raised
   - Provides clear next steps or ask for specific details need to proceed
   - Maintains a friendly and professional tone
4. Ask for confirmation before commenting on the ticket

The response should be formatted well and ready to be posted as a comment.
`

// PromptRegistry contains the available prompt templates. Both require a
// ticket_id argument.
var PromptRegistry = []Prompt{
	{
		Name:        "analyze-ticket",
		Description: "Analyze a Zendesk ticket and provide insights",
		Arguments: []PromptArgument{
			{
				Name:        "ticket_id",
				Description: "The ID of the ticket to analyze",
				Required:    true,
			},
		},
	},
	{
		Name:        "draft-ticket-response",
		Description: "Draft a professional response to a Zendesk ticket",
		Arguments: []PromptArgument{
			{
				Name:        "ticket_id",
				Description: "The ID of the ticket to respond to",
				Required:    true,
			},
		},
	},
}

func (s *Server) handlePromptsList(req Request) Response {
	return SuccessResponse(req.ID, PromptsListResult{
		Prompts: PromptRegistry,
	})
}

// handlePromptsGet renders a prompt template. Unlike tool dispatch, prompt
// failures are hard failures: the caller gets a JSON-RPC error, not an
// in-band text block.
func (s *Server) handlePromptsGet(req Request) Response {
	var params GetPromptParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return ErrorResponse(req.ID, ErrCodeInvalidParams, "Invalid params: "+err.Error())
	}

	ticketID, ok := params.Arguments["ticket_id"]
	if !ok || ticketID == "" {
		s.logger.Printf("prompts/get %s: missing ticket_id", params.Name)
		return ErrorResponse(req.ID, ErrCodeInvalidParams, "Missing required argument: ticket_id")
	}

	var prompt, description string
	switch params.Name {
	case "analyze-ticket":
		prompt = fmt.Sprintf(ticketAnalysisTemplate, ticketID)
		description = fmt.Sprintf("Analysis prompt for ticket #%s", ticketID)
	case "draft-ticket-response":
		prompt = fmt.Sprintf(commentDraftTemplate, ticketID)
		description = fmt.Sprintf("Response draft prompt for ticket #%s", ticketID)
	default:
		s.logger.Printf("prompts/get: unknown prompt %q", params.Name)
		return ErrorResponse(req.ID, ErrCodeInvalidParams, "Unknown prompt: "+params.Name)
	}

	return SuccessResponse(req.ID, GetPromptResult{
		Description: description,
		Messages: []PromptMessage{
			{
				Role:    "user",
				Content: TextContent(strings.TrimSpace(prompt)),
			},
		},
	})
}
