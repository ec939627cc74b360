package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"

	"github.com/helpdesk-io/zendesk-mcp/internal/kb"
	"github.com/helpdesk-io/zendesk-mcp/internal/zendesk"
)

const (
	ProtocolVersion = "2024-11-05"
	ServerName      = "zendesk-mcp"
	ServerVersion   = "0.2.0"
)

// Server handles MCP protocol messages. It owns no global state: the
// Zendesk client, the knowledge-base cache, and the logger are injected at
// construction and shared by every request on the connection.
type Server struct {
	client      zendesk.Client
	kb          *kb.Store
	logger      *log.Logger
	initialized bool
}

// NewServer creates a new MCP server instance around a Zendesk client and
// its knowledge-base cache. A nil logger falls back to the default logger.
func NewServer(client zendesk.Client, store *kb.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		client: client,
		kb:     store,
		logger: logger,
	}
}

// HandleMessage processes a JSON-RPC message and returns a response.
// A nil response with nil error means the message was a notification.
func (s *Server) HandleMessage(ctx context.Context, msg []byte) ([]byte, error) {
	var req Request
	if err := json.Unmarshal(msg, &req); err != nil {
		resp := ErrorResponse(nil, ErrCodeParse, "Parse error: "+err.Error())
		return json.Marshal(resp)
	}

	if req.JSONRPC != "2.0" {
		resp := ErrorResponse(req.ID, ErrCodeInvalidRequest, "Invalid JSON-RPC version")
		return json.Marshal(resp)
	}

	var resp Response
	switch req.Method {
	case "initialize":
		resp = s.handleInitialize(req)
	case "initialized", "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil, nil
	case "tools/list":
		resp = s.handleToolsList(req)
	case "tools/call":
		resp = s.handleToolsCall(ctx, req)
	case "prompts/list":
		resp = s.handlePromptsList(req)
	case "prompts/get":
		resp = s.handlePromptsGet(req)
	case "resources/list":
		resp = s.handleResourcesList(req)
	case "resources/read":
		resp = s.handleResourcesRead(ctx, req)
	case "ping":
		resp = SuccessResponse(req.ID, map[string]string{})
	default:
		resp = ErrorResponse(req.ID, ErrCodeMethodNotFound, "Method not found: "+req.Method)
	}

	return json.Marshal(resp)
}

func (s *Server) handleInitialize(req Request) Response {
	var params InitializeParams
	if req.Params != nil {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return ErrorResponse(req.ID, ErrCodeInvalidParams, "Invalid params: "+err.Error())
		}
	}

	s.initialized = true

	return SuccessResponse(req.ID, InitializeResult{
		ProtocolVersion: ProtocolVersion,
		ServerInfo: ServerInfo{
			Name:    ServerName,
			Version: ServerVersion,
		},
		Capabilities: ServerCapabilities{
			Tools:     &ToolsCapability{},
			Prompts:   &PromptsCapability{},
			Resources: &ResourcesCapability{},
		},
	})
}

func (s *Server) handleToolsList(req Request) Response {
	return SuccessResponse(req.ID, ToolsListResult{
		Tools: ToolRegistry,
	})
}

// handleToolsCall is the dispatch boundary: every validation and backend
// failure below it is converted into a single in-band error text block, so
// the JSON-RPC call itself always succeeds.
func (s *Server) handleToolsCall(ctx context.Context, req Request) Response {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return ErrorResponse(req.ID, ErrCodeInvalidParams, "Invalid params: "+err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		return SuccessResponse(req.ID, ToolCallResult{
			Content: []ContentBlock{TextContent(fmt.Sprintf("Error: %v", err))},
			IsError: true,
		})
	}

	return SuccessResponse(req.ID, result)
}

func (s *Server) executeTool(ctx context.Context, name string, args map[string]any) (*ToolCallResult, error) {
	tool := ToolByName(name)
	if tool == nil {
		return nil, fmt.Errorf("Unknown tool: %s", name)
	}
	if err := ValidateArguments(tool, args); err != nil {
		return nil, err
	}

	switch name {
	case "get_ticket":
		return s.toolGetTicket(ctx, args)
	case "get_ticket_comments":
		return s.toolGetTicketComments(ctx, args)
	case "create_ticket_comment":
		return s.toolCreateTicketComment(ctx, args)
	case "search_kb_articles":
		return s.toolSearchKBArticles(ctx, args)
	case "get_kb_article":
		return s.toolGetKBArticle(ctx, args)
	case "list_kb_sections":
		return s.toolListKBSections(ctx)
	case "get_section_articles":
		return s.toolGetSectionArticles(ctx, args)
	case "get_attachment":
		return s.toolGetAttachment(ctx, args)
	case "search_macros":
		return s.toolSearchMacros(ctx, args)
	case "get_macro":
		return s.toolGetMacro(ctx, args)
	case "apply_macro_to_ticket":
		return s.toolApplyMacroToTicket(ctx, args)
	default:
		return nil, fmt.Errorf("Unknown tool: %s", name)
	}
}

// Helper to get an int64 ID from args
func getID(args map[string]any, key string) int64 {
	if v, ok := args[key]; ok {
		switch val := v.(type) {
		case float64:
			return int64(val)
		case int:
			return int64(val)
		case int64:
			return val
		case json.Number:
			if i, err := val.Int64(); err == nil {
				return i
			}
		}
	}
	return 0
}

// Helper to get int from args with a default
func getInt(args map[string]any, key string, defaultVal int) int {
	if v, ok := args[key]; ok {
		switch val := v.(type) {
		case float64:
			return int(val)
		case int:
			return val
		case json.Number:
			if i, err := val.Int64(); err == nil {
				return int(i)
			}
		}
	}
	return defaultVal
}

// Helper to get string from args with a default
func getString(args map[string]any, key string, defaultVal string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return defaultVal
}

// Helper to get bool from args with a default
func getBool(args map[string]any, key string, defaultVal bool) bool {
	if v, ok := args[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}

// Tool implementations.
//
// Ticket and comment lookups return compact JSON; search, article, section,
// macro, and attachment-metadata responses return indented JSON. Existing
// clients depend on this asymmetry.

func (s *Server) toolGetTicket(ctx context.Context, args map[string]any) (*ToolCallResult, error) {
	ticket, err := s.client.GetTicket(ctx, getID(args, "ticket_id"))
	if err != nil {
		return nil, err
	}

	output, _ := json.Marshal(ticket)
	return &ToolCallResult{
		Content: []ContentBlock{TextContent(string(output))},
	}, nil
}

func (s *Server) toolGetTicketComments(ctx context.Context, args map[string]any) (*ToolCallResult, error) {
	ticketID := getID(args, "ticket_id")
	includeImages := getBool(args, "include_inline_images", false)

	comments, err := s.client.GetTicketComments(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	output, _ := json.Marshal(comments)
	content := []ContentBlock{TextContent(string(output))}

	if includeImages {
		for _, comment := range comments {
			for _, attachment := range comment.Attachments {
				if !attachment.IsImage() {
					continue
				}
				data, err := s.client.DownloadAttachment(ctx, attachment.ContentURL)
				if err != nil {
					// A single bad image must not abort the response.
					s.logger.Printf("skipping inline image %d (%s): %v",
						attachment.ID, attachment.FileName, err)
					continue
				}
				content = append(content, ImageContent(
					base64.StdEncoding.EncodeToString(data),
					attachment.ContentType,
				))
			}
		}
	}

	return &ToolCallResult{Content: content}, nil
}

func (s *Server) toolCreateTicketComment(ctx context.Context, args map[string]any) (*ToolCallResult, error) {
	posted, err := s.client.PostComment(ctx,
		getID(args, "ticket_id"),
		getString(args, "comment", ""),
		getBool(args, "public", true),
	)
	if err != nil {
		return nil, err
	}

	return &ToolCallResult{
		Content: []ContentBlock{TextContent("Comment created successfully: " + posted)},
	}, nil
}

func (s *Server) toolSearchKBArticles(ctx context.Context, args map[string]any) (*ToolCallResult, error) {
	articles, err := s.kb.CachedSearch(ctx,
		getString(args, "query", ""),
		getInt(args, "limit", 10),
		getString(args, "locale", "en-us"),
	)
	if err != nil {
		return nil, err
	}

	output, _ := json.MarshalIndent(articles, "", "  ")
	return &ToolCallResult{
		Content: []ContentBlock{TextContent(string(output))},
	}, nil
}

func (s *Server) toolGetKBArticle(ctx context.Context, args map[string]any) (*ToolCallResult, error) {
	article, err := s.kb.CachedArticle(ctx,
		getID(args, "article_id"),
		getString(args, "locale", "en-us"),
	)
	if err != nil {
		return nil, err
	}

	output, _ := json.MarshalIndent(article, "", "  ")
	return &ToolCallResult{
		Content: []ContentBlock{TextContent(string(output))},
	}, nil
}

func (s *Server) toolListKBSections(ctx context.Context) (*ToolCallResult, error) {
	sections, err := s.kb.CachedSections(ctx)
	if err != nil {
		return nil, err
	}

	output, _ := json.MarshalIndent(sections, "", "  ")
	return &ToolCallResult{
		Content: []ContentBlock{TextContent(string(output))},
	}, nil
}

func (s *Server) toolGetSectionArticles(ctx context.Context, args map[string]any) (*ToolCallResult, error) {
	articles, err := s.client.GetSectionArticles(ctx,
		getID(args, "section_id"),
		getInt(args, "limit", 20),
		getString(args, "locale", "en-us"),
	)
	if err != nil {
		return nil, err
	}

	output, _ := json.MarshalIndent(articles, "", "  ")
	return &ToolCallResult{
		Content: []ContentBlock{TextContent(string(output))},
	}, nil
}

func (s *Server) toolGetAttachment(ctx context.Context, args map[string]any) (*ToolCallResult, error) {
	attachment, err := s.client.GetAttachment(ctx, getID(args, "attachment_id"))
	if err != nil {
		return nil, err
	}

	data, err := s.client.DownloadAttachment(ctx, attachment.ContentURL)
	if err != nil {
		return nil, err
	}
	encoded := base64.StdEncoding.EncodeToString(data)

	if attachment.IsImage() {
		return &ToolCallResult{
			Content: []ContentBlock{ImageContent(encoded, attachment.ContentType)},
		}, nil
	}

	output, _ := json.MarshalIndent(map[string]any{
		"file_name":    attachment.FileName,
		"content_type": attachment.ContentType,
		"size":         attachment.Size,
		"base64_data":  encoded,
		"note":         "Decode base64_data to recover the file contents",
	}, "", "  ")
	return &ToolCallResult{
		Content: []ContentBlock{TextContent(string(output))},
	}, nil
}

func (s *Server) toolSearchMacros(ctx context.Context, args map[string]any) (*ToolCallResult, error) {
	macros, err := s.client.SearchMacros(ctx,
		getString(args, "query", ""),
		getInt(args, "limit", 10),
	)
	if err != nil {
		return nil, err
	}

	// Macros can carry dozens of actions; cap each listing at 10 so the
	// result stays scannable. get_macro returns the full action list.
	for i := range macros {
		if len(macros[i].Actions) > 10 {
			macros[i].Actions = macros[i].Actions[:10]
		}
	}

	output, _ := json.MarshalIndent(macros, "", "  ")
	return &ToolCallResult{
		Content: []ContentBlock{TextContent(string(output))},
	}, nil
}

func (s *Server) toolGetMacro(ctx context.Context, args map[string]any) (*ToolCallResult, error) {
	macro, err := s.client.GetMacro(ctx, getID(args, "macro_id"))
	if err != nil {
		return nil, err
	}

	output, _ := json.MarshalIndent(macro, "", "  ")
	return &ToolCallResult{
		Content: []ContentBlock{TextContent(string(output))},
	}, nil
}

// toolApplyMacroToTicket is two-phase: preview the macro's effect, then
// submit the previewed ticket state as an update. Failure at either phase
// aborts the whole operation.
func (s *Server) toolApplyMacroToTicket(ctx context.Context, args map[string]any) (*ToolCallResult, error) {
	ticketID := getID(args, "ticket_id")
	macroID := getID(args, "macro_id")

	preview, err := s.client.PreviewMacro(ctx, ticketID, macroID)
	if err != nil {
		return nil, fmt.Errorf("failed to apply macro %d to ticket %d: %w", macroID, ticketID, err)
	}

	updated, err := s.client.UpdateTicket(ctx, ticketID, preview)
	if err != nil {
		return nil, fmt.Errorf("failed to apply macro %d to ticket %d: %w", macroID, ticketID, err)
	}

	output, _ := json.MarshalIndent(map[string]any{
		"success": true,
		"ticket": map[string]any{
			"id":         updated.ID,
			"subject":    updated.Subject,
			"status":     updated.Status,
			"priority":   updated.Priority,
			"updated_at": updated.UpdatedAt,
		},
	}, "", "  ")
	return &ToolCallResult{
		Content: []ContentBlock{TextContent(string(output))},
	}, nil
}
