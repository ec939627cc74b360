package mcp

// ToolRegistry contains all available Zendesk MCP tools. Defaults declared
// here are applied by the dispatcher when the argument is absent.
var ToolRegistry = []Tool{
	{
		Name:        "get_ticket",
		Description: "Retrieve a Zendesk ticket by its ID",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"ticket_id": {
					Type:        "integer",
					Description: "The ID of the ticket to retrieve",
				},
			},
			Required: []string{"ticket_id"},
		},
	},
	{
		Name:        "get_ticket_comments",
		Description: "Retrieve all comments for a Zendesk ticket by its ID",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"ticket_id": {
					Type:        "integer",
					Description: "The ID of the ticket to get comments for",
				},
				"include_inline_images": {
					Type:        "boolean",
					Description: "Fetch image attachments and return them as inline image blocks",
					Default:     false,
				},
			},
			Required: []string{"ticket_id"},
		},
	},
	{
		Name:        "create_ticket_comment",
		Description: "Create a new comment on an existing Zendesk ticket",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"ticket_id": {
					Type:        "integer",
					Description: "The ID of the ticket to comment on",
				},
				"comment": {
					Type:        "string",
					Description: "The comment text/content to add",
				},
				"public": {
					Type:        "boolean",
					Description: "Whether the comment should be public",
					Default:     true,
				},
			},
			Required: []string{"ticket_id", "comment"},
		},
	},
	{
		Name:        "search_kb_articles",
		Description: "Search Zendesk Help Center articles by query",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"query": {
					Type:        "string",
					Description: "Search query to find relevant articles",
				},
				"limit": {
					Type:        "integer",
					Description: "Maximum number of articles to return",
					Default:     10,
				},
				"locale": {
					Type:        "string",
					Description: "Locale for article content",
					Default:     "en-us",
				},
			},
			Required: []string{"query"},
		},
	},
	{
		Name:        "get_kb_article",
		Description: "Get a specific Zendesk Help Center article by ID",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"article_id": {
					Type:        "integer",
					Description: "The ID of the article to retrieve",
				},
				"locale": {
					Type:        "string",
					Description: "Locale for article content",
					Default:     "en-us",
				},
			},
			Required: []string{"article_id"},
		},
	},
	{
		Name:        "list_kb_sections",
		Description: "List all Zendesk Help Center sections",
		InputSchema: InputSchema{
			Type:       "object",
			Properties: map[string]Property{},
		},
	},
	{
		Name:        "get_section_articles",
		Description: "Get articles from a specific Zendesk Help Center section",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"section_id": {
					Type:        "integer",
					Description: "The ID of the section",
				},
				"limit": {
					Type:        "integer",
					Description: "Maximum number of articles to return",
					Default:     20,
				},
				"locale": {
					Type:        "string",
					Description: "Locale for article content",
					Default:     "en-us",
				},
			},
			Required: []string{"section_id"},
		},
	},
	{
		Name:        "get_attachment",
		Description: "Download a ticket attachment by ID. Images are returned inline; other files as base64 metadata.",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"attachment_id": {
					Type:        "integer",
					Description: "The ID of the attachment to download",
				},
			},
			Required: []string{"attachment_id"},
		},
	},
	{
		Name:        "search_macros",
		Description: "Search Zendesk macros by title. Each result lists up to 10 actions.",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"query": {
					Type:        "string",
					Description: "Search query to find matching macros",
				},
				"limit": {
					Type:        "integer",
					Description: "Maximum number of macros to return",
					Default:     10,
				},
			},
			Required: []string{"query"},
		},
	},
	{
		Name:        "get_macro",
		Description: "Get a specific Zendesk macro by ID with its full action list",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"macro_id": {
					Type:        "integer",
					Description: "The ID of the macro to retrieve",
				},
			},
			Required: []string{"macro_id"},
		},
	},
	{
		Name:        "apply_macro_to_ticket",
		Description: "Apply a macro to a ticket: previews the macro's effect, then submits the resulting ticket update",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"ticket_id": {
					Type:        "integer",
					Description: "The ID of the ticket to apply the macro to",
				},
				"macro_id": {
					Type:        "integer",
					Description: "The ID of the macro to apply",
				},
			},
			Required: []string{"ticket_id", "macro_id"},
		},
	},
}

// ToolByName returns the registered tool descriptor, or nil when unknown.
func ToolByName(name string) *Tool {
	for i := range ToolRegistry {
		if ToolRegistry[i].Name == name {
			return &ToolRegistry[i]
		}
	}
	return nil
}
