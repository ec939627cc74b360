package zendesk

import "strings"

// Ticket is the trimmed view of a Zendesk ticket returned by the gateway.
type Ticket struct {
	ID             int64  `json:"id"`
	Subject        string `json:"subject"`
	Description    string `json:"description,omitempty"`
	Status         string `json:"status"`
	Priority       string `json:"priority"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
	RequesterID    int64  `json:"requester_id"`
	AssigneeID     int64  `json:"assignee_id"`
	OrganizationID int64  `json:"organization_id"`
}

// Comment is a single ticket comment, public or internal.
type Comment struct {
	ID          int64        `json:"id"`
	AuthorID    int64        `json:"author_id"`
	Body        string       `json:"body"`
	HTMLBody    string       `json:"html_body"`
	Public      bool         `json:"public"`
	CreatedAt   string       `json:"created_at"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment describes a file linked to a comment or fetched directly.
type Attachment struct {
	ID          int64  `json:"id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	ContentURL  string `json:"content_url"`
}

// IsImage reports whether the attachment payload is an image.
func (a Attachment) IsImage() bool {
	return strings.HasPrefix(a.ContentType, "image/")
}

// Article is a full help-center article.
type Article struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	SectionID int64  `json:"section_id"`
	AuthorID  int64  `json:"author_id"`
	UpdatedAt string `json:"updated_at"`
	URL       string `json:"url"`
	VoteSum   int    `json:"vote_sum"`
	VoteCount int    `json:"vote_count"`
}

// ArticleSummary is the lightweight article shape used in search and
// section listings. Bodies are truncated by the client before return.
type ArticleSummary struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	SectionID int64  `json:"section_id,omitempty"`
	UpdatedAt string `json:"updated_at"`
	URL       string `json:"url"`
}

// Section is a help-center section (no articles attached).
type Section struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  int64  `json:"category_id"`
	Position    int    `json:"position"`
	UpdatedAt   string `json:"updated_at"`
}

// MacroAction is a single field mutation performed by a macro.
// Value is left untyped because Zendesk sends strings or string arrays
// depending on the field.
type MacroAction struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// Macro is a named, predefined set of ticket-mutating actions.
type Macro struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Active      bool          `json:"active"`
	Actions     []MacroAction `json:"actions"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
}
