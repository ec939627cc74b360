package zendesk

import (
	"context"
	"fmt"
	"sync"
)

// MockClient is an in-memory implementation of the Client interface for
// testing. Fixtures are plain exported maps; tests populate them directly.
type MockClient struct {
	mu sync.RWMutex

	Tickets         map[int64]*Ticket
	Comments        map[int64][]Comment
	Attachments     map[int64]*Attachment
	AttachmentData  map[string][]byte
	Articles        map[int64]*Article
	Sections        []Section
	SectionArticles map[int64][]ArticleSummary
	SearchResults   map[string][]ArticleSummary
	Macros          map[int64]*Macro
	MacroResults    map[string][]Macro
	Previews        map[string]map[string]any

	// FailOps forces the named operation to return the given error.
	FailOps map[string]error

	// LastUpdate records the payload of the most recent UpdateTicket call.
	LastUpdate map[string]any

	calls map[string]int
}

// NewMockClient creates an empty mock Zendesk client.
func NewMockClient() *MockClient {
	return &MockClient{
		Tickets:         make(map[int64]*Ticket),
		Comments:        make(map[int64][]Comment),
		Attachments:     make(map[int64]*Attachment),
		AttachmentData:  make(map[string][]byte),
		Articles:        make(map[int64]*Article),
		SectionArticles: make(map[int64][]ArticleSummary),
		SearchResults:   make(map[string][]ArticleSummary),
		Macros:          make(map[int64]*Macro),
		MacroResults:    make(map[string][]Macro),
		Previews:        make(map[string]map[string]any),
		FailOps:         make(map[string]error),
		calls:           make(map[string]int),
	}
}

// Calls returns how many times the named operation was invoked.
func (c *MockClient) Calls(op string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.calls[op]
}

func (c *MockClient) record(op string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[op]++
	return c.FailOps[op]
}

func (c *MockClient) GetTicket(ctx context.Context, ticketID int64) (*Ticket, error) {
	if err := c.record("GetTicket"); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	ticket, ok := c.Tickets[ticketID]
	if !ok {
		return nil, fmt.Errorf("failed to get ticket %d: not found", ticketID)
	}
	return ticket, nil
}

func (c *MockClient) GetTicketComments(ctx context.Context, ticketID int64) ([]Comment, error) {
	if err := c.record("GetTicketComments"); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	comments, ok := c.Comments[ticketID]
	if !ok {
		return nil, fmt.Errorf("failed to get comments for ticket %d: not found", ticketID)
	}
	return comments, nil
}

func (c *MockClient) PostComment(ctx context.Context, ticketID int64, comment string, public bool) (string, error) {
	if err := c.record("PostComment"); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.Tickets[ticketID]; !ok {
		return "", fmt.Errorf("failed to post comment on ticket %d: not found", ticketID)
	}
	c.Comments[ticketID] = append(c.Comments[ticketID], Comment{
		Body:     comment,
		HTMLBody: comment,
		Public:   public,
	})
	return comment, nil
}

func (c *MockClient) UpdateTicket(ctx context.Context, ticketID int64, ticket map[string]any) (*Ticket, error) {
	if err := c.record("UpdateTicket"); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	existing, ok := c.Tickets[ticketID]
	if !ok {
		return nil, fmt.Errorf("failed to update ticket %d: not found", ticketID)
	}
	c.LastUpdate = ticket
	return existing, nil
}

func (c *MockClient) SearchArticles(ctx context.Context, query string, limit int, locale string) ([]ArticleSummary, error) {
	if err := c.record("SearchArticles"); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	results := c.SearchResults[query]
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (c *MockClient) GetArticle(ctx context.Context, articleID int64, locale string) (*Article, error) {
	if err := c.record("GetArticle"); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	article, ok := c.Articles[articleID]
	if !ok {
		return nil, fmt.Errorf("failed to get article %d: not found", articleID)
	}
	return article, nil
}

func (c *MockClient) ListSections(ctx context.Context) ([]Section, error) {
	if err := c.record("ListSections"); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Sections, nil
}

func (c *MockClient) GetSectionArticles(ctx context.Context, sectionID int64, limit int, locale string) ([]ArticleSummary, error) {
	if err := c.record("GetSectionArticles"); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	articles, ok := c.SectionArticles[sectionID]
	if !ok {
		return nil, fmt.Errorf("failed to get articles for section %d: not found", sectionID)
	}
	if len(articles) > limit {
		articles = articles[:limit]
	}
	return articles, nil
}

func (c *MockClient) GetAttachment(ctx context.Context, attachmentID int64) (*Attachment, error) {
	if err := c.record("GetAttachment"); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	attachment, ok := c.Attachments[attachmentID]
	if !ok {
		return nil, fmt.Errorf("failed to get attachment %d: not found", attachmentID)
	}
	return attachment, nil
}

func (c *MockClient) DownloadAttachment(ctx context.Context, contentURL string) ([]byte, error) {
	if err := c.record("DownloadAttachment"); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.AttachmentData[contentURL]
	if !ok {
		return nil, fmt.Errorf("failed to download attachment: %s not found", contentURL)
	}
	return data, nil
}

func (c *MockClient) SearchMacros(ctx context.Context, query string, limit int) ([]Macro, error) {
	if err := c.record("SearchMacros"); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	macros := c.MacroResults[query]
	if len(macros) > limit {
		macros = macros[:limit]
	}
	return macros, nil
}

func (c *MockClient) GetMacro(ctx context.Context, macroID int64) (*Macro, error) {
	if err := c.record("GetMacro"); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	macro, ok := c.Macros[macroID]
	if !ok {
		return nil, fmt.Errorf("failed to get macro %d: not found", macroID)
	}
	return macro, nil
}

func (c *MockClient) PreviewMacro(ctx context.Context, ticketID, macroID int64) (map[string]any, error) {
	if err := c.record("PreviewMacro"); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	preview, ok := c.Previews[previewKey(ticketID, macroID)]
	if !ok {
		return nil, fmt.Errorf("failed to preview macro %d on ticket %d: not found", macroID, ticketID)
	}
	return preview, nil
}

// previewKey builds the fixture key for Previews entries.
func previewKey(ticketID, macroID int64) string {
	return fmt.Sprintf("%d:%d", ticketID, macroID)
}

// SetPreview registers a macro preview fixture.
func (c *MockClient) SetPreview(ticketID, macroID int64, ticket map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Previews[previewKey(ticketID, macroID)] = ticket
}
