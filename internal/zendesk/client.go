// Package zendesk implements the gateway to the Zendesk REST API v2.
// It exposes the small slice of the API the MCP server needs: tickets,
// comments, attachments, help-center content, and macros.
package zendesk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client interface for Zendesk operations consumed by the MCP server.
type Client interface {
	// Ticket operations
	GetTicket(ctx context.Context, ticketID int64) (*Ticket, error)
	GetTicketComments(ctx context.Context, ticketID int64) ([]Comment, error)
	PostComment(ctx context.Context, ticketID int64, comment string, public bool) (string, error)
	UpdateTicket(ctx context.Context, ticketID int64, ticket map[string]any) (*Ticket, error)

	// Help-center operations
	SearchArticles(ctx context.Context, query string, limit int, locale string) ([]ArticleSummary, error)
	GetArticle(ctx context.Context, articleID int64, locale string) (*Article, error)
	ListSections(ctx context.Context) ([]Section, error)
	GetSectionArticles(ctx context.Context, sectionID int64, limit int, locale string) ([]ArticleSummary, error)

	// Attachment operations
	GetAttachment(ctx context.Context, attachmentID int64) (*Attachment, error)
	DownloadAttachment(ctx context.Context, contentURL string) ([]byte, error)

	// Macro operations
	SearchMacros(ctx context.Context, query string, limit int) ([]Macro, error)
	GetMacro(ctx context.Context, macroID int64) (*Macro, error)
	PreviewMacro(ctx context.Context, ticketID, macroID int64) (map[string]any, error)
}

// summaryBodyLimit caps article bodies in list responses so search results
// stay readable in a single content block.
const summaryBodyLimit = 1000

// HTTPClient implements Client against a Zendesk subdomain using API
// token authentication (email/token basic auth).
type HTTPClient struct {
	baseURL string
	email   string
	token   string
	client  *http.Client
}

// NewHTTPClient creates a Zendesk API client. The timeout applies to every
// request; there are no retries at this layer.
func NewHTTPClient(subdomain, email, token string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: fmt.Sprintf("https://%s.zendesk.com", subdomain),
		email:   email,
		token:   token,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetTicket fetches a ticket by its ID.
func (c *HTTPClient) GetTicket(ctx context.Context, ticketID int64) (*Ticket, error) {
	endpoint := fmt.Sprintf("%s/api/v2/tickets/%d.json", c.baseURL, ticketID)

	var response struct {
		Ticket Ticket `json:"ticket"`
	}
	if err := c.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to get ticket %d: %w", ticketID, err)
	}
	return &response.Ticket, nil
}

// GetTicketComments fetches all comments for a ticket, including their
// attachment metadata.
func (c *HTTPClient) GetTicketComments(ctx context.Context, ticketID int64) ([]Comment, error) {
	endpoint := fmt.Sprintf("%s/api/v2/tickets/%d/comments.json", c.baseURL, ticketID)

	var response struct {
		Comments []Comment `json:"comments"`
	}
	if err := c.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to get comments for ticket %d: %w", ticketID, err)
	}
	return response.Comments, nil
}

// PostComment adds a comment to an existing ticket and returns the posted
// comment text on success.
func (c *HTTPClient) PostComment(ctx context.Context, ticketID int64, comment string, public bool) (string, error) {
	endpoint := fmt.Sprintf("%s/api/v2/tickets/%d.json", c.baseURL, ticketID)

	body := map[string]any{
		"ticket": map[string]any{
			"comment": map[string]any{
				"html_body": comment,
				"public":    public,
			},
		},
	}
	if err := c.doRequest(ctx, "PUT", endpoint, body, nil); err != nil {
		return "", fmt.Errorf("failed to post comment on ticket %d: %w", ticketID, err)
	}
	return comment, nil
}

// UpdateTicket submits a full ticket update payload. Used as the second
// phase of macro application, where the payload is the previewed ticket
// state returned by PreviewMacro.
func (c *HTTPClient) UpdateTicket(ctx context.Context, ticketID int64, ticket map[string]any) (*Ticket, error) {
	endpoint := fmt.Sprintf("%s/api/v2/tickets/%d.json", c.baseURL, ticketID)

	var response struct {
		Ticket Ticket `json:"ticket"`
	}
	if err := c.doRequest(ctx, "PUT", endpoint, map[string]any{"ticket": ticket}, &response); err != nil {
		return nil, fmt.Errorf("failed to update ticket %d: %w", ticketID, err)
	}
	return &response.Ticket, nil
}

// SearchArticles searches help-center articles by query.
func (c *HTTPClient) SearchArticles(ctx context.Context, query string, limit int, locale string) ([]ArticleSummary, error) {
	endpoint := fmt.Sprintf("%s/api/v2/help_center/articles/search.json?query=%s&locale=%s&per_page=%d",
		c.baseURL, url.QueryEscape(query), url.QueryEscape(locale), limit)

	var response struct {
		Results []struct {
			ID        int64  `json:"id"`
			Title     string `json:"title"`
			Body      string `json:"body"`
			SectionID int64  `json:"section_id"`
			UpdatedAt string `json:"updated_at"`
			HTMLURL   string `json:"html_url"`
		} `json:"results"`
	}
	if err := c.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to search articles: %w", err)
	}

	articles := make([]ArticleSummary, 0, len(response.Results))
	for _, r := range response.Results {
		if len(articles) >= limit {
			break
		}
		articles = append(articles, ArticleSummary{
			ID:        r.ID,
			Title:     r.Title,
			Body:      truncate(r.Body, summaryBodyLimit),
			SectionID: r.SectionID,
			UpdatedAt: r.UpdatedAt,
			URL:       r.HTMLURL,
		})
	}
	return articles, nil
}

// GetArticle fetches a single help-center article by ID.
func (c *HTTPClient) GetArticle(ctx context.Context, articleID int64, locale string) (*Article, error) {
	endpoint := fmt.Sprintf("%s/api/v2/help_center/%s/articles/%d.json",
		c.baseURL, url.PathEscape(locale), articleID)

	var response struct {
		Article struct {
			ID        int64  `json:"id"`
			Title     string `json:"title"`
			Body      string `json:"body"`
			SectionID int64  `json:"section_id"`
			AuthorID  int64  `json:"author_id"`
			UpdatedAt string `json:"updated_at"`
			HTMLURL   string `json:"html_url"`
			VoteSum   int    `json:"vote_sum"`
			VoteCount int    `json:"vote_count"`
		} `json:"article"`
	}
	if err := c.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to get article %d: %w", articleID, err)
	}

	a := response.Article
	return &Article{
		ID:        a.ID,
		Title:     a.Title,
		Body:      a.Body,
		SectionID: a.SectionID,
		AuthorID:  a.AuthorID,
		UpdatedAt: a.UpdatedAt,
		URL:       a.HTMLURL,
		VoteSum:   a.VoteSum,
		VoteCount: a.VoteCount,
	}, nil
}

// ListSections lists all help-center sections (lightweight, no articles).
func (c *HTTPClient) ListSections(ctx context.Context) ([]Section, error) {
	endpoint := fmt.Sprintf("%s/api/v2/help_center/sections.json?per_page=100", c.baseURL)

	var response struct {
		Sections []Section `json:"sections"`
	}
	if err := c.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	return response.Sections, nil
}

// GetSectionArticles fetches articles belonging to a single section.
func (c *HTTPClient) GetSectionArticles(ctx context.Context, sectionID int64, limit int, locale string) ([]ArticleSummary, error) {
	endpoint := fmt.Sprintf("%s/api/v2/help_center/%s/sections/%d/articles.json?per_page=%d",
		c.baseURL, url.PathEscape(locale), sectionID, limit)

	var response struct {
		Articles []struct {
			ID        int64  `json:"id"`
			Title     string `json:"title"`
			Body      string `json:"body"`
			UpdatedAt string `json:"updated_at"`
			HTMLURL   string `json:"html_url"`
		} `json:"articles"`
	}
	if err := c.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to get articles for section %d: %w", sectionID, err)
	}

	articles := make([]ArticleSummary, 0, len(response.Articles))
	for _, r := range response.Articles {
		if len(articles) >= limit {
			break
		}
		articles = append(articles, ArticleSummary{
			ID:        r.ID,
			Title:     r.Title,
			Body:      truncate(r.Body, summaryBodyLimit),
			UpdatedAt: r.UpdatedAt,
			URL:       r.HTMLURL,
		})
	}
	return articles, nil
}

// GetAttachment fetches attachment metadata by ID. The payload itself is
// downloaded separately via DownloadAttachment.
func (c *HTTPClient) GetAttachment(ctx context.Context, attachmentID int64) (*Attachment, error) {
	endpoint := fmt.Sprintf("%s/api/v2/attachments/%d.json", c.baseURL, attachmentID)

	var response struct {
		Attachment Attachment `json:"attachment"`
	}
	if err := c.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to get attachment %d: %w", attachmentID, err)
	}
	return &response.Attachment, nil
}

// DownloadAttachment fetches the raw bytes behind an attachment content URL.
func (c *HTTPClient) DownloadAttachment(ctx context.Context, contentURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", contentURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.email+"/token", c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download attachment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("attachment download failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment body: %w", err)
	}
	return data, nil
}

// SearchMacros searches macros by title.
func (c *HTTPClient) SearchMacros(ctx context.Context, query string, limit int) ([]Macro, error) {
	endpoint := fmt.Sprintf("%s/api/v2/macros/search.json?query=%s&per_page=%d",
		c.baseURL, url.QueryEscape(query), limit)

	var response struct {
		Macros []Macro `json:"macros"`
	}
	if err := c.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to search macros: %w", err)
	}

	if len(response.Macros) > limit {
		response.Macros = response.Macros[:limit]
	}
	return response.Macros, nil
}

// GetMacro fetches a single macro by ID with its full action list.
func (c *HTTPClient) GetMacro(ctx context.Context, macroID int64) (*Macro, error) {
	endpoint := fmt.Sprintf("%s/api/v2/macros/%d.json", c.baseURL, macroID)

	var response struct {
		Macro Macro `json:"macro"`
	}
	if err := c.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to get macro %d: %w", macroID, err)
	}
	return &response.Macro, nil
}

// PreviewMacro asks Zendesk for the effect of applying a macro to a ticket
// without committing it. The returned map is the full ticket payload that an
// UpdateTicket call can submit to make the change real.
func (c *HTTPClient) PreviewMacro(ctx context.Context, ticketID, macroID int64) (map[string]any, error) {
	endpoint := fmt.Sprintf("%s/api/v2/tickets/%d/macros/%d/apply.json", c.baseURL, ticketID, macroID)

	var response struct {
		Result struct {
			Ticket map[string]any `json:"ticket"`
		} `json:"result"`
	}
	if err := c.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to preview macro %d on ticket %d: %w", macroID, ticketID, err)
	}
	return response.Result.Ticket, nil
}

func (c *HTTPClient) doRequest(ctx context.Context, method, endpoint string, body, response any) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.email+"/token", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if response != nil {
		if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// truncate shortens s to at most limit bytes without splitting a UTF-8 rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && s[cut]&0xC0 == 0x80 {
		cut--
	}
	return s[:cut]
}
