package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"communekit.com/project-community-app/models"
)

// APIClient implements EngagementStore over the engagement service's
// HTTP API. This is what a device-side presenter talks to; the server
// binds the same interface straight to Postgres.
type APIClient struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

func NewAPIClient(baseURL, authToken string) *APIClient {
	return &APIClient{
		baseURL:    baseURL,
		authToken:  authToken,
		httpClient: http.DefaultClient,
	}
}

func (c *APIClient) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	reqBody := &bytes.Buffer{}
	if body != nil {
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("engagement API returned status %d for %s %s", resp.StatusCode, method, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *APIClient) GetItem(ctx context.Context, kind models.ContentKind, itemID int) (*models.ContentItem, error) {
	var item models.ContentItem
	path := fmt.Sprintf("/contents/%s/%d", kind, itemID)
	if err := c.do(ctx, http.MethodGet, path, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *APIClient) SetLikeCount(ctx context.Context, kind models.ContentKind, itemID int, count int) error {
	path := fmt.Sprintf("/contents/%s/%d/like-count", kind, itemID)
	return c.do(ctx, http.MethodPut, path, models.SetCountRequest{Count: count}, nil)
}

func (c *APIClient) FetchCommentsPage(ctx context.Context, kind models.ContentKind, itemID int, offset, limit int) (*models.CommentPage, error) {
	var page models.CommentPage
	path := fmt.Sprintf("/contents/%s/%d/comments?offset=%d&limit=%d", kind, itemID, offset, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *APIClient) InsertComment(ctx context.Context, kind models.ContentKind, itemID int, authorDisplayName, text string) (*models.Comment, error) {
	var created models.Comment
	path := fmt.Sprintf("/contents/%s/%d/comments", kind, itemID)
	req := models.CreateCommentRequest{AuthorDisplayName: authorDisplayName, Text: text}
	if err := c.do(ctx, http.MethodPost, path, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *APIClient) SetCommentCount(ctx context.Context, kind models.ContentKind, itemID int, count int) error {
	path := fmt.Sprintf("/contents/%s/%d/comment-count", kind, itemID)
	return c.do(ctx, http.MethodPut, path, models.SetCountRequest{Count: count}, nil)
}
