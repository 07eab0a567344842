package vapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the assistant provider's REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// UpdateTool PATCHes an existing tool definition. A 404 response is
// reported separately: it means the registered id is stale and a new tool
// must be created.
func (c *Client) UpdateTool(ctx context.Context, apiKey, toolID string, payload any) (notFound bool, err error) {
	status, body, err := c.do(ctx, http.MethodPatch, "/tool/"+toolID, apiKey, payload)
	if err != nil {
		return false, err
	}
	if status == http.StatusNotFound {
		return true, nil
	}
	if status >= 400 {
		return false, fmt.Errorf("failed to update tool: %s", body)
	}
	return false, nil
}

func (c *Client) CreateTool(ctx context.Context, apiKey string, payload any) (string, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/tool", apiKey, payload)
	if err != nil {
		return "", err
	}
	if status >= 400 {
		return "", fmt.Errorf("failed to create tool: %s", body)
	}

	var tool struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &tool); err != nil {
		return "", fmt.Errorf("failed to decode tool response: %w", err)
	}
	return tool.ID, nil
}

func (c *Client) UpdateAssistant(ctx context.Context, apiKey, assistantID string, payload any) error {
	status, body, err := c.do(ctx, http.MethodPatch, "/assistant/"+assistantID, apiKey, payload)
	if err != nil {
		return err
	}
	if status >= 400 {
		return fmt.Errorf("failed to update assistant: %s", body)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path, apiKey string, payload any) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}
