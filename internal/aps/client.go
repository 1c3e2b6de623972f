package aps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Client is a thin wrapper over the APS Data Management REST API. Every call
// takes the signed-in user's bearer token; token lifetime is handled by the
// auth layer, not here.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

func (c *Client) GetHubs(ctx context.Context, token string) ([]Entry, error) {
	var res listing
	if err := c.get(ctx, token, "/project/v1/hubs", &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (c *Client) GetProjects(ctx context.Context, token, hubID string) ([]Entry, error) {
	endpoint := fmt.Sprintf("/project/v1/hubs/%s/projects", url.PathEscape(hubID))

	var res listing
	if err := c.get(ctx, token, endpoint, &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}

// GetTopFolders lists a project's top-level folders. The endpoint is not
// paginated.
func (c *Client) GetTopFolders(ctx context.Context, token, hubID, projectID string) ([]Entry, error) {
	endpoint := fmt.Sprintf("/project/v1/hubs/%s/projects/%s/topFolders", url.PathEscape(hubID), url.PathEscape(projectID))

	var res listing
	if err := c.get(ctx, token, endpoint, &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}

// GetFolderContents fetches one page of a folder listing, including the
// version side-list. Page 0 is the first page.
func (c *Client) GetFolderContents(ctx context.Context, token, projectID, folderID string, page int) (*FolderContents, error) {
	endpoint := fmt.Sprintf("/data/v1/projects/%s/folders/%s/contents", url.PathEscape(projectID), url.PathEscape(folderID))
	if page > 0 {
		endpoint += fmt.Sprintf("?page[number]=%d", page)
	}

	var res FolderContents
	if err := c.get(ctx, token, endpoint, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) get(ctx context.Context, token, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request to aps: %s", err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to do aps request: %s", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("aps responded with status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode aps response: %s", err.Error())
	}

	return nil
}
