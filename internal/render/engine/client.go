package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rafsal3/VideoGen-v1/internal/render/domain"
)

// Client talks to the external render engine over HTTP. The engine does the
// actual video work; we only hand off jobs and check artifact readiness.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// StartJobRequest is the dispatch payload sent to the engine.
type StartJobRequest struct {
	ProjectID      string                 `json:"project_id"`
	Parameters     map[string]interface{} `json:"parameters"`
	Quality        string                 `json:"render_quality"`
	CallbackURL    string                 `json:"callback_url,omitempty"`
	CallbackSecret string                 `json:"callback_secret,omitempty"`
}

// StartJobResponse is the engine's acknowledgement. Filename doubles as the
// engine-side job handle used for readiness checks.
type StartJobResponse struct {
	Filename    string `json:"filename"`
	DownloadURL string `json:"download_url"`
	Message     string `json:"message"`
}

// StartJob dispatches a render to the engine. engineTemplate selects the
// engine-side template pipeline (the catalog's render_engine field).
func (c *Client) StartJob(ctx context.Context, engineTemplate string, req StartJobRequest) (*StartJobResponse, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/render/%s", c.baseURL, engineTemplate)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEngineUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return nil, fmt.Errorf("%w: engine returned status %d: %s", domain.ErrEngineUnavailable, resp.StatusCode, string(body))
	}

	var startResp StartJobResponse
	if err := json.Unmarshal(body, &startResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if startResp.Filename == "" {
		startResp.Filename = req.ProjectID + ".mp4"
	}
	return &startResp, nil
}

// CheckReady reports whether the rendered artifact is downloadable, using a
// HEAD request against the engine's video endpoint.
func (c *Client) CheckReady(ctx context.Context, filename string) (bool, error) {
	url := fmt.Sprintf("%s/videos/%s", c.baseURL, filename)
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrEngineUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("engine readiness check returned status %d", resp.StatusCode)
	}
}

// VideoURL returns the public download location for a finished artifact.
func (c *Client) VideoURL(filename string) string {
	return fmt.Sprintf("%s/videos/%s", c.baseURL, filename)
}

// ThumbnailURL returns the thumbnail location the engine writes next to the
// video.
func (c *Client) ThumbnailURL(filename string) string {
	thumb := filename
	if len(thumb) > 4 && thumb[len(thumb)-4:] == ".mp4" {
		thumb = thumb[:len(thumb)-4] + ".jpg"
	}
	return fmt.Sprintf("%s/videos/%s", c.baseURL, thumb)
}
