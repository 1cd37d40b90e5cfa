package vision

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jmcarrillo/go-cablebot/internal/httpc"
)

// Client relays opaque commands to the vision classification service.
// Responses are passed back verbatim so the orchestration layer can
// mirror them without interpreting the payload.
type Client struct {
	baseURL string
}

// NewClient creates a relay client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/")}
}

// Send posts the command to the service's /detect endpoint and returns
// the response body and status code unchanged.
func (c *Client) Send(command string) ([]byte, int, error) {
	payload, err := json.Marshal(map[string]string{"command": command})
	if err != nil {
		return nil, 0, fmt.Errorf("vision: encode command: %w", err)
	}

	resp, err := httpc.PostJSON(c.baseURL+"/detect", payload)
	if err != nil {
		return nil, 0, fmt.Errorf("vision: relay command: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("vision: read response: %w", err)
	}
	return body, resp.StatusCode, nil
}
