package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 32 << 20

// apiErrorResponse is the error envelope shared by the OpenAI and
// Anthropic HTTP APIs.
type apiErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// PostJSON sends body as JSON to url and decodes a 200 response into out.
// Transport failures become retryable network errors and non-200 statuses
// are mapped with HTTPError.
func PostJSON(ctx context.Context, client *http.Client, url string, header http.Header, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return NetworkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return NetworkError(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiErrorResponse
		message := ""
		if json.Unmarshal(data, &apiErr) == nil {
			message = apiErr.Error.Message
		}
		if message == "" {
			message = string(bytes.TrimSpace(data))
		}
		return HTTPError(resp.StatusCode, message, resp.Header)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &ProviderError{Code: ErrorCodeNetwork, Message: "failed to decode response", Underlying: err}
	}
	return nil
}
