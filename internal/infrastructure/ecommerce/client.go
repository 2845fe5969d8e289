package ecommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/catalogsync/backend/internal/domain/integration"
)

// maxResponseSize is the maximum allowed response size from a platform API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// ErrInvalidProductID indicates a platform product ID that is not numeric
var ErrInvalidProductID = errors.New("ecommerce: invalid product ID format")

// restClient performs JSON requests against one platform's REST API and maps
// failures onto the integration error taxonomy.
type restClient struct {
	platform   integration.PlatformCode
	baseURL    string
	httpClient *http.Client
	authorize  func(req *http.Request)
}

func newRESTClient(platform integration.PlatformCode, baseURL string, timeout time.Duration, authorize func(*http.Request)) *restClient {
	return &restClient{
		platform:   platform,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		authorize:  authorize,
	}
}

// do sends body (if non-nil) as JSON and decodes a 2xx response into out
// (if non-nil). It returns the response headers for pagination.
func (c *restClient) do(ctx context.Context, op, method, path string, query url.Values, body, out any) (http.Header, error) {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to encode request: %w", strings.ToLower(c.platform.String()), err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", strings.ToLower(c.platform.String()), err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authorize != nil {
		c.authorize(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &integration.NetworkError{Platform: c.platform, Operation: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &integration.NetworkError{Platform: c.platform, Operation: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &integration.UpstreamAPIError{
			Platform:   c.platform,
			Operation:  op,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return nil, fmt.Errorf("%w: %s %s: %v", integration.ErrPlatformInvalidResponse, c.platform, op, err)
		}
	}
	return resp.Header, nil
}

// validateNumericID validates that a string is a valid numeric ID
func validateNumericID(id string) error {
	if id == "" {
		return ErrInvalidProductID
	}
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidProductID, id)
	}
	return nil
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
