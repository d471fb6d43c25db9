package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"
)

// Client is a cookie-aware JSON API client. It keeps the scs session cookie
// across requests so a single Login call authenticates the rest of the test.
type Client struct {
	client *http.Client
	url    string
}

func NewClient(url string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		client: &http.Client{Jar: jar},
		url:    url,
	}, nil
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	for {
		if req, err = http.NewRequestWithContext(
			ctx,
			http.MethodGet,
			c.url+urlPath,
			nil,
		); err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		if resp, err = c.client.Do(req); err == nil {
			if resp.StatusCode == http.StatusOK {
				if err = resp.Body.Close(); err != nil {
					return fmt.Errorf("close response body: %w", err)
				}
				return nil
			}
			if err = resp.Body.Close(); err != nil {
				return fmt.Errorf("close response body: %w", err)
			}
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// Do sends a request with an optional JSON body and decodes the JSON
// response into out when out is non-nil. It returns the status code.
func (c *Client) Do(ctx context.Context, method, urlPath string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+urlPath, reader)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if out != nil {
		if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response body: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// GetJSON fetches a URL and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, urlPath string, out any) (int, error) {
	return c.Do(ctx, http.MethodGet, urlPath, nil, out)
}

// PostJSON posts a JSON body and decodes the JSON response into out.
func (c *Client) PostJSON(ctx context.Context, urlPath string, body, out any) (int, error) {
	return c.Do(ctx, http.MethodPost, urlPath, body, out)
}

// PutJSON puts a JSON body and decodes the JSON response into out.
func (c *Client) PutJSON(ctx context.Context, urlPath string, body, out any) (int, error) {
	return c.Do(ctx, http.MethodPut, urlPath, body, out)
}

// Get fetches a URL and returns the raw response for asserting on headers
// and non-JSON bodies. The caller closes the body.
func (c *Client) Get(ctx context.Context, urlPath string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+urlPath, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	return resp, nil
}

// Login authenticates the client's cookie session as the given email.
func (c *Client) Login(ctx context.Context, email string) error {
	status, err := c.PostJSON(ctx, "/api/auth/login", map[string]string{"email": email}, nil)
	if err != nil {
		return fmt.Errorf("post login: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", status)
	}
	return nil
}

// Logout clears the client's cookie session.
func (c *Client) Logout(ctx context.Context) error {
	status, err := c.Do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	if err != nil {
		return fmt.Errorf("post logout: %w", err)
	}
	if status != http.StatusNoContent {
		return fmt.Errorf("unexpected status code: %d", status)
	}
	return nil
}
