// Package utils cung cấp HTTP client dùng chung cho các API test case.
package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient bọc http.Client với base URL và các header xác thực
// (Bearer token hoặc anonymous session) gắn tự động vào mỗi request.
type HTTPClient struct {
	baseURL            string
	token              string
	anonymousSessionID string
	client             *http.Client
}

// NewHTTPClient tạo client với timeout tính bằng giây.
func NewHTTPClient(baseURL string, timeoutSeconds int) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second},
	}
}

// SetToken đặt Bearer token cho các request tiếp theo.
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// SetAnonymousSession đặt header X-Anonymous-Session cho các request tiếp theo.
func (c *HTTPClient) SetAnonymousSession(sessionID string) {
	c.anonymousSessionID = sessionID
}

// ClearAuth xóa token và session đã đặt.
func (c *HTTPClient) ClearAuth() {
	c.token = ""
	c.anonymousSessionID = ""
}

func (c *HTTPClient) do(method, path string, payload interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal payload: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.anonymousSessionID != "" {
		req.Header.Set("X-Anonymous-Session", c.anonymousSessionID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, err
	}
	return resp, body, nil
}

// GET gửi request GET tới path (tương đối so với base URL).
func (c *HTTPClient) GET(path string) (*http.Response, []byte, error) {
	return c.do(http.MethodGet, path, nil)
}

// POST gửi request POST với payload JSON.
func (c *HTTPClient) POST(path string, payload interface{}) (*http.Response, []byte, error) {
	return c.do(http.MethodPost, path, payload)
}

// PUT gửi request PUT với payload JSON.
func (c *HTTPClient) PUT(path string, payload interface{}) (*http.Response, []byte, error) {
	return c.do(http.MethodPut, path, payload)
}

// PATCH gửi request PATCH với payload JSON.
func (c *HTTPClient) PATCH(path string, payload interface{}) (*http.Response, []byte, error) {
	return c.do(http.MethodPatch, path, payload)
}

// DELETE gửi request DELETE tới path.
func (c *HTTPClient) DELETE(path string) (*http.Response, []byte, error) {
	return c.do(http.MethodDelete, path, nil)
}
