// Package storage implements the operator console's API client and its
// local cache of the dashboard collections.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Client talks to the LOG-SGB API with a bearer token.
type Client struct {
	HTTP    *http.Client
	BaseURL string
	Token   string
}

// NewClient builds a client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		BaseURL: baseURL,
	}
}

func (c *Client) do(method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, bytes.TrimSpace(data))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Login exchanges credentials for a bearer token and keeps it on the client.
func (c *Client) Login(username, password string) error {
	var result struct {
		Token   string `json:"token"`
		Session struct {
			Username string `json:"username"`
			Status   string `json:"status"`
		} `json:"session"`
	}
	payload := map[string]string{"username": username, "password": password}
	if err := c.do(http.MethodPost, "/api/login", payload, &result); err != nil {
		return err
	}
	c.Token = result.Token
	fmt.Printf("Logged in as %s (%s)\n", result.Session.Username, result.Session.Status)
	return nil
}

// Logout revokes the current token.
func (c *Client) Logout() error {
	if c.Token == "" {
		return nil
	}
	err := c.do(http.MethodPost, "/api/logout", nil, nil)
	c.Token = ""
	return err
}

// Refresh refetches all five collections into the local cache.
func (c *Client) Refresh(ls *LocalStorage) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if err := c.do(http.MethodGet, "/api/products", nil, &ls.Products); err != nil {
		return fmt.Errorf("fetch products: %w", err)
	}
	if err := c.do(http.MethodGet, "/api/drivers", nil, &ls.Drivers); err != nil {
		return fmt.Errorf("fetch drivers: %w", err)
	}
	if err := c.do(http.MethodGet, "/api/trucks", nil, &ls.Trucks); err != nil {
		return fmt.Errorf("fetch trucks: %w", err)
	}
	if err := c.do(http.MethodGet, "/api/trailers", nil, &ls.Trailers); err != nil {
		return fmt.Errorf("fetch trailers: %w", err)
	}
	if err := c.do(http.MethodGet, "/api/shipments", nil, &ls.Shipments); err != nil {
		return fmt.Errorf("fetch shipments: %w", err)
	}
	ls.FetchedAt = time.Now()
	return nil
}

// Stats fetches the monthly aggregates as raw JSON for display.
func (c *Client) Stats(month, year int) (json.RawMessage, error) {
	var out json.RawMessage
	path := fmt.Sprintf("/api/stats?month=%d&year=%d", month, year)
	if err := c.do(http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DownloadReport saves one CSV report to the working directory and returns
// the filename the server suggested, or a local fallback.
func (c *Client) DownloadReport(kind string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL+"/api/reports/"+kind, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("server error (%d): %s", resp.StatusCode, bytes.TrimSpace(data))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	name := filenameFromDisposition(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = kind + ".csv"
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		return "", err
	}
	return name, nil
}

// filenameFromDisposition extracts the quoted filename of a
// Content-Disposition attachment header.
func filenameFromDisposition(header string) string {
	const marker = `filename="`
	i := strings.Index(header, marker)
	if i < 0 {
		return ""
	}
	rest := header[i+len(marker):]
	j := strings.IndexByte(rest, '"')
	if j < 0 {
		return ""
	}
	return rest[:j]
}
