// Package authctl is the operator side of the approval gate: it mints
// operator tokens and drives the launcher's admin API.
package authctl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/launcher/internal/server/approval"
)

// Client calls the admin endpoints with an operator token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), token: token, http: hc}
}

// PendingList is the body of GET /admin/auth/pending.
type PendingList struct {
	Mode    approval.Mode             `json:"mode"`
	Pending []approval.PendingRequest `json:"pending"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e struct {
			ErrorCode   int    `json:"errorCode"`
			Description string `json:"description"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return fmt.Errorf("%s %s: %d %s (code %d)", method, path, resp.StatusCode, e.Description, e.ErrorCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) Pending(ctx context.Context) (*PendingList, error) {
	out := new(PendingList)
	if err := c.do(ctx, http.MethodGet, "/admin/auth/pending", nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Decide(ctx context.Context, id string, allow bool) error {
	return c.do(ctx, http.MethodPost, "/admin/auth/pending/"+url.PathEscape(id), map[string]bool{"allow": allow}, nil)
}

func (c *Client) RegisterApproval(ctx context.Context, allow bool) error {
	return c.do(ctx, http.MethodPost, "/admin/auth/approval", map[string]bool{"allow": allow}, nil)
}

func (c *Client) RemoveApprovals(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/admin/auth/approval", nil, nil)
}
