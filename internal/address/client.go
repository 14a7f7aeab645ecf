package address

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client talks to the remote customer API. Every mutation returns the
// refreshed full collection; this client does not define the wire format's
// authority, only produces and consumes it.
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 5 * time.Second},
		BaseURL: baseURL,
	}
}

func (c *Client) do(ctx context.Context, method, customerID string, body any) ([]Address, error) {
	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, fmt.Sprintf("%s/customer/address", c.BaseURL), rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Customer-ID", customerID)

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("address api: %s", res.Status)
	}
	var list []Address
	if err := json.NewDecoder(res.Body).Decode(&list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) List(ctx context.Context, customerID string) ([]Address, error) {
	return c.do(ctx, http.MethodGet, customerID, nil)
}

func (c *Client) Add(ctx context.Context, customerID string, a Address) ([]Address, error) {
	return c.do(ctx, http.MethodPost, customerID, a)
}

func (c *Client) Edit(ctx context.Context, customerID string, a Address) ([]Address, error) {
	return c.do(ctx, http.MethodPut, customerID, a)
}

func (c *Client) Delete(ctx context.Context, customerID, addressID string) ([]Address, error) {
	return c.do(ctx, http.MethodDelete, customerID, map[string]string{"id": addressID})
}
