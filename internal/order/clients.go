package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client submits and fetches orders against the remote order endpoint. It
// satisfies Repository so the rest of the system cannot tell remote history
// from local history.
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

func (c *Client) Create(ctx context.Context, o *Order) error {
	body, err := json.Marshal(o)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/customer/orders", c.BaseURL), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Customer-ID", o.CustomerID)

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		return fmt.Errorf("order api: %s", res.Status)
	}
	var out PlaceOrderResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return err
	}
	if !out.Success {
		return fmt.Errorf("order api: submission rejected")
	}
	// The server may reassign fields (id, status); reflect what it stored.
	if out.Order != nil {
		*o = *out.Order
	}
	return nil
}

func (c *Client) List(ctx context.Context, customerID string) ([]Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/customer/orders", c.BaseURL), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Customer-ID", customerID)

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("order api: %s", res.Status)
	}
	var list []Order
	if err := json.NewDecoder(res.Body).Decode(&list); err != nil {
		return nil, err
	}
	return list, nil
}
