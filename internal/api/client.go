// Package api holds the thin clients for the two remote services the
// storefront consumes: the pizza REST API (menu and orders) and the
// reverse-geocoding API. Both contracts are externally owned and treated
// as fixed. Clients check response status explicitly and normalize every
// failure into a ServiceError carrying a display message; there are no
// retries and no backoff, this is a UI convenience layer.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// errNotFound marks a 404 inside the transport helper so the caller can
// map it to the order-specific NotFoundError.
var errNotFound = errors.New("not found")

// Client talks to the storefront REST API.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *zap.SugaredLogger
}

// NewClient returns a client for the given base URL. Requests carry no
// client-side timeout: route loaders own cancellation via context.
func NewClient(baseURL string, log *zap.SugaredLogger) *Client {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{},
		log:     log,
	}
}

// envelope is the wire shape every endpoint responds with.
type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

// Menu fetches the full menu.
func (c *Client) Menu(ctx context.Context) ([]MenuItem, error) {
	var items []MenuItem
	if err := c.roundTrip(ctx, http.MethodGet, "/menu", nil, &items); err != nil {
		c.log.Warnw("menu fetch failed", "error", err)
		return nil, &ServiceError{Msg: "Couldn't fetch menu", Err: err}
	}
	c.log.Debugw("menu fetched", "items", len(items))
	return items, nil
}

// Order fetches a single order by id. A backend 404 becomes a
// NotFoundError so the route layer can render a distinguishable message.
func (c *Client) Order(ctx context.Context, id string) (Order, error) {
	var order Order
	err := c.roundTrip(ctx, http.MethodGet, "/order/"+id, nil, &order)
	if errors.Is(err, errNotFound) {
		c.log.Infow("order not found", "id", id)
		return Order{}, notFoundOrder(id)
	}
	if err != nil {
		c.log.Warnw("order fetch failed", "id", id, "error", err)
		return Order{}, &ServiceError{Msg: fmt.Sprintf("Couldn't fetch order #%s", id), Err: err}
	}
	return order, nil
}

// CreateOrder submits a new order and returns the created Order, including
// the backend-generated id.
func (c *Client) CreateOrder(ctx context.Context, payload OrderPayload) (Order, error) {
	var order Order
	if err := c.roundTrip(ctx, http.MethodPost, "/order", payload, &order); err != nil {
		c.log.Warnw("order creation failed", "customer", payload.CustomerName, "error", err)
		return Order{}, &ServiceError{Msg: "Failed creating your order", Err: err}
	}
	c.log.Infow("order created", "id", order.ID, "priority", order.Priority)
	return order, nil
}

// UpdateOrder PATCHes partial fields of an existing order and returns the
// updated Order. It reports failures to its caller like any other method;
// the route action that drives the priority toggle deliberately swallows
// the error (logged, surfaced as a no-op) per the storefront's policy.
func (c *Client) UpdateOrder(ctx context.Context, id string, patch OrderPatch) (Order, error) {
	var order Order
	if err := c.roundTrip(ctx, http.MethodPatch, "/order/"+id, patch, &order); err != nil {
		c.log.Warnw("order update failed", "id", id, "error", err)
		return Order{}, &ServiceError{Msg: fmt.Sprintf("Couldn't update order #%s", id), Err: err}
	}
	return order, nil
}

// roundTrip issues one JSON request and decodes the envelope's data field
// into out. Non-2xx statuses become errors; 404 maps to errNotFound.
func (c *Client) roundTrip(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	if out == nil {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("response has no data field")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}
