package payment

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// Client talks to the payment service over HTTP. It implements Gateway.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().SetBaseURL(baseURL),
	}
}

func (c *Client) CreateCheckoutSession(ctx context.Context, req Request) (Response, error) {
	var out Response
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Idempotency-Key", uuid.NewString()).
		SetBody(req).
		SetResult(&out).
		Post("/payment/create-checkout-session")
	if err != nil {
		return Response{}, fmt.Errorf("create checkout session: %w", err)
	}
	if resp.IsError() {
		return Response{}, fmt.Errorf("create checkout session: gateway returned %s", resp.Status())
	}
	return out, nil
}

func (c *Client) GetSessionStatus(ctx context.Context, sessionID string) (SessionStatus, error) {
	var out SessionStatus
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("session_id", sessionID).
		SetResult(&out).
		Get("/payment/session-status")
	if err != nil {
		return SessionStatus{}, fmt.Errorf("get session status: %w", err)
	}
	if resp.IsError() {
		return SessionStatus{}, fmt.Errorf("get session status: gateway returned %s", resp.Status())
	}
	return out, nil
}
