package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"packing/internal/core/domain/model/order"
	"packing/internal/core/domain/model/session"
	"packing/internal/core/ports"
	"packing/internal/pkg/errs"
)

const defaultTimeout = 10 * time.Second

// Client talks to the billing backend over HTTP. It implements both
// ports.OrderClient and ports.FulfillmentClient; the backend exposes order
// reads and fulfillment writes on the same base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a billing client for the given base URL.
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

// GetOrder fetches one source order by its billing identifier.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*order.SourceOrder, error) {
	if orderID == "" {
		return nil, errs.NewValueIsRequiredError("orderID")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/orders/%s", c.baseURL, orderID), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, errs.NewObjectNotFoundError("orderID", orderID)
	default:
		return nil, unexpectedStatus(resp)
	}

	var dto orderDTO
	if err = json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("decode order %s: %w", orderID, err)
	}

	return dto.toDomain()
}

// SubmitCompletion posts the finished session's consolidation manifest and
// returns the consolidated session id the backend assigned. A fresh
// consolidation id is generated per call, so an operator resubmitting after
// ports.ErrSessionIDCollision goes out under a new id.
func (c *Client) SubmitCompletion(ctx context.Context, s *session.PackingSession) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}

	body, err := json.Marshal(consolidationFromSession(s))
	if err != nil {
		return "", err
	}

	resp, err := c.post(ctx, "/consolidations", body)
	if err != nil {
		return "", err
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusConflict:
		return "", ports.ErrSessionIDCollision
	default:
		return "", unexpectedStatus(resp)
	}

	var ack consolidationResponseDTO
	if err = json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return "", fmt.Errorf("decode consolidation response: %w", err)
	}

	return ack.ConsolidatedSessionID, nil
}

// SubmitReview escalates one source order for manual review.
func (c *Client) SubmitReview(ctx context.Context, orderID, reporterEmail, summary string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderID")
	}

	body, err := json.Marshal(reviewDTO{
		OrderID:       orderID,
		ReporterEmail: reporterEmail,
		Summary:       summary,
	})
	if err != nil {
		return err
	}

	resp, err := c.post(ctx, "/reviews", body)
	if err != nil {
		return err
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	default:
		return unexpectedStatus(resp)
	}
}

func (c *Client) post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}

func unexpectedStatus(resp *http.Response) error {
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("billing backend returned %d: %s", resp.StatusCode, payload)
}

func closeBody(resp *http.Response) {
	_ = resp.Body.Close()
}
