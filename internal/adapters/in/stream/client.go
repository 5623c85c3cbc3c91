// Package stream implements the live synchronization client. The billing
// backend pushes JSON envelopes over a websocket whenever an order changes
// behind the operator's back; the client converts them into sync event
// commands and applies them to the live sessions.
//
// The connection is supervised: on any dial or read failure the client
// reconnects with exponential backoff (doubling, capped), and the backoff
// state is reset as soon as a message parses successfully. Malformed
// envelopes are dropped without touching the backoff state.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"packing/internal/core/application/usecases/commands"
	"packing/internal/core/domain/model/order"
	"packing/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
)

const (
	initialReconnectDelay = time.Second
	maxReconnectDelay     = 30 * time.Second
)

// eventDispatcher applies one sync event command to the live sessions.
type eventDispatcher interface {
	Handle(ctx context.Context, command commands.ApplySyncEventCommand) error
}

// dialer abstracts websocket dialing so tests can inject failures.
type dialer interface {
	DialContext(ctx context.Context, urlStr string, requestHeader http.Header) (*websocket.Conn, *http.Response, error)
}

// envelope is the backend's push message shape.
type envelope struct {
	Event   string `json:"event"`
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// Wire event discriminators, matching the billing status vocabulary.
const (
	eventStatusChanged  = "STATUS_CHANGED"
	eventOrderCorrected = "ORDER_CORRECTED"
)

// Client maintains the websocket subscription and feeds parsed events to the
// dispatcher. Create with NewClient, start with Start, stop with Close.
type Client struct {
	url        string
	dialer     dialer
	dispatcher eventDispatcher
	logger     *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// NewClient creates a sync client for the given websocket URL.
func NewClient(url string, dispatcher eventDispatcher, logger *slog.Logger) (*Client, error) {
	if url == "" {
		return nil, errs.NewValueIsRequiredError("url")
	}
	if dispatcher == nil {
		return nil, errs.NewValueIsRequiredError("dispatcher")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Client{
		url:        url,
		dialer:     websocket.DefaultDialer,
		dispatcher: dispatcher,
		logger:     logger.With("component", "sync-stream"),
	}, nil
}

// Start launches the supervised connection loop in a background goroutine.
func (c *Client) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan struct{})

	go c.run(ctx)
}

// Close cancels any pending reconnect, drops the connection, and waits for the
// loop to finish. Safe to call more than once.
func (c *Client) Close() {
	c.once.Do(func() {
		if c.cancel != nil {
			c.cancel()
			<-c.done
		}
	})
}

// newReconnectPolicy builds the reconnect schedule: delays start at one
// second, double on every consecutive failure and stay at the thirty second
// ceiling. No jitter and no give-up deadline; the client reconnects until
// Close. Reset returns the schedule to the one second base.
func newReconnectPolicy() *backoff.ExponentialBackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = initialReconnectDelay
	policy.MaxInterval = maxReconnectDelay
	policy.Multiplier = 2
	policy.RandomizationFactor = 0
	policy.MaxElapsedTime = 0
	policy.Reset()
	return policy
}

func (c *Client) run(ctx context.Context) {
	defer close(c.done)

	policy := newReconnectPolicy()

	for {
		if err := c.consume(ctx, policy); err != nil {
			c.logger.Warn("connection lost", "error", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(policy.NextBackOff()):
		}
	}
}

// consume dials once and reads envelopes until the connection fails.
func (c *Client) consume(ctx context.Context, policy *backoff.ExponentialBackOff) error {
	conn, resp, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.url, err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	defer func() { _ = conn.Close() }()

	// Unblock the blocking read when Close is called
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	c.logger.Info("connected", "url", c.url)

	for {
		_, payload, readErr := conn.ReadMessage()
		if readErr != nil {
			if ctx.Err() != nil {
				return nil
			}
			return readErr
		}

		command, parseErr := parseEnvelope(payload)
		if parseErr != nil {
			// Malformed envelopes are dropped and leave the backoff state alone
			continue
		}
		policy.Reset()

		if dispatchErr := c.dispatcher.Handle(ctx, command); dispatchErr != nil {
			c.logger.Warn("event not applied",
				"order_id", command.OrderID(), "error", dispatchErr)
		}
	}
}

// parseEnvelope converts a raw payload into a sync event command.
func parseEnvelope(payload []byte) (commands.ApplySyncEventCommand, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return commands.ApplySyncEventCommand{}, err
	}

	switch env.Event {
	case eventStatusChanged:
		status, err := order.StatusFromWire(env.Status)
		if err != nil {
			return commands.ApplySyncEventCommand{}, err
		}
		return commands.NewStatusChangedSyncEvent(env.OrderID, status)
	case eventOrderCorrected:
		return commands.NewOrderCorrectedSyncEvent(env.OrderID)
	default:
		return commands.ApplySyncEventCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"event", fmt.Errorf("%q is not a known sync event", env.Event))
	}
}
