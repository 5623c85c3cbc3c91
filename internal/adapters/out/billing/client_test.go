package billing_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"packing/internal/adapters/out/billing"
	"packing/internal/core/domain/model/kernel"
	"packing/internal/core/domain/model/order"
	"packing/internal/core/domain/model/session"
	"packing/internal/core/domain/services"
	"packing/internal/core/ports"
	"packing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderPayload = `{
	"id": "100",
	"customerName": "ACME Pharmacy",
	"deliveryAddress": "1 Main St",
	"phone": "555-0100",
	"status": "NORMAL",
	"items": [
		{"itemKey": "X", "name": "Aspirin", "code": "C-X", "unitPrice": 3.2,
		 "batch": "B1", "expiry": "2027-06", "packageUnit": "box", "qty": 10}
	]
}`

func newReadySession(t *testing.T) *session.PackingSession {
	t.Helper()

	item, err := order.NewLineItem("X", "Aspirin", "C-X", 3.20, "B1", "2027-06", "box", 10)
	require.NoError(t, err)
	sourceOrder, err := order.NewSourceOrder("100", "ACME Pharmacy", "1 Main St", "555-0100",
		[]order.LineItem{item})
	require.NoError(t, err)

	orders := []*order.SourceOrder{sourceOrder}
	pooled, err := services.NewItemPooler().Build(orders)
	require.NoError(t, err)

	s, err := session.NewPackingSession(kernel.NewUUID(), "ACME Pharmacy", orders, pooled)
	require.NoError(t, err)

	c, err := s.CreateContainer()
	require.NoError(t, err)
	require.NoError(t, s.AssignItem(c.ID(), "X", 10))
	require.NoError(t, s.CompleteContainer(c.ID()))
	return s
}

func TestClient_GetOrder_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/orders/100", r.URL.Path)
		_, _ = w.Write([]byte(orderPayload))
	}))
	defer server.Close()

	client, err := billing.NewClient(server.URL)
	require.NoError(t, err)

	fetched, err := client.GetOrder(t.Context(), "100")
	require.NoError(t, err)

	assert.Equal(t, "100", fetched.ID())
	assert.Equal(t, "ACME Pharmacy", fetched.CustomerName())
	assert.Equal(t, order.Normal, fetched.Status())
	require.Len(t, fetched.Items(), 1)
	assert.Equal(t, "Aspirin", fetched.Items()[0].Name())
	assert.Equal(t, 10, fetched.Items()[0].Qty())
}

func TestClient_GetOrder_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := billing.NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.GetOrder(t.Context(), "999")
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestClient_GetOrder_MalformedStatusIsRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id": "100", "customerName": "ACME Pharmacy",
			"status": "SHIPPED",
			"items": [{"itemKey": "X", "name": "Aspirin", "code": "C-X", "qty": 1}]}`))
	}))
	defer server.Close()

	client, err := billing.NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.GetOrder(t.Context(), "100")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestClient_SubmitCompletion_PostsManifest(t *testing.T) {
	var payload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/consolidations", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"consolidatedSessionId": "CS-2024-0042"}`))
	}))
	defer server.Close()

	client, err := billing.NewClient(server.URL)
	require.NoError(t, err)

	s := newReadySession(t)
	consolidatedID, err := client.SubmitCompletion(t.Context(), s)
	require.NoError(t, err)
	assert.Equal(t, "CS-2024-0042", consolidatedID)

	assert.NotEmpty(t, payload["consolidationId"])
	assert.Equal(t, "ACME Pharmacy", payload["customerName"])
	assert.Equal(t, []any{"100"}, payload["orderIds"])

	containers, ok := payload["containers"].([]any)
	require.True(t, ok)
	require.Len(t, containers, 1)
	packed, ok := containers[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "C1", packed["id"])
	assert.Equal(t, false, packed["labeled"])

	lines, ok := packed["items"].([]any)
	require.True(t, ok)
	require.Len(t, lines, 1)
	line, ok := lines[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "X", line["itemKey"])
	assert.Equal(t, "Aspirin", line["name"])
	assert.Equal(t, "C-X", line["code"])
	assert.Equal(t, float64(10), line["qty"])

	sources, ok := line["sourceBreakdown"].([]any)
	require.True(t, ok)
	require.Len(t, sources, 1)
	portion, ok := sources[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "100", portion["orderId"])
	assert.Equal(t, float64(10), portion["qty"])
}

func TestClient_SubmitCompletion_FreshConsolidationIDPerAttempt(t *testing.T) {
	// A collision is surfaced to the caller; the operator's resubmission must
	// go out under a new consolidation id.
	var ids []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		ids = append(ids, payload["consolidationId"].(string))
		if len(ids) == 1 {
			w.WriteHeader(http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"consolidatedSessionId": "CS-2024-0042"}`))
	}))
	defer server.Close()

	client, err := billing.NewClient(server.URL)
	require.NoError(t, err)

	s := newReadySession(t)
	_, err = client.SubmitCompletion(t.Context(), s)
	require.ErrorIs(t, err, ports.ErrSessionIDCollision)

	consolidatedID, err := client.SubmitCompletion(t.Context(), s)
	require.NoError(t, err)
	assert.Equal(t, "CS-2024-0042", consolidatedID)
	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
}

func TestClient_SubmitCompletion_BackendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := billing.NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.SubmitCompletion(t.Context(), newReadySession(t))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrSessionIDCollision)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_SubmitReview_PostsEscalation(t *testing.T) {
	var payload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reviews", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := billing.NewClient(server.URL)
	require.NoError(t, err)

	err = client.SubmitReview(t.Context(), "100", "packer@wh.example", "X: damaged")
	require.NoError(t, err)

	assert.Equal(t, "100", payload["orderId"])
	assert.Equal(t, "packer@wh.example", payload["reporterEmail"])
	assert.Equal(t, "X: damaged", payload["summary"])
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := billing.NewClient("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
