package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-adoption-platform/internal/adapters/storage"
	"pet-adoption-platform/internal/adapters/storage/memory"
	"pet-adoption-platform/internal/router"
	"pet-adoption-platform/internal/seed"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
	Notices []notice        `json:"notices"`
}

type apiError struct {
	Code    string            `json:"code"`
	Details map[string]string `json:"details"`
}

type notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

func (e envelope) titles() []string {
	out := make([]string, 0, len(e.Notices))
	for _, n := range e.Notices {
		out = append(out, n.Title)
	}
	return out
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	repos := storage.FromMemory(memory.New())
	_, err := seed.Apply(context.Background(), repos.SeedTarget(), time.Now(), bcrypt.MinCost, nil)
	require.NoError(t, err)

	ts := httptest.NewServer(router.NewRouter(router.Options{
		Repos:      repos,
		Registry:   prometheus.NewRegistry(),
		BcryptCost: bcrypt.MinCost,
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_AdoptionFlow(t *testing.T) {
	ts := newServer(t)

	// 1) A se registra y publica a Rex
	ownerSession := register(t, ts.URL, "Ana", "ana@example.com")
	var pet struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	st, env := doReq(t, ts.URL, "POST", "/pets", ownerSession, map[string]any{
		"name": "Rex", "type": "Dog", "breed": "Mixed", "age": 2, "gender": "Male", "size": "Medium",
	})
	require.Equal(t, http.StatusCreated, st)
	decode(t, env, &pet)
	require.NotEmpty(t, pet.ID)
	assert.Equal(t, "available", pet.Status)

	// 2) B se registra y envía solicitud
	applicantSession := register(t, ts.URL, "Bo", "bo@example.com")
	st, env = doReq(t, ts.URL, "POST", "/pets/"+pet.ID+"/adoption-requests", applicantSession, map[string]any{
		"phone": "555-0100", "address": "1 Main St", "reason": "Big yard", "has_children": true,
	})
	require.Equal(t, http.StatusCreated, st)
	var req struct {
		ID        string `json:"id"`
		Status    string `json:"status"`
		Applicant struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"applicant"`
	}
	decode(t, env, &req)
	assert.Equal(t, "pending", req.Status)
	assert.Equal(t, "Bo", req.Applicant.Name)
	assert.Equal(t, "bo@example.com", req.Applicant.Email)

	// 3) B no puede decidir sobre su propia solicitud
	st, _ = doReq(t, ts.URL, "POST", "/adoption-requests/"+req.ID+"/decision", applicantSession, map[string]any{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, st)

	// 4) A aprueba
	st, env = doReq(t, ts.URL, "POST", "/adoption-requests/"+req.ID+"/decision", ownerSession, map[string]any{"status": "approved"})
	require.Equal(t, http.StatusOK, st)
	assert.Contains(t, env.titles(), "Adoption approved")

	// 5) Exactamente una solicitud aprobada y Rex adoptado
	st, env = doReq(t, ts.URL, "GET", "/me/adoption-requests/received", ownerSession, nil)
	require.Equal(t, http.StatusOK, st)
	var received []struct {
		Status string `json:"status"`
	}
	decode(t, env, &received)
	require.Len(t, received, 1)
	assert.Equal(t, "approved", received[0].Status)

	st, env = doReq(t, ts.URL, "GET", "/pets/"+pet.ID, "", nil)
	require.Equal(t, http.StatusOK, st)
	decode(t, env, &pet)
	assert.Equal(t, "adopted", pet.Status)

	// 6) Nadie puede volver a solicitarlo
	st, _ = doReq(t, ts.URL, "POST", "/pets/"+pet.ID+"/adoption-requests", applicantSession, map[string]any{
		"phone": "555-0100", "address": "1 Main St", "reason": "Again",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, st)
}

func TestHTTP_CartClampsToStock(t *testing.T) {
	ts := newServer(t)

	// Sin sesión previa: el carrito arranca una anónima y la devuelve en el header
	resp := rawReq(t, ts.URL, "POST", "/cart/items", "", map[string]any{"product_id": "prod1", "quantity": 60})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cartSession := resp.Header.Get("X-Session-ID")
	require.NotEmpty(t, cartSession)

	env := readEnvelope(t, resp)
	var line struct {
		Quantity int  `json:"quantity"`
		Clamped  bool `json:"clamped"`
	}
	decode(t, env, &line)
	assert.Equal(t, 50, line.Quantity)
	assert.True(t, line.Clamped)
	assert.Equal(t, []string{"Stock Limit", "Added to Cart"}, env.titles())

	st, env := doReq(t, ts.URL, "GET", "/cart", cartSession, nil)
	require.Equal(t, http.StatusOK, st)
	var cart struct {
		Count int    `json:"count"`
		Total string `json:"total"`
	}
	decode(t, env, &cart)
	assert.Equal(t, 50, cart.Count)
	assert.Equal(t, "2999.5", cart.Total)
}

func TestHTTP_BookingWhileLoggedOutDeclines(t *testing.T) {
	ts := newServer(t)

	st, env := doReq(t, ts.URL, "POST", "/appointments", "", map[string]any{
		"pet_name": "Max", "service_id": "treat1",
		"date": time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02"), "time": "10:00 AM",
	})
	assert.Equal(t, http.StatusUnauthorized, st)
	assert.Equal(t, []string{"Login Required"}, env.titles())

	st, _ = doReq(t, ts.URL, "GET", "/appointments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, st)
}

func TestHTTP_BookAndCancelAppointment(t *testing.T) {
	ts := newServer(t)
	sess := register(t, ts.URL, "Ana", "ana@example.com")

	st, env := doReq(t, ts.URL, "POST", "/appointments", sess, map[string]any{
		"pet_name": "Max", "service_id": "treat2",
		"date": time.Now().UTC().AddDate(0, 0, 3).Format("2006-01-02"), "time": "9:15 am",
	})
	require.Equal(t, http.StatusCreated, st)
	var appt struct {
		ID      string `json:"id"`
		Time    string `json:"time"`
		Status  string `json:"status"`
		Service struct {
			Name string `json:"name"`
		} `json:"service"`
	}
	decode(t, env, &appt)
	assert.Equal(t, "9:15 AM", appt.Time)
	assert.Equal(t, "Vaccinations", appt.Service.Name)

	other := register(t, ts.URL, "Bo", "bo@example.com")
	st, _ = doReq(t, ts.URL, "POST", "/appointments/"+appt.ID+"/cancel", other, nil)
	assert.Equal(t, http.StatusForbidden, st)

	st, env = doReq(t, ts.URL, "POST", "/appointments/"+appt.ID+"/cancel", sess, nil)
	require.Equal(t, http.StatusOK, st)
	decode(t, env, &appt)
	assert.Equal(t, "Cancelled", appt.Status)

	// una cita que no existe: no pasa nada y no hay aviso
	st, env = doReq(t, ts.URL, "POST", "/appointments/does-not-exist/cancel", sess, nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Equal(t, "null", string(env.Data))
	assert.Empty(t, env.Notices)
}

func TestHTTP_CheckoutRequiresLoginAndClearsCart(t *testing.T) {
	ts := newServer(t)
	sess := register(t, ts.URL, "Ana", "ana@example.com")

	payment := map[string]any{
		"name": "Ana", "email": "ana@example.com", "address": "1 Main St", "city": "Springfield",
		"postal_code": "12345", "country": "USA", "card_number": "4242 4242 4242 4242",
		"expiry_date": "12/29", "cvc": "123",
	}

	st, _ := doReq(t, ts.URL, "POST", "/checkout", sess, payment)
	assert.Equal(t, http.StatusUnprocessableEntity, st, "empty cart")

	st, _ = doReq(t, ts.URL, "POST", "/cart/items", sess, map[string]any{"product_id": "prod2", "quantity": 2})
	require.Equal(t, http.StatusOK, st)

	st, env := doReq(t, ts.URL, "POST", "/checkout", sess, payment)
	require.Equal(t, http.StatusCreated, st)
	assert.Contains(t, env.titles(), "Order Placed!")

	st, env = doReq(t, ts.URL, "GET", "/cart", sess, nil)
	require.Equal(t, http.StatusOK, st)
	var cart struct {
		Count int `json:"count"`
	}
	decode(t, env, &cart)
	assert.Zero(t, cart.Count)
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	ts := newServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "http_requests_total")
}

func register(t *testing.T, baseURL, name, email string) string {
	t.Helper()
	st, env := doReq(t, baseURL, "POST", "/auth/register", "", map[string]any{
		"name": name, "email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, st)

	var resp struct {
		SessionID string `json:"session_id"`
	}
	decode(t, env, &resp)
	require.NotEmpty(t, resp.SessionID)
	return resp.SessionID
}

func doReq(t *testing.T, baseURL, method, path, sessionID string, payload any) (int, envelope) {
	t.Helper()
	resp := rawReq(t, baseURL, method, path, sessionID, payload)
	return resp.StatusCode, readEnvelope(t, resp)
}

func rawReq(t *testing.T, baseURL, method, path, sessionID string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.Header.Set("Authorization", "Bearer "+sessionID)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func readEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), "body=%s", string(raw))
	return env
}

func decode(t *testing.T, env envelope, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dst), "data=%s", string(env.Data))
}
