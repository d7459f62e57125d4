package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Authorization URL created",
			"data": {
				"authorization_url": "https://checkout.example/3ni40kt",
				"access_code": "3ni40kt",
				"reference": "ref-123"
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test_secret", 5*time.Second)
	res, err := c.Initialize(context.Background(), InitRequest{
		Email:       "customer@example.com",
		AmountMinor: 28000,
		Currency:    "GHS",
		Reference:   "ref-123",
		CallbackURL: "http://localhost:8080/api/checkout/callback",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/3ni40kt", res.AuthorizationURL)
	assert.Equal(t, "ref-123", res.Reference)
	assert.Equal(t, "Bearer sk_test_secret", gotAuth)
	assert.Equal(t, float64(28000), gotBody["amount"])
	assert.Equal(t, "GHS", gotBody["currency"])
}

func TestInitialize_ServerErrorIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test_secret", 5*time.Second)
	_, err := c.Initialize(context.Background(), InitRequest{AmountMinor: 1000})

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestInitialize_DeclaredFailureIsNotRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status": false, "message": "Invalid amount"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test_secret", 5*time.Second)
	_, err := c.Initialize(context.Background(), InitRequest{AmountMinor: 0})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "Invalid amount")
}

func TestInitialize_ConnectionRefusedIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := NewClient(srv.URL, "sk_test_secret", time.Second)
	_, err := c.Initialize(context.Background(), InitRequest{AmountMinor: 1000})

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/transaction/verify/ref-123", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {"status": "success", "amount": 28000, "currency": "GHS"}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test_secret", 5*time.Second)
	res, err := c.Verify(context.Background(), "ref-123")

	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, int64(28000), res.AmountMinor)
	assert.Equal(t, "GHS", res.Currency)
}

func TestVerify_AbandonedTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {"status": "abandoned", "amount": 28000, "currency": "GHS"}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test_secret", 5*time.Second)
	res, err := c.Verify(context.Background(), "ref-123")

	require.NoError(t, err)
	assert.NotEqual(t, StatusSuccess, res.Status)
}
