package affiliate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

func testPeriod(t *testing.T) domain.Period {
	t.Helper()
	p, err := domain.NewPeriod("2025-04-15", "2025-04-30")
	require.NoError(t, err)
	return p
}

func newTestClient(url string, retries int) *Client {
	c := NewClient(url, "secret", 2*time.Second, retries)
	c.retryDelay = time.Millisecond
	return c
}

func TestClient_FetchRecords(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/external/affiliates", r.URL.Path)
		gotQuery = map[string]string{
			"start_at": r.URL.Query().Get("start_at"),
			"end_at":   r.URL.Query().Get("end_at"),
			"key":      r.URL.Query().Get("key"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"affiliates":[
			{"username":"alice","wagered_amount":"1250.75"},
			{"username":"bob","wagered_amount":300},
			{"username":"carol","wagered_amount":null},
			{"username":"dave","wagered_amount":"oops"},
			{"username":"","wagered_amount":"10"}
		]}`))
	}))
	defer srv.Close()

	records, err := newTestClient(srv.URL, 0).FetchRecords(context.Background(), testPeriod(t))

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"start_at": "2025-04-15", "end_at": "2025-04-30", "key": "secret"}, gotQuery)
	require.Len(t, records, 4, "records without a username are dropped")
	assert.True(t, decimal.RequireFromString("1250.75").Equal(records[0].WageredAmount))
	assert.True(t, decimal.NewFromInt(300).Equal(records[1].WageredAmount))
	assert.True(t, records[2].WageredAmount.IsZero(), "missing amount is zero")
	assert.True(t, records[3].WageredAmount.IsZero(), "malformed amount is zero")
}

func TestClient_FetchRecords_DataArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"username":"alice","wagered_amount":"5"}]}`))
	}))
	defer srv.Close()

	records, err := newTestClient(srv.URL, 0).FetchRecords(context.Background(), testPeriod(t))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "alice", records[0].Username)
}

func TestClient_FetchRecords_EmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"affiliates":[]}`))
	}))
	defer srv.Close()

	records, err := newTestClient(srv.URL, 0).FetchRecords(context.Background(), testPeriod(t))

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestClient_FetchRecords_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"affiliates":[{"username":"alice","wagered_amount":"1"}]}`))
	}))
	defer srv.Close()

	records, err := newTestClient(srv.URL, 3).FetchRecords(context.Background(), testPeriod(t))

	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_FetchRecords_RetriesExhausted(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 2).FetchRecords(context.Background(), testPeriod(t))

	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.Contains(t, err.Error(), "max retries exceeded")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_FetchRecords_ClientErrorNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid key"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 3).FetchRecords(context.Background(), testPeriod(t))

	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.Contains(t, err.Error(), "401")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_FetchRecords_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 0).FetchRecords(context.Background(), testPeriod(t))

	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestClient_FetchRecords_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 5)
	c.retryDelay = time.Second
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.FetchRecords(ctx, testPeriod(t))

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
