package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MonitorBoard/internal/query"
)

// fakeBackend serves canned bodies per path and records the raw queries.
type fakeBackend struct {
	mu      sync.Mutex
	status  int
	bodies  map[string]string
	queries []string
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.queries = append(b.queries, r.URL.Path+"?"+r.URL.RawQuery)
	status, body := b.status, b.bodies[r.URL.Path]
	b.mu.Unlock()
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (b *fakeBackend) lastQuery() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queries) == 0 {
		return ""
	}
	return b.queries[len(b.queries)-1]
}

func newTestClient(t *testing.T, b *fakeBackend) *APIClient {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	return NewAPIClient(srv.URL+"/api/", "", 5*time.Second, nil)
}

func TestFetch_SingleObjectNormalizesToOne(t *testing.T) {
	b := &fakeBackend{bodies: map[string]string{
		"/api/transfer-records": `{"code":200,"data":{"id":42,"tx_hash":"0xabc","amount":"1.5"}}`,
	}}
	c := newTestClient(t, b)

	p, err := c.GetTransferRecords(context.Background(), query.FilterSet{Limit: 5})
	require.NoError(t, err)
	items := Normalize(p)
	require.Len(t, items, 1)
	assert.Equal(t, int64(42), items[0].ID)
	assert.Equal(t, "/api/transfer-records?limit=5", b.lastQuery())
}

func TestFetch_List(t *testing.T) {
	b := &fakeBackend{bodies: map[string]string{
		"/api/notifications": `{"code":200,"data":[{"id":1,"status":"success"},{"id":2,"status":"failed"}]}`,
	}}
	c := newTestClient(t, b)

	p, err := c.GetNotifications(context.Background(), query.FilterSet{Limit: 30, Type: "ETH_ALERT", Stats: true})
	require.NoError(t, err)
	assert.Len(t, Normalize(p), 2)
	// list reads never carry the stats flag
	assert.Equal(t, "/api/notifications?limit=30&type=ETH_ALERT", b.lastQuery())
}

func TestFetch_ApplicationErrorOnHTTP200(t *testing.T) {
	b := &fakeBackend{bodies: map[string]string{
		"/api/transfer-records": `{"code":404,"data":null,"message":"not found"}`,
	}}
	c := newTestClient(t, b)

	_, err := c.GetTransferRecords(context.Background(), query.FilterSet{TxHash: "0xdead"})
	require.Error(t, err)
	var ae *ApplicationError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, 404, ae.Code)
	assert.Equal(t, "not found", err.Error())
	assert.False(t, IsTransport(err))
}

func TestFetch_ApplicationErrorFallbackMessage(t *testing.T) {
	b := &fakeBackend{bodies: map[string]string{
		"/api/tokens": `{"code":500}`,
	}}
	c := newTestClient(t, b)

	_, err := c.GetTokens(context.Background(), query.FilterSet{})
	require.Error(t, err)
	assert.True(t, IsApplication(err))
	assert.Equal(t, FallbackMessage, err.Error())
}

func TestFetch_TransportStatus(t *testing.T) {
	b := &fakeBackend{status: http.StatusBadGateway, bodies: map[string]string{
		"/api/tokens": `{"code":200,"data":[]}`,
	}}
	c := newTestClient(t, b)

	_, err := c.GetTokens(context.Background(), query.FilterSet{})
	require.Error(t, err)
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusBadGateway, te.StatusCode)
	assert.Contains(t, err.Error(), "502")
	assert.False(t, IsApplication(err))
}

func TestFetch_TransportUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := NewAPIClient(base, "", time.Second, nil)
	_, err := c.GetNotificationStats(context.Background())
	require.Error(t, err)
	assert.True(t, IsTransport(err))
}

func TestFetch_UndecodableBody(t *testing.T) {
	b := &fakeBackend{bodies: map[string]string{
		"/api/notifications": `<html>gateway</html>`,
	}}
	c := newTestClient(t, b)

	_, err := c.GetNotifications(context.Background(), query.FilterSet{})
	require.Error(t, err)
	assert.True(t, IsTransport(err))
}

func TestFetch_Stats(t *testing.T) {
	b := &fakeBackend{bodies: map[string]string{
		"/api/notifications": `{"code":200,"data":{"total":10,"success":8,"failed":2,"today":3,"by_type":[{"Type":"ETH_ALERT","Count":10}]}}`,
		"/api/tokens":        `{"code":200,"data":{"total":5,"honeypot_count":1,"risk_distribution":[{"RiskLevel":"low","Count":4}]}}`,
	}}
	c := newTestClient(t, b)

	ns, err := c.GetNotificationStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(8), ns.Success)
	require.Len(t, ns.ByType, 1)
	assert.Equal(t, "ETH_ALERT", ns.ByType[0].Type)
	assert.Equal(t, "/api/notifications?stats=1", b.lastQuery())

	ts, err := c.GetTokenDailyStats(context.Background(), time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(1), ts.HoneypotCount)
	assert.Equal(t, "/api/tokens?date=2025-02-10", b.lastQuery())
}

func TestFetch_ContextCancelled(t *testing.T) {
	b := &fakeBackend{bodies: map[string]string{"/api/tokens": `{"code":200,"data":[]}`}}
	c := newTestClient(t, b)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.GetTokens(ctx, query.FilterSet{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
