package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/reviewpulse/internal/analysis"
	"github.com/spacesedan/reviewpulse/internal/keypoints"
	"github.com/spacesedan/reviewpulse/internal/models"
	"github.com/spacesedan/reviewpulse/internal/sentiment"
)

type memoryStore struct {
	mu      sync.Mutex
	records []models.ReviewRecord
	nextID  int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{nextID: 1}
}

func (m *memoryStore) Insert(_ context.Context, record models.ReviewRecord) (models.ReviewRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record.ID = m.nextID
	m.nextID++
	now := time.Now().UTC().Truncate(time.Second)
	record.CreatedAt = &now
	m.records = append(m.records, record)
	return record, nil
}

func (m *memoryStore) List(_ context.Context) ([]models.ReviewRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.ReviewRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

type stubProvider struct{}

func (stubProvider) Predict(context.Context, string) (models.ClassifierPrediction, error) {
	return models.ClassifierPrediction{Label: "5 stars", Score: 0.93}, nil
}

type downExtractor struct{}

func (downExtractor) ExtractLLM(context.Context, string, models.Language) (string, error) {
	return "", errors.New("generative provider offline")
}

func newTestServer() *Server {
	analyzer := analysis.NewAnalyzer(
		sentiment.NewClassifier(stubProvider{}),
		downExtractor{},
		keypoints.ExtractFallback,
		newMemoryStore(),
		nil,
	)
	return New(":0", analyzer, nil, prometheus.NewRegistry())
}

func postAnalyze(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-review", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	handler := newTestServer().Handler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestCORSHeadersOnEveryResponse(t *testing.T) {
	handler := newTestServer().Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestOptionsPreflightShortCircuits(t *testing.T) {
	handler := newTestServer().Handler()

	req := httptest.NewRequest(http.MethodOptions, "/api/analyze-review", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Body.String())
}

func TestAnalyzeReviewValidation(t *testing.T) {
	handler := newTestServer().Handler()

	assert.Equal(t, http.StatusBadRequest, postAnalyze(t, handler, `{"review_text": ""}`).Code)
	assert.Equal(t, http.StatusBadRequest, postAnalyze(t, handler, `{"review_text": "   "}`).Code)
	assert.Equal(t, http.StatusBadRequest, postAnalyze(t, handler, `not json`).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/analyze-review", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAnalyzeReviewReturnsRecord(t *testing.T) {
	handler := newTestServer().Handler()

	rec := postAnalyze(t, handler, `{"review_text": "Kualitas bagus dan saya puas", "language": "id"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var record models.ReviewRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.Equal(t, int64(1), record.ID)
	assert.Equal(t, "Kualitas bagus dan saya puas", record.ReviewText)
	assert.Equal(t, models.SentimentPositive, record.Sentiment)
	assert.Equal(t, 0.93, record.ConfidenceScore)
	assert.NotEmpty(t, record.KeyPoints)
	assert.NotNil(t, record.CreatedAt)
}

// A record returned by the create endpoint must match what the list
// endpoint later serves for the same id.
func TestCreateListRoundTrip(t *testing.T) {
	handler := newTestServer().Handler()

	created := postAnalyze(t, handler, `{"review_text": "Battery life is great, price is fair.", "language": "en"}`)
	require.Equal(t, http.StatusOK, created.Code)

	var createdRecord models.ReviewRecord
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createdRecord))

	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var records []models.ReviewRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, createdRecord, records[0])
}

func TestListReviewsEmpty(t *testing.T) {
	handler := newTestServer().Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newTestServer().Handler()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
