package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/spacesedan/reviewpulse/internal/models"
)

const (
	HF_INFERENCE_BASE = "https://api-inference.huggingface.co/models/"

	// Preferred multilingual model; covers Indonesian. The English model
	// substitutes when the multilingual one is unavailable at startup.
	PRIMARY_SENTIMENT_MODEL   = "nlptown/bert-base-multilingual-uncased-sentiment"
	SECONDARY_SENTIMENT_MODEL = "distilbert-base-uncased-finetuned-sst-2-english"
)

var (
	huggingFaceInstance *HuggingFaceClient
	huggingFaceOnce     sync.Once
)

type HuggingFaceClient struct {
	Client *http.Client
	token  string
	model  string
}

// GetHuggingFaceClient initializes the classifier client once per process.
// Model selection happens here, not per request: the multilingual model is
// probed first and the English model substitutes for the process lifetime
// when it is unavailable. Panics when neither model answers.
func GetHuggingFaceClient() *HuggingFaceClient {
	huggingFaceOnce.Do(func() {
		token := os.Getenv("HUGGINGFACE_API_KEY")
		if token == "" {
			slog.Info("[HuggingFaceClient] No HUGGINGFACE_API_KEY set, using anonymous access")
		}

		client := &HuggingFaceClient{
			Client: &http.Client{
				Timeout: 15 * time.Second,
			},
			token: token,
		}
		client.model = client.selectModel()

		huggingFaceInstance = client
	})
	return huggingFaceInstance
}

func (h *HuggingFaceClient) selectModel() string {
	for _, model := range []string{PRIMARY_SENTIMENT_MODEL, SECONDARY_SENTIMENT_MODEL} {
		if err := h.probeModel(model); err != nil {
			slog.Warn("[HuggingFaceClient] Sentiment model unavailable",
				slog.String("model", model),
				slog.String("error", err.Error()))
			continue
		}

		slog.Info("[HuggingFaceClient] Sentiment model selected",
			slog.String("model", model))
		return model
	}

	slog.Error("[HuggingFaceClient] No sentiment model available")
	panic("[HuggingFaceClient] No sentiment model available")
}

// probeModel checks that the inference endpoint knows the model. A 503
// means the model exists but is still loading, which counts as available.
func (h *HuggingFaceClient) probeModel(model string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := h.newInferenceRequest(ctx, model, models.ClassifierRequest{Inputs: "ok"})
	if err != nil {
		return err
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusServiceUnavailable {
		return nil
	}
	return fmt.Errorf("probe returned status code %d", resp.StatusCode)
}

// HealthCheck reports whether the selected model still answers; consumed
// by the background provider monitor.
func (h *HuggingFaceClient) HealthCheck() bool {
	return h.probeModel(h.model) == nil
}

// Predict submits the text to the selected model and returns its best
// single prediction. Which model served the request is not exposed.
func (h *HuggingFaceClient) Predict(ctx context.Context, text string) (models.ClassifierPrediction, error) {
	var prediction models.ClassifierPrediction

	start := time.Now()
	resp, err := h.doWithRetry(ctx, func() (*http.Request, error) {
		return h.newInferenceRequest(ctx, h.model, models.ClassifierRequest{Inputs: text})
	})
	if err != nil {
		slog.Error("[HuggingFaceClient] Classification request failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return prediction, fmt.Errorf("classification request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return prediction, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return prediction, fmt.Errorf("classification returned status code %d", resp.StatusCode)
	}

	prediction, err = parseBestPrediction(respBody)
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed to parse classifier response",
			getPreview(respBody),
			slog.Int("raw_response_length", len(respBody)))
		return prediction, err
	}

	slog.Info("[HuggingFaceClient] Classification request successful",
		slog.Duration("elapsed", time.Since(start)))
	return prediction, nil
}

func (h *HuggingFaceClient) newInferenceRequest(ctx context.Context, model string, input interface{}) (*http.Request, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, HF_INFERENCE_BASE+model, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	return req, nil
}

// doWithRetry retries 5xx responses and transport errors with doubling
// backoff. The request is rebuilt per attempt so the body can be re-read.
func (h *HuggingFaceClient) doWithRetry(ctx context.Context, build func() (*http.Request, error)) (*http.Response, error) {
	var resp *http.Response
	var err error
	backoff := INITIAL_BACKOFF

	for attempt := 0; attempt < MAX_RETRIES; attempt++ {
		var req *http.Request
		req, err = build()
		if err != nil {
			return nil, err
		}

		resp, err = h.Client.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		if resp != nil {
			resp.Body.Close()
		}

		slog.Warn("[HuggingFaceClient] Request failed, will retry",
			slog.Int("attempt", attempt+1),
			slog.String("error", errMsg(err, resp)))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	if err == nil {
		err = fmt.Errorf("request failed after %d attempts: %s", MAX_RETRIES, errMsg(nil, resp))
	}
	return nil, err
}

// parseBestPrediction accepts both response shapes the inference API
// produces and returns the highest-scoring pair.
func parseBestPrediction(respBody []byte) (models.ClassifierPrediction, error) {
	var nested [][]models.ClassifierPrediction
	if err := json.Unmarshal(respBody, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return bestPrediction(nested[0]), nil
	}

	var flat []models.ClassifierPrediction
	if err := json.Unmarshal(respBody, &flat); err == nil && len(flat) > 0 {
		return bestPrediction(flat), nil
	}

	return models.ClassifierPrediction{}, fmt.Errorf("malformed classifier response")
}

func bestPrediction(predictions []models.ClassifierPrediction) models.ClassifierPrediction {
	best := predictions[0]
	for _, p := range predictions[1:] {
		if p.Score > best.Score {
			best = p
		}
	}
	return best
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}

func errMsg(err error, resp *http.Response) string {
	if err != nil {
		return err.Error()
	}
	if resp != nil {
		return fmt.Sprintf("status code %d", resp.StatusCode)
	}
	return "unknown error"
}
