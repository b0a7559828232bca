package clients

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/spacesedan/reviewpulse/internal/analysis"
	"github.com/spacesedan/reviewpulse/internal/models"
)

var (
	valkeyInstance *ValkeyClient
	valkeyOnce     sync.Once
)

const (
	VALKEY_ANALYSIS_PREFIX     = "review:analysis:"
	ANALYSIS_CACHE_TTL_SECONDS = 86400
)

// ValkeyClient caches finished analyses keyed by review content so a
// resubmitted review skips both external model calls.
type ValkeyClient struct {
	Client valkey.Client
}

// InitValkey connects the optional analysis cache. Returns nil when no
// VALKEY_INIT_ADDRESS is configured; the analyzer treats a nil cache as a
// permanent miss.
func InitValkey() *ValkeyClient {
	valkeyAddr := os.Getenv("VALKEY_INIT_ADDRESS")
	if valkeyAddr == "" {
		slog.Info("[ValkeyClient] No VALKEY_INIT_ADDRESS set, analysis cache disabled")
		return nil
	}

	valkeyOnce.Do(func() {
		valkeyPassword := os.Getenv("VALKEY_PASSWORD")
		useTLS := os.Getenv("VALKEY_TLS") == "true"

		opts := valkey.ClientOption{
			InitAddress: []string{
				valkeyAddr,
			},
			Password:         valkeyPassword,
			ConnWriteTimeout: 5 * time.Second,
			SelectDB:         0,
		}

		if useTLS {
			opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
		}

		client, err := valkey.NewClient(opts)
		if err != nil {
			panic(fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
		defer cancel()

		c := client.Do(ctx, client.B().Ping().Build())
		if c.Error() != nil {
			panic(fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", c.Error()))
		}

		slog.Info("[ValkeyClient] Successfully connected to valkey")

		valkeyInstance = &ValkeyClient{Client: client}
	})
	return valkeyInstance
}

func CloseValkey() {
	if valkeyInstance != nil {
		valkeyInstance.Client.Close()
	}
}

// Get fetches a cached analysis. Cache errors degrade to a miss.
func (vc *ValkeyClient) Get(ctx context.Context, lang models.Language, text string) (analysis.CachedAnalysis, bool) {
	var cached analysis.CachedAnalysis

	res := vc.DoWithRetry(ctx, vc.Client.B().Get().Key(cacheKey(lang, text)).Build(), 3)
	if err := res.Error(); err != nil {
		if !valkey.IsValkeyNil(err) {
			slog.Warn("[ValkeyClient] Cache lookup failed",
				slog.String("error", err.Error()))
		}
		return cached, false
	}

	raw, err := res.AsBytes()
	if err != nil {
		return cached, false
	}
	if err := json.Unmarshal(raw, &cached); err != nil {
		slog.Warn("[ValkeyClient] Failed to decode cached analysis",
			slog.String("error", err.Error()))
		return cached, false
	}

	return cached, true
}

// Set stores an analysis with a 24h TTL. Failures are logged, never
// surfaced; the cache is best-effort.
func (vc *ValkeyClient) Set(ctx context.Context, lang models.Language, text string, value analysis.CachedAnalysis) {
	payload, err := json.Marshal(value)
	if err != nil {
		slog.Warn("[ValkeyClient] Failed to encode analysis for cache",
			slog.String("error", err.Error()))
		return
	}

	key := cacheKey(lang, text)
	completed := []valkey.Completed{
		vc.Client.B().Set().Key(key).Value(string(payload)).Build(),
		vc.Client.B().Expire().Key(key).Seconds(ANALYSIS_CACHE_TTL_SECONDS).Build(),
	}

	responses := vc.DoMultiWithRetry(ctx, completed, 3)
	for _, res := range responses {
		if err := res.Error(); err != nil {
			slog.Warn("[ValkeyClient] Failed to cache analysis",
				slog.String("error", err.Error()))
			return
		}
	}
}

func cacheKey(lang models.Language, text string) string {
	sum := sha256.Sum256([]byte(string(lang) + ":" + text))
	return VALKEY_ANALYSIS_PREFIX + hex.EncodeToString(sum[:])
}

func (vc *ValkeyClient) DoMultiWithRetry(ctx context.Context, completed []valkey.Completed, retries int) []valkey.ValkeyResult {
	var results []valkey.ValkeyResult

	for i := 0; i < retries; i++ {
		results = vc.Client.DoMulti(ctx, completed...)
		hasErr := false
		for _, r := range results {
			if r.Error() != nil && !valkey.IsValkeyNil(r.Error()) {
				hasErr = true
				slog.Warn("[ValkeyClient] Do Multi failed",
					slog.Int("attempt", i+1),
					slog.String("error", r.Error().Error()))
				break
			}
		}
		if !hasErr {
			break
		}
		time.Sleep(time.Millisecond * 250)
	}

	return results
}

func (vc *ValkeyClient) DoWithRetry(ctx context.Context, completed valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		result = vc.Client.Do(ctx, completed)
		if result.Error() == nil || !isConnectionError(result.Error()) {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", result.Error().Error()))

		time.Sleep(250 * time.Millisecond)
	}

	return result
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
