package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/spacesedan/reviewpulse/internal/metrics"
	"github.com/spacesedan/reviewpulse/internal/models"
)

// SentimentClassifier produces a canonical sentiment for a review. The
// degraded return reports that the hosted model did not serve the result.
type SentimentClassifier interface {
	Classify(ctx context.Context, text string, lang models.Language) (models.SentimentResult, bool)
}

// KeyPointExtractor is the generative path; an error routes the request to
// the rule-based fallback.
type KeyPointExtractor interface {
	ExtractLLM(ctx context.Context, text string, lang models.Language) (string, error)
}

// FallbackExtractor always succeeds.
type FallbackExtractor func(text string, lang models.Language) string

// ReviewStore persists finished analyses. Insert returns the record with
// its store-assigned id and creation time filled in.
type ReviewStore interface {
	Insert(ctx context.Context, record models.ReviewRecord) (models.ReviewRecord, error)
	List(ctx context.Context) ([]models.ReviewRecord, error)
}

// CachedAnalysis holds only the model-derived fields; ids and timestamps
// always come from the store so cached hits still produce new records.
type CachedAnalysis struct {
	Sentiment       models.Sentiment `json:"sentiment"`
	ConfidenceScore float64          `json:"confidence_score"`
	KeyPoints       string           `json:"key_points"`
}

// Cache is the optional analysis cache keyed by review content. Failures
// are swallowed by implementations; a miss just re-runs the pipeline.
type Cache interface {
	Get(ctx context.Context, lang models.Language, text string) (CachedAnalysis, bool)
	Set(ctx context.Context, lang models.Language, text string, value CachedAnalysis)
}

// Analyzer is the composition root for one review analysis.
type Analyzer struct {
	classifier SentimentClassifier
	extractor  KeyPointExtractor
	fallback   FallbackExtractor
	store      ReviewStore
	cache      Cache // nil when no cache is configured
}

func NewAnalyzer(classifier SentimentClassifier, extractor KeyPointExtractor, fallback FallbackExtractor, store ReviewStore, cache Cache) *Analyzer {
	return &Analyzer{
		classifier: classifier,
		extractor:  extractor,
		fallback:   fallback,
		store:      store,
		cache:      cache,
	}
}

// Analyze classifies the review, extracts key points, and persists the
// assembled record. The two sub-analyses have no data dependency and run
// concurrently; assembly waits for both. Analysis itself never fails, so
// the only error is a persistence failure.
func (a *Analyzer) Analyze(ctx context.Context, text string, lang models.Language) (models.ReviewRecord, error) {
	start := time.Now()

	if cached, ok := a.lookupCache(ctx, lang, text); ok {
		slog.Info("[Analyzer] Serving analysis from cache")
		return a.persist(ctx, text, models.SentimentResult{
			Sentiment:       cached.Sentiment,
			ConfidenceScore: cached.ConfidenceScore,
		}, cached.KeyPoints)
	}

	var (
		wg               sync.WaitGroup
		sentimentOutcome Outcome[models.SentimentResult]
		keyPointOutcome  Outcome[string]
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		sentimentOutcome = a.classifySentiment(ctx, text, lang)
	}()
	go func() {
		defer wg.Done()
		keyPointOutcome = a.extractKeyPoints(ctx, text, lang)
	}()
	wg.Wait()

	if sentimentOutcome.Status != StatusSuccess || keyPointOutcome.Status != StatusSuccess {
		slog.Warn("[Analyzer] Analysis completed with degraded components",
			slog.String("sentiment_status", sentimentOutcome.Status.String()),
			slog.String("keypoints_status", keyPointOutcome.Status.String()))
	}

	a.storeCache(ctx, lang, text, CachedAnalysis{
		Sentiment:       sentimentOutcome.Value.Sentiment,
		ConfidenceScore: sentimentOutcome.Value.ConfidenceScore,
		KeyPoints:       keyPointOutcome.Value,
	})

	metrics.ObserveAnalysis(time.Since(start))

	return a.persist(ctx, text, sentimentOutcome.Value, keyPointOutcome.Value)
}

// List returns every persisted record in insertion order.
func (a *Analyzer) List(ctx context.Context) ([]models.ReviewRecord, error) {
	return a.store.List(ctx)
}

func (a *Analyzer) classifySentiment(ctx context.Context, text string, lang models.Language) Outcome[models.SentimentResult] {
	result, degraded := a.classifier.Classify(ctx, text, lang)
	if degraded {
		return Degraded(result, "hosted classifier unavailable")
	}
	return Success(result)
}

func (a *Analyzer) extractKeyPoints(ctx context.Context, text string, lang models.Language) Outcome[string] {
	if a.extractor == nil {
		metrics.RecordKeyPointFallback()
		return Unavailable(a.fallback(text, lang), "generative extractor not configured")
	}

	points, err := a.extractor.ExtractLLM(ctx, text, lang)
	if err == nil {
		return Success(points)
	}

	metrics.RecordKeyPointFallback()
	slog.Warn("[Analyzer] Generative extraction failed, using rule-based fallback",
		slog.String("error", err.Error()))
	return Degraded(a.fallback(text, lang), err.Error())
}

func (a *Analyzer) persist(ctx context.Context, text string, result models.SentimentResult, keyPoints string) (models.ReviewRecord, error) {
	record, err := a.store.Insert(ctx, models.ReviewRecord{
		ReviewText:      text,
		Sentiment:       result.Sentiment,
		ConfidenceScore: result.ConfidenceScore,
		KeyPoints:       keyPoints,
	})
	if err != nil {
		return models.ReviewRecord{}, fmt.Errorf("persist review: %w", err)
	}
	return record, nil
}

func (a *Analyzer) lookupCache(ctx context.Context, lang models.Language, text string) (CachedAnalysis, bool) {
	if a.cache == nil {
		return CachedAnalysis{}, false
	}
	return a.cache.Get(ctx, lang, text)
}

func (a *Analyzer) storeCache(ctx context.Context, lang models.Language, text string, value CachedAnalysis) {
	if a.cache == nil {
		return
	}
	a.cache.Set(ctx, lang, text, value)
}
