package sentiment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/reviewpulse/internal/models"
)

type fakeProvider struct {
	prediction models.ClassifierPrediction
	err        error
	received   string
	calls      int
}

func (f *fakeProvider) Predict(_ context.Context, text string) (models.ClassifierPrediction, error) {
	f.calls++
	f.received = text
	return f.prediction, f.err
}

func TestClassifyConfidentPredictionPassesThrough(t *testing.T) {
	provider := &fakeProvider{prediction: models.ClassifierPrediction{Label: "3 stars", Score: 0.9}}
	classifier := NewClassifier(provider)

	result, degraded := classifier.Classify(context.Background(), "Biasa saja, tidak istimewa", models.LanguageIndonesian)

	assert.False(t, degraded)
	assert.Equal(t, models.SentimentNeutral, result.Sentiment)
	assert.Equal(t, 0.9, result.ConfidenceScore)
}

func TestClassifyLowConfidenceTriggersOverride(t *testing.T) {
	provider := &fakeProvider{prediction: models.ClassifierPrediction{Label: "NEUTRAL", Score: 0.4}}
	classifier := NewClassifier(provider)

	result, degraded := classifier.Classify(context.Background(), "Produk ini bagus, saya puas", models.LanguageIndonesian)

	assert.False(t, degraded)
	assert.Equal(t, models.SentimentPositive, result.Sentiment)
	assert.GreaterOrEqual(t, result.ConfidenceScore, 0.75)
}

func TestClassifyProviderFailureDegradesToNeutral(t *testing.T) {
	provider := &fakeProvider{err: errors.New("model timed out")}
	classifier := NewClassifier(provider)

	result, degraded := classifier.Classify(context.Background(), "barang sudah sampai", models.LanguageIndonesian)

	assert.True(t, degraded)
	assert.Equal(t, models.SentimentNeutral, result.Sentiment)
	assert.Equal(t, 0.5, result.ConfidenceScore)
}

// With the provider down, the neutral default still flows through the
// keyword override so strongly worded reviews keep their polarity.
func TestClassifyProviderFailureRecoversPolarityFromKeywords(t *testing.T) {
	provider := &fakeProvider{err: errors.New("connection refused")}
	classifier := NewClassifier(provider)

	result, degraded := classifier.Classify(context.Background(),
		"Produk ini sangat bagus, saya puas dan tidak menyesal membeli.", models.LanguageIndonesian)

	assert.True(t, degraded)
	assert.Equal(t, models.SentimentPositive, result.Sentiment)
	assert.GreaterOrEqual(t, result.ConfidenceScore, 0.75)
}

func TestClassifyTruncatesLongInput(t *testing.T) {
	provider := &fakeProvider{prediction: models.ClassifierPrediction{Label: "POSITIVE", Score: 0.99}}
	classifier := NewClassifier(provider)

	long := strings.Repeat("a", 2000)
	classifier.Classify(context.Background(), long, models.LanguageEnglish)

	require.Equal(t, 1, provider.calls)
	assert.Len(t, provider.received, 512)
}

func TestClassifyClampsOutOfRangeScore(t *testing.T) {
	provider := &fakeProvider{prediction: models.ClassifierPrediction{Label: "POSITIVE", Score: 1.7}}
	classifier := NewClassifier(provider)

	result, _ := classifier.Classify(context.Background(), "works fine", models.LanguageEnglish)
	assert.LessOrEqual(t, result.ConfidenceScore, 1.0)
	assert.GreaterOrEqual(t, result.ConfidenceScore, 0.0)
}
