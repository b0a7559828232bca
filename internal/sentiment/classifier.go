package sentiment

import (
	"context"
	"log/slog"

	"github.com/spacesedan/reviewpulse/internal/metrics"
	"github.com/spacesedan/reviewpulse/internal/models"
)

// maxClassifierInput caps the text submitted to the hosted model; the full
// review is still stored.
const maxClassifierInput = 512

// Confidence reported when the hosted classifier produces nothing usable.
const degradedConfidence = 0.5

// Provider is the hosted classification backend. Implementations must be
// safe for concurrent use; the handle is shared across requests.
type Provider interface {
	Predict(ctx context.Context, text string) (models.ClassifierPrediction, error)
}

type Classifier struct {
	provider Provider
}

func NewClassifier(provider Provider) *Classifier {
	return &Classifier{provider: provider}
}

// Classify returns a canonical sentiment for the review. It never fails
// outward: a provider error degrades to the neutral default, which still
// passes through the keyword override so strongly worded reviews keep
// their polarity. The degraded return reports whether the hosted model
// served the prediction.
func (c *Classifier) Classify(ctx context.Context, text string, lang models.Language) (models.SentimentResult, bool) {
	submitted := text
	if runes := []rune(text); len(runes) > maxClassifierInput {
		submitted = string(runes[:maxClassifierInput])
		slog.Debug("[Classifier] Input truncated for classification",
			slog.Bool("truncated", true),
			slog.Int("original_length", len(runes)),
			slog.Int("submitted_length", maxClassifierInput))
	}

	sentiment := models.SentimentNeutral
	confidence := degradedConfidence
	degraded := false

	prediction, err := c.provider.Predict(ctx, submitted)
	if err != nil {
		degraded = true
		metrics.RecordClassifierDegradation()
		slog.Warn("[Classifier] Hosted model unavailable, using neutral default",
			slog.String("error", err.Error()))

		if lang == models.LanguageEnglish {
			compound, label := AdvisoryScore(text)
			slog.Warn("[Classifier] Local advisory score for degraded request",
				slog.Float64("vader_compound", compound),
				slog.String("vader_label", label))
		}
	} else {
		sentiment = NormalizeLabel(prediction.Label)
		confidence = clamp01(prediction.Score)
	}

	finalSentiment, finalConfidence := ApplyHeuristic(text, lang, sentiment, confidence)
	if finalSentiment != sentiment || finalConfidence != confidence {
		metrics.RecordHeuristicOverride()
		slog.Info("[Classifier] Keyword override applied",
			slog.String("model_sentiment", string(sentiment)),
			slog.String("final_sentiment", string(finalSentiment)),
			slog.Float64("final_confidence", finalConfidence))
	}

	return models.SentimentResult{
		Sentiment:       finalSentiment,
		ConfidenceScore: finalConfidence,
	}, degraded
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
