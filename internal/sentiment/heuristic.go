package sentiment

import (
	"strings"

	"github.com/spacesedan/reviewpulse/internal/models"
)

// Confidence below this triggers the keyword override.
const overrideThreshold = 0.6

const (
	positiveConfidenceFloor = 0.75
	negativeConfidenceFloor = 0.60
)

// ApplyHeuristic re-scores a low-confidence classification by tallying
// sentiment keywords in the review itself. The override only lifts
// confidence to a floor, never lowers it; a tied tally leaves the input
// untouched.
func ApplyHeuristic(text string, lang models.Language, sentiment models.Sentiment, confidence float64) (models.Sentiment, float64) {
	if confidence >= overrideThreshold {
		return sentiment, confidence
	}

	set, ok := overrideKeywords[lang]
	if !ok {
		set = overrideKeywords[models.LanguageIndonesian]
	}

	lowered := strings.ToLower(text)
	pos := countHits(lowered, set.positive)
	neg := countHits(lowered, set.negative)

	switch {
	case pos > neg:
		return models.SentimentPositive, max(confidence, positiveConfidenceFloor)
	case neg > pos:
		return models.SentimentNegative, max(confidence, negativeConfidenceFloor)
	default:
		return sentiment, confidence
	}
}
