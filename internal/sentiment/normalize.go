package sentiment

import (
	"strings"

	"github.com/spacesedan/reviewpulse/internal/models"
)

// NormalizeLabel maps a raw classifier label onto the canonical three-way
// sentiment. Star-rating labels ("4 stars", "5 STARS") are resolved before
// categorical ones, so a label carrying both formats is decided by its
// rating.
func NormalizeLabel(raw string) models.Sentiment {
	label := strings.ToUpper(strings.TrimSpace(raw))

	if strings.Contains(label, "STAR") {
		if digit, ok := firstDigit(label); ok {
			switch {
			case digit >= 4:
				return models.SentimentPositive
			case digit == 3:
				return models.SentimentNeutral
			default:
				return models.SentimentNegative
			}
		}
		switch {
		case strings.Contains(label, "5"), strings.Contains(label, "4"):
			return models.SentimentPositive
		case strings.Contains(label, "1"), strings.Contains(label, "2"):
			return models.SentimentNegative
		default:
			return models.SentimentNeutral
		}
	}

	switch {
	case strings.Contains(label, "POSITIVE"):
		return models.SentimentPositive
	case strings.Contains(label, "NEGATIVE"):
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func firstDigit(s string) (int, bool) {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return int(r - '0'), true
		}
	}
	return 0, false
}
