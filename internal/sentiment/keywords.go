package sentiment

import (
	"strings"

	"github.com/spacesedan/reviewpulse/internal/models"
)

type keywordSet struct {
	positive []string
	negative []string
}

// Keyword lists for the low-confidence override. Hits are plain substring
// checks against the lowercased review, so multi-word entries like
// "tidak menyesal" count as their own hit on top of any overlap.
var overrideKeywords = map[models.Language]keywordSet{
	models.LanguageIndonesian: {
		positive: []string{"bagus", "puas", "suka", "mantap", "tidak menyesal", "bagus sekali", "rekomendasi"},
		negative: []string{"buruk", "kecewa", "menyesal", "tidak puas", "jelek"},
	},
	models.LanguageEnglish: {
		positive: []string{"good", "great", "satisfied", "happy", "recommend"},
		negative: []string{"bad", "poor", "disappointed", "regret", "not satisfied"},
	},
}

func countHits(lowered string, words []string) int {
	hits := 0
	for _, w := range words {
		if strings.Contains(lowered, w) {
			hits++
		}
	}
	return hits
}
