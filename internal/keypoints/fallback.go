package keypoints

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spacesedan/reviewpulse/internal/models"
)

const maxBullets = 5

var sentenceEndPattern = regexp.MustCompile(`[.!?]\s+`)

// ExtractFallback synthesizes key points without the generative model. It
// always returns at least one bullet and is deterministic: identical input
// yields identical output.
func ExtractFallback(text string, lang models.Language) string {
	voc := vocabularyFor(lang)
	lowered := strings.ToLower(strings.TrimSpace(text))

	pos := countHits(lowered, voc.positive)
	neg := countHits(lowered, voc.negative)

	var bullets []string

	// Aspect bullets are only emitted on positive-dominant reviews; the
	// negative side intentionally has no aspect template.
	if pos > neg {
		for _, a := range voc.aspects {
			if strings.Contains(lowered, a.keyword) {
				bullets = append(bullets, fmt.Sprintf(voc.aspectTemplate, a.display))
			}
		}
	}

	switch {
	case pos > neg:
		if strings.Contains(lowered, voc.emphatic) {
			bullets = append(bullets, voc.emphaticBullet)
		} else if pos > 0 {
			bullets = append(bullets, voc.satisfactionBullet)
		}
	case neg > pos:
		bullets = append(bullets, voc.dissatisfactionBullet)
	}

	// Recommendation wording earns a bullet regardless of the tally.
	if containsAny(lowered, voc.recommendation) {
		bullets = append(bullets, voc.recommendationBullet)
	}

	bullets = dedupe(bullets)
	if len(bullets) > maxBullets {
		bullets = bullets[:maxBullets]
	}

	if len(bullets) == 0 {
		if sentence := firstSentence(text); sentence != "" {
			bullets = append(bullets, sentence)
		} else {
			bullets = append(bullets, voc.genericBullet)
		}
	}

	for i, b := range bullets {
		bullets[i] = "- " + b
	}
	return strings.Join(bullets, "\n")
}

func dedupe(bullets []string) []string {
	seen := make(map[string]struct{}, len(bullets))
	out := bullets[:0]
	for _, b := range bullets {
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	return out
}

// firstSentence returns the first non-empty sentence of the review, split
// on sentence-ending punctuation followed by whitespace.
func firstSentence(text string) string {
	for _, part := range sentenceEndPattern.Split(strings.TrimSpace(text), -1) {
		part = strings.TrimSpace(strings.TrimRight(part, ".!?"))
		if part != "" {
			return part
		}
	}
	return ""
}
