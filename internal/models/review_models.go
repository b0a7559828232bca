package models

import (
	"strings"
	"time"
)

// Language tags supported by the review intake UI.
type Language string

const (
	LanguageIndonesian Language = "id"
	LanguageEnglish    Language = "en"
)

// ParseLanguage maps a request language tag onto a supported language.
// Anything other than "en" falls back to Indonesian, the intake default.
func ParseLanguage(s string) Language {
	if strings.EqualFold(strings.TrimSpace(s), string(LanguageEnglish)) {
		return LanguageEnglish
	}
	return LanguageIndonesian
}

// Sentiment is the canonical three-way review polarity. Raw model labels
// never leave the classifier unnormalized.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

type AnalysisRequest struct {
	ReviewText string   `json:"review_text"`
	Language   Language `json:"language,omitempty"`
}

type SentimentResult struct {
	Sentiment       Sentiment `json:"sentiment"`
	ConfidenceScore float64   `json:"confidence_score"`
}

// ReviewRecord is the persisted unit of analysis. ID and CreatedAt are
// assigned by the store on insert and immutable afterwards.
type ReviewRecord struct {
	ID              int64      `json:"id"`
	ReviewText      string     `json:"review_text"`
	Sentiment       Sentiment  `json:"sentiment"`
	ConfidenceScore float64    `json:"confidence_score"`
	KeyPoints       string     `json:"key_points"`
	CreatedAt       *time.Time `json:"created_at"`
}
