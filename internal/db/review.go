package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spacesedan/reviewpulse/internal/models"
)

// ReviewRepository persists analysis records. Records are append-only:
// nothing updates or deletes a review once stored.
type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Insert stores one record and returns it with the store-assigned id and
// creation time.
func (r *ReviewRepository) Insert(ctx context.Context, record models.ReviewRecord) (models.ReviewRecord, error) {
	query := `
        INSERT INTO reviews (review_text, sentiment, confidence_score, key_points)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `

	var (
		id        int64
		createdAt time.Time
	)
	err := r.pool.QueryRow(ctx, query,
		record.ReviewText,
		string(record.Sentiment),
		record.ConfidenceScore,
		record.KeyPoints,
	).Scan(&id, &createdAt)
	if err != nil {
		return models.ReviewRecord{}, fmt.Errorf("insert review: %w", err)
	}

	record.ID = id
	record.CreatedAt = &createdAt
	return record, nil
}

// List returns all records in insertion order.
func (r *ReviewRepository) List(ctx context.Context) ([]models.ReviewRecord, error) {
	query := `
        SELECT id, review_text, sentiment, confidence_score, key_points, created_at
        FROM reviews
        ORDER BY id
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]models.ReviewRecord, 0)
	for rows.Next() {
		var (
			record    models.ReviewRecord
			sentiment string
			keyPoints *string
			createdAt time.Time
		)
		err := rows.Scan(&record.ID, &record.ReviewText, &sentiment, &record.ConfidenceScore, &keyPoints, &createdAt)
		if err != nil {
			slog.Warn("[DB] Failed to scan review row",
				slog.String("error", err.Error()))
			continue
		}

		record.Sentiment = models.Sentiment(sentiment)
		if keyPoints != nil {
			record.KeyPoints = *keyPoints
		}
		record.CreatedAt = &createdAt
		reviews = append(reviews, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	return reviews, nil
}
