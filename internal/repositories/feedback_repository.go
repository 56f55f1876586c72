package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sadrozzy/global-hub-real-estate/internal/models"
)

// FeedbackStore persists contact-form submissions.
type FeedbackStore interface {
	Create(ctx context.Context, fb models.Feedback) (models.Feedback, error)
}

// FeedbackRepository writes to tb_common_feedback. The postgres path uses
// RETURNING; mysql has no RETURNING, so the id is minted client-side.
type FeedbackRepository struct {
	DB     *sql.DB
	Driver string
}

func (r *FeedbackRepository) Create(ctx context.Context, fb models.Feedback) (models.Feedback, error) {
	if r.Driver == "mysql" {
		fb.ID = uuid.NewString()
		fb.CreatedAt = time.Now()
		_, err := r.DB.ExecContext(ctx, `
			INSERT INTO tb_common_feedback (feedback_id, full_name, email, phone, message, source, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			fb.ID, fb.FullName, fb.Email, fb.Phone, fb.Message, fb.Source, fb.CreatedAt)
		if err != nil {
			return models.Feedback{}, fmt.Errorf("insert feedback: %w", err)
		}
		return fb, nil
	}

	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO tb_common_feedback (full_name, email, phone, message, source)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING feedback_id, created_at`,
		fb.FullName, fb.Email, fb.Phone, fb.Message, fb.Source,
	).Scan(&fb.ID, &fb.CreatedAt)
	if err != nil {
		return models.Feedback{}, fmt.Errorf("insert feedback: %w", err)
	}
	return fb, nil
}
