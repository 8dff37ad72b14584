package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/linemk/sattvik-shop/internal/domain/models"
)

var ErrTestimonialNotFound = errors.New("testimonial not found")

type TestimonialStorage interface {
	// Create сохраняет отзыв неодобренным, id и даты проставляются здесь.
	Create(ctx context.Context, t *models.Testimonial) error
	ListApproved(ctx context.Context, limit int) ([]*models.Testimonial, error)
	ListAll(ctx context.Context) ([]*models.Testimonial, error)
	Approve(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type testimonialRepository struct {
	db *sql.DB
}

func NewTestimonialRepository(db *sql.DB) TestimonialStorage {
	return &testimonialRepository{db: db}
}

const testimonialColumns = "id, name, title, comment, rating, avatar_url, approved, created_at, updated_at"

func (r *testimonialRepository) Create(ctx context.Context, t *models.Testimonial) error {
	t.ID = uuid.NewString()
	t.Approved = false
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO testimonials (id, name, title, comment, rating, avatar_url, approved)
		 VALUES ($1, $2, $3, $4, $5, $6, FALSE)
		 RETURNING created_at, updated_at`,
		t.ID, t.Name, t.Title, t.Comment, t.Rating, t.AvatarURL,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create testimonial: %w", err)
	}
	return nil
}

func (r *testimonialRepository) ListApproved(ctx context.Context, limit int) ([]*models.Testimonial, error) {
	return r.list(ctx,
		"SELECT "+testimonialColumns+" FROM testimonials WHERE approved = TRUE ORDER BY created_at DESC LIMIT $1",
		limit,
	)
}

func (r *testimonialRepository) ListAll(ctx context.Context) ([]*models.Testimonial, error) {
	return r.list(ctx, "SELECT "+testimonialColumns+" FROM testimonials ORDER BY created_at DESC")
}

func (r *testimonialRepository) list(ctx context.Context, query string, args ...any) ([]*models.Testimonial, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Testimonial
	for rows.Next() {
		t := &models.Testimonial{}
		var title, avatar sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &title, &t.Comment, &t.Rating, &avatar, &t.Approved, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		if title.Valid {
			t.Title = &title.String
		}
		if avatar.Valid {
			t.AvatarURL = &avatar.String
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *testimonialRepository) Approve(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE testimonials SET approved = TRUE, updated_at = NOW() WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to approve testimonial: %w", err)
	}
	return requireAffected(res, ErrTestimonialNotFound)
}

func (r *testimonialRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM testimonials WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete testimonial: %w", err)
	}
	return requireAffected(res, ErrTestimonialNotFound)
}

func requireAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
