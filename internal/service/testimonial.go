package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/linemk/sattvik-shop/internal/domain/models"
	"github.com/linemk/sattvik-shop/internal/storage"
	"github.com/linemk/sattvik-shop/internal/validation"
)

// PublicTestimonialsLimit сколько одобренных отзывов показывается на главной
const PublicTestimonialsLimit = 6

// SubmitTestimonialRequest отзыв из публичной формы
type SubmitTestimonialRequest struct {
	Name    string  `json:"name" validate:"required,max=100"`
	Title   *string `json:"title,omitempty" validate:"omitempty,max=150"`
	Comment string  `json:"comment" validate:"required,max=2000"`
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
}

type TestimonialService interface {
	Submit(ctx context.Context, req SubmitTestimonialRequest) (*models.Testimonial, error)
	ListPublic(ctx context.Context) ([]*models.Testimonial, error)
	ListAll(ctx context.Context, userID int64) ([]*models.Testimonial, error)
	Approve(ctx context.Context, userID int64, id string) error
	Reject(ctx context.Context, userID int64, id string) error
}

type testimonialService struct {
	log          *slog.Logger
	testimonials storage.TestimonialStorage
	roles        storage.RoleStorage
}

func NewTestimonialService(log *slog.Logger, testimonials storage.TestimonialStorage, roles storage.RoleStorage) TestimonialService {
	return &testimonialService{log: log, testimonials: testimonials, roles: roles}
}

// Submit сохраняет отзыв, до одобрения он не виден на сайте
func (s *testimonialService) Submit(ctx context.Context, req SubmitTestimonialRequest) (*models.Testimonial, error) {
	const op = "service.TestimonialService.Submit"
	logger := s.log.With(slog.String("op", op))

	if s.testimonials == nil {
		return nil, fmt.Errorf("%s: %w", op, errNoDatabase)
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Comment = strings.TrimSpace(req.Comment)
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		req.Title = &title
		if title == "" {
			req.Title = nil
		}
	}
	if err := validation.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	t := &models.Testimonial{
		Name:    req.Name,
		Title:   req.Title,
		Comment: req.Comment,
		Rating:  req.Rating,
	}
	if err := s.testimonials.Create(ctx, t); err != nil {
		logger.Error("failed to create testimonial", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("testimonial submitted", slog.String("id", t.ID))
	return t, nil
}

func (s *testimonialService) ListPublic(ctx context.Context) ([]*models.Testimonial, error) {
	const op = "service.TestimonialService.ListPublic"

	if s.testimonials == nil {
		return nil, fmt.Errorf("%s: %w", op, errNoDatabase)
	}
	list, err := s.testimonials.ListApproved(ctx, PublicTestimonialsLimit)
	if err != nil {
		s.log.Error("failed to list testimonials", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

func (s *testimonialService) ListAll(ctx context.Context, userID int64) ([]*models.Testimonial, error) {
	const op = "service.TestimonialService.ListAll"

	if err := requireAdmin(ctx, s.roles, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	list, err := s.testimonials.ListAll(ctx)
	if err != nil {
		s.log.Error("failed to list testimonials", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

func (s *testimonialService) Approve(ctx context.Context, userID int64, id string) error {
	const op = "service.TestimonialService.Approve"
	logger := s.log.With(slog.String("op", op), slog.String("id", id), slog.Int64("userID", userID))

	if err := requireAdmin(ctx, s.roles, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	// в БД id имеет тип uuid, мусорный id считаем несуществующим
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrTestimonialNotFound)
	}
	if err := s.testimonials.Approve(ctx, id); err != nil {
		logger.Error("failed to approve testimonial", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("testimonial approved")
	return nil
}

// Reject удаляет отзыв
func (s *testimonialService) Reject(ctx context.Context, userID int64, id string) error {
	const op = "service.TestimonialService.Reject"
	logger := s.log.With(slog.String("op", op), slog.String("id", id), slog.Int64("userID", userID))

	if err := requireAdmin(ctx, s.roles, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrTestimonialNotFound)
	}
	if err := s.testimonials.Delete(ctx, id); err != nil {
		logger.Error("failed to delete testimonial", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("testimonial rejected")
	return nil
}
