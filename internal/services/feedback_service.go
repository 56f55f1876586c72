package services

import (
	"context"
	"errors"
	"regexp"

	"github.com/sadrozzy/global-hub-real-estate/internal/models"
	"github.com/sadrozzy/global-hub-real-estate/internal/repositories"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type FeedbackService struct {
	FeedbackRepo repositories.FeedbackStore
}

// Submit validates and persists a contact-form submission.
func (s *FeedbackService) Submit(ctx context.Context, req models.ContactRequest) (models.Feedback, error) {
	if req.FullName == "" || req.Email == "" || req.Phone == "" || req.Message == "" || req.Source == "" {
		return models.Feedback{}, models.ErrMissingFields
	}
	if !emailPattern.MatchString(req.Email) {
		return models.Feedback{}, models.ErrInvalidEmail
	}
	if s.FeedbackRepo == nil {
		return models.Feedback{}, errors.New("feedback store not configured")
	}

	return s.FeedbackRepo.Create(ctx, models.Feedback{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Message:  req.Message,
		Source:   req.Source,
	})
}
