package services

import (
	"context"

	"github.com/sadrozzy/global-hub-real-estate/internal/models"
	"github.com/sadrozzy/global-hub-real-estate/internal/repositories"
)

type PropertyService struct {
	PropertyRepo *repositories.PropertyRepository
}

func (s *PropertyService) GetProperty(ctx context.Context, id string) (models.PropertyDetail, error) {
	return s.PropertyRepo.GetByID(ctx, id)
}
