package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aurel/sportcourse/internal/app/models"
	"github.com/aurel/sportcourse/internal/app/models/dto"
	"github.com/aurel/sportcourse/internal/app/repositories"
	"github.com/aurel/sportcourse/internal/pkg/apperrors"
)

// SportService defines the interface for sport catalog operations
type SportService interface {
	GetAllSports(ctx context.Context) ([]*models.Sport, error)
	GetSportByID(ctx context.Context, id int64) (*models.Sport, error)
	CreateSport(ctx context.Context, req *dto.CreateSportRequest) (*models.Sport, error)
	UpdateSport(ctx context.Context, id int64, req *dto.UpdateSportRequest) (*models.Sport, error)
	DeleteSport(ctx context.Context, id int64) error
}

// sportServiceImpl implements SportService
type sportServiceImpl struct {
	sportRepo repositories.SportRepository
	logger    zerolog.Logger
}

// NewSportService creates a new SportService
func NewSportService(sportRepo repositories.SportRepository, logger zerolog.Logger) SportService {
	return &sportServiceImpl{
		sportRepo: sportRepo,
		logger:    logger,
	}
}

// GetAllSports lists the sport catalog
func (s *sportServiceImpl) GetAllSports(ctx context.Context) ([]*models.Sport, error) {
	sports, err := s.sportRepo.GetAll(ctx)
	if err != nil {
		return nil, apperrors.WrapRepo(err, "failed to retrieve sports")
	}
	return sports, nil
}

// GetSportByID retrieves a single sport
func (s *sportServiceImpl) GetSportByID(ctx context.Context, id int64) (*models.Sport, error) {
	return s.sportRepo.GetByID(ctx, id)
}

// CreateSport adds a sport to the catalog
func (s *sportServiceImpl) CreateSport(ctx context.Context, req *dto.CreateSportRequest) (*models.Sport, error) {
	sport := &models.Sport{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.sportRepo.Create(ctx, sport); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("sportId", sport.ID).Str("name", sport.Name).Msg("Sport created")
	return sport, nil
}

// UpdateSport applies a partial update to a sport
func (s *sportServiceImpl) UpdateSport(ctx context.Context, id int64, req *dto.UpdateSportRequest) (*models.Sport, error) {
	sport, err := s.sportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		sport.Name = *req.Name
	}
	if req.Description != nil {
		sport.Description = req.Description
	}

	if err := s.sportRepo.Update(ctx, sport); err != nil {
		return nil, err
	}
	return sport, nil
}

// DeleteSport removes a sport from the catalog
func (s *sportServiceImpl) DeleteSport(ctx context.Context, id int64) error {
	if _, err := s.sportRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.sportRepo.Delete(ctx, id)
}
