package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aurel/sportcourse/internal/app/models"
	"github.com/aurel/sportcourse/internal/app/models/dto"
	"github.com/aurel/sportcourse/internal/app/repositories"
	"github.com/aurel/sportcourse/internal/pkg/apperrors"
)

// SubscriptionService defines the interface for subscription operations
type SubscriptionService interface {
	GetAllSubscriptions(ctx context.Context) ([]*models.Subscription, error)
	GetSubscriptionByID(ctx context.Context, id int64) (*models.Subscription, error)
	GetSubscriptionsByCourse(ctx context.Context, courseID int64) ([]*models.Subscription, error)
	GetSubscriptionsByUser(ctx context.Context, userID int64) ([]*models.Subscription, error)
	CreateSubscription(ctx context.Context, userID, courseID int64) (*models.Subscription, error)
	AcceptSubscription(ctx context.Context, id int64) (*models.Subscription, error)
	RejectSubscription(ctx context.Context, id int64) (*models.Subscription, error)
	CancelSubscription(ctx context.Context, id int64) (*models.Subscription, error)
	UpdateSubscription(ctx context.Context, id int64, req *dto.UpdateSubscriptionRequest) (*models.Subscription, error)
	DeleteSubscription(ctx context.Context, id int64) error
}

// subscriptionServiceImpl implements SubscriptionService
type subscriptionServiceImpl struct {
	subscriptionRepo repositories.SubscriptionRepository
	courseRepo       repositories.CourseRepository
	userRepo         repositories.UserRepository
	logger           zerolog.Logger
}

// NewSubscriptionService creates a new SubscriptionService
func NewSubscriptionService(
	subscriptionRepo repositories.SubscriptionRepository,
	courseRepo repositories.CourseRepository,
	userRepo repositories.UserRepository,
	logger zerolog.Logger,
) SubscriptionService {
	return &subscriptionServiceImpl{
		subscriptionRepo: subscriptionRepo,
		courseRepo:       courseRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// GetAllSubscriptions retrieves every subscription
func (s *subscriptionServiceImpl) GetAllSubscriptions(ctx context.Context) ([]*models.Subscription, error) {
	subscriptions, err := s.subscriptionRepo.GetAll(ctx)
	if err != nil {
		return nil, apperrors.WrapRepo(err, "failed to retrieve subscriptions")
	}
	return subscriptions, nil
}

// GetSubscriptionByID retrieves a subscription with its user and course attached
func (s *subscriptionServiceImpl) GetSubscriptionByID(ctx context.Context, id int64) (*models.Subscription, error) {
	subscription, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, subscription.UserID)
	if err == nil {
		subscription.User = user.Public()
	}

	course, err := s.courseRepo.GetByID(ctx, subscription.CourseID)
	if err == nil {
		subscription.Course = course
	}

	return subscription, nil
}

// GetSubscriptionsByCourse lists all subscriptions attached to a course
func (s *subscriptionServiceImpl) GetSubscriptionsByCourse(ctx context.Context, courseID int64) ([]*models.Subscription, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	subscriptions, err := s.subscriptionRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, apperrors.WrapRepo(err, "failed to retrieve course subscriptions")
	}
	return subscriptions, nil
}

// GetSubscriptionsByUser lists all subscriptions created by a user
func (s *subscriptionServiceImpl) GetSubscriptionsByUser(ctx context.Context, userID int64) ([]*models.Subscription, error) {
	subscriptions, err := s.subscriptionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.WrapRepo(err, "failed to retrieve user subscriptions")
	}
	return subscriptions, nil
}

// CreateSubscription registers a pending subscription for a user on a course.
// No place is reserved at this point; places are only consumed on acceptance.
func (s *subscriptionServiceImpl) CreateSubscription(ctx context.Context, userID, courseID int64) (*models.Subscription, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if course.RemainingPlaces <= 0 {
		return nil, apperrors.BadRequest(apperrors.ErrNoRemainingPlaces, "no remaining places in this course")
	}

	subscription := &models.Subscription{
		UserID:   userID,
		CourseID: courseID,
		Status:   models.SubscriptionPending,
	}
	if err := s.subscriptionRepo.Create(ctx, subscription); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("subscriptionId", subscription.ID).
		Int64("userId", userID).
		Int64("courseId", courseID).
		Msg("Subscription created")

	return subscription, nil
}

// AcceptSubscription marks a subscription as accepted and consumes one place
// on the course. The decrement is conditional on a place being available, so
// two coaches accepting concurrently can never overbook the course.
func (s *subscriptionServiceImpl) AcceptSubscription(ctx context.Context, id int64) (*models.Subscription, error) {
	subscription, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if subscription.Status == models.SubscriptionCanceled {
		return nil, apperrors.BadRequest(apperrors.ErrInvalidTransition, "cannot accept a canceled subscription")
	}

	if err := s.courseRepo.DecrementRemainingPlaces(ctx, subscription.CourseID); err != nil {
		return nil, err
	}

	if err := s.subscriptionRepo.UpdateStatus(ctx, id, models.SubscriptionAccepted); err != nil {
		// Give the place back so the decrement does not leak.
		if incErr := s.courseRepo.IncrementRemainingPlaces(ctx, subscription.CourseID); incErr != nil {
			s.logger.Error().Err(incErr).
				Int64("courseId", subscription.CourseID).
				Msg("Failed to release place after status update failure")
		}
		return nil, err
	}

	subscription.Status = models.SubscriptionAccepted
	s.logger.Info().
		Int64("subscriptionId", id).
		Int64("courseId", subscription.CourseID).
		Msg("Subscription accepted")

	return subscription, nil
}

// RejectSubscription marks a subscription as rejected. Rejecting never touches
// the course capacity, so rejecting twice is harmless.
func (s *subscriptionServiceImpl) RejectSubscription(ctx context.Context, id int64) (*models.Subscription, error) {
	subscription, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if subscription.Status == models.SubscriptionCanceled {
		return nil, apperrors.BadRequest(apperrors.ErrInvalidTransition, "cannot reject a canceled subscription")
	}

	if err := s.subscriptionRepo.UpdateStatus(ctx, id, models.SubscriptionRejected); err != nil {
		return nil, err
	}

	subscription.Status = models.SubscriptionRejected
	return subscription, nil
}

// CancelSubscription marks a subscription as canceled. If the subscription was
// accepted, its place is returned to the course.
func (s *subscriptionServiceImpl) CancelSubscription(ctx context.Context, id int64) (*models.Subscription, error) {
	subscription, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	wasAccepted := subscription.Status == models.SubscriptionAccepted

	if err := s.subscriptionRepo.UpdateStatus(ctx, id, models.SubscriptionCanceled); err != nil {
		return nil, err
	}

	if wasAccepted {
		if err := s.courseRepo.IncrementRemainingPlaces(ctx, subscription.CourseID); err != nil {
			s.logger.Error().Err(err).
				Int64("subscriptionId", id).
				Int64("courseId", subscription.CourseID).
				Msg("Failed to release place after cancellation")
		}
	}

	subscription.Status = models.SubscriptionCanceled
	s.logger.Info().
		Int64("subscriptionId", id).
		Bool("placeReleased", wasAccepted).
		Msg("Subscription canceled")

	return subscription, nil
}

// UpdateSubscription sets a subscription status directly. This is the
// administrative path and bypasses the transition guards; the capacity ledger
// is not adjusted here.
func (s *subscriptionServiceImpl) UpdateSubscription(ctx context.Context, id int64, req *dto.UpdateSubscriptionRequest) (*models.Subscription, error) {
	subscription, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if !models.ValidSubscriptionStatus(*req.Status) {
			return nil, apperrors.BadRequest(apperrors.ErrValidationFailed, "invalid subscription status: %s", *req.Status)
		}
		if err := s.subscriptionRepo.UpdateStatus(ctx, id, *req.Status); err != nil {
			return nil, err
		}
		subscription.Status = *req.Status
	}

	return subscription, nil
}

// DeleteSubscription removes a subscription entirely
func (s *subscriptionServiceImpl) DeleteSubscription(ctx context.Context, id int64) error {
	if _, err := s.subscriptionRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.subscriptionRepo.Delete(ctx, id)
}
