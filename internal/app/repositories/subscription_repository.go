package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aurel/sportcourse/internal/app/models"
	"github.com/aurel/sportcourse/internal/pkg/apperrors"
	"github.com/aurel/sportcourse/internal/pkg/dberrors"
)

// SubscriptionRepository handles database operations for subscriptions.
// Status writes go through UpdateStatus and the administrative Update; the
// lifecycle rules live in the subscription service.
type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *models.Subscription) error
	GetByID(ctx context.Context, id int64) (*models.Subscription, error)
	GetAll(ctx context.Context) ([]*models.Subscription, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*models.Subscription, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Subscription, error)
	UpdateStatus(ctx context.Context, id int64, status models.SubscriptionStatus) error
	Delete(ctx context.Context, id int64) error
}

type subscriptionRepository struct {
	db *pgxpool.Pool
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *pgxpool.Pool) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

const subscriptionColumns = `id, user_id, course_id, status, created_at, updated_at`

func scanSubscription(row pgx.Row) (*models.Subscription, error) {
	var sub models.Subscription
	err := row.Scan(
		&sub.ID,
		&sub.UserID,
		&sub.CourseID,
		&sub.Status,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) Create(ctx context.Context, subscription *models.Subscription) error {
	if subscription.Status == "" {
		subscription.Status = models.SubscriptionPending
	}
	query := `
		INSERT INTO subscriptions (user_id, course_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		subscription.UserID, subscription.CourseID, subscription.Status,
	).Scan(&subscription.ID, &subscription.CreatedAt, &subscription.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "subscriptions_user_id_course_id_key") {
			return apperrors.BadRequest(apperrors.ErrDuplicateSubscription,
				"user already has a subscription for this course")
		}
		return apperrors.WrapRepo(err, "error creating subscription")
	}
	return nil
}

func (r *subscriptionRepository) GetByID(ctx context.Context, id int64) (*models.Subscription, error) {
	sub, err := scanSubscription(r.db.QueryRow(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(apperrors.ErrSubscriptionNotFound, "subscription not found")
		}
		return nil, apperrors.WrapRepo(err, "error fetching subscription")
	}
	return sub, nil
}

func (r *subscriptionRepository) GetAll(ctx context.Context) ([]*models.Subscription, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions ORDER BY id`)
	if err != nil {
		return nil, apperrors.WrapRepo(err, "error fetching all subscriptions")
	}
	defer rows.Close()
	return collectSubscriptions(rows)
}

func (r *subscriptionRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.Subscription, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE course_id = $1 ORDER BY id`, courseID)
	if err != nil {
		return nil, apperrors.WrapRepo(err, "error fetching course's subscriptions")
	}
	defer rows.Close()
	return collectSubscriptions(rows)
}

func (r *subscriptionRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Subscription, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, apperrors.WrapRepo(err, "error fetching user's subscriptions")
	}
	defer rows.Close()
	return collectSubscriptions(rows)
}

func (r *subscriptionRepository) UpdateStatus(ctx context.Context, id int64, status models.SubscriptionStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE subscriptions SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id)
	if err != nil {
		return apperrors.WrapRepo(err, "error updating subscription")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NotFound(apperrors.ErrSubscriptionNotFound, "subscription not found")
	}
	return nil
}

func (r *subscriptionRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return apperrors.WrapRepo(err, "error deleting subscription")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NotFound(apperrors.ErrSubscriptionNotFound, "subscription not found")
	}
	return nil
}

func collectSubscriptions(rows pgx.Rows) ([]*models.Subscription, error) {
	var subs []*models.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, apperrors.WrapRepo(err, "error fetching subscriptions")
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapRepo(err, "error fetching subscriptions")
	}
	return subs, nil
}
