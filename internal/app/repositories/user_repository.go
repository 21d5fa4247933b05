package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aurel/sportcourse/internal/app/models"
	"github.com/aurel/sportcourse/internal/pkg/apperrors"
	"github.com/aurel/sportcourse/internal/pkg/dberrors"
	"github.com/aurel/sportcourse/internal/pkg/helpers"
	"github.com/aurel/sportcourse/internal/pkg/logger"
)

// UserRepository handles database operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
	SearchCoaches(ctx context.Context, name string) ([]*models.User, error)
}

type userRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &userRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const userColumns = `id, email, password, first_name, last_name, profile_picture, roles, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	var roles []byte
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FirstName,
		&user.LastName,
		&user.ProfilePicture,
		&roles,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := helpers.DecodeList(roles, &user.Roles); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	roles, err := helpers.EncodeList(user.Roles)
	if err != nil {
		return apperrors.WrapRepo(err, "error creating user")
	}

	query := `
		INSERT INTO users (email, password, first_name, last_name, profile_picture, roles)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err = r.db.QueryRow(ctx, query,
		user.Email, user.Password, user.FirstName, user.LastName,
		helpers.GetNullString(user.ProfilePicture), roles,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.BadRequest(apperrors.ErrEmailAlreadyUsed, "email already used")
		}
		return apperrors.WrapRepo(err, "error creating user")
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(apperrors.ErrUserNotFound, "user not found")
		}
		return nil, apperrors.WrapRepo(err, "error fetching user")
	}

	sports, err := r.loadSports(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Sports = sports
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(apperrors.ErrUserNotFound, "user not found")
		}
		return nil, apperrors.WrapRepo(err, "error fetching user by email")
	}
	return user, nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, apperrors.WrapRepo(err, "error fetching all users")
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.WrapRepo(err, "error fetching all users")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapRepo(err, "error fetching all users")
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	roles, err := helpers.EncodeList(user.Roles)
	if err != nil {
		return apperrors.WrapRepo(err, "error updating user")
	}

	query := `
		UPDATE users
		SET email = $1, password = $2, first_name = $3, last_name = $4,
		    profile_picture = $5, roles = $6, updated_at = $7
		WHERE id = $8
	`
	cmdTag, err := r.db.Exec(ctx, query,
		user.Email, user.Password, user.FirstName, user.LastName,
		helpers.GetNullString(user.ProfilePicture), roles, time.Now(), user.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.BadRequest(apperrors.ErrEmailAlreadyUsed, "email already used")
		}
		return apperrors.WrapRepo(err, "error updating user")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NotFound(apperrors.ErrUserNotFound, "user not found")
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return apperrors.WrapRepo(err, "error deleting user")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NotFound(apperrors.ErrUserNotFound, "user not found")
	}
	return nil
}

// SearchCoaches returns users holding the coach role whose first or last name
// contains the given substring. An empty name matches every coach.
func (r *userRepository) SearchCoaches(ctx context.Context, name string) ([]*models.User, error) {
	query := r.sb.Select(userColumns).
		From("users").
		Where(`roles @> '["coach"]'`).
		OrderBy("id")

	if name != "" {
		pattern := "%" + name + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
		})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building coach search SQL")
		return nil, apperrors.WrapRepo(err, "error searching coaches")
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperrors.WrapRepo(err, "error searching coaches")
	}
	defer rows.Close()

	var coaches []*models.User
	for rows.Next() {
		coach, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.WrapRepo(err, "error searching coaches")
		}
		coaches = append(coaches, coach)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapRepo(err, "error searching coaches")
	}
	return coaches, nil
}

func (r *userRepository) loadSports(ctx context.Context, userID int64) ([]models.UserSport, error) {
	query := `
		SELECT us.id, us.user_id, us.sport_id, us.level, s.id, s.name, s.description
		FROM user_sports us
		JOIN sports s ON s.id = us.sport_id
		WHERE us.user_id = $1
		ORDER BY us.id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.WrapRepo(err, "error fetching user's sports")
	}
	defer rows.Close()

	var sports []models.UserSport
	for rows.Next() {
		var us models.UserSport
		var sport models.Sport
		if err := rows.Scan(&us.ID, &us.UserID, &us.SportID, &us.Level,
			&sport.ID, &sport.Name, &sport.Description); err != nil {
			return nil, apperrors.WrapRepo(err, "error fetching user's sports")
		}
		us.Sport = &sport
		sports = append(sports, us)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapRepo(err, "error fetching user's sports")
	}
	return sports, nil
}
