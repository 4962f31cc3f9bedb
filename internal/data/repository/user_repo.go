package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-review/internal/data/entity"
	"movie-review/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicate is returned when a unique constraint rejects an insert.
var ErrDuplicate = errors.New("repository: duplicate")

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// UserRepository finds live accounts only; soft-deleted rows are invisible.
// Email lookups are case-insensitive.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{db: db, log: log.With(zap.String("repository", "user"))}
}

func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	const query = `
		INSERT INTO users (id, name, email, password, profile_image_url, created_at, updated_at)
		VALUES (@id, @name, @email, @password, @image, @created_at, @updated_at)
	`
	args := pgx.NamedArgs{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"password":   user.PasswordHash,
		"image":      user.ProfileImageURL,
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
	}

	if _, err := database.Conn(ctx, ur.db).Exec(ctx, query, args); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create user %s: %w", user.Email, ErrDuplicate)
		}
		ur.log.Error("Failed to create user", zap.Error(err), zap.String("email", user.Email))
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}
	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := ur.findOne(ctx, `id = $1`, id)
	if err != nil {
		ur.log.Error("Failed to find user", zap.Error(err), zap.Stringer("user_id", id))
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}
	return user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := ur.findOne(ctx, `lower(email) = lower($1)`, email)
	if err != nil {
		ur.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}
	return user, nil
}

// findOne maps the row onto entity.User by its db tags and reports a
// missing row as nil, nil.
func (ur *userRepository) findOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	query := `
		SELECT id, name, email, password, profile_image_url, created_at, updated_at, deleted_at
		FROM users
		WHERE deleted_at IS NULL AND ` + where

	rows, err := database.Conn(ctx, ur.db).Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	user, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[entity.User])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return user, err
}

// Update writes the editable profile fields and bumps updated_at.
func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	const query = `
		UPDATE users
		SET name = $2, profile_image_url = $3, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := database.Conn(ctx, ur.db).Exec(ctx, query, user.ID, user.Name, user.ProfileImageURL, user.UpdatedAt)
	if err != nil {
		ur.log.Error("Failed to update user", zap.Error(err), zap.Stringer("user_id", user.ID))
		return fmt.Errorf("update user %s: %w", user.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update user %s: %w", user.ID, ErrNotFound)
	}
	return nil
}
