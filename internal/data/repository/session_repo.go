package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-review/internal/data/entity"
	"movie-review/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	// FindValid returns nil, nil for unknown, revoked or expired tokens.
	FindValid(ctx context.Context, token uuid.UUID) (*entity.Session, error)
	Revoke(ctx context.Context, token uuid.UUID) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) (int64, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

type sessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSessionRepository(db database.PgxIface, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "session")),
	}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	const query = `
		INSERT INTO sessions (id, user_id, token, user_agent, ip_address, expires_at, created_at)
		VALUES (@id, @user_id, @token, @user_agent, @ip, @expires_at, @created_at)
	`
	args := pgx.NamedArgs{
		"id":         session.ID,
		"user_id":    session.UserID,
		"token":      session.Token,
		"user_agent": session.UserAgent,
		"ip":         session.IPAddress,
		"expires_at": session.ExpiresAt,
		"created_at": session.CreatedAt,
	}

	if _, err := database.Conn(ctx, r.db).Exec(ctx, query, args); err != nil {
		r.log.Error("Failed to create session", zap.Error(err), zap.Stringer("user_id", session.UserID))
		return fmt.Errorf("create session for user %s: %w", session.UserID, err)
	}
	return nil
}

func (r *sessionRepository) FindValid(ctx context.Context, token uuid.UUID) (*entity.Session, error) {
	const query = `
		SELECT id, created_at, user_id, token, user_agent, ip_address, expires_at, revoked_at
		FROM sessions
		WHERE token = $1 AND revoked_at IS NULL AND expires_at > NOW()
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, token)
	if err == nil {
		var session *entity.Session
		session, err = pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[entity.Session])
		if err == nil {
			return session, nil
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	r.log.Error("Failed to look up session", zap.Error(err))
	return nil, fmt.Errorf("find session: %w", err)
}

func (r *sessionRepository) Revoke(ctx context.Context, token uuid.UUID) error {
	query := `UPDATE sessions SET revoked_at = NOW() WHERE token = $1 AND revoked_at IS NULL`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, token)
	if err != nil {
		r.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("revoke session: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("revoke session: %w", ErrNotFound)
	}
	return nil
}

func (r *sessionRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `UPDATE sessions SET revoked_at = NOW() WHERE user_id = $1 AND revoked_at IS NULL`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to revoke user sessions", zap.Error(err), zap.Stringer("user_id", userID))
		return 0, fmt.Errorf("revoke sessions for user %s: %w", userID, err)
	}

	return result.RowsAffected(), nil
}

// PurgeExpired drops sessions that expired more than a week ago.
func (r *sessionRepository) PurgeExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM sessions WHERE expires_at < NOW() - INTERVAL '7 days'`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query)
	if err != nil {
		r.log.Error("Failed to purge expired sessions", zap.Error(err))
		return 0, fmt.Errorf("purge expired sessions: %w", err)
	}

	return result.RowsAffected(), nil
}
