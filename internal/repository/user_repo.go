package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"vidstream/internal/model"
	"vidstream/internal/pagination"
)

type UserRepository struct {
	db Querier
}

func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, email, fullname, avatar, cover_image,
	        password_hash, refresh_token_hash, created_at, updated_at`

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Fullname, &u.Avatar, &u.CoverImage,
		&u.PasswordHash, &u.RefreshTokenHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (model.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// FindByIdentifier resolves a login identifier that may be either a
// username or an email address.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (model.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE lower(username) = lower($1) OR lower(email) = lower($1)`,
		strings.TrimSpace(identifier)))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by identifier: %w", err)
	}
	return u, nil
}

func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username string, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(
		    SELECT 1 FROM users
		    WHERE lower(username) = lower($1) OR lower(email) = lower($2))`,
		strings.TrimSpace(username), strings.TrimSpace(email)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) Create(ctx context.Context, u model.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, username, email, fullname, avatar, cover_image, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.Username, u.Email, u.Fullname, u.Avatar, u.CoverImage, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// SetRefreshTokenHash unconditionally installs a new refresh hash.
// Used on login, where any previous session is simply displaced.
func (r *UserRepository) SetRefreshTokenHash(ctx context.Context, userID string, hash string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET refresh_token_hash = $2, updated_at = $3 WHERE id = $1`,
		userID, hash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set refresh token hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// RotateRefreshTokenHash swaps the stored hash only if it still equals
// oldHash. Returns false when another rotation won the race, which
// keeps the single-active-refresh-token invariant under concurrent
// refresh attempts.
func (r *UserRepository) RotateRefreshTokenHash(ctx context.Context, userID string, oldHash string, newHash string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET refresh_token_hash = $3, updated_at = $4
		 WHERE id = $1 AND refresh_token_hash = $2`,
		userID, oldHash, newHash, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("rotate refresh token hash: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ClearRefreshTokenHash revokes any outstanding refresh token.
// Idempotent: clearing an already-clear hash is not an error.
func (r *UserRepository) ClearRefreshTokenHash(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET refresh_token_hash = NULL, updated_at = $2 WHERE id = $1`,
		userID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("clear refresh token hash: %w", err)
	}
	return nil
}

// UpdatePassword installs a new password hash and revokes the refresh
// token in the same statement, so a stolen refresh token cannot
// outlive a credential change.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET password_hash = $2, refresh_token_hash = NULL, updated_at = $3 WHERE id = $1`,
		userID, passwordHash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// GetChannelProfile loads a channel's public profile together with
// subscription counts and whether viewerID is subscribed. Fixed stage
// order: match user, count fan-in, count fan-out, probe viewer edge.
// viewerID may be empty for anonymous viewers, so the probe compares
// through a text cast instead of binding '' against a uuid column.
func (r *UserRepository) GetChannelProfile(ctx context.Context, username string, viewerID string) (model.ChannelProfile, error) {
	var p model.ChannelProfile
	err := r.db.QueryRow(ctx,
		`SELECT u.id, u.username, u.fullname, u.avatar, u.cover_image,
		        (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id),
		        (SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id),
		        EXISTS(SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND $2 <> '' AND s.subscriber_id::text = $2)
		 FROM users u
		 WHERE lower(u.username) = lower($1)`,
		strings.TrimSpace(username), viewerID).
		Scan(&p.ID, &p.Username, &p.Fullname, &p.Avatar, &p.CoverImage,
			&p.SubscriberCount, &p.SubscribedToCount, &p.IsSubscribed)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.ChannelProfile{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.ChannelProfile{}, fmt.Errorf("get channel profile: %w", err)
	}
	return p, nil
}

// GetWatchHistory lists the videos a user has viewed, most recent
// first, with the owner profile joined in. Videos un-published since
// the view drop out of the history unless the viewer owns them; the
// count runs under the same filter so the meta stays consistent.
func (r *UserRepository) GetWatchHistory(ctx context.Context, userID string, p pagination.Params) ([]model.Video, int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM video_views w
		 JOIN videos v ON v.id = w.video_id
		 WHERE w.user_id = $1 AND (v.is_published OR v.owner_id = w.user_id)`, userID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count watch history: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT v.id, v.owner_id, v.title, v.description, v.video_key, v.thumbnail_key,
		        v.duration, v.views, v.is_published, v.created_at, v.updated_at,
		        o.id, o.username, o.fullname, o.avatar
		 FROM video_views w
		 JOIN videos v ON v.id = w.video_id
		 JOIN users o ON o.id = v.owner_id
		 WHERE w.user_id = $1 AND (v.is_published OR v.owner_id = w.user_id)
		 ORDER BY w.viewed_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list watch history: %w", err)
	}
	defer rows.Close()

	videos, err := collectVideos(rows)
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}
