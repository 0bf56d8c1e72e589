package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/model"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/snowflake"
)

type UserRepository interface {
	Create(ctx context.Context, user model.User) (model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateBio(ctx context.Context, id int64, bio string) error
	UpdateLastSeen(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// IsUniqueViolation reports whether err is a SQLite unique constraint failure
// (duplicate username or email).
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

type userRepository struct {
	db dbtx
}

func NewUserRepository(db dbtx) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	user.ID = snowflake.NextID()
	now := time.Now().UTC()
	user.MemberSince = now
	user.LastSeen = now

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO users (id, username, email, password_hash, bio, member_since, last_seen)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Bio,
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getBy(ctx, "id = ?", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getBy(ctx, "email = ?", email)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getBy(ctx, "username = ?", username)
}

func (r *userRepository) getBy(ctx context.Context, where string, arg any) (*model.User, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, username, email, password_hash, bio, member_since, last_seen
		 FROM users WHERE `+where,
		arg,
	)

	var u model.User
	var memberSince, lastSeen string
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Bio, &memberSince, &lastSeen)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	u.MemberSince, _ = parseTime(memberSince)
	u.LastSeen, _ = parseTime(lastSeen)
	return &u, nil
}

func (r *userRepository) UpdateBio(ctx context.Context, id int64, bio string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET bio = ? WHERE id = ?`, bio, id)
	return err
}

func (r *userRepository) UpdateLastSeen(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_seen = ? WHERE id = ?`, formatTime(time.Now()), id)
	return err
}

// Delete removes the user; owned summaries go with it via ON DELETE CASCADE.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	return err
}
