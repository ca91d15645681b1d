package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dafi.es/dafibot/internal/election"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

type userRow struct {
	ID               int64         `db:"id"`
	Username         string        `db:"username"`
	FirstName        string        `db:"first_name"`
	LastName         string        `db:"last_name"`
	Email            string        `db:"email"`
	TelegramID       sql.NullInt64 `db:"telegram_id"`
	TelegramUsername string        `db:"telegram_username"`
	IsSuperuser      bool          `db:"is_superuser"`
}

func (r userRow) toUser() *election.User {
	u := &election.User{
		ID:               r.ID,
		Username:         r.Username,
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Email:            r.Email,
		TelegramUsername: r.TelegramUsername,
		IsSuperuser:      r.IsSuperuser,
	}
	if r.TelegramID.Valid {
		id := r.TelegramID.Int64
		u.TelegramID = &id
	}
	return u
}

const userColumns = `id, username, first_name, last_name, email, telegram_id, telegram_username, is_superuser`

func (r *UserRepository) Create(ctx context.Context, u *election.User) error {
	q := r.db.db.Rebind(`
		INSERT INTO users (username, first_name, last_name, email, telegram_id, telegram_username, is_superuser)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
	var tgID sql.NullInt64
	if u.TelegramID != nil {
		tgID = sql.NullInt64{Int64: *u.TelegramID, Valid: true}
	}
	err := r.db.db.GetContext(ctx, &u.ID, q,
		u.Username, u.FirstName, u.LastName, u.Email, tgID, u.TelegramUsername, u.IsSuperuser)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when the user does not exist.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*election.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// GetByTelegramID returns nil, nil when no user linked that Telegram account.
func (r *UserRepository) GetByTelegramID(ctx context.Context, tgID int64) (*election.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE telegram_id = ?`, tgID)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*election.User, error) {
	var row userRow
	err := r.db.db.GetContext(ctx, &row, r.db.db.Rebind(query), arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return row.toUser(), nil
}

// HasPermission reports whether the permission was granted to the user.
// Superuser status is not consulted here.
func (r *UserRepository) HasPermission(ctx context.Context, userID int64, perm string) (bool, error) {
	var n int
	q := r.db.db.Rebind(`SELECT COUNT(*) FROM user_permissions WHERE user_id = ? AND codename = ?`)
	if err := r.db.db.GetContext(ctx, &n, q, userID, perm); err != nil {
		return false, fmt.Errorf("check permission: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepository) GrantPermission(ctx context.Context, userID int64, perm string) error {
	q := r.db.db.Rebind(`
		INSERT INTO user_permissions (user_id, codename)
		VALUES (?, ?)
		ON CONFLICT (user_id, codename) DO NOTHING
	`)
	if _, err := r.db.db.ExecContext(ctx, q, userID, perm); err != nil {
		return fmt.Errorf("grant permission: %w", err)
	}
	return nil
}
