package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dfryer1193/photogram/shared/db"
	"github.com/dfryer1193/photogram/users/domain"
)

var _ domain.UserRepository = (*SQLiteUserRepository)(nil)

// SQLiteUserRepository implements domain.UserRepository using SQLite
type SQLiteUserRepository struct {
	db *sql.DB
}

func NewUserRepository(sqlDB *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{
		db: sqlDB,
	}
}

const insertUserQuery = `
	INSERT INTO users (username, created_at)
	VALUES (?, ?)
`

// Create registers a new user; usernames are unique
func (r *SQLiteUserRepository) Create(ctx context.Context, username string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}

	now := time.Now().UTC()
	res, err := db.GetExecutor(ctx, r.db).ExecContext(ctx, insertUserQuery, username, now)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%q: %w", username, domain.ErrUsernameTaken)
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read user id: %w", err)
	}

	return &domain.User{
		ID:        id,
		Username:  username,
		CreatedAt: now,
	}, nil
}

const getUserQuery = `
	SELECT id, username, created_at
	FROM users
	WHERE id = ?
`

func (r *SQLiteUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var (
		u         domain.User
		createdAt sql.NullTime
	)
	err := db.GetExecutor(ctx, r.db).QueryRowContext(ctx, getUserQuery, id).Scan(&u.ID, &u.Username, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if createdAt.Valid {
		u.CreatedAt = createdAt.Time
	}
	return &u, nil
}
