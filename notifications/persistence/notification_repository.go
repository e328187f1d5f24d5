package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dfryer1193/photogram/notifications/domain"
	"github.com/dfryer1193/photogram/shared/db"
)

var _ domain.NotificationRepository = (*SQLiteNotificationRepository)(nil)

// SQLiteNotificationRepository implements domain.NotificationRepository using SQLite
type SQLiteNotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(sqlDB *sql.DB) *SQLiteNotificationRepository {
	return &SQLiteNotificationRepository{
		db: sqlDB,
	}
}

const insertNotificationQuery = `
	INSERT INTO notifications (actor_id, target_id, verb, image_id, created_at)
	VALUES (?, ?, ?, ?, ?)
`

func (r *SQLiteNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	if n == nil {
		return fmt.Errorf("notification cannot be nil")
	}

	var imageID any
	if n.ImageID > 0 {
		imageID = n.ImageID
	}

	now := time.Now().UTC()
	res, err := db.GetExecutor(ctx, r.db).ExecContext(ctx, insertNotificationQuery,
		n.ActorID,
		n.TargetID,
		n.Verb,
		imageID,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read notification id: %w", err)
	}

	n.ID = id
	n.CreatedAt = now
	return nil
}

const findNotificationQuery = `
	SELECT id, actor_id, target_id, verb, image_id, created_at
	FROM notifications
	WHERE actor_id = ? AND target_id = ? AND verb = ? AND image_id = ?
	ORDER BY id
	LIMIT 1
`

// Find returns (nil, nil) when no notification matches
func (r *SQLiteNotificationRepository) Find(ctx context.Context, actorID, targetID int64, verb string, imageID int64) (*domain.Notification, error) {
	var row notificationRow
	err := db.GetExecutor(ctx, r.db).QueryRowContext(ctx, findNotificationQuery, actorID, targetID, verb, imageID).Scan(
		&row.ID,
		&row.ActorID,
		&row.TargetID,
		&row.Verb,
		&row.ImageID,
		&row.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}

	return row.toDomain(), nil
}

const deleteNotificationQuery = `
	DELETE FROM notifications WHERE id = ?
`

func (r *SQLiteNotificationRepository) Delete(ctx context.Context, id int64) error {
	if _, err := db.GetExecutor(ctx, r.db).ExecContext(ctx, deleteNotificationQuery, id); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

const listNotificationsQuery = `
	SELECT id, actor_id, target_id, verb, image_id, created_at
	FROM notifications
	WHERE target_id = ?
	ORDER BY created_at DESC, id DESC
	LIMIT ?
`

// ListForTarget returns the newest notifications addressed to targetID
func (r *SQLiteNotificationRepository) ListForTarget(ctx context.Context, targetID int64, limit int) ([]*domain.Notification, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.GetExecutor(ctx, r.db).QueryContext(ctx, listNotificationsQuery, targetID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		var row notificationRow
		err := rows.Scan(
			&row.ID,
			&row.ActorID,
			&row.TargetID,
			&row.Verb,
			&row.ImageID,
			&row.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		notifications = append(notifications, row.toDomain())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}

	return notifications, nil
}

type notificationRow struct {
	ID        int64         `db:"id"`
	ActorID   int64         `db:"actor_id"`
	TargetID  int64         `db:"target_id"`
	Verb      string        `db:"verb"`
	ImageID   sql.NullInt64 `db:"image_id"`
	CreatedAt sql.NullTime  `db:"created_at"`
}

func (nr *notificationRow) toDomain() *domain.Notification {
	n := &domain.Notification{
		ID:       nr.ID,
		ActorID:  nr.ActorID,
		TargetID: nr.TargetID,
		Verb:     nr.Verb,
	}
	if nr.ImageID.Valid {
		n.ImageID = nr.ImageID.Int64
	}
	if nr.CreatedAt.Valid {
		n.CreatedAt = nr.CreatedAt.Time
	}
	return n
}
