package repos

import (
	"nexusops/internal/domain"

	"github.com/jmoiron/sqlx"
)

type NotificationRepo struct{ db *sqlx.DB }

func NewNotificationRepo(db *sqlx.DB) *NotificationRepo { return &NotificationRepo{db: db} }

func (r *NotificationRepo) Create(n domain.Notification) error {
	_, err := r.db.Exec(`
	  INSERT INTO notifications(id, user_id, type, title, message, read, priority)
	  VALUES(?, ?, ?, ?, ?, 0, ?)
	`, n.ID, n.UserID, n.Type, n.Title, n.Message, n.Priority)
	return err
}

func (r *NotificationRepo) Get(id string) (domain.Notification, error) {
	var n domain.Notification
	err := r.db.Get(&n, `
	  SELECT id, user_id, type, title, message, read, priority,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM notifications WHERE id = ?
	`, id)
	return n, err
}

func (r *NotificationRepo) ListByUser(userID string, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []domain.Notification
	err := r.db.Select(&out, `
	  SELECT id, user_id, type, title, message, read, priority,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM notifications
	  WHERE user_id = ?
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?
	`, userID, limit)
	return out, err
}

func (r *NotificationRepo) UnreadCount(userID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM notifications WHERE user_id = ? AND read = 0`, userID)
	return n, err
}

// MarkRead flips the read flag for a notification owned by userID. Safe to
// call twice: the second write is a no-op on the flag and only bumps
// updated_at. Rows belonging to other users are never matched.
func (r *NotificationRepo) MarkRead(id, userID string) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE notifications SET read = 1, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND user_id = ?
	`, id, userID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
