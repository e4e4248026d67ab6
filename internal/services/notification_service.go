package services

import (
	"database/sql"
	"errors"

	"nexusops/internal/domain"
	"nexusops/internal/repos"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationService struct {
	Notifs *repos.NotificationRepo
}

func NewNotificationService(notifs *repos.NotificationRepo) *NotificationService {
	return &NotificationService{Notifs: notifs}
}

func (s *NotificationService) Notify(userID, typ, title, message, priority string) (string, error) {
	if priority == "" {
		priority = "normal"
	}
	n := domain.Notification{
		ID:       uuid.NewString(),
		UserID:   userID,
		Type:     typ,
		Title:    title,
		Message:  message,
		Priority: priority,
	}
	if err := s.Notifs.Create(n); err != nil {
		return "", err
	}
	return n.ID, nil
}

// MarkRead is idempotent: marking an already-read notification succeeds.
// Another user's notification reads as not found rather than forbidden, so
// the endpoint does not leak which ids exist.
func (s *NotificationService) MarkRead(userID, id string) error {
	ok, err := s.Notifs.MarkRead(id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotificationNotFound
	}
	return nil
}

type Inbox struct {
	Items  []domain.Notification `json:"items"`
	Unread int                   `json:"unread"`
}

func (s *NotificationService) InboxFor(userID string, limit int) (Inbox, error) {
	items, err := s.Notifs.ListByUser(userID, limit)
	if err != nil && err != sql.ErrNoRows {
		return Inbox{}, err
	}
	unread, err := s.Notifs.UnreadCount(userID)
	if err != nil {
		return Inbox{}, err
	}
	if items == nil {
		items = []domain.Notification{}
	}
	return Inbox{Items: items, Unread: unread}, nil
}
