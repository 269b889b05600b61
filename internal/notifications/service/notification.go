package service

import (
	"context"
	"sort"
	"sync"

	apperrors "garageportal/pkg/errors"
	"garageportal/pkg/logger"
	"garageportal/pkg/model"
	"garageportal/pkg/session"
)

// NotificationsAPI is the slice of the notification backend the bell icon
// and inbox consume.
type NotificationsAPI interface {
	GetAll(ctx context.Context, token string) ([]model.Notification, error)
	MarkViewed(ctx context.Context, token string, notificationID int) error
}

// Inbox is the rendered notification screen: newest first, with the unread
// badge count.
type Inbox struct {
	Notifications []model.Notification `json:"notifications"`
	Unread        int                  `json:"unread"`
}

type NotificationService interface {
	List(ctx context.Context, sess *session.Session) (*Inbox, error)
	MarkViewed(ctx context.Context, sess *session.Session, notificationID int) (*Inbox, error)
}

type inboxState struct {
	mu            sync.RWMutex
	notifications []model.Notification
}

type notificationService struct {
	api NotificationsAPI
	log *logger.Logger

	mu     sync.RWMutex
	states map[string]*inboxState
}

func NewNotificationService(api NotificationsAPI, log *logger.Logger) NotificationService {
	return &notificationService{
		api:    api,
		log:    log,
		states: make(map[string]*inboxState),
	}
}

func (s *notificationService) state(userID string) *inboxState {
	s.mu.RLock()
	st, ok := s.states[userID]
	s.mu.RUnlock()
	if ok {
		return st
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok = s.states[userID]; !ok {
		st = &inboxState{}
		s.states[userID] = st
	}
	return st
}

// List fetches the user's notifications and sorts them newest first. The
// backend does not guarantee order.
func (s *notificationService) List(ctx context.Context, sess *session.Session) (*Inbox, error) {
	notifications, err := s.api.GetAll(ctx, sess.Token)
	if err != nil {
		s.log.Error("Failed to fetch notifications", "user_id", sess.UserID, "error", err)
		return nil, err
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt > notifications[j].CreatedAt
	})

	st := s.state(sess.UserID)
	st.mu.Lock()
	st.notifications = notifications
	inbox := snapshotInbox(st.notifications)
	st.mu.Unlock()

	return inbox, nil
}

// MarkViewed issues the upstream PATCH and then flips the local flag, so the
// unread badge drops by exactly one without a refetch.
func (s *notificationService) MarkViewed(ctx context.Context, sess *session.Session, notificationID int) (*Inbox, error) {
	if notificationID <= 0 {
		return nil, apperrors.InvalidInput("Invalid notification ID")
	}

	if err := s.api.MarkViewed(ctx, sess.Token, notificationID); err != nil {
		s.log.Error("Failed to mark notification viewed",
			"user_id", sess.UserID,
			"notification_id", notificationID,
			"error", err,
		)
		return nil, err
	}

	st := s.state(sess.UserID)
	st.mu.Lock()
	for i := range st.notifications {
		if st.notifications[i].NotificationID == notificationID {
			st.notifications[i].Viewed = true
		}
	}
	inbox := snapshotInbox(st.notifications)
	st.mu.Unlock()

	return inbox, nil
}

func snapshotInbox(notifications []model.Notification) *Inbox {
	out := make([]model.Notification, len(notifications))
	copy(out, notifications)

	unread := 0
	for _, n := range out {
		if !n.Viewed {
			unread++
		}
	}

	return &Inbox{Notifications: out, Unread: unread}
}
