package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/bframe197/MilMedMatch/internal/model"
	"github.com/bframe197/MilMedMatch/internal/store"
)

type NotificationService interface {
	// Notify prepends a notification to every user match selects and
	// publishes it on each recipient's channel. Returns how many users
	// were reached.
	Notify(ctx context.Context, match func(model.User) bool, msg string, typ model.NotificationType) int

	// List returns a user's notifications, newest first.
	List(userID uuid.UUID) ([]model.Notification, error)

	// MarkAllRead flips every notification's read flag in one bulk update.
	MarkAllRead(userID uuid.UUID) (model.User, error)

	// UnreadCount reports how many notifications are unread.
	UnreadCount(userID uuid.UUID) (int, error)
}

// NotificationChannel is the Redis pub/sub channel carrying a user's new
// notifications for the WebSocket stream.
func NotificationChannel(userID uuid.UUID) string {
	return fmt.Sprintf("user_notifications:%s", userID.String())
}

type notificationService struct {
	store *store.Store
	rdb   *redis.Client
	now   func() time.Time
}

func NewNotificationService(s *store.Store, rdb *redis.Client) NotificationService {
	return &notificationService{store: s, rdb: rdb, now: time.Now}
}

func (s *notificationService) Notify(ctx context.Context, match func(model.User) bool, msg string, typ model.NotificationType) int {
	n := model.Notification{
		ID:        uuid.New(),
		Message:   msg,
		Type:      typ,
		CreatedAt: s.now(),
	}

	// Capture recipients before mutating so the publish loop matches the
	// same set the store updated.
	var recipients []uuid.UUID
	count := s.store.NotifyUsers(func(u model.User) bool {
		if match(u) {
			recipients = append(recipients, u.ID)
			return true
		}
		return false
	}, n)

	if s.rdb != nil {
		payload, err := json.Marshal(n)
		if err == nil {
			for _, id := range recipients {
				if err := s.rdb.Publish(ctx, NotificationChannel(id), payload).Err(); err != nil {
					slog.Warn("failed to publish notification", "user_id", id, "error", err)
				}
			}
		}
	}

	return count
}

func (s *notificationService) List(userID uuid.UUID) ([]model.Notification, error) {
	user, err := s.store.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	return user.Notifications, nil
}

func (s *notificationService) MarkAllRead(userID uuid.UUID) (model.User, error) {
	user, err := s.store.FindUserByID(userID)
	if err != nil {
		return model.User{}, err
	}
	for i := range user.Notifications {
		user.Notifications[i].Read = true
	}
	if err := s.store.ReplaceUser(user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (s *notificationService) UnreadCount(userID uuid.UUID) (int, error) {
	user, err := s.store.FindUserByID(userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range user.Notifications {
		if !n.Read {
			count++
		}
	}
	return count, nil
}
