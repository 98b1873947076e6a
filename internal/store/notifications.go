package store

import "github.com/CrissP24/clinica-joya-sub000/pkg/types"

func notificationKey(id string) string { return prefixNotifications + id }

// AddNotification assigns an id and timestamps, persists the notification
// and returns the stored copy. New notifications are always unread.
func (s *Store) AddNotification(n *types.Notification) (*types.Notification, error) {
	now := timestamp()
	created := *n
	created.ID = s.newID()
	created.IsRead = false
	created.CreatedAt = now
	created.UpdatedAt = now

	if err := s.putJSON(notificationKey(created.ID), &created); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"notification_id": created.ID,
		"user_id":         created.UserID,
		"type":            created.Type,
	}).Debug("notification created")
	return &created, nil
}

// GetNotifications returns every notification in the collection
func (s *Store) GetNotifications() ([]*types.Notification, error) {
	return listJSON[types.Notification](s, prefixNotifications)
}

// GetNotificationsByUser returns all notifications addressed to one user
func (s *Store) GetNotificationsByUser(userID string) ([]*types.Notification, error) {
	notifications, err := s.GetNotifications()
	if err != nil && !types.IsDecode(err) {
		return nil, err
	}

	var out []*types.Notification
	for _, n := range notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, err
}

// MarkNotificationRead flips one notification to read and persists it.
// Returns a not found error if the notification does not exist.
func (s *Store) MarkNotificationRead(id string) (*types.Notification, error) {
	existing, err := getJSON[types.Notification](s, notificationKey(id))
	if err != nil {
		return nil, err
	}

	existing.IsRead = true
	existing.UpdatedAt = timestamp()

	if err := s.putJSON(notificationKey(id), existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// MarkAllNotificationsRead marks every notification for one user as read and
// returns how many were flipped. Notifications for other users are untouched.
func (s *Store) MarkAllNotificationsRead(userID string) (int, error) {
	notifications, err := s.GetNotificationsByUser(userID)
	if err != nil && !types.IsDecode(err) {
		return 0, err
	}

	flipped := 0
	for _, n := range notifications {
		if n.IsRead {
			continue
		}
		n.IsRead = true
		n.UpdatedAt = timestamp()
		if err := s.putJSON(notificationKey(n.ID), n); err != nil {
			return flipped, err
		}
		flipped++
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"count":   flipped,
	}).Debug("notifications marked read")
	return flipped, nil
}
