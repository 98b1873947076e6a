package types

// NotificationType represents the event category of a notification
type NotificationType string

const (
	NotificationAppointment NotificationType = "appointment"
	NotificationCertificate NotificationType = "certificate"
	NotificationExam        NotificationType = "exam"
	NotificationSystem      NotificationType = "system"
)

// Notification represents an in-app notification addressed to one user
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"isRead"`
	CreatedAt string           `json:"createdAt"`
	UpdatedAt string           `json:"updatedAt"`
}
