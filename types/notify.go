package types

// NotifyTypeServerStatus is the notification type carrying a StatusEvent.
const NotifyTypeServerStatus = "server_status"

// Notification represents a notification message structure
type Notification struct {
	Type    string         `json:"type,omitempty"`    // e.g. "server_status"
	Title   string         `json:"title,omitempty"`   // Notification title
	Message string         `json:"message,omitempty"` // Notification message/content
	Data    map[string]any `json:"data,omitempty"`    // Additional data fields
}
