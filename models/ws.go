package models

type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const (
	WSTypeWelcome         = "welcome"
	WSTypeReminderCreated = "reminder_created"
	WSTypeReminderUpdated = "reminder_updated"
	WSTypeReminderDeleted = "reminder_deleted"
)

type ReminderDeletedPayload struct {
	ID string `json:"id"`
}
