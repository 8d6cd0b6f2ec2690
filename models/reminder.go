package models

import "time"

const MaxReminderContentLength = 120

type Reminder struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	Important bool      `json:"important"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReminderResponse is the wire view of a reminder. Timestamps are Unix milliseconds.
type ReminderResponse struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Important bool   `json:"important"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

func (r *Reminder) ToResponse() ReminderResponse {
	return ReminderResponse{
		ID:        r.ID,
		Content:   r.Content,
		Important: r.Important,
		CreatedAt: r.CreatedAt.UnixMilli(),
		UpdatedAt: r.UpdatedAt.UnixMilli(),
	}
}

func ToReminderResponses(reminders []Reminder) []ReminderResponse {
	out := make([]ReminderResponse, 0, len(reminders))
	for i := range reminders {
		out = append(out, reminders[i].ToResponse())
	}
	return out
}

type CreateReminderRequest struct {
	Content   string `json:"content"`
	Important bool   `json:"important"`
}

// UpdateReminderRequest holds a partial update; nil fields are left untouched.
type UpdateReminderRequest struct {
	Content   *string `json:"content,omitempty"`
	Important *bool   `json:"important,omitempty"`
}

func (u UpdateReminderRequest) IsEmpty() bool {
	return u.Content == nil && u.Important == nil
}
