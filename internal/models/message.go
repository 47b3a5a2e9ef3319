package models

import "time"

// InternalMessage is one entry in an internal relay: either the staff relay
// shared by all engineers and the admin, or the per-engineer direct relay
// between that engineer and the admin. ReadBy always contains the sender.
type InternalMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	ReadBy     []string  `json:"read_by"`
}

// ReadByUser reports whether the given user has read the message.
func (m InternalMessage) ReadByUser(userID string) bool {
	for _, id := range m.ReadBy {
		if id == userID {
			return true
		}
	}
	return false
}
