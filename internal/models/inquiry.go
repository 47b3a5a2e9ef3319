package models

import "time"

type InquiryStatus string

const (
	InquiryStatusNew       InquiryStatus = "New"
	InquiryStatusRead      InquiryStatus = "Read"
	InquiryStatusArchived  InquiryStatus = "Archived"
	InquiryStatusConverted InquiryStatus = "Converted"
	InquiryStatusReplied   InquiryStatus = "Replied"
)

// Inquiry is a contact-form submission. ClientID is set when the sender was
// a logged-in client; public submissions carry only name and email.
type Inquiry struct {
	ID          string           `json:"id"`
	ClientID    string           `json:"client_id,omitempty"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	ProjectType string           `json:"project_type"`
	Budget      string           `json:"budget"`
	Message     string           `json:"message"`
	Status      InquiryStatus    `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	Thread      []InquiryMessage `json:"thread,omitempty"`
}

// InquiryMessage is one reply in an inquiry's thread.
type InquiryMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	SenderRole UserRole  `json:"sender_role"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
