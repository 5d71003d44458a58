package domain

import "time"

// User is a customer identified by the chat platform's numeric id.
type User struct {
	ID        string    `json:"id"`
	ChatID    int64     `json:"chatId"`
	Username  string    `json:"username,omitempty"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// RosterEntry is one member of the admins or notification-receivers roster.
type RosterEntry struct {
	ChatID    int64     `json:"chatId"`
	AddedBy   int64     `json:"addedBy"`
	CreatedAt time.Time `json:"createdAt"`
}
