package models

import "time"

const NotificationKindPlantShare = "plant_share"

// Notification is an append-only social event addressed to ReceiverID.
// Only IsRead ever changes after creation.
type Notification struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Kind             string    `json:"kind" gorm:"size:30;index"`
	ReceiverID       uint      `json:"receiver_id" gorm:"not null;index:idx_notification_receiver_created,priority:1"`
	SenderID         uint      `json:"sender_id" gorm:"not null;index"`
	RelatedContentID *uint     `json:"related_content_id,omitempty"` // plant ID for shares
	Message          string    `json:"message"`
	IsRead           bool      `json:"is_read" gorm:"not null;index"`
	CreatedAt        time.Time `json:"created_at" gorm:"index:idx_notification_receiver_created,priority:2"`
}

// NewNotification is the input to the ledger's record operation.
type NewNotification struct {
	ReceiverID       uint
	SenderID         uint
	Kind             string
	Message          string
	RelatedContentID *uint
}

// NotificationPage is one newest-first slice of an inbox. NextCursor is the
// value to pass as ?before= for the following page, zero on the last page.
type NotificationPage struct {
	Notifications []EnrichedNotification `json:"notifications"`
	NextCursor    uint                   `json:"next_cursor,omitempty"`
}

// EnrichedNotification includes sender info
type EnrichedNotification struct {
	Notification
	Sender AccountCompact `json:"sender"`
}
