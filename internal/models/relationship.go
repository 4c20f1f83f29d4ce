package models

import (
	"time"

	"gorm.io/gorm"
)

type RelationshipStatus string

const (
	RelationshipPending  RelationshipStatus = "pending"
	RelationshipAccepted RelationshipStatus = "accepted"
)

// RelationshipEdge records that RequesterID asked TargetID to connect.
// Storage is directional so we know who asked; an accepted edge means the two
// accounts are mutual friends regardless of direction.
//
// PairLowID/PairHighID hold the unordered pair so the unique index rejects a
// second edge between the same two accounts in either direction.
type RelationshipEdge struct {
	ID          uint               `json:"id" gorm:"primaryKey"`
	RequesterID uint               `json:"requester_id" gorm:"not null;index"`
	TargetID    uint               `json:"target_id" gorm:"not null;index"`
	PairLowID   uint               `json:"-" gorm:"not null;uniqueIndex:idx_relationship_pair"`
	PairHighID  uint               `json:"-" gorm:"not null;uniqueIndex:idx_relationship_pair"`
	Status      RelationshipStatus `json:"status" gorm:"type:varchar(20);not null;index"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func (RelationshipEdge) TableName() string {
	return "relationship_edges"
}

// BeforeCreate fills the unordered pair columns.
func (e *RelationshipEdge) BeforeCreate(_ *gorm.DB) error {
	e.PairLowID, e.PairHighID = e.RequesterID, e.TargetID
	if e.PairLowID > e.PairHighID {
		e.PairLowID, e.PairHighID = e.PairHighID, e.PairLowID
	}
	return nil
}

// Other returns the account on the far side of the edge from accountID.
func (e *RelationshipEdge) Other(accountID uint) uint {
	if e.RequesterID == accountID {
		return e.TargetID
	}
	return e.RequesterID
}

// Connections is an account's view of its relationship graph.
// Pending holds requests awaiting this account's decision; requests it sent
// itself are kept apart in SentPending.
type Connections struct {
	Accepted    []AccountCompact `json:"accepted"`
	Pending     []AccountCompact `json:"pending"`
	SentPending []AccountCompact `json:"sent_pending"`
}

type ConnectionRequest struct {
	Username string `json:"username" validate:"required,max=80"`
}

// ConnectionDecision is the body of accept and decline calls.
type ConnectionDecision struct {
	RequesterID uint `json:"requester_id" validate:"required"`
}

type RemoveConnectionRequest struct {
	AccountID uint `json:"account_id" validate:"required"`
}
