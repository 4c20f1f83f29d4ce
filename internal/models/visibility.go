package models

import "time"

const (
	FontSizeSmall  = "small"
	FontSizeNormal = "normal"
	FontSizeLarge  = "large"
)

// VisibilityPolicy holds per-account privacy flags plus the colocated display
// preference. A missing row means the account runs on DefaultVisibilityPolicy.
type VisibilityPolicy struct {
	AccountID           uint      `json:"account_id" gorm:"primaryKey;autoIncrement:false"`
	IsProfilePublic     bool      `json:"is_profile_public" gorm:"not null"`
	AllowFriendRequests bool      `json:"allow_friend_requests" gorm:"not null"`
	FontSize            string    `json:"font_size" gorm:"size:10;not null"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func DefaultVisibilityPolicy(accountID uint) VisibilityPolicy {
	return VisibilityPolicy{
		AccountID:           accountID,
		IsProfilePublic:     true,
		AllowFriendRequests: true,
		FontSize:            FontSizeNormal,
	}
}

// PolicyUpdate enumerates the settable fields; nil leaves the stored value alone.
type PolicyUpdate struct {
	IsProfilePublic     *bool   `json:"is_profile_public,omitempty"`
	AllowFriendRequests *bool   `json:"allow_friend_requests,omitempty"`
	FontSize            *string `json:"font_size,omitempty" validate:"omitempty,oneof=small normal large"`
}

// Apply copies the non-nil fields onto p.
func (u PolicyUpdate) Apply(p *VisibilityPolicy) {
	if u.IsProfilePublic != nil {
		p.IsProfilePublic = *u.IsProfilePublic
	}
	if u.AllowFriendRequests != nil {
		p.AllowFriendRequests = *u.AllowFriendRequests
	}
	if u.FontSize != nil {
		p.FontSize = *u.FontSize
	}
}
