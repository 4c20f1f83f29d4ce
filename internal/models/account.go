package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Account is a registered plant keeper.
type Account struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"size:80;uniqueIndex;not null"`
	Email        string     `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`                               // bcrypt hash, never serialized
	FirebaseUID  *string    `json:"firebase_uid,omitempty" gorm:"size:128;uniqueIndex"` // set once the account signs in through Firebase
	LoginStreak  int        `json:"login_streak" gorm:"not null"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// AccountCompact is the public face of an account embedded in lists and feeds.
type AccountCompact struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func (a *Account) ToCompact() AccountCompact {
	return AccountCompact{ID: a.ID, Username: a.Username}
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// LoginResult is returned by both local and Firebase sign-in.
type LoginResult struct {
	Token   string  `json:"token"`
	Account Account `json:"account"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	AccountID uint   `json:"account_id"`
	Username  string `json:"username"`
	jwt.RegisteredClaims
}
