// Package domain contains entities without logic, just meta-data
// shared by the use cases and the adapters.
package domain

import (
	"errors"
	"time"
)

const (
	MaxUsernameLen    = 32
	MaxDisplayNameLen = 64
)

var (
	ErrUsernameTaken    = errors.New("username already taken")
	ErrUsernameEmpty    = errors.New("username empty")
	ErrUsernameTooLong  = errors.New("username too long")
	ErrDisplayNameEmpty = errors.New("display name empty")
	ErrPasswordTooShort = errors.New("password too short")
)

type BrawlerID int64

type Brawler struct {
	ID           BrawlerID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	DisplayName  string    `db:"display_name" json:"display_name"`
	Email        string    `db:"email" json:"email,omitempty"`
	AvatarURL    string    `db:"avatar_url" json:"avatar_url,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Passport is what a brawler carries after register/login.
type Passport struct {
	Token       string `json:"token"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// CrewMember is the roster view of one brawler inside a mission,
// with aggregate counters joined in by the repository.
type CrewMember struct {
	DisplayName         string `db:"display_name" json:"display_name"`
	AvatarURL           string `db:"avatar_url" json:"avatar_url"`
	MissionSuccessCount int64  `db:"mission_success_count" json:"mission_success_count"`
	MissionJoinedCount  int64  `db:"mission_joined_count" json:"mission_joined_count"`
}

func ValidateRegistration(username, password, displayName string) error {
	switch {
	case username == "":
		return ErrUsernameEmpty
	case len(username) > MaxUsernameLen:
		return ErrUsernameTooLong
	case displayName == "" || len(displayName) > MaxDisplayNameLen:
		return ErrDisplayNameEmpty
	case len(password) < 8:
		return ErrPasswordTooShort
	}
	return nil
}
