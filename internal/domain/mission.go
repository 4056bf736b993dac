package domain

import (
	"errors"
	"time"
)

type MissionID int64

type MissionStatus string

const (
	MissionOpen       MissionStatus = "open"
	MissionInProgress MissionStatus = "in_progress"
	MissionSuccess    MissionStatus = "success"
	MissionFailed     MissionStatus = "failed"
)

var (
	ErrMissionNameEmpty = errors.New("mission name empty")
	ErrBadStatus        = errors.New("unknown mission status")
	ErrNotFound         = errors.New("not found")
	ErrNotChief         = errors.New("caller is not the mission chief")
	ErrMissionClosed    = errors.New("mission is not open for joining")
	ErrAlreadyCrew      = errors.New("already a crew member")
	ErrNotCrew          = errors.New("not a crew member")
	ErrChiefCannotLeave = errors.New("chief cannot leave own mission")
)

func (s MissionStatus) Valid() bool {
	switch s {
	case MissionOpen, MissionInProgress, MissionSuccess, MissionFailed:
		return true
	}
	return false
}

// Mission is the listing/detail row: the bare missions table columns plus
// the chief display name and crew count the repository joins in.
type Mission struct {
	ID               MissionID     `db:"id" json:"id"`
	Name             string        `db:"name" json:"name"`
	Description      string        `db:"description" json:"description"`
	Status           MissionStatus `db:"status" json:"status"`
	ChiefID          BrawlerID     `db:"chief_id" json:"chief_id"`
	ChiefDisplayName string        `db:"chief_display_name" json:"chief_display_name"`
	ImageURL         string        `db:"image_url" json:"image_url,omitempty"`
	CrewCount        int64         `db:"crew_count" json:"crew_count"`
	CreatedAt        time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time     `db:"updated_at" json:"updated_at"`
}

// MissionFilter narrows the mission listing; zero values mean "any".
type MissionFilter struct {
	Status MissionStatus
	Name   string
}

func (f MissionFilter) Empty() bool { return f.Status == "" && f.Name == "" }

type AddMission struct {
	Name        string
	Description string
	ChiefID     BrawlerID
}

type EditMission struct {
	Name        *string
	Description *string
	Status      *MissionStatus
}
