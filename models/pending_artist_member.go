// models/pending_artist_member.go
package models

import "time"

// PendingArtistMember is owned by exactly one PendingTeam. TeamID stays nil
// until the submission is approved, at which point it is back-filled with the
// id of the newly created Team (cross-reference only; the live copy lives in
// artist_members).
type PendingArtistMember struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	PendingTeamID uint      `json:"pending_team_id" gorm:"not null;index"`
	TeamID        *uint     `json:"team_id" gorm:"index"`
	Name          string    `json:"name" gorm:"not null;size:100"`
	ProfileImage  string    `json:"profile_image"`
	MemberOrder   int       `json:"member_order" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
}

func (PendingArtistMember) TableName() string {
	return "pending_artist_members"
}
