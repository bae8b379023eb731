// models/artist_member.go
package models

import "time"

// ArtistMember belongs to exactly one Team. MemberOrder is the display/reveal
// sequence, contiguous starting at 1 within a team.
type ArtistMember struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	TeamID       uint      `json:"team_id" gorm:"not null;index"`
	Team         *Team     `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	Name         string    `json:"name" gorm:"not null;size:100"`
	ProfileImage string    `json:"profile_image"`
	MemberOrder  int       `json:"member_order" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}

func (ArtistMember) TableName() string {
	return "artist_members"
}
