// models/team.go
package models

import "time"

type GroupType string

const (
	GroupTypeBoyGroup   GroupType = "boy_group"
	GroupTypeGirlGroup  GroupType = "girl_group"
	GroupTypeCoedGroup  GroupType = "coed_group"
	GroupTypeMaleSolo   GroupType = "male_solo"
	GroupTypeFemaleSolo GroupType = "female_solo"
)

// ValidGroupType reports whether s is one of the five accepted group types.
func ValidGroupType(s string) bool {
	switch GroupType(s) {
	case GroupTypeBoyGroup, GroupTypeGirlGroup, GroupTypeCoedGroup,
		GroupTypeMaleSolo, GroupTypeFemaleSolo:
		return true
	}
	return false
}

// Team is a live, approved group or solo-artist profile. Ticker is immutable
// once assigned.
type Team struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Name       string         `json:"name" gorm:"not null;size:100"`
	Ticker     string         `json:"ticker" gorm:"not null;uniqueIndex;size:50"`
	GroupType  GroupType      `json:"group_type" gorm:"not null;size:20;index"`
	Logo       string         `json:"logo" gorm:"not null"`
	GroupPhoto string         `json:"group_photo"`
	Members    []ArtistMember `json:"members,omitempty" gorm:"foreignKey:TeamID"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (Team) TableName() string {
	return "teams"
}
