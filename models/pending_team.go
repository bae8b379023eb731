// models/pending_team.go
package models

import "time"

type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
)

// PendingTeam is a submitted-but-not-yet-reviewed team. Status transitions
// exactly once, pending -> approved or pending -> rejected, and is terminal
// thereafter. The row is retained after review as an audit trail; approval
// copies the data into teams/artist_members rather than moving it.
type PendingTeam struct {
	ID              uint                  `json:"id" gorm:"primaryKey"`
	Name            string                `json:"name" gorm:"not null;size:100"`
	Ticker          string                `json:"ticker" gorm:"not null;index;size:50"`
	GroupType       GroupType             `json:"group_type" gorm:"not null;size:20"`
	Logo            string                `json:"logo" gorm:"not null"`
	GroupPhoto      string                `json:"group_photo"`
	Status          SubmissionStatus      `json:"status" gorm:"not null;default:'pending';index"`
	SubmittedBy     *string               `json:"submitted_by"`
	SubmittedAt     time.Time             `json:"submitted_at" gorm:"not null;index"`
	ReviewedAt      *time.Time            `json:"reviewed_at"`
	ReviewedBy      *string               `json:"reviewed_by"`
	RejectionReason *string               `json:"rejection_reason"`
	Members         []PendingArtistMember `json:"members,omitempty" gorm:"foreignKey:PendingTeamID"`
}

func (PendingTeam) TableName() string {
	return "pending_teams"
}
