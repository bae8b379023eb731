// services/approval_service.go - Submission intake and review workflow
package services

import (
	"context"
	"errors"
	"log"
	"time"

	"biasboard/cache"
	"biasboard/models"

	"gorm.io/gorm"
)

// Submission is an incoming team submission payload. Members are kept in the
// order the submitter arranged them; that order becomes member_order.
type Submission struct {
	Name        string             `json:"name"`
	Ticker      string             `json:"ticker"`
	Logo        string             `json:"logo"`
	GroupPhoto  string             `json:"groupPhoto"`
	GroupType   string             `json:"groupType"`
	Members     []SubmissionMember `json:"members"`
	SubmittedBy string             `json:"submittedBy"`
}

type SubmissionMember struct {
	Name         string `json:"name"`
	ProfileImage string `json:"profileImage"`
}

// ApprovalService owns every mutation of the pending and live tables: intake,
// listing for review, and the terminal approve/reject transitions.
type ApprovalService struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewApprovalService(db *gorm.DB, storageTimeout time.Duration) *ApprovalService {
	return &ApprovalService{db: db, timeout: storageTimeout}
}

// Validate checks the submission payload. It fails fast on the first invalid
// field class rather than accumulating per-field errors.
//
// Note: the member-count-vs-group-type rule (groups need two or more members,
// solos exactly one) is intentionally not checked here; the submission form
// is the only place that enforces it.
func (s *ApprovalService) Validate(sub *Submission) error {
	if sub.Name == "" || sub.Ticker == "" || sub.Logo == "" || sub.GroupType == "" || len(sub.Members) == 0 {
		return models.ErrMissingFields
	}
	for _, m := range sub.Members {
		if m.Name == "" {
			return models.ErrMissingFields
		}
	}
	if !models.ValidGroupType(sub.GroupType) {
		return models.ErrInvalidGroupType
	}
	return nil
}

// Submit validates the payload, checks the ticker against both the live table
// and pending submissions still awaiting review, and inserts the pending team
// with its members.
//
// The team row and the member rows are two separate writes on purpose: if the
// member insert fails the already-committed team row is left in place for
// manual cleanup and ErrPartialSubmission is returned.
func (s *ApprovalService) Submit(ctx context.Context, sub *Submission) (*models.PendingTeam, error) {
	if err := s.Validate(sub); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	db := s.db.WithContext(ctx)

	// Duplicate check is read-then-insert. Two racing submissions with the
	// same ticker can both pass it; the unique index on teams.ticker stops
	// the second one at promotion time.
	var count int64
	if err := db.Model(&models.Team{}).Where("ticker = ?", sub.Ticker).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, models.ErrTickerTaken
	}

	if err := db.Model(&models.PendingTeam{}).
		Where("ticker = ? AND status = ?", sub.Ticker, models.StatusPending).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, models.ErrTickerPending
	}

	pending := &models.PendingTeam{
		Name:        sub.Name,
		Ticker:      sub.Ticker,
		GroupType:   models.GroupType(sub.GroupType),
		Logo:        sub.Logo,
		GroupPhoto:  sub.GroupPhoto,
		Status:      models.StatusPending,
		SubmittedAt: time.Now().UTC(),
	}
	if sub.SubmittedBy != "" {
		pending.SubmittedBy = &sub.SubmittedBy
	}

	if err := db.Create(pending).Error; err != nil {
		return nil, err
	}

	members := make([]models.PendingArtistMember, len(sub.Members))
	for i, m := range sub.Members {
		members[i] = models.PendingArtistMember{
			PendingTeamID: pending.ID,
			Name:          m.Name,
			ProfileImage:  m.ProfileImage,
			MemberOrder:   i + 1,
		}
	}

	if err := db.Create(&members).Error; err != nil {
		log.Printf("Submit: pending team %d committed but member insert failed: %v", pending.ID, err)
		return nil, models.ErrPartialSubmission
	}

	pending.Members = members
	return pending, nil
}

// ListPending returns every submission still awaiting review, newest first,
// each with its members in display order.
func (s *ApprovalService) ListPending(ctx context.Context) ([]models.PendingTeam, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var teams []models.PendingTeam
	err := s.db.WithContext(ctx).
		Where("status = ?", models.StatusPending).
		Order("submitted_at DESC").
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("member_order ASC")
		}).
		Find(&teams).Error
	return teams, err
}

// GetPendingWithMembers fetches one pending team (any status) with its
// members in display order.
func (s *ApprovalService) GetPendingWithMembers(ctx context.Context, id uint) (*models.PendingTeam, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var team models.PendingTeam
	err := s.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("member_order ASC")
		}).
		First(&team, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrPendingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// Approve promotes a pending team into the live tables and marks it approved.
//
// The whole step runs in one transaction, and the status flip is a single
// conditional UPDATE guarded by status='pending'. Of two concurrent approvals
// of the same id exactly one can flip the row; the other sees zero rows
// affected and gets ErrAlreadyReviewed.
func (s *ApprovalService) Approve(ctx context.Context, pendingTeamID uint, reviewerName string) (uint, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var teamID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pending models.PendingTeam
		if err := tx.Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("member_order ASC")
		}).First(&pending, pendingTeamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrPendingNotFound
			}
			return err
		}

		res := tx.Model(&models.PendingTeam{}).
			Where("id = ? AND status = ?", pendingTeamID, models.StatusPending).
			Updates(map[string]interface{}{
				"status":      models.StatusApproved,
				"reviewed_at": time.Now().UTC(),
				"reviewed_by": nullableString(reviewerName),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrAlreadyReviewed
		}

		team := models.Team{
			Name:       pending.Name,
			Ticker:     pending.Ticker,
			GroupType:  pending.GroupType,
			Logo:       pending.Logo,
			GroupPhoto: pending.GroupPhoto,
		}
		if err := tx.Create(&team).Error; err != nil {
			return err
		}

		for _, pm := range pending.Members {
			member := models.ArtistMember{
				TeamID:       team.ID,
				Name:         pm.Name,
				ProfileImage: pm.ProfileImage,
				MemberOrder:  pm.MemberOrder,
			}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
		}

		// Back-fill the audit rows with the live team id.
		if err := tx.Model(&models.PendingArtistMember{}).
			Where("pending_team_id = ?", pendingTeamID).
			Update("team_id", team.ID).Error; err != nil {
			return err
		}

		teamID = team.ID

		// The read side now has a new live team.
		cache.DeletePrefix(ctx, "groups:")
		cache.Delete(ctx, "group:"+pending.Ticker, "members:"+pending.Ticker)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return teamID, nil
}

// Reject marks a pending team rejected with a reason. No live rows are
// created. Same status guard as Approve; the decision is terminal.
func (s *ApprovalService) Reject(ctx context.Context, pendingTeamID uint, rejectionReason, reviewerName string) error {
	if rejectionReason == "" {
		return models.ErrMissingRejectionReason
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	db := s.db.WithContext(ctx)

	res := db.Model(&models.PendingTeam{}).
		Where("id = ? AND status = ?", pendingTeamID, models.StatusPending).
		Updates(map[string]interface{}{
			"status":           models.StatusRejected,
			"rejection_reason": rejectionReason,
			"reviewed_at":      time.Now().UTC(),
			"reviewed_by":      nullableString(reviewerName),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := db.Model(&models.PendingTeam{}).Where("id = ?", pendingTeamID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return models.ErrPendingNotFound
		}
		return models.ErrAlreadyReviewed
	}
	return nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
