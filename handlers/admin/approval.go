// handlers/admin/approval.go - Review queue endpoints
package admin

import (
	"errors"
	"log"

	"biasboard/handlers"
	"biasboard/middleware"
	"biasboard/models"
	"biasboard/notifications"

	"github.com/gofiber/fiber/v2"
)

// GetPendingTeams lists submissions awaiting review, newest first
// GET /api/admin/pending-teams
func GetPendingTeams(c *fiber.Ctx) error {
	teams, err := handlers.ApprovalService().ListPending(c.UserContext())
	if err != nil {
		log.Printf("GetPendingTeams: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch pending teams"})
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"pendingTeams": teams,
	})
}

// GetPendingTeam fetches one submission with its members, any status
// GET /api/admin/pending-teams/:id
func GetPendingTeam(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid pending team ID"})
	}

	team, err := handlers.ApprovalService().GetPendingWithMembers(c.UserContext(), uint(id))
	if err != nil {
		if errors.Is(err, models.ErrPendingNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Pending team not found"})
		}
		log.Printf("GetPendingTeam: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch pending team"})
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"pendingTeam": team,
	})
}

type ApproveRequest struct {
	PendingTeamID uint   `json:"pendingTeamId"`
	ReviewerName  string `json:"reviewerName"`
}

// ApproveTeam promotes a pending submission into the live tables
// POST /api/admin/approve-team
func ApproveTeam(c *fiber.Ctx) error {
	var req ApproveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.PendingTeamID == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "pendingTeamId is required"})
	}

	reviewerName := req.ReviewerName
	if reviewerName == "" {
		reviewerName = middleware.GetReviewerName(c)
	}

	svc := handlers.ApprovalService()
	teamID, err := svc.Approve(c.UserContext(), req.PendingTeamID, reviewerName)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPendingNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "Pending team not found"})
		case errors.Is(err, models.ErrAlreadyReviewed):
			return c.Status(409).JSON(fiber.Map{"error": "Pending team has already been reviewed"})
		default:
			log.Printf("ApproveTeam: %v", err)
			return c.Status(500).JSON(fiber.Map{"error": "Failed to approve team"})
		}
	}

	if pending, err := svc.GetPendingWithMembers(c.UserContext(), req.PendingTeamID); err == nil {
		handlers.AdminHub().Broadcast(notifications.Event{
			Type:          "team_approved",
			PendingTeamID: pending.ID,
			Ticker:        pending.Ticker,
			Name:          pending.Name,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"teamId":  teamID,
	})
}

type RejectRequest struct {
	PendingTeamID   uint   `json:"pendingTeamId"`
	RejectionReason string `json:"rejectionReason"`
	ReviewerName    string `json:"reviewerName"`
}

// RejectTeam marks a pending submission rejected with a reason
// POST /api/admin/reject-team
func RejectTeam(c *fiber.Ctx) error {
	var req RejectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.PendingTeamID == 0 || req.RejectionReason == "" {
		return c.Status(400).JSON(fiber.Map{"error": "pendingTeamId and rejectionReason are required"})
	}

	reviewerName := req.ReviewerName
	if reviewerName == "" {
		reviewerName = middleware.GetReviewerName(c)
	}

	svc := handlers.ApprovalService()
	if err := svc.Reject(c.UserContext(), req.PendingTeamID, req.RejectionReason, reviewerName); err != nil {
		switch {
		case errors.Is(err, models.ErrMissingRejectionReason):
			return c.Status(400).JSON(fiber.Map{"error": "pendingTeamId and rejectionReason are required"})
		case errors.Is(err, models.ErrPendingNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "Pending team not found"})
		case errors.Is(err, models.ErrAlreadyReviewed):
			return c.Status(409).JSON(fiber.Map{"error": "Pending team has already been reviewed"})
		default:
			log.Printf("RejectTeam: %v", err)
			return c.Status(500).JSON(fiber.Map{"error": "Failed to reject team"})
		}
	}

	if pending, err := svc.GetPendingWithMembers(c.UserContext(), req.PendingTeamID); err == nil {
		handlers.AdminHub().Broadcast(notifications.Event{
			Type:          "team_rejected",
			PendingTeamID: pending.ID,
			Ticker:        pending.Ticker,
			Name:          pending.Name,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
