// handlers/teams.go - Submission intake and preference-chart lookups
package handlers

import (
	"errors"
	"log"

	"biasboard/config"
	"biasboard/models"
	"biasboard/notifications"
	"biasboard/services"
	"biasboard/ticker"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	approvalService *services.ApprovalService
	groupService    *services.GroupService
	adminHub        *notifications.Hub
)

// InitHandlers wires the services into the package. Must be called after the
// database is up and before routes are registered.
func InitHandlers(db *gorm.DB, cfg *config.Config, hub *notifications.Hub) {
	approvalService = services.NewApprovalService(db, cfg.StorageTimeout)
	groupService = services.NewGroupService(db, cfg.StorageTimeout, cfg.CacheTTL)
	adminHub = hub
}

// ApprovalService exposes the shared approval service to the admin handlers.
func ApprovalService() *services.ApprovalService {
	return approvalService
}

// AdminHub exposes the shared notifications hub to the admin handlers.
func AdminHub() *notifications.Hub {
	return adminHub
}

// SubmitTeam accepts a team submission into the review queue
// POST /api/submit-team
func SubmitTeam(c *fiber.Ctx) error {
	var sub services.Submission
	if err := c.BodyParser(&sub); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	pending, err := approvalService.Submit(c.UserContext(), &sub)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrMissingFields):
			return c.Status(400).JSON(fiber.Map{
				"error": "Required fields are missing (name, ticker, logo, groupType, members)",
			})
		case errors.Is(err, models.ErrInvalidGroupType):
			return c.Status(400).JSON(fiber.Map{"error": "Invalid groupType"})
		case errors.Is(err, models.ErrTickerTaken):
			return c.Status(409).JSON(fiber.Map{"error": "Ticker already exists"})
		case errors.Is(err, models.ErrTickerPending):
			return c.Status(409).JSON(fiber.Map{"error": "Ticker is already pending approval"})
		case errors.Is(err, models.ErrPartialSubmission):
			return c.Status(500).JSON(fiber.Map{"error": "Failed to submit members"})
		default:
			log.Printf("SubmitTeam: %v", err)
			return c.Status(500).JSON(fiber.Map{"error": "Failed to submit team"})
		}
	}

	adminHub.Broadcast(notifications.Event{
		Type:          "team_submitted",
		PendingTeamID: pending.ID,
		Ticker:        pending.Ticker,
		Name:          pending.Name,
	})

	return c.Status(201).JSON(fiber.Map{
		"success":       true,
		"pendingTeamId": pending.ID,
		"message":       "Team submitted for approval",
	})
}

// GenerateTicker derives a ticker for a display name, for forms that want the
// server-side derivation instead of doing it client-side
// GET /api/ticker?name=
func GenerateTicker(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name query parameter is required"})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"ticker":  ticker.Generate(name),
	})
}

// GetGroups lists live teams for the preference chart
// GET /api/groups?type=&gender=
func GetGroups(c *fiber.Ctx) error {
	groups, err := groupService.ListGroups(c.UserContext(), c.Query("type"), c.Query("gender"))
	if err != nil {
		log.Printf("GetGroups: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch groups"})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"groups":  groups,
	})
}

// GetGroup fetches one live team by ticker
// GET /api/groups/:ticker
func GetGroup(c *fiber.Ctx) error {
	group, err := groupService.GetGroup(c.UserContext(), c.Params("ticker"))
	if err != nil {
		if errors.Is(err, models.ErrTeamNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Team not found"})
		}
		log.Printf("GetGroup: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch group"})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"group":   group,
	})
}

// GetGroupMembers lists the members of a live team
// GET /api/groups/:ticker/members
func GetGroupMembers(c *fiber.Ctx) error {
	members, err := groupService.ListMembers(c.UserContext(), c.Params("ticker"))
	if err != nil {
		if errors.Is(err, models.ErrTeamNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Team not found"})
		}
		log.Printf("GetGroupMembers: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch members"})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"members": members,
	})
}
