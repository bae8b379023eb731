package admin

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"biasboard/config"
	"biasboard/database"
	"biasboard/handlers"
	"biasboard/middleware"
	"biasboard/models"
	"biasboard/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAdminApp(t *testing.T, adminEmails []string) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Team{},
		&models.ArtistMember{},
		&models.PendingTeam{},
		&models.PendingArtistMember{},
		&models.Reviewer{},
	))

	cfg := &config.Config{
		JWTSecret:      "test-secret-key-test-secret-key!",
		AdminEmails:    adminEmails,
		StorageTimeout: time.Second,
		CacheTTL:       time.Minute,
	}

	database.SetDB(db)
	handlers.InitHandlers(db, cfg, notifications.NewHub())
	Init(cfg)

	app := fiber.New()
	app.Post("/api/admin/login", Login)
	protected := app.Group("/api/admin", middleware.NewAdminAuth(cfg))
	protected.Get("/verify", VerifyToken)
	protected.Get("/pending-teams", GetPendingTeams)
	protected.Get("/pending-teams/:id", GetPendingTeam)
	protected.Post("/approve-team", ApproveTeam)
	protected.Post("/reject-team", RejectTeam)

	return app, db, cfg
}

func reviewerToken(t *testing.T, cfg *config.Config, email string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"reviewer_id": 1,
		"email":       email,
		"name":        "Test Reviewer",
		"exp":         time.Now().Add(time.Hour).Unix(),
		"iat":         time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)
	return token
}

func seedPending(t *testing.T, db *gorm.DB, ticker string) *models.PendingTeam {
	t.Helper()

	pending := &models.PendingTeam{
		Name:        "New Jeans",
		Ticker:      ticker,
		GroupType:   models.GroupTypeGirlGroup,
		Logo:        "logos/new-jeans.png",
		Status:      models.StatusPending,
		SubmittedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(pending).Error)
	require.NoError(t, db.Create(&[]models.PendingArtistMember{
		{PendingTeamID: pending.ID, Name: "Minji", ProfileImage: "m.png", MemberOrder: 1},
		{PendingTeamID: pending.ID, Name: "Hanni", ProfileImage: "h.png", MemberOrder: 2},
	}).Error)
	return pending
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]any
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

func TestLogin(t *testing.T) {
	app, db, _ := setupAdminApp(t, nil)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Reviewer{
		Email: "reviewer@example.com", Name: "Rev", Password: string(hash),
	}).Error)

	status, body := doJSON(t, app, "POST", "/api/admin/login", "", map[string]string{
		"email": "reviewer@example.com", "password": "correct horse",
	})
	assert.Equal(t, 200, status)
	assert.NotEmpty(t, body["token"])

	status, _ = doJSON(t, app, "POST", "/api/admin/login", "", map[string]string{
		"email": "reviewer@example.com", "password": "wrong",
	})
	assert.Equal(t, 401, status)

	status, _ = doJSON(t, app, "POST", "/api/admin/login", "", map[string]string{
		"email": "nobody@example.com", "password": "correct horse",
	})
	assert.Equal(t, 401, status)
}

func TestAdminEndpointsRequireAuth(t *testing.T) {
	app, _, _ := setupAdminApp(t, nil)

	for _, route := range []struct{ method, path string }{
		{"GET", "/api/admin/pending-teams"},
		{"POST", "/api/admin/approve-team"},
		{"POST", "/api/admin/reject-team"},
	} {
		status, _ := doJSON(t, app, route.method, route.path, "", map[string]any{})
		assert.Equal(t, 401, status, "%s %s must reject anonymous callers", route.method, route.path)
	}
}

func TestAllowListRestrictsAdmins(t *testing.T) {
	app, _, cfg := setupAdminApp(t, []string{"boss@example.com"})

	status, _ := doJSON(t, app, "GET", "/api/admin/pending-teams",
		reviewerToken(t, cfg, "intern@example.com"), nil)
	assert.Equal(t, 401, status)

	status, _ = doJSON(t, app, "GET", "/api/admin/pending-teams",
		reviewerToken(t, cfg, "boss@example.com"), nil)
	assert.Equal(t, 200, status)
}

func TestGetPendingTeams(t *testing.T) {
	app, db, cfg := setupAdminApp(t, nil)
	seedPending(t, db, "new-jeans")
	token := reviewerToken(t, cfg, "reviewer@example.com")

	status, body := doJSON(t, app, "GET", "/api/admin/pending-teams", token, nil)
	assert.Equal(t, 200, status)
	teams := body["pendingTeams"].([]any)
	require.Len(t, teams, 1)

	team := teams[0].(map[string]any)
	assert.Equal(t, "pending", team["status"])
	members := team["members"].([]any)
	require.Len(t, members, 2)
	assert.Equal(t, "Minji", members[0].(map[string]any)["name"])
}

func TestApproveTeamFlow(t *testing.T) {
	app, db, cfg := setupAdminApp(t, nil)
	pending := seedPending(t, db, "new-jeans")
	token := reviewerToken(t, cfg, "reviewer@example.com")

	status, body := doJSON(t, app, "POST", "/api/admin/approve-team", token, map[string]any{
		"pendingTeamId": pending.ID,
	})
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["success"])
	assert.NotZero(t, body["teamId"])

	var team models.Team
	require.NoError(t, db.Where("ticker = ?", "new-jeans").First(&team).Error)

	// A second approval of the same id must fail.
	status, _ = doJSON(t, app, "POST", "/api/admin/approve-team", token, map[string]any{
		"pendingTeamId": pending.ID,
	})
	assert.Equal(t, 409, status)
}

func TestApproveTeamValidation(t *testing.T) {
	app, _, cfg := setupAdminApp(t, nil)
	token := reviewerToken(t, cfg, "reviewer@example.com")

	status, _ := doJSON(t, app, "POST", "/api/admin/approve-team", token, map[string]any{})
	assert.Equal(t, 400, status)

	status, _ = doJSON(t, app, "POST", "/api/admin/approve-team", token, map[string]any{
		"pendingTeamId": 99999,
	})
	assert.Equal(t, 404, status)
}

func TestRejectTeamFlow(t *testing.T) {
	app, db, cfg := setupAdminApp(t, nil)
	pending := seedPending(t, db, "new-jeans")
	token := reviewerToken(t, cfg, "reviewer@example.com")

	// Reason is mandatory.
	status, _ := doJSON(t, app, "POST", "/api/admin/reject-team", token, map[string]any{
		"pendingTeamId": pending.ID,
	})
	assert.Equal(t, 400, status)

	status, body := doJSON(t, app, "POST", "/api/admin/reject-team", token, map[string]any{
		"pendingTeamId":   pending.ID,
		"rejectionReason": "duplicate submission",
	})
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["success"])

	var got models.PendingTeam
	require.NoError(t, db.First(&got, pending.ID).Error)
	assert.Equal(t, models.StatusRejected, got.Status)
	require.NotNil(t, got.RejectionReason)
	assert.Equal(t, "duplicate submission", *got.RejectionReason)

	// No live rows came out of a rejection.
	var count int64
	require.NoError(t, db.Model(&models.Team{}).Count(&count).Error)
	assert.Zero(t, count)
}
