package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"noor-companion-service/models"
	"noor-companion-service/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

func newChallengeApp(t *testing.T) *fiber.App {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ChallengeRecord{}))

	app := fiber.New()
	SetupChallengeRoutes(app, services.NewChallengeService(db))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, userID, roles, body string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	if roles != "" {
		req.Header.Set("X-User-Roles", roles)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestChallengeRoutesRequireUserContext(t *testing.T) {
	app := newChallengeApp(t)

	resp, _ := doJSON(t, app, "GET", "/user/challenges/", "", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetChallengesReturnsSnapshot(t *testing.T) {
	app := newChallengeApp(t)

	resp, body := doJSON(t, app, "GET", "/user/challenges/", "user-1", "", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	challenges, ok := body["challenges"].([]any)
	require.True(t, ok)
	assert.Len(t, challenges, len(models.WeeklyChallengeDefs))
	assert.EqualValues(t, 1, body["level"])
	assert.EqualValues(t, 0, body["points"])
}

func TestIncrementChallengeEndpoint(t *testing.T) {
	app := newChallengeApp(t)

	resp, body := doJSON(t, app, "POST", "/user/challenges/increment", "user-1", "",
		`{"type":"quranPages","amount":10}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 100, body["total_points_earned"])

	// Missing amount defaults to 1.
	resp, body = doJSON(t, app, "POST", "/user/challenges/increment", "user-1", "",
		`{"type":"azkar"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	progress, ok := body["weekly_challenges"].([]any)
	require.True(t, ok)
	azkar := progress[2].(map[string]any)
	assert.EqualValues(t, 1, azkar["current"])

	resp, _ = doJSON(t, app, "POST", "/user/challenges/increment", "user-1", "",
		`{"type":"tasbih","amount":-1}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGrantPointsRequiresAdminRole(t *testing.T) {
	app := newChallengeApp(t)

	resp, _ := doJSON(t, app, "POST", "/s/admin/points/grant", "user-1", "",
		`{"user_id":"user-2","points":100}`)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/s/admin/points/grant", "admin-1", "admin",
		`{"user_id":"user-2","points":100,"reason":"support case"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 100, body["total"])

	resp, _ = doJSON(t, app, "POST", "/s/admin/points/grant", "admin-1", "admin",
		`{"points":100}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
