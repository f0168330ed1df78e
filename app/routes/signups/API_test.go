package signups

import (
	"database/sql"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netarcx/Mentor-Manager-sub001/app/config"
	"github.com/netarcx/Mentor-Manager-sub001/app/database"
	"github.com/netarcx/Mentor-Manager-sub001/app/models"
)

const (
	testMentorID = "3f2c9d1a-6b5e-4f7a-8c2d-1e9b4a6c8d0f"
	testShiftID  = "7a1e4b2c-9d8f-4a3b-b6c5-2f1d8e7a9c4b"
)

func setupSignupFakes(t *testing.T, cancelled bool) {
	t.Helper()

	origConfig := config.AppConfig
	origGetShift, origGetMentor, origCreate := getShiftByID, getMentorByID, createSignup
	t.Cleanup(func() {
		config.AppConfig = origConfig
		getShiftByID, getMentorByID, createSignup = origGetShift, origGetMentor, origCreate
	})

	config.AppConfig = &config.Config{}
	getShiftByID = func(db *sql.DB, id string) (*models.Shift, error) {
		return &models.Shift{ID: id, Cancelled: cancelled}, nil
	}
	getMentorByID = func(db *sql.DB, id string) (*models.Mentor, error) {
		return &models.Mentor{ID: id, FirstName: "Ada"}, nil
	}

	taken := make(map[string]bool)
	createSignup = func(db *sql.DB, s *models.Signup) error {
		key := s.MentorID + "|" + s.ShiftID
		if taken[key] {
			return database.ErrDuplicate
		}
		taken[key] = true
		s.ID = "created"
		return nil
	}
}

func postSignup(t *testing.T, app *fiber.App, body string) (int, string) {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/signups", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestCreateSignupDuplicateConflict(t *testing.T) {
	setupSignupFakes(t, false)

	app := fiber.New()
	app.Post("/api/signups", CreateSignupAPI)

	body := `{"mentor_id":"` + testMentorID + `","shift_id":"` + testShiftID + `"}`

	status, _ := postSignup(t, app, body)
	assert.Equal(t, 201, status)

	status, respBody := postSignup(t, app, body)
	assert.Equal(t, 409, status)
	assert.Contains(t, respBody, "already signed up")
}

func TestCreateSignupCancelledShift(t *testing.T) {
	setupSignupFakes(t, true)

	app := fiber.New()
	app.Post("/api/signups", CreateSignupAPI)

	body := `{"mentor_id":"` + testMentorID + `","shift_id":"` + testShiftID + `"}`

	status, respBody := postSignup(t, app, body)
	assert.Equal(t, 400, status)
	assert.Contains(t, respBody, "cancelled")
}
