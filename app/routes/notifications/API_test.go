package notifications

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netarcx/Mentor-Manager-sub001/app/services"
)

func TestClassifyTriggerError(t *testing.T) {
	status, message := classifyTriggerError(fmt.Errorf("reminder %w: %v", services.ErrDispatch, "endpoint returned status 500"))
	assert.Equal(t, 502, status)
	assert.Contains(t, message, "endpoint returned status 500")

	status, message = classifyTriggerError(errors.New("pq: connection refused"))
	assert.Equal(t, 500, status)
	assert.Equal(t, "Internal server error", message)
	assert.NotContains(t, message, "pq")
}

func TestUpdateReminderSettingsRequiresDayAndTime(t *testing.T) {
	app := fiber.New()
	app.Post("/api/notifications/settings", UpdateReminderSettingsAPI)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing day", `{"enabled":true,"time":"09:00"}`, "day"},
		{"missing time", `{"enabled":true,"day":"3"}`, "time"},
		{"empty day", `{"enabled":true,"day":"","time":"09:00"}`, "day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/notifications/settings", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, 400, resp.StatusCode)
			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Contains(t, string(raw), tt.want)
		})
	}
}

func TestValidDayOfWeek(t *testing.T) {
	assert.True(t, validDayOfWeek("0"))
	assert.True(t, validDayOfWeek("6"))
	assert.False(t, validDayOfWeek("7"))
	assert.False(t, validDayOfWeek("-1"))
	assert.False(t, validDayOfWeek("3 "))
	assert.False(t, validDayOfWeek(""))
}

func TestValidDayOfMonth(t *testing.T) {
	assert.True(t, validDayOfMonth("1"))
	assert.True(t, validDayOfMonth("31"))
	assert.False(t, validDayOfMonth("0"))
	assert.False(t, validDayOfMonth("32"))
	assert.False(t, validDayOfMonth("15th"))
	assert.False(t, validDayOfMonth(""))
}

func TestValidClock(t *testing.T) {
	assert.True(t, validClock("00:00"))
	assert.True(t, validClock("09:30"))
	assert.True(t, validClock("23:59"))
	assert.False(t, validClock("24:00"))
	assert.False(t, validClock("09:60"))
	assert.False(t, validClock("9:30"))
	assert.False(t, validClock("0930"))
	assert.False(t, validClock("ab:cd"))
}
