// internal/api/handlers_test.go
package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrition-notifier/internal/common/logger"
	"nutrition-notifier/internal/notify"
)

func newTestRouter(t *testing.T) (*notify.Service, http.Handler) {
	t.Helper()
	svc := notify.NewService(notify.Options{
		Logger: logger.NewTestLogger(t),
		Now: func() time.Time {
			return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
		},
	})
	return svc, NewRouter(svc, logger.NewTestLogger(t))
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerUser(t *testing.T, router http.Handler, userID string) {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/notifications/register", map[string]string{
		"user_id":    userID,
		"push_token": "token-" + userID,
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthz(t *testing.T) {
	_, router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRegisterEndpoint(t *testing.T) {
	svc, router := newTestRouter(t)

	registerUser(t, router, "user-1")

	_, ok := svc.Get("user-1")
	assert.True(t, ok)
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	_, router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/notifications/register", map[string]string{
		"user_id": "user-1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "REGISTRATION_INVALID", resp.Error.Code)
}

func TestRegisterRejectsBadJSON(t *testing.T) {
	_, router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/notifications/register", bytes.NewBufferString("{nope"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterWithPreferences(t *testing.T) {
	svc, router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/notifications/register", map[string]interface{}{
		"user_id":    "user-1",
		"push_token": "token",
		"preferences": map[string]interface{}{
			"water_reminders": false,
			"quiet_hours":     map[string]string{"start": "21:00", "end": "08:00"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	reg, ok := svc.Get("user-1")
	require.True(t, ok)
	assert.False(t, reg.Preferences.Categories["water_reminders"])
	assert.Equal(t, notify.MustClock("21:00"), reg.Preferences.QuietHours.Start)
}

func TestUnregisterEndpoint(t *testing.T) {
	svc, router := newTestRouter(t)
	registerUser(t, router, "user-1")

	rec := doJSON(t, router, http.MethodDelete, "/notifications/register/user-1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	_, ok := svc.Get("user-1")
	assert.False(t, ok)
}

func TestUpdatePreferencesEndpoint(t *testing.T) {
	svc, router := newTestRouter(t)
	registerUser(t, router, "user-1")

	rec := doJSON(t, router, http.MethodPut, "/notifications/preferences/user-1", map[string]interface{}{
		"nutrition_tips": false,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	reg, _ := svc.Get("user-1")
	assert.False(t, reg.Preferences.Categories["nutrition_tips"])
}

func TestUpdatePreferencesUnknownUser(t *testing.T) {
	_, router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/notifications/preferences/ghost", map[string]interface{}{
		"nutrition_tips": false,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSendEndpoint(t *testing.T) {
	svc, router := newTestRouter(t)
	registerUser(t, router, "user-1")

	rec := doJSON(t, router, http.MethodPost, "/notifications/send", map[string]interface{}{
		"user_id":  "user-1",
		"category": "meal_reminder",
		"data":     map[string]string{"meal_type": "lunch"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"sent":true}`, rec.Body.String())
	assert.Equal(t, 1, svc.QueueLen())
}

func TestSendRefusedIsStillOK(t *testing.T) {
	_, router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/notifications/send", map[string]interface{}{
		"user_id":  "nobody",
		"category": "meal_reminder",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"sent":false}`, rec.Body.String())
}

func TestSendUnknownCategory(t *testing.T) {
	_, router := newTestRouter(t)
	registerUser(t, router, "user-1")

	rec := doJSON(t, router, http.MethodPost, "/notifications/send", map[string]interface{}{
		"user_id":  "user-1",
		"category": "telegram",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalorieUpdateEndpoint(t *testing.T) {
	svc, router := newTestRouter(t)
	registerUser(t, router, "user-1")

	rec := doJSON(t, router, http.MethodPost, "/notifications/calorie-update", map[string]interface{}{
		"user_id":           "user-1",
		"calories_consumed": 760,
		"calorie_goal":      1000,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"sent":true}`, rec.Body.String())

	history := svc.History("user-1", 0)
	require.Len(t, history, 1)
	assert.Equal(t, "75", history[0].Payload["percentage"])
}

func TestAchievementEndpoint(t *testing.T) {
	_, router := newTestRouter(t)
	registerUser(t, router, "user-1")

	rec := doJSON(t, router, http.MethodPost, "/notifications/achievement", map[string]interface{}{
		"user_id":     "user-1",
		"achievement": "First week logged!",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"sent":true}`, rec.Body.String())
}

func TestFoodSuggestionEndpoint(t *testing.T) {
	svc, router := newTestRouter(t)
	registerUser(t, router, "user-1")

	rec := doJSON(t, router, http.MethodPost, "/notifications/food-suggestion", map[string]interface{}{
		"user_id":   "user-1",
		"food_name": "salmon",
		"reason":    "omega-3",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	history := svc.History("user-1", 0)
	require.Len(t, history, 1)
	assert.Contains(t, history[0].Body, "salmon")
}

func TestHistoryEndpoint(t *testing.T) {
	svc, router := newTestRouter(t)
	registerUser(t, router, "user-1")

	for i := 0; i < 3; i++ {
		sent, err := svc.Submit("user-1", notify.CategoryWaterReminder, nil)
		require.NoError(t, err)
		require.True(t, sent)
	}

	rec := doJSON(t, router, http.MethodGet, "/notifications/history/user-1?limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		UserID  string                 `json:"user_id"`
		History []*notify.Notification `json:"history"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "user-1", resp.UserID)
	assert.Len(t, resp.History, 2)
}

func TestHistoryEndpointEmptyForUnknownUser(t *testing.T) {
	_, router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/notifications/history/ghost", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		History []*notify.Notification `json:"history"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.History)
}

func TestHistoryEndpointRejectsBadLimit(t *testing.T) {
	_, router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/notifications/history/user-1?limit=many", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsEndpoint(t *testing.T) {
	svc, router := newTestRouter(t)
	registerUser(t, router, "user-1")

	sent, err := svc.Submit("user-1", notify.CategoryWaterReminder, nil)
	require.NoError(t, err)
	require.True(t, sent)

	rec := doJSON(t, router, http.MethodGet, "/notifications/stats/user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats notify.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalNotifications)
	assert.Equal(t, 1, stats.RecentTypes["water_reminder"])
}

func TestStatsEndpointUnknownUser(t *testing.T) {
	_, router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/notifications/stats/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDrainEndpoint(t *testing.T) {
	svc, router := newTestRouter(t)
	registerUser(t, router, "user-1")

	sent, err := svc.Submit("user-1", notify.CategoryWaterReminder, nil)
	require.NoError(t, err)
	require.True(t, sent)
	require.Equal(t, 1, svc.QueueLen())

	rec := doJSON(t, router, http.MethodPost, "/notifications/drain", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"queue_size":0}`, rec.Body.String())
	assert.Zero(t, svc.QueueLen())
}

func TestMetricsEndpointExposed(t *testing.T) {
	_, router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
