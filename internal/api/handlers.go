// internal/api/handlers.go
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	commonerrors "nutrition-notifier/internal/common/errors"
	"nutrition-notifier/internal/common/logger"
	"nutrition-notifier/internal/notify"
)

type handler struct {
	svc    *notify.Service
	logger logger.Logger
}

func newHandler(svc *notify.Service, log logger.Logger) *handler {
	return &handler{svc: svc, logger: log}
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type registerRequest struct {
	UserID      string                 `json:"user_id"`
	PushToken   string                 `json:"push_token"`
	Preferences map[string]interface{} `json:"preferences,omitempty"`
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		return
	}

	var prefs *notify.Preferences
	if req.Preferences != nil {
		built := prefsFromRequest(req.Preferences)
		prefs = &built
	}

	if err := h.svc.Register(req.UserID, req.PushToken, prefs); err != nil {
		if commonerrors.IsRegistrationInvalid(err) {
			writeError(w, http.StatusBadRequest, string(commonerrors.ErrCodeRegistrationInvalid), err.Error())
			return
		}
		h.logger.WithError(err).Error("register failed", map[string]interface{}{"userId": req.UserID})
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "registration failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"user_id": req.UserID, "status": "registered"})
}

// prefsFromRequest builds a Preferences value from the free-form JSON map
// callers send: boolean keys become category flags, quiet_hours becomes a
// window, anything else is retained as an unknown key.
func prefsFromRequest(m map[string]interface{}) notify.Preferences {
	prefs := notify.Preferences{Categories: make(map[string]bool)}
	for key, value := range m {
		switch v := value.(type) {
		case bool:
			prefs.Categories[key] = v
		default:
			if key == "quiet_hours" {
				if w, ok := notify.ParseQuietHoursMap(value); ok {
					prefs.QuietHours = w
					continue
				}
			}
			if prefs.Extra == nil {
				prefs.Extra = make(map[string]interface{})
			}
			prefs.Extra[key] = value
		}
	}
	return prefs
}

func (h *handler) unregister(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	h.svc.Unregister(userID)
	writeJSON(w, http.StatusOK, map[string]string{"user_id": userID, "status": "unregistered"})
}

func (h *handler) updatePreferences(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var partial map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		return
	}

	merged, err := h.svc.UpdatePreferences(userID, partial)
	if err != nil {
		if commonerrors.IsUserNotFound(err) {
			writeError(w, http.StatusNotFound, string(commonerrors.ErrCodeUserNotFound), err.Error())
			return
		}
		h.logger.WithError(err).Error("preference update failed", map[string]interface{}{"userId": userID})
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "preference update failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":     userID,
		"preferences": merged,
	})
}

type sendRequest struct {
	UserID   string            `json:"user_id"`
	Category string            `json:"category"`
	Data     map[string]string `json:"data,omitempty"`
}

func (h *handler) send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		return
	}

	sent, err := h.svc.Submit(req.UserID, notify.Category(req.Category), req.Data)
	if err != nil {
		if commonerrors.IsUnknownCategory(err) {
			writeError(w, http.StatusBadRequest, string(commonerrors.ErrCodeUnknownCategory), err.Error())
			return
		}
		h.logger.WithError(err).Error("send failed", map[string]interface{}{"userId": req.UserID})
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "send failed")
		return
	}

	// A policy refusal is an expected outcome, not a fault.
	writeJSON(w, http.StatusOK, map[string]bool{"sent": sent})
}

type calorieUpdateRequest struct {
	UserID   string  `json:"user_id"`
	Consumed float64 `json:"calories_consumed"`
	Goal     float64 `json:"calorie_goal"`
}

func (h *handler) calorieUpdate(w http.ResponseWriter, r *http.Request) {
	var req calorieUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		return
	}

	sent := h.svc.SendCalorieUpdate(req.UserID, req.Consumed, req.Goal)
	writeJSON(w, http.StatusOK, map[string]bool{"sent": sent})
}

type achievementRequest struct {
	UserID      string `json:"user_id"`
	Achievement string `json:"achievement"`
}

func (h *handler) achievement(w http.ResponseWriter, r *http.Request) {
	var req achievementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		return
	}

	sent := h.svc.SendAchievement(req.UserID, req.Achievement)
	writeJSON(w, http.StatusOK, map[string]bool{"sent": sent})
}

type foodSuggestionRequest struct {
	UserID   string `json:"user_id"`
	FoodName string `json:"food_name"`
	Reason   string `json:"reason,omitempty"`
}

func (h *handler) foodSuggestion(w http.ResponseWriter, r *http.Request) {
	var req foodSuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		return
	}

	sent := h.svc.SendFoodSuggestion(req.UserID, req.FoodName, req.Reason)
	writeJSON(w, http.StatusOK, map[string]bool{"sent": sent})
}

func (h *handler) history(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	entries := h.svc.History(userID, limit)
	if entries == nil {
		entries = []*notify.Notification{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"history": entries,
	})
}

func (h *handler) stats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	stats, err := h.svc.Stats(userID)
	if err != nil {
		if commonerrors.IsUserNotFound(err) {
			writeError(w, http.StatusNotFound, string(commonerrors.ErrCodeUserNotFound), err.Error())
			return
		}
		h.logger.WithError(err).Error("stats failed", map[string]interface{}{"userId": userID})
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "stats failed")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *handler) drain(w http.ResponseWriter, r *http.Request) {
	remaining := h.svc.Drain(r.Context())
	writeJSON(w, http.StatusOK, map[string]int{"queue_size": remaining})
}
