// internal/notify/store.go
package notify

import (
	"strings"
	"sync"
	"time"

	commonerrors "nutrition-notifier/internal/common/errors"
)

// Store owns all user registrations. Every read and mutation goes through
// its mutex; callers receive copies, never live pointers into the map.
type Store struct {
	mu           sync.Mutex
	users        map[string]*Registration
	defaultQuiet Window
}

// NewStore creates an empty preference store. defaultQuiet is installed for
// registrations that do not supply preferences.
func NewStore(defaultQuiet Window) *Store {
	return &Store{
		users:        make(map[string]*Registration),
		defaultQuiet: defaultQuiet,
	}
}

// DefaultPreferences returns the preference set installed when a caller
// registers without supplying one: every category enabled, quiet hours
// from the store default (22:00-07:00 unless configured otherwise).
func (s *Store) DefaultPreferences() Preferences {
	return Preferences{
		Categories: map[string]bool{
			PrefMealReminders:     true,
			PrefWaterReminders:    true,
			PrefExerciseReminders: true,
			PrefCalorieUpdates:    true,
			PrefNutritionTips:     true,
			PrefAchievements:      true,
			PrefWeeklySummary:     true,
		},
		QuietHours: s.defaultQuiet,
	}
}

// Register creates or overwrites a user's registration. Re-registration is
// idempotent and replaces the whole record.
func (s *Store) Register(userID, pushToken string, prefs *Preferences) error {
	switch {
	case userID == "":
		return commonerrors.NewRegistrationInvalidError("userId is required")
	case pushToken == "":
		return commonerrors.NewRegistrationInvalidError("pushToken is required")
	}

	installed := s.DefaultPreferences()
	if prefs != nil {
		installed = prefs.Clone()
		if installed.QuietHours == (Window{}) {
			installed.QuietHours = s.defaultQuiet
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID] = &Registration{
		UserID:      userID,
		PushToken:   pushToken,
		Preferences: installed,
	}
	return nil
}

// Unregister removes the record. Removing an unknown user is a no-op.
func (s *Store) Unregister(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, userID)
}

// UpdatePreferences merges the given keys into the user's preference map.
// Known category flags and quiet_hours are applied; unknown keys are kept
// in Extra but never consulted by policy. Returns the merged preferences.
func (s *Store) UpdatePreferences(userID string, partial map[string]interface{}) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, ok := s.users[userID]
	if !ok {
		return Preferences{}, commonerrors.NewUserNotFoundError(userID)
	}

	for key, value := range partial {
		switch {
		case key == "quiet_hours":
			if w, ok := parseQuietHours(value); ok {
				reg.Preferences.QuietHours = w
			}
		default:
			if flag, ok := value.(bool); ok {
				if reg.Preferences.Categories == nil {
					reg.Preferences.Categories = make(map[string]bool)
				}
				reg.Preferences.Categories[key] = flag
				continue
			}
			if reg.Preferences.Extra == nil {
				reg.Preferences.Extra = make(map[string]interface{})
			}
			reg.Preferences.Extra[key] = value
		}
	}

	return reg.Preferences.Clone(), nil
}

// ParseQuietHoursMap accepts {"start": "HH:MM", "end": "HH:MM"} from
// free-form JSON, as sent by registration and preference-update callers.
func ParseQuietHoursMap(value interface{}) (Window, bool) {
	return parseQuietHours(value)
}

// parseQuietHours accepts {"start": "HH:MM", "end": "HH:MM"} from a
// preference update. Malformed windows are ignored rather than fatal.
func parseQuietHours(value interface{}) (Window, bool) {
	m, ok := value.(map[string]interface{})
	if !ok {
		return Window{}, false
	}
	startStr, _ := m["start"].(string)
	endStr, _ := m["end"].(string)

	start, err := ParseClock(strings.TrimSpace(startStr))
	if err != nil {
		return Window{}, false
	}
	end, err := ParseClock(strings.TrimSpace(endStr))
	if err != nil {
		return Window{}, false
	}
	return Window{Start: start, End: end}, true
}

// Get returns a copy of the registration. Queries never fail; the boolean
// reports existence.
func (s *Store) Get(userID string) (Registration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, ok := s.users[userID]
	if !ok {
		return Registration{}, false
	}
	return s.snapshot(reg), true
}

// UserIDs returns a snapshot of every registered user ID. Campaigns iterate
// this copy so a concurrent unregister cannot invalidate the walk.
func (s *Store) UserIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	return ids
}

// Len reports the number of registered users.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// RecordDelivery updates the per-user delivery counters after a successful
// push. Unknown users are ignored; the dispatcher may legitimately drain
// items for users who unregistered after submission.
func (s *Store) RecordDelivery(userID string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, ok := s.users[userID]
	if !ok {
		return
	}
	t := at
	reg.LastNotification = &t
	reg.NotificationCount++
}

// snapshot copies a registration; caller must hold s.mu.
func (s *Store) snapshot(reg *Registration) Registration {
	out := Registration{
		UserID:            reg.UserID,
		PushToken:         reg.PushToken,
		Preferences:       reg.Preferences.Clone(),
		NotificationCount: reg.NotificationCount,
	}
	if reg.LastNotification != nil {
		t := *reg.LastNotification
		out.LastNotification = &t
	}
	return out
}
