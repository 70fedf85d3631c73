// internal/notify/models.go
package notify

import "time"

// Category identifies a notification template and the preference flag
// gating it.
type Category string

const (
	CategoryMealReminder     Category = "meal_reminder"
	CategoryWaterReminder    Category = "water_reminder"
	CategoryExerciseReminder Category = "exercise_reminder"
	CategoryCalorieGoal      Category = "calorie_goal"
	CategoryNutritionTip     Category = "nutrition_tip"
	CategoryAchievement      Category = "achievement"
	CategoryWeeklySummary    Category = "weekly_summary"
	CategoryFoodSuggestion   Category = "food_suggestion"
)

// Preference flag keys. Users opt in or out of categories under these
// keys; note they are not the same strings as the category names.
const (
	PrefMealReminders     = "meal_reminders"
	PrefWaterReminders    = "water_reminders"
	PrefExerciseReminders = "exercise_reminders"
	PrefCalorieUpdates    = "calorie_updates"
	PrefNutritionTips     = "nutrition_tips"
	PrefAchievements      = "achievements"
	PrefWeeklySummary     = "weekly_summary"
	PrefFoodSuggestions   = "food_suggestions"
)

// prefKeyFor maps a category to the preference flag that gates it.
var prefKeyFor = map[Category]string{
	CategoryMealReminder:     PrefMealReminders,
	CategoryWaterReminder:    PrefWaterReminders,
	CategoryExerciseReminder: PrefExerciseReminders,
	CategoryCalorieGoal:      PrefCalorieUpdates,
	CategoryNutritionTip:     PrefNutritionTips,
	CategoryAchievement:      PrefAchievements,
	CategoryWeeklySummary:    PrefWeeklySummary,
	CategoryFoodSuggestion:   PrefFoodSuggestions,
}

// PrefKey returns the preference flag key gating this category. Categories
// without a mapping gate on their own name.
func (c Category) PrefKey() string {
	if key, ok := prefKeyFor[c]; ok {
		return key
	}
	return string(c)
}

// Preferences holds a user's delivery policy. Known category flags and the
// quiet-hours window drive suppression; Extra retains unknown keys from
// preference updates so that forward-compatible clients round-trip cleanly,
// but policy evaluation ignores them.
type Preferences struct {
	Categories map[string]bool        `json:"categories"`
	QuietHours Window                 `json:"quiet_hours"`
	Extra      map[string]interface{} `json:"extra,omitempty"`
}

// Clone returns a deep copy so callers never share map state with the store.
func (p Preferences) Clone() Preferences {
	out := Preferences{QuietHours: p.QuietHours}
	if p.Categories != nil {
		out.Categories = make(map[string]bool, len(p.Categories))
		for k, v := range p.Categories {
			out.Categories[k] = v
		}
	}
	if p.Extra != nil {
		out.Extra = make(map[string]interface{}, len(p.Extra))
		for k, v := range p.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// Allows reports whether the preference flags permit the category.
// Only an explicit false suppresses; a missing flag means enabled.
func (p Preferences) Allows(c Category) bool {
	if p.Categories == nil {
		return true
	}
	enabled, ok := p.Categories[c.PrefKey()]
	return !ok || enabled
}

// Registration is a user's delivery record, owned by the Store.
type Registration struct {
	UserID            string      `json:"user_id"`
	PushToken         string      `json:"push_token"`
	Preferences       Preferences `json:"preferences"`
	LastNotification  *time.Time  `json:"last_notification,omitempty"`
	NotificationCount int         `json:"notification_count"`
}

// Notification is an accepted submission: rendered content plus the merged
// payload. Immutable once created; held by the queue until drained and by
// the history ledger for the life of the process.
type Notification struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Category  Category          `json:"category"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Payload   map[string]string `json:"payload"`
	Timestamp time.Time         `json:"timestamp"`
}

// Stats summarizes a user's notification activity.
type Stats struct {
	TotalNotifications int            `json:"total_notifications"`
	LastNotification   *time.Time     `json:"last_notification,omitempty"`
	Preferences        Preferences    `json:"preferences"`
	RecentTypes        map[string]int `json:"recent_types"`
}
