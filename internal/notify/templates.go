// internal/notify/templates.go
package notify

import (
	"strings"

	commonerrors "nutrition-notifier/internal/common/errors"
)

// Template is a notification blueprint for one category. Title and Body
// may contain {key} placeholders; Payload is the fixed envelope every
// rendered notification of this category carries.
type Template struct {
	Title   string            `json:"title"`
	Body    string            `json:"body"`
	Payload map[string]string `json:"payload"`
}

// Catalog is a read-only lookup from category to template. Immutable after
// construction; shared by all users.
type Catalog struct {
	templates map[Category]Template
}

// NewCatalog builds a catalog from an explicit template set.
func NewCatalog(templates map[Category]Template) *Catalog {
	copied := make(map[Category]Template, len(templates))
	for c, t := range templates {
		copied[c] = t
	}
	return &Catalog{templates: copied}
}

// DefaultCatalog returns the built-in template set.
func DefaultCatalog() *Catalog {
	return NewCatalog(map[Category]Template{
		CategoryMealReminder: {
			Title:   "Time to Eat! 🍽️",
			Body:    "Don't forget to log your {meal_type}.",
			Payload: map[string]string{"type": "meal_reminder", "action": "log_meal"},
		},
		CategoryWaterReminder: {
			Title:   "Stay Hydrated! 💧",
			Body:    "Time to drink some water. Stay hydrated throughout the day!",
			Payload: map[string]string{"type": "water_reminder", "action": "log_water"},
		},
		CategoryExerciseReminder: {
			Title:   "Time to Move! 🏃‍♂️",
			Body:    "Get active! Your body will thank you.",
			Payload: map[string]string{"type": "exercise_reminder", "action": "log_exercise"},
		},
		CategoryCalorieGoal: {
			Title:   "Calorie Goal Update",
			Body:    "You've reached {percentage}% of your daily calorie goal.",
			Payload: map[string]string{"type": "calorie_update", "action": "view_dashboard"},
		},
		CategoryNutritionTip: {
			Title:   "Nutrition Tip 💡",
			Body:    "{tip}",
			Payload: map[string]string{"type": "nutrition_tip", "action": "view_tip"},
		},
		CategoryAchievement: {
			Title:   "Achievement Unlocked! 🏆",
			Body:    "Congratulations! {achievement_message}",
			Payload: map[string]string{"type": "achievement", "action": "view_achievements"},
		},
		CategoryWeeklySummary: {
			Title:   "Weekly Summary 📊",
			Body:    "Check out your nutrition summary for this week!",
			Payload: map[string]string{"type": "weekly_summary", "action": "view_summary"},
		},
		CategoryFoodSuggestion: {
			Title:   "Food Suggestion 🥗",
			Body:    "Based on your goals, consider adding {food_name} to your diet.",
			Payload: map[string]string{"type": "food_suggestion", "action": "view_suggestion"},
		},
	})
}

// Categories returns the catalog's category set, unordered.
func (c *Catalog) Categories() []Category {
	out := make([]Category, 0, len(c.templates))
	for cat := range c.templates {
		out = append(out, cat)
	}
	return out
}

// Has reports whether the catalog knows the category.
func (c *Catalog) Has(category Category) bool {
	_, ok := c.templates[category]
	return ok
}

// Render looks up the category and substitutes {key} placeholders in the
// title and body from subs. Tokens with no matching entry stay verbatim;
// optional placeholders are not an error. The returned payload is a copy
// of the template envelope merged with subs, where caller keys win.
func (c *Catalog) Render(category Category, subs map[string]string) (title, body string, payload map[string]string, err error) {
	tmpl, ok := c.templates[category]
	if !ok {
		return "", "", nil, commonerrors.NewUnknownCategoryError(string(category))
	}

	title = substitute(tmpl.Title, subs)
	body = substitute(tmpl.Body, subs)

	payload = make(map[string]string, len(tmpl.Payload)+len(subs))
	for k, v := range tmpl.Payload {
		payload[k] = v
	}
	for k, v := range subs {
		payload[k] = v
	}

	return title, body, payload, nil
}

// substitute performs literal {key} replacement. Unknown tokens are left
// untouched so a body may carry optional placeholders.
func substitute(pattern string, subs map[string]string) string {
	result := pattern
	for key, value := range subs {
		result = strings.ReplaceAll(result, "{"+key+"}", value)
	}
	return result
}
