// internal/notify/templates_test.go
package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "nutrition-notifier/internal/common/errors"
)

func TestDefaultCatalogCoversAllCategories(t *testing.T) {
	catalog := DefaultCatalog()

	for _, category := range []Category{
		CategoryMealReminder,
		CategoryWaterReminder,
		CategoryExerciseReminder,
		CategoryCalorieGoal,
		CategoryNutritionTip,
		CategoryAchievement,
		CategoryWeeklySummary,
		CategoryFoodSuggestion,
	} {
		assert.True(t, catalog.Has(category), "missing template for %s", category)
	}
	assert.Len(t, catalog.Categories(), 8)
}

func TestRenderSubstitutesPlaceholders(t *testing.T) {
	catalog := DefaultCatalog()

	title, body, payload, err := catalog.Render(CategoryMealReminder, map[string]string{
		"meal_type": "breakfast",
	})
	require.NoError(t, err)

	assert.Equal(t, "Time to Eat! 🍽️", title)
	assert.Equal(t, "Don't forget to log your breakfast.", body)
	assert.Equal(t, "meal_reminder", payload["type"])
	assert.Equal(t, "breakfast", payload["meal_type"])
}

func TestRenderLeavesUnmatchedTokensVerbatim(t *testing.T) {
	catalog := DefaultCatalog()

	_, body, _, err := catalog.Render(CategoryMealReminder, nil)
	require.NoError(t, err)
	assert.Equal(t, "Don't forget to log your {meal_type}.", body)
}

func TestRenderUnknownCategory(t *testing.T) {
	catalog := DefaultCatalog()

	_, _, _, err := catalog.Render(Category("carrier_pigeon"), nil)
	require.Error(t, err)
	assert.True(t, commonerrors.IsUnknownCategory(err))
}

func TestRenderPayloadCallerKeysWin(t *testing.T) {
	catalog := NewCatalog(map[Category]Template{
		"custom": {
			Title:   "Hi {name}",
			Body:    "body",
			Payload: map[string]string{"action": "default", "type": "custom"},
		},
	})

	_, _, payload, err := catalog.Render("custom", map[string]string{
		"name":   "sam",
		"action": "override",
	})
	require.NoError(t, err)
	assert.Equal(t, "override", payload["action"])
	assert.Equal(t, "custom", payload["type"])
}

func TestRenderDoesNotMutateTemplate(t *testing.T) {
	catalog := DefaultCatalog()

	_, _, payload, err := catalog.Render(CategoryWaterReminder, map[string]string{"extra": "x"})
	require.NoError(t, err)
	payload["type"] = "mutated"

	_, _, payload2, err := catalog.Render(CategoryWaterReminder, nil)
	require.NoError(t, err)
	assert.Equal(t, "water_reminder", payload2["type"])
}
