// internal/notify/store_test.go
package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "nutrition-notifier/internal/common/errors"
)

func newTestStore() *Store {
	return NewStore(Window{Start: MustClock("22:00"), End: MustClock("07:00")})
}

func TestRegisterInstallsDefaults(t *testing.T) {
	store := newTestStore()

	require.NoError(t, store.Register("user-1", "token-1", nil))

	reg, ok := store.Get("user-1")
	require.True(t, ok)
	assert.Equal(t, "token-1", reg.PushToken)
	assert.True(t, reg.Preferences.Categories[PrefMealReminders])
	assert.True(t, reg.Preferences.Categories[PrefWeeklySummary])
	assert.Equal(t, MustClock("22:00"), reg.Preferences.QuietHours.Start)
	assert.Equal(t, MustClock("07:00"), reg.Preferences.QuietHours.End)
	assert.Nil(t, reg.LastNotification)
	assert.Zero(t, reg.NotificationCount)
}

func TestRegisterValidation(t *testing.T) {
	store := newTestStore()

	err := store.Register("", "token", nil)
	require.Error(t, err)
	assert.True(t, commonerrors.IsRegistrationInvalid(err))

	err = store.Register("user-1", "", nil)
	require.Error(t, err)
	assert.True(t, commonerrors.IsRegistrationInvalid(err))
}

func TestRegisterOverwrites(t *testing.T) {
	store := newTestStore()

	require.NoError(t, store.Register("user-1", "token-old", nil))
	require.NoError(t, store.Register("user-1", "token-new", nil))

	reg, ok := store.Get("user-1")
	require.True(t, ok)
	assert.Equal(t, "token-new", reg.PushToken)
	assert.Equal(t, 1, store.Len())
}

func TestRegisterSuppliedPrefsGetDefaultQuietHours(t *testing.T) {
	store := newTestStore()

	require.NoError(t, store.Register("user-1", "token", &Preferences{
		Categories: map[string]bool{PrefNutritionTips: false},
	}))

	reg, ok := store.Get("user-1")
	require.True(t, ok)
	assert.False(t, reg.Preferences.Categories[PrefNutritionTips])
	assert.Equal(t, MustClock("22:00"), reg.Preferences.QuietHours.Start)
}

func TestUnregisterUnknownUserIsNoOp(t *testing.T) {
	store := newTestStore()
	store.Unregister("ghost")
	assert.Zero(t, store.Len())
}

func TestUpdatePreferencesMergesFlags(t *testing.T) {
	store := newTestStore()
	require.NoError(t, store.Register("user-1", "token", nil))

	merged, err := store.UpdatePreferences("user-1", map[string]interface{}{
		PrefWaterReminders: false,
	})
	require.NoError(t, err)

	assert.False(t, merged.Categories[PrefWaterReminders])
	assert.True(t, merged.Categories[PrefMealReminders], "untouched flags survive the merge")
}

func TestUpdatePreferencesUnknownUser(t *testing.T) {
	store := newTestStore()

	_, err := store.UpdatePreferences("ghost", map[string]interface{}{PrefWaterReminders: false})
	require.Error(t, err)
	assert.True(t, commonerrors.IsUserNotFound(err))
}

func TestUpdatePreferencesQuietHours(t *testing.T) {
	store := newTestStore()
	require.NoError(t, store.Register("user-1", "token", nil))

	merged, err := store.UpdatePreferences("user-1", map[string]interface{}{
		"quiet_hours": map[string]interface{}{"start": "23:30", "end": "06:15"},
	})
	require.NoError(t, err)
	assert.Equal(t, MustClock("23:30"), merged.QuietHours.Start)
	assert.Equal(t, MustClock("06:15"), merged.QuietHours.End)
}

func TestUpdatePreferencesMalformedQuietHoursIgnored(t *testing.T) {
	store := newTestStore()
	require.NoError(t, store.Register("user-1", "token", nil))

	merged, err := store.UpdatePreferences("user-1", map[string]interface{}{
		"quiet_hours": map[string]interface{}{"start": "later", "end": "06:15"},
	})
	require.NoError(t, err)
	assert.Equal(t, MustClock("22:00"), merged.QuietHours.Start, "malformed window leaves the old one in place")
}

func TestUpdatePreferencesRetainsUnknownKeys(t *testing.T) {
	store := newTestStore()
	require.NoError(t, store.Register("user-1", "token", nil))

	merged, err := store.UpdatePreferences("user-1", map[string]interface{}{
		"timezone": "Europe/Berlin",
	})
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", merged.Extra["timezone"])
}

func TestGetReturnsSnapshot(t *testing.T) {
	store := newTestStore()
	require.NoError(t, store.Register("user-1", "token", nil))

	reg, ok := store.Get("user-1")
	require.True(t, ok)
	reg.Preferences.Categories[PrefMealReminders] = false

	fresh, _ := store.Get("user-1")
	assert.True(t, fresh.Preferences.Categories[PrefMealReminders], "mutating a snapshot must not affect the store")
}

func TestRecordDelivery(t *testing.T) {
	store := newTestStore()
	require.NoError(t, store.Register("user-1", "token", nil))

	ts := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	store.RecordDelivery("user-1", ts)
	store.RecordDelivery("user-1", ts.Add(time.Minute))
	store.RecordDelivery("ghost", ts)

	reg, ok := store.Get("user-1")
	require.True(t, ok)
	assert.Equal(t, 2, reg.NotificationCount)
	require.NotNil(t, reg.LastNotification)
	assert.Equal(t, ts.Add(time.Minute), *reg.LastNotification)
}

func TestUserIDs(t *testing.T) {
	store := newTestStore()
	require.NoError(t, store.Register("a", "t", nil))
	require.NoError(t, store.Register("b", "t", nil))

	ids := store.UserIDs()
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
}
