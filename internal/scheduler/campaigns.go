// internal/scheduler/campaigns.go
package scheduler

import (
	"context"
	"fmt"
	"time"

	"nutrition-notifier/internal/common/logger"
	"nutrition-notifier/internal/notify"
)

// DefaultTriggers builds the standard campaign schedule:
//
//	08:00        breakfast reminder + a nutrition tip
//	12:00        lunch reminder
//	18:00        dinner reminder
//	20:00        evening summary
//	09:00-20:00  hydration reminder, hourly
//	Sun 19:00    weekly summary
//	10:00/15:00/19:30  nutrition tip broadcasts
//
// Every campaign goes through Service.Submit, so opt-outs and quiet hours
// are honored per user; campaigns never bypass policy.
func DefaultTriggers(svc *notify.Service, log logger.Logger, now func() time.Time) []Trigger {
	if now == nil {
		now = time.Now
	}

	triggers := []Trigger{
		{Name: "morning-reminders", At: notify.MustClock("08:00"), Run: morningReminders(svc)},
		{Name: "lunch-reminders", At: notify.MustClock("12:00"), Run: mealReminders(svc, "lunch")},
		{Name: "dinner-reminders", At: notify.MustClock("18:00"), Run: mealReminders(svc, "dinner")},
		{Name: "evening-summary", At: notify.MustClock("20:00"), Run: eveningSummary(svc)},
		{Name: "nutrition-tips-morning", At: notify.MustClock("10:00"), Run: nutritionTips(svc)},
		{Name: "nutrition-tips-afternoon", At: notify.MustClock("15:00"), Run: nutritionTips(svc)},
		{Name: "nutrition-tips-evening", At: notify.MustClock("19:30"), Run: nutritionTips(svc)},
	}

	// Hourly hydration nudges during waking hours.
	for hour := 9; hour <= 20; hour++ {
		triggers = append(triggers, Trigger{
			Name: fmt.Sprintf("water-reminders-%02d00", hour),
			At:   notify.Clock{Hour: hour},
			Run:  waterReminders(svc, now),
		})
	}

	sunday := time.Sunday
	triggers = append(triggers, Trigger{
		Name:    "weekly-summaries",
		At:      notify.MustClock("19:00"),
		Weekday: &sunday,
		Run:     weeklySummaries(svc),
	})

	return triggers
}

// morningReminders sends a breakfast reminder and a tip to every user who
// has the respective categories enabled.
func morningReminders(svc *notify.Service) Campaign {
	return func(_ context.Context) {
		for _, userID := range svc.UserIDs() {
			reg, ok := svc.Get(userID)
			if !ok {
				continue
			}

			if reg.Preferences.Allows(notify.CategoryMealReminder) {
				svc.Submit(userID, notify.CategoryMealReminder, map[string]string{
					"meal_type": "breakfast",
				})
			}
			if reg.Preferences.Allows(notify.CategoryNutritionTip) {
				svc.Submit(userID, notify.CategoryNutritionTip, map[string]string{
					"tip": svc.RandomTip(),
				})
			}
		}
	}
}

func mealReminders(svc *notify.Service, mealType string) Campaign {
	return func(_ context.Context) {
		for _, userID := range svc.UserIDs() {
			reg, ok := svc.Get(userID)
			if !ok || !reg.Preferences.Allows(notify.CategoryMealReminder) {
				continue
			}
			svc.Submit(userID, notify.CategoryMealReminder, map[string]string{
				"meal_type": mealType,
			})
		}
	}
}

// waterReminders nudges everyone who opted in, but only between 09:00 and
// 21:59 regardless of how the trigger was scheduled.
func waterReminders(svc *notify.Service, now func() time.Time) Campaign {
	return func(_ context.Context) {
		hour := now().Hour()
		if hour < 9 || hour > 21 {
			return
		}
		for _, userID := range svc.UserIDs() {
			reg, ok := svc.Get(userID)
			if !ok || !reg.Preferences.Allows(notify.CategoryWaterReminder) {
				continue
			}
			svc.Submit(userID, notify.CategoryWaterReminder, nil)
		}
	}
}

// eveningSummary recaps the day for every user. No campaign-level
// pre-filter; the submit path still applies the weekly_summary opt-in.
func eveningSummary(svc *notify.Service) Campaign {
	return func(_ context.Context) {
		for _, userID := range svc.UserIDs() {
			svc.Submit(userID, notify.CategoryWeeklySummary, map[string]string{
				"time_period": "today",
			})
		}
	}
}

func weeklySummaries(svc *notify.Service) Campaign {
	return func(_ context.Context) {
		for _, userID := range svc.UserIDs() {
			reg, ok := svc.Get(userID)
			if !ok || !reg.Preferences.Allows(notify.CategoryWeeklySummary) {
				continue
			}
			svc.Submit(userID, notify.CategoryWeeklySummary, map[string]string{
				"time_period": "this week",
			})
		}
	}
}

func nutritionTips(svc *notify.Service) Campaign {
	return func(_ context.Context) {
		for _, userID := range svc.UserIDs() {
			reg, ok := svc.Get(userID)
			if !ok || !reg.Preferences.Allows(notify.CategoryNutritionTip) {
				continue
			}
			svc.Submit(userID, notify.CategoryNutritionTip, map[string]string{
				"tip": svc.RandomTip(),
			})
		}
	}
}
