// internal/notify/senders.go
package notify

import (
	"math/rand/v2"
	"strconv"

	commonerrors "nutrition-notifier/internal/common/errors"
)

// calorieMilestones are percentage thresholds checked in ascending order.
// Each window is [m, m+5); the first match wins and the scan stops, so a
// percentage can never produce two notifications in one call. Percentages
// in [105, 110) fall between the 100 and 110 windows and match nothing;
// that hole is inherited behavior kept on purpose.
var calorieMilestones = []float64{50, 75, 90, 100, 110}

// nutritionTips is the built-in tip pool used by tip campaigns.
var nutritionTips = []string{
	"Drink a glass of water before meals to help control appetite.",
	"Include protein in every meal to stay full longer.",
	"Choose whole fruits over fruit juice for more fiber.",
	"Eat a variety of colorful vegetables for different nutrients.",
	"Plan your meals ahead to avoid unhealthy choices.",
	"Read nutrition labels to make informed food choices.",
	"Cook at home more often to control ingredients.",
	"Practice mindful eating - eat slowly and enjoy your food.",
	"Include healthy fats like avocado and nuts in your diet.",
	"Don't skip breakfast - it jumpstarts your metabolism.",
}

// RandomTip returns one tip from the built-in pool.
func (s *Service) RandomTip() string {
	return nutritionTips[rand.IntN(len(nutritionTips))]
}

// SendCalorieUpdate submits at most one calorie-goal notification when the
// consumed/goal percentage lands inside a milestone window. Non-positive
// inputs are ignored silently.
func (s *Service) SendCalorieUpdate(userID string, consumed, goal float64) bool {
	if consumed <= 0 || goal <= 0 {
		return false
	}

	percentage := consumed / goal * 100

	for _, milestone := range calorieMilestones {
		if percentage >= milestone && percentage < milestone+5 {
			sent, _ := s.Submit(userID, CategoryCalorieGoal, map[string]string{
				"percentage":        strconv.FormatFloat(milestone, 'f', -1, 64),
				"calories_consumed": strconv.FormatFloat(consumed, 'f', -1, 64),
				"calorie_goal":      strconv.FormatFloat(goal, 'f', -1, 64),
			})
			return sent
		}
	}
	return false
}

// SendAchievement submits an achievement notification.
func (s *Service) SendAchievement(userID, achievement string) bool {
	sent, _ := s.Submit(userID, CategoryAchievement, map[string]string{
		"achievement_message": achievement,
	})
	return sent
}

// SendFoodSuggestion submits a food suggestion; reason is optional.
func (s *Service) SendFoodSuggestion(userID, foodName, reason string) bool {
	data := map[string]string{"food_name": foodName}
	if reason != "" {
		data["reason"] = reason
	}
	sent, _ := s.Submit(userID, CategoryFoodSuggestion, data)
	return sent
}

// History returns up to limit of the user's accepted notifications,
// newest-last. Limit defaults to 50.
func (s *Service) History(userID string, limit int) []*Notification {
	if limit <= 0 {
		limit = 50
	}
	return s.history.ForUser(userID, limit)
}

// statsRecentWindow is how many trailing history entries feed the
// count-by-category breakdown.
const statsRecentWindow = 30

// Stats summarizes a user's notification activity from the registration
// record and the history ledger.
func (s *Service) Stats(userID string) (Stats, error) {
	reg, ok := s.store.Get(userID)
	if !ok {
		return Stats{}, commonerrors.NewUserNotFoundError(userID)
	}

	all := s.history.ForUser(userID, 0)

	stats := Stats{
		TotalNotifications: len(all),
		LastNotification:   reg.LastNotification,
		Preferences:        reg.Preferences,
		RecentTypes:        make(map[string]int),
	}

	recent := all
	if len(recent) > statsRecentWindow {
		recent = recent[len(recent)-statsRecentWindow:]
	}
	for _, n := range recent {
		stats.RecentTypes[string(n.Category)]++
	}

	return stats, nil
}
