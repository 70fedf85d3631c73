// internal/notify/service.go
package notify

import (
	"time"

	"github.com/google/uuid"

	"nutrition-notifier/internal/common/logger"
	"nutrition-notifier/internal/common/metrics"
)

// Suppression reasons recorded when a submission is refused by policy.
const (
	suppressNotRegistered = "not_registered"
	suppressOptedOut      = "opted_out"
	suppressQuietHours    = "quiet_hours"
)

// Options configures a Service. Zero values fall back to defaults.
type Options struct {
	HistoryLimit      int
	DefaultQuietHours *Window
	Catalog           *Catalog
	Pusher            Pusher
	Logger            logger.Logger

	// Per-item dispatch policy for the drain loop.
	PushTimeout    time.Duration
	PushMaxRetries int
	PushRetryDelay time.Duration

	// Now is the clock used for quiet-hours evaluation and timestamps.
	// Tests inject a synthetic clock here.
	Now func() time.Time
}

// Service is the notification delivery service: one explicitly constructed
// object owning the preference store, the template catalog, the delivery
// queue and the history ledger. Both the request-driven path and the
// scheduler submit through it concurrently.
type Service struct {
	store   *Store
	catalog *Catalog
	queue   *Queue
	history *History
	pusher  Pusher
	logger  logger.Logger
	now     func() time.Time

	pushTimeout    time.Duration
	pushMaxRetries int
	pushRetryDelay time.Duration
}

// NewService builds a Service from options.
func NewService(opts Options) *Service {
	quiet := Window{Start: MustClock("22:00"), End: MustClock("07:00")}
	if opts.DefaultQuietHours != nil {
		quiet = *opts.DefaultQuietHours
	}

	catalog := opts.Catalog
	if catalog == nil {
		catalog = DefaultCatalog()
	}

	pusher := opts.Pusher
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	if pusher == nil {
		pusher = NewSimulatedPusher(log)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	pushTimeout := opts.PushTimeout
	if pushTimeout <= 0 {
		pushTimeout = 5 * time.Second
	}
	pushMaxRetries := opts.PushMaxRetries
	if pushMaxRetries <= 0 {
		pushMaxRetries = 1
	}
	pushRetryDelay := opts.PushRetryDelay
	if pushRetryDelay <= 0 {
		pushRetryDelay = 500 * time.Millisecond
	}

	return &Service{
		store:          NewStore(quiet),
		catalog:        catalog,
		queue:          NewQueue(),
		history:        NewHistory(opts.HistoryLimit),
		pusher:         pusher,
		logger:         log,
		now:            now,
		pushTimeout:    pushTimeout,
		pushMaxRetries: pushMaxRetries,
		pushRetryDelay: pushRetryDelay,
	}
}

// Register registers a user's delivery endpoint. Re-registration overwrites.
func (s *Service) Register(userID, pushToken string, prefs *Preferences) error {
	if err := s.store.Register(userID, pushToken, prefs); err != nil {
		return err
	}
	s.logger.Info("user registered for notifications", map[string]interface{}{
		"userId": userID,
	})
	return nil
}

// Unregister removes a user; unknown users are a no-op.
func (s *Service) Unregister(userID string) {
	s.store.Unregister(userID)
	s.logger.Info("user unregistered from notifications", map[string]interface{}{
		"userId": userID,
	})
}

// UpdatePreferences merges partial preference keys into the user's record.
func (s *Service) UpdatePreferences(userID string, partial map[string]interface{}) (Preferences, error) {
	merged, err := s.store.UpdatePreferences(userID, partial)
	if err != nil {
		return Preferences{}, err
	}
	s.logger.Info("preferences updated", map[string]interface{}{
		"userId": userID,
	})
	return merged, nil
}

// Get returns a copy of the user's registration.
func (s *Service) Get(userID string) (Registration, bool) {
	return s.store.Get(userID)
}

// UserIDs returns a snapshot of all registered user IDs for campaign
// fan-out.
func (s *Service) UserIDs() []string {
	return s.store.UserIDs()
}

// QueueLen reports the number of notifications awaiting dispatch.
func (s *Service) QueueLen() int {
	return s.queue.Len()
}

// Submit is the single entry point every send converges on. It applies
// policy, renders the template, queues the notification and records it in
// history. The boolean reports whether the notification was accepted;
// policy refusals (unknown user, opt-out, quiet hours) are (false, nil).
// The only error case is a category missing from the catalog entirely.
func (s *Service) Submit(userID string, category Category, data map[string]string) (bool, error) {
	reg, ok := s.store.Get(userID)
	if !ok {
		s.logger.Warn("submission for unregistered user", map[string]interface{}{
			"userId":   userID,
			"category": category,
		})
		metrics.NotificationsSuppressed.WithLabelValues(string(category), suppressNotRegistered).Inc()
		return false, nil
	}

	if !reg.Preferences.Allows(category) {
		s.logger.Debug("category disabled by user", map[string]interface{}{
			"userId":   userID,
			"category": category,
		})
		metrics.NotificationsSuppressed.WithLabelValues(string(category), suppressOptedOut).Inc()
		return false, nil
	}

	now := s.now()
	if reg.Preferences.QuietHours.Contains(now) {
		s.logger.Debug("suppressed during quiet hours", map[string]interface{}{
			"userId":   userID,
			"category": category,
		})
		metrics.NotificationsSuppressed.WithLabelValues(string(category), suppressQuietHours).Inc()
		return false, nil
	}

	title, body, payload, err := s.catalog.Render(category, data)
	if err != nil {
		s.logger.Error("unknown notification category", map[string]interface{}{
			"userId":   userID,
			"category": category,
		})
		return false, err
	}

	n := &Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Category:  category,
		Title:     title,
		Body:      body,
		Payload:   payload,
		Timestamp: now,
	}

	s.queue.Push(n)
	s.history.Append(n)
	metrics.NotificationsSubmitted.WithLabelValues(string(category)).Inc()

	s.logger.Info("notification queued", map[string]interface{}{
		"userId":   userID,
		"category": category,
		"title":    title,
	})
	return true, nil
}
