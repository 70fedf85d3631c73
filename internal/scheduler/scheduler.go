// internal/scheduler/scheduler.go
package scheduler

import (
	"context"
	"sync"
	"time"

	"nutrition-notifier/internal/common/logger"
	"nutrition-notifier/internal/common/metrics"
	"nutrition-notifier/internal/notify"
)

// DefaultTickInterval is how often the scheduler checks for due triggers.
const DefaultTickInterval = 60 * time.Second

// Campaign is a trigger body; it fans a notification out across registered
// users via the service's submit path, so per-user policy always applies.
type Campaign func(ctx context.Context)

// Trigger fires a campaign at a time of day, daily or on one weekday.
type Trigger struct {
	Name    string
	At      notify.Clock
	Weekday *time.Weekday // nil means every day
	Run     Campaign
}

// Scheduler runs a single background loop that evaluates triggers once per
// tick. Start is effective at most once; Stop is safe to call at any time,
// including before Start, and the loop observes it within one tick.
type Scheduler struct {
	triggers []Trigger
	logger   logger.Logger
	interval time.Duration
	now      func() time.Time

	mu       sync.Mutex
	started  bool
	cancel   context.CancelFunc
	done     chan struct{}
	lastTick time.Time
}

// Options configures a Scheduler.
type Options struct {
	Triggers     []Trigger
	Logger       logger.Logger
	TickInterval time.Duration
	Now          func() time.Time
}

func New(opts Options) *Scheduler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	interval := opts.TickInterval
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		triggers: opts.Triggers,
		logger:   log,
		interval: interval,
		now:      now,
	}
}

// Start launches the background loop. Calling Start on a running scheduler
// is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		s.logger.Warn("scheduler already started", nil)
		return
	}
	s.started = true
	s.lastTick = s.now()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx)

	s.logger.Info("notification scheduler started", map[string]interface{}{
		"tickInterval": s.interval.String(),
		"triggers":     len(s.triggers),
	})
}

// Stop cancels the background loop and waits for it to exit. Pending work
// is abandoned, not drained. Safe to call without a prior Start and safe
// to call twice.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.started = false
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done

	s.logger.Info("notification scheduler stopped", nil)
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick fires every trigger whose due time arrived since the previous tick.
func (s *Scheduler) tick(ctx context.Context) {
	metrics.SchedulerTicks.Inc()

	now := s.now()
	s.mu.Lock()
	last := s.lastTick
	s.lastTick = now
	s.mu.Unlock()

	for _, trigger := range s.triggers {
		if !dueBetween(trigger, last, now) {
			continue
		}
		s.fire(ctx, trigger)
	}
}

// fire runs one campaign, recovering panics so a misbehaving trigger never
// kills the loop.
func (s *Scheduler) fire(ctx context.Context, trigger Trigger) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("campaign panicked", map[string]interface{}{
				"campaign": trigger.Name,
				"panic":    r,
			})
		}
	}()

	start := time.Now()
	s.logger.Info("firing campaign", map[string]interface{}{
		"campaign": trigger.Name,
		"at":       trigger.At.String(),
	})
	trigger.Run(ctx)
	metrics.CampaignDuration.WithLabelValues(trigger.Name).Observe(time.Since(start).Seconds())
}

// dueBetween reports whether the trigger's wall-clock fire time falls in
// (last, now]. Both bounds are realized in now's location so the check
// follows local time, including across a midnight boundary between ticks.
func dueBetween(trigger Trigger, last, now time.Time) bool {
	if !now.After(last) {
		return false
	}

	// Realize candidate fire times for every calendar day the interval
	// touches; an interval under 25h touches at most two.
	for day := startOfDay(last); !day.After(now); day = day.AddDate(0, 0, 1) {
		candidate := time.Date(day.Year(), day.Month(), day.Day(),
			trigger.At.Hour, trigger.At.Minute, 0, 0, now.Location())

		if !candidate.After(last) || candidate.After(now) {
			continue
		}
		if trigger.Weekday != nil && candidate.Weekday() != *trigger.Weekday {
			continue
		}
		return true
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
