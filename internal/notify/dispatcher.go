// internal/notify/dispatcher.go
package notify

import (
	"context"
	"fmt"
	"time"

	"nutrition-notifier/internal/common/logger"
	"nutrition-notifier/internal/common/metrics"
)

// Pusher delivers one rendered notification to a device endpoint. The
// default implementation only logs; a production deployment swaps in the
// SNS-backed pusher.
type Pusher interface {
	Push(ctx context.Context, pushToken string, n *Notification) error
}

// SimulatedPusher logs the would-be delivery instead of calling a push
// gateway.
type SimulatedPusher struct {
	logger logger.Logger
}

func NewSimulatedPusher(log logger.Logger) *SimulatedPusher {
	return &SimulatedPusher{logger: log}
}

func (p *SimulatedPusher) Push(_ context.Context, _ string, n *Notification) error {
	p.logger.Info("push notification sent", map[string]interface{}{
		"userId": n.UserID,
		"title":  n.Title,
		"body":   n.Body,
	})
	return nil
}

// Drain pops the front of the queue until the length observed at call time
// is exhausted, pushing each item to its recipient. Items for users who
// unregistered after submission are skipped without error. A failing item
// is logged and counted; the drain continues with the rest. Returns the
// resulting queue length.
func (s *Service) Drain(ctx context.Context) int {
	pending := s.queue.Len()

	for i := 0; i < pending; i++ {
		n := s.queue.Pop()
		if n == nil {
			break
		}

		reg, ok := s.store.Get(n.UserID)
		if !ok {
			// Recipient gone between submission and drain; best-effort no-op.
			s.logger.Debug("dropping notification for unregistered user", map[string]interface{}{
				"userId":         n.UserID,
				"notificationId": n.ID,
			})
			continue
		}

		if err := s.pushWithRetry(ctx, reg.PushToken, n); err != nil {
			s.logger.WithError(err).Error("push delivery failed", map[string]interface{}{
				"userId":         n.UserID,
				"notificationId": n.ID,
				"category":       n.Category,
			})
			metrics.DispatchFailures.WithLabelValues(string(n.Category)).Inc()
			continue
		}

		s.store.RecordDelivery(n.UserID, n.Timestamp)
		metrics.NotificationsDispatched.WithLabelValues(string(n.Category)).Inc()
	}

	return s.queue.Len()
}

// pushWithRetry wraps a single send in a timeout and exponential backoff.
func (s *Service) pushWithRetry(ctx context.Context, token string, n *Notification) error {
	var err error
	delay := s.pushRetryDelay

	for attempt := 0; attempt < s.pushMaxRetries; attempt++ {
		sendCtx, cancel := context.WithTimeout(ctx, s.pushTimeout)
		err = s.pusher.Push(sendCtx, token, n)
		cancel()
		if err == nil {
			return nil
		}

		if attempt < s.pushMaxRetries-1 {
			s.logger.Warn("push attempt failed, retrying", map[string]interface{}{
				"notificationId": n.ID,
				"attempt":        attempt + 1,
				"maxRetries":     s.pushMaxRetries,
				"nextRetryIn":    delay.String(),
			})
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return fmt.Errorf("push failed after %d attempts: %w", s.pushMaxRetries, err)
}
