// internal/notify/push_sns.go
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	commonerrors "nutrition-notifier/internal/common/errors"
)

// SNSPublisher is the subset of the SNS API the pusher needs; satisfied by
// the real client and by test fakes.
type SNSPublisher interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

// SNSPusher publishes drained notifications to AWS SNS. The user's push
// token is treated as an SNS platform endpoint ARN.
type SNSPusher struct {
	client SNSPublisher
}

func NewSNSPusher(client SNSPublisher) *SNSPusher {
	return &SNSPusher{client: client}
}

// snsMessage is the wire shape published per notification.
type snsMessage struct {
	Title   string            `json:"title"`
	Body    string            `json:"body"`
	Payload map[string]string `json:"payload"`
}

func (p *SNSPusher) Push(ctx context.Context, pushToken string, n *Notification) error {
	if pushToken == "" {
		return fmt.Errorf("empty push token for user %s", n.UserID)
	}

	message, err := json.Marshal(snsMessage{
		Title:   n.Title,
		Body:    n.Body,
		Payload: n.Payload,
	})
	if err != nil {
		return fmt.Errorf("marshal push message: %w", err)
	}

	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TargetArn: aws.String(pushToken),
		Message:   aws.String(string(message)),
	})
	if err != nil {
		return commonerrors.NewPushSendFailedError(err)
	}
	return nil
}
