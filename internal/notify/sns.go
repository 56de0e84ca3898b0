package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/oshokin/sump-watch/internal/domain/alarm"
	"github.com/oshokin/sump-watch/internal/logger"
)

// SNSAPI is the part of the SNS client used to publish notifications.
type SNSAPI interface {
	Publish(
		ctx context.Context,
		input *sns.PublishInput,
		optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNS publishes alarm notifications to a topic.
type SNS struct {
	api      SNSAPI
	topicARN string
	// timeout bounds one publish call.
	timeout time.Duration
	// now stamps the message.
	now func() time.Time
}

// NewSNS creates a publisher for topicARN. A timeout <= 0 means no deadline.
func NewSNS(api SNSAPI, topicARN string, timeout time.Duration) *SNS {
	return &SNS{
		api:      api,
		topicARN: topicARN,
		timeout:  timeout,
		now:      time.Now,
	}
}

// Send publishes one message.
func (s *SNS) Send(ctx context.Context, subject, message string) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	input := &sns.PublishInput{
		TopicArn: aws.String(s.topicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	}

	if _, err := s.api.Publish(ctx, input); err != nil {
		return fmt.Errorf("publish to %s: %w", s.topicARN, err)
	}

	return nil
}

// Action returns an alarm action publishing a notification for the named alarm.
// Publish failures are logged; the alarm chain goes on.
func (s *SNS) Action(ctx context.Context, name string, describe func() string) alarm.ActionFunc {
	return func() {
		message := fmt.Sprintf("Alarm %s fired at %s", name, s.now().Format(time.RFC3339))
		if describe != nil {
			message += "\n" + describe()
		}

		if err := s.Send(ctx, "sump-watch: "+name, message); err != nil {
			logger.ErrorKV(ctx, "Alarm notification failed", "alarm", name, "error", err)
		}
	}
}
