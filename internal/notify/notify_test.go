package notify

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errTestSNSDown = errors.New("sns unavailable")

// SNSAPIMock is a mock implementation of the SNSAPI interface.
type SNSAPIMock struct {
	mock.Mock
}

func (m *SNSAPIMock) Publish(
	ctx context.Context,
	params *sns.PublishInput,
	optFns ...func(*sns.Options),
) (*sns.PublishOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*sns.PublishOutput), args.Error(1) //nolint:forcetypeassert // Test mock.
}

// TestSNS_Action publishes the alarm name and details to the topic.
func TestSNS_Action(t *testing.T) {
	t.Parallel()

	api := new(SNSAPIMock)
	api.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		return aws.ToString(in.TopicArn) == "arn:aws:sns:eu-west-1:123:sump" &&
			aws.ToString(in.Subject) == "sump-watch: tank-low" &&
			strings.Contains(aws.ToString(in.Message), "last event [12.5]")
	}), mock.Anything).Return(&sns.PublishOutput{}, nil).Once()

	publisher := NewSNS(api, "arn:aws:sns:eu-west-1:123:sump", time.Second)
	publisher.Action(context.Background(), "tank-low", func() string { return "last event [12.5]" }).Run()

	api.AssertExpectations(t)
}

// TestSNS_SendError verifies publish errors are wrapped and the action swallows them.
func TestSNS_SendError(t *testing.T) {
	t.Parallel()

	api := new(SNSAPIMock)
	api.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil, errTestSNSDown)

	publisher := NewSNS(api, "arn", 0)

	err := publisher.Send(context.Background(), "s", "m")
	require.ErrorIs(t, err, errTestSNSDown)

	require.NotPanics(t, publisher.Action(context.Background(), "pump-on", nil).Run)
}

// TestStartCommand runs a shell script that records the alarm name.
func TestStartCommand(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}

	out := filepath.Join(t.TempDir(), "alarm.txt")
	script := `printf '%s' "$` + AlarmEnv + `" > "$1"`

	require.NoError(t, StartCommand(context.Background(), "pump-on", []string{"/bin/sh", "-c", script, "sh", out}))

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(out)
		return err == nil && string(data) == "pump-on"
	}, 5*time.Second, 10*time.Millisecond)

	require.ErrorIs(t, StartCommand(context.Background(), "x", nil), errEmptyCommand)
}

// TestLog_DoesNotPanic covers both forms of the log action.
func TestLog_DoesNotPanic(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, Log(context.Background(), "pump-on", nil).Run)
	require.NotPanics(t, Log(context.Background(), "pump-on", func() string { return "[1]" }).Run)
}
