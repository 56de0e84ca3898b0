package sink

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/sump-watch/internal/domain/event"
)

var errTestThrottled = errors.New("throttled")

// CloudWatchAPIMock is a mock implementation of the CloudWatchAPI interface.
type CloudWatchAPIMock struct {
	mock.Mock
}

func (m *CloudWatchAPIMock) PutMetricData(
	ctx context.Context,
	params *cloudwatch.PutMetricDataInput,
	optFns ...func(*cloudwatch.Options),
) (*cloudwatch.PutMetricDataOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*cloudwatch.PutMetricDataOutput), args.Error(1) //nolint:forcetypeassert // Test mock.
}

// TestCloudWatch_Log verifies one datum per field with suffixed names.
func TestCloudWatch_Log(t *testing.T) {
	t.Parallel()

	api := new(CloudWatchAPIMock)
	stamp := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	api.On("PutMetricData", mock.Anything, mock.MatchedBy(func(in *cloudwatch.PutMetricDataInput) bool {
		if aws.ToString(in.Namespace) != "SumpWatch" || len(in.MetricData) != 2 {
			return false
		}

		first, second := in.MetricData[0], in.MetricData[1]

		return aws.ToString(first.MetricName) == "depth" &&
			aws.ToFloat64(first.Value) == 167.36 &&
			aws.ToString(second.MetricName) == "depth_1" &&
			aws.ToFloat64(second.Value) == 1 &&
			aws.ToTime(first.Timestamp).Equal(stamp) &&
			aws.ToString(first.Dimensions[0].Value) == "pi"
	}), mock.Anything).Return(&cloudwatch.PutMetricDataOutput{}, nil).Once()

	sink := NewCloudWatch(api, "SumpWatch", "depth", "pi", 0)
	sink.now = func() time.Time { return stamp }

	require.NoError(t, sink.Log(context.Background(), event.New(167.36, 1)))

	// Empty events do not reach the API.
	require.NoError(t, sink.Log(context.Background(), event.New()))

	api.AssertExpectations(t)
}

// TestCloudWatch_LogError verifies API failures are wrapped.
func TestCloudWatch_LogError(t *testing.T) {
	t.Parallel()

	api := new(CloudWatchAPIMock)
	api.On("PutMetricData", mock.Anything, mock.Anything, mock.Anything).Return(nil, errTestThrottled)

	err := NewCloudWatch(api, "SumpWatch", "status", "pi", 0).Log(context.Background(), event.New(1))
	require.ErrorIs(t, err, errTestThrottled)
}

// TestCloudWatch_LogDeadline verifies every call is bounded by the timeout.
func TestCloudWatch_LogDeadline(t *testing.T) {
	t.Parallel()

	api := new(CloudWatchAPIMock)
	api.On("PutMetricData", mock.MatchedBy(func(ctx context.Context) bool {
		deadline, ok := ctx.Deadline()

		return ok && time.Until(deadline) <= time.Minute
	}), mock.Anything, mock.Anything).Return(&cloudwatch.PutMetricDataOutput{}, nil).Once()

	sink := NewCloudWatch(api, "SumpWatch", "status", "pi", time.Minute)
	require.NoError(t, sink.Log(context.Background(), event.New(1)))

	api.AssertExpectations(t)
}
