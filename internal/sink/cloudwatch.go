package sink

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/oshokin/sump-watch/internal/domain/event"
)

// CloudWatchAPI is the part of the CloudWatch client the sink uses.
type CloudWatchAPI interface {
	PutMetricData(
		ctx context.Context,
		input *cloudwatch.PutMetricDataInput,
		optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// CloudWatch publishes every event field as a metric datum.
// Field 0 uses the metric name as is, field n gets a "_n" suffix.
type CloudWatch struct {
	api        CloudWatchAPI
	namespace  string
	metricName string
	sourceID   string
	// timeout bounds one PutMetricData call.
	timeout time.Duration
	// now stamps the data points.
	now func() time.Time
}

// NewCloudWatch creates a metric sink. A timeout <= 0 means no deadline.
func NewCloudWatch(api CloudWatchAPI, namespace, metricName, sourceID string, timeout time.Duration) *CloudWatch {
	return &CloudWatch{
		api:        api,
		namespace:  namespace,
		metricName: metricName,
		sourceID:   sourceID,
		timeout:    timeout,
		now:        time.Now,
	}
}

// Log publishes the event. Empty events publish nothing.
func (c *CloudWatch) Log(ctx context.Context, e event.Event) error {
	values := e.Values()
	if len(values) == 0 {
		return nil
	}

	timestamp := c.now()
	data := make([]types.MetricDatum, 0, len(values))

	for i, v := range values {
		data = append(data, types.MetricDatum{
			MetricName: aws.String(c.fieldName(i)),
			Value:      aws.Float64(v),
			Timestamp:  aws.Time(timestamp),
			Unit:       types.StandardUnitNone,
			Dimensions: []types.Dimension{
				{
					Name:  aws.String("Source"),
					Value: aws.String(c.sourceID),
				},
			},
		})
	}

	input := &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(c.namespace),
		MetricData: data,
	}

	ctx, cancel := callContext(ctx, c.timeout)
	defer cancel()

	if _, err := c.api.PutMetricData(ctx, input); err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}

	return nil
}

func (c *CloudWatch) fieldName(i int) string {
	if i == 0 {
		return c.metricName
	}

	return c.metricName + "_" + strconv.Itoa(i)
}
