package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCloudWatch struct {
	inputs []*cloudwatch.PutMetricDataInput
	err    error
}

func (f *fakeCloudWatch) PutMetricData(_ context.Context, in *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	f.inputs = append(f.inputs, in)
	return &cloudwatch.PutMetricDataOutput{}, f.err
}

func TestMetrics_RecordOperation(t *testing.T) {
	cw := &fakeCloudWatch{}
	m := NewMetrics("RolloutHQ", cw, zap.NewNop())

	m.RecordOperation(context.Background(), "DeleteAlbum", 120*time.Millisecond, errors.New("boom"))

	require.Len(t, cw.inputs, 1)
	in := cw.inputs[0]
	assert.Equal(t, "RolloutHQ", *in.Namespace)
	require.Len(t, in.MetricData, 2)
	assert.Equal(t, "OperationLatency", *in.MetricData[0].MetricName)
	assert.Equal(t, 120.0, *in.MetricData[0].Value)
	assert.Equal(t, "failure", *in.MetricData[0].Dimensions[1].Value)
}

func TestMetrics_FailuresAreSwallowed(t *testing.T) {
	cw := &fakeCloudWatch{err: errors.New("throttled")}
	m := NewMetrics("RolloutHQ", cw, zap.NewNop())
	assert.NotPanics(t, func() { m.RecordItemsDeleted(context.Background(), 27) })

	var disabled *Metrics
	assert.NotPanics(t, func() { disabled.RecordItemsDeleted(context.Background(), 1) })
	assert.NotPanics(t, func() {
		disabled.RecordOperation(context.Background(), "DeleteAlbum", time.Millisecond, errors.New("boom"))
	})

	noClient := NewMetrics("RolloutHQ", nil, zap.NewNop())
	assert.NotPanics(t, func() { noClient.RecordOperation(context.Background(), "DeleteAlbum", time.Millisecond, nil) })
}

func TestCollector(t *testing.T) {
	c := NewCollector("rollout")
	multi := MultiRecorder{c, NopRecorder{}}

	multi.RecordOperation(context.Background(), "CreateAlbum", time.Millisecond, nil)
	multi.RecordItemsDeleted(context.Background(), 26)
	c.ObserveHTTP("GET", "/albums", "200", time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "rollout_cascade_items_deleted_total 26")
	assert.Contains(t, body, `rollout_operations_total{operation="CreateAlbum",status="success"} 1`)
	assert.Contains(t, body, `rollout_http_requests_total{method="GET",route="/albums",status="200"} 1`)
}

func TestTracer_DisabledRunsFunction(t *testing.T) {
	tr := NewTracer("rollout", false)
	called := false
	err := tr.TraceFunction(context.Background(), "op", func(context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)

	enabled := NewTracer("rollout", true)
	err = enabled.TraceFunction(context.Background(), "op", func(context.Context) error { return errors.New("x") })
	assert.EqualError(t, err, "x")
}
