package recorder

import (
	"context"
	"errors"
	"testing"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriteAPI struct {
	points []*write.Point
	err    error
}

func (f *fakeWriteAPI) WriteRecord(_ context.Context, _ ...string) error { return f.err }
func (f *fakeWriteAPI) WritePoint(_ context.Context, points ...*write.Point) error {
	if f.err != nil {
		return f.err
	}
	f.points = append(f.points, points...)
	return nil
}
func (f *fakeWriteAPI) EnableBatching()               {}
func (f *fakeWriteAPI) Flush(_ context.Context) error { return nil }

func newTestService(t *testing.T, writeAPI *fakeWriteAPI) *Service {
	t.Helper()
	m := NewMetrics(prometheus.NewRegistry())
	svc, err := NewService(writeAPI, "force", m)
	require.NoError(t, err)
	return svc
}

func TestRecordsForceData(t *testing.T) {
	api := &fakeWriteAPI{}
	h := newTestService(t, api).Handler(context.Background())

	h(`{"type":"force_data","drag_force":12,"down_force":-4}`)

	require.Len(t, api.points, 1)
	p := api.points[0]
	assert.Equal(t, "force", p.Name())

	fields := map[string]interface{}{}
	for _, f := range p.FieldList() {
		fields[f.Key] = f.Value
	}
	assert.Equal(t, int64(12), fields["drag_force"])
	assert.Equal(t, int64(-4), fields["down_force"])
}

func TestIgnoresOtherMessageTypes(t *testing.T) {
	api := &fakeWriteAPI{}
	h := newTestService(t, api).Handler(context.Background())

	h(`{"type":"ota_ack","status":"success"}`)
	h(`not json`)
	h(`{"drag_force":1}`)

	assert.Empty(t, api.points)
}

func TestRecordsIdenticalConsecutiveReadings(t *testing.T) {
	api := &fakeWriteAPI{}
	h := newTestService(t, api).Handler(context.Background())

	// steady-state telemetry repeats the same payload every interval;
	// each repeat is a real reading and must become its own point
	msg := `{"type":"force_data","drag_force":100,"down_force":50}`
	for i := 0; i < 4; i++ {
		h(msg)
	}

	assert.Len(t, api.points, 4)
}

func TestWriteErrorIsRecorded(t *testing.T) {
	api := &fakeWriteAPI{err: errors.New("influx down")}
	svc := newTestService(t, api)
	h := svc.Handler(context.Background())

	h(`{"type":"force_data","drag_force":1,"down_force":2}`)

	assert.Less(t, svc.LastErrorAge().Seconds(), 5.0)
}

func TestNewServiceRequiresWriteAPI(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	_, err := NewService(nil, "force", m)
	assert.Error(t, err)
}
