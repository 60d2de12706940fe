package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/contentguard-api/internal/models"
)

type publisherStub struct {
	published []models.Notification
}

func (p *publisherStub) Publish(n models.Notification) {
	p.published = append(p.published, n)
}

func TestNotificationServiceStampsAndPublishes(t *testing.T) {
	publisher := &publisherStub{}
	metrics := NewMetricsService()
	svc := NewNotificationService(3, publisher, metrics, nil)
	svc.now = func() time.Time { return time.Date(2023, 10, 15, 9, 0, 0, 0, time.UTC) }

	n := svc.Notify(context.Background(), models.Notification{Kind: models.KindApproved, Title: "Content Approved"})
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, models.VariantDefault, n.Variant)
	assert.Equal(t, time.Date(2023, 10, 15, 9, 0, 0, 0, time.UTC), n.CreatedAt)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, n, publisher.published[0])
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.notifications.WithLabelValues(models.KindApproved)))
}

func TestNotificationServiceRecentIsBounded(t *testing.T) {
	svc := NewNotificationService(3, nil, nil, nil)
	assert.Empty(t, svc.Recent(0))

	for i := 1; i <= 5; i++ {
		svc.Notify(context.Background(), models.Notification{Title: fmt.Sprintf("n%d", i)})
	}

	recent := svc.Recent(0)
	require.Len(t, recent, 3)
	assert.Equal(t, "n5", recent[0].Title)
	assert.Equal(t, "n3", recent[2].Title)

	limited := svc.Recent(2)
	require.Len(t, limited, 2)
	assert.Equal(t, "n4", limited[1].Title)
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	assert.NotPanics(t, func() {
		m.RecordDecision("APPROVED")
		m.SetQueueDepth(3)
		m.RecordEndOfQueue()
		m.RecordExportJob("QUEUED")
	})
}

func TestMetricsServiceRecordsModerationActivity(t *testing.T) {
	m := NewMetricsService()
	m.RecordDecision("APPROVED")
	m.RecordDecision("APPROVED")
	m.SetQueueDepth(4)
	m.RecordEndOfQueue()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.decisions.WithLabelValues("APPROVED")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.queueDepth))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.endOfQueue))
}
