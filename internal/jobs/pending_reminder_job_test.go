package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smsgrouprw-hash/Talabat-sub000/internal/order"

	"github.com/stretchr/testify/assert"
)

type stubOrderService struct {
	order.Service

	calls     int
	olderThan time.Duration
	err       error
}

func (s *stubOrderService) RemindStalePending(ctx context.Context, olderThan time.Duration) (int, error) {
	s.calls++
	s.olderThan = olderThan
	if s.err != nil {
		return 0, s.err
	}
	return 2, nil
}

func TestPendingReminderJob_RunOnce(t *testing.T) {
	svc := &stubOrderService{}
	job := NewPendingReminderJob(svc)

	job.runOnce()

	assert.Equal(t, 1, svc.calls)
	assert.Equal(t, staleAfter, svc.olderThan)
}

func TestPendingReminderJob_SweepErrorDoesNotPanic(t *testing.T) {
	svc := &stubOrderService{err: errors.New("db down")}
	job := NewPendingReminderJob(svc)

	assert.NotPanics(t, job.runOnce)
	assert.Equal(t, 1, svc.calls)
}

func TestPendingReminderJob_StartStop(t *testing.T) {
	svc := &stubOrderService{}
	job := NewPendingReminderJob(svc)

	assert.NoError(t, job.Start())
	job.Stop()
}
