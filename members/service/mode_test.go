package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/referralhub/casemgmt/scheduled-tasks/logger"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/domain"
)

func TestSelectMode(t *testing.T) {
	synced := &domain.SyncState{LastSyncAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), LastSelectSignature: "abc"}

	tests := []struct {
		name      string
		prev      *domain.SyncState
		requested domain.Mode
		signature string
		want      domain.Mode
		reason    modeReason
	}{
		{"first run", nil, domain.ModeIncremental, "abc", domain.ModeFull, reasonFirstRun},
		{"full requested", synced, domain.ModeFull, "abc", domain.ModeFull, reasonRequested},
		{"selection changed", synced, domain.ModeIncremental, "def", domain.ModeFull, reasonSignatureChanged},
		{"unfiltered after filtered", synced, domain.ModeIncremental, "*", domain.ModeFull, reasonSignatureChanged},
		{"incremental", synced, domain.ModeIncremental, "abc", domain.ModeIncremental, reasonWatermark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, reason := SelectMode(tt.prev, tt.requested, tt.signature)
			assert.Equal(t, tt.want, mode)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestDetectsChanges(t *testing.T) {
	assert.False(t, detectsChanges(domain.ModeFull, &domain.SyncState{LastSyncAt: time.Now()}))
	assert.False(t, detectsChanges(domain.ModeIncremental, nil))
	assert.False(t, detectsChanges(domain.ModeIncremental, &domain.SyncState{}))
	assert.True(t, detectsChanges(domain.ModeIncremental, &domain.SyncState{LastSyncAt: time.Now()}))
}

func TestWatermark(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	prev := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	w := NewWatermark(prev)
	assert.Equal(t, start, w.Value(start), "nothing observed")

	w.Observe(time.Time{})
	assert.False(t, w.Observed())

	w.Observe(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, prev, w.Value(start), "never below the previous watermark")

	later := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	w.Observe(later)
	w.Observe(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, later, w.Value(start))
}

func TestRunMachine(t *testing.T) {
	m := newRunMachine(logger.FromContext(context.Background()))

	for _, tr := range []trigger{triggerResolve, triggerFetch, triggerUpsert, triggerPageDone, triggerUpsert, triggerPageDone, triggerPersist} {
		assert.NoError(t, m.Fire(tr), tr)
	}

	assert.Error(t, m.Fire(triggerUpsert), "no upserts while persisting")
	assert.NoError(t, m.Fire(triggerFinish))
	assert.Equal(t, phaseIdle, m.MustState())
}
