package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/referralhub/casemgmt/scheduled-tasks/logger"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/activity"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/config"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/domain"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/normalize"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/service/mocks"
)

func records(n int) []domain.RemoteMemberRecord {
	res := make([]domain.RemoteMemberRecord, n)
	for i := range res {
		res[i] = domain.RemoteMemberRecord{
			domain.ColumnClientID: fmt.Sprintf("C-%04d", i),
			domain.ColumnStatus:   "Authorized",
		}
	}

	return res
}

func TestUpserter_UpsertBatch(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()

	type fields struct {
		cache   *memoryCache
		emitter mocks.EventEmitter
	}

	tests := []struct {
		name    string
		records []domain.RemoteMemberRecord
		opts    UpsertOptions
		on      func(*fields)
		assert  func(*testing.T, *fields, *BatchResult, error)
	}{
		{
			name:    "chunks of four hundred",
			records: records(900),
			assert: func(t *testing.T, f *fields, res *BatchResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, []int{400, 400, 100}, f.cache.commits)
				assert.Equal(t, 900, res.Written)
				assert.Equal(t, 3, res.Commits)
			},
		},
		{
			name:    "failed commit keeps earlier chunks",
			records: records(900),
			on: func(f *fields) {
				f.cache.failOn = 3
			},
			assert: func(t *testing.T, f *fields, res *BatchResult, err error) {
				var pErr *domain.PersistenceError
				require.True(t, errors.As(err, &pErr))
				assert.Equal(t, 800, pErr.Committed)
				assert.ErrorIs(t, err, errCommit)
				assert.Equal(t, 800, res.Written)
				assert.Equal(t, 2, res.Commits)
				assert.Len(t, f.cache.docs, 800)
			},
		},
		{
			name: "records without a key are skipped",
			records: []domain.RemoteMemberRecord{
				{domain.ColumnClientID: "C-1", domain.ColumnStatus: "Authorized"},
				{domain.ColumnStatus: "Orphan"},
				{domain.ColumnClientID: "  ", domain.ColumnStatus: "Orphan"},
			},
			assert: func(t *testing.T, f *fields, res *BatchResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, res.Written)
				assert.Equal(t, 2, res.Skipped)
				assert.Contains(t, f.cache.docs, "C-1")
			},
		},
		{
			name: "only skipped records commit nothing",
			records: []domain.RemoteMemberRecord{
				{domain.ColumnStatus: "Orphan"},
			},
			assert: func(t *testing.T, f *fields, res *BatchResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 0, res.Commits)
				assert.Empty(t, f.cache.commits)
			},
		},
		{
			name: "duplicate keys keep the last occurrence",
			records: []domain.RemoteMemberRecord{
				{domain.ColumnClientID: "C-1", domain.ColumnStatus: "Pending"},
				{domain.ColumnClientID: "C-2", domain.ColumnStatus: "Pending"},
				{domain.ColumnClientID: "C-1", domain.ColumnStatus: "Authorized"},
			},
			assert: func(t *testing.T, f *fields, res *BatchResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, []int{2}, f.cache.commits)
				assert.Equal(t, "Authorized", f.cache.docs["C-1"].Status)
			},
		},
		{
			name:    "diff emits one event per changed member",
			records: []domain.RemoteMemberRecord{{domain.ColumnClientID: "C-1", domain.ColumnStatus: "Closed"}, {domain.ColumnClientID: "C-2", domain.ColumnStatus: "Pending"}},
			opts:    UpsertOptions{Mode: domain.ModeIncremental, Diff: true},
			on: func(f *fields) {
				for _, key := range []string{"C-1", "C-2"} {
					m := domain.NewCachedMember(key)
					m.Set(domain.KeyStatus, "Pending")
					f.cache.docs[key] = m
				}

				f.emitter.On("Emit", ctx, mock.MatchedBy(func(events []*domain.ActivityEvent) bool {
					return len(events) == 1 && events[0].ClientKey == "C-1" && events[0].NewValue == "Closed"
				})).Return(1, nil).Once()
			},
			assert: func(t *testing.T, f *fields, res *BatchResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, res.Events)
			},
		},
		{
			name:    "emission failure does not fail the batch",
			records: []domain.RemoteMemberRecord{{domain.ColumnClientID: "C-1", domain.ColumnStatus: "Closed"}},
			opts:    UpsertOptions{Mode: domain.ModeIncremental, Diff: true},
			on: func(f *fields) {
				m := domain.NewCachedMember("C-1")
				m.Set(domain.KeyStatus, "Pending")
				f.cache.docs["C-1"] = m

				f.emitter.On("Emit", ctx, mock.Anything).
					Return(0, &domain.ActivityEmissionError{Dropped: 1, Err: errors.New("unavailable")}).Once()
			},
			assert: func(t *testing.T, f *fields, res *BatchResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, res.Written)
				assert.Equal(t, 0, res.Events)
				assert.Equal(t, "Closed", f.cache.docs["C-1"].Status)
			},
		},
		{
			name:    "full mode does not diff",
			records: []domain.RemoteMemberRecord{{domain.ColumnClientID: "C-1", domain.ColumnStatus: "Closed"}},
			opts:    UpsertOptions{Mode: domain.ModeFull},
			on: func(f *fields) {
				m := domain.NewCachedMember("C-1")
				m.Set(domain.KeyStatus, "Pending")
				f.cache.docs["C-1"] = m
			},
			assert: func(t *testing.T, f *fields, res *BatchResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 0, res.Events)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fields{cache: newMemoryCache()}
			if tt.on != nil {
				tt.on(f)
			}

			u := NewUpserter(logger.FromContext, normalize.NewNormalizer(cfg), f.cache, activity.NewDetector(), &f.emitter, cfg.UpsertChunkSize)

			res, err := u.UpsertBatch(ctx, tt.records, tt.opts)

			tt.assert(t, f, res, err)
			f.emitter.AssertExpectations(t)
		})
	}
}

func TestUpserter_ObservesWatermark(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	u := NewUpserter(logger.FromContext, normalize.NewNormalizer(cfg), newMemoryCache(), activity.NewDetector(), nil, cfg.UpsertChunkSize)

	w := NewWatermark(time.Time{})

	_, err := u.UpsertBatch(ctx, []domain.RemoteMemberRecord{
		{domain.ColumnClientID: "C-1", domain.ColumnDateModified: "2024-05-01T10:00:00"},
		{domain.ColumnClientID: "C-2", domain.ColumnDateModified: "2024-05-03T10:00:00"},
		{domain.ColumnClientID: "C-3"},
		{domain.ColumnClientID: "C-4", domain.ColumnDateModified: "not a date"},
	}, UpsertOptions{Mode: domain.ModeFull, Watermark: w})
	require.NoError(t, err)

	assert.True(t, w.Observed())
	assert.Equal(t, time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC), w.Value(runStart))
}
