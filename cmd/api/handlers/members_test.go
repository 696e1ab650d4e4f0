package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/referralhub/casemgmt/scheduled-tasks/cmd/api/handlers/mocks"
	"github.com/referralhub/casemgmt/scheduled-tasks/common"
	"github.com/referralhub/casemgmt/scheduled-tasks/framework/mid"
	"github.com/referralhub/casemgmt/scheduled-tasks/framework/web"
	"github.com/referralhub/casemgmt/scheduled-tasks/logger"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/domain"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/service"
)

func newMembersContext(method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(method, target, nil)

	return ctx, w
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()

	var webErr *web.Error
	require.True(t, errors.As(err, &webErr), "expected a request error, got %v", err)
	assert.Equal(t, status, webErr.Status)
}

func TestMembers_Sync(t *testing.T) {
	lastSyncAt := time.Date(2024, 5, 2, 11, 0, 0, 0, time.UTC)

	type fields struct {
		service mocks.MembersSyncService
	}

	tests := []struct {
		name   string
		method string
		target string
		on     func(*fields)
		assert func(*testing.T, *httptest.ResponseRecorder, error)
	}{
		{
			name:   "defaults to incremental",
			method: http.MethodGet,
			target: "/tasks/members/sync",
			on: func(f *fields) {
				f.service.On("Sync", mock.Anything, domain.ModeIncremental).Return(&service.SyncResult{
					Success:    true,
					Mode:       domain.ModeIncremental,
					LastSyncAt: &lastSyncAt,
					Fetched:    3,
					Upserted:   3,
				}, nil)
			},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, err error) {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, w.Code)

				var body map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, true, body["success"])
				assert.Equal(t, "incremental", body["mode"])
				assert.Equal(t, float64(3), body["upserted"])
				assert.Equal(t, "2024-05-02T11:00:00Z", body["lastSyncAt"])
				assert.Nil(t, body["since"])
			},
		},
		{
			name:   "full requested",
			method: http.MethodPost,
			target: "/tasks/members/sync?mode=full",
			on: func(f *fields) {
				f.service.On("Sync", mock.Anything, domain.ModeFull).Return(&service.SyncResult{Success: true, Mode: domain.ModeFull}, nil)
			},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, err error) {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, w.Code)
			},
		},
		{
			name:   "invalid mode",
			method: http.MethodGet,
			target: "/tasks/members/sync?mode=partial",
			assert: func(t *testing.T, w *httptest.ResponseRecorder, err error) {
				requireStatus(t, err, http.StatusBadRequest)
			},
		},
		{
			name:   "failed run",
			method: http.MethodGet,
			target: "/tasks/members/sync",
			on: func(f *fields) {
				f.service.On("Sync", mock.Anything, domain.ModeIncremental).Return(
					&service.SyncResult{Mode: domain.ModeFull, Fetched: 1000, Upserted: 800, SkippedMissingID: 2},
					&domain.PersistenceError{Committed: 800, Err: errors.New("deadline exceeded")},
				)
			},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, err error) {
				require.NoError(t, err)
				assert.Equal(t, http.StatusInternalServerError, w.Code)

				var body syncFailure
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.False(t, body.Success)
				assert.Equal(t, domain.ModeFull, body.Mode)
				assert.True(t, strings.Contains(body.Error, "deadline exceeded"))
				assert.Equal(t, 1000, body.Fetched)
				assert.Equal(t, 800, body.Upserted)
				assert.Equal(t, 2, body.SkippedMissingID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fields{}
			if tt.on != nil {
				tt.on(f)
			}

			h := &Members{
				loggerProvider: logger.FromContext,
				service:        &f.service,
			}

			ctx, w := newMembersContext(tt.method, tt.target)

			tt.assert(t, w, h.Sync(ctx))
			f.service.AssertExpectations(t)
		})
	}
}

func TestMembers_SyncAuthFailureRebuilds(t *testing.T) {
	first := &mocks.MembersSyncService{}
	first.On("Sync", mock.Anything, domain.ModeIncremental).
		Return(&service.SyncResult{Mode: domain.ModeIncremental}, &domain.AuthError{Err: errors.New("401")}).Once()

	second := &mocks.MembersSyncService{}
	second.On("Sync", mock.Anything, domain.ModeIncremental).
		Return(&service.SyncResult{Success: true, Mode: domain.ModeIncremental}, nil).Once()

	builds := []MembersSyncService{first, second}

	h := &Members{
		loggerProvider: logger.FromContext,
		build: func(context.Context) (MembersSyncService, error) {
			s := builds[0]
			builds = builds[1:]

			return s, nil
		},
	}

	ctx, w := newMembersContext(http.MethodGet, "/tasks/members/sync")
	require.NoError(t, h.Sync(ctx))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	ctx, w = newMembersContext(http.MethodGet, "/tasks/members/sync")
	require.NoError(t, h.Sync(ctx))
	assert.Equal(t, http.StatusOK, w.Code)

	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestMembers_BuildFailure(t *testing.T) {
	h := &Members{
		loggerProvider: logger.FromContext,
		build: func(context.Context) (MembersSyncService, error) {
			return nil, errors.New("no credentials")
		},
	}

	ctx, _ := newMembersContext(http.MethodGet, "/tasks/members/sync")
	requireStatus(t, h.Sync(ctx), http.StatusInternalServerError)
}

func TestMembers_SyncStatus(t *testing.T) {
	type fields struct {
		service mocks.MembersSyncService
	}

	tests := []struct {
		name       string
		cron       bool
		on         func(*fields)
		wantStatus int
		wantBody   string
	}{
		{
			name: "not synced yet",
			cron: true,
			on: func(f *fields) {
				f.service.On("Status", mock.Anything).Return(nil, service.ErrNoSyncState)
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"members have not been synced yet"}`,
		},
		{
			name: "store failure",
			cron: true,
			on: func(f *fields) {
				f.service.On("Status", mock.Anything).Return(nil, errors.New("unavailable"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"unavailable"}`,
		},
		{
			name: "synced",
			cron: true,
			on: func(f *fields) {
				f.service.On("Status", mock.Anything).Return(&domain.SyncState{LastMode: domain.ModeFull}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown caller",
			on:         func(f *fields) {},
			wantStatus: http.StatusForbidden,
		},
	}

	localhost := common.IsLocalhost
	common.IsLocalhost = false

	t.Cleanup(func() { common.IsLocalhost = localhost })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fields{}
			tt.on(f)

			h := &Members{loggerProvider: logger.FromContext, service: &f.service}

			app := web.NewTestApp(mid.Errors())
			app.Get("/tasks/members/sync/status", h.SyncStatus, mid.RequireCaller())

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/tasks/members/sync/status", nil)

			if tt.cron {
				req.Header.Set("X-Appengine-Cron", "true")
			}

			app.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			switch {
			case tt.wantBody != "":
				assert.Equal(t, tt.wantBody, w.Body.String())
			case tt.wantStatus == http.StatusOK:
				assert.Contains(t, w.Body.String(), `"lastMode":"full"`)
			}

			f.service.AssertExpectations(t)
		})
	}
}

func TestMembers_Assigned(t *testing.T) {
	s := &mocks.MembersSyncService{}
	s.On("FindAssigned", mock.Anything, "jane smith").Return([]*domain.CachedMember{
		{ClientKey: "C-1", AssignedStaff: "Jane A. Smith"},
	}, nil)

	h := &Members{loggerProvider: logger.FromContext, service: s}
	ctx, w := newMembersContext(http.MethodGet, "/members/assigned?staff=jane+smith")

	require.NoError(t, h.Assigned(ctx))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"clientKey":"C-1"`)
	s.AssertExpectations(t)
}
