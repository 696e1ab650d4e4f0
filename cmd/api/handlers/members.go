package handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/referralhub/casemgmt/scheduled-tasks/framework/connection"
	"github.com/referralhub/casemgmt/scheduled-tasks/framework/web"
	"github.com/referralhub/casemgmt/scheduled-tasks/logger"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/activity"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/config"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/dal"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/domain"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/fetch"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/normalize"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/remote"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/schema"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/service"
	"github.com/referralhub/casemgmt/scheduled-tasks/secretmanager"
)

//go:generate mockery --name MembersSyncService --output ./mocks
type MembersSyncService interface {
	Sync(ctx context.Context, requested domain.Mode) (*service.SyncResult, error)
	Status(ctx context.Context) (*domain.SyncState, error)
	FindAssigned(ctx context.Context, staff string) ([]*domain.CachedMember, error)
}

type syncRequest struct {
	Mode string `form:"mode" json:"mode" binding:"omitempty,oneof=incremental full"`
}

// syncFailure carries the counts a failed run got to before it stopped.
type syncFailure struct {
	Success          bool        `json:"success"`
	Mode             domain.Mode `json:"mode"`
	Error            string      `json:"error"`
	Fetched          int         `json:"fetched"`
	Upserted         int         `json:"upserted"`
	SkippedMissingID int         `json:"skippedMissingId"`
}

type Members struct {
	loggerProvider logger.Provider
	build          func(ctx context.Context) (MembersSyncService, error)

	mu      sync.Mutex
	service MembersSyncService
}

// NewMembers handler. The sync service is built on first use, so a missing
// remote credential does not keep the rest of the api from serving.
func NewMembers(log logger.Provider, conn *connection.Connection, metrics *service.Metrics) *Members {
	return &Members{
		loggerProvider: log,
		build: func(ctx context.Context) (MembersSyncService, error) {
			return newMembersSync(ctx, log, conn, metrics)
		},
	}
}

func newMembersSync(ctx context.Context, log logger.Provider, conn *connection.Connection, metrics *service.Metrics) (*service.Coordinator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	creds, err := config.LoadCredentials(ctx, nil)
	if err != nil {
		return nil, err
	}

	client := remote.NewClient(creds, cfg)

	var notifier activity.Notifier
	if cfg.NotificationTopic != "" {
		notifier = activity.NewPubsubNotifier(conn.Pubsub, cfg.NotificationTopic)
	}

	return service.NewCoordinator(log, cfg, service.Deps{
		Tokens:     remote.NewTokenProvider(client, creds),
		Resolver:   schema.NewResolver(log, client, dal.NewFieldSchemasFirestoreWithClient(conn.Firestore), cfg),
		Fetcher:    fetch.NewFetcher(log, client, cfg),
		Normalizer: normalize.NewNormalizer(cfg),
		Detector:   activity.NewDetector(),
		Emitter:    activity.NewEmitter(log, dal.NewActivityEventsFirestoreWithClient(conn.Firestore), notifier, cfg.EventChunkSize),
		States:     dal.NewSyncStatesFirestoreWithClient(conn.Firestore),
		Members:    dal.NewMembersCacheFirestoreWithClient(log, conn.Firestore),
		Metrics:    metrics,
	}), nil
}

func (h *Members) syncService(ctx context.Context) (MembersSyncService, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.service != nil {
		return h.service, nil
	}

	s, err := h.build(ctx)
	if err != nil {
		return nil, err
	}

	h.service = s

	return s, nil
}

// reset drops the built service after the remote rejected our credentials, so
// the next run reads the secret again.
func (h *Members) reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	secretmanager.Forget(secretmanager.SecretMembersRemoteAPI)

	if h.build != nil {
		h.service = nil
	}
}

// Sync runs a members cache synchronization
func (h *Members) Sync(ctx *gin.Context) error {
	var req syncRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	mode, err := domain.ParseMode(req.Mode)
	if err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	s, err := h.syncService(ctx)
	if err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	res, err := s.Sync(ctx, mode)
	if err != nil {
		var authErr *domain.AuthError
		if errors.As(err, &authErr) {
			h.loggerProvider(ctx).Warningf("members remote rejected the credentials, reloading them on the next run")
			h.reset()
		}

		failure := syncFailure{Mode: mode, Error: err.Error()}
		if res != nil {
			failure.Mode = res.Mode
			failure.Fetched = res.Fetched
			failure.Upserted = res.Upserted
			failure.SkippedMissingID = res.SkippedMissingID
		}

		return web.Respond(ctx, failure, http.StatusInternalServerError)
	}

	return web.Respond(ctx, res, http.StatusOK)
}

func (h *Members) SyncStatus(ctx *gin.Context) error {
	s, err := h.syncService(ctx)
	if err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	state, err := s.Status(ctx)
	if err != nil {
		if errors.Is(err, service.ErrNoSyncState) {
			return web.NewRequestError(err, http.StatusNotFound)
		}

		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, state, http.StatusOK)
}

// Assigned lists the cached members assigned to the staff in the query
func (h *Members) Assigned(ctx *gin.Context) error {
	s, err := h.syncService(ctx)
	if err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	members, err := s.FindAssigned(ctx, ctx.Query("staff"))
	if err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, members, http.StatusOK)
}
