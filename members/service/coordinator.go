package service

import (
	"context"
	"errors"
	"time"

	"github.com/referralhub/casemgmt/scheduled-tasks/logger"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/config"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/dal"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/domain"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/fetch"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/normalize"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/schema"
)

const (
	serviceLabel = "members-sync"

	defaultAssignedLimit = 200
)

var ErrNoSyncState = errors.New("members have not been synced yet")

//go:generate mockery --name TokenSource --output ./mocks
type TokenSource interface {
	GetAccessToken(ctx context.Context) (string, error)
}

//go:generate mockery --name FieldResolver --output ./mocks
type FieldResolver interface {
	ResolveFields(ctx context.Context, token string, desired []string) *schema.Resolution
}

//go:generate mockery --name PageFetcher --output ./mocks
type PageFetcher interface {
	FetchPages(ctx context.Context, token string, q fetch.Query, onPage fetch.PageHandler) (*fetch.Result, error)
}

// SyncResult is what a caller of a sync run gets back.
type SyncResult struct {
	Success          bool        `json:"success"`
	Mode             domain.Mode `json:"mode"`
	Since            *time.Time  `json:"since"`
	LastSyncAt       *time.Time  `json:"lastSyncAt"`
	Fetched          int         `json:"fetched"`
	Upserted         int         `json:"upserted"`
	SkippedMissingID int         `json:"skippedMissingId"`

	Summary domain.RunSummary `json:"-"`
}

// Coordinator runs the members cache synchronization.
type Coordinator struct {
	loggerProvider logger.Provider
	tokens         TokenSource
	resolver       FieldResolver
	fetcher        PageFetcher
	upserter       *Upserter
	detector       ChangeDetector
	emitter        EventEmitter
	states         dal.SyncStates
	members        dal.MembersCache
	desired        []string
	metrics        *Metrics
	now            func() time.Time
}

// Deps are the collaborators of a Coordinator.
type Deps struct {
	Tokens     TokenSource
	Resolver   FieldResolver
	Fetcher    PageFetcher
	Normalizer RecordNormalizer
	Detector   ChangeDetector
	Emitter    EventEmitter
	States     dal.SyncStates
	Members    dal.MembersCache
	Metrics    *Metrics
}

func NewCoordinator(log logger.Provider, cfg *config.Config, deps Deps) *Coordinator {
	return &Coordinator{
		loggerProvider: log,
		tokens:         deps.Tokens,
		resolver:       deps.Resolver,
		fetcher:        deps.Fetcher,
		upserter:       NewUpserter(log, deps.Normalizer, deps.Members, deps.Detector, deps.Emitter, cfg.UpsertChunkSize),
		detector:       deps.Detector,
		emitter:        deps.Emitter,
		states:         deps.States,
		members:        deps.Members,
		desired:        cfg.DesiredFields,
		metrics:        deps.Metrics,
		now:            time.Now,
	}
}

// Sync runs one synchronization. requested is the caller's mode; the effective
// mode may be full regardless. On failure the persisted state is left as it was
// and the returned result carries the partial counts.
func (c *Coordinator) Sync(ctx context.Context, requested domain.Mode) (*SyncResult, error) {
	l := c.loggerProvider(ctx)
	l.SetLabels(map[string]string{
		"service": serviceLabel,
		"flow":    "sync",
	})

	runStart := c.now().UTC()
	machine := newRunMachine(l)
	res := &SyncResult{Mode: requested}

	fail := func(err error) (*SyncResult, error) {
		if fireErr := machine.Fire(triggerFail); fireErr != nil {
			l.Warningf("members sync state machine: %s", fireErr)
		}

		res.Summary.DurationMs = time.Since(runStart).Milliseconds()
		c.metrics.observe(res.Mode, res.Summary, err, time.Since(runStart))
		l.Errorf("members sync failed in %s mode: %s", res.Mode, err)

		return res, err
	}

	if err := machine.Fire(triggerResolve); err != nil {
		return res, err
	}

	prev, err := c.states.Get(ctx)
	if err != nil {
		return fail(err)
	}

	token, err := c.tokens.GetAccessToken(ctx)
	if err != nil {
		return fail(err)
	}

	resolution := c.resolver.ResolveFields(ctx, token, c.desired)
	if resolution.Err != nil {
		l.Warningf("members sync continues with %s fields: %s", resolution.Source, resolution.Err)
	}

	signature := resolution.Signature()
	mode, reason := SelectMode(prev, requested, signature)
	res.Mode = mode

	l.Infof("members sync requested %s, running %s (%s)", requested, mode, reason)

	var previousWatermark time.Time
	if prev != nil {
		previousWatermark = prev.LastSyncAt
	}

	q := fetch.Query{Select: resolution.Fields}

	if mode == domain.ModeIncremental && !previousWatermark.IsZero() && resolution.WatermarkField != "" {
		since := previousWatermark
		q.Since = &since
		q.WatermarkField = resolution.WatermarkField
		res.Since = &since
	}

	watermark := NewWatermark(previousWatermark)
	opts := UpsertOptions{
		Mode:      mode,
		Diff:      detectsChanges(mode, prev),
		Watermark: watermark,
	}

	if err := machine.Fire(triggerFetch); err != nil {
		return fail(err)
	}

	fetched, err := c.fetcher.FetchPages(ctx, token, q, func(ctx context.Context, page int, records []domain.RemoteMemberRecord) error {
		if err := machine.Fire(triggerUpsert); err != nil {
			return err
		}

		batch, err := c.upserter.UpsertBatch(ctx, records, opts)
		if batch != nil {
			res.Upserted += batch.Written
			res.SkippedMissingID += batch.Skipped
			res.Summary.Events += batch.Events
		}

		if err != nil {
			var pErr *domain.PersistenceError
			if errors.As(err, &pErr) {
				pErr.Committed = res.Upserted
			}

			return err
		}

		return machine.Fire(triggerPageDone)
	})
	if fetched != nil {
		res.Fetched = fetched.Fetched
		res.Summary.Pages = fetched.Pages
		res.Summary.Truncated = fetched.Truncated
		res.Summary.Degradation = fetched.Degradation
	}

	res.Summary.Fetched = res.Fetched
	res.Summary.Upserted = res.Upserted
	res.Summary.SkippedMissingID = res.SkippedMissingID

	if err != nil {
		return fail(err)
	}

	if err := machine.Fire(triggerPersist); err != nil {
		return fail(err)
	}

	// pages carry no order, so records past the page cap may be older than the
	// highest time seen; a truncated run keeps the watermark it started from
	lastSyncAt := watermark.Value(runStart)
	if res.Summary.Truncated {
		lastSyncAt = previousWatermark.UTC()
	}

	res.Summary.DurationMs = time.Since(runStart).Milliseconds()

	if err := c.states.Save(ctx, &domain.SyncState{
		LastSyncAt:          lastSyncAt,
		LastRunAt:           runStart,
		LastMode:            mode,
		LastSelectSignature: signature,
		LastRunSummary:      res.Summary,
	}); err != nil {
		return fail(&domain.PersistenceError{Committed: res.Upserted, Err: err})
	}

	if mode == domain.ModeFull {
		written, err := c.emitter.Emit(ctx, []*domain.ActivityEvent{c.detector.SummaryEvent(mode, res.Summary)})
		if err != nil {
			l.Errorf("members sync summary activity: %s", err)
		}

		res.Summary.Events += written
	}

	if err := machine.Fire(triggerFinish); err != nil {
		l.Warningf("members sync state machine: %s", err)
	}

	res.Success = true
	res.LastSyncAt = &lastSyncAt

	if res.Summary.Truncated {
		l.Warningf("members sync stopped at the page cap, the watermark stays at %s", lastSyncAt)
	}

	c.metrics.observe(mode, res.Summary, nil, time.Since(runStart))
	c.metrics.setWatermark(lastSyncAt)

	l.Infof("members sync %s done: %d fetched, %d upserted, %d skipped, %d events, watermark %s",
		mode, res.Fetched, res.Upserted, res.SkippedMissingID, res.Summary.Events, lastSyncAt)

	return res, nil
}

// Status returns the persisted state of the last successful run.
func (c *Coordinator) Status(ctx context.Context) (*domain.SyncState, error) {
	state, err := c.states.Get(ctx)
	if err != nil {
		return nil, err
	}

	if state == nil {
		return nil, ErrNoSyncState
	}

	return state, nil
}

// FindAssigned looks up cached members assigned to staff. The first query token
// narrows the lookup on the search keys; the others are matched in memory.
func (c *Coordinator) FindAssigned(ctx context.Context, staff string) ([]*domain.CachedMember, error) {
	tokens := normalize.Tokens(staff)
	if len(tokens) == 0 {
		return []*domain.CachedMember{}, nil
	}

	candidates, err := c.members.FindByStaffToken(ctx, tokens[0], defaultAssignedLimit)
	if err != nil {
		return nil, err
	}

	res := make([]*domain.CachedMember, 0, len(candidates))

	for _, m := range candidates {
		if containsAll(m.SearchKeys, tokens[1:]) {
			res = append(res, m)
		}
	}

	return res, nil
}

func containsAll(keys, tokens []string) bool {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}

	for _, t := range tokens {
		if _, ok := set[t]; !ok {
			return false
		}
	}

	return true
}
