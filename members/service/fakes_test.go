package service

import (
	"context"
	"sync"
	"time"

	"github.com/referralhub/casemgmt/scheduled-tasks/members/domain"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/fetch"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/normalize"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/schema"
)

// memoryCache merges documents the way the Firestore cache does.
type memoryCache struct {
	mu      sync.Mutex
	docs    map[string]*domain.CachedMember
	commits []int
	failOn  int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{docs: make(map[string]*domain.CachedMember)}
}

func (c *memoryCache) GetMany(_ context.Context, keys []string) (map[string]*domain.CachedMember, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := make(map[string]*domain.CachedMember)

	for _, k := range keys {
		if d, ok := c.docs[k]; ok {
			cp := *d
			res[k] = &cp
		}
	}

	return res, nil
}

func (c *memoryCache) CommitBatch(_ context.Context, members []*domain.CachedMember) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failOn > 0 && len(c.commits)+1 == c.failOn {
		return errCommit
	}

	c.commits = append(c.commits, len(members))

	for _, m := range members {
		stored, ok := c.docs[m.ClientKey]
		if !ok {
			stored = &domain.CachedMember{ClientKey: m.ClientKey}
			c.docs[m.ClientKey] = stored
		}

		for _, f := range domain.MemberFields {
			if m.Has(f.Key) {
				stored.Set(f.Key, m.Value(f.Key))
			}
		}

		stored.CachedAt = m.CachedAt

		if m.HasAny(domain.SearchKeySources...) {
			stored.SearchKeys = m.SearchKeys
		}
	}

	return nil
}

func (c *memoryCache) FindByStaffToken(_ context.Context, token string, limit int) ([]*domain.CachedMember, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var res []*domain.CachedMember

	for _, d := range c.docs {
		for _, k := range d.SearchKeys {
			if k == token {
				res = append(res, d)
				break
			}
		}
	}

	return res, nil
}

type memoryEvents struct {
	mu     sync.Mutex
	events []*domain.ActivityEvent
}

func (e *memoryEvents) CommitBatch(_ context.Context, events []*domain.ActivityEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.events = append(e.events, events...)

	return nil
}

func (e *memoryEvents) ofType(t domain.EventType) []*domain.ActivityEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	var res []*domain.ActivityEvent

	for _, ev := range e.events {
		if ev.Type == t {
			res = append(res, ev)
		}
	}

	return res
}

func (e *memoryEvents) memberEvents() []*domain.ActivityEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	var res []*domain.ActivityEvent

	for _, ev := range e.events {
		if ev.Type != domain.EventSyncSummary {
			res = append(res, ev)
		}
	}

	return res
}

type memoryStates struct {
	state *domain.SyncState
	saves int
}

func (s *memoryStates) Get(context.Context) (*domain.SyncState, error) {
	if s.state == nil {
		return nil, nil
	}

	cp := *s.state

	return &cp, nil
}

func (s *memoryStates) Save(_ context.Context, state *domain.SyncState) error {
	cp := *state
	s.state = &cp
	s.saves++

	return nil
}

// memoryRemote serves records page by page, honoring the watermark filter.
// A non zero maxPages caps the pages served like the real fetcher.
type memoryRemote struct {
	records  []domain.RemoteMemberRecord
	pageSize int
	maxPages int
	queries  []fetch.Query
}

func (r *memoryRemote) FetchPages(ctx context.Context, _ string, q fetch.Query, onPage fetch.PageHandler) (*fetch.Result, error) {
	r.queries = append(r.queries, q)

	var matching []domain.RemoteMemberRecord

	for _, rec := range r.records {
		if q.Since != nil && q.WatermarkField != "" {
			v, _ := normalize.Lookup(rec, q.WatermarkField)

			t, ok := normalize.ParseTimestamp(normalize.Stringify(v))
			if !ok || !t.After(q.Since.Truncate(time.Second)) {
				continue
			}
		}

		matching = append(matching, rec)
	}

	res := &fetch.Result{Degradation: domain.DegradationNone}

	for page := 1; ; page++ {
		start := (page - 1) * r.pageSize
		if start > len(matching) {
			break
		}

		end := start + r.pageSize
		if end > len(matching) {
			end = len(matching)
		}

		chunk := matching[start:end]
		res.Pages++
		res.Fetched += len(chunk)

		if err := onPage(ctx, page, chunk); err != nil {
			return res, err
		}

		if len(chunk) < r.pageSize {
			break
		}

		if page == r.maxPages {
			res.Truncated = true
			break
		}
	}

	return res, nil
}

// staticResolver always resolves to the same projection.
type staticResolver struct {
	resolution *schema.Resolution
}

func (r *staticResolver) ResolveFields(context.Context, string, []string) *schema.Resolution {
	res := *r.resolution
	return &res
}
