package service

import (
	"context"

	"github.com/referralhub/casemgmt/scheduled-tasks/logger"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/dal"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/domain"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/normalize"
)

//go:generate mockery --name EventEmitter --output ./mocks
type EventEmitter interface {
	Emit(ctx context.Context, events []*domain.ActivityEvent) (int, error)
}

// ChangeDetector builds the primary activity event of a changed member.
type ChangeDetector interface {
	Diff(mode domain.Mode, prev, next *domain.CachedMember) *domain.ActivityEvent
	SummaryEvent(mode domain.Mode, summary domain.RunSummary) *domain.ActivityEvent
}

type RecordNormalizer interface {
	Normalize(raw domain.RemoteMemberRecord) (string, *domain.CachedMember)
}

// UpsertOptions carry the run context into a batch.
type UpsertOptions struct {
	Mode domain.Mode
	// Diff enables change detection against the cached documents.
	Diff      bool
	Watermark *Watermark
}

type BatchResult struct {
	Written int
	Skipped int
	Events  int
	Commits int
}

// Upserter writes normalized members into the cache in atomic chunks.
type Upserter struct {
	loggerProvider logger.Provider
	normalizer     RecordNormalizer
	members        dal.MembersCache
	detector       ChangeDetector
	emitter        EventEmitter
	chunkSize      int
}

func NewUpserter(
	log logger.Provider,
	normalizer RecordNormalizer,
	members dal.MembersCache,
	detector ChangeDetector,
	emitter EventEmitter,
	chunkSize int,
) *Upserter {
	return &Upserter{
		loggerProvider: log,
		normalizer:     normalizer,
		members:        members,
		detector:       detector,
		emitter:        emitter,
		chunkSize:      chunkSize,
	}
}

// UpsertBatch writes records chunk by chunk. Each chunk is one atomic commit; a
// failed commit stops the batch with a *domain.PersistenceError and leaves the
// earlier chunks in place. Event emission failures are only logged.
func (u *Upserter) UpsertBatch(ctx context.Context, records []domain.RemoteMemberRecord, opts UpsertOptions) (*BatchResult, error) {
	l := u.loggerProvider(ctx)
	res := &BatchResult{}

	for start := 0; start < len(records); start += u.chunkSize {
		end := start + u.chunkSize
		if end > len(records) {
			end = len(records)
		}

		members, skipped := u.normalizeChunk(records[start:end])
		res.Skipped += skipped

		if len(members) == 0 {
			continue
		}

		var previous map[string]*domain.CachedMember

		if opts.Diff {
			keys := make([]string, len(members))
			for i, m := range members {
				keys[i] = m.ClientKey
			}

			var err error

			previous, err = u.members.GetMany(ctx, keys)
			if err != nil {
				// without the previous versions this chunk is written but not diffed
				l.Warningf("reading cached members for diff: %s", err)

				previous = nil
			}
		}

		if err := u.members.CommitBatch(ctx, members); err != nil {
			return res, &domain.PersistenceError{Committed: res.Written, Err: err}
		}

		res.Commits++
		res.Written += len(members)

		for _, m := range members {
			if t, ok := normalize.ModifiedAt(m); ok && opts.Watermark != nil {
				opts.Watermark.Observe(t)
			}
		}

		if !opts.Diff || len(previous) == 0 {
			continue
		}

		var events []*domain.ActivityEvent

		for _, m := range members {
			if e := u.detector.Diff(opts.Mode, previous[m.ClientKey], m); e != nil {
				events = append(events, e)
			}
		}

		written, err := u.emitter.Emit(ctx, events)
		if err != nil {
			l.Errorf("members sync activity: %s", err)
		}

		res.Events += written
	}

	return res, nil
}

// normalizeChunk maps raw records onto members, keeping the last occurrence of a
// client key so one commit never writes the same document twice.
func (u *Upserter) normalizeChunk(records []domain.RemoteMemberRecord) ([]*domain.CachedMember, int) {
	var skipped int

	members := make([]*domain.CachedMember, 0, len(records))
	index := make(map[string]int, len(records))

	for _, raw := range records {
		key, m := u.normalizer.Normalize(raw)
		if key == "" {
			skipped++
			continue
		}

		if i, ok := index[key]; ok {
			members[i] = m
			continue
		}

		index[key] = len(members)
		members = append(members, m)
	}

	return members, skipped
}
