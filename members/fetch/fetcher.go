package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/referralhub/casemgmt/scheduled-tasks/logger"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/config"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/domain"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/normalize"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/remote"
)

//go:generate mockery --name RecordsClient --output ./mocks
type RecordsClient interface {
	GetRecordsPage(ctx context.Context, token, table string, req remote.PageRequest) ([]domain.RemoteMemberRecord, error)
}

// PageHandler receives every fetched page in order. An error stops the fetch.
type PageHandler func(ctx context.Context, page int, records []domain.RemoteMemberRecord) error

// Query selects the records of one run. A nil Since or an empty WatermarkField fetches everything.
type Query struct {
	Since          *time.Time
	WatermarkField string
	Select         []string
}

func (q Query) where() string {
	if q.Since == nil || q.WatermarkField == "" {
		return ""
	}

	return fmt.Sprintf("%s > '%s'", q.WatermarkField, normalize.FormatWatermark(*q.Since))
}

type Result struct {
	Fetched     int
	Pages       int
	Truncated   bool
	Degradation domain.Degradation
}

type Fetcher struct {
	loggerProvider logger.Provider
	client         RecordsClient
	table          string
	pageSize       int
	maxPages       int
}

func NewFetcher(log logger.Provider, client RecordsClient, cfg *config.Config) *Fetcher {
	return &Fetcher{
		loggerProvider: log,
		client:         client,
		table:          cfg.Table,
		pageSize:       cfg.PageSize,
		maxPages:       cfg.MaxPages,
	}
}

type ladder struct {
	where string
	sel   []string
	level domain.Degradation
}

func (l *ladder) request(page, size int) remote.PageRequest {
	req := remote.PageRequest{PageSize: size, PageNumber: page}

	if l.level != domain.DegradationNoFilter {
		req.Where = l.where
	}

	if l.level == domain.DegradationNone {
		req.Select = l.sel
	}

	return req
}

// degrade moves one step down the ladder, skipping steps that would send the same request.
// It reports false when nothing is left to drop.
func (l *ladder) degrade() bool {
	if l.level == domain.DegradationNone && len(l.sel) > 0 {
		l.level = domain.DegradationNoSelect
		return true
	}

	if l.level != domain.DegradationNoFilter && l.where != "" {
		l.level = domain.DegradationNoFilter
		return true
	}

	return false
}

// FetchPages pages through the records matching q. When the remote rejects the
// query's columns the select list is dropped, then the filter, and the lower
// precision is kept for the rest of the run. Dropping the filter restarts
// from the first page since the page offsets no longer line up, and the
// counts start over with it.
func (f *Fetcher) FetchPages(ctx context.Context, token string, q Query, onPage PageHandler) (*Result, error) {
	l := f.loggerProvider(ctx)

	res := &Result{Degradation: domain.DegradationNone}
	steps := &ladder{where: q.where(), sel: q.Select, level: domain.DegradationNone}

	for page := 1; page <= f.maxPages; page++ {
		records, err := f.client.GetRecordsPage(ctx, token, f.table, steps.request(page, f.pageSize))
		if err != nil {
			wasFiltered := steps.level != domain.DegradationNoFilter && steps.where != ""

			if remote.SchemaRejected(err) && steps.degrade() {
				l.Warningf("remote rejected page %d query, degrading to %s: %s", page, steps.level, err)

				res.Degradation = steps.level

				if wasFiltered && steps.level == domain.DegradationNoFilter {
					page = 0
					res.Pages, res.Fetched = 0, 0
				} else {
					page--
				}

				continue
			}

			return res, &domain.RemoteFetchError{Page: page, Err: err}
		}

		res.Pages++
		res.Fetched += len(records)

		if err := onPage(ctx, page, records); err != nil {
			return res, err
		}

		if len(records) < f.pageSize {
			return res, nil
		}

		if page == f.maxPages {
			res.Truncated = true

			l.Warningf("stopped at the cap of %d pages, %d records fetched", f.maxPages, res.Fetched)
		}
	}

	return res, nil
}

// FetchRecords collects every page of q.
func (f *Fetcher) FetchRecords(ctx context.Context, token string, q Query) ([]domain.RemoteMemberRecord, *Result, error) {
	var all []domain.RemoteMemberRecord

	res, err := f.FetchPages(ctx, token, q, func(_ context.Context, _ int, records []domain.RemoteMemberRecord) error {
		all = append(all, records...)
		return nil
	})
	if err != nil {
		return nil, res, err
	}

	return all, res, nil
}
