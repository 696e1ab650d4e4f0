package schema

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/referralhub/casemgmt/scheduled-tasks/logger"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/config"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/dal"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/domain"
)

// UnfilteredSignature is the signature of a run that selects every column.
const UnfilteredSignature = "*"

// introspection endpoints, tried in order
var variants = []string{"", "fields", "columns"}

type Source string

const (
	SourceCache      Source = "cache"
	SourceRemote     Source = "remote"
	SourceStaleCache Source = "stale-cache"
	SourceNone       Source = "none"
)

//go:generate mockery --name ColumnsClient --output ./mocks
type ColumnsClient interface {
	ListColumns(ctx context.Context, token, table, variant string) ([]string, error)
}

// Resolution is the projection a sync run uses.
type Resolution struct {
	// Fields is the select list, nil when the run is unfiltered.
	Fields []string
	// WatermarkField is the modification timestamp column, empty when the run can not filter by it.
	WatermarkField string
	Source         Source
	// Err is set when resolution had to fall back; it is never fatal.
	Err *domain.SchemaResolutionError
}

func (r *Resolution) Unfiltered() bool {
	return len(r.Fields) == 0
}

func (r *Resolution) Signature() string {
	return Signature(r.Fields)
}

type Resolver struct {
	loggerProvider logger.Provider
	client         ColumnsClient
	schemas        dal.FieldSchemas
	table          string
	critical       []string
	watermarks     []string
	now            func() time.Time
}

func NewResolver(log logger.Provider, client ColumnsClient, schemas dal.FieldSchemas, cfg *config.Config) *Resolver {
	return &Resolver{
		loggerProvider: log,
		client:         client,
		schemas:        schemas,
		table:          cfg.Table,
		critical:       cfg.CriticalFields,
		watermarks:     cfg.WatermarkFields,
		now:            time.Now,
	}
}

// ResolveFields narrows desired to the columns the remote table actually has.
func (r *Resolver) ResolveFields(ctx context.Context, token string, desired []string) *Resolution {
	l := r.loggerProvider(ctx)

	cached, err := r.schemas.Get(ctx, r.table)
	if err != nil {
		l.Warningf("reading cached schema of %s: %s", r.table, err)

		cached = nil
	}

	var cachedFields []string
	if cached != nil {
		cachedFields = cached.Fields
	}

	if len(cachedFields) > 0 && !r.IsStale(cachedFields) {
		return r.resolution(desired, cachedFields, SourceCache, nil)
	}

	available, err := r.discover(ctx, token)
	if err == nil {
		if saveErr := r.schemas.Save(ctx, &domain.FieldSchemaCache{
			Table:     r.table,
			Fields:    available,
			UpdatedAt: r.now().UTC(),
		}); saveErr != nil {
			l.Warningf("caching schema of %s: %s", r.table, saveErr)
		}

		return r.resolution(desired, available, SourceRemote, nil)
	}

	resErr := &domain.SchemaResolutionError{Table: r.table, Err: err}

	if len(cachedFields) > 0 {
		return r.resolution(desired, cachedFields, SourceStaleCache, resErr)
	}

	return &Resolution{Source: SourceNone, Err: resErr}
}

// IsStale reports whether a cached column list lacks one of the critical fields.
func (r *Resolver) IsStale(fields []string) bool {
	for _, c := range r.critical {
		if find(fields, c) == "" {
			return true
		}
	}

	return false
}

func (r *Resolver) discover(ctx context.Context, token string) ([]string, error) {
	var result error

	for _, v := range variants {
		columns, err := r.client.ListColumns(ctx, token, r.table, v)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}

		if len(columns) == 0 {
			result = multierror.Append(result, errors.New("empty column list"))
			continue
		}

		return columns, nil
	}

	return nil, result
}

func (r *Resolver) resolution(desired, available []string, source Source, err *domain.SchemaResolutionError) *Resolution {
	res := &Resolution{Source: source, Err: err}

	for _, w := range r.watermarks {
		if col := find(available, w); col != "" {
			res.WatermarkField = col
			break
		}
	}

	seen := make(map[string]struct{})

	for _, d := range desired {
		col := find(available, d)
		if col == "" {
			continue
		}

		if _, ok := seen[strings.ToLower(col)]; ok {
			continue
		}

		seen[strings.ToLower(col)] = struct{}{}
		res.Fields = append(res.Fields, col)
	}

	if len(res.Fields) > 0 && res.WatermarkField != "" {
		if _, ok := seen[strings.ToLower(res.WatermarkField)]; !ok {
			res.Fields = append(res.Fields, res.WatermarkField)
		}
	}

	return res
}

// find returns the spelling of name used by columns, or "" when absent.
func find(columns []string, name string) string {
	for _, c := range columns {
		if strings.EqualFold(c, name) {
			return c
		}
	}

	return ""
}

// Signature is a stable digest of a field list, independent of order and case.
func Signature(fields []string) string {
	if len(fields) == 0 {
		return UnfilteredSignature
	}

	sorted := make([]string, len(fields))
	for i, f := range fields {
		sorted[i] = strings.ToLower(f)
	}

	sort.Strings(sorted)

	sum := sha256.Sum256([]byte(strings.Join(sorted, ",")))

	return hex.EncodeToString(sum[:])
}
