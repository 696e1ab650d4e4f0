package dal

import (
	"context"

	"github.com/referralhub/casemgmt/scheduled-tasks/members/domain"
)

//go:generate mockery --name MembersCache --output ./mocks
type MembersCache interface {
	// GetMany returns the cached documents of keys that exist, keyed by client key.
	GetMany(ctx context.Context, keys []string) (map[string]*domain.CachedMember, error)
	// CommitBatch merges members in one atomic write.
	CommitBatch(ctx context.Context, members []*domain.CachedMember) error
	FindByStaffToken(ctx context.Context, token string, limit int) ([]*domain.CachedMember, error)
}

//go:generate mockery --name ActivityEvents --output ./mocks
type ActivityEvents interface {
	CommitBatch(ctx context.Context, events []*domain.ActivityEvent) error
}

//go:generate mockery --name SyncStates --output ./mocks
type SyncStates interface {
	// Get returns nil when no run has completed yet.
	Get(ctx context.Context) (*domain.SyncState, error)
	Save(ctx context.Context, state *domain.SyncState) error
}

//go:generate mockery --name FieldSchemas --output ./mocks
type FieldSchemas interface {
	// Get returns nil when table has no cached schema.
	Get(ctx context.Context, table string) (*domain.FieldSchemaCache, error)
	Save(ctx context.Context, schema *domain.FieldSchemaCache) error
}
