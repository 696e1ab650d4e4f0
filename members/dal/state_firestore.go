package dal

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/referralhub/casemgmt/scheduled-tasks/framework/connection"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/domain"
)

const (
	syncStateDoc          = "integrations/membersSync"
	fieldSchemaCollection = "integrations/membersSync/fieldSchemas"
)

// SyncStatesFirestore keeps the singleton sync state document.
type SyncStatesFirestore struct {
	firestoreClientFn connection.FirestoreFromContextFun
}

func NewSyncStatesFirestoreWithClient(fun connection.FirestoreFromContextFun) *SyncStatesFirestore {
	return &SyncStatesFirestore{firestoreClientFn: fun}
}

func (d *SyncStatesFirestore) Get(ctx context.Context) (*domain.SyncState, error) {
	doc, err := d.firestoreClientFn(ctx).Doc(syncStateDoc).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}

		return nil, err
	}

	var s domain.SyncState
	if err := doc.DataTo(&s); err != nil {
		return nil, err
	}

	return &s, nil
}

// Save writes every state attribute in one merge, leaving unrelated fields of the document alone.
// The stored lastSyncAt never moves back, so a slower overlapping run keeps the newer watermark.
func (d *SyncStatesFirestore) Save(ctx context.Context, state *domain.SyncState) error {
	fs := d.firestoreClientFn(ctx)
	ref := fs.Doc(syncStateDoc)

	return fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		lastSyncAt := state.LastSyncAt

		doc, err := tx.Get(ref)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

		if err == nil {
			var stored domain.SyncState
			if err := doc.DataTo(&stored); err != nil {
				return err
			}

			lastSyncAt = laterWatermark(stored.LastSyncAt, lastSyncAt)
		}

		return tx.Set(ref, map[string]interface{}{
			"lastSyncAt":          lastSyncAt,
			"lastRunAt":           state.LastRunAt,
			"lastMode":            state.LastMode,
			"lastSelectSignature": state.LastSelectSignature,
			"lastRunSummary":      state.LastRunSummary,
		}, firestore.MergeAll)
	})
}

func laterWatermark(stored, next time.Time) time.Time {
	if stored.After(next) {
		return stored
	}

	return next
}

// FieldSchemasFirestore caches remote column lists, one document per table.
type FieldSchemasFirestore struct {
	firestoreClientFn connection.FirestoreFromContextFun
}

func NewFieldSchemasFirestoreWithClient(fun connection.FirestoreFromContextFun) *FieldSchemasFirestore {
	return &FieldSchemasFirestore{firestoreClientFn: fun}
}

func (d *FieldSchemasFirestore) Get(ctx context.Context, table string) (*domain.FieldSchemaCache, error) {
	doc, err := d.firestoreClientFn(ctx).Collection(fieldSchemaCollection).Doc(table).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}

		return nil, err
	}

	var s domain.FieldSchemaCache
	if err := doc.DataTo(&s); err != nil {
		return nil, err
	}

	s.Table = table

	return &s, nil
}

func (d *FieldSchemasFirestore) Save(ctx context.Context, schema *domain.FieldSchemaCache) error {
	_, err := d.firestoreClientFn(ctx).Collection(fieldSchemaCollection).Doc(schema.Table).Set(ctx, schema)
	return err
}
