package dal

import (
	"context"

	"github.com/referralhub/casemgmt/scheduled-tasks/framework/connection"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/domain"
)

const activityCollection = "memberActivity"

// ActivityEventsFirestore appends activity events; documents are keyed by event id.
type ActivityEventsFirestore struct {
	firestoreClientFn connection.FirestoreFromContextFun
}

func NewActivityEventsFirestoreWithClient(fun connection.FirestoreFromContextFun) *ActivityEventsFirestore {
	return &ActivityEventsFirestore{firestoreClientFn: fun}
}

func (d *ActivityEventsFirestore) CommitBatch(ctx context.Context, events []*domain.ActivityEvent) error {
	fs := d.firestoreClientFn(ctx)
	col := fs.Collection(activityCollection)
	writes := make([]batchWrite, 0, len(events))

	for _, e := range events {
		writes = append(writes, batchWrite{ref: col.Doc(e.ID), data: e})
	}

	return commitAtomic(ctx, fs, writes)
}
