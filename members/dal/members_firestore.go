package dal

import (
	"context"
	"strings"

	"cloud.google.com/go/firestore"

	"github.com/referralhub/casemgmt/scheduled-tasks/common"
	"github.com/referralhub/casemgmt/scheduled-tasks/framework/connection"
	"github.com/referralhub/casemgmt/scheduled-tasks/logger"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/domain"
)

const membersCacheCollection = "membersCache"

// MembersCacheFirestore is the members cache stored on Firestore, one document per client key.
type MembersCacheFirestore struct {
	firestoreClientFn connection.FirestoreFromContextFun
	l                 logger.Provider
}

func NewMembersCacheFirestoreWithClient(log logger.Provider, fun connection.FirestoreFromContextFun) *MembersCacheFirestore {
	return &MembersCacheFirestore{
		firestoreClientFn: fun,
		l:                 log,
	}
}

// docID maps a client key onto a valid document id.
func docID(clientKey string) string {
	return strings.ReplaceAll(clientKey, "/", "_")
}

func (d *MembersCacheFirestore) collection(ctx context.Context) *firestore.CollectionRef {
	return d.firestoreClientFn(ctx).Collection(membersCacheCollection)
}

func (d *MembersCacheFirestore) GetMany(ctx context.Context, keys []string) (map[string]*domain.CachedMember, error) {
	res := make(map[string]*domain.CachedMember, len(keys))
	if len(keys) == 0 {
		return res, nil
	}

	col := d.collection(ctx)
	refs := make([]*firestore.DocumentRef, 0, len(keys))

	for _, k := range keys {
		refs = append(refs, col.Doc(docID(k)))
	}

	docs, err := d.firestoreClientFn(ctx).GetAll(ctx, refs)
	if err != nil {
		return nil, err
	}

	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}

		var m domain.CachedMember
		if err := doc.DataTo(&m); err != nil {
			d.l(ctx).Warningf("unable to read cached member %s: %s", doc.Ref.ID, err)
			continue
		}

		if m.ClientKey == "" {
			m.ClientKey = doc.Ref.ID
		}

		res[m.ClientKey] = &m
	}

	return res, nil
}

func (d *MembersCacheFirestore) CommitBatch(ctx context.Context, members []*domain.CachedMember) error {
	col := d.collection(ctx)
	writes := make([]batchWrite, 0, len(members))

	for _, m := range members {
		writes = append(writes, batchWrite{
			ref:  col.Doc(docID(m.ClientKey)),
			data: m.MergeData(),
			opts: []firestore.SetOption{firestore.MergeAll},
		})
	}

	return commitAtomic(ctx, d.firestoreClientFn(ctx), writes)
}

func (d *MembersCacheFirestore) FindByStaffToken(ctx context.Context, token string, limit int) ([]*domain.CachedMember, error) {
	q := d.collection(ctx).Where(domain.KeySearchKeys, common.ArrayContains, token)
	if limit > 0 {
		q = q.Limit(limit)
	}

	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	members := make([]*domain.CachedMember, 0, len(docs))

	for _, doc := range docs {
		var m domain.CachedMember
		if err := doc.DataTo(&m); err != nil {
			d.l(ctx).Warningf("unable to read cached member %s: %s", doc.Ref.ID, err)
			continue
		}

		if m.ClientKey == "" {
			m.ClientKey = doc.Ref.ID
		}

		members = append(members, &m)
	}

	return members, nil
}
