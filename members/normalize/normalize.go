package normalize

import (
	"time"

	"github.com/referralhub/casemgmt/scheduled-tasks/members/config"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/domain"
)

// Normalizer maps raw remote rows onto cached member documents.
type Normalizer struct {
	keyAliases      []string
	watermarkFields []string
	maxSearchKeys   int
	now             func() time.Time
}

func NewNormalizer(cfg *config.Config) *Normalizer {
	return &Normalizer{
		keyAliases:      cfg.KeyAliases,
		watermarkFields: cfg.WatermarkFields,
		maxSearchKeys:   cfg.MaxSearchKeys,
		now:             time.Now,
	}
}

// Normalize returns the client key and the cached document of raw. The key is
// empty when raw carries no usable primary key and the record must be skipped.
func (n *Normalizer) Normalize(raw domain.RemoteMemberRecord) (string, *domain.CachedMember) {
	idx := NewIndex(raw)

	v, ok := lookup(raw, idx, n.keyAliases...)
	if !ok {
		return "", nil
	}

	clientKey := Stringify(v)
	if clientKey == "" {
		return "", nil
	}

	m := domain.NewCachedMember(clientKey)
	m.CachedAt = n.now().UTC()

	for _, f := range domain.MemberFields {
		columns := []string{f.Column}
		if f.Key == domain.KeyRemoteModifiedAt {
			columns = n.watermarkFields
		}

		if v, ok := lookup(raw, idx, columns...); ok {
			m.Set(f.Key, Stringify(v))
		}
	}

	if m.HasAny(domain.SearchKeySources...) {
		values := make([]string, 0, len(domain.SearchKeySources))
		for _, k := range domain.SearchKeySources {
			values = append(values, m.Value(k))
		}

		m.SearchKeys = SearchKeys(n.maxSearchKeys, values...)
	}

	return clientKey, m
}

// ModifiedAt is the remote modification time of a normalized member, if it has a usable one.
func ModifiedAt(m *domain.CachedMember) (time.Time, bool) {
	return ParseTimestamp(m.RemoteModifiedAt)
}
