package domain

import "time"

// RemoteMemberRecord is a raw row from the remote members table keyed by column name.
type RemoteMemberRecord map[string]interface{}

// CachedMember is the canonical cached member document, keyed by ClientKey.
type CachedMember struct {
	ClientKey           string    `firestore:"clientKey" json:"clientKey"`
	FirstName           string    `firestore:"firstName" json:"firstName"`
	LastName            string    `firestore:"lastName" json:"lastName"`
	MemberID            string    `firestore:"memberId" json:"memberId"`
	Status              string    `firestore:"status" json:"status"`
	AuthorizationStatus string    `firestore:"authorizationStatus" json:"authorizationStatus"`
	Pathway             string    `firestore:"pathway" json:"pathway"`
	HoldForReview       string    `firestore:"holdForReview" json:"holdForReview"`
	AssignedStaff       string    `firestore:"assignedStaff" json:"assignedStaff"`
	AssignedStaffID     string    `firestore:"assignedStaffId" json:"assignedStaffId"`
	SecondaryStaff      string    `firestore:"secondaryStaff" json:"secondaryStaff"`
	FacilityName        string    `firestore:"facilityName" json:"facilityName"`
	County              string    `firestore:"county" json:"county"`
	City                string    `firestore:"city" json:"city"`
	ReferralDate        string    `firestore:"referralDate" json:"referralDate"`
	AuthorizationStart  string    `firestore:"authorizationStartDate" json:"authorizationStartDate"`
	AuthorizationEnd    string    `firestore:"authorizationEndDate" json:"authorizationEndDate"`
	RemoteModifiedAt    string    `firestore:"remoteModifiedAt" json:"remoteModifiedAt"`
	CachedAt            time.Time `firestore:"cachedAt" json:"cachedAt"`
	SearchKeys          []string  `firestore:"searchKeys" json:"searchKeys"`

	// present holds the keys the remote record actually carried; only those are merged.
	present map[string]struct{}
}

// NewCachedMember returns an empty document for clientKey.
func NewCachedMember(clientKey string) *CachedMember {
	return &CachedMember{
		ClientKey: clientKey,
		present:   make(map[string]struct{}),
	}
}

// Set assigns a flattened attribute by cached key and marks it as carried by the remote record.
func (m *CachedMember) Set(key, value string) bool {
	f, ok := fieldsByKey[key]
	if !ok {
		return false
	}

	*f.ref(m) = value

	if m.present == nil {
		m.present = make(map[string]struct{})
	}

	m.present[key] = struct{}{}

	return true
}

// Value returns the flattened attribute stored under key.
func (m *CachedMember) Value(key string) string {
	f, ok := fieldsByKey[key]
	if !ok {
		return ""
	}

	return *f.ref(m)
}

// Has reports whether the remote record carried key during this run.
func (m *CachedMember) Has(key string) bool {
	_, ok := m.present[key]
	return ok
}

// HasAny reports whether any of keys was carried by the remote record.
func (m *CachedMember) HasAny(keys ...string) bool {
	for _, k := range keys {
		if m.Has(k) {
			return true
		}
	}

	return false
}

// MergeData is the merge payload written for this member: the key, the write
// time and only those attributes the remote record carried, so a narrower
// projection never blanks attributes cached by an earlier, wider run.
func (m *CachedMember) MergeData() map[string]interface{} {
	data := map[string]interface{}{
		KeyClientKey: m.ClientKey,
		KeyCachedAt:  m.CachedAt,
	}

	for _, f := range MemberFields {
		if m.Has(f.Key) {
			data[f.Key] = *f.ref(m)
		}
	}

	if m.HasAny(SearchKeySources...) {
		keys := m.SearchKeys
		if keys == nil {
			keys = []string{}
		}

		data[KeySearchKeys] = keys
	}

	return data
}
