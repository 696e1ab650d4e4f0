package domain

// Remote column names of the members table. Casing and separators vary across
// the remote schema versions; lookups go through normalize.Lookup.
const (
	ColumnClientID            = "Client_ID"
	ColumnFirstName           = "Member_First_Name"
	ColumnLastName            = "Member_Last_Name"
	ColumnMemberID            = "Member_ID"
	ColumnStatus              = "Status"
	ColumnAuthorizationStatus = "Authorization_Status"
	ColumnPathway             = "Pathway"
	ColumnHoldForReview       = "Hold_For_Review"
	ColumnAssignedStaff       = "Assigned_Staff"
	ColumnAssignedStaffID     = "Assigned_Staff_ID"
	ColumnSecondaryStaff      = "Secondary_Staff"
	ColumnFacilityName        = "Facility_Name"
	ColumnCounty              = "Member_County"
	ColumnCity                = "Member_City"
	ColumnReferralDate        = "Referral_Date"
	ColumnAuthorizationStart  = "Authorization_Start_Date"
	ColumnAuthorizationEnd    = "Authorization_End_Date"
	ColumnDateModified        = "Date_Modified"
)

// Cached document keys.
const (
	KeyClientKey           = "clientKey"
	KeyFirstName           = "firstName"
	KeyLastName            = "lastName"
	KeyMemberID            = "memberId"
	KeyStatus              = "status"
	KeyAuthorizationStatus = "authorizationStatus"
	KeyPathway             = "pathway"
	KeyHoldForReview       = "holdForReview"
	KeyAssignedStaff       = "assignedStaff"
	KeyAssignedStaffID     = "assignedStaffId"
	KeySecondaryStaff      = "secondaryStaff"
	KeyFacilityName        = "facilityName"
	KeyCounty              = "county"
	KeyCity                = "city"
	KeyReferralDate        = "referralDate"
	KeyAuthorizationStart  = "authorizationStartDate"
	KeyAuthorizationEnd    = "authorizationEndDate"
	KeyRemoteModifiedAt    = "remoteModifiedAt"
	KeyCachedAt            = "cachedAt"
	KeySearchKeys          = "searchKeys"
)

// MemberField maps one remote column onto one string attribute of CachedMember.
type MemberField struct {
	Column string
	Key    string
	Label  string
	ref    func(m *CachedMember) *string
}

// MemberFields lists every flattened attribute the cache keeps, in document order.
var MemberFields = []MemberField{
	{ColumnFirstName, KeyFirstName, "First Name", func(m *CachedMember) *string { return &m.FirstName }},
	{ColumnLastName, KeyLastName, "Last Name", func(m *CachedMember) *string { return &m.LastName }},
	{ColumnMemberID, KeyMemberID, "Member ID", func(m *CachedMember) *string { return &m.MemberID }},
	{ColumnStatus, KeyStatus, "Status", func(m *CachedMember) *string { return &m.Status }},
	{ColumnAuthorizationStatus, KeyAuthorizationStatus, "Authorization Status", func(m *CachedMember) *string { return &m.AuthorizationStatus }},
	{ColumnPathway, KeyPathway, "Pathway", func(m *CachedMember) *string { return &m.Pathway }},
	{ColumnHoldForReview, KeyHoldForReview, "Hold For Review", func(m *CachedMember) *string { return &m.HoldForReview }},
	{ColumnAssignedStaff, KeyAssignedStaff, "Assigned Staff", func(m *CachedMember) *string { return &m.AssignedStaff }},
	{ColumnAssignedStaffID, KeyAssignedStaffID, "Assigned Staff ID", func(m *CachedMember) *string { return &m.AssignedStaffID }},
	{ColumnSecondaryStaff, KeySecondaryStaff, "Secondary Staff", func(m *CachedMember) *string { return &m.SecondaryStaff }},
	{ColumnFacilityName, KeyFacilityName, "Facility Name", func(m *CachedMember) *string { return &m.FacilityName }},
	{ColumnCounty, KeyCounty, "County", func(m *CachedMember) *string { return &m.County }},
	{ColumnCity, KeyCity, "City", func(m *CachedMember) *string { return &m.City }},
	{ColumnReferralDate, KeyReferralDate, "Referral Date", func(m *CachedMember) *string { return &m.ReferralDate }},
	{ColumnAuthorizationStart, KeyAuthorizationStart, "Authorization Start Date", func(m *CachedMember) *string { return &m.AuthorizationStart }},
	{ColumnAuthorizationEnd, KeyAuthorizationEnd, "Authorization End Date", func(m *CachedMember) *string { return &m.AuthorizationEnd }},
	{ColumnDateModified, KeyRemoteModifiedAt, "Last Modified", func(m *CachedMember) *string { return &m.RemoteModifiedAt }},
}

var fieldsByKey = func() map[string]MemberField {
	m := make(map[string]MemberField, len(MemberFields))
	for _, f := range MemberFields {
		m[f.Key] = f
	}

	return m
}()

// FieldByKey returns the field definition for a cached document key.
func FieldByKey(key string) (MemberField, bool) {
	f, ok := fieldsByKey[key]
	return f, ok
}

// DesiredColumns is the full remote projection the engine would like to select.
func DesiredColumns() []string {
	columns := make([]string, 0, len(MemberFields)+1)
	columns = append(columns, ColumnClientID)

	for _, f := range MemberFields {
		columns = append(columns, f.Column)
	}

	return columns
}

// SearchKeySources are the cached keys whose values feed SearchKeys.
var SearchKeySources = []string{KeyAssignedStaff, KeyAssignedStaffID}
