package domain

import "time"

type EventType string

const (
	EventStatusChange        EventType = "status_change"
	EventAuthorizationChange EventType = "authorization_change"
	EventPathwayChange       EventType = "pathway_change"
	EventAssignmentChange    EventType = "assignment_change"
	EventFormUpdate          EventType = "form_update"
	EventSyncSummary         EventType = "sync_summary"
)

type Category string

const (
	CategoryDomainStatus  Category = "domain-status"
	CategoryAuthorization Category = "authorization"
	CategoryPathway       Category = "pathway"
	CategoryAssignment    Category = "assignment"
	CategorySystem        Category = "system"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// ActivitySource marks events written by the sync engine.
const ActivitySource = "members-sync"

// FieldChange is one tracked attribute that differs from the cached value.
type FieldChange struct {
	Field    string `firestore:"field" json:"field"`
	Label    string `firestore:"label" json:"label"`
	OldValue string `firestore:"oldValue" json:"oldValue"`
	NewValue string `firestore:"newValue" json:"newValue"`
}

// ActivityEvent is an immutable record of a detected member change.
type ActivityEvent struct {
	ID                   string        `firestore:"id" json:"id"`
	ClientKey            string        `firestore:"clientKey" json:"clientKey"`
	Field                string        `firestore:"field" json:"field"`
	OldValue             string        `firestore:"oldValue" json:"oldValue"`
	NewValue             string        `firestore:"newValue" json:"newValue"`
	Type                 EventType     `firestore:"type" json:"type"`
	Category             Category      `firestore:"category" json:"category"`
	Priority             Priority      `firestore:"priority" json:"priority"`
	RequiresNotification bool          `firestore:"requiresNotification" json:"requiresNotification"`
	Description          string        `firestore:"description" json:"description"`
	Changes              []FieldChange `firestore:"changes" json:"changes"`
	Source               string        `firestore:"source" json:"source"`
	Mode                 Mode          `firestore:"mode" json:"mode"`
	Summary              *RunSummary   `firestore:"summary,omitempty" json:"summary,omitempty"`
	CreatedAt            time.Time     `firestore:"createdAt" json:"createdAt"`
}

// Classification is how a change to one tracked field is reported.
type Classification struct {
	Type                 EventType
	Category             Category
	Priority             Priority
	RequiresNotification bool
}

// TrackedField is a cached attribute whose change produces an activity event.
type TrackedField struct {
	Key            string
	Classification Classification
}

var (
	statusChange = Classification{EventStatusChange, CategoryDomainStatus, PriorityHigh, true}
	assignment   = Classification{EventAssignmentChange, CategoryAssignment, PriorityNormal, false}
)

// TrackedFields is ordered by priority; the first changed entry is the primary change of a record.
var TrackedFields = []TrackedField{
	{KeyStatus, statusChange},
	{KeyAuthorizationStatus, Classification{EventAuthorizationChange, CategoryAuthorization, PriorityHigh, true}},
	{KeyPathway, Classification{EventPathwayChange, CategoryPathway, PriorityHigh, true}},
	{KeyHoldForReview, Classification{EventStatusChange, CategoryAssignment, PriorityHigh, true}},
	{KeyAssignedStaff, assignment},
	{KeySecondaryStaff, assignment},
	{KeyFacilityName, Classification{EventFormUpdate, CategoryDomainStatus, PriorityNormal, false}},
}
