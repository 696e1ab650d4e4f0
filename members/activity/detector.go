package activity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/referralhub/casemgmt/scheduled-tasks/members/domain"
)

const (
	maxDescribedChanges = 3
	blankValue          = "(blank)"
)

// Classify returns how a change of the cached attribute key is reported.
func Classify(key string) (domain.Classification, bool) {
	for _, tf := range domain.TrackedFields {
		if tf.Key == key {
			return tf.Classification, true
		}
	}

	return domain.Classification{}, false
}

// Detector turns member diffs into activity events.
type Detector struct {
	now   func() time.Time
	newID func() string
}

func NewDetector() *Detector {
	return &Detector{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Changes lists the tracked attributes next carries with a value different from prev.
func Changes(prev, next *domain.CachedMember) []domain.FieldChange {
	var changes []domain.FieldChange

	for _, tf := range domain.TrackedFields {
		if !next.Has(tf.Key) {
			continue
		}

		oldValue, newValue := prev.Value(tf.Key), next.Value(tf.Key)
		if oldValue == newValue {
			continue
		}

		f, _ := domain.FieldByKey(tf.Key)

		changes = append(changes, domain.FieldChange{
			Field:    tf.Key,
			Label:    f.Label,
			OldValue: oldValue,
			NewValue: newValue,
		})
	}

	return changes
}

// Diff returns the single primary event of a member whose tracked attributes
// changed, or nil. The primary change is the first one in tracked field order.
func (d *Detector) Diff(mode domain.Mode, prev, next *domain.CachedMember) *domain.ActivityEvent {
	if prev == nil || next == nil {
		return nil
	}

	changes := Changes(prev, next)
	if len(changes) == 0 {
		return nil
	}

	primary := changes[0]
	c, _ := Classify(primary.Field)

	return &domain.ActivityEvent{
		ID:                   d.newID(),
		ClientKey:            next.ClientKey,
		Field:                primary.Field,
		OldValue:             primary.OldValue,
		NewValue:             primary.NewValue,
		Type:                 c.Type,
		Category:             c.Category,
		Priority:             c.Priority,
		RequiresNotification: c.RequiresNotification,
		Description:          describe(primary.Label, changes),
		Changes:              changes,
		Source:               domain.ActivitySource,
		Mode:                 mode,
		CreatedAt:            d.now().UTC(),
	}
}

// SummaryEvent is the one event a full run writes instead of per-member events.
func (d *Detector) SummaryEvent(mode domain.Mode, summary domain.RunSummary) *domain.ActivityEvent {
	s := summary

	return &domain.ActivityEvent{
		ID:       d.newID(),
		Type:     domain.EventSyncSummary,
		Category: domain.CategorySystem,
		Priority: domain.PriorityLow,
		Description: fmt.Sprintf("Members %s sync: %d fetched, %d upserted, %d skipped without id",
			mode, summary.Fetched, summary.Upserted, summary.SkippedMissingID),
		Source:    domain.ActivitySource,
		Mode:      mode,
		Summary:   &s,
		CreatedAt: d.now().UTC(),
	}
}

func describe(label string, changes []domain.FieldChange) string {
	n := len(changes)
	if n > maxDescribedChanges {
		n = maxDescribedChanges
	}

	parts := make([]string, 0, n)
	for _, c := range changes[:n] {
		parts = append(parts, fmt.Sprintf("%s: %s → %s", c.Label, orBlank(c.OldValue), orBlank(c.NewValue)))
	}

	desc := fmt.Sprintf("%s changed (%s)", label, strings.Join(parts, "; "))
	if extra := len(changes) - n; extra > 0 {
		desc += fmt.Sprintf(" and %d more", extra)
	}

	return desc
}

func orBlank(s string) string {
	if s == "" {
		return blankValue
	}

	return s
}
