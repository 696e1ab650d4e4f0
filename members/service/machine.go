package service

import (
	"context"

	"github.com/qmuntal/stateless"

	"github.com/referralhub/casemgmt/scheduled-tasks/logger"
)

type phase string

const (
	phaseIdle            phase = "idle"
	phaseResolvingSchema phase = "resolving-schema"
	phaseFetching        phase = "fetching"
	phaseUpserting       phase = "upserting"
	phasePersistingState phase = "persisting-state"
)

type trigger string

const (
	triggerResolve  trigger = "resolve"
	triggerFetch    trigger = "fetch"
	triggerUpsert   trigger = "upsert"
	triggerPageDone trigger = "page-done"
	triggerPersist  trigger = "persist"
	triggerFinish   trigger = "finish"
	triggerFail     trigger = "fail"
)

// newRunMachine tracks the phases of one sync run. Any active phase can fail back to idle.
func newRunMachine(l logger.ILogger) *stateless.StateMachine {
	m := stateless.NewStateMachine(phaseIdle)

	m.Configure(phaseIdle).
		Permit(triggerResolve, phaseResolvingSchema)

	m.Configure(phaseResolvingSchema).
		Permit(triggerFetch, phaseFetching).
		Permit(triggerFail, phaseIdle)

	m.Configure(phaseFetching).
		Permit(triggerUpsert, phaseUpserting).
		Permit(triggerPersist, phasePersistingState).
		Permit(triggerFail, phaseIdle)

	m.Configure(phaseUpserting).
		Permit(triggerPageDone, phaseFetching).
		Permit(triggerFail, phaseIdle)

	m.Configure(phasePersistingState).
		Permit(triggerFinish, phaseIdle).
		Permit(triggerFail, phaseIdle)

	m.OnTransitioned(func(_ context.Context, t stateless.Transition) {
		l.Debugf("members sync %s -> %s (%s)", t.Source, t.Destination, t.Trigger)
	})

	return m
}
