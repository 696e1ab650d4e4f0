package service

import "github.com/referralhub/casemgmt/scheduled-tasks/members/domain"

type modeReason string

const (
	reasonFirstRun         modeReason = "first-run"
	reasonRequested        modeReason = "requested"
	reasonSignatureChanged modeReason = "signature-changed"
	reasonWatermark        modeReason = "watermark"
)

// SelectMode decides the effective mode of a run. A first run, an explicit full
// request or a changed field selection all force a full run.
func SelectMode(prev *domain.SyncState, requested domain.Mode, signature string) (domain.Mode, modeReason) {
	switch {
	case prev == nil:
		return domain.ModeFull, reasonFirstRun
	case requested == domain.ModeFull:
		return domain.ModeFull, reasonRequested
	case prev.LastSelectSignature != signature:
		return domain.ModeFull, reasonSignatureChanged
	default:
		return domain.ModeIncremental, reasonWatermark
	}
}

// detectsChanges reports whether a run diffs members against the cache.
func detectsChanges(mode domain.Mode, prev *domain.SyncState) bool {
	return mode == domain.ModeIncremental && prev != nil && !prev.LastSyncAt.IsZero()
}
