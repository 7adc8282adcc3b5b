// This file implements the re-inspection lock: a 48-hour cooldown preventing
// redundant re-inspection of the same asset. The lock is logical, derived
// from timestamps at read time; it is not a mutex and provides no exclusion
// guarantee against two submissions racing the window boundary.
package domain

import "time"

// LockWindowHours is the cooldown after an inspection during which the asset
// is locked for re-inspection.
const LockWindowHours = 48.0

// LockDecision is the result of evaluating the re-inspection lock for one
// asset and one requesting principal.
type LockDecision struct {
	// Locked reports whether the principal is blocked from inspecting now.
	Locked bool

	// RemainingHours is the time left until the lock expires. Only meaningful
	// when Locked is true.
	RemainingHours float64

	// BlockedBy references the inspection holding the lock, for display of
	// who last inspected and when. Nil when unlocked or when the inspection
	// row could not be resolved.
	BlockedBy *Inspection

	// AdminOverride is set when the asset is inside the lock window but the
	// principal may proceed anyway (an admin who did not perform the blocking
	// inspection).
	AdminOverride bool
}

// EvaluateLock decides whether the given principal may inspect the asset at
// time now.
//
// Rules:
//   - No prior inspection: unlocked.
//   - 48 or more hours since the last inspection: unlocked. The boundary is
//     inclusive, so exactly 48.0h is unlocked.
//   - Inside the window: locked, unless the principal is an admin who was
//     not the inspector of the blocking inspection. An admin cannot bypass
//     their own just-completed inspection.
//
// The evaluator is pure: it performs no I/O and always uses the caller's
// now, which must be server-observed time (client clock skew is not
// compensated).
func EvaluateLock(asset *Asset, last *Inspection, p Principal, now time.Time) LockDecision {
	if asset.LastInspectionDate == nil {
		return LockDecision{}
	}

	elapsed := now.Sub(*asset.LastInspectionDate).Hours()
	if elapsed >= LockWindowHours {
		return LockDecision{}
	}

	remaining := LockWindowHours - elapsed

	if p.Role == RoleAdmin {
		// Admin override applies unless this admin performed the blocking
		// inspection themselves.
		if last == nil || last.InspectorID != p.ID {
			return LockDecision{
				RemainingHours: remaining,
				BlockedBy:      last,
				AdminOverride:  true,
			}
		}
	}

	return LockDecision{
		Locked:         true,
		RemainingHours: remaining,
		BlockedBy:      last,
	}
}

// LockedErrorFor builds the user-facing error for a denied submission.
func LockedErrorFor(d LockDecision) *LockedError {
	e := &LockedError{RemainingHours: d.RemainingHours}
	if d.BlockedBy != nil {
		e.InspectorID = d.BlockedBy.InspectorID.String()
		e.InspectorName = d.BlockedBy.InspectorName
	}
	return e
}
