package model

import "time"

// Urgency classifies how a task should be highlighted in the list.
type Urgency int

const (
	UrgencyNormal Urgency = iota
	UrgencyDueSoon
	UrgencyOverdue
	UrgencyDeferred
)

// String returns the display name for an urgency class
func (u Urgency) String() string {
	switch u {
	case UrgencyNormal:
		return "normal"
	case UrgencyDueSoon:
		return "due-soon"
	case UrgencyOverdue:
		return "overdue"
	case UrgencyDeferred:
		return "deferred"
	default:
		return "unknown"
	}
}

// Classify returns the urgency class for a task at the given time.
// Rules are checked in priority order and the first match wins, so a
// deferred task is never reported overdue even when its due date has
// passed. Completion and selection are renderer overlays, not classes.
func Classify(t Task, now time.Time) Urgency {
	if t.IsDeferred(now) {
		return UrgencyDeferred
	}
	if t.IsOverdue(now) {
		return UrgencyOverdue
	}
	if t.Due != nil && t.Due.Sub(now) <= 24*time.Hour {
		return UrgencyDueSoon
	}
	return UrgencyNormal
}
