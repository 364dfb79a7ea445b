package auction

import "time"

type Phase string

const (
	PhaseNotStarted Phase = "notStarted"
	PhaseActive     Phase = "active"
	PhaseCompleted  Phase = "completed"
)

// PhaseAt derives the lot's phase from the clock. Nothing is stored: the
// same lot can report Active now and Completed a moment later.
//
// A buyout-meeting bid completes the auction regardless of time. Otherwise
// a duration auction completes strictly after start+duration, and a bid
// timeout auction strictly after the last bid (or start, when no bid was
// placed) plus the timeout.
func (l *Lot) PhaseAt(now time.Time) Phase {
	if now.Before(l.Start) {
		return PhaseNotStarted
	}
	if l.Buyout != nil && l.HighestBid != nil && l.HighestBid.Amount >= *l.Buyout {
		return PhaseCompleted
	}
	switch l.Finalization.Kind {
	case FinalizationDuration:
		if now.After(l.Start.Add(l.Finalization.Duration)) {
			return PhaseCompleted
		}
	case FinalizationBidTimeout:
		since := l.Start
		if l.HighestBid != nil {
			since = l.HighestBid.Timestamp
		}
		if now.After(since.Add(l.Finalization.Duration)) {
			return PhaseCompleted
		}
	}
	return PhaseActive
}
