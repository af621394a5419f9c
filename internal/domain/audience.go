package domain

// AudienceStatus tracks where a room member stands in the take-seat flow.
type AudienceStatus int

const (
	AudienceIdle AudienceStatus = iota
	AudienceInSeat
	AudienceAwaitingApproval
)

func (s AudienceStatus) String() string {
	switch s {
	case AudienceIdle:
		return "idle"
	case AudienceInSeat:
		return "in-seat"
	case AudienceAwaitingApproval:
		return "awaiting-approval"
	}
	return "unknown"
}
