package domain

// MasterSeatIndex is reserved for the room owner.
const MasterSeatIndex = 0

// SeatState is the wire-level seat record inside a roster snapshot.
// Seat index is positional: index 0 is the master seat, 1..N the guests.
type SeatState struct {
	UserID UserID `json:"user_id"`
	Used   bool   `json:"used"`
	Locked bool   `json:"locked"`
	Muted  bool   `json:"muted"`
}
