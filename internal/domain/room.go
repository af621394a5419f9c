package domain

type RoomID string

// MemberCountUnknown marks a room-info update that carries no member count.
// The previous count is kept in that case.
const MemberCountUnknown = -1

// RoomInfo is the room metadata as last reported by the service.
type RoomInfo struct {
	ID          RoomID `json:"id"`
	Name        string `json:"name"`
	OwnerID     UserID `json:"owner_id"`
	OwnerName   string `json:"owner_name"`
	CoverURL    string `json:"cover_url"`
	MemberCount int    `json:"member_count"`
	NeedRequest bool   `json:"need_request"`
}

// RoomParams is the parameter bundle sent on room creation.
type RoomParams struct {
	Name        string      `json:"name"`
	NeedRequest bool        `json:"need_request"`
	SeatCount   int         `json:"seat_count"`
	CoverURL    string      `json:"cover_url"`
	Seats       []SeatState `json:"seats"`
}

// AudioQuality selects the speech/music tuning preset.
type AudioQuality int

const (
	AudioQualityDefault AudioQuality = iota
	AudioQualitySpeech
	AudioQualityMusic
)
