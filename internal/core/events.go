package core

import "github.com/openvoice/voiceroom/internal/domain"

// Event is the tagged union of everything the service pushes to its
// listener. Delivery order is not guaranteed; handlers must tolerate
// duplicates and reordering.
type Event interface{ isEvent() }

type RoomDestroyed struct {
	Message string
}

type RoomInfoChanged struct {
	Info domain.RoomInfo
}

// SeatListChanged carries a full roster snapshot, master seat included.
type SeatListChanged struct {
	Seats []domain.SeatState
}

type AnchorEnteredSeat struct {
	Index int
	User  domain.UserProfile
}

type AnchorLeftSeat struct {
	Index int
	User  domain.UserProfile
}

type SeatMuteChanged struct {
	Index int
	Muted bool
}

type SeatLockChanged struct {
	Index  int
	Locked bool
}

type AudienceEntered struct {
	User domain.UserProfile
}

type AudienceLeft struct {
	User domain.UserProfile
}

// VolumeSample reports one user's level. An empty UserID means the sample
// belongs to the local caller.
type VolumeSample struct {
	UserID domain.UserID
	Volume int
}

type VolumeUpdate struct {
	Samples []VolumeSample
	Total   int
}

type TextMessage struct {
	Text string
	User domain.UserProfile
}

type InvitationReceived struct {
	ID      InvitationID
	Inviter domain.UserID
	Cmd     InviteCommand
	Payload string
}

type InviteeAccepted struct {
	ID      InvitationID
	Invitee domain.UserID
}

type InviteeRejected struct {
	ID      InvitationID
	Invitee domain.UserID
}

type InvitationCancelled struct {
	ID      InvitationID
	Invitee domain.UserID
}

func (RoomDestroyed) isEvent()       {}
func (RoomInfoChanged) isEvent()     {}
func (SeatListChanged) isEvent()     {}
func (AnchorEnteredSeat) isEvent()   {}
func (AnchorLeftSeat) isEvent()      {}
func (SeatMuteChanged) isEvent()     {}
func (SeatLockChanged) isEvent()     {}
func (AudienceEntered) isEvent()     {}
func (AudienceLeft) isEvent()        {}
func (VolumeUpdate) isEvent()        {}
func (TextMessage) isEvent()         {}
func (InvitationReceived) isEvent()  {}
func (InviteeAccepted) isEvent()     {}
func (InviteeRejected) isEvent()     {}
func (InvitationCancelled) isEvent() {}
