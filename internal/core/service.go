// Package core defines the contracts between the view-model layer and the
// room signaling service. It owns no transport resources; adapters do.
package core

import "github.com/openvoice/voiceroom/internal/domain"

// Result codes arrive as opaque integers from the service.
const (
	CodeOK = 0
	// CodeRoomExists is returned by CreateRoom when the room id is already
	// allocated. Treated as success by the creation flow.
	CodeRoomExists = -1301
)

// InviteCommand routes a structured invitation to its handler.
type InviteCommand string

const (
	// CmdPickSeat: owner invites a specific user onto a specific seat.
	CmdPickSeat InviteCommand = "pick_seat"
	// CmdTakeSeat: audience member asks the owner for a seat.
	CmdTakeSeat InviteCommand = "take_seat"
)

// InvitationID is a server-issued handle for a pending invitation.
type InvitationID string

// Callback resolves an asynchronous service call. code 0 means success;
// other codes are service-defined. A nil Callback is always allowed.
type Callback func(code int, msg string)

// UsersCallback resolves a batch profile lookup.
type UsersCallback func(code int, msg string, users []domain.UserProfile)

// RoomService is the consumed capability set of the signaling service.
// Every call is asynchronous; callbacks may fire on any goroutine and the
// caller is responsible for funneling them onto its own sequence.
// Once issued, a call cannot be cancelled.
type RoomService interface {
	// SetListener installs the single receiver for pushed room events.
	// Passing nil detaches the previous listener.
	SetListener(fn func(Event))

	CreateRoom(roomID domain.RoomID, params domain.RoomParams, cb Callback)
	EnterRoom(roomID domain.RoomID, cb Callback)
	DestroyRoom(cb Callback)
	ExitRoom(cb Callback)

	EnterSeat(index int, cb Callback)
	LeaveSeat(cb Callback)
	PickSeat(index int, user domain.UserID, cb Callback)
	KickSeat(index int, cb Callback)
	MuteSeat(index int, mute bool, cb Callback)
	LockSeat(index int, lock bool, cb Callback)

	MuteLocalAudio(mute bool)
	MuteAllRemoteAudio(mute bool)
	SetAudioQuality(q domain.AudioQuality)

	SetSelfProfile(name, avatarURL string, cb Callback)
	// FetchUsers resolves profiles for the given ids. An empty list means
	// "everyone currently in the room".
	FetchUsers(ids []domain.UserID, cb UsersCallback)

	SendMessage(text string, cb Callback)
	// SendInvitation issues a structured invitation and returns its
	// server-assigned id immediately; cb reports delivery.
	SendInvitation(cmd InviteCommand, target domain.UserID, payload string, cb Callback) InvitationID
	AcceptInvitation(id InvitationID, cb Callback)
	RejectInvitation(id InvitationID, cb Callback)
}

// RoomDirectory lists known rooms. Optional capability: implemented by the
// reference service, absent from the production SDK surface.
type RoomDirectory interface {
	ListRooms(cb func(code int, msg string, rooms []domain.RoomInfo))
}
