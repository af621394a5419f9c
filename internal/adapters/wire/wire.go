// Package wire defines the JSON envelopes spoken between the signaling
// server and the WebSocket client adapter. One envelope per frame.
package wire

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openvoice/voiceroom/internal/core"
	"github.com/openvoice/voiceroom/internal/domain"
)

var ErrUnknownEvent = errors.New("unknown event")

const (
	KindOp    = "op"
	KindAck   = "ack"
	KindEvent = "event"
)

// Envelope frames every message. Ops carry Seq so acks can be correlated.
type Envelope struct {
	Kind  string          `json:"kind"`
	Op    string          `json:"op,omitempty"`
	Event string          `json:"event,omitempty"`
	Seq   uint64          `json:"seq,omitempty"`
	Code  int             `json:"code,omitempty"`
	Msg   string          `json:"msg,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Operation names.
const (
	OpCreateRoom  = "create_room"
	OpEnterRoom   = "enter_room"
	OpDestroyRoom = "destroy_room"
	OpExitRoom    = "exit_room"
	OpEnterSeat   = "enter_seat"
	OpLeaveSeat   = "leave_seat"
	OpPickSeat    = "pick_seat"
	OpKickSeat    = "kick_seat"
	OpMuteSeat    = "mute_seat"
	OpLockSeat    = "lock_seat"
	OpMuteLocal   = "mute_local"
	OpMuteRemote  = "mute_remote"
	OpQuality     = "quality"
	OpProfile     = "profile"
	OpFetchUsers  = "fetch_users"
	OpMessage     = "message"
	OpInvite      = "invite"
	OpAccept      = "accept"
	OpReject      = "reject"
	OpVolume      = "volume"
	OpListRooms   = "list_rooms"
)

// Op payloads.

type CreateRoomOp struct {
	RoomID domain.RoomID     `json:"room_id"`
	Params domain.RoomParams `json:"params"`
}

type EnterRoomOp struct {
	RoomID domain.RoomID `json:"room_id"`
}

type SeatOp struct {
	Index int           `json:"index"`
	User  domain.UserID `json:"user,omitempty"`
	Flag  bool          `json:"flag,omitempty"`
}

type FlagOp struct {
	Flag bool `json:"flag"`
}

type QualityOp struct {
	Quality domain.AudioQuality `json:"quality"`
}

type ProfileOp struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type FetchUsersOp struct {
	IDs []domain.UserID `json:"ids,omitempty"`
}

type MessageOp struct {
	Text string `json:"text"`
}

type InviteOp struct {
	InviteID core.InvitationID  `json:"invite_id"`
	Cmd      core.InviteCommand `json:"cmd,omitempty"`
	Target   domain.UserID      `json:"target,omitempty"`
	Payload  string             `json:"payload,omitempty"`
}

type VolumeOp struct {
	Level int `json:"level"`
}

// Ack payloads.

type UsersAck struct {
	Users []domain.UserProfile `json:"users"`
}

type RoomsAck struct {
	Rooms []domain.RoomInfo `json:"rooms"`
}

// Event names.
const (
	EvRoomDestroyed   = "room_destroyed"
	EvRoomInfo        = "room_info"
	EvSeatList        = "seat_list"
	EvAnchorEnter     = "anchor_enter"
	EvAnchorLeave     = "anchor_leave"
	EvSeatMute        = "seat_mute"
	EvSeatLock        = "seat_lock"
	EvAudienceEnter   = "audience_enter"
	EvAudienceLeave   = "audience_leave"
	EvVolume          = "volume"
	EvText            = "text"
	EvInviteReceived  = "invite_received"
	EvInviteeAccepted = "invitee_accepted"
	EvInviteeRejected = "invitee_rejected"
	EvInviteCancelled = "invite_cancelled"
)

// Event payloads.

type RoomDestroyedEv struct {
	Message string `json:"message"`
}

type RoomInfoEv struct {
	Info domain.RoomInfo `json:"info"`
}

type SeatListEv struct {
	Seats []domain.SeatState `json:"seats"`
}

type SeatUserEv struct {
	Index int                `json:"index"`
	User  domain.UserProfile `json:"user"`
}

type SeatFlagEv struct {
	Index int  `json:"index"`
	Flag  bool `json:"flag"`
}

type UserEv struct {
	User domain.UserProfile `json:"user"`
}

type VolumeEv struct {
	Samples []core.VolumeSample `json:"samples"`
	Total   int                 `json:"total"`
}

type TextEv struct {
	Text string             `json:"text"`
	User domain.UserProfile `json:"user"`
}

type InviteEv struct {
	InviteID core.InvitationID  `json:"invite_id"`
	Inviter  domain.UserID      `json:"inviter,omitempty"`
	Invitee  domain.UserID      `json:"invitee,omitempty"`
	Cmd      core.InviteCommand `json:"cmd,omitempty"`
	Payload  string             `json:"payload,omitempty"`
}

func marshal(name string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Kind: KindEvent, Event: name, Data: data}, nil
}

// EncodeEvent maps a core event onto its wire envelope.
func EncodeEvent(ev core.Event) (Envelope, error) {
	switch e := ev.(type) {
	case core.RoomDestroyed:
		return marshal(EvRoomDestroyed, RoomDestroyedEv{Message: e.Message})
	case core.RoomInfoChanged:
		return marshal(EvRoomInfo, RoomInfoEv{Info: e.Info})
	case core.SeatListChanged:
		return marshal(EvSeatList, SeatListEv{Seats: e.Seats})
	case core.AnchorEnteredSeat:
		return marshal(EvAnchorEnter, SeatUserEv{Index: e.Index, User: e.User})
	case core.AnchorLeftSeat:
		return marshal(EvAnchorLeave, SeatUserEv{Index: e.Index, User: e.User})
	case core.SeatMuteChanged:
		return marshal(EvSeatMute, SeatFlagEv{Index: e.Index, Flag: e.Muted})
	case core.SeatLockChanged:
		return marshal(EvSeatLock, SeatFlagEv{Index: e.Index, Flag: e.Locked})
	case core.AudienceEntered:
		return marshal(EvAudienceEnter, UserEv{User: e.User})
	case core.AudienceLeft:
		return marshal(EvAudienceLeave, UserEv{User: e.User})
	case core.VolumeUpdate:
		return marshal(EvVolume, VolumeEv{Samples: e.Samples, Total: e.Total})
	case core.TextMessage:
		return marshal(EvText, TextEv{Text: e.Text, User: e.User})
	case core.InvitationReceived:
		return marshal(EvInviteReceived, InviteEv{InviteID: e.ID, Inviter: e.Inviter, Cmd: e.Cmd, Payload: e.Payload})
	case core.InviteeAccepted:
		return marshal(EvInviteeAccepted, InviteEv{InviteID: e.ID, Invitee: e.Invitee})
	case core.InviteeRejected:
		return marshal(EvInviteeRejected, InviteEv{InviteID: e.ID, Invitee: e.Invitee})
	case core.InvitationCancelled:
		return marshal(EvInviteCancelled, InviteEv{InviteID: e.ID, Invitee: e.Invitee})
	}
	return Envelope{}, fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
}

// DecodeEvent maps a wire envelope back onto a core event.
func DecodeEvent(env Envelope) (core.Event, error) {
	switch env.Event {
	case EvRoomDestroyed:
		var p RoomDestroyedEv
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, err
		}
		return core.RoomDestroyed{Message: p.Message}, nil
	case EvRoomInfo:
		var p RoomInfoEv
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, err
		}
		return core.RoomInfoChanged{Info: p.Info}, nil
	case EvSeatList:
		var p SeatListEv
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, err
		}
		return core.SeatListChanged{Seats: p.Seats}, nil
	case EvAnchorEnter:
		var p SeatUserEv
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, err
		}
		return core.AnchorEnteredSeat{Index: p.Index, User: p.User}, nil
	case EvAnchorLeave:
		var p SeatUserEv
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, err
		}
		return core.AnchorLeftSeat{Index: p.Index, User: p.User}, nil
	case EvSeatMute:
		var p SeatFlagEv
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, err
		}
		return core.SeatMuteChanged{Index: p.Index, Muted: p.Flag}, nil
	case EvSeatLock:
		var p SeatFlagEv
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, err
		}
		return core.SeatLockChanged{Index: p.Index, Locked: p.Flag}, nil
	case EvAudienceEnter:
		var p UserEv
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, err
		}
		return core.AudienceEntered{User: p.User}, nil
	case EvAudienceLeave:
		var p UserEv
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, err
		}
		return core.AudienceLeft{User: p.User}, nil
	case EvVolume:
		var p VolumeEv
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, err
		}
		return core.VolumeUpdate{Samples: p.Samples, Total: p.Total}, nil
	case EvText:
		var p TextEv
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, err
		}
		return core.TextMessage{Text: p.Text, User: p.User}, nil
	case EvInviteReceived:
		var p InviteEv
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, err
		}
		return core.InvitationReceived{ID: p.InviteID, Inviter: p.Inviter, Cmd: p.Cmd, Payload: p.Payload}, nil
	case EvInviteeAccepted:
		var p InviteEv
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, err
		}
		return core.InviteeAccepted{ID: p.InviteID, Invitee: p.Invitee}, nil
	case EvInviteeRejected:
		var p InviteEv
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, err
		}
		return core.InviteeRejected{ID: p.InviteID, Invitee: p.Invitee}, nil
	case EvInviteCancelled:
		var p InviteEv
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, err
		}
		return core.InvitationCancelled{ID: p.InviteID, Invitee: p.Invitee}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, env.Event)
}
