package local

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/openvoice/voiceroom/internal/core"
	"github.com/openvoice/voiceroom/internal/domain"
)

// Client is one user's handle on the hub. It implements core.RoomService.
// Events are delivered from a dedicated goroutine so the hub never blocks
// on a slow listener; a full buffer drops the event, as the WS layer would.
type Client struct {
	hub *Hub

	mu       sync.Mutex
	profile  domain.UserProfile
	listener func(core.Event)
	room     *room

	localMuted  bool
	remoteMuted bool
	quality     domain.AudioQuality

	events chan core.Event
	quit   chan struct{}
	once   sync.Once
}

var _ core.RoomService = (*Client)(nil)
var _ core.RoomDirectory = (*Client)(nil)

func (c *Client) deliver() {
	for {
		select {
		case ev := <-c.events:
			c.mu.Lock()
			fn := c.listener
			c.mu.Unlock()
			if fn != nil {
				fn(ev)
			}
		case <-c.quit:
			return
		}
	}
}

// push hands an event to the delivery goroutine, dropping on backpressure.
func (c *Client) push(ev core.Event) {
	select {
	case c.events <- ev:
	default:
		log.Warn().Str("module", "service.local").Str("user", string(c.snapshotProfile().ID)).Msg("event dropped, slow listener")
	}
}

func (c *Client) snapshotProfile() domain.UserProfile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

func (c *Client) currentRoom() *room {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.room
}

func (c *Client) setRoom(r *room) {
	c.mu.Lock()
	c.room = r
	c.mu.Unlock()
}

// Close leaves any joined room and stops event delivery. The handle is
// unusable afterwards.
func (c *Client) Close() {
	c.ExitRoom(nil)
	c.once.Do(func() { close(c.quit) })
}

func (c *Client) SetListener(fn func(core.Event)) {
	c.mu.Lock()
	c.listener = fn
	c.mu.Unlock()
}

func done(cb core.Callback, code int, msg string) {
	if cb != nil {
		cb(code, msg)
	}
}

func (c *Client) CreateRoom(roomID domain.RoomID, params domain.RoomParams, cb core.Callback) {
	r, code := c.hub.createRoom(c, roomID, params)
	if code != core.CodeOK {
		done(cb, code, "room already exists")
		return
	}
	r.addMember(c)
	c.setRoom(r)
	c.push(core.RoomInfoChanged{Info: r.infoSnapshot()})
	r.mu.Lock()
	snap := r.seatSnapshot()
	r.mu.Unlock()
	c.push(core.SeatListChanged{Seats: snap})
	done(cb, core.CodeOK, "")
}

func (c *Client) EnterRoom(roomID domain.RoomID, cb core.Callback) {
	r := c.hub.getRoom(roomID)
	if r == nil {
		done(cb, codeRoomNotFound, "room not found")
		return
	}
	p := c.snapshotProfile()
	r.addMember(c)
	c.setRoom(r)
	r.broadcast(core.AudienceEntered{User: p}, p.ID)
	r.broadcastInfo()
	c.push(core.SeatListChanged{Seats: func() []domain.SeatState {
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.seatSnapshot()
	}()})
	done(cb, core.CodeOK, "")
}

func (c *Client) DestroyRoom(cb core.Callback) {
	r := c.currentRoom()
	if r == nil {
		done(cb, codeNotInRoom, "not in a room")
		return
	}
	if r.infoSnapshot().OwnerID != c.snapshotProfile().ID {
		done(cb, codeNotPermitted, "only the owner can destroy the room")
		return
	}
	r.broadcast(core.RoomDestroyed{Message: "room closed by owner"}, c.snapshotProfile().ID)
	c.hub.dropRoom(r.info.ID)
	done(cb, core.CodeOK, "")
}

func (c *Client) ExitRoom(cb core.Callback) {
	r := c.currentRoom()
	if r == nil {
		done(cb, codeNotInRoom, "not in a room")
		return
	}
	p := c.snapshotProfile()
	c.LeaveSeat(nil)
	r.removeMember(p.ID)
	c.setRoom(nil)
	r.broadcast(core.AudienceLeft{User: p}, p.ID)
	r.broadcastInfo()
	done(cb, core.CodeOK, "")
}

func (c *Client) EnterSeat(index int, cb core.Callback) {
	r := c.currentRoom()
	if r == nil {
		done(cb, codeNotInRoom, "not in a room")
		return
	}
	p := c.snapshotProfile()
	r.mu.Lock()
	if index < 0 || index >= len(r.seats) {
		r.mu.Unlock()
		done(cb, codeSeatOutOfRange, "no such seat")
		return
	}
	if index == domain.MasterSeatIndex && r.info.OwnerID != p.ID {
		r.mu.Unlock()
		done(cb, codeNotPermitted, "master seat is reserved for the owner")
		return
	}
	if r.seats[index].used {
		r.mu.Unlock()
		done(cb, codeSeatTaken, "seat is occupied")
		return
	}
	if r.seats[index].locked {
		r.mu.Unlock()
		done(cb, codeSeatLocked, "seat is locked")
		return
	}
	prev, prevUser := r.vacateLocked(p.ID)
	r.seats[index].used = true
	r.seats[index].user = p.ID
	r.mu.Unlock()

	if prev >= 0 {
		r.broadcastAll(core.AnchorLeftSeat{Index: prev, User: prevUser})
	}
	r.broadcastAll(core.AnchorEnteredSeat{Index: index, User: p})
	r.broadcastRoster()
	done(cb, core.CodeOK, "")
}

func (c *Client) LeaveSeat(cb core.Callback) {
	r := c.currentRoom()
	if r == nil {
		done(cb, codeNotInRoom, "not in a room")
		return
	}
	p := c.snapshotProfile()
	r.mu.Lock()
	idx, prevUser := r.vacateLocked(p.ID)
	r.mu.Unlock()
	if idx < 0 {
		done(cb, codeSeatOutOfRange, "not seated")
		return
	}
	r.broadcastAll(core.AnchorLeftSeat{Index: idx, User: prevUser})
	r.broadcastRoster()
	done(cb, core.CodeOK, "")
}

// ownedRoom resolves the joined room when the caller is its owner.
func (c *Client) ownedRoom(cb core.Callback) *room {
	r := c.currentRoom()
	if r == nil {
		done(cb, codeNotInRoom, "not in a room")
		return nil
	}
	if r.infoSnapshot().OwnerID != c.snapshotProfile().ID {
		done(cb, codeNotPermitted, "owner only")
		return nil
	}
	return r
}

func (c *Client) PickSeat(index int, user domain.UserID, cb core.Callback) {
	r := c.ownedRoom(cb)
	if r == nil {
		return
	}
	target := r.member(user)
	if target == nil {
		done(cb, codeTargetMissing, "user is not in the room")
		return
	}
	p := target.snapshotProfile()
	r.mu.Lock()
	if index <= domain.MasterSeatIndex || index >= len(r.seats) {
		r.mu.Unlock()
		done(cb, codeSeatOutOfRange, "no such seat")
		return
	}
	if r.seats[index].used {
		r.mu.Unlock()
		done(cb, codeSeatTaken, "seat is occupied")
		return
	}
	if r.seats[index].locked {
		r.mu.Unlock()
		done(cb, codeSeatLocked, "seat is locked")
		return
	}
	prev, prevUser := r.vacateLocked(user)
	r.seats[index].used = true
	r.seats[index].user = user
	r.mu.Unlock()

	if prev >= 0 {
		r.broadcastAll(core.AnchorLeftSeat{Index: prev, User: prevUser})
	}
	r.broadcastAll(core.AnchorEnteredSeat{Index: index, User: p})
	r.broadcastRoster()
	done(cb, core.CodeOK, "")
}

func (c *Client) KickSeat(index int, cb core.Callback) {
	r := c.ownedRoom(cb)
	if r == nil {
		return
	}
	r.mu.Lock()
	if index <= domain.MasterSeatIndex || index >= len(r.seats) {
		r.mu.Unlock()
		done(cb, codeSeatOutOfRange, "no such seat")
		return
	}
	occupant := r.seats[index].user
	if !r.seats[index].used {
		r.mu.Unlock()
		done(cb, codeSeatOutOfRange, "seat is empty")
		return
	}
	_, prevUser := r.vacateLocked(occupant)
	r.mu.Unlock()

	r.broadcastAll(core.AnchorLeftSeat{Index: index, User: prevUser})
	r.broadcastRoster()
	done(cb, core.CodeOK, "")
}

func (c *Client) MuteSeat(index int, mute bool, cb core.Callback) {
	r := c.ownedRoom(cb)
	if r == nil {
		return
	}
	r.mu.Lock()
	if index < 0 || index >= len(r.seats) {
		r.mu.Unlock()
		done(cb, codeSeatOutOfRange, "no such seat")
		return
	}
	r.seats[index].muted = mute
	r.mu.Unlock()
	r.broadcastAll(core.SeatMuteChanged{Index: index, Muted: mute})
	r.broadcastRoster()
	done(cb, core.CodeOK, "")
}

func (c *Client) LockSeat(index int, lock bool, cb core.Callback) {
	r := c.ownedRoom(cb)
	if r == nil {
		return
	}
	r.mu.Lock()
	if index <= domain.MasterSeatIndex || index >= len(r.seats) {
		r.mu.Unlock()
		done(cb, codeSeatOutOfRange, "no such seat")
		return
	}
	if lock && r.seats[index].used {
		r.mu.Unlock()
		done(cb, codeSeatTaken, "cannot lock an occupied seat")
		return
	}
	r.seats[index].locked = lock
	r.mu.Unlock()
	r.broadcastAll(core.SeatLockChanged{Index: index, Locked: lock})
	r.broadcastRoster()
	done(cb, core.CodeOK, "")
}

// Audio-plane toggles are recorded only; the reference service carries no
// media.
func (c *Client) MuteLocalAudio(mute bool) { c.setFlag(&c.localMuted, mute) }

func (c *Client) MuteAllRemoteAudio(mute bool) { c.setFlag(&c.remoteMuted, mute) }

func (c *Client) SetAudioQuality(q domain.AudioQuality) {
	c.mu.Lock()
	c.quality = q
	c.mu.Unlock()
}

func (c *Client) setFlag(f *bool, v bool) {
	c.mu.Lock()
	*f = v
	c.mu.Unlock()
}

func (c *Client) SetSelfProfile(name, avatarURL string, cb core.Callback) {
	c.mu.Lock()
	if name != "" {
		c.profile.Name = name
	}
	c.profile.AvatarURL = avatarURL
	c.mu.Unlock()
	done(cb, core.CodeOK, "")
}

func (c *Client) FetchUsers(ids []domain.UserID, cb core.UsersCallback) {
	r := c.currentRoom()
	if r == nil {
		if cb != nil {
			cb(codeNotInRoom, "not in a room", nil)
		}
		return
	}
	if cb != nil {
		cb(core.CodeOK, "", r.memberProfiles(ids))
	}
}

func (c *Client) SendMessage(text string, cb core.Callback) {
	r := c.currentRoom()
	if r == nil {
		done(cb, codeNotInRoom, "not in a room")
		return
	}
	p := c.snapshotProfile()
	r.broadcast(core.TextMessage{Text: text, User: p}, p.ID)
	done(cb, core.CodeOK, "")
}

func (c *Client) SendInvitation(cmd core.InviteCommand, target domain.UserID, payload string, cb core.Callback) core.InvitationID {
	return c.SendInvitationWithID("", cmd, target, payload, cb)
}

// SendInvitationWithID lets the WS bridge pin the invitation id minted on
// the client side of the socket. An empty id gets a fresh one.
func (c *Client) SendInvitationWithID(id core.InvitationID, cmd core.InviteCommand, target domain.UserID, payload string, cb core.Callback) core.InvitationID {
	r := c.currentRoom()
	if r == nil {
		done(cb, codeNotInRoom, "not in a room")
		return ""
	}
	inv := r.newInvite(id, cmd, c.snapshotProfile().ID, target, payload)
	if m := r.member(target); m != nil {
		m.push(core.InvitationReceived{ID: inv.id, Inviter: inv.inviter, Cmd: cmd, Payload: payload})
		done(cb, core.CodeOK, "")
	} else {
		done(cb, codeTargetMissing, "target is not in the room")
	}
	return inv.id
}

func (c *Client) AcceptInvitation(id core.InvitationID, cb core.Callback) {
	c.resolveInvitation(id, true, cb)
}

func (c *Client) RejectInvitation(id core.InvitationID, cb core.Callback) {
	c.resolveInvitation(id, false, cb)
}

func (c *Client) resolveInvitation(id core.InvitationID, accept bool, cb core.Callback) {
	r := c.currentRoom()
	if r == nil {
		done(cb, codeNotInRoom, "not in a room")
		return
	}
	me := c.snapshotProfile().ID
	inv := r.takeInvite(id, me)
	if inv == nil {
		done(cb, codeInviteUnknown, "invitation not found")
		return
	}
	var ev core.Event
	if accept {
		ev = core.InviteeAccepted{ID: inv.id, Invitee: me}
	} else {
		ev = core.InviteeRejected{ID: inv.id, Invitee: me}
	}
	if m := r.member(inv.inviter); m != nil {
		m.push(ev)
	}
	done(cb, core.CodeOK, "")
}

// SubmitVolume reports the caller's mic level; the hub fans per-user
// samples out to the whole room. The caller's own sample arrives with an
// empty user id, matching the SDK convention.
func (c *Client) SubmitVolume(level int) {
	r := c.currentRoom()
	if r == nil {
		return
	}
	me := c.snapshotProfile().ID
	r.mu.Lock()
	targets := make([]*Client, 0, len(r.members))
	for _, m := range r.members {
		targets = append(targets, m)
	}
	r.mu.Unlock()
	for _, m := range targets {
		sample := core.VolumeSample{UserID: me, Volume: level}
		if m.snapshotProfile().ID == me {
			sample.UserID = ""
		}
		m.push(core.VolumeUpdate{Samples: []core.VolumeSample{sample}, Total: level})
	}
}

func (c *Client) ListRooms(cb func(code int, msg string, rooms []domain.RoomInfo)) {
	if cb != nil {
		cb(core.CodeOK, "", c.hub.List())
	}
}
