package local

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/openvoice/voiceroom/internal/core"
	"github.com/openvoice/voiceroom/internal/domain"
)

type seat struct {
	user   domain.UserID
	used   bool
	locked bool
	muted  bool
}

type invite struct {
	id      core.InvitationID
	cmd     core.InviteCommand
	inviter domain.UserID
	invitee domain.UserID
	payload string
}

// room is the hub-side room state: seats, members, pending invitations.
// Mutex-guarded; event fan-out happens after the lock is released.
type room struct {
	mu      sync.Mutex
	info    domain.RoomInfo
	seats   []seat
	members map[domain.UserID]*Client
	order   []domain.UserID
	invites map[core.InvitationID]*invite
}

func newRoom(id domain.RoomID, owner domain.UserProfile, params domain.RoomParams) *room {
	count := params.SeatCount
	if count <= 0 {
		count = len(params.Seats)
	}
	seats := make([]seat, count)
	for i := range params.Seats {
		if i >= count {
			break
		}
		seats[i].locked = params.Seats[i].Locked
		seats[i].muted = params.Seats[i].Muted
	}
	return &room{
		info: domain.RoomInfo{
			ID:          id,
			Name:        params.Name,
			OwnerID:     owner.ID,
			OwnerName:   owner.Name,
			CoverURL:    params.CoverURL,
			NeedRequest: params.NeedRequest,
		},
		seats:   seats,
		members: make(map[domain.UserID]*Client),
		invites: make(map[core.InvitationID]*invite),
	}
}

func (r *room) infoSnapshot() domain.RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	info := r.info
	info.MemberCount = len(r.members)
	return info
}

func (r *room) seatSnapshot() []domain.SeatState {
	out := make([]domain.SeatState, len(r.seats))
	for i, s := range r.seats {
		out[i] = domain.SeatState{UserID: s.user, Used: s.used, Locked: s.locked, Muted: s.muted}
	}
	return out
}

// broadcast fans ev out to every member, optionally skipping one.
// Callers must not hold r.mu.
func (r *room) broadcast(ev core.Event, skip domain.UserID) {
	r.mu.Lock()
	targets := make([]*Client, 0, len(r.members))
	for id, m := range r.members {
		if id == skip {
			continue
		}
		targets = append(targets, m)
	}
	r.mu.Unlock()
	for _, m := range targets {
		m.push(ev)
	}
}

func (r *room) broadcastAll(ev core.Event) { r.broadcast(ev, "") }

func (r *room) broadcastRoster() {
	r.mu.Lock()
	snap := r.seatSnapshot()
	r.mu.Unlock()
	r.broadcastAll(core.SeatListChanged{Seats: snap})
}

func (r *room) broadcastInfo() {
	r.broadcastAll(core.RoomInfoChanged{Info: r.infoSnapshot()})
}

func (r *room) addMember(c *Client) {
	p := c.snapshotProfile()
	r.mu.Lock()
	if _, ok := r.members[p.ID]; !ok {
		r.members[p.ID] = c
		r.order = append(r.order, p.ID)
	}
	r.mu.Unlock()
	log.Debug().Str("module", "service.local").Str("room", string(r.info.ID)).Str("user", string(p.ID)).Msg("member joined")
}

func (r *room) removeMember(id domain.UserID) {
	r.mu.Lock()
	delete(r.members, id)
	for i, mid := range r.order {
		if mid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.mu.Unlock()
}

// seatOf returns the seat index held by id, or -1.
func (r *room) seatOf(id domain.UserID) int {
	for i, s := range r.seats {
		if s.used && s.user == id {
			return i
		}
	}
	return -1
}

// vacateLocked clears the seat held by id under r.mu and returns the index
// and occupant profile, or -1.
func (r *room) vacateLocked(id domain.UserID) (int, domain.UserProfile) {
	idx := r.seatOf(id)
	if idx < 0 {
		return -1, domain.UserProfile{}
	}
	r.seats[idx].used = false
	r.seats[idx].user = ""
	p := domain.UserProfile{ID: id}
	if m, ok := r.members[id]; ok {
		p = m.snapshotProfile()
	}
	return idx, p
}

// memberProfiles resolves ids to profiles; empty ids means everyone, in
// join order.
func (r *room) memberProfiles(ids []domain.UserID) []domain.UserProfile {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(ids) == 0 {
		out := make([]domain.UserProfile, 0, len(r.order))
		for _, id := range r.order {
			if m, ok := r.members[id]; ok {
				out = append(out, m.snapshotProfile())
			}
		}
		return out
	}
	out := make([]domain.UserProfile, 0, len(ids))
	for _, id := range ids {
		if m, ok := r.members[id]; ok {
			out = append(out, m.snapshotProfile())
		}
	}
	return out
}

func (r *room) newInvite(id core.InvitationID, cmd core.InviteCommand, inviter, invitee domain.UserID, payload string) *invite {
	if id == "" {
		id = core.InvitationID(uuid.NewString())
	}
	inv := &invite{
		id:      id,
		cmd:     cmd,
		inviter: inviter,
		invitee: invitee,
		payload: payload,
	}
	r.mu.Lock()
	r.invites[inv.id] = inv
	r.mu.Unlock()
	return inv
}

// takeInvite resolves an invitation addressed to invitee at most once.
func (r *room) takeInvite(id core.InvitationID, invitee domain.UserID) *invite {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invites[id]
	if !ok || inv.invitee != invitee {
		return nil
	}
	delete(r.invites, id)
	return inv
}

func (r *room) member(id domain.UserID) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.members[id]
}
