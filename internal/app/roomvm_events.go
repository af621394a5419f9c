package app

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/openvoice/voiceroom/internal/core"
	"github.com/openvoice/voiceroom/internal/domain"
)

// onEvent is the single entry point for pushed room events. It funnels
// every event onto the loop and fans out by kind.
func (vm *RoomViewModel) onEvent(ev core.Event) {
	vm.loop.Post(func() {
		switch e := ev.(type) {
		case core.RoomDestroyed:
			vm.onRoomDestroyed()
		case core.RoomInfoChanged:
			vm.onRoomInfoChanged(e.Info)
		case core.SeatListChanged:
			vm.onSeatListChanged(e.Seats)
		case core.AnchorEnteredSeat:
			vm.onAnchorEnteredSeat(e.Index, e.User)
		case core.AnchorLeftSeat:
			vm.onAnchorLeftSeat(e.Index, e.User)
		case core.SeatMuteChanged:
			vm.onSeatMuteChanged(e.Index, e.Muted)
		case core.SeatLockChanged:
			vm.onSeatLockChanged(e.Index, e.Locked)
		case core.AudienceEntered:
			vm.onAudienceEntered(e.User)
		case core.AudienceLeft:
			vm.onAudienceLeft(e.User)
		case core.VolumeUpdate:
			vm.onVolumeUpdate(e.Samples)
		case core.TextMessage:
			vm.onTextMessage(e.Text, e.User)
		case core.InvitationReceived:
			vm.onInvitationReceived(e.ID, e.Inviter, e.Cmd, e.Payload)
		case core.InviteeAccepted:
			vm.onInviteeAccepted(e.ID, e.Invitee)
		case core.InviteeRejected:
			vm.onInviteeRejected(e.ID)
		case core.InvitationCancelled:
			// Reserved; the service never retracts invitations today.
		}
	})
}

func (vm *RoomViewModel) onRoomDestroyed() {
	vm.view().ShowToast("The host has closed the room")
	vm.svc.ExitRoom(nil)
	vm.view().PopBack()
}

func (vm *RoomViewModel) onRoomInfoChanged(info domain.RoomInfo) {
	if info.MemberCount == domain.MemberCountUnknown {
		info.MemberCount = vm.roomInfo.MemberCount
	}
	vm.roomInfo = info
	vm.view().SetRoomTitle(fmt.Sprintf("%s(%s)", info.Name, info.ID))
}

// onSeatListChanged reconciles a full roster snapshot. The first delivery
// seeds the guest list; later ones update flags in place, keeping each
// seat's resolved occupant unless the server now reports it empty. Profiles
// are then re-resolved in one batched lookup.
func (vm *RoomViewModel) onSeatListChanged(seats []domain.SeatState) {
	vm.seatsReady = true
	seeded := len(vm.guestSeats) == len(seats)-1
	for i, st := range seats {
		seat := Seat{
			Index:  i,
			Used:   st.Used,
			Locked: st.Locked,
			Muted:  st.Muted,
		}
		if i == domain.MasterSeatIndex {
			if vm.masterSeat != nil {
				seat.Occupant = vm.masterSeat.Occupant
			}
			vm.masterSeat = &seat
			continue
		}
		li := i - 1
		if seeded {
			seat.Occupant = vm.guestSeats[li].Occupant
			if !seat.Used {
				seat.Occupant = nil
			}
			vm.guestSeats[li] = seat
		} else {
			vm.guestSeats = append(vm.guestSeats, seat)
		}
	}

	ids := make([]domain.UserID, 0, len(seats))
	for _, st := range seats {
		if st.UserID != "" {
			ids = append(ids, st.UserID)
		}
	}
	vm.svc.FetchUsers(ids, func(code int, msg string, users []domain.UserProfile) {
		vm.post(func() { vm.applySeatProfiles(seats, code, users) })
	})
}

func (vm *RoomViewModel) applySeatProfiles(seats []domain.SeatState, code int, users []domain.UserProfile) {
	if code != core.CodeOK || len(seats) == 0 {
		return
	}
	byID := make(map[domain.UserID]*domain.UserProfile, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	if vm.masterSeat != nil {
		vm.masterSeat.Occupant = byID[seats[domain.MasterSeatIndex].UserID]
	}
	if len(vm.guestSeats) != len(seats)-1 {
		log.Warn().Str("module", "app.roomvm").
			Int("guest_seats", len(vm.guestSeats)).
			Int("reported", len(seats)).
			Msg("seat roster length mismatch, skipping profile refresh")
		return
	}
	for i := range vm.guestSeats {
		vm.guestSeats[i].Occupant = byID[seats[i+1].UserID]
	}
	vm.view().RefreshSeats()
}

func (vm *RoomViewModel) onAnchorEnteredSeat(index int, user domain.UserProfile) {
	if index == domain.MasterSeatIndex {
		// The owner taking the master seat is not newsworthy.
		return
	}
	vm.notice(fmt.Sprintf("%s took the #%d spot", user.Name, index))
	if user.ID == vm.deps.UserID() {
		vm.viewType = core.ViewAnchor
		vm.roleChange()
		vm.selfSeatIndex = index
		vm.view().RestoreAudioSettings()
	}
	vm.changeAudienceStatus(user.ID, domain.AudienceInSeat)
}

func (vm *RoomViewModel) onAnchorLeftSeat(index int, user domain.UserProfile) {
	if index == domain.MasterSeatIndex {
		return
	}
	vm.notice(fmt.Sprintf("%s leaves the #%d seat", user.Name, index))
	if user.ID == vm.deps.UserID() {
		vm.viewType = core.ViewAudience
		vm.roleChange()
		vm.selfSeatIndex = noSeat
		vm.view().StopBackgroundMusic()
	}
	vm.changeAudienceStatus(user.ID, domain.AudienceIdle)
}

func (vm *RoomViewModel) onSeatMuteChanged(index int, muted bool) {
	if muted {
		vm.notice(fmt.Sprintf("Seat #%d is muted", index))
	} else {
		vm.notice(fmt.Sprintf("Seat #%d is unmuted", index))
	}
	if vm.selfSeatIndex == index {
		vm.ownerMuted = muted
		vm.view().OnSeatMute(muted)
	}
}

func (vm *RoomViewModel) onSeatLockChanged(index int, locked bool) {
	if locked {
		vm.notice(fmt.Sprintf("Host locked seat #%d", index))
	} else {
		vm.notice(fmt.Sprintf("Host unlocked seat #%d", index))
	}
}

func (vm *RoomViewModel) onAudienceEntered(user domain.UserProfile) {
	vm.notice(fmt.Sprintf("%s entered the room", user.Name))
	if vm.viewType != core.ViewAnchor || !vm.isOwner() {
		return
	}
	if _, ok := vm.audienceByID[user.ID]; ok {
		return
	}
	vm.addAudienceMember(user)
	vm.view().RefreshAudience()
}

func (vm *RoomViewModel) onAudienceLeft(user domain.UserProfile) {
	vm.notice(fmt.Sprintf("%s left the room", user.Name))
	if vm.viewType != core.ViewAnchor || !vm.isOwner() {
		return
	}
	if _, ok := vm.audienceByID[user.ID]; !ok {
		return
	}
	delete(vm.audienceByID, user.ID)
	for i, m := range vm.audience {
		if m.Profile.ID == user.ID {
			vm.audience = append(vm.audience[:i], vm.audience[i+1:]...)
			break
		}
	}
	vm.view().RefreshAudience()
}

// onVolumeUpdate marks seats talking above the threshold. A sample without
// a user id belongs to the local caller. The view refreshes only when some
// talking flag actually flipped.
func (vm *RoomViewModel) onVolumeUpdate(samples []core.VolumeSample) {
	levels := make(map[domain.UserID]int, len(samples))
	for _, s := range samples {
		id := s.UserID
		if id == "" {
			id = vm.deps.UserID()
		}
		levels[id] = s.Volume
	}
	changed := false
	if vm.masterSeat != nil && vm.masterSeat.Occupant != nil {
		talking := levels[vm.masterSeat.Occupant.ID] > talkingThreshold
		if vm.masterSeat.Talking != talking {
			vm.masterSeat.Talking = talking
			changed = true
		}
	}
	for i := range vm.guestSeats {
		occ := vm.guestSeats[i].Occupant
		if occ == nil {
			continue
		}
		talking := levels[occ.ID] > talkingThreshold
		if vm.guestSeats[i].Talking != talking {
			vm.guestSeats[i].Talking = talking
			changed = true
		}
	}
	if changed {
		vm.view().RefreshSeats()
	}
}

func (vm *RoomViewModel) onTextMessage(text string, user domain.UserProfile) {
	vm.postMessage(domain.Message{
		UserID:   user.ID,
		UserName: user.Name,
		Content:  text,
		Kind:     domain.MessageNormal,
	})
}

func (vm *RoomViewModel) onInvitationReceived(id core.InvitationID, inviter domain.UserID, cmd core.InviteCommand, payload string) {
	log.Debug().Str("module", "app.roomvm").Str("cmd", string(cmd)).Str("payload", payload).Msg("invitation received")
	switch {
	case vm.viewType == core.ViewAudience && cmd == core.CmdPickSeat:
		vm.recvPickSeat(id, payload)
	case vm.viewType == core.ViewAnchor && vm.isOwner() && cmd == core.CmdTakeSeat:
		vm.recvTakeSeat(id, inviter, payload)
	}
}

// recvPickSeat prompts the audience member picked for a seat by the owner.
func (vm *RoomViewModel) recvPickSeat(id core.InvitationID, payload string) {
	index, err := strconv.Atoi(payload)
	if err != nil {
		return
	}
	vm.view().ShowAlert("Reminder", fmt.Sprintf("The host invites you to take seat #%d", index), func() {
		vm.svc.AcceptInvitation(id, func(code int, msg string) {
			vm.post(func() {
				if code != core.CodeOK {
					vm.view().ShowToast("Failed to accept request")
				}
			})
		})
	}, func() {
		vm.svc.RejectInvitation(id, func(code int, msg string) {
			vm.post(func() {
				vm.view().ShowToast("You have rejected the invitation")
			})
		})
	})
}

// recvTakeSeat records an audience member's request-to-speak: pending
// invitation, a chat entry awaiting approval, and the roster status.
func (vm *RoomViewModel) recvTakeSeat(id core.InvitationID, inviter domain.UserID, payload string) {
	// A newer request supersedes any entry still shown as waiting.
	for i := range vm.messages {
		if vm.messages[i].UserID == inviter && vm.messages[i].Kind == domain.MessageAwaitingApproval {
			vm.messages[i].Kind = domain.MessageApproved
			break
		}
	}
	index, _ := strconv.Atoi(payload)
	name := string(inviter)
	if m, ok := vm.audienceByID[inviter]; ok {
		name = m.Profile.Name
	}
	vm.appendMessage(domain.Message{
		UserID:   inviter,
		UserName: name,
		Content:  fmt.Sprintf("Applies for seat #%d", index),
		InviteID: string(id),
		Kind:     domain.MessageAwaitingApproval,
	})
	vm.changeAudienceStatus(inviter, domain.AudienceAwaitingApproval)
	vm.pending[id] = &pendingInvite{flavor: inviteTakeRequest, seatIndex: index, user: inviter}
	vm.pendingByRequester[inviter] = id
}

// onInviteeAccepted resolves a pending invitation; the follow-up seat
// assignment only fires while the target seat is still free.
func (vm *RoomViewModel) onInviteeAccepted(id core.InvitationID, invitee domain.UserID) {
	p := vm.resolveInvite(id)
	if p == nil {
		return
	}
	switch p.flavor {
	case inviteSelfRequest:
		if vm.viewType != core.ViewAudience {
			return
		}
		seat := vm.guestSeat(p.seatIndex)
		if seat == nil || seat.Used {
			return
		}
		vm.svc.EnterSeat(p.seatIndex, func(code int, msg string) {
			vm.post(func() {
				if code == core.CodeOK {
					vm.view().ShowToast("Success")
				} else {
					vm.view().ShowToast("Failed")
				}
			})
		})
	case invitePick:
		if vm.viewType != core.ViewAnchor || !vm.isOwner() {
			return
		}
		seat := vm.guestSeat(p.seatIndex)
		if seat == nil || seat.Used {
			return
		}
		vm.svc.PickSeat(p.seatIndex, p.user, func(code int, msg string) {
			vm.post(func() {
				if code == core.CodeOK {
					vm.view().ShowToast(fmt.Sprintf("Invitee %s is now on the seat", invitee))
				}
			})
		})
	}
}

func (vm *RoomViewModel) onInviteeRejected(id core.InvitationID) {
	p := vm.resolveInvite(id)
	if p == nil {
		return
	}
	switch p.flavor {
	case invitePick:
		m, ok := vm.audienceByID[p.user]
		if !ok {
			return
		}
		vm.view().ShowToast(fmt.Sprintf("%s refuses to speak", m.Profile.Name))
		vm.changeAudienceStatus(p.user, domain.AudienceIdle)
	case inviteSelfRequest:
		vm.view().ShowToast("Your seat request was declined")
	}
}

func (vm *RoomViewModel) guestSeat(index int) *Seat {
	for i := range vm.guestSeats {
		if vm.guestSeats[i].Index == index {
			return &vm.guestSeats[i]
		}
	}
	return nil
}

// changeAudienceStatus updates the roster status on the owner's side; both
// the lookup map and the ordered list point at the same record.
func (vm *RoomViewModel) changeAudienceStatus(user domain.UserID, status domain.AudienceStatus) {
	if !vm.isOwner() || vm.viewType != core.ViewAnchor {
		return
	}
	m, ok := vm.audienceByID[user]
	if !ok || m.Status == status {
		return
	}
	m.Status = status
	vm.view().RefreshAudience()
}
