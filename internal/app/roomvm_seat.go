package app

import (
	"fmt"
	"strconv"

	"github.com/openvoice/voiceroom/internal/core"
	"github.com/openvoice/voiceroom/internal/domain"
)

// TapSeat dispatches a tap on guest seat index (1..N) to the audience- or
// owner-perspective handler.
func (vm *RoomViewModel) TapSeat(index int) {
	vm.loop.Post(func() {
		if !vm.seatsReady {
			vm.view().ShowToast("The list has not been initialized yet")
			return
		}
		if index <= 0 || index > len(vm.guestSeats) {
			return
		}
		seat := &vm.guestSeats[index-1]
		if vm.viewType == core.ViewAudience || !vm.isOwner() {
			vm.audienceTapSeat(seat)
		} else {
			vm.anchorTapSeat(seat)
		}
	})
}

func (vm *RoomViewModel) audienceTapSeat(seat *Seat) {
	if seat.Locked {
		vm.view().ShowToast("The seat has been locked and cannot be applied for")
		return
	}
	if seat.Used {
		if seat.Occupant != nil && seat.Occupant.ID == vm.deps.UserID() {
			vm.view().ShowActionSheet([]string{"Quit"}, func(int) {
				vm.post(vm.leaveSeat)
			})
			return
		}
		name := "Other speakers"
		if seat.Occupant != nil {
			name = seat.Occupant.Name
		}
		vm.view().ShowToast(name)
		return
	}
	if vm.selfSeatIndex != noSeat {
		vm.view().ShowToast(fmt.Sprintf("You've taken the #%d spot", vm.selfSeatIndex))
		return
	}
	if seat.Index == noSeat {
		vm.view().ShowToast("The list has not been initialized, and it is temporarily unable to apply for speaking")
		return
	}
	index := seat.Index
	vm.view().ShowActionSheet([]string{"Raise hand"}, func(int) {
		vm.post(func() { vm.requestSeat(index) })
	})
}

func (vm *RoomViewModel) anchorTapSeat(seat *Seat) {
	if seat.Used {
		muted := seat.Muted
		index := seat.Index
		label := "Mute him/her"
		if muted {
			label = "Unmute him/her"
		}
		vm.view().ShowActionSheet([]string{label, "Ask him/her to leave"}, func(choice int) {
			if choice == 0 {
				vm.svc.MuteSeat(index, !muted, nil)
			} else {
				vm.svc.KickSeat(index, nil)
			}
		})
		return
	}
	if !seat.Locked {
		index := seat.Index
		vm.view().ShowActionSheet([]string{"Invite him/her", "Lock the seat"}, func(choice int) {
			if choice == 0 {
				vm.post(func() { vm.openAudiencePicker(index) })
			} else {
				vm.svc.LockSeat(index, true, nil)
			}
		})
		return
	}
	index := seat.Index
	vm.view().ShowActionSheet([]string{"Unlock the seat"}, func(int) {
		vm.svc.LockSeat(index, false, nil)
	})
}

// openAudiencePicker remembers the target seat and shows the picker.
func (vm *RoomViewModel) openAudiencePicker(index int) {
	vm.view().ShowAudienceList(true)
	vm.inviteSeatIndex = index
}

func (vm *RoomViewModel) leaveSeat() {
	vm.svc.LeaveSeat(func(code int, msg string) {
		vm.post(func() {
			if code == core.CodeOK {
				vm.view().ShowToast("Leave seat successfully")
			} else {
				vm.view().ShowToast("Failed to leave seat: " + msg)
			}
		})
	})
}

// requestSeat starts the audience take-seat flow: a request-to-speak when
// the room wants approval, a direct enter otherwise.
func (vm *RoomViewModel) requestSeat(index int) {
	if vm.viewType == core.ViewAnchor {
		vm.view().ShowToast("You are the host")
		return
	}
	if !vm.roomInfo.NeedRequest {
		vm.svc.EnterSeat(index, func(code int, msg string) {
			vm.post(func() {
				if code == core.CodeOK {
					vm.view().ShowToast("Success")
				} else {
					vm.view().ShowToast("Failed")
				}
			})
		})
		return
	}
	if vm.roomInfo.OwnerID == "" {
		vm.view().ShowToast("The room is not ready")
		return
	}
	id := vm.svc.SendInvitation(core.CmdTakeSeat, vm.roomInfo.OwnerID, strconv.Itoa(index), func(code int, msg string) {
		vm.post(func() {
			if code == core.CodeOK {
				vm.view().ShowToast("Sent successfully")
			} else {
				vm.view().ShowToast("Sent failed: " + msg)
			}
		})
	})
	vm.pending[id] = &pendingInvite{flavor: inviteSelfRequest, seatIndex: index, user: vm.deps.UserID()}
}

// sendPickInvitation invites user onto the seat remembered by the picker.
// Refused if that seat filled up in the meantime.
func (vm *RoomViewModel) sendPickInvitation(user domain.UserProfile) {
	if vm.inviteSeatIndex == noSeat {
		return
	}
	seat := &vm.guestSeats[vm.inviteSeatIndex-1]
	if seat.Used {
		vm.view().ShowToast("The seat is occupied")
		return
	}
	index := vm.inviteSeatIndex
	id := vm.svc.SendInvitation(core.CmdPickSeat, user.ID, strconv.Itoa(index), func(code int, msg string) {
		vm.post(func() {
			if code == core.CodeOK {
				vm.view().ShowToast("Invitation sent successfully")
			}
		})
	})
	vm.pending[id] = &pendingInvite{flavor: invitePick, seatIndex: index, user: user.ID}
	vm.view().ShowAudienceList(false)
}

// acceptTakeSeatRequest approves a pending request-to-speak. On success the
// linked chat entry flips to approved.
func (vm *RoomViewModel) acceptTakeSeatRequest(user domain.UserID) {
	id, ok := vm.pendingByRequester[user]
	if !ok {
		vm.view().ShowToast("The request has expired")
		return
	}
	vm.svc.AcceptInvitation(id, func(code int, msg string) {
		vm.post(func() {
			if code != core.CodeOK {
				vm.view().ShowToast("Failed to accept request")
				return
			}
			vm.resolveInvite(id)
			for i := range vm.messages {
				if vm.messages[i].InviteID == string(id) {
					vm.messages[i].Kind = domain.MessageApproved
					vm.view().RefreshChat()
					break
				}
			}
		})
	})
}

// resolveInvite removes a pending invitation from every index. Safe to call
// for an already-resolved id.
func (vm *RoomViewModel) resolveInvite(id core.InvitationID) *pendingInvite {
	p, ok := vm.pending[id]
	if !ok {
		return nil
	}
	delete(vm.pending, id)
	if cur, ok := vm.pendingByRequester[p.user]; ok && cur == id {
		delete(vm.pendingByRequester, p.user)
	}
	return p
}
