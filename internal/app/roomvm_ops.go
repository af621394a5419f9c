package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/openvoice/voiceroom/internal/core"
	"github.com/openvoice/voiceroom/internal/domain"
)

// ExitRoom leaves the room; the owner in anchor role also tears the room
// down. Idempotent: a second call while an exit is in flight is a no-op.
func (vm *RoomViewModel) ExitRoom() {
	vm.loop.Post(vm.exitRoom)
}

func (vm *RoomViewModel) exitRoom() {
	if vm.exiting {
		return
	}
	vm.view().PopBack()
	vm.exiting = true
	if vm.isOwner() && vm.viewType == core.ViewAnchor {
		// Best-effort teardown; failure is logged, never surfaced.
		vm.svc.DestroyRoom(func(code int, msg string) {
			if code != core.CodeOK {
				log.Warn().Str("module", "app.roomvm").Int("code", code).Str("msg", msg).Msg("destroy room failed")
			}
		})
	}
	vm.svc.ExitRoom(func(code int, msg string) {
		vm.post(func() { vm.exiting = false })
	})
}

// EnterRoom joins an existing room as audience and applies the requested
// audio-quality preset on success.
func (vm *RoomViewModel) EnterRoom(quality domain.AudioQuality) {
	vm.loop.Post(func() {
		vm.svc.EnterRoom(vm.roomInfo.ID, func(code int, msg string) {
			vm.post(func() {
				if code == core.CodeOK {
					vm.view().ShowToast("Successfully enter the room")
					vm.svc.SetAudioQuality(quality)
				} else {
					vm.view().ShowToast("Failed to enter the room")
					vm.view().PopBack()
				}
			})
		})
	})
}

// CreateRoom publishes the caller's profile and allocates the room. A
// "room already exists" code counts as success. On success the owner takes
// the master seat and fetches the audience roster.
func (vm *RoomViewModel) CreateRoom(quality domain.AudioQuality) {
	vm.loop.Post(func() {
		coverURL := vm.roomInfo.CoverURL
		if !strings.HasPrefix(coverURL, "http") {
			coverURL = vm.deps.SelfProfile().AvatarURL
		}
		vm.svc.SetAudioQuality(quality)
		vm.svc.SetSelfProfile(vm.roomInfo.OwnerName, coverURL, func(code int, msg string) {
			log.Debug().Str("module", "app.roomvm").Int("code", code).Str("msg", msg).Msg("set self profile")
			vm.post(func() { vm.allocateRoom(coverURL) })
		})
	})
}

func (vm *RoomViewModel) allocateRoom(coverURL string) {
	params := domain.RoomParams{
		Name:        vm.roomInfo.Name,
		NeedRequest: vm.roomInfo.NeedRequest,
		SeatCount:   RoomSeatCount,
		CoverURL:    coverURL,
		Seats:       make([]domain.SeatState, RoomSeatCount),
	}
	vm.svc.CreateRoom(vm.roomInfo.ID, params, func(code int, msg string) {
		vm.post(func() {
			// The id being taken already means the room is ours to enter.
			if code == core.CodeOK || code == core.CodeRoomExists {
				vm.view().SetRoomTitle(fmt.Sprintf("%s(%s)", vm.roomInfo.Name, vm.roomInfo.ID))
				vm.takeMasterSeat()
				vm.fetchAudienceList()
				return
			}
			vm.view().ShowToast("Failed to create the room")
			time.AfterFunc(vm.popDelay, func() {
				vm.post(func() { vm.view().PopBack() })
			})
		})
	})
}

func (vm *RoomViewModel) takeMasterSeat() {
	vm.svc.EnterSeat(domain.MasterSeatIndex, func(code int, msg string) {
		vm.post(func() {
			if code == core.CodeOK {
				vm.view().ShowToast("The host succeeded in occupying the seat")
			} else {
				vm.view().ShowToast("The host failed to occupy the seat")
			}
		})
	})
}

func (vm *RoomViewModel) fetchAudienceList() {
	vm.svc.FetchUsers(nil, func(code int, msg string, users []domain.UserProfile) {
		vm.post(func() {
			if code != core.CodeOK {
				return
			}
			vm.audience = vm.audience[:0]
			vm.audienceByID = make(map[domain.UserID]*AudienceMember)
			for _, u := range users {
				vm.addAudienceMember(u)
			}
			vm.view().RefreshAudience()
		})
	})
}

// addAudienceMember registers u with its two-choice picker action. Caller
// refreshes the view.
func (vm *RoomViewModel) addAudienceMember(u domain.UserProfile) *AudienceMember {
	m := &AudienceMember{Profile: u, Status: domain.AudienceIdle}
	m.OnSelect = func(choice int) {
		vm.post(func() {
			if choice == 0 {
				vm.sendPickInvitation(u)
			} else {
				vm.acceptTakeSeatRequest(u.ID)
				vm.view().ShowAudienceList(false)
			}
		})
	}
	vm.audience = append(vm.audience, m)
	vm.audienceByID[u.ID] = m
	return m
}

// RefreshView re-asserts the role-specific view after the host view
// re-attaches.
func (vm *RoomViewModel) RefreshView() {
	vm.loop.Post(vm.roleChange)
}

// OpenMessageInput reveals the chat input.
func (vm *RoomViewModel) OpenMessageInput() {
	vm.loop.Post(func() { vm.view().ShowMessageInput(true) })
}

// OpenAudioEffectMenu opens the sound-effect panel. Anchor only.
func (vm *RoomViewModel) OpenAudioEffectMenu() {
	vm.loop.Post(func() {
		if !vm.checkControlPermission() {
			return
		}
		vm.view().ShowAudioEffectPanel()
	})
}

// MuteSelf toggles local audio. Refused while the owner holds a forced
// mute on our seat.
func (vm *RoomViewModel) MuteSelf(mute bool) {
	vm.loop.Post(func() {
		if !vm.checkControlPermission() {
			return
		}
		if vm.ownerMuted {
			vm.view().ShowToast("Has been muted by the owner")
			return
		}
		vm.selfMute = mute
		vm.svc.MuteLocalAudio(mute)
		if mute {
			vm.view().StopBackgroundMusic()
			vm.view().ShowToast("Muted")
		} else {
			vm.view().RestoreAudioSettings()
			vm.view().ShowToast("Unmuted")
		}
	})
}

// MuteAllRemote toggles playback of everyone else. No local state beyond
// the notification.
func (vm *RoomViewModel) MuteAllRemote(mute bool) {
	vm.loop.Post(func() {
		if !vm.checkControlPermission() {
			return
		}
		vm.svc.MuteAllRemoteAudio(mute)
		if mute {
			vm.view().ShowToast("Muted")
		} else {
			vm.view().ShowToast("Unmuted")
		}
	})
}

// SendText echoes msg into the local chat log and forwards it to the room.
// The echo is not retracted if forwarding fails.
func (vm *RoomViewModel) SendText(msg string) {
	if msg == "" {
		return
	}
	vm.loop.Post(func() {
		vm.postMessage(domain.Message{
			UserID:   vm.deps.UserID(),
			UserName: "me",
			Content:  msg,
			Kind:     domain.MessageNormal,
		})
		vm.svc.SendMessage(msg, func(code int, msg string) {
			vm.post(func() {
				if code == core.CodeOK {
					vm.view().ShowToast("Send successfully")
				} else {
					vm.view().ShowToast("failed to send:" + msg)
				}
			})
		})
	})
}

// AcceptTakeSeat approves the pending request-to-speak from the given
// audience member. Owner side.
func (vm *RoomViewModel) AcceptTakeSeat(user domain.UserID) {
	vm.loop.Post(func() {
		if _, ok := vm.audienceByID[user]; ok {
			vm.acceptTakeSeatRequest(user)
		}
	})
}
