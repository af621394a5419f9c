package app

import (
	"testing"

	"github.com/openvoice/voiceroom/internal/core"
	"github.com/openvoice/voiceroom/internal/domain"
	"github.com/openvoice/voiceroom/internal/service/local"
)

// The full approval round trip against the in-process service: the host
// opens a room that requires requests, an audience member raises a hand
// for seat 1, the host approves, and the member ends up on the seat as an
// anchor with every piece of shared state agreeing.
func TestTakeSeatApprovalFlow(t *testing.T) {
	hub := local.NewHub()
	host := domain.UserProfile{ID: "u1", Name: "Ada"}
	guest := domain.UserProfile{ID: "u2", Name: "Grace"}

	hostEC := NewEntryControl(1, host, func() core.RoomService { return hub.Connect(host) })
	guestEC := NewEntryControl(1, guest, func() core.RoomService { return hub.Connect(guest) })
	t.Cleanup(hostEC.Shutdown)
	t.Cleanup(guestEC.Shutdown)

	info := domain.RoomInfo{ID: "42", Name: "jazz", OwnerID: host.ID, OwnerName: host.Name, NeedRequest: true}

	hostVM := hostEC.NewRoomViewModel(info, core.ViewAnchor)
	t.Cleanup(hostVM.Close)
	hostUI := &recordingResponder{}
	hostVM.SetResponder(hostUI)
	hostVM.CreateRoom(domain.AudioQualityDefault)

	waitFor(t, hostVM, "host on master seat", func() bool {
		return hostVM.masterSeat != nil && hostVM.masterSeat.Used
	})

	guestVM := guestEC.NewRoomViewModel(info, core.ViewAudience)
	t.Cleanup(guestVM.Close)
	guestUI := &recordingResponder{}
	guestVM.SetResponder(guestUI)
	guestVM.EnterRoom(domain.AudioQualityDefault)

	waitFor(t, guestVM, "guest roster snapshot", func() bool { return guestVM.seatsReady })
	waitFor(t, hostVM, "guest on host audience list", func() bool {
		_, ok := hostVM.audienceByID[guest.ID]
		return ok
	})

	// Guest raises a hand for seat 1.
	guestVM.TapSeat(1)
	var pick func(int)
	waitFor(t, guestVM, "raise-hand sheet", func() bool {
		if len(guestUI.sheets) == 0 {
			return false
		}
		pick = guestUI.sheets[0].pick
		return true
	})
	pick(0)

	waitFor(t, hostVM, "request entry in host chat", func() bool {
		for _, m := range hostVM.messages {
			if m.UserID == guest.ID && m.Kind == domain.MessageAwaitingApproval {
				return true
			}
		}
		return false
	})

	hostVM.Dispatch(func() {
		if len(hostVM.audience) != len(hostVM.audienceByID) {
			t.Errorf("audience list/map disagree: %d vs %d", len(hostVM.audience), len(hostVM.audienceByID))
		}
		for _, m := range hostVM.audience {
			if hostVM.audienceByID[m.Profile.ID] != m {
				t.Errorf("audience map entry for %s points at a different record", m.Profile.ID)
			}
		}
		if got := hostVM.audienceByID[guest.ID].Status; got != domain.AudienceAwaitingApproval {
			t.Errorf("guest status = %v, want AwaitingApproval", got)
		}
	})

	hostVM.AcceptTakeSeat(guest.ID)

	waitFor(t, guestVM, "guest seated as anchor", func() bool {
		return guestVM.viewType == core.ViewAnchor && guestVM.selfSeatIndex == 1
	})
	waitFor(t, hostVM, "request entry approved", func() bool {
		for _, m := range hostVM.messages {
			if m.UserID == guest.ID && m.Kind == domain.MessageApproved {
				return true
			}
		}
		return false
	})
	waitFor(t, hostVM, "guest status in seat", func() bool {
		m := hostVM.audienceByID[guest.ID]
		return m != nil && m.Status == domain.AudienceInSeat
	})
	waitFor(t, hostVM, "host sees guest on seat 1", func() bool {
		s := hostVM.guestSeat(1)
		return s != nil && s.Used && s.Occupant != nil && s.Occupant.ID == guest.ID
	})

	// Both sides resolved the invitation exactly once.
	hostVM.Dispatch(func() {
		if len(hostVM.pending) != 0 || len(hostVM.pendingByRequester) != 0 {
			t.Errorf("host pending maps not drained: %d/%d", len(hostVM.pending), len(hostVM.pendingByRequester))
		}
	})
	guestVM.Dispatch(func() {
		if len(guestVM.pending) != 0 {
			t.Errorf("guest pending map not drained: %d", len(guestVM.pending))
		}
	})

	// A second approval for the same user has nothing to act on.
	hostVM.AcceptTakeSeat(guest.ID)
	waitFor(t, hostVM, "expired-request toast", func() bool {
		for _, s := range hostUI.toasts {
			if s == "The request has expired" {
				return true
			}
		}
		return false
	})
}

// Host-side pick flow: the audience picker invites a member onto a seat,
// the member confirms through the alert, and the host assigns the seat.
func TestPickSeatInvitationFlow(t *testing.T) {
	hub := local.NewHub()
	host := domain.UserProfile{ID: "u1", Name: "Ada"}
	guest := domain.UserProfile{ID: "u2", Name: "Grace"}

	hostEC := NewEntryControl(1, host, func() core.RoomService { return hub.Connect(host) })
	guestEC := NewEntryControl(1, guest, func() core.RoomService { return hub.Connect(guest) })
	t.Cleanup(hostEC.Shutdown)
	t.Cleanup(guestEC.Shutdown)

	info := domain.RoomInfo{ID: "7", Name: "blues", OwnerID: host.ID, OwnerName: host.Name}

	hostVM := hostEC.NewRoomViewModel(info, core.ViewAnchor)
	t.Cleanup(hostVM.Close)
	hostUI := &recordingResponder{}
	hostVM.SetResponder(hostUI)
	hostVM.CreateRoom(domain.AudioQualityDefault)
	waitFor(t, hostVM, "host on master seat", func() bool {
		return hostVM.masterSeat != nil && hostVM.masterSeat.Used
	})

	guestVM := guestEC.NewRoomViewModel(info, core.ViewAudience)
	t.Cleanup(guestVM.Close)
	guestUI := &recordingResponder{}
	guestVM.SetResponder(guestUI)
	guestVM.EnterRoom(domain.AudioQualityDefault)
	waitFor(t, guestVM, "guest roster snapshot", func() bool { return guestVM.seatsReady })
	waitFor(t, hostVM, "guest on host audience list", func() bool {
		_, ok := hostVM.audienceByID[guest.ID]
		return ok
	})

	// Host taps the empty seat 2 and opens the picker.
	hostVM.TapSeat(2)
	var sheetPick func(int)
	waitFor(t, hostVM, "invite/lock sheet", func() bool {
		if len(hostUI.sheets) == 0 {
			return false
		}
		sheetPick = hostUI.sheets[0].pick
		return true
	})
	sheetPick(0)

	var invite func(int)
	waitFor(t, hostVM, "audience picker open", func() bool {
		if len(hostUI.audLists) == 0 || !hostUI.audLists[0] {
			return false
		}
		invite = hostVM.audienceByID[guest.ID].OnSelect
		return true
	})
	invite(0)

	var okFn func()
	waitFor(t, guestVM, "invitation alert", func() bool {
		if len(guestUI.alerts) == 0 {
			return false
		}
		okFn = guestUI.alerts[0].ok
		return true
	})
	okFn()

	waitFor(t, guestVM, "guest placed on seat 2", func() bool {
		return guestVM.viewType == core.ViewAnchor && guestVM.selfSeatIndex == 2
	})
	waitFor(t, hostVM, "host sees guest on seat 2", func() bool {
		s := hostVM.guestSeat(2)
		return s != nil && s.Used && s.Occupant != nil && s.Occupant.ID == guest.ID
	})
}

// A room torn down by its owner pops every audience member back out.
func TestRoomDestroyedPopsAudience(t *testing.T) {
	hub := local.NewHub()
	host := domain.UserProfile{ID: "u1", Name: "Ada"}
	guest := domain.UserProfile{ID: "u2", Name: "Grace"}

	hostEC := NewEntryControl(1, host, func() core.RoomService { return hub.Connect(host) })
	guestEC := NewEntryControl(1, guest, func() core.RoomService { return hub.Connect(guest) })
	t.Cleanup(hostEC.Shutdown)
	t.Cleanup(guestEC.Shutdown)

	info := domain.RoomInfo{ID: "9", Name: "fin", OwnerID: host.ID, OwnerName: host.Name}

	hostVM := hostEC.NewRoomViewModel(info, core.ViewAnchor)
	t.Cleanup(hostVM.Close)
	hostVM.SetResponder(&recordingResponder{})
	hostVM.CreateRoom(domain.AudioQualityDefault)
	waitFor(t, hostVM, "host on master seat", func() bool {
		return hostVM.masterSeat != nil && hostVM.masterSeat.Used
	})

	guestVM := guestEC.NewRoomViewModel(info, core.ViewAudience)
	t.Cleanup(guestVM.Close)
	guestUI := &recordingResponder{}
	guestVM.SetResponder(guestUI)
	guestVM.EnterRoom(domain.AudioQualityDefault)
	waitFor(t, guestVM, "guest roster snapshot", func() bool { return guestVM.seatsReady })

	hostVM.ExitRoom()

	waitFor(t, guestVM, "guest popped back", func() bool { return guestUI.popBacks == 1 })
}
