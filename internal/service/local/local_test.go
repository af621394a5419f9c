package local

import (
	"testing"
	"time"

	"github.com/openvoice/voiceroom/internal/core"
	"github.com/openvoice/voiceroom/internal/domain"
)

func call(f func(cb core.Callback)) (int, string) {
	var code int
	var msg string
	f(func(c int, m string) { code, msg = c, m })
	return code, msg
}

type sink struct {
	ch chan core.Event
}

func newSink(c *Client) *sink {
	s := &sink{ch: make(chan core.Event, 64)}
	c.SetListener(func(ev core.Event) { s.ch <- ev })
	return s
}

func (s *sink) wait(t *testing.T, what string, match func(core.Event) bool) core.Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-s.ch:
			if match(ev) {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", what)
		}
	}
}

func makeRoom(t *testing.T, owner *Client, id domain.RoomID) {
	t.Helper()
	code, msg := call(func(cb core.Callback) {
		owner.CreateRoom(id, domain.RoomParams{Name: "jazz", SeatCount: 4}, cb)
	})
	if code != core.CodeOK {
		t.Fatalf("CreateRoom: code %d, msg %q", code, msg)
	}
}

func TestCreateRoomDuplicateID(t *testing.T) {
	hub := NewHub()
	c1 := hub.Connect(domain.UserProfile{ID: "u1", Name: "Ada"})
	c2 := hub.Connect(domain.UserProfile{ID: "u2", Name: "Grace"})
	defer c1.Close()
	defer c2.Close()

	makeRoom(t, c1, "r1")

	code, _ := call(func(cb core.Callback) {
		c2.CreateRoom("r1", domain.RoomParams{SeatCount: 4}, cb)
	})
	if code != core.CodeRoomExists {
		t.Fatalf("duplicate CreateRoom: code %d, want %d", code, core.CodeRoomExists)
	}

	if got := len(hub.List()); got != 1 {
		t.Fatalf("directory lists %d rooms, want 1", got)
	}
}

func TestInvitationResolvedAtMostOnce(t *testing.T) {
	hub := NewHub()
	owner := hub.Connect(domain.UserProfile{ID: "u1", Name: "Ada"})
	guest := hub.Connect(domain.UserProfile{ID: "u2", Name: "Grace"})
	defer owner.Close()
	defer guest.Close()

	makeRoom(t, owner, "r1")
	if code, _ := call(func(cb core.Callback) { guest.EnterRoom("r1", cb) }); code != core.CodeOK {
		t.Fatal("guest could not enter")
	}

	ownerEvents := newSink(owner)
	guestEvents := newSink(guest)

	var id core.InvitationID
	code, _ := call(func(cb core.Callback) {
		id = guest.SendInvitation(core.CmdTakeSeat, "u1", "1", cb)
	})
	if code != core.CodeOK || id == "" {
		t.Fatalf("SendInvitation: code %d, id %q", code, id)
	}
	ownerEvents.wait(t, "invitation delivery", func(ev core.Event) bool {
		r, ok := ev.(core.InvitationReceived)
		return ok && r.ID == id && r.Cmd == core.CmdTakeSeat
	})

	// The invitee is the owner; the sender cannot resolve its own invitation.
	if code, _ := call(func(cb core.Callback) { guest.AcceptInvitation(id, cb) }); code == core.CodeOK {
		t.Fatal("sender resolved an invitation addressed to the owner")
	}

	if code, _ := call(func(cb core.Callback) { owner.AcceptInvitation(id, cb) }); code != core.CodeOK {
		t.Fatal("owner could not accept the invitation")
	}
	guestEvents.wait(t, "acceptance delivery", func(ev core.Event) bool {
		a, ok := ev.(core.InviteeAccepted)
		return ok && a.ID == id
	})

	// Second resolution of the same id fails.
	if code, _ := call(func(cb core.Callback) { owner.RejectInvitation(id, cb) }); code != codeInviteUnknown {
		t.Fatalf("second resolution: code %d, want %d", code, codeInviteUnknown)
	}
}

func TestSeatLifecycle(t *testing.T) {
	hub := NewHub()
	owner := hub.Connect(domain.UserProfile{ID: "u1", Name: "Ada"})
	guest := hub.Connect(domain.UserProfile{ID: "u2", Name: "Grace"})
	defer owner.Close()
	defer guest.Close()

	makeRoom(t, owner, "r1")
	call(func(cb core.Callback) { guest.EnterRoom("r1", cb) })

	if code, _ := call(func(cb core.Callback) { guest.EnterSeat(0, cb) }); code != codeNotPermitted {
		t.Fatalf("guest on master seat: code %d, want %d", code, codeNotPermitted)
	}
	if code, _ := call(func(cb core.Callback) { owner.EnterSeat(0, cb) }); code != core.CodeOK {
		t.Fatal("owner could not take the master seat")
	}

	if code, _ := call(func(cb core.Callback) { guest.EnterSeat(1, cb) }); code != core.CodeOK {
		t.Fatal("guest could not take seat 1")
	}
	if code, _ := call(func(cb core.Callback) { owner.LockSeat(1, true, cb) }); code != codeSeatTaken {
		t.Fatalf("locking an occupied seat: code %d, want %d", code, codeSeatTaken)
	}

	// Moving seats vacates the previous one.
	guestEvents := newSink(guest)
	if code, _ := call(func(cb core.Callback) { guest.EnterSeat(2, cb) }); code != core.CodeOK {
		t.Fatal("guest could not move to seat 2")
	}
	guestEvents.wait(t, "leave of the previous seat", func(ev core.Event) bool {
		l, ok := ev.(core.AnchorLeftSeat)
		return ok && l.Index == 1 && l.User.ID == "u2"
	})

	if code, _ := call(func(cb core.Callback) { guest.KickSeat(2, cb) }); code != codeNotPermitted {
		t.Fatal("non-owner kicked a seat")
	}
	if code, _ := call(func(cb core.Callback) { owner.KickSeat(2, cb) }); code != core.CodeOK {
		t.Fatal("owner could not kick seat 2")
	}
	guestEvents.wait(t, "kick notification", func(ev core.Event) bool {
		l, ok := ev.(core.AnchorLeftSeat)
		return ok && l.Index == 2
	})

	if code, _ := call(func(cb core.Callback) { owner.PickSeat(3, "u2", cb) }); code != core.CodeOK {
		t.Fatal("owner could not pick the guest onto seat 3")
	}
	guestEvents.wait(t, "pick placement", func(ev core.Event) bool {
		e, ok := ev.(core.AnchorEnteredSeat)
		return ok && e.Index == 3 && e.User.ID == "u2"
	})
}

func TestVolumeSelfSampleAnonymous(t *testing.T) {
	hub := NewHub()
	owner := hub.Connect(domain.UserProfile{ID: "u1", Name: "Ada"})
	guest := hub.Connect(domain.UserProfile{ID: "u2", Name: "Grace"})
	defer owner.Close()
	defer guest.Close()

	makeRoom(t, owner, "r1")
	call(func(cb core.Callback) { guest.EnterRoom("r1", cb) })

	ownerEvents := newSink(owner)
	guestEvents := newSink(guest)

	guest.SubmitVolume(42)

	ev := ownerEvents.wait(t, "remote volume sample", func(ev core.Event) bool {
		_, ok := ev.(core.VolumeUpdate)
		return ok
	})
	if s := ev.(core.VolumeUpdate).Samples[0]; s.UserID != "u2" || s.Volume != 42 {
		t.Fatalf("remote sample = %+v, want u2/42", s)
	}

	ev = guestEvents.wait(t, "own volume sample", func(ev core.Event) bool {
		_, ok := ev.(core.VolumeUpdate)
		return ok
	})
	if s := ev.(core.VolumeUpdate).Samples[0]; s.UserID != "" {
		t.Fatalf("own sample carries user id %q, want empty", s.UserID)
	}
}

func TestDestroyRoomBroadcast(t *testing.T) {
	hub := NewHub()
	owner := hub.Connect(domain.UserProfile{ID: "u1", Name: "Ada"})
	guest := hub.Connect(domain.UserProfile{ID: "u2", Name: "Grace"})
	defer owner.Close()
	defer guest.Close()

	makeRoom(t, owner, "r1")
	call(func(cb core.Callback) { guest.EnterRoom("r1", cb) })

	if code, _ := call(func(cb core.Callback) { guest.DestroyRoom(cb) }); code != codeNotPermitted {
		t.Fatal("non-owner destroyed the room")
	}

	guestEvents := newSink(guest)
	if code, _ := call(func(cb core.Callback) { owner.DestroyRoom(cb) }); code != core.CodeOK {
		t.Fatal("owner could not destroy the room")
	}
	guestEvents.wait(t, "destruction broadcast", func(ev core.Event) bool {
		_, ok := ev.(core.RoomDestroyed)
		return ok
	})

	if got := len(hub.List()); got != 0 {
		t.Fatalf("directory lists %d rooms after destroy, want 0", got)
	}
}
