package signal_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openvoice/voiceroom/internal/adapters/signal"
	"github.com/openvoice/voiceroom/internal/adapters/wsclient"
	"github.com/openvoice/voiceroom/internal/core"
	"github.com/openvoice/voiceroom/internal/domain"
	"github.com/openvoice/voiceroom/internal/service/local"
)

func startServer(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := signal.NewController(local.NewHub())
	r.GET("/api/ws/signal", ctrl.HandleSignal)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws/signal"
}

func dial(t *testing.T, url string, p domain.UserProfile) *wsclient.Conn {
	t.Helper()
	c, err := wsclient.Dial(url, p)
	if err != nil {
		t.Fatalf("dial %s: %v", p.ID, err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func waitAck(t *testing.T, what string, ch <-chan int) int {
	t.Helper()
	select {
	case code := <-ch:
		return code
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
		return 0
	}
}

// A full trip through the stack: two dialed clients, one room, ops acked
// over the socket and events fanned out to the other side.
func TestSignalRoundTrip(t *testing.T) {
	url := startServer(t)

	owner := dial(t, url, domain.UserProfile{ID: "u1", Name: "Ada"})
	guest := dial(t, url, domain.UserProfile{ID: "u2", Name: "Grace"})

	guestEvents := make(chan core.Event, 64)
	guest.SetListener(func(ev core.Event) { guestEvents <- ev })

	ack := make(chan int, 1)
	owner.CreateRoom("42", domain.RoomParams{Name: "jazz", SeatCount: 4}, func(code int, msg string) { ack <- code })
	if code := waitAck(t, "create ack", ack); code != core.CodeOK {
		t.Fatalf("CreateRoom code %d", code)
	}

	guest.EnterRoom("42", func(code int, msg string) { ack <- code })
	if code := waitAck(t, "enter ack", ack); code != core.CodeOK {
		t.Fatalf("EnterRoom code %d", code)
	}

	waitEvent(t, guestEvents, "roster snapshot", func(ev core.Event) bool {
		s, ok := ev.(core.SeatListChanged)
		return ok && len(s.Seats) == 4
	})

	owner.SendMessage("hello", func(code int, msg string) { ack <- code })
	if code := waitAck(t, "message ack", ack); code != core.CodeOK {
		t.Fatalf("SendMessage code %d", code)
	}
	ev := waitEvent(t, guestEvents, "chat delivery", func(ev core.Event) bool {
		_, ok := ev.(core.TextMessage)
		return ok
	})
	msg := ev.(core.TextMessage)
	if msg.Text != "hello" || msg.User.ID != "u1" {
		t.Fatalf("chat = %+v", msg)
	}

	rooms := make(chan []domain.RoomInfo, 1)
	guest.ListRooms(func(code int, msg string, r []domain.RoomInfo) { rooms <- r })
	select {
	case list := <-rooms:
		if len(list) != 1 || list[0].ID != "42" || list[0].MemberCount != 2 {
			t.Fatalf("directory = %+v", list)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for the directory")
	}
}

// Invitation ids are minted on the dialing side, so the id returned by
// SendInvitation matches the one delivered over the socket.
func TestSignalInvitationIDStable(t *testing.T) {
	url := startServer(t)

	owner := dial(t, url, domain.UserProfile{ID: "u1", Name: "Ada"})
	guest := dial(t, url, domain.UserProfile{ID: "u2", Name: "Grace"})

	ownerEvents := make(chan core.Event, 64)
	owner.SetListener(func(ev core.Event) { ownerEvents <- ev })
	guestEvents := make(chan core.Event, 64)
	guest.SetListener(func(ev core.Event) { guestEvents <- ev })

	ack := make(chan int, 1)
	owner.CreateRoom("7", domain.RoomParams{Name: "blues", SeatCount: 4}, func(code int, msg string) { ack <- code })
	waitAck(t, "create ack", ack)
	guest.EnterRoom("7", func(code int, msg string) { ack <- code })
	waitAck(t, "enter ack", ack)

	id := guest.SendInvitation(core.CmdTakeSeat, "u1", "1", func(code int, msg string) { ack <- code })
	if id == "" {
		t.Fatal("SendInvitation returned an empty id")
	}
	if code := waitAck(t, "invite ack", ack); code != core.CodeOK {
		t.Fatalf("SendInvitation code %d", code)
	}

	ev := waitEvent(t, ownerEvents, "invitation delivery", func(ev core.Event) bool {
		_, ok := ev.(core.InvitationReceived)
		return ok
	})
	recv := ev.(core.InvitationReceived)
	if recv.ID != id {
		t.Fatalf("delivered id %q, sender id %q", recv.ID, id)
	}

	owner.AcceptInvitation(recv.ID, func(code int, msg string) { ack <- code })
	if code := waitAck(t, "accept ack", ack); code != core.CodeOK {
		t.Fatalf("AcceptInvitation code %d", code)
	}
	waitEvent(t, guestEvents, "acceptance delivery", func(ev core.Event) bool {
		a, ok := ev.(core.InviteeAccepted)
		return ok && a.ID == id
	})
}

func waitEvent(t *testing.T, ch <-chan core.Event, what string, match func(core.Event) bool) core.Event {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev := <-ch:
			if match(ev) {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", what)
		}
	}
}
