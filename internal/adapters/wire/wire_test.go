package wire

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/openvoice/voiceroom/internal/core"
	"github.com/openvoice/voiceroom/internal/domain"
)

func TestSeatListEventSurvivesTheWire(t *testing.T) {
	in := core.SeatListChanged{Seats: []domain.SeatState{
		{UserID: "u1", Used: true},
		{},
		{UserID: "u3", Used: true, Muted: true},
		{Locked: true},
	}}

	env, err := EncodeEvent(in)
	if err != nil {
		t.Fatal(err)
	}
	if env.Kind != KindEvent || env.Event != EvSeatList {
		t.Fatalf("envelope = %+v", env)
	}

	// Simulate the socket hop.
	frame, err := json.Marshal(env)
	if err != nil {
		t.Fatal(err)
	}
	var back Envelope
	if err := json.Unmarshal(frame, &back); err != nil {
		t.Fatal(err)
	}

	out, err := DecodeEvent(back)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("round trip changed the event:\nin:  %+v\nout: %+v", in, out)
	}
}

func TestInvitationEventCarriesRouting(t *testing.T) {
	in := core.InvitationReceived{ID: "inv-1", Inviter: "u2", Cmd: core.CmdTakeSeat, Payload: "3"}

	env, err := EncodeEvent(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := DecodeEvent(env)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := out.(core.InvitationReceived)
	if !ok {
		t.Fatalf("decoded %T", out)
	}
	if got.ID != in.ID || got.Inviter != in.Inviter || got.Cmd != in.Cmd || got.Payload != in.Payload {
		t.Fatalf("got %+v, want %+v", got, in)
	}
}

func TestDecodeUnknownEvent(t *testing.T) {
	_, err := DecodeEvent(Envelope{Kind: KindEvent, Event: "no_such_event"})
	if !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("err = %v, want ErrUnknownEvent", err)
	}
}
