package app

import (
	"time"

	"github.com/openvoice/voiceroom/internal/core"
	"github.com/openvoice/voiceroom/internal/domain"
)

const (
	// RoomSeatCount is the fixed room layout: one master seat plus guests.
	RoomSeatCount = 7

	maxChatLog   = 1000
	chatLogPrune = 100

	talkingThreshold = 10

	noSeat = -1
)

// Seat is the view-level seat model.
type Seat struct {
	Index    int
	Used     bool
	Locked   bool
	Muted    bool
	Talking  bool
	Occupant *domain.UserProfile
}

// AudienceMember pairs a profile with its take-seat status and the
// two-choice picker action (0 = invite to seat, 1 = accept their request).
type AudienceMember struct {
	Profile  domain.UserProfile
	Status   domain.AudienceStatus
	OnSelect func(choice int)
}

type inviteFlavor int

const (
	// inviteSelfRequest: our own request-to-speak, awaiting the owner.
	inviteSelfRequest inviteFlavor = iota
	// invitePick: owner invited a user onto a seat, awaiting them.
	invitePick
	// inviteTakeRequest: an audience member's request, awaiting us (owner).
	inviteTakeRequest
)

// pendingInvite is a single unresolved invitation. One map for all three
// flavors: ids are server-namespaced, and resolution is a single delete.
type pendingInvite struct {
	flavor    inviteFlavor
	seatIndex int
	user      domain.UserID
}

// RoomViewModel reconciles the room roster, audience list, chat log, and
// pending invitations under asynchronous service events, and dispatches
// user gestures back to the service.
//
// All state lives on one serial loop. Public methods and service callbacks
// post onto it; nothing here is touched from two goroutines at once.
type RoomViewModel struct {
	deps *EntryControl
	svc  core.RoomService
	loop *core.Loop

	// Non-owning; nil is tolerated at any point.
	responder core.ViewResponder

	viewType core.ViewType
	roomInfo domain.RoomInfo

	selfMute      bool
	exiting       bool
	seatsReady    bool
	selfSeatIndex int
	ownerMuted    bool

	masterSeat *Seat
	guestSeats []Seat

	audience     []*AudienceMember
	audienceByID map[domain.UserID]*AudienceMember

	messages []domain.Message

	// Target seat remembered while the audience picker is open.
	inviteSeatIndex    int
	pending            map[core.InvitationID]*pendingInvite
	pendingByRequester map[domain.UserID]core.InvitationID

	// Pop delay after a failed creation. Shortened in tests.
	popDelay time.Duration
}

func newRoomViewModel(deps *EntryControl, info domain.RoomInfo, vt core.ViewType) *RoomViewModel {
	vm := &RoomViewModel{
		deps:               deps,
		svc:                deps.Service(),
		loop:               core.NewLoop(),
		viewType:           vt,
		roomInfo:           info,
		selfSeatIndex:      noSeat,
		inviteSeatIndex:    noSeat,
		audienceByID:       make(map[domain.UserID]*AudienceMember),
		pending:            make(map[core.InvitationID]*pendingInvite),
		pendingByRequester: make(map[domain.UserID]core.InvitationID),
		popDelay:           time.Second,
	}
	vm.initGuestSeats()
	vm.svc.SetListener(vm.onEvent)
	return vm
}

// initGuestSeats seeds placeholder seats so the grid renders before the
// first roster snapshot. Index noSeat marks "not initialized".
func (vm *RoomViewModel) initGuestSeats() {
	vm.guestSeats = make([]Seat, 0, RoomSeatCount-1)
	for i := 0; i < RoomSeatCount-1; i++ {
		vm.guestSeats = append(vm.guestSeats, Seat{Index: noSeat})
	}
}

// Close detaches from the service and stops the loop. The view-model is
// unusable afterwards.
func (vm *RoomViewModel) Close() {
	vm.svc.SetListener(nil)
	vm.loop.Stop()
}

// SetResponder swaps the output surface. Pass nil to detach.
func (vm *RoomViewModel) SetResponder(r core.ViewResponder) {
	vm.loop.Post(func() { vm.responder = r })
}

// view never returns nil; a detached responder degrades to a no-op sink.
func (vm *RoomViewModel) view() core.ViewResponder {
	if vm.responder == nil {
		return core.NopResponder{}
	}
	return vm.responder
}

func (vm *RoomViewModel) isOwner() bool {
	return vm.deps.UserID() == vm.roomInfo.OwnerID
}

// checkControlPermission gates anchor-only controls. Failure surfaces a
// message and the caller aborts with no side effect.
func (vm *RoomViewModel) checkControlPermission() bool {
	if vm.viewType == core.ViewAudience {
		vm.view().ShowToast("Only the host can operate")
		return false
	}
	return true
}

func (vm *RoomViewModel) roleChange() {
	vm.view().SwitchView(vm.viewType)
}

// appendMessage grows the chat log, pruning the oldest entries in one step
// once the cap is exceeded.
func (vm *RoomViewModel) appendMessage(msg domain.Message) {
	vm.messages = append(vm.messages, msg)
	if len(vm.messages) > maxChatLog {
		vm.messages = vm.messages[chatLogPrune:]
	}
	vm.view().RefreshChat()
}

// notice appends a system notification line to the chat log.
func (vm *RoomViewModel) notice(text string) {
	vm.appendMessage(domain.Message{Content: text, Kind: domain.MessageNormal})
}

// postMessage defers an append to the next loop turn, keeping locally
// echoed messages ordered against concurrently arriving remote ones.
func (vm *RoomViewModel) postMessage(msg domain.Message) {
	vm.loop.Post(func() { vm.appendMessage(msg) })
}

// post funnels a service callback back onto the loop.
func (vm *RoomViewModel) post(fn func()) {
	vm.loop.Post(fn)
}
