package app

import (
	"github.com/openvoice/voiceroom/internal/core"
	"github.com/openvoice/voiceroom/internal/domain"
)

// Read accessors for the responder. They are safe from inside responder
// callbacks (those run on the loop); any other caller must synchronize
// through Dispatch.

func (vm *RoomViewModel) RoomInfo() domain.RoomInfo { return vm.roomInfo }

func (vm *RoomViewModel) ViewType() core.ViewType { return vm.viewType }

func (vm *RoomViewModel) SelfMuted() bool { return vm.selfMute }

func (vm *RoomViewModel) OwnerMuted() bool { return vm.ownerMuted }

func (vm *RoomViewModel) SelfSeatIndex() int { return vm.selfSeatIndex }

func (vm *RoomViewModel) MasterSeat() *Seat { return vm.masterSeat }

func (vm *RoomViewModel) GuestSeats() []Seat { return vm.guestSeats }

func (vm *RoomViewModel) Audience() []*AudienceMember { return vm.audience }

func (vm *RoomViewModel) Messages() []domain.Message { return vm.messages }

// Dispatch runs fn on the view-model's serial loop and waits for it. Lets
// external callers read or batch state coherently.
func (vm *RoomViewModel) Dispatch(fn func()) { vm.loop.Sync(fn) }
