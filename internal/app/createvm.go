package app

import (
	"fmt"
	"math/rand"

	"github.com/openvoice/voiceroom/internal/domain"
)

// CreateRoomViewModel backs the room creation form: it collects the
// parameters and hands a populated RoomInfo to whoever mints the room
// view-model next.
type CreateRoomViewModel struct {
	deps *EntryControl

	Name        string
	NeedRequest bool
	CoverURL    string
}

// BuildRoomInfo allocates a fresh room id and fills the creation-time
// metadata from the current user.
func (vm *CreateRoomViewModel) BuildRoomInfo() domain.RoomInfo {
	self := vm.deps.SelfProfile()
	name := vm.Name
	if name == "" {
		name = fmt.Sprintf("%s's room", self.Name)
	}
	return domain.RoomInfo{
		ID:          domain.RoomID(fmt.Sprintf("%d", 100000+rand.Intn(900000))),
		Name:        name,
		OwnerID:     self.ID,
		OwnerName:   self.Name,
		CoverURL:    vm.CoverURL,
		MemberCount: 0,
		NeedRequest: vm.NeedRequest,
	}
}
